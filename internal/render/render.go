// Package render turns catalog records into HTML fragments. Builders are
// pure: the same records always produce the same markup, and every field is
// escaped through html/template.
package render

import (
	"bytes"
	"html/template"
	"net/url"

	"discovertz.org/tz-web/internal/catalog"
	"discovertz.org/tz-web/internal/format"
)

// MaxPreview bounds the per-region attraction preview grid.
const MaxPreview = 3

// PlaceholderImage is shown when an attraction has no featured image.
const PlaceholderImage = "/assets/img/placeholder-attraction.jpg"

var fragments = template.Must(template.New("fragments").Parse(`
{{define "attraction-card"}}<article class="attraction-card" data-attraction="{{.Slug}}">
  <a class="attraction-card__link" href="{{.Href}}">
    <img class="attraction-card__image" src="{{.Image}}" alt="{{.Name}}" loading="lazy">
    <span class="badge {{.BadgeClass}}">{{.Difficulty}}</span>
    <h3 class="attraction-card__name">{{.Name}}</h3>
  </a>
</article>{{end}}

{{define "region-media"}}<div class="region-section__media">
  <img class="region-section__hero" src="{{.Image}}" alt="{{.Name}}" loading="lazy">
</div>{{end}}

{{define "region-body"}}<div class="region-section__body">
  <h2 class="region-section__title">{{.Name}}</h2>
  <p class="region-section__description">{{.Description}}</p>
  <div class="region-section__badges">
    <span class="badge badge--count">{{.CountLabel}}</span>
    <span class="badge badge--coords"><i data-lucide="map-pin"></i>{{.Coordinates}}</span>
  </div>
  {{if .Cards}}<div class="attraction-grid">{{range .Cards}}{{.}}{{end}}</div>{{else}}<p class="region-section__empty">No attractions yet. Check back soon.</p>{{end}}
  <a class="button region-section__cta" href="{{.CTAHref}}">Explore {{.Name}} attractions</a>
</div>{{end}}

{{define "region-section"}}<section id="{{.AnchorID}}" class="region-section {{if .ImageFirst}}region-section--media-first{{else}}region-section--media-last{{end}}" data-aos="fade-up">
{{if .ImageFirst}}{{template "region-media" .}}{{template "region-body" .}}{{else}}{{template "region-body" .}}{{template "region-media" .}}{{end}}
</section>{{end}}
`))

type cardView struct {
	Slug       string
	Name       string
	Href       string
	Image      string
	Difficulty string
	BadgeClass string
}

type sectionView struct {
	AnchorID    string
	Name        string
	Description string
	Image       string
	CountLabel  string
	Coordinates string
	CTAHref     string
	ImageFirst  bool
	Cards       []template.HTML
}

// AnchorID derives the deep-link anchor for a region.
func AnchorID(slug string) string {
	return "region-" + slug
}

// DifficultyBadgeClass maps the difficulty enum onto a badge color class.
func DifficultyBadgeClass(d catalog.Difficulty) string {
	switch d {
	case catalog.DifficultyEasy:
		return "badge--easy"
	case catalog.DifficultyModerate:
		return "badge--moderate"
	case catalog.DifficultyExtreme:
		return "badge--extreme"
	}
	return "badge--unknown"
}

// AttractionCard renders one attraction preview card.
func AttractionCard(a catalog.Attraction) (template.HTML, error) {
	image := a.FeaturedImage
	if image == "" {
		image = PlaceholderImage
	}
	return execute("attraction-card", cardView{
		Slug:       a.Slug,
		Name:       a.Name,
		Href:       "/attractions/" + url.PathEscape(a.Slug),
		Image:      image,
		Difficulty: string(a.Difficulty),
		BadgeClass: DifficultyBadgeClass(a.Difficulty),
	})
}

// PreviewAttractions selects at most MaxPreview attractions whose
// RegionName exactly equals regionName, preserving source order.
func PreviewAttractions(regionName string, attractions []catalog.Attraction) []catalog.Attraction {
	out := make([]catalog.Attraction, 0, MaxPreview)
	for _, a := range attractions {
		if a.RegionName != regionName {
			continue
		}
		out = append(out, a)
		if len(out) == MaxPreview {
			break
		}
	}
	return out
}

// RegionSection renders a full region section. The image leads on even
// indexes and trails on odd ones; the layout carries no data dependency.
func RegionSection(r catalog.Region, previews []catalog.Attraction, index int) (template.HTML, error) {
	cards := make([]template.HTML, 0, len(previews))
	for _, a := range previews {
		card, err := AttractionCard(a)
		if err != nil {
			return "", err
		}
		cards = append(cards, card)
	}
	return execute("region-section", sectionView{
		AnchorID:    AnchorID(r.Slug),
		Name:        r.Name,
		Description: r.Description,
		Image:       r.Image,
		CountLabel:  format.AttractionCountLabel(r.AttractionCount),
		Coordinates: format.Coordinates(r.Latitude, r.Longitude),
		CTAHref:     "/attractions?" + url.Values{"region": {r.Name}}.Encode(),
		ImageFirst:  index%2 == 0,
		Cards:       cards,
	})
}

func execute(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := fragments.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
