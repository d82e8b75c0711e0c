package main

import (
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"sort"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"discovertz.org/tz-web/internal/catalog"
	"discovertz.org/tz-web/internal/render"
)

type attractionGroup struct {
	Name  string
	Cards []template.HTML
}

type regionLink struct {
	Name   string
	Href   string
	Count  int
	Active bool
}

type attractionsData struct {
	PageBase
	Heading     string
	Region      string
	Category    string
	Groups      []attractionGroup
	RegionLinks []regionLink
	Empty       bool
}

// AttractionsHandler renders the attraction listing. Without filters the
// attractions are grouped by category; ?region= narrows to one region's
// flat list and ?category= to a single category group. The region sidebar
// is always present.
func AttractionsHandler(w http.ResponseWriter, r *http.Request) {
	region := r.URL.Query().Get("region")
	category := r.URL.Query().Get("category")

	var (
		flat     []catalog.Attraction
		byCat    map[string][]catalog.Attraction
		byRegion map[string][]catalog.Attraction
	)
	g, ctx := errgroup.WithContext(r.Context())
	if region != "" {
		g.Go(func() error {
			var err error
			flat, err = catalogClient.Attractions(ctx)
			return err
		})
	} else {
		g.Go(func() error {
			var err error
			byCat, err = catalogClient.AttractionsByCategory(ctx)
			return err
		})
	}
	g.Go(func() error {
		var err error
		byRegion, err = catalogClient.AttractionsByRegion(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		logger.Error("attractions: load failed", zap.Error(err))
		renderServiceError(w, r)
		return
	}

	data := attractionsData{
		PageBase: newPageBase(r, "Attractions", "Browse attractions across Tanzania by region and category."),
		Heading:  "All Attractions",
		Region:   region,
		Category: category,
	}

	switch {
	case region != "":
		data.Heading = "Attractions in " + region
		cards, err := buildCards(filterByRegion(flat, region))
		if err != nil {
			logger.Error("attractions: render failed", zap.Error(err))
			renderServiceError(w, r)
			return
		}
		if len(cards) > 0 {
			data.Groups = []attractionGroup{{Name: region, Cards: cards}}
		}
	case category != "":
		data.Heading = category + " Attractions"
		cards, err := buildCards(byCat[category])
		if err != nil {
			logger.Error("attractions: render failed", zap.Error(err))
			renderServiceError(w, r)
			return
		}
		if len(cards) > 0 {
			data.Groups = []attractionGroup{{Name: category, Cards: cards}}
		}
	default:
		groups, err := buildGroups(byCat)
		if err != nil {
			logger.Error("attractions: render failed", zap.Error(err))
			renderServiceError(w, r)
			return
		}
		data.Groups = groups
	}
	data.Empty = len(data.Groups) == 0
	data.RegionLinks = buildRegionLinks(byRegion, region)

	renderPage(w, r, http.StatusOK, "attractions", data)
}

type attractionDetailData struct {
	PageBase
	Attraction   catalog.Attraction
	Image        string
	BadgeClass   string
	RegionHref   string
	Current      *catalog.CurrentWeather
	Forecast     []catalog.ForecastDay
	Seasonal     catalog.SeasonalNotes
	SeasonalKeys []string
}

// AttractionHandler renders one attraction's detail page with its weather
// panels. The attraction itself is required; each weather panel degrades to
// absence when its data is unavailable.
func AttractionHandler(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	attraction, err := catalogClient.AttractionBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			renderNotFound(w, r)
			return
		}
		logger.Error("attraction: load failed", zap.String("slug", slug), zap.Error(err))
		renderServiceError(w, r)
		return
	}

	data := attractionDetailData{
		PageBase:   newPageBase(r, attraction.Name, "Visiting "+attraction.Name+" in "+attraction.RegionName+"."),
		Attraction: attraction,
		Image:      attraction.FeaturedImage,
		BadgeClass: render.DifficultyBadgeClass(attraction.Difficulty),
		RegionHref: "/attractions?" + regionQuery(attraction.RegionName),
	}
	if data.Image == "" {
		data.Image = render.PlaceholderImage
	}

	// Weather is best-effort: a missing panel never fails the page.
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		current, err := catalogClient.Current(ctx, slug)
		if err == nil {
			data.Current = &current
		}
		return nil
	})
	g.Go(func() error {
		forecast, err := catalogClient.Forecast(ctx, slug)
		if err == nil {
			data.Forecast = forecast
		}
		return nil
	})
	g.Go(func() error {
		seasonal, err := catalogClient.Seasonal(ctx, slug)
		if err == nil {
			data.Seasonal = seasonal
		}
		return nil
	})
	_ = g.Wait()

	data.SeasonalKeys = make([]string, 0, len(data.Seasonal))
	for season := range data.Seasonal {
		data.SeasonalKeys = append(data.SeasonalKeys, season)
	}
	sort.Strings(data.SeasonalKeys)

	renderPage(w, r, http.StatusOK, "attraction", data)
}

func buildCards(attractions []catalog.Attraction) ([]template.HTML, error) {
	cards := make([]template.HTML, 0, len(attractions))
	for _, a := range attractions {
		card, err := render.AttractionCard(a)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

func buildGroups(byCat map[string][]catalog.Attraction) ([]attractionGroup, error) {
	names := make([]string, 0, len(byCat))
	for name := range byCat {
		names = append(names, name)
	}
	sort.Strings(names)

	groups := make([]attractionGroup, 0, len(names))
	for _, name := range names {
		cards, err := buildCards(byCat[name])
		if err != nil {
			return nil, err
		}
		if len(cards) == 0 {
			continue
		}
		groups = append(groups, attractionGroup{Name: name, Cards: cards})
	}
	return groups, nil
}

func buildRegionLinks(byRegion map[string][]catalog.Attraction, active string) []regionLink {
	names := make([]string, 0, len(byRegion))
	for name := range byRegion {
		names = append(names, name)
	}
	sort.Strings(names)

	links := make([]regionLink, 0, len(names))
	for _, name := range names {
		links = append(links, regionLink{
			Name:   name,
			Href:   "/attractions?" + regionQuery(name),
			Count:  len(byRegion[name]),
			Active: name == active,
		})
	}
	return links
}

// filterByRegion keeps attractions whose RegionName exactly equals region,
// case sensitively, preserving source order.
func filterByRegion(attractions []catalog.Attraction, region string) []catalog.Attraction {
	out := make([]catalog.Attraction, 0, len(attractions))
	for _, a := range attractions {
		if a.RegionName == region {
			out = append(out, a)
		}
	}
	return out
}

func regionQuery(region string) string {
	return url.Values{"region": {region}}.Encode()
}
