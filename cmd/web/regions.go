package main

import (
	"html/template"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"discovertz.org/tz-web/internal/catalog"
	"discovertz.org/tz-web/internal/render"
)

type regionsData struct {
	PageBase
	Sections []template.HTML
}

// RegionsHandler renders every region as an alternating section with up to
// three previewed attractions. Regions and attractions are fetched in
// parallel; if either fails past its fallback the whole page degrades to a
// single failure message rather than a half-built listing.
func RegionsHandler(w http.ResponseWriter, r *http.Request) {
	var (
		regions     []catalog.Region
		attractions []catalog.Attraction
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		regions, err = catalogClient.Regions(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		attractions, err = catalogClient.Attractions(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		logger.Error("regions: load failed", zap.Error(err))
		renderServiceError(w, r)
		return
	}

	sections := make([]template.HTML, 0, len(regions))
	for i, region := range regions {
		section, err := render.RegionSection(region, render.PreviewAttractions(region.Name, attractions), i)
		if err != nil {
			logger.Error("regions: render section failed", zap.String("region", region.Slug), zap.Error(err))
			renderServiceError(w, r)
			return
		}
		sections = append(sections, section)
	}

	data := regionsData{
		PageBase: newPageBase(r, "Regions", "Explore Tanzania region by region, from Kilimanjaro to Zanzibar."),
		Sections: sections,
	}
	// The highlight only arms the scroll script when it names a region that
	// actually rendered.
	if h := r.URL.Query().Get("highlight"); h != "" && regionExists(regions, h) {
		data.Highlight = h
	}

	renderPage(w, r, http.StatusOK, "regions", data)
}

func regionExists(regions []catalog.Region, slug string) bool {
	for _, region := range regions {
		if region.Slug == slug {
			return true
		}
	}
	return false
}
