package main

import (
	"html/template"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"discovertz.org/tz-web/internal/catalog"
	"discovertz.org/tz-web/internal/render"
)

type homeData struct {
	PageBase
	FeaturedCards []template.HTML
	Regions       []catalog.Region
}

// HomeHandler renders the landing page: featured attractions plus a region
// quick-link strip. Both lists are fetched concurrently.
func HomeHandler(w http.ResponseWriter, r *http.Request) {
	var (
		featured []catalog.Attraction
		regions  []catalog.Region
	)
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		featured, err = catalogClient.FeaturedAttractions(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		regions, err = catalogClient.Regions(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		logger.Error("home: load failed", zap.Error(err))
		renderServiceError(w, r)
		return
	}

	cards := make([]template.HTML, 0, len(featured))
	for _, a := range featured {
		card, err := render.AttractionCard(a)
		if err != nil {
			logger.Error("home: render card failed", zap.String("slug", a.Slug), zap.Error(err))
			renderServiceError(w, r)
			return
		}
		cards = append(cards, card)
	}

	renderPage(w, r, http.StatusOK, "home", homeData{
		PageBase:      newPageBase(r, "", "Plan your trip across Tanzania's regions, attractions, and seasons."),
		FeaturedCards: cards,
		Regions:       regions,
	})
}
