package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"discovertz.org/tz-web/internal/content"
)

type contentData struct {
	PageBase
	Page content.Page
}

// AboutHandler serves the about page from the markdown store.
func AboutHandler(w http.ResponseWriter, r *http.Request) {
	serveContentPage(w, r, "about")
}

// TravelTipHandler serves an editorial travel-tips page by slug.
func TravelTipHandler(w http.ResponseWriter, r *http.Request) {
	serveContentPage(w, r, chi.URLParam(r, "slug"))
}

func serveContentPage(w http.ResponseWriter, r *http.Request, slug string) {
	page, err := contentStore.Page(slug)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			renderNotFound(w, r)
			return
		}
		logger.Error("content: load failed", zap.String("slug", slug), zap.Error(err))
		renderServiceError(w, r)
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=600")
	if !page.UpdatedAt.IsZero() {
		w.Header().Set("Last-Modified", page.UpdatedAt.UTC().Format(http.TimeFormat))
	}
	renderPage(w, r, http.StatusOK, "content", contentData{
		PageBase: newPageBase(r, page.Title, page.Summary),
		Page:     page,
	})
}
