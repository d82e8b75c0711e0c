package main

import (
	"net/http"

	"go.uber.org/zap"

	"discovertz.org/tz-web/internal/nav"
	"discovertz.org/tz-web/internal/seo"
)

// PageBase carries the fields every page template needs. View models embed
// it so the shared layout can render head metadata, navigation, and the
// optional deep-link highlight from any page.
type PageBase struct {
	Title     string
	Path      string
	Nav       []nav.RenderedItem
	Meta      seo.Meta
	Highlight string
}

func newPageBase(r *http.Request, title, description string) PageBase {
	return PageBase{
		Title: title,
		Path:  r.URL.Path,
		Nav:   nav.Build(r.URL.Path),
		Meta:  seo.ForPage(title, description),
	}
}

type errorData struct {
	PageBase
	Message string
}

// renderPage executes the named page template. In dev mode templates are
// reparsed on every request so edits show up without a restart.
func renderPage(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	tc := tmplCache
	if devMode || tc == nil {
		parsed, err := parseTemplates()
		if err != nil {
			logger.Error("parse templates", zap.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		tc = parsed
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tc.ExecuteTemplate(w, name, data); err != nil {
		// Headers are gone at this point; just log.
		logger.Error("execute template",
			zap.String("template", name),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
}

func renderErrorPage(w http.ResponseWriter, r *http.Request, status int, title, message string) {
	renderPage(w, r, status, "error", errorData{
		PageBase: newPageBase(r, title, message),
		Message:  message,
	})
}

func renderNotFound(w http.ResponseWriter, r *http.Request) {
	renderErrorPage(w, r, http.StatusNotFound, "Page not found",
		"We couldn't find what you were looking for. It may have moved, or the link may be out of date.")
}

// renderServiceError is the single page-level failure used when required
// data cannot be loaded even from fallbacks. Partial results are discarded.
func renderServiceError(w http.ResponseWriter, r *http.Request) {
	renderErrorPage(w, r, http.StatusInternalServerError, "Something went wrong",
		"We couldn't load this page right now. Please try again in a few minutes.")
}
