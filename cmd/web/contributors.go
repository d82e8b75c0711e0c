package main

import (
	"net/http"

	"go.uber.org/zap"

	"discovertz.org/tz-web/internal/contrib"
)

type contributorsData struct {
	PageBase
	Contributors []contrib.Contributor
	Failed       bool
	RepoURL      string
}

// ContributorsHandler renders the contributor grid. Three outcomes: a
// populated grid, an invitation when the repository has no contributors
// yet, and a degraded link to the repository when GitHub cannot be reached.
func ContributorsHandler(w http.ResponseWriter, r *http.Request) {
	data := contributorsData{
		PageBase: newPageBase(r, "Contributors", "The people building Discover Tanzania."),
		RepoURL:  contribClient.RepoURL(),
	}

	list, err := contribClient.List(r.Context())
	if err != nil {
		logger.Warn("contributors: list failed", zap.Error(err))
		data.Failed = true
	} else {
		data.Contributors = list
	}

	renderPage(w, r, http.StatusOK, "contributors", data)
}
