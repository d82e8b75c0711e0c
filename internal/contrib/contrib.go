// Package contrib loads the project's contributor list from the GitHub
// API. Unlike the catalog client it carries no fallback dataset: callers
// decide how a failed fetch is presented.
package contrib

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// PerPage is the fixed page size; the site only ever shows the first page.
const PerPage = 20

const defaultAPIBase = "https://api.github.com"

// Contributor is one entry of a repository's contributor list.
type Contributor struct {
	Login         string
	AvatarURL     string
	HTMLURL       string
	Contributions int
}

// Config controls a Client.
type Config struct {
	// APIBase overrides the GitHub API origin, mainly for tests.
	APIBase string
	Owner   string
	Repo    string
	// Timeout bounds the request; defaults to 8 seconds.
	Timeout time.Duration
	Logger  *zap.Logger
}

// Client fetches contributor lists for a single repository.
type Client struct {
	apiBase string
	owner   string
	repo    string
	http    *http.Client
	timeout time.Duration
	log     *zap.Logger
}

// New builds a Client from cfg, applying defaults for unset fields.
func New(cfg Config) *Client {
	apiBase := strings.TrimRight(strings.TrimSpace(cfg.APIBase), "/")
	if apiBase == "" {
		apiBase = defaultAPIBase
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		apiBase: apiBase,
		owner:   strings.TrimSpace(cfg.Owner),
		repo:    strings.TrimSpace(cfg.Repo),
		http:    &http.Client{},
		timeout: timeout,
		log:     log,
	}
}

// RepoURL is the public repository page, used as the degraded-state link
// when the API cannot be reached.
func (c *Client) RepoURL() string {
	return "https://github.com/" + c.owner + "/" + c.repo
}

// List returns the first PerPage contributors. An empty slice with a nil
// error means the repository genuinely has no contributors; an error means
// the fetch failed and the caller should degrade.
func (c *Client) List(ctx context.Context) ([]Contributor, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/repos/%s/%s/contributors?per_page=%d", c.apiBase, c.owner, c.repo, PerPage)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("contrib: request failed", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	// GitHub answers 204 for repositories with no contributor activity.
	if resp.StatusCode == http.StatusNoContent {
		return []Contributor{}, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := fmt.Errorf("contrib: status %d", resp.StatusCode)
		c.log.Warn("contrib: request failed", zap.Error(err))
		return nil, err
	}

	var raw []struct {
		Login         string `json:"login"`
		AvatarURL     string `json:"avatar_url"`
		HTMLURL       string `json:"html_url"`
		Contributions int    `json:"contributions"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		c.log.Warn("contrib: decode failed", zap.Error(err))
		return nil, err
	}

	out := make([]Contributor, 0, len(raw))
	for _, r := range raw {
		if strings.TrimSpace(r.Login) == "" {
			continue
		}
		out = append(out, Contributor{
			Login:         r.Login,
			AvatarURL:     r.AvatarURL,
			HTMLURL:       r.HTMLURL,
			Contributions: r.Contributions,
		})
	}
	return out, nil
}
