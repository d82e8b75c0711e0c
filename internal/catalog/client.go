// Package catalog provides read-only access to the tourism data API with
// local fallbacks. Every endpoint goes through the same fetch path, so the
// timeout and fallback policy is uniform across the whole site.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrNotFound is returned when a keyed lookup has no entry in the fallback
// dataset.
var ErrNotFound = errors.New("catalog: not found")

// ErrFallbackUnavailable is returned when a fallback producer has no
// substitute data for the requested endpoint.
var ErrFallbackUnavailable = errors.New("catalog: no fallback data")

// DefaultTimeout bounds a single upstream request. The deadline is enforced
// through context cancellation, not a timer race.
const DefaultTimeout = 8 * time.Second

const maxBodyBytes = 4 << 20 // 4MB

// Config controls a Client. The zero value serves fallback data only.
type Config struct {
	// BaseURL is the API origin, e.g. "https://api.example.org/api/v1".
	// When empty the client never touches the network.
	BaseURL string
	// Timeout overrides DefaultTimeout when positive.
	Timeout time.Duration
	// MockOnly forces every call to the fallback dataset without any
	// network attempt.
	MockOnly bool
	// Fallback supplies the substitute dataset. Nil means DefaultDataset.
	Fallback *Dataset
	// Logger receives one warning per fallback. Nil means no logging.
	Logger *zap.Logger
}

// Client fetches regions, attractions, and weather from the remote API,
// substituting fallback data when the API cannot answer.
type Client struct {
	baseURL  string
	http     *http.Client
	timeout  time.Duration
	mockOnly bool
	data     *Dataset
	log      *zap.Logger
}

// New builds a Client from cfg, applying defaults for unset fields.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	data := cfg.Fallback
	if data == nil {
		data = DefaultDataset()
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL:  strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		http:     &http.Client{},
		timeout:  timeout,
		mockOnly: cfg.MockOnly || strings.TrimSpace(cfg.BaseURL) == "",
		data:     data,
		log:      log,
	}
}

// fetch is the single choke point for every endpoint. Non-2xx statuses,
// network errors, timeouts, and decode failures all funnel into the
// fallback producer; only a failing producer propagates an error.
func fetch[T any](ctx context.Context, c *Client, path string, decode func([]byte) (T, error), fallback func() (T, error)) (T, error) {
	if c.mockOnly {
		return fallback()
	}
	body, err := c.get(ctx, path)
	if err == nil {
		v, derr := decode(body)
		if derr == nil {
			return v, nil
		}
		err = fmt.Errorf("decode: %w", derr)
	}
	c.log.Warn("catalog: request failed, serving fallback",
		zap.String("path", path),
		zap.Error(err),
	)
	return fallback()
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("catalog: status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
}
