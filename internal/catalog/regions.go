package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Region is a destination area grouping attractions. Records are immutable
// once fetched; the site never mutates them.
type Region struct {
	Slug            string
	Name            string
	Description     string
	Image           string
	Latitude        float64
	Longitude       float64
	AttractionCount int
}

type rawRegion struct {
	Slug            string  `json:"slug"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Image           string  `json:"image"`
	Latitude        decimal `json:"latitude"`
	Longitude       decimal `json:"longitude"`
	AttractionCount int     `json:"attraction_count"`
}

// decimal accepts coordinates serialized either as JSON numbers or as
// decimal strings (the API emits strings).
type decimal float64

func (d *decimal) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" || s == `""` {
		*d = 0
		return nil
	}
	s = strings.Trim(s, `"`)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("decimal %q: %w", s, err)
	}
	*d = decimal(f)
	return nil
}

// Regions returns every region in the order the source provides.
func (c *Client) Regions(ctx context.Context) ([]Region, error) {
	return fetch(ctx, c, "/regions/", decodeRegions, c.data.regions)
}

func decodeRegions(body []byte) ([]Region, error) {
	var raw []rawRegion
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	out := make([]Region, 0, len(raw))
	for _, r := range raw {
		reg, err := mapRegion(r)
		if err != nil {
			return nil, err
		}
		out = append(out, reg)
	}
	return out, nil
}

func mapRegion(raw rawRegion) (Region, error) {
	slug := strings.TrimSpace(raw.Slug)
	name := strings.TrimSpace(raw.Name)
	if slug == "" || name == "" {
		return Region{}, fmt.Errorf("region missing slug or name (slug=%q)", raw.Slug)
	}
	if raw.AttractionCount < 0 {
		return Region{}, fmt.Errorf("region %s: negative attraction_count", slug)
	}
	return Region{
		Slug:            slug,
		Name:            name,
		Description:     strings.TrimSpace(raw.Description),
		Image:           strings.TrimSpace(raw.Image),
		Latitude:        float64(raw.Latitude),
		Longitude:       float64(raw.Longitude),
		AttractionCount: raw.AttractionCount,
	}, nil
}
