package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// Difficulty is the enumerated effort level of an attraction.
type Difficulty string

const (
	DifficultyEasy     Difficulty = "easy"
	DifficultyModerate Difficulty = "moderate"
	DifficultyExtreme  Difficulty = "extreme"
)

// Attraction is a single visitable site. RegionName references its Region
// by exact name, not by slug.
type Attraction struct {
	Slug          string
	Name          string
	RegionName    string
	Category      string
	FeaturedImage string
	Difficulty    Difficulty
	IsFeatured    bool
}

type rawAttraction struct {
	Slug          string `json:"slug"`
	Name          string `json:"name"`
	RegionName    string `json:"region_name"`
	Category      string `json:"category"`
	FeaturedImage string `json:"featured_image"`
	Difficulty    string `json:"difficulty_level"`
	IsFeatured    bool   `json:"is_featured"`
}

// Attractions returns every attraction in source order.
func (c *Client) Attractions(ctx context.Context) ([]Attraction, error) {
	return fetch(ctx, c, "/attractions/", decodeAttractions, c.data.attractions)
}

// FeaturedAttractions returns the attractions flagged for the home page.
func (c *Client) FeaturedAttractions(ctx context.Context) ([]Attraction, error) {
	return fetch(ctx, c, "/attractions/featured/", decodeAttractions, c.data.featured)
}

// AttractionBySlug returns a single attraction. A slug absent from both the
// API and the fallback dataset yields ErrNotFound.
func (c *Client) AttractionBySlug(ctx context.Context, slug string) (Attraction, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return Attraction{}, ErrNotFound
	}
	path := "/attractions/" + url.PathEscape(slug) + "/"
	return fetch(ctx, c, path, decodeAttraction, func() (Attraction, error) {
		return c.data.attraction(slug)
	})
}

// AttractionsByCategory returns attractions grouped by category name.
func (c *Client) AttractionsByCategory(ctx context.Context) (map[string][]Attraction, error) {
	return fetch(ctx, c, "/attractions/by_category/", decodeAttractionGroups, c.data.byCategory)
}

// AttractionsByRegion returns attractions grouped by region name.
func (c *Client) AttractionsByRegion(ctx context.Context) (map[string][]Attraction, error) {
	return fetch(ctx, c, "/attractions/by_region/", decodeAttractionGroups, c.data.byRegion)
}

func decodeAttractions(body []byte) ([]Attraction, error) {
	var raw []rawAttraction
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	return mapAttractions(raw)
}

func decodeAttraction(body []byte) (Attraction, error) {
	var raw rawAttraction
	if err := json.Unmarshal(body, &raw); err != nil {
		return Attraction{}, err
	}
	return mapAttraction(raw)
}

func decodeAttractionGroups(body []byte) (map[string][]Attraction, error) {
	var raw map[string][]rawAttraction
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	out := make(map[string][]Attraction, len(raw))
	for key, group := range raw {
		mapped, err := mapAttractions(group)
		if err != nil {
			return nil, err
		}
		out[key] = mapped
	}
	return out, nil
}

func mapAttractions(raw []rawAttraction) ([]Attraction, error) {
	out := make([]Attraction, 0, len(raw))
	for _, r := range raw {
		a, err := mapAttraction(r)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func mapAttraction(raw rawAttraction) (Attraction, error) {
	slug := strings.TrimSpace(raw.Slug)
	name := strings.TrimSpace(raw.Name)
	if slug == "" || name == "" {
		return Attraction{}, fmt.Errorf("attraction missing slug or name (slug=%q)", raw.Slug)
	}
	return Attraction{
		Slug:          slug,
		Name:          name,
		RegionName:    strings.TrimSpace(raw.RegionName),
		Category:      strings.TrimSpace(raw.Category),
		FeaturedImage: strings.TrimSpace(raw.FeaturedImage),
		Difficulty:    Difficulty(strings.ToLower(strings.TrimSpace(raw.Difficulty))),
		IsFeatured:    raw.IsFeatured,
	}, nil
}
