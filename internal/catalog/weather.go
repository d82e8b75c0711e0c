package catalog

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
)

// CurrentWeather is the latest observation for an attraction.
type CurrentWeather struct {
	TempC     float64
	Condition string
	Humidity  int
	WindKph   float64
	Icon      string
}

// ForecastDay is one entry of the short-range forecast.
type ForecastDay struct {
	Date      string
	HighC     float64
	LowC      float64
	Condition string
}

// SeasonalNotes maps a season name to visiting advice for an attraction.
type SeasonalNotes map[string]string

type rawCurrentWeather struct {
	TempC     float64 `json:"temp_c"`
	Condition string  `json:"condition"`
	Humidity  int     `json:"humidity"`
	WindKph   float64 `json:"wind_kph"`
	Icon      string  `json:"icon"`
}

type rawForecastDay struct {
	Date      string  `json:"date"`
	HighC     float64 `json:"high_c"`
	LowC      float64 `json:"low_c"`
	Condition string  `json:"condition"`
}

// Current returns the current conditions for an attraction slug.
func (c *Client) Current(ctx context.Context, attraction string) (CurrentWeather, error) {
	return fetch(ctx, c, weatherPath("current", attraction), decodeCurrent, func() (CurrentWeather, error) {
		return c.data.current(attraction)
	})
}

// Forecast returns the short-range forecast for an attraction slug.
func (c *Client) Forecast(ctx context.Context, attraction string) ([]ForecastDay, error) {
	return fetch(ctx, c, weatherPath("forecast", attraction), decodeForecast, func() ([]ForecastDay, error) {
		return c.data.forecast(attraction)
	})
}

// Seasonal returns seasonal visiting notes for an attraction slug. The
// fallback is an empty mapping, never an error.
func (c *Client) Seasonal(ctx context.Context, attraction string) (SeasonalNotes, error) {
	return fetch(ctx, c, weatherPath("seasonal", attraction), decodeSeasonal, func() (SeasonalNotes, error) {
		return c.data.seasonal(attraction), nil
	})
}

func weatherPath(kind, attraction string) string {
	return "/weather/" + kind + "/?attraction=" + url.QueryEscape(strings.TrimSpace(attraction))
}

func decodeCurrent(body []byte) (CurrentWeather, error) {
	var raw rawCurrentWeather
	if err := json.Unmarshal(body, &raw); err != nil {
		return CurrentWeather{}, err
	}
	return CurrentWeather{
		TempC:     raw.TempC,
		Condition: strings.TrimSpace(raw.Condition),
		Humidity:  raw.Humidity,
		WindKph:   raw.WindKph,
		Icon:      strings.TrimSpace(raw.Icon),
	}, nil
}

func decodeForecast(body []byte) ([]ForecastDay, error) {
	var raw []rawForecastDay
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	out := make([]ForecastDay, 0, len(raw))
	for _, d := range raw {
		out = append(out, ForecastDay{
			Date:      strings.TrimSpace(d.Date),
			HighC:     d.HighC,
			LowC:      d.LowC,
			Condition: strings.TrimSpace(d.Condition),
		})
	}
	return out, nil
}

func decodeSeasonal(body []byte) (SeasonalNotes, error) {
	var raw map[string]string
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	notes := make(SeasonalNotes, len(raw))
	for season, note := range raw {
		notes[strings.TrimSpace(season)] = strings.TrimSpace(note)
	}
	return notes, nil
}
