package catalog

import (
	"fmt"
	"strings"
)

// Dataset is the in-memory substitute consulted whenever the API cannot
// answer. A nil section makes that section's producer fail, which
// ultimately surfaces as a page-level error.
type Dataset struct {
	Regions     []Region
	Attractions []Attraction
	Current     map[string]CurrentWeather
	Forecast    map[string][]ForecastDay
	Seasonal    map[string]SeasonalNotes
}

func (d *Dataset) regions() ([]Region, error) {
	if d == nil || d.Regions == nil {
		return nil, fmt.Errorf("regions: %w", ErrFallbackUnavailable)
	}
	return append([]Region(nil), d.Regions...), nil
}

func (d *Dataset) attractions() ([]Attraction, error) {
	if d == nil || d.Attractions == nil {
		return nil, fmt.Errorf("attractions: %w", ErrFallbackUnavailable)
	}
	return append([]Attraction(nil), d.Attractions...), nil
}

func (d *Dataset) featured() ([]Attraction, error) {
	all, err := d.attractions()
	if err != nil {
		return nil, err
	}
	out := make([]Attraction, 0, len(all))
	for _, a := range all {
		if a.IsFeatured {
			out = append(out, a)
		}
	}
	return out, nil
}

func (d *Dataset) attraction(slug string) (Attraction, error) {
	all, err := d.attractions()
	if err != nil {
		return Attraction{}, err
	}
	for _, a := range all {
		if a.Slug == slug {
			return a, nil
		}
	}
	return Attraction{}, fmt.Errorf("attraction %q: %w", slug, ErrNotFound)
}

func (d *Dataset) byCategory() (map[string][]Attraction, error) {
	return d.group(func(a Attraction) string { return a.Category })
}

func (d *Dataset) byRegion() (map[string][]Attraction, error) {
	return d.group(func(a Attraction) string { return a.RegionName })
}

func (d *Dataset) group(key func(Attraction) string) (map[string][]Attraction, error) {
	out := map[string][]Attraction{}
	if d == nil || d.Attractions == nil {
		return out, nil
	}
	for _, a := range d.Attractions {
		k := strings.TrimSpace(key(a))
		if k == "" {
			continue
		}
		out[k] = append(out[k], a)
	}
	return out, nil
}

func (d *Dataset) current(slug string) (CurrentWeather, error) {
	if d != nil {
		if cw, ok := d.Current[slug]; ok {
			return cw, nil
		}
	}
	return CurrentWeather{}, fmt.Errorf("current weather %q: %w", slug, ErrNotFound)
}

func (d *Dataset) forecast(slug string) ([]ForecastDay, error) {
	if d != nil {
		if fc, ok := d.Forecast[slug]; ok {
			return append([]ForecastDay(nil), fc...), nil
		}
	}
	return nil, fmt.Errorf("forecast %q: %w", slug, ErrNotFound)
}

func (d *Dataset) seasonal(slug string) SeasonalNotes {
	if d == nil {
		return SeasonalNotes{}
	}
	notes, ok := d.Seasonal[slug]
	if !ok {
		return SeasonalNotes{}
	}
	out := make(SeasonalNotes, len(notes))
	for k, v := range notes {
		out[k] = v
	}
	return out
}

// DefaultDataset returns the bundled Tanzania dataset used when the API is
// unreachable or the site runs in mock-only mode.
func DefaultDataset() *Dataset {
	return &Dataset{
		Regions: []Region{
			{
				Slug:            "kilimanjaro",
				Name:            "Kilimanjaro",
				Description:     "Home to Africa's highest peak, coffee farms on its slopes, and waterfalls tucked into the foothill villages.",
				Image:           "/assets/img/regions/kilimanjaro.jpg",
				Latitude:        -3.0674,
				Longitude:       37.3556,
				AttractionCount: 5,
			},
			{
				Slug:            "serengeti",
				Name:            "Serengeti",
				Description:     "Endless savannah plains famous for the Great Migration and year-round big-cat sightings.",
				Image:           "/assets/img/regions/serengeti.jpg",
				Latitude:        -2.3333,
				Longitude:       34.8333,
				AttractionCount: 2,
			},
			{
				Slug:            "zanzibar",
				Name:            "Zanzibar",
				Description:     "Spice island with the winding alleys of Stone Town, white-sand beaches, and a rare indigenous forest.",
				Image:           "/assets/img/regions/zanzibar.jpg",
				Latitude:        -6.1659,
				Longitude:       39.2026,
				AttractionCount: 3,
			},
			{
				Slug:            "ngorongoro",
				Name:            "Ngorongoro",
				Description:     "A collapsed volcanic caldera sheltering one of the densest wildlife populations on the continent.",
				Image:           "/assets/img/regions/ngorongoro.jpg",
				Latitude:        -3.2028,
				Longitude:       35.5581,
				AttractionCount: 3,
			},
		},
		Attractions: []Attraction{
			{
				Slug:          "mount-kilimanjaro",
				Name:          "Mount Kilimanjaro",
				RegionName:    "Kilimanjaro",
				Category:      "mountain",
				FeaturedImage: "/assets/img/attractions/mount-kilimanjaro.jpg",
				Difficulty:    DifficultyExtreme,
				IsFeatured:    true,
			},
			{
				Slug:          "materuni-waterfalls",
				Name:          "Materuni Waterfalls",
				RegionName:    "Kilimanjaro",
				Category:      "waterfall",
				FeaturedImage: "/assets/img/attractions/materuni-waterfalls.jpg",
				Difficulty:    DifficultyModerate,
			},
			{
				Slug:       "kikuletwa-hot-springs",
				Name:       "Kikuletwa Hot Springs",
				RegionName: "Kilimanjaro",
				Category:   "spring",
				Difficulty: DifficultyEasy,
			},
			{
				Slug:          "lake-chala",
				Name:          "Lake Chala",
				RegionName:    "Kilimanjaro",
				Category:      "lake",
				FeaturedImage: "/assets/img/attractions/lake-chala.jpg",
				Difficulty:    DifficultyModerate,
			},
			{
				Slug:       "marangu-falls",
				Name:       "Marangu Falls",
				RegionName: "Kilimanjaro",
				Category:   "waterfall",
				Difficulty: DifficultyEasy,
			},
			{
				Slug:          "great-migration",
				Name:          "Great Migration",
				RegionName:    "Serengeti",
				Category:      "wildlife",
				FeaturedImage: "/assets/img/attractions/great-migration.jpg",
				Difficulty:    DifficultyModerate,
				IsFeatured:    true,
			},
			{
				Slug:       "seronera-valley",
				Name:       "Seronera Valley",
				RegionName: "Serengeti",
				Category:   "wildlife",
				Difficulty: DifficultyEasy,
			},
			{
				Slug:          "stone-town",
				Name:          "Stone Town",
				RegionName:    "Zanzibar",
				Category:      "heritage",
				FeaturedImage: "/assets/img/attractions/stone-town.jpg",
				Difficulty:    DifficultyEasy,
				IsFeatured:    true,
			},
			{
				Slug:          "nungwi-beach",
				Name:          "Nungwi Beach",
				RegionName:    "Zanzibar",
				Category:      "beach",
				FeaturedImage: "/assets/img/attractions/nungwi-beach.jpg",
				Difficulty:    DifficultyEasy,
			},
			{
				Slug:       "jozani-forest",
				Name:       "Jozani Forest",
				RegionName: "Zanzibar",
				Category:   "forest",
				Difficulty: DifficultyModerate,
			},
			{
				Slug:          "ngorongoro-crater",
				Name:          "Ngorongoro Crater",
				RegionName:    "Ngorongoro",
				Category:      "wildlife",
				FeaturedImage: "/assets/img/attractions/ngorongoro-crater.jpg",
				Difficulty:    DifficultyModerate,
				IsFeatured:    true,
			},
			{
				Slug:       "olduvai-gorge",
				Name:       "Olduvai Gorge",
				RegionName: "Ngorongoro",
				Category:   "heritage",
				Difficulty: DifficultyEasy,
			},
			{
				Slug:       "empakaai-crater",
				Name:       "Empakaai Crater",
				RegionName: "Ngorongoro",
				Category:   "mountain",
				Difficulty: DifficultyExtreme,
			},
		},
		Current: map[string]CurrentWeather{
			"mount-kilimanjaro": {TempC: -7, Condition: "Clear, icy summit winds", Humidity: 38, WindKph: 42, Icon: "snowflake"},
			"great-migration":   {TempC: 27, Condition: "Sunny with scattered clouds", Humidity: 45, WindKph: 14, Icon: "sun"},
			"stone-town":        {TempC: 30, Condition: "Humid, light sea breeze", Humidity: 78, WindKph: 19, Icon: "cloud-sun"},
			"ngorongoro-crater": {TempC: 19, Condition: "Morning mist over the rim", Humidity: 64, WindKph: 11, Icon: "cloud"},
		},
		Forecast: map[string][]ForecastDay{
			"mount-kilimanjaro": {
				{Date: "Mon", HighC: -2, LowC: -12, Condition: "Clear"},
				{Date: "Tue", HighC: -4, LowC: -14, Condition: "Light snow"},
				{Date: "Wed", HighC: -1, LowC: -10, Condition: "Windy"},
			},
			"ngorongoro-crater": {
				{Date: "Mon", HighC: 22, LowC: 12, Condition: "Partly cloudy"},
				{Date: "Tue", HighC: 23, LowC: 13, Condition: "Sunny"},
				{Date: "Wed", HighC: 21, LowC: 11, Condition: "Showers"},
			},
		},
		Seasonal: map[string]SeasonalNotes{
			"mount-kilimanjaro": {
				"january-march":     "Warmer trekking window with quieter trails; afternoon clouds on the southern routes.",
				"june-october":      "Driest months and the busiest season on the Machame and Marangu routes.",
				"november-december": "Short rains; lower slopes muddy but summit views often crystal clear.",
			},
			"great-migration": {
				"december-march": "Herds calve in the southern plains; predator activity peaks.",
				"june-july":      "River crossings in the Western Corridor; book camps months ahead.",
			},
		},
	}
}
