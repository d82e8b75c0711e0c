package seo

// OpenGraph holds the social preview metadata for a page.
type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
}

// Meta is the head metadata view model shared by every page.
type Meta struct {
	Title       string
	Description string
	Canonical   string
	OG          OpenGraph
}

const siteName = "Discover Tanzania"

// ForPage builds default metadata for a page, suffixing the site name.
func ForPage(title, description string) Meta {
	full := siteName
	if title != "" {
		full = title + " | " + siteName
	}
	return Meta{
		Title:       full,
		Description: description,
		OG: OpenGraph{
			Title:       full,
			Description: description,
			Type:        "website",
		},
	}
}
