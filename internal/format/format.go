package format

import (
	"fmt"
	"strings"
	"time"
)

// Coordinates renders a latitude/longitude pair with exactly four decimal
// places, e.g. "-3.0674, 37.3556".
func Coordinates(lat, lon float64) string {
	return fmt.Sprintf("%.4f, %.4f", lat, lon)
}

// AttractionCountLabel pluralizes the attraction-count badge. Only an exact
// count of 1 is singular; zero takes the plural form.
func AttractionCountLabel(n int) string {
	if n == 1 {
		return "1 Attraction"
	}
	return fmt.Sprintf("%d Attractions", n)
}

// FmtCount formats an integer with thousand separators, e.g. 1234 => "1,234".
func FmtCount(n int) string {
	return thousandSep(int64(n))
}

func thousandSep(n int64) string {
	s := fmt.Sprintf("%d", n)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	out := ""
	for i, c := range s {
		if i != 0 && (len(s)-i)%3 == 0 {
			out += ","
		}
		out += string(c)
	}
	if neg {
		return "-" + out
	}
	return out
}

// FmtDate formats a time in the site's short form.
func FmtDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2, 2006")
}
