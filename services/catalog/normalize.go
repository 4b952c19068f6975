package catalog

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// NormalizeName trims a country/genre value and fixes all-lowercase entries
// ("south korea" -> "South Korea"). Mixed-case and all-caps values are kept
// as-is so acronyms survive.
func NormalizeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if s == strings.ToLower(s) {
		return titleCaser.String(s)
	}
	return s
}

// SplitList explodes a comma-separated cell into normalized parts. Empty
// entries and the Unknown placeholder are dropped, so a literal "Unknown"
// in the source data never reaches a ranking.
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		n := NormalizeName(p)
		if n == "" || n == Unknown {
			continue
		}
		res = append(res, n)
	}
	return res
}

var addedLayouts = []string{
	"January 2, 2006",
	"Jan 2, 2006",
	"2006-01-02",
	"1/2/2006",
}

func parseDateAdded(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, l := range addedLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return &t
		}
	}
	return nil
}

func parseTitleType(s string) (TitleType, bool) {
	s = strings.TrimSpace(s)
	switch {
	case strings.EqualFold(s, string(TypeMovie)):
		return TypeMovie, true
	case strings.EqualFold(s, string(TypeShow)):
		return TypeShow, true
	}
	return "", false
}

// parseDuration reads "90 min" into minutes and "2 Seasons" into a season
// count. Anything else leaves both at zero.
func parseDuration(s string) (minutes int, seasons int) {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) != 2 {
		return
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 0 {
		return
	}
	unit := strings.ToLower(fields[1])
	switch {
	case unit == "min":
		minutes = n
	case strings.HasPrefix(unit, "season"):
		seasons = n
	}
	return
}
