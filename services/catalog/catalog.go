package catalog

import (
	"time"
)

type TitleType string

const (
	TypeMovie TitleType = "Movie"
	TypeShow  TitleType = "TV Show"
)

// Unknown is the placeholder for missing text values. It never participates
// in country/genre rankings.
const Unknown = "Unknown"

// Row is a single catalog entry as parsed from the titles CSV.
type Row struct {
	ShowID      string
	Type        TitleType
	Title       string
	Director    string
	Cast        []string
	Country     string
	Countries   []string
	DateAdded   *time.Time
	YearAdded   int
	ReleaseYear int
	Rating      string
	Duration    string
	DurationMin int
	Seasons     int
	Genres      []string
	Description string
}

// Report describes the outcome of a dataset load.
type Report struct {
	Source        string
	Rows          int
	SkippedRows   int
	UnparsedDates int
	LoadedAt      time.Time
}

type Dataset struct {
	Rows   []*Row
	Report *Report
}
