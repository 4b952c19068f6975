package stats

import (
	"context"
	"fmt"
	"time"
)

const (
	DefaultTopN = 10
	MaxTopN     = 50
)

// Unrated groups titles with an empty rating in rating breakdowns.
const Unrated = "Unrated"

// Filter restricts aggregates to titles added within an inclusive year
// window. A zero bound leaves that side open; titles without a parsed added
// date only match the unbounded filter.
type Filter struct {
	YearFrom int
	YearTo   int
}

func (s *Filter) bounds() (from, to int) {
	if s == nil {
		return 0, 0
	}
	return s.YearFrom, s.YearTo
}

func (s *Filter) key() string {
	from, to := s.bounds()
	return fmt.Sprintf("%d-%d", from, to)
}

type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type Bounds struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Summary is the headline card of the dashboard. Counts respect the filter;
// Years, UnparsedDates and the load metadata always describe the whole
// catalog.
type Summary struct {
	Total           int        `json:"total"`
	Movies          int        `json:"movies"`
	Shows           int        `json:"shows"`
	MovieShare      float64    `json:"movie_share"`
	Countries       int        `json:"countries"`
	Genres          int        `json:"genres"`
	AvgMovieMinutes float64    `json:"avg_movie_minutes"`
	UnparsedDates   int        `json:"unparsed_dates"`
	Years           *Bounds    `json:"years,omitempty"`
	Source          string     `json:"source,omitempty"`
	LoadedAt        *time.Time `json:"loaded_at,omitempty"`
}

// Source computes catalog aggregates. Implementations exist over the
// database and over an in-memory dataset.
type Source interface {
	Summary(ctx context.Context, f *Filter) (*Summary, error)
	TypeBreakdown(ctx context.Context, f *Filter) ([]TypeCount, error)
	AddedByYear(ctx context.Context, f *Filter) ([]YearCount, error)
	TopCountries(ctx context.Context, n int, f *Filter) ([]NameCount, error)
	TopGenres(ctx context.Context, n int, f *Filter) ([]NameCount, error)
	Ratings(ctx context.Context, f *Filter) ([]NameCount, error)
	YearBounds(ctx context.Context) (*Bounds, error)
}

// ClampTopN normalizes a requested list size to [1, MaxTopN], using
// DefaultTopN for out-of-range input.
func ClampTopN(n int) int {
	if n <= 0 {
		return DefaultTopN
	}
	if n > MaxTopN {
		return MaxTopN
	}
	return n
}
