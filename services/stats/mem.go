package stats

import (
	"context"
	"sort"

	"github.com/flixboard/web-ui/services/catalog"
)

// MemSource aggregates a parsed dataset in memory. It backs the dashboard
// when no database is configured and the import pipeline is skipped.
type MemSource struct {
	ds *catalog.Dataset
}

func NewMemSource(ds *catalog.Dataset) *MemSource {
	return &MemSource{
		ds: ds,
	}
}

func matchYearWindow(year, from, to int) bool {
	if from == 0 && to == 0 {
		return true
	}
	if year == 0 {
		return false
	}
	if from > 0 && year < from {
		return false
	}
	if to > 0 && year > to {
		return false
	}
	return true
}

func (s *MemSource) filtered(f *Filter) []*catalog.Row {
	from, to := f.bounds()
	if from == 0 && to == 0 {
		return s.ds.Rows
	}
	var res []*catalog.Row
	for _, r := range s.ds.Rows {
		if matchYearWindow(r.YearAdded, from, to) {
			res = append(res, r)
		}
	}
	return res
}

func sortNameCounts(res []NameCount) {
	sort.Slice(res, func(i, j int) bool {
		if res[i].Count != res[j].Count {
			return res[i].Count > res[j].Count
		}
		return res[i].Name < res[j].Name
	})
}

func countNames(rows []*catalog.Row, pick func(*catalog.Row) []string) []NameCount {
	counts := map[string]int{}
	for _, r := range rows {
		for _, n := range pick(r) {
			counts[n]++
		}
	}
	res := make([]NameCount, 0, len(counts))
	for n, c := range counts {
		res = append(res, NameCount{Name: n, Count: c})
	}
	sortNameCounts(res)
	return res
}

func (s *MemSource) Summary(ctx context.Context, f *Filter) (*Summary, error) {
	rows := s.filtered(f)
	sum := &Summary{
		Total:         len(rows),
		UnparsedDates: s.ds.Report.UnparsedDates,
		Source:        s.ds.Report.Source,
	}
	loadedAt := s.ds.Report.LoadedAt
	sum.LoadedAt = &loadedAt

	countries := map[string]struct{}{}
	genres := map[string]struct{}{}
	var minutes, movieMinutes int
	for _, r := range rows {
		switch r.Type {
		case catalog.TypeMovie:
			sum.Movies++
			if r.DurationMin > 0 {
				minutes += r.DurationMin
				movieMinutes++
			}
		case catalog.TypeShow:
			sum.Shows++
		}
		for _, c := range r.Countries {
			countries[c] = struct{}{}
		}
		for _, g := range r.Genres {
			genres[g] = struct{}{}
		}
	}
	sum.Countries = len(countries)
	sum.Genres = len(genres)
	if sum.Total > 0 {
		sum.MovieShare = float64(sum.Movies) / float64(sum.Total)
	}
	if movieMinutes > 0 {
		sum.AvgMovieMinutes = float64(minutes) / float64(movieMinutes)
	}
	b, err := s.YearBounds(ctx)
	if err != nil {
		return nil, err
	}
	sum.Years = b
	return sum, nil
}

func (s *MemSource) TypeBreakdown(_ context.Context, f *Filter) ([]TypeCount, error) {
	counts := map[catalog.TitleType]int{}
	for _, r := range s.filtered(f) {
		counts[r.Type]++
	}
	res := make([]TypeCount, 0, len(counts))
	for t, c := range counts {
		res = append(res, TypeCount{Type: string(t), Count: c})
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].Count != res[j].Count {
			return res[i].Count > res[j].Count
		}
		return res[i].Type < res[j].Type
	})
	return res, nil
}

func (s *MemSource) AddedByYear(_ context.Context, f *Filter) ([]YearCount, error) {
	counts := map[int]int{}
	for _, r := range s.filtered(f) {
		if r.YearAdded > 0 {
			counts[r.YearAdded]++
		}
	}
	res := make([]YearCount, 0, len(counts))
	for y, c := range counts {
		res = append(res, YearCount{Year: y, Count: c})
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].Year < res[j].Year
	})
	return res, nil
}

func (s *MemSource) TopCountries(_ context.Context, n int, f *Filter) ([]NameCount, error) {
	res := countNames(s.filtered(f), func(r *catalog.Row) []string {
		return r.Countries
	})
	return capNameCounts(res, n), nil
}

func (s *MemSource) TopGenres(_ context.Context, n int, f *Filter) ([]NameCount, error) {
	res := countNames(s.filtered(f), func(r *catalog.Row) []string {
		return r.Genres
	})
	return capNameCounts(res, n), nil
}

func (s *MemSource) Ratings(_ context.Context, f *Filter) ([]NameCount, error) {
	res := countNames(s.filtered(f), func(r *catalog.Row) []string {
		if r.Rating == "" {
			return []string{Unrated}
		}
		return []string{r.Rating}
	})
	return res, nil
}

func (s *MemSource) YearBounds(_ context.Context) (*Bounds, error) {
	var b *Bounds
	for _, r := range s.ds.Rows {
		if r.YearAdded == 0 {
			continue
		}
		if b == nil {
			b = &Bounds{Min: r.YearAdded, Max: r.YearAdded}
			continue
		}
		if r.YearAdded < b.Min {
			b.Min = r.YearAdded
		}
		if r.YearAdded > b.Max {
			b.Max = r.YearAdded
		}
	}
	return b, nil
}

func capNameCounts(res []NameCount, n int) []NameCount {
	n = ClampTopN(n)
	if len(res) > n {
		res = res[:n]
	}
	return res
}
