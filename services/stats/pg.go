package stats

import (
	"context"

	"github.com/pkg/errors"
	cs "github.com/webtor-io/common-services"

	"github.com/flixboard/web-ui/models"

	"github.com/go-pg/pg/v10"
)

// PGSource aggregates the imported catalog with database queries.
type PGSource struct {
	pg *cs.PG
}

func NewPGSource(pgs *cs.PG) *PGSource {
	return &PGSource{
		pg: pgs,
	}
}

func (s *PGSource) db() (*pg.DB, error) {
	db := s.pg.Get()
	if db == nil {
		return nil, errors.New("db not initialized")
	}
	return db, nil
}

func (s *PGSource) Summary(ctx context.Context, f *Filter) (*Summary, error) {
	db, err := s.db()
	if err != nil {
		return nil, err
	}
	from, to := f.bounds()

	sum := &Summary{}
	sum.Total, err = models.CountTitles(ctx, db, from, to)
	if err != nil {
		return nil, err
	}
	types, err := models.CountTitlesByType(ctx, db, from, to)
	if err != nil {
		return nil, err
	}
	for _, t := range types {
		switch t.Type {
		case models.TitleTypeMovie:
			sum.Movies = t.Count
		case models.TitleTypeShow:
			sum.Shows = t.Count
		}
	}
	if sum.Total > 0 {
		sum.MovieShare = float64(sum.Movies) / float64(sum.Total)
	}
	sum.Countries, err = models.CountDistinctCountries(ctx, db, from, to)
	if err != nil {
		return nil, err
	}
	sum.Genres, err = models.CountDistinctGenres(ctx, db, from, to)
	if err != nil {
		return nil, err
	}
	avg, err := models.GetAvgMovieMinutes(ctx, db, from, to)
	if err != nil {
		return nil, err
	}
	if avg != nil {
		sum.AvgMovieMinutes = *avg
	}
	sum.UnparsedDates, err = models.CountTitlesWithoutDate(ctx, db)
	if err != nil {
		return nil, err
	}
	sum.Years, err = s.YearBounds(ctx)
	if err != nil {
		return nil, err
	}
	run, err := models.GetLastImportRun(ctx, db)
	if err != nil {
		return nil, err
	}
	if run != nil {
		sum.Source = run.Source
		createdAt := run.CreatedAt
		sum.LoadedAt = &createdAt
	}
	return sum, nil
}

func (s *PGSource) TypeBreakdown(ctx context.Context, f *Filter) ([]TypeCount, error) {
	db, err := s.db()
	if err != nil {
		return nil, err
	}
	from, to := f.bounds()
	types, err := models.CountTitlesByType(ctx, db, from, to)
	if err != nil {
		return nil, err
	}
	res := make([]TypeCount, len(types))
	for i, t := range types {
		res[i] = TypeCount{Type: string(t.Type), Count: t.Count}
	}
	return res, nil
}

func (s *PGSource) AddedByYear(ctx context.Context, f *Filter) ([]YearCount, error) {
	db, err := s.db()
	if err != nil {
		return nil, err
	}
	from, to := f.bounds()
	years, err := models.CountTitlesByYearAdded(ctx, db, from, to)
	if err != nil {
		return nil, err
	}
	res := make([]YearCount, len(years))
	for i, y := range years {
		res[i] = YearCount{Year: y.Year, Count: y.Count}
	}
	return res, nil
}

func (s *PGSource) TopCountries(ctx context.Context, n int, f *Filter) ([]NameCount, error) {
	db, err := s.db()
	if err != nil {
		return nil, err
	}
	from, to := f.bounds()
	return mapNameCounts(models.GetTopCountries(ctx, db, ClampTopN(n), from, to))
}

func (s *PGSource) TopGenres(ctx context.Context, n int, f *Filter) ([]NameCount, error) {
	db, err := s.db()
	if err != nil {
		return nil, err
	}
	from, to := f.bounds()
	return mapNameCounts(models.GetTopGenres(ctx, db, ClampTopN(n), from, to))
}

func (s *PGSource) Ratings(ctx context.Context, f *Filter) ([]NameCount, error) {
	db, err := s.db()
	if err != nil {
		return nil, err
	}
	from, to := f.bounds()
	return mapNameCounts(models.CountTitlesByRating(ctx, db, from, to))
}

func (s *PGSource) YearBounds(ctx context.Context) (*Bounds, error) {
	db, err := s.db()
	if err != nil {
		return nil, err
	}
	b, err := models.GetYearAddedBounds(ctx, db)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, nil
	}
	return &Bounds{Min: b.Min, Max: b.Max}, nil
}

func mapNameCounts(names []models.NameCount, err error) ([]NameCount, error) {
	if err != nil {
		return nil, err
	}
	res := make([]NameCount, len(names))
	for i, n := range names {
		res[i] = NameCount{Name: n.Name, Count: n.Count}
	}
	return res, nil
}
