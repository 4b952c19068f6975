package models

import (
	"context"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
)

type TitleType string

const (
	TitleTypeMovie TitleType = "Movie"
	TitleTypeShow  TitleType = "TV Show"
)

type Title struct {
	tableName struct{} `pg:"title"`

	TitleID     uuid.UUID  `pg:"title_id,pk,type:uuid,default:uuid_generate_v4()"`
	ShowID      string     `pg:"show_id,notnull"`
	Type        TitleType  `pg:"type,notnull"`
	Name        string     `pg:"name,notnull"`
	Director    string     `pg:"director"`
	Cast        []string   `pg:"cast,array"`
	Country     string     `pg:"country"`
	DateAdded   *time.Time `pg:"date_added"`
	YearAdded   *int16     `pg:"year_added"`
	ReleaseYear int16      `pg:"release_year,use_zero"`
	Rating      string     `pg:"rating"`
	Duration    string     `pg:"duration"`
	DurationMin *int16     `pg:"duration_min"`
	Seasons     *int16     `pg:"seasons"`
	Description string     `pg:"description"`
	CreatedAt   time.Time  `pg:"created_at,default:now()"`

	Countries []*TitleCountry `pg:"rel:has-many"`
	Genres    []*TitleGenre   `pg:"rel:has-many"`
}

type TypeCount struct {
	Type  TitleType
	Count int
}

type YearCount struct {
	Year  int
	Count int
}

type NameCount struct {
	Name  string
	Count int
}

type YearBounds struct {
	Min int
	Max int
}

func applyYearWindow(q *orm.Query, col string, from, to int) *orm.Query {
	if from > 0 {
		q = q.Where(col+" >= ?", from)
	}
	if to > 0 {
		q = q.Where(col+" <= ?", to)
	}
	return q
}

// CountTitles returns the number of titles added within the year window.
// Zero bounds leave the window open on that side.
func CountTitles(ctx context.Context, db *pg.DB, from, to int) (int, error) {
	q := db.Model((*Title)(nil)).Context(ctx)
	n, err := applyYearWindow(q, "year_added", from, to).Count()
	if err != nil {
		return 0, errors.Wrap(err, "failed to count titles")
	}
	return n, nil
}

// CountTitlesByType returns title counts per type, ordered by count.
func CountTitlesByType(ctx context.Context, db *pg.DB, from, to int) ([]TypeCount, error) {
	var res []TypeCount
	q := db.Model((*Title)(nil)).
		Context(ctx).
		ColumnExpr("type, count(*) AS count").
		Group("type").
		OrderExpr("count DESC, type ASC")
	err := applyYearWindow(q, "year_added", from, to).Select(&res)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count titles by type")
	}
	return res, nil
}

// CountTitlesByYearAdded returns per-year title counts for titles with a
// parsed added date, in ascending year order.
func CountTitlesByYearAdded(ctx context.Context, db *pg.DB, from, to int) ([]YearCount, error) {
	var res []YearCount
	q := db.Model((*Title)(nil)).
		Context(ctx).
		ColumnExpr("year_added AS year, count(*) AS count").
		Where("year_added IS NOT NULL").
		Group("year_added").
		OrderExpr("year_added ASC")
	err := applyYearWindow(q, "year_added", from, to).Select(&res)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count titles by year added")
	}
	return res, nil
}

// CountTitlesByRating returns title counts per rating, ordered by count.
// Titles without a rating are grouped under Unrated.
func CountTitlesByRating(ctx context.Context, db *pg.DB, from, to int) ([]NameCount, error) {
	var res []NameCount
	q := db.Model((*Title)(nil)).
		Context(ctx).
		ColumnExpr("CASE WHEN rating = '' THEN 'Unrated' ELSE rating END AS name, count(*) AS count").
		GroupExpr("CASE WHEN rating = '' THEN 'Unrated' ELSE rating END").
		OrderExpr("count DESC, name ASC")
	err := applyYearWindow(q, "year_added", from, to).Select(&res)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count titles by rating")
	}
	return res, nil
}

// GetYearAddedBounds returns the min and max year added over all titles,
// or nil when no title has a parsed added date.
func GetYearAddedBounds(ctx context.Context, db *pg.DB) (*YearBounds, error) {
	res := &struct {
		Min *int
		Max *int
	}{}
	err := db.Model((*Title)(nil)).
		Context(ctx).
		ColumnExpr("min(year_added) AS min, max(year_added) AS max").
		Select(res)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get year added bounds")
	}
	if res.Min == nil || res.Max == nil {
		return nil, nil
	}
	return &YearBounds{
		Min: *res.Min,
		Max: *res.Max,
	}, nil
}

// CountTitlesWithoutDate returns the number of titles whose added date could
// not be parsed from the dataset.
func CountTitlesWithoutDate(ctx context.Context, db *pg.DB) (int, error) {
	n, err := db.Model((*Title)(nil)).
		Context(ctx).
		Where("date_added IS NULL").
		Count()
	if err != nil {
		return 0, errors.Wrap(err, "failed to count titles without date")
	}
	return n, nil
}

// GetAvgMovieMinutes returns the average movie runtime in minutes within the
// year window, or nil when no movie has a known runtime.
func GetAvgMovieMinutes(ctx context.Context, db *pg.DB, from, to int) (*float64, error) {
	res := &struct {
		Avg *float64
	}{}
	q := db.Model((*Title)(nil)).
		Context(ctx).
		ColumnExpr("avg(duration_min) AS avg").
		Where("type = ?", TitleTypeMovie).
		Where("duration_min IS NOT NULL")
	err := applyYearWindow(q, "year_added", from, to).Select(res)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get average movie minutes")
	}
	return res.Avg, nil
}

// ReplaceAllTitles swaps the whole catalog for a fresh import inside a single
// transaction, so readers never observe a partially imported dataset.
func ReplaceAllTitles(ctx context.Context, db *pg.DB, titles []*Title, countries []*TitleCountry, genres []*TitleGenre) error {
	tx, err := db.BeginContext(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer func() {
		_ = tx.Close()
	}()

	for _, m := range []any{(*TitleGenre)(nil), (*TitleCountry)(nil), (*Title)(nil)} {
		_, err = tx.Model(m).
			Context(ctx).
			Where("TRUE").
			Delete()
		if err != nil {
			return errors.Wrap(err, "failed to clear titles")
		}
	}

	if len(titles) > 0 {
		_, err = tx.Model(&titles).
			Context(ctx).
			Insert()
		if err != nil {
			return errors.Wrap(err, "failed to insert titles")
		}
	}
	if len(countries) > 0 {
		_, err = tx.Model(&countries).
			Context(ctx).
			Insert()
		if err != nil {
			return errors.Wrap(err, "failed to insert title countries")
		}
	}
	if len(genres) > 0 {
		_, err = tx.Model(&genres).
			Context(ctx).
			Insert()
		if err != nil {
			return errors.Wrap(err, "failed to insert title genres")
		}
	}

	return tx.Commit()
}
