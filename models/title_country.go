package models

import (
	"context"

	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
)

// TitleCountry is one exploded production country of a title. Titles without
// a known country have no rows here.
type TitleCountry struct {
	tableName struct{} `pg:"title_country"`

	TitleCountryID uuid.UUID `pg:"title_country_id,pk,type:uuid,default:uuid_generate_v4()"`
	TitleID        uuid.UUID `pg:"title_id,type:uuid,notnull"`
	Country        string    `pg:"country,notnull"`
}

// topCountriesQuery qualifies every country reference: the joined title table
// carries a country column too, so a bare one is ambiguous.
func topCountriesQuery(ctx context.Context, db *pg.DB, n, from, to int) *orm.Query {
	q := db.Model((*TitleCountry)(nil)).
		Context(ctx).
		ColumnExpr("title_country.country AS name, count(*) AS count").
		Join("JOIN title AS t ON t.title_id = title_country.title_id").
		GroupExpr("title_country.country").
		OrderExpr("count DESC, title_country.country ASC").
		Limit(n)
	return applyYearWindow(q, "t.year_added", from, to)
}

// GetTopCountries returns the n most frequent production countries within
// the year window, ties broken by name.
func GetTopCountries(ctx context.Context, db *pg.DB, n, from, to int) ([]NameCount, error) {
	var res []NameCount
	err := topCountriesQuery(ctx, db, n, from, to).Select(&res)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get top countries")
	}
	return res, nil
}

func distinctCountriesQuery(ctx context.Context, db *pg.DB, from, to int) *orm.Query {
	q := db.Model((*TitleCountry)(nil)).
		Context(ctx).
		ColumnExpr("count(DISTINCT title_country.country) AS count").
		Join("JOIN title AS t ON t.title_id = title_country.title_id")
	return applyYearWindow(q, "t.year_added", from, to)
}

// CountDistinctCountries returns the number of distinct production countries
// within the year window.
func CountDistinctCountries(ctx context.Context, db *pg.DB, from, to int) (int, error) {
	res := &struct {
		Count int
	}{}
	err := distinctCountriesQuery(ctx, db, from, to).Select(res)
	if err != nil {
		return 0, errors.Wrap(err, "failed to count distinct countries")
	}
	return res.Count, nil
}
