package models

import (
	"context"

	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
)

// TitleGenre is one exploded "listed in" genre of a title.
type TitleGenre struct {
	tableName struct{} `pg:"title_genre"`

	TitleGenreID uuid.UUID `pg:"title_genre_id,pk,type:uuid,default:uuid_generate_v4()"`
	TitleID      uuid.UUID `pg:"title_id,type:uuid,notnull"`
	Genre        string    `pg:"genre,notnull"`
}

func topGenresQuery(ctx context.Context, db *pg.DB, n, from, to int) *orm.Query {
	q := db.Model((*TitleGenre)(nil)).
		Context(ctx).
		ColumnExpr("title_genre.genre AS name, count(*) AS count").
		Join("JOIN title AS t ON t.title_id = title_genre.title_id").
		GroupExpr("title_genre.genre").
		OrderExpr("count DESC, title_genre.genre ASC").
		Limit(n)
	return applyYearWindow(q, "t.year_added", from, to)
}

// GetTopGenres returns the n most frequent genres within the year window,
// ties broken by name.
func GetTopGenres(ctx context.Context, db *pg.DB, n, from, to int) ([]NameCount, error) {
	var res []NameCount
	err := topGenresQuery(ctx, db, n, from, to).Select(&res)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get top genres")
	}
	return res, nil
}

func distinctGenresQuery(ctx context.Context, db *pg.DB, from, to int) *orm.Query {
	q := db.Model((*TitleGenre)(nil)).
		Context(ctx).
		ColumnExpr("count(DISTINCT title_genre.genre) AS count").
		Join("JOIN title AS t ON t.title_id = title_genre.title_id")
	return applyYearWindow(q, "t.year_added", from, to)
}

// CountDistinctGenres returns the number of distinct genres within the year
// window.
func CountDistinctGenres(ctx context.Context, db *pg.DB, from, to int) (int, error) {
	res := &struct {
		Count int
	}{}
	err := distinctGenresQuery(ctx, db, from, to).Select(res)
	if err != nil {
		return 0, errors.Wrap(err, "failed to count distinct genres")
	}
	return res.Count, nil
}
