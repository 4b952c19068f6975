package models

import (
	"context"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
)

// ImportRun records one dataset import, successful or not.
type ImportRun struct {
	tableName struct{} `pg:"import_run"`

	ImportRunID   uuid.UUID `pg:"import_run_id,pk,type:uuid,default:uuid_generate_v4()"`
	Source        string    `pg:"source,notnull"`
	Titles        int       `pg:"titles,notnull,use_zero"`
	Skipped       int       `pg:"skipped,notnull,use_zero"`
	UnparsedDates int       `pg:"unparsed_dates,notnull,use_zero"`
	Error         string    `pg:"error"`
	CreatedAt     time.Time `pg:"created_at,notnull,default:now()"`
}

// CreateImportRun creates a new import run record
func CreateImportRun(ctx context.Context, db pg.DBI, r *ImportRun) error {
	_, err := db.Model(r).Context(ctx).Insert()
	if err != nil {
		return errors.Wrap(err, "failed to create import run")
	}
	return nil
}

// GetLastImportRun returns the most recent import run
func GetLastImportRun(ctx context.Context, db pg.DBI) (*ImportRun, error) {
	r := &ImportRun{}
	err := db.Model(r).
		Context(ctx).
		Order("created_at DESC").
		Limit(1).
		Select()
	if err != nil {
		if errors.Is(err, pg.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to get last import run")
	}
	return r, nil
}
