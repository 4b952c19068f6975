package migration

import (
	"github.com/go-pg/migrations/v8"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	cs "github.com/webtor-io/common-services"
)

const migrationsDir = "migrations"

// PGMigration applies the SQL migrations shipped in the migrations directory.
type PGMigration struct {
	pg  *cs.PG
	col *migrations.Collection
}

func NewPGMigration(pgs *cs.PG) *PGMigration {
	return &PGMigration{
		pg:  pgs,
		col: migrations.NewCollection(),
	}
}

// Run executes a migration command ("up", "down", "reset", "version").
// Without arguments it migrates up. When no database is configured it does
// nothing, so the dashboard can run dataset-only.
func (s *PGMigration) Run(a ...string) error {
	db := s.pg.Get()
	if db == nil {
		log.Info("db not initialized, skipping migrations")
		return nil
	}
	if err := s.col.DiscoverSQLMigrations(migrationsDir); err != nil {
		return errors.Wrapf(err, "failed to discover migrations in %v", migrationsDir)
	}
	if _, _, err := s.col.Run(db, "init"); err != nil {
		return errors.Wrap(err, "failed to init migrations table")
	}
	oldVersion, newVersion, err := s.col.Run(db, a...)
	if err != nil {
		return errors.Wrap(err, "failed to run migrations")
	}
	if newVersion != oldVersion {
		log.Infof("db migrated from version %d to %d", oldVersion, newVersion)
	} else {
		log.Infof("db migration version is %d", oldVersion)
	}
	return nil
}
