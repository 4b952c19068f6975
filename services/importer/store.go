package importer

import (
	"context"

	"github.com/pkg/errors"
	cs "github.com/webtor-io/common-services"

	"github.com/flixboard/web-ui/models"
)

type importStore interface {
	ReplaceAll(ctx context.Context, titles []*models.Title, countries []*models.TitleCountry, genres []*models.TitleGenre) error
	CreateRun(ctx context.Context, r *models.ImportRun) error
}

type pgImportStore struct {
	pg *cs.PG
}

func (s *pgImportStore) ReplaceAll(ctx context.Context, titles []*models.Title, countries []*models.TitleCountry, genres []*models.TitleGenre) error {
	db := s.pg.Get()
	if db == nil {
		return errors.New("db not initialized")
	}
	return models.ReplaceAllTitles(ctx, db, titles, countries, genres)
}

func (s *pgImportStore) CreateRun(ctx context.Context, r *models.ImportRun) error {
	db := s.pg.Get()
	if db == nil {
		return errors.New("db not initialized")
	}
	return models.CreateImportRun(ctx, db, r)
}
