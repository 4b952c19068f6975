package importer

import (
	"context"
	"time"

	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"
	cs "github.com/webtor-io/common-services"

	"github.com/flixboard/web-ui/models"
	"github.com/flixboard/web-ui/services/catalog"

	uuid "github.com/satori/go.uuid"
)

// Importer replaces the stored catalog with a freshly parsed dataset and
// records the run.
type Importer struct {
	store importStore
}

func New(pgs *cs.PG) *Importer {
	return &Importer{
		store: &pgImportStore{
			pg: pgs,
		},
	}
}

func (s *Importer) Import(ctx context.Context, ds *catalog.Dataset) (*models.ImportRun, error) {
	titles, countries, genres := buildModels(ds)
	started := time.Now()

	run := &models.ImportRun{
		Source:        ds.Report.Source,
		Titles:        len(titles),
		Skipped:       ds.Report.SkippedRows,
		UnparsedDates: ds.Report.UnparsedDates,
	}
	if err := s.store.ReplaceAll(ctx, titles, countries, genres); err != nil {
		run.Error = err.Error()
		if rerr := s.store.CreateRun(ctx, run); rerr != nil {
			log.WithError(rerr).Warn("failed to record failed import run")
		}
		return nil, err
	}
	if err := s.store.CreateRun(ctx, run); err != nil {
		return nil, err
	}

	log.Infof("imported %v titles from %v in %v (%v countries, %v genres, %v rows skipped)",
		humanize.Comma(int64(run.Titles)), run.Source, time.Since(started).Round(time.Millisecond),
		humanize.Comma(int64(len(countries))), humanize.Comma(int64(len(genres))), run.Skipped)
	return run, nil
}

func buildModels(ds *catalog.Dataset) ([]*models.Title, []*models.TitleCountry, []*models.TitleGenre) {
	titles := make([]*models.Title, 0, len(ds.Rows))
	var countries []*models.TitleCountry
	var genres []*models.TitleGenre
	for _, r := range ds.Rows {
		id := uuid.NewV4()
		t := &models.Title{
			TitleID:     id,
			ShowID:      r.ShowID,
			Type:        models.TitleType(r.Type),
			Name:        r.Title,
			Director:    r.Director,
			Cast:        r.Cast,
			Country:     r.Country,
			DateAdded:   r.DateAdded,
			ReleaseYear: int16(r.ReleaseYear),
			Rating:      r.Rating,
			Duration:    r.Duration,
			Description: r.Description,
		}
		if r.YearAdded > 0 {
			y := int16(r.YearAdded)
			t.YearAdded = &y
		}
		if r.DurationMin > 0 {
			m := int16(r.DurationMin)
			t.DurationMin = &m
		}
		if r.Seasons > 0 {
			n := int16(r.Seasons)
			t.Seasons = &n
		}
		titles = append(titles, t)
		for _, c := range r.Countries {
			countries = append(countries, &models.TitleCountry{
				TitleID: id,
				Country: c,
			})
		}
		for _, g := range r.Genres {
			genres = append(genres, &models.TitleGenre{
				TitleID: id,
				Genre:   g,
			})
		}
	}
	return titles, countries, genres
}
