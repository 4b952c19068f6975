package importer

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/flixboard/web-ui/models"
	"github.com/flixboard/web-ui/services/catalog"
)

// --- Mock implementations ---

type mockStore struct {
	replaceErr error
	createErr  error

	titles    []*models.Title
	countries []*models.TitleCountry
	genres    []*models.TitleGenre
	run       *models.ImportRun
}

func (m *mockStore) ReplaceAll(_ context.Context, titles []*models.Title, countries []*models.TitleCountry, genres []*models.TitleGenre) error {
	m.titles = titles
	m.countries = countries
	m.genres = genres
	return m.replaceErr
}

func (m *mockStore) CreateRun(_ context.Context, r *models.ImportRun) error {
	m.run = r
	return m.createErr
}

// --- Test helpers ---

func testDataset() *catalog.Dataset {
	added := time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC)
	return &catalog.Dataset{
		Rows: []*catalog.Row{
			{
				ShowID:      "s1",
				Type:        catalog.TypeMovie,
				Title:       "Some Movie",
				Director:    "Someone",
				Country:     "United States",
				Countries:   []string{"United States", "India"},
				Genres:      []string{"Dramas"},
				DateAdded:   &added,
				YearAdded:   2020,
				ReleaseYear: 2019,
				Rating:      "PG-13",
				Duration:    "95 min",
				DurationMin: 95,
			},
			{
				ShowID:   "s2",
				Type:     catalog.TypeShow,
				Title:    "Some Show",
				Director: catalog.Unknown,
				Country:  catalog.Unknown,
				Genres:   []string{"TV Dramas", "TV Mysteries"},
				Duration: "2 Seasons",
				Seasons:  2,
			},
		},
		Report: &catalog.Report{
			Source:        "titles.csv",
			Rows:          2,
			SkippedRows:   1,
			UnparsedDates: 1,
		},
	}
}

// --- Tests ---

func TestImport(t *testing.T) {
	store := &mockStore{}
	imp := &Importer{store: store}

	run, err := imp.Import(context.Background(), testDataset())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(store.titles) != 2 {
		t.Fatalf("expected 2 titles, got %d", len(store.titles))
	}
	if len(store.countries) != 2 {
		t.Errorf("expected 2 exploded countries, got %d", len(store.countries))
	}
	if len(store.genres) != 3 {
		t.Errorf("expected 3 exploded genres, got %d", len(store.genres))
	}

	movie := store.titles[0]
	if movie.Type != models.TitleTypeMovie || movie.Name != "Some Movie" {
		t.Errorf("unexpected movie %+v", movie)
	}
	if movie.YearAdded == nil || *movie.YearAdded != 2020 {
		t.Errorf("expected year added 2020, got %v", movie.YearAdded)
	}
	if movie.DurationMin == nil || *movie.DurationMin != 95 {
		t.Errorf("expected duration 95 min, got %v", movie.DurationMin)
	}

	show := store.titles[1]
	if show.YearAdded != nil {
		t.Errorf("expected nil year added for dateless row, got %v", show.YearAdded)
	}
	if show.Seasons == nil || *show.Seasons != 2 {
		t.Errorf("expected 2 seasons, got %v", show.Seasons)
	}

	// children reference their title
	for _, c := range store.countries {
		if c.TitleID != movie.TitleID {
			t.Errorf("expected country linked to movie, got %v", c.TitleID)
		}
	}

	if run == nil {
		t.Fatal("expected an import run")
	}
	if run.Source != "titles.csv" || run.Titles != 2 || run.Skipped != 1 || run.UnparsedDates != 1 {
		t.Errorf("unexpected run %+v", run)
	}
	if store.run != run {
		t.Error("expected run to be recorded")
	}
}

func TestImport_ReplaceFails(t *testing.T) {
	store := &mockStore{replaceErr: errors.New("db down")}
	imp := &Importer{store: store}

	_, err := imp.Import(context.Background(), testDataset())
	if err == nil {
		t.Fatal("expected error when replace fails")
	}
	if store.run == nil {
		t.Fatal("expected failed run to be recorded")
	}
	if store.run.Error == "" {
		t.Error("expected run error to be set")
	}
}

func TestImport_CreateRunFails(t *testing.T) {
	store := &mockStore{createErr: errors.New("insert failed")}
	imp := &Importer{store: store}

	_, err := imp.Import(context.Background(), testDataset())
	if err == nil {
		t.Fatal("expected error when run recording fails")
	}
}
