package catalog

import (
	"strings"
	"testing"
	"time"
)

const testHeader = "show_id,type,title,director,cast,country,date_added,release_year,rating,duration,listed_in,description"

func parseCSV(t *testing.T, lines ...string) (*Dataset, error) {
	t.Helper()
	return Parse(strings.NewReader(strings.Join(lines, "\n")), "test.csv")
}

func mustParseCSV(t *testing.T, lines ...string) *Dataset {
	t.Helper()
	ds, err := parseCSV(t, lines...)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	return ds
}

func TestParse(t *testing.T) {
	ds := mustParseCSV(t,
		testHeader,
		`s1,Movie,Dick Johnson Is Dead,Kirsten Johnson,,United States,"September 25, 2021",2020,PG-13,90 min,Documentaries,A father nears the end of his life.`,
		`s2,TV Show,Blood & Water,,"Ama Qamata, Khosi Ngema",South Africa,"September 24, 2021",2021,TV-MA,2 Seasons,"International TV Shows, TV Dramas",Secrets come out.`,
	)
	if len(ds.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(ds.Rows))
	}

	m := ds.Rows[0]
	if m.Type != TypeMovie {
		t.Errorf("expected type %v, got %v", TypeMovie, m.Type)
	}
	if m.Title != "Dick Johnson Is Dead" {
		t.Errorf("unexpected title %q", m.Title)
	}
	if m.Country != "United States" {
		t.Errorf("unexpected country %q", m.Country)
	}
	if m.DateAdded == nil {
		t.Fatal("expected date added to be parsed")
	}
	if got := m.DateAdded.Format("2006-01-02"); got != "2021-09-25" {
		t.Errorf("unexpected date added %v", got)
	}
	if m.YearAdded != 2021 {
		t.Errorf("expected year added 2021, got %d", m.YearAdded)
	}
	if m.ReleaseYear != 2020 {
		t.Errorf("expected release year 2020, got %d", m.ReleaseYear)
	}
	if m.DurationMin != 90 || m.Seasons != 0 {
		t.Errorf("expected 90 min movie, got min=%d seasons=%d", m.DurationMin, m.Seasons)
	}

	s := ds.Rows[1]
	if s.Type != TypeShow {
		t.Errorf("expected type %v, got %v", TypeShow, s.Type)
	}
	if s.Director != Unknown {
		t.Errorf("expected director %q, got %q", Unknown, s.Director)
	}
	if len(s.Cast) != 2 || s.Cast[0] != "Ama Qamata" || s.Cast[1] != "Khosi Ngema" {
		t.Errorf("unexpected cast %v", s.Cast)
	}
	if len(s.Genres) != 2 || s.Genres[0] != "International TV Shows" || s.Genres[1] != "TV Dramas" {
		t.Errorf("unexpected genres %v", s.Genres)
	}
	if s.Seasons != 2 || s.DurationMin != 0 {
		t.Errorf("expected 2 seasons show, got min=%d seasons=%d", s.DurationMin, s.Seasons)
	}

	rep := ds.Report
	if rep.Rows != 2 || rep.SkippedRows != 0 || rep.UnparsedDates != 0 {
		t.Errorf("unexpected report %+v", rep)
	}
}

func TestParse_HeaderOrderDoesNotMatter(t *testing.T) {
	ds := mustParseCSV(t,
		"title,show_id,listed_in,country,release_year,date_added,type",
		`The Queen's Gambit,s1,TV Dramas,United States,2020,"October 23, 2020",TV Show`,
	)
	r := ds.Rows[0]
	if r.ShowID != "s1" || r.Title != "The Queen's Gambit" || r.Type != TypeShow {
		t.Errorf("unexpected row %+v", r)
	}
	if r.YearAdded != 2020 {
		t.Errorf("expected year added 2020, got %d", r.YearAdded)
	}
}

func TestParse_MissingRequiredColumns(t *testing.T) {
	_, err := parseCSV(t,
		"show_id,title,director",
		"s1,Some Movie,Someone",
	)
	if err == nil {
		t.Fatal("expected error for missing columns")
	}
	for _, col := range []string{"type", "date_added", "release_year", "country", "listed_in"} {
		if !strings.Contains(err.Error(), col) {
			t.Errorf("expected error to name missing column %q, got %q", col, err.Error())
		}
	}
}

func TestParse_EmptyDataset(t *testing.T) {
	_, err := Parse(strings.NewReader(""), "empty.csv")
	if err == nil {
		t.Fatal("expected error for empty dataset")
	}
	if !strings.Contains(err.Error(), "empty") {
		t.Errorf("unexpected error %q", err.Error())
	}
}

func TestParse_MalformedCSV(t *testing.T) {
	_, err := parseCSV(t,
		testHeader,
		`s1,Movie,"Broken`,
	)
	if err == nil {
		t.Fatal("expected error for malformed csv")
	}
}

func TestParse_SkipsUnusableRows(t *testing.T) {
	ds := mustParseCSV(t,
		testHeader,
		`s1,Movie,Good One,,,India,"August 4, 2017",2017,TV-14,120 min,Dramas,Fine.`,
		`s2,Documentary,Wrong Type,,,India,"August 4, 2017",2017,TV-14,50 min,Docs,Skipped.`,
		`,Movie,No ID,,,India,"August 4, 2017",2017,TV-14,90 min,Dramas,Skipped.`,
		`s4,Movie,,,,India,"August 4, 2017",2017,TV-14,90 min,Dramas,Skipped.`,
	)
	if len(ds.Rows) != 1 {
		t.Fatalf("expected 1 kept row, got %d", len(ds.Rows))
	}
	if ds.Report.SkippedRows != 3 {
		t.Errorf("expected 3 skipped rows, got %d", ds.Report.SkippedRows)
	}
}

func TestParse_UnparsedDates(t *testing.T) {
	ds := mustParseCSV(t,
		testHeader,
		`s1,Movie,Dated,,,India,"August 4, 2017",2017,TV-14,90 min,Dramas,.`,
		`s2,Movie,No Date,,,India,,2017,TV-14,90 min,Dramas,.`,
		`s3,Movie,Bad Date,,,India,sometime in May,2017,TV-14,90 min,Dramas,.`,
	)
	if len(ds.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(ds.Rows))
	}
	if ds.Report.UnparsedDates != 2 {
		t.Errorf("expected 2 unparsed dates, got %d", ds.Report.UnparsedDates)
	}
	if ds.Rows[1].YearAdded != 0 {
		t.Errorf("expected zero year added for dateless row, got %d", ds.Rows[1].YearAdded)
	}
}

func TestParse_MissingCountryFallsBackToUnknown(t *testing.T) {
	ds := mustParseCSV(t,
		testHeader,
		`s1,Movie,Stateless,,,,"January 1, 2020",2019,PG,100 min,Dramas,.`,
	)
	r := ds.Rows[0]
	if r.Country != Unknown {
		t.Errorf("expected country %q, got %q", Unknown, r.Country)
	}
	if len(r.Countries) != 0 {
		t.Errorf("expected no exploded countries, got %v", r.Countries)
	}
}

func TestParse_LiteralUnknownDropped(t *testing.T) {
	ds := mustParseCSV(t,
		testHeader,
		`s1,Movie,Placeholder Row,,,Unknown,"January 1, 2020",2019,PG,100 min,Unknown,.`,
		`s2,Movie,Mixed Row,,,"Unknown, India","January 1, 2020",2019,PG,100 min,"Dramas, Unknown",.`,
	)
	r := ds.Rows[0]
	if r.Country != Unknown {
		t.Errorf("expected scalar country %q, got %q", Unknown, r.Country)
	}
	if len(r.Countries) != 0 || len(r.Genres) != 0 {
		t.Errorf("expected literal Unknown values to be dropped, got %v / %v", r.Countries, r.Genres)
	}

	m := ds.Rows[1]
	if len(m.Countries) != 1 || m.Countries[0] != "India" {
		t.Errorf("expected only India to survive, got %v", m.Countries)
	}
	if len(m.Genres) != 1 || m.Genres[0] != "Dramas" {
		t.Errorf("expected only Dramas to survive, got %v", m.Genres)
	}
}

func TestParse_MultiCountry(t *testing.T) {
	ds := mustParseCSV(t,
		testHeader,
		`s1,Movie,Co-Produced,,,"United States, India, France","March 3, 2019",2018,PG,100 min,Dramas,.`,
	)
	r := ds.Rows[0]
	want := []string{"United States", "India", "France"}
	if len(r.Countries) != len(want) {
		t.Fatalf("expected %d countries, got %v", len(want), r.Countries)
	}
	for i := range want {
		if r.Countries[i] != want[i] {
			t.Errorf("expected country %q at %d, got %q", want[i], i, r.Countries[i])
		}
	}
	if r.Country != "United States" {
		t.Errorf("expected primary country United States, got %q", r.Country)
	}
}

func TestParse_DateLayouts(t *testing.T) {
	ds := mustParseCSV(t,
		testHeader,
		`s1,Movie,A,,,India,"September 25, 2021",2021,PG,90 min,Dramas,.`,
		`s2,Movie,B,,,India,"Sep 25, 2021",2021,PG,90 min,Dramas,.`,
		`s3,Movie,C,,,India,2021-09-25,2021,PG,90 min,Dramas,.`,
		`s4,Movie,D,,,India,9/25/2021,2021,PG,90 min,Dramas,.`,
	)
	want := time.Date(2021, 9, 25, 0, 0, 0, 0, time.UTC)
	for i, r := range ds.Rows {
		if r.DateAdded == nil {
			t.Fatalf("row %d: expected date to be parsed", i)
		}
		if !r.DateAdded.Equal(want) {
			t.Errorf("row %d: expected %v, got %v", i, want, r.DateAdded)
		}
	}
	if ds.Report.UnparsedDates != 0 {
		t.Errorf("expected no unparsed dates, got %d", ds.Report.UnparsedDates)
	}
}
