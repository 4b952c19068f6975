package catalog

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

var requiredColumns = []string{
	"show_id",
	"type",
	"title",
	"date_added",
	"release_year",
	"country",
	"listed_in",
}

type columnIndex map[string]int

func (s columnIndex) get(rec []string, name string) string {
	i, ok := s[name]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func mapColumns(header []string) (columnIndex, error) {
	cols := columnIndex{}
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	var missing []string
	for _, r := range requiredColumns {
		if _, ok := cols[r]; !ok {
			missing = append(missing, r)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, errors.Errorf("dataset is missing required columns: %v", strings.Join(missing, ", "))
	}
	return cols, nil
}

// Parse reads a titles CSV into a Dataset. The header row drives column
// mapping, so column order does not matter. A missing required column or a
// malformed CSV is an error; rows without a usable id, title or type are
// skipped and counted in the report.
func Parse(r io.Reader, source string) (*Dataset, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.Errorf("dataset %v is empty", source)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read dataset header from %v", source)
	}
	cols, err := mapColumns(header)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load dataset %v", source)
	}

	rep := &Report{
		Source:   source,
		LoadedAt: time.Now(),
	}
	var rows []*Row
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read dataset %v", source)
		}
		row, ok := makeRow(cols, rec)
		if !ok {
			rep.SkippedRows++
			continue
		}
		if row.DateAdded == nil {
			rep.UnparsedDates++
		}
		rows = append(rows, row)
	}
	rep.Rows = len(rows)
	return &Dataset{
		Rows:   rows,
		Report: rep,
	}, nil
}

func makeRow(cols columnIndex, rec []string) (*Row, bool) {
	showID := cols.get(rec, "show_id")
	title := cols.get(rec, "title")
	if showID == "" || title == "" {
		return nil, false
	}
	t, ok := parseTitleType(cols.get(rec, "type"))
	if !ok {
		return nil, false
	}

	row := &Row{
		ShowID:      showID,
		Type:        t,
		Title:       title,
		Cast:        SplitList(cols.get(rec, "cast")),
		Countries:   SplitList(cols.get(rec, "country")),
		Genres:      SplitList(cols.get(rec, "listed_in")),
		Rating:      cols.get(rec, "rating"),
		Duration:    cols.get(rec, "duration"),
		Description: cols.get(rec, "description"),
	}
	row.Director = cols.get(rec, "director")
	if row.Director == "" {
		row.Director = Unknown
	}
	if len(row.Countries) > 0 {
		row.Country = row.Countries[0]
	} else {
		row.Country = Unknown
	}
	row.DateAdded = parseDateAdded(cols.get(rec, "date_added"))
	if row.DateAdded != nil {
		row.YearAdded = row.DateAdded.Year()
	}
	if y, err := strconv.Atoi(cols.get(rec, "release_year")); err == nil {
		row.ReleaseYear = y
	}
	row.DurationMin, row.Seasons = parseDuration(row.Duration)
	return row, true
}
