package dashboard

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/flixboard/web-ui/handlers/common"
)

type MenuItem struct {
	Url    string
	Title  string
	Active bool
}

type Helper struct{}

func NewHelper() *Helper {
	return &Helper{}
}

// Menu returns the dashboard tabs with the one matching path marked active.
func (s *Helper) Menu(path string) []MenuItem {
	m := make([]MenuItem, 0, len(common.Sections))
	for _, sec := range common.Sections {
		m = append(m, MenuItem{
			Url:    sec.Url,
			Title:  sec.Title,
			Active: sec.Url == path,
		})
	}
	return m
}

func (s *Helper) Comma(v int) string {
	return humanize.Comma(int64(v))
}

// Inc turns a range index into a 1-based rank.
func (s *Helper) Inc(v int) int {
	return v + 1
}

// Percent renders a 0..1 share as a percentage.
func (s *Helper) Percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}

// Minutes renders an average runtime as "1h 42m".
func (s *Helper) Minutes(v float64) string {
	if v <= 0 {
		return "n/a"
	}
	d := time.Duration(v * float64(time.Minute)).Round(time.Minute)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

func (s *Helper) Ago(t *time.Time) string {
	if t == nil {
		return ""
	}
	return humanize.Time(*t)
}

// StatsQuery encodes the current filter as a query string for the JSON API,
// so the page's charts fetch the same window the tables show.
func (s *Helper) StatsQuery(args *Args) string {
	v := url.Values{}
	if args.YearFrom != 0 {
		v.Set("from", strconv.Itoa(args.YearFrom))
	}
	if args.YearTo != 0 {
		v.Set("to", strconv.Itoa(args.YearTo))
	}
	v.Set("top", strconv.Itoa(args.TopN))
	return v.Encode()
}
