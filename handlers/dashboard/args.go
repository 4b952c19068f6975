package dashboard

import (
	"strconv"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/flixboard/web-ui/services/stats"
)

const (
	sessionYearFromKey = "year_from"
	sessionYearToKey   = "year_to"
	sessionTopNKey     = "top_n"
)

type Args struct {
	YearFrom int
	YearTo   int
	TopN     int
	Err      string
}

func (s *Args) Filter() *stats.Filter {
	return &stats.Filter{
		YearFrom: s.YearFrom,
		YearTo:   s.YearTo,
	}
}

// bindArgs resolves the year window and top-N for a page: session-stored
// preferences first, query parameters on top. Unparsable values are ignored,
// an inverted window is swapped.
func (s *Handler) bindArgs(c *gin.Context) *Args {
	sess := sessions.Default(c)
	args := &Args{
		TopN: stats.DefaultTopN,
		Err:  c.Query("err"),
	}
	if v, ok := sess.Get(sessionYearFromKey).(int); ok {
		args.YearFrom = v
	}
	if v, ok := sess.Get(sessionYearToKey).(int); ok {
		args.YearTo = v
	}
	if v, ok := sess.Get(sessionTopNKey).(int); ok {
		args.TopN = v
	}
	if v, ok := queryInt(c, "from"); ok {
		args.YearFrom = v
	}
	if v, ok := queryInt(c, "to"); ok {
		args.YearTo = v
	}
	if v, ok := queryInt(c, "top"); ok {
		args.TopN = v
	}
	if args.YearFrom != 0 && args.YearTo != 0 && args.YearTo < args.YearFrom {
		args.YearFrom, args.YearTo = args.YearTo, args.YearFrom
	}
	args.TopN = stats.ClampTopN(args.TopN)
	return args
}

func queryInt(c *gin.Context, name string) (int, bool) {
	q := c.Query(name)
	if q == "" {
		return 0, false
	}
	v, err := strconv.Atoi(q)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}
