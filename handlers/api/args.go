package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/flixboard/web-ui/services/stats"
)

type Args struct {
	YearFrom int
	YearTo   int
	TopN     int
}

func (s *Args) Filter() *stats.Filter {
	return &stats.Filter{
		YearFrom: s.YearFrom,
		YearTo:   s.YearTo,
	}
}

// bindArgs parses from/to/top strictly. Unlike the HTML pages, garbage is
// rejected rather than ignored.
func (s *Handler) bindArgs(c *gin.Context) (*Args, error) {
	args := &Args{
		TopN: stats.DefaultTopN,
	}
	var err error
	if args.YearFrom, err = queryInt(c, "from"); err != nil {
		return nil, err
	}
	if args.YearTo, err = queryInt(c, "to"); err != nil {
		return nil, err
	}
	top, err := queryInt(c, "top")
	if err != nil {
		return nil, err
	}
	if top != 0 {
		args.TopN = top
	}
	if args.YearFrom != 0 && args.YearTo != 0 && args.YearTo < args.YearFrom {
		return nil, errors.Errorf("inverted year window %d-%d", args.YearFrom, args.YearTo)
	}
	args.TopN = stats.ClampTopN(args.TopN)
	return args, nil
}

func queryInt(c *gin.Context, name string) (int, error) {
	q := c.Query(name)
	if q == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(q)
	if err != nil || v < 0 {
		return 0, errors.Errorf("invalid %v value %v", name, q)
	}
	return v, nil
}
