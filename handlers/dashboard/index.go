package dashboard

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	csrf "github.com/utrack/gin-csrf"

	"github.com/flixboard/web-ui/services/stats"
	"github.com/flixboard/web-ui/services/web"
)

type IndexData struct {
	Args    *Args
	Summary *stats.Summary
	Types   []stats.TypeCount
	Years   []stats.YearCount
	Ratings []stats.NameCount
}

func (s *Handler) index(c *gin.Context) {
	tpl := s.tb.Build("dashboard/index")
	args := s.bindArgs(c)

	d, err := s.prepareIndexData(c.Request.Context(), args)
	if err != nil {
		tpl.HTML(http.StatusInternalServerError, web.NewContext(c).WithData(&IndexData{}).WithErr(err))
		return
	}

	tpl.HTML(http.StatusOK, web.NewContext(c).WithCSRF(csrf.GetToken(c)).WithData(d))
}

func (s *Handler) prepareIndexData(ctx context.Context, args *Args) (*IndexData, error) {
	f := args.Filter()
	sum, err := s.st.Summary(ctx, f)
	if err != nil {
		return nil, err
	}
	types, err := s.st.TypeBreakdown(ctx, f)
	if err != nil {
		return nil, err
	}
	years, err := s.st.AddedByYear(ctx, f)
	if err != nil {
		return nil, err
	}
	ratings, err := s.st.Ratings(ctx, f)
	if err != nil {
		return nil, err
	}
	return &IndexData{
		Args:    args,
		Summary: sum,
		Types:   types,
		Years:   years,
		Ratings: ratings,
	}, nil
}
