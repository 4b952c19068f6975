package dashboard

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	csrf "github.com/utrack/gin-csrf"

	"github.com/flixboard/web-ui/services/stats"
	"github.com/flixboard/web-ui/services/web"
)

type CountriesData struct {
	Args      *Args
	Summary   *stats.Summary
	Countries []stats.NameCount
}

func (s *Handler) countries(c *gin.Context) {
	tpl := s.tb.Build("dashboard/countries")
	args := s.bindArgs(c)

	d, err := s.prepareCountriesData(c.Request.Context(), args)
	if err != nil {
		tpl.HTML(http.StatusInternalServerError, web.NewContext(c).WithData(&CountriesData{}).WithErr(err))
		return
	}

	tpl.HTML(http.StatusOK, web.NewContext(c).WithCSRF(csrf.GetToken(c)).WithData(d))
}

func (s *Handler) prepareCountriesData(ctx context.Context, args *Args) (*CountriesData, error) {
	f := args.Filter()
	sum, err := s.st.Summary(ctx, f)
	if err != nil {
		return nil, err
	}
	countries, err := s.st.TopCountries(ctx, args.TopN, f)
	if err != nil {
		return nil, err
	}
	return &CountriesData{
		Args:      args,
		Summary:   sum,
		Countries: countries,
	}, nil
}
