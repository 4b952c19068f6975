package dashboard

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	csrf "github.com/utrack/gin-csrf"

	"github.com/flixboard/web-ui/services/stats"
	"github.com/flixboard/web-ui/services/web"
)

type GenresData struct {
	Args    *Args
	Summary *stats.Summary
	Genres  []stats.NameCount
}

func (s *Handler) genres(c *gin.Context) {
	tpl := s.tb.Build("dashboard/genres")
	args := s.bindArgs(c)

	d, err := s.prepareGenresData(c.Request.Context(), args)
	if err != nil {
		tpl.HTML(http.StatusInternalServerError, web.NewContext(c).WithData(&GenresData{}).WithErr(err))
		return
	}

	tpl.HTML(http.StatusOK, web.NewContext(c).WithCSRF(csrf.GetToken(c)).WithData(d))
}

func (s *Handler) prepareGenresData(ctx context.Context, args *Args) (*GenresData, error) {
	f := args.Filter()
	sum, err := s.st.Summary(ctx, f)
	if err != nil {
		return nil, err
	}
	genres, err := s.st.TopGenres(ctx, args.TopN, f)
	if err != nil {
		return nil, err
	}
	return &GenresData{
		Args:    args,
		Summary: sum,
		Genres:  genres,
	}, nil
}
