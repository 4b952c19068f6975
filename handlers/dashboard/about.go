package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flixboard/web-ui/services/stats"
	"github.com/flixboard/web-ui/services/web"
)

type AboutData struct {
	Summary *stats.Summary
}

func (s *Handler) about(c *gin.Context) {
	tpl := s.tb.Build("dashboard/about")
	sum, err := s.st.Summary(c.Request.Context(), nil)
	if err != nil {
		tpl.HTML(http.StatusInternalServerError, web.NewContext(c).WithData(&AboutData{}).WithErr(err))
		return
	}

	tpl.HTML(http.StatusOK, web.NewContext(c).WithData(&AboutData{
		Summary: sum,
	}))
}
