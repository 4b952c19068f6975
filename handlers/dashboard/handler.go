package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli"
	csrf "github.com/utrack/gin-csrf"

	"github.com/flixboard/web-ui/services/common"
	"github.com/flixboard/web-ui/services/stats"
	"github.com/flixboard/web-ui/services/template"
	"github.com/flixboard/web-ui/services/web"
)

type Handler struct {
	tb template.Builder[*web.Context]
	st *stats.Service
}

func RegisterHandler(c *cli.Context, r *gin.Engine, tm *template.Manager[*web.Context], st *stats.Service) {
	h := &Handler{
		tb: tm.MustRegisterViews("dashboard/*").WithHelper(NewHelper()).WithLayout("main"),
		st: st,
	}
	gr := r.Group("/")
	gr.Use(csrf.Middleware(csrf.Options{
		Secret: c.String(common.SessionSecretFlag),
		ErrorFunc: func(c *gin.Context) {
			c.String(http.StatusBadRequest, "CSRF token mismatch")
			c.Abort()
		},
	}))
	gr.GET("/", h.index)
	gr.GET("/countries", h.countries)
	gr.GET("/genres", h.genres)
	gr.GET("/about", h.about)
	gr.POST("/preferences", h.preferences)
}
