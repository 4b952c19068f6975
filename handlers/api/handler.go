package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/flixboard/web-ui/services/stats"
)

// Handler exposes the aggregates as JSON under /api/stats. The dashboard
// charts fetch them with the page's current filter, and the endpoints stay
// usable from notebooks or curl, so the group allows any origin.
type Handler struct {
	st *stats.Service
}

func RegisterHandler(r *gin.Engine, st *stats.Service) {
	h := &Handler{
		st: st,
	}
	gr := r.Group("/api")
	gr.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodOptions},
	}))
	gr.GET("/stats/summary", h.summary)
	gr.GET("/stats/types", h.types)
	gr.GET("/stats/added-by-year", h.addedByYear)
	gr.GET("/stats/countries", h.countries)
	gr.GET("/stats/genres", h.genres)
	gr.GET("/stats/ratings", h.ratings)
}

type Meta struct {
	GeneratedAt time.Time `json:"generated_at"`
}

type Response struct {
	Data any  `json:"data"`
	Meta Meta `json:"meta"`
}

func (s *Handler) respond(c *gin.Context, data any) {
	c.JSON(http.StatusOK, &Response{
		Data: data,
		Meta: Meta{
			GeneratedAt: time.Now().UTC(),
		},
	})
}

func abortWithError(c *gin.Context, code int, err error) {
	c.AbortWithStatusJSON(code, gin.H{
		"error":   http.StatusText(code),
		"message": err.Error(),
	})
}
