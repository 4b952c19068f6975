package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Handler) summary(c *gin.Context) {
	args, err := s.bindArgs(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err)
		return
	}
	res, err := s.st.Summary(c.Request.Context(), args.Filter())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err)
		return
	}
	s.respond(c, res)
}

func (s *Handler) types(c *gin.Context) {
	args, err := s.bindArgs(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err)
		return
	}
	res, err := s.st.TypeBreakdown(c.Request.Context(), args.Filter())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err)
		return
	}
	s.respond(c, res)
}

func (s *Handler) addedByYear(c *gin.Context) {
	args, err := s.bindArgs(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err)
		return
	}
	res, err := s.st.AddedByYear(c.Request.Context(), args.Filter())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err)
		return
	}
	s.respond(c, res)
}

func (s *Handler) countries(c *gin.Context) {
	args, err := s.bindArgs(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err)
		return
	}
	res, err := s.st.TopCountries(c.Request.Context(), args.TopN, args.Filter())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err)
		return
	}
	s.respond(c, res)
}

func (s *Handler) genres(c *gin.Context) {
	args, err := s.bindArgs(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err)
		return
	}
	res, err := s.st.TopGenres(c.Request.Context(), args.TopN, args.Filter())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err)
		return
	}
	s.respond(c, res)
}

func (s *Handler) ratings(c *gin.Context) {
	args, err := s.bindArgs(c)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err)
		return
	}
	res, err := s.st.Ratings(c.Request.Context(), args.Filter())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err)
		return
	}
	s.respond(c, res)
}
