package web

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

// Context is what every HTML view receives as its dot.
type Context struct {
	Data any
	Err  error
	CSRF string

	c *gin.Context
}

func NewContext(c *gin.Context) *Context {
	return &Context{
		c: c,
	}
}

func (s *Context) WithData(d any) *Context {
	s.Data = d
	return s
}

func (s *Context) WithErr(err error) *Context {
	s.Err = err
	return s
}

func (s *Context) WithCSRF(token string) *Context {
	s.CSRF = token
	return s
}

func (s *Context) HasErr() bool {
	return s.Err != nil
}

// Path returns the request path, used by the layout to mark the active
// section.
func (s *Context) Path() string {
	return s.c.Request.URL.Path
}

func (s *Context) GetGinContext() *gin.Context {
	return s.c
}

// RedirectWithError sends the browser back to the referer with the error
// message attached, so the page can render it above the form.
func RedirectWithError(c *gin.Context, err error) {
	pu := &url.URL{Path: "/"}
	if ref := c.Request.Referer(); ref != "" {
		if ru, perr := url.Parse(ref); perr == nil {
			pu = ru
		}
	}
	q := pu.Query()
	q.Set("err", err.Error())
	pu.RawQuery = q.Encode()
	c.Redirect(http.StatusFound, pu.RequestURI())
}
