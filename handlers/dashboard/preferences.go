package dashboard

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/flixboard/web-ui/services/stats"
	"github.com/flixboard/web-ui/services/web"
)

// preferences stores the submitted year window and top-N in the session so
// they survive tab switches. Empty fields reset to the unbounded defaults.
func (s *Handler) preferences(c *gin.Context) {
	yearFrom, err := formInt(c, "from")
	if err != nil {
		web.RedirectWithError(c, err)
		return
	}
	yearTo, err := formInt(c, "to")
	if err != nil {
		web.RedirectWithError(c, err)
		return
	}
	topN, err := formInt(c, "top")
	if err != nil {
		web.RedirectWithError(c, err)
		return
	}
	if yearFrom != 0 && yearTo != 0 && yearTo < yearFrom {
		yearFrom, yearTo = yearTo, yearFrom
	}
	if topN == 0 {
		topN = stats.DefaultTopN
	}

	sess := sessions.Default(c)
	sess.Set(sessionYearFromKey, yearFrom)
	sess.Set(sessionYearToKey, yearTo)
	sess.Set(sessionTopNKey, stats.ClampTopN(topN))
	if err := sess.Save(); err != nil {
		web.RedirectWithError(c, errors.Wrap(err, "failed to save preferences"))
		return
	}

	s.redirectBack(c)
}

func formInt(c *gin.Context, name string) (int, error) {
	v := strings.TrimSpace(c.PostForm(name))
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, errors.Errorf("invalid %v value %v", name, v)
	}
	return n, nil
}

func (s *Handler) redirectBack(c *gin.Context) {
	to := "/"
	if ref := c.Request.Referer(); ref != "" {
		if u, err := url.Parse(ref); err == nil && u.Path != "" {
			to = u.Path
		}
	}
	c.Redirect(http.StatusFound, to)
}
