package session

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/flixboard/web-ui/services/common"
)

const (
	MaxAgeFlag = "session-max-age"
)

const sessionName = "flixboard"

func RegisterFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.IntFlag{
			Name:   MaxAgeFlag,
			Usage:  "session max age (seconds)",
			Value:  30 * 24 * 60 * 60,
			EnvVar: "SESSION_MAX_AGE",
		},
	)
}

// RegisterHandler installs the cookie session middleware on every route
// except the given path prefixes.
func RegisterHandler(c *cli.Context, r *gin.Engine, skip []string) error {
	secret := c.String(common.SessionSecretFlag)
	if secret == "" {
		return errors.New("session secret is empty")
	}
	store := cookie.NewStore([]byte(secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   c.Int(MaxAgeFlag),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	sm := sessions.Sessions(sessionName, store)
	r.Use(func(gc *gin.Context) {
		for _, p := range skip {
			if strings.HasPrefix(gc.Request.URL.Path, p) {
				gc.Next()
				return
			}
		}
		sm(gc)
	})
	return nil
}
