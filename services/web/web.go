package web

import (
	"fmt"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

const (
	HostFlag = "host"
	PortFlag = "port"
)

func RegisterFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.StringFlag{
			Name:   HostFlag,
			Usage:  "listening host",
			Value:  "",
			EnvVar: "WEB_HOST",
		},
		cli.IntFlag{
			Name:   PortFlag,
			Usage:  "listening port",
			Value:  8080,
			EnvVar: "WEB_PORT",
		},
	)
}

// Web serves the dashboard UI. The listener is opened at construction so a
// busy port fails fast, before the rest of the wiring.
type Web struct {
	ln net.Listener
	r  http.Handler
}

func New(c *cli.Context, r *gin.Engine) (*Web, error) {
	addr := fmt.Sprintf("%v:%v", c.String(HostFlag), c.Int(PortFlag))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to listen on %v", addr)
	}
	return &Web{
		ln: ln,
		r:  r,
	}, nil
}

func (s *Web) Serve() error {
	log.Infof("serving web at %v", s.ln.Addr())
	return http.Serve(s.ln, s.r)
}

func (s *Web) Close() {
	if s.ln != nil {
		_ = s.ln.Close()
	}
}
