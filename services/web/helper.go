package web

import (
	"github.com/urfave/cli"

	"github.com/flixboard/web-ui/services/common"
)

// Helper exposes site-wide values to templates.
type Helper struct {
	domain string
}

func NewHelper(c *cli.Context) *Helper {
	return &Helper{
		domain: c.String(common.DomainFlag),
	}
}

func (s *Helper) Domain() string {
	return s.domain
}
