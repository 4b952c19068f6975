package static

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

const (
	AssetsPathFlag = "assets-path"
)

func RegisterFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.StringFlag{
			Name:   AssetsPathFlag,
			Usage:  "path to assets",
			Value:  "assets",
			EnvVar: "ASSETS_PATH",
		},
	)
}

func RegisterHandler(c *cli.Context, r *gin.Engine) error {
	path := c.String(AssetsPathFlag)
	if _, err := os.Stat(path); err != nil {
		return errors.Wrapf(err, "failed to locate assets at %v", path)
	}
	r.Static("/assets", path)
	return nil
}
