package main

import (
	"context"
	"net/http"

	wapi "github.com/flixboard/web-ui/handlers/api"
	"github.com/flixboard/web-ui/handlers/dashboard"
	sess "github.com/flixboard/web-ui/handlers/session"
	sta "github.com/flixboard/web-ui/handlers/static"
	"github.com/flixboard/web-ui/services/catalog"
	"github.com/flixboard/web-ui/services/common"
	"github.com/flixboard/web-ui/services/importer"
	"github.com/flixboard/web-ui/services/refresh"
	"github.com/flixboard/web-ui/services/stats"
	"github.com/flixboard/web-ui/services/template"
	w "github.com/flixboard/web-ui/services/web"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-gonic/gin"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	cs "github.com/webtor-io/common-services"
)

func makeServeCMD() cli.Command {
	serveCMD := cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Serves web server",
		Action:  serve,
	}
	configureServe(&serveCMD)
	return serveCMD
}

func configureServe(c *cli.Command) {
	c.Flags = cs.RegisterPGFlags(c.Flags)
	c.Flags = cs.RegisterProbeFlags(c.Flags)
	c.Flags = cs.RegisterS3ClientFlags(c.Flags)
	c.Flags = cs.RegisterRedisClientFlags(c.Flags)
	c.Flags = cs.RegisterPprofFlags(c.Flags)
	c.Flags = w.RegisterFlags(c.Flags)
	c.Flags = common.RegisterFlags(c.Flags)
	c.Flags = catalog.RegisterFlags(c.Flags)
	c.Flags = stats.RegisterFlags(c.Flags)
	c.Flags = refresh.RegisterFlags(c.Flags)
	c.Flags = sess.RegisterFlags(c.Flags)
	c.Flags = sta.RegisterFlags(c.Flags)
}

func serve(c *cli.Context) error {
	// Setting HTTP Client
	cl := http.DefaultClient

	// Setting DB
	pg := cs.NewPG(c)
	defer pg.Close()

	// Setting Migrations
	err := pgMigrate(c)
	if err != nil {
		return err
	}

	// Setting S3 Client
	s3Cl := cs.NewS3Client(c, cl)

	// Setting Dataset Loader
	loader := catalog.NewLoader(c, s3Cl)

	// Setting Stats Source
	src, err := makeStatsSource(c, pg, loader)
	if err != nil {
		return err
	}

	// Setting Redis
	redis := cs.NewRedisClient(c)
	defer redis.Close()

	// Setting Stats
	st := stats.New(c, src, redis)

	// Setting template renderer
	re := multitemplate.NewRenderer()

	// Setting TemplateManager
	tm := template.NewManager[*w.Context](re).
		WithHelper(w.NewHelper(c))

	var servers []cs.Servable
	// Setting Probe
	probe := cs.NewProbe(c)
	if probe != nil {
		servers = append(servers, probe)
		defer probe.Close()
	}

	// Setting Pprof
	pprof := cs.NewPprof(c)
	if pprof != nil {
		servers = append(servers, pprof)
		defer pprof.Close()
	}

	// Setting Gin
	r := gin.Default()
	r.RedirectTrailingSlash = false
	r.HTMLRender = re

	// Setting Web
	web, err := w.New(c, r)
	if err != nil {
		return err
	}
	servers = append(servers, web)
	defer web.Close()

	err = sess.RegisterHandler(c, r, []string{
		"/assets/",
		"/api/",
	})
	if err != nil {
		return err
	}

	// Setting Static
	err = sta.RegisterHandler(c, r)
	if err != nil {
		return err
	}

	// Setting DashboardHandler
	dashboard.RegisterHandler(c, r, tm, st)

	// Setting ApiHandler
	wapi.RegisterHandler(r, st)

	// Setting Refresher
	ref := makeRefresher(c, pg, loader, st)
	if ref != nil {
		err = ref.Start()
		if err != nil {
			return err
		}
		defer ref.Close()
	}

	// Render templates
	err = tm.Init()
	if err != nil {
		return err
	}

	// Setting Serve
	serve := cs.NewServe(servers...)

	// And SERVE!
	err = serve.Serve()
	if err != nil {
		log.WithError(err).Error("got server error")
	}
	return err
}

// makeStatsSource serves aggregates from the database when one is
// configured, otherwise the dataset is parsed into memory at startup.
func makeStatsSource(c *cli.Context, pg *cs.PG, loader *catalog.Loader) (stats.Source, error) {
	if pg.Get() != nil {
		return stats.NewPGSource(pg), nil
	}
	log.Info("no db configured, loading dataset in memory")
	ds, err := loader.Load(context.Background())
	if err != nil {
		return nil, err
	}
	return stats.NewMemSource(ds), nil
}

func makeRefresher(c *cli.Context, pg *cs.PG, loader *catalog.Loader, st *stats.Service) *refresh.Refresher {
	if pg.Get() == nil {
		if c.String(refresh.ScheduleFlag) != "" {
			log.Warn("dataset refresh requires db, skipping")
		}
		return nil
	}
	imp := importer.New(pg)
	return refresh.New(c, func(ctx context.Context) error {
		ds, err := loader.Load(ctx)
		if err != nil {
			return err
		}
		if _, err := imp.Import(ctx, ds); err != nil {
			return err
		}
		st.Invalidate(ctx)
		return nil
	})
}
