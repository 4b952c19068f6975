package main

import (
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/sethvargo/go-retry"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	cs "github.com/webtor-io/common-services"

	"github.com/flixboard/web-ui/services/catalog"
	"github.com/flixboard/web-ui/services/importer"
	"github.com/flixboard/web-ui/services/stats"
)

func makeImportCMD() cli.Command {
	importCMD := cli.Command{
		Name:    "import",
		Aliases: []string{"i"},
		Usage:   "Imports titles dataset into db",
		Action:  importDataset,
	}
	configureImport(&importCMD)
	return importCMD
}

func configureImport(c *cli.Command) {
	c.Flags = cs.RegisterPGFlags(c.Flags)
	c.Flags = cs.RegisterS3ClientFlags(c.Flags)
	c.Flags = cs.RegisterRedisClientFlags(c.Flags)
	c.Flags = catalog.RegisterFlags(c.Flags)
}

func importDataset(c *cli.Context) error {
	ctx := context.Background()

	// Setting DB
	pg := cs.NewPG(c)
	defer pg.Close()

	err := waitForDB(ctx, pg)
	if err != nil {
		return err
	}

	// Setting Migrations
	err = pgMigrate(c)
	if err != nil {
		return err
	}

	// Setting HTTP Client
	cl := http.DefaultClient

	// Setting S3 Client
	s3Cl := cs.NewS3Client(c, cl)

	// Setting Dataset Loader
	loader := catalog.NewLoader(c, s3Cl)

	ds, err := loader.Load(ctx)
	if err != nil {
		return err
	}

	// Setting Importer
	imp := importer.New(pg)

	_, err = imp.Import(ctx, ds)
	if err != nil {
		return err
	}

	// Setting Redis
	redis := cs.NewRedisClient(c)
	defer redis.Close()

	// Dropping cached aggregates so a running dashboard picks up the new data
	if redis.Get() != nil {
		if err := stats.DropCache(ctx, redis); err != nil {
			log.WithError(err).Warn("failed to drop stats cache")
		}
	}
	return nil
}

// waitForDB pings the database with fibonacci backoff, so import can start
// before the database container is up.
func waitForDB(ctx context.Context, pg *cs.PG) error {
	db := pg.Get()
	if db == nil {
		return errors.New("db is nil")
	}
	b := retry.WithMaxDuration(time.Minute, retry.NewFibonacci(time.Second))
	return retry.Do(ctx, b, func(ctx context.Context) error {
		if err := db.Ping(ctx); err != nil {
			log.WithError(err).Warn("waiting for db")
			return retry.RetryableError(err)
		}
		return nil
	})
}
