package main

import (
	"context"
	"net/http"

	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	cs "github.com/webtor-io/common-services"

	"github.com/flixboard/web-ui/services/catalog"
)

func makeStatsCMD() cli.Command {
	statsCMD := cli.Command{
		Name:   "stats",
		Usage:  "Prints catalog summary",
		Action: showStats,
	}
	configureStats(&statsCMD)
	return statsCMD
}

func configureStats(c *cli.Command) {
	c.Flags = cs.RegisterPGFlags(c.Flags)
	c.Flags = cs.RegisterS3ClientFlags(c.Flags)
	c.Flags = catalog.RegisterFlags(c.Flags)
}

func showStats(c *cli.Context) error {
	ctx := context.Background()

	// Setting HTTP Client
	cl := http.DefaultClient

	// Setting DB
	pg := cs.NewPG(c)
	defer pg.Close()

	// Setting S3 Client
	s3Cl := cs.NewS3Client(c, cl)

	// Setting Dataset Loader
	loader := catalog.NewLoader(c, s3Cl)

	// Setting Stats Source
	src, err := makeStatsSource(c, pg, loader)
	if err != nil {
		return err
	}

	sum, err := src.Summary(ctx, nil)
	if err != nil {
		return err
	}
	log.Infof("titles: %v (%v movies, %v shows)", humanize.Comma(int64(sum.Total)), humanize.Comma(int64(sum.Movies)), humanize.Comma(int64(sum.Shows)))
	log.Infof("countries: %v, genres: %v", sum.Countries, sum.Genres)
	if sum.Years != nil {
		log.Infof("added between %d and %d (%v titles without added date)", sum.Years.Min, sum.Years.Max, sum.UnparsedDates)
	}
	if sum.Source != "" {
		log.Infof("source: %v", sum.Source)
	}

	countries, err := src.TopCountries(ctx, 5, nil)
	if err != nil {
		return err
	}
	log.Info("top countries:")
	for _, nc := range countries {
		log.Infof("  %v: %v", nc.Name, humanize.Comma(int64(nc.Count)))
	}

	genres, err := src.TopGenres(ctx, 5, nil)
	if err != nil {
		return err
	}
	log.Info("top genres:")
	for _, nc := range genres {
		log.Infof("  %v: %v", nc.Name, humanize.Comma(int64(nc.Count)))
	}
	return nil
}
