package refresh

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

const (
	ScheduleFlag = "refresh-schedule"
)

const refreshTimeout = 15 * time.Minute

func RegisterFlags(f []cli.Flag) []cli.Flag {
	return append(f,
		cli.StringFlag{
			Name:   ScheduleFlag,
			Usage:  "cron spec (with seconds) for dataset refresh, empty disables",
			EnvVar: "REFRESH_SCHEDULE",
		},
	)
}

// Refresher re-imports the dataset on a cron schedule. New returns nil when
// no schedule is configured.
type Refresher struct {
	schedule string
	cron     *cron.Cron
	run      func(ctx context.Context) error
}

func New(c *cli.Context, run func(ctx context.Context) error) *Refresher {
	schedule := c.String(ScheduleFlag)
	if schedule == "" {
		return nil
	}
	cl := cron.VerbosePrintfLogger(log.StandardLogger())
	return &Refresher{
		schedule: schedule,
		run:      run,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.Recover(cl)),
		),
	}
}

func (s *Refresher) refresh() {
	started := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()
	if err := s.run(ctx); err != nil {
		log.WithError(err).Error("failed to refresh dataset")
		return
	}
	log.Infof("dataset refreshed in %v", time.Since(started).Round(time.Millisecond))
}

func (s *Refresher) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.refresh); err != nil {
		return errors.Wrapf(err, "failed to schedule refresh %v", s.schedule)
	}
	s.cron.Start()
	log.Infof("dataset refresh scheduled at %v", s.schedule)
	return nil
}

func (s *Refresher) Close() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
