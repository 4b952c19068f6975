package refresh

import (
	"context"
	"flag"
	"testing"

	"github.com/pkg/errors"
	"github.com/urfave/cli"
)

func createTestCLIContext(schedule string) *cli.Context {
	app := cli.NewApp()
	app.Flags = RegisterFlags(nil)

	flagSet := flag.NewFlagSet("test", flag.ContinueOnError)
	flagSet.String(ScheduleFlag, "", "refresh schedule")
	_ = flagSet.Set(ScheduleFlag, schedule)
	return cli.NewContext(app, flagSet, nil)
}

func TestNew_DisabledWithoutSchedule(t *testing.T) {
	r := New(createTestCLIContext(""), func(_ context.Context) error {
		return nil
	})
	if r != nil {
		t.Error("expected nil refresher without schedule")
	}
}

func TestRefresh(t *testing.T) {
	calls := 0
	r := New(createTestCLIContext("0 0 6 * * *"), func(_ context.Context) error {
		calls++
		return nil
	})
	if r == nil {
		t.Fatal("expected refresher")
	}

	r.refresh()
	if calls != 1 {
		t.Errorf("expected 1 run, got %d", calls)
	}
}

func TestRefresh_RunError(t *testing.T) {
	r := New(createTestCLIContext("0 0 6 * * *"), func(_ context.Context) error {
		return errors.New("refresh broken")
	})

	// errors are logged, not propagated; the schedule must survive
	r.refresh()
}

func TestStart_InvalidSchedule(t *testing.T) {
	r := New(createTestCLIContext("not a cron spec"), func(_ context.Context) error {
		return nil
	})
	if err := r.Start(); err == nil {
		t.Fatal("expected error for invalid schedule")
	}
}

func TestStartClose(t *testing.T) {
	r := New(createTestCLIContext("0 0 6 * * *"), func(_ context.Context) error {
		return nil
	})
	if err := r.Start(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	r.Close()
}
