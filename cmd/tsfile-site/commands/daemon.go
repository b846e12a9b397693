package commands

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/go-co-op/gocron/v2"

	"github.com/apache/tsfile-website/internal/config"
	"github.com/apache/tsfile-website/internal/deploy"
	"github.com/apache/tsfile-website/internal/foundation/errors"
	"github.com/apache/tsfile-website/internal/logfields"
	"github.com/apache/tsfile-website/internal/schedule"
)

// DaemonCmd implements the 'daemon' command.
type DaemonCmd struct {
	Schedule string `short:"s" help:"Cron expression (overrides deploy.schedule)"`
	Now      bool   `help:"Deploy once immediately on start"`
}

func (d *DaemonCmd) Run(_ *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	expr := cfg.Deploy.Schedule
	if d.Schedule != "" {
		expr = d.Schedule
	}
	if expr == "" {
		return errors.ConfigError("no schedule configured (set deploy.schedule or --schedule)").UserAction().Build()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var opts []gocron.JobOption
	if d.Now {
		opts = append(opts, gocron.WithStartAt(gocron.WithStartImmediately()))
	}
	slog.Info("Starting daemon", logfields.Schedule(expr))
	err = schedule.RunCron(ctx, expr, func(ctx context.Context) { scheduledDeploy(ctx, root) }, opts...)
	slog.Info("Daemon stopped")
	return err
}

// scheduledDeploy reloads the configuration so edits apply on the next tick, and
// skips the tick when the file became invalid.
func scheduledDeploy(ctx context.Context, root *CLI) {
	cfg, err := config.Load(root.Config)
	if err != nil {
		slog.Error("Skipping scheduled deploy, configuration invalid", logfields.Error(err))
		return
	}
	env := newDeployEnv(cfg)
	defer env.Close()
	out := env.runner.Deploy(ctx, deploy.OptionsFromConfig(cfg.Deploy))
	env.flushMetrics()
	if out.Err != nil {
		slog.Error("Scheduled deploy failed", logfields.DeployID(out.ID), logfields.Error(out.Err))
	}
}
