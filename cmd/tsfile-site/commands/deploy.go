package commands

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/apache/tsfile-website/internal/config"
	"github.com/apache/tsfile-website/internal/deploy"
	"github.com/apache/tsfile-website/internal/foundation/errors"
	"github.com/apache/tsfile-website/internal/git"
	"github.com/apache/tsfile-website/internal/history"
	"github.com/apache/tsfile-website/internal/logfields"
	"github.com/apache/tsfile-website/internal/metrics"
	"github.com/apache/tsfile-website/internal/notify"
	"github.com/apache/tsfile-website/internal/retry"
)

// DeployCmd implements the 'deploy' command. It exits 1 when the publish fails.
type DeployCmd struct {
	Source     string `short:"d" help:"Directory with the built site (overrides deploy.source_dir)" type:"path"`
	Branch     string `short:"b" help:"Target branch (overrides deploy.branch)"`
	Repo       string `short:"r" help:"Repository URL (overrides deploy.repo)"`
	Message    string `short:"m" help:"Commit message (overrides deploy.message)"`
	NoDotfiles bool   `name:"no-dotfiles" help:"Skip dot-prefixed files"`
}

func (d *DeployCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	d.apply(&cfg.Deploy)
	if err := cfg.ValidateDeploy(); err != nil {
		return errors.WrapError(err, errors.CategoryValidation, "invalid deploy options").Build()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	env := newDeployEnv(cfg)
	defer env.Close()

	code := env.runner.Run(ctx, deploy.OptionsFromConfig(cfg.Deploy), g.Stderr)
	env.flushMetrics()
	if code != 0 {
		return ExitCode(code)
	}
	return nil
}

func (d *DeployCmd) apply(dc *config.DeployConfig) {
	if d.Source != "" {
		dc.SourceDir = d.Source
	}
	if d.Branch != "" {
		dc.Branch = d.Branch
	}
	if d.Repo != "" {
		dc.Repo = d.Repo
	}
	if d.Message != "" {
		dc.Message = d.Message
	}
	if d.NoDotfiles {
		no := false
		dc.Dotfiles = &no
	}
}

// deployEnv wires the publisher with its optional ledger, metrics and notifier.
type deployEnv struct {
	runner   *deploy.Runner
	recorder *metrics.PrometheusRecorder
	textfile string
	store    history.Store
	nats     *notify.NATSPublisher
}

// newDeployEnv never fails: an unavailable ledger or NATS server is logged and
// the deploy goes ahead without it.
func newDeployEnv(cfg *config.Config) *deployEnv {
	env := &deployEnv{textfile: cfg.Monitoring.Metrics.Textfile}
	env.runner = deploy.NewRunner(git.NewPublisher()).WithPolicy(retry.FromDeploy(cfg.Deploy))

	if env.textfile != "" {
		env.recorder = metrics.NewPrometheusRecorder(nil)
		env.runner.WithRecorder(env.recorder)
	}
	if cfg.History.Database != "" {
		store, err := history.NewSQLiteStore(cfg.History.Database)
		if err != nil {
			slog.Warn("Deploy history disabled", logfields.Path(cfg.History.Database), logfields.Error(err))
		} else {
			env.store = store
			env.runner.WithHistory(store)
		}
	}
	if cfg.Notify != nil && cfg.Notify.NATSURL != "" {
		pub, err := notify.Connect(cfg.Notify.NATSURL)
		if err != nil {
			slog.Warn("Deploy notifications disabled", logfields.URL(cfg.Notify.NATSURL), logfields.Error(err))
		} else {
			env.nats = pub
			env.runner.WithNotifier(notify.New(pub, *cfg.Notify))
		}
	}
	return env
}

func (e *deployEnv) flushMetrics() {
	if e.recorder == nil {
		return
	}
	if err := e.recorder.WriteTextfile(e.textfile); err != nil {
		slog.Warn("Failed to write metrics textfile", logfields.Path(e.textfile), logfields.Error(err))
	}
}

func (e *deployEnv) Close() {
	if e.store != nil {
		if err := e.store.Close(); err != nil {
			slog.Warn("Failed to close history store", logfields.Error(err))
		}
	}
	if e.nats != nil {
		if err := e.nats.Close(); err != nil {
			slog.Warn("Failed to close NATS connection", logfields.Error(err))
		}
	}
}
