package deploy

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/apache/tsfile-website/internal/foundation/errors"
	"github.com/apache/tsfile-website/internal/history"
	"github.com/apache/tsfile-website/internal/logfields"
	"github.com/apache/tsfile-website/internal/metrics"
	"github.com/apache/tsfile-website/internal/retry"
)

// Notifier is told about every finished deploy.
type Notifier interface {
	DeployFinished(ctx context.Context, o Outcome) error
}

// Runner invokes a Publisher and reports the outcome. Recording, metrics and
// notification are best effort and never change the outcome.
type Runner struct {
	publisher Publisher
	policy    retry.Policy
	recorder  metrics.Recorder
	history   history.Store
	notifier  Notifier
	now       func() time.Time
}

// NewRunner creates a runner that publishes once (no retries) and records nothing.
func NewRunner(p Publisher) *Runner {
	return &Runner{
		publisher: p,
		policy:    retry.DefaultPolicy(),
		recorder:  metrics.NoopRecorder{},
		now:       time.Now,
	}
}

func (r *Runner) WithPolicy(p retry.Policy) *Runner { r.policy = p; return r }

func (r *Runner) WithRecorder(rec metrics.Recorder) *Runner {
	if rec != nil {
		r.recorder = rec
	}
	return r
}

func (r *Runner) WithHistory(s history.Store) *Runner { r.history = s; return r }

func (r *Runner) WithNotifier(n Notifier) *Runner { r.notifier = n; return r }

// Deploy publishes opts and returns the outcome.
func (r *Runner) Deploy(ctx context.Context, opts Options) Outcome {
	out := Outcome{ID: history.NewID(), Options: opts, Started: r.now()}
	log := slog.With(logfields.DeployID(out.ID), logfields.Branch(opts.Branch), logfields.Remote(opts.Repo))
	log.Info("Deploy started", logfields.Path(opts.SourceDir))

	out.Err = r.policy.Do(ctx, func(attempt int) error {
		out.Attempts = attempt
		if attempt > 1 {
			r.recorder.IncRetry()
			log.Warn("Retrying publish", logfields.Attempt(attempt))
		}
		res, err := r.publisher.Publish(ctx, opts)
		if err == nil {
			out.Result = res
		}
		return err
	})
	out.Finished = r.now()

	r.report(ctx, log, out)
	return out
}

// Run deploys and converts the outcome into a process exit code: 0 on success,
// 1 with the error written to stderr when the publish failed.
func (r *Runner) Run(ctx context.Context, opts Options, stderr io.Writer) int {
	out := r.Deploy(ctx, opts)
	if out.Err != nil {
		_, _ = fmt.Fprintln(stderr, errors.NewCLIErrorAdapter(false, nil).FormatError(out.Err))
		return 1
	}
	return 0
}

func (r *Runner) report(ctx context.Context, log *slog.Logger, out Outcome) {
	elapsed := out.Duration()
	r.recorder.ObserveDeployDuration(elapsed)

	status := statusOf(out)
	switch status {
	case history.StatusFailed:
		r.recorder.IncDeployOutcome(metrics.OutcomeFailed)
		log.Error("Deploy failed", logfields.Attempt(out.Attempts), logfields.Error(out.Err))
	case history.StatusUnchanged:
		r.recorder.IncDeployOutcome(metrics.OutcomeUnchanged)
		r.recorder.SetLastSuccess(out.Finished)
		log.Info("Deploy finished, nothing changed", logfields.DurationMS(float64(elapsed.Milliseconds())))
	default:
		r.recorder.IncDeployOutcome(metrics.OutcomePublished)
		r.recorder.SetLastSuccess(out.Finished)
		r.recorder.SetPublishedFiles(out.Result.Files)
		log.Info("Deploy finished",
			logfields.Commit(out.Result.Commit),
			logfields.DurationMS(float64(elapsed.Milliseconds())))
	}

	if r.history != nil {
		rec := history.Record{
			ID:         out.ID,
			Repo:       out.Options.Repo,
			Branch:     out.Options.Branch,
			Commit:     out.Result.Commit,
			Status:     status,
			Attempts:   out.Attempts,
			Files:      out.Result.Files,
			StartedAt:  out.Started,
			FinishedAt: out.Finished,
		}
		if out.Err != nil {
			rec.Error = out.Err.Error()
		}
		if err := r.history.Record(ctx, rec); err != nil {
			log.Warn("Failed to record deploy history", logfields.Error(err))
		}
	}

	if r.notifier != nil {
		if err := r.notifier.DeployFinished(ctx, out); err != nil {
			log.Warn("Failed to send deploy notification", logfields.Error(err))
		}
	}
}

// StatusOf maps an outcome onto its ledger status.
func StatusOf(o Outcome) history.Status { return statusOf(o) }

func statusOf(o Outcome) history.Status {
	switch {
	case o.Err != nil:
		return history.StatusFailed
	case !o.Result.Changed:
		return history.StatusUnchanged
	default:
		return history.StatusPublished
	}
}
