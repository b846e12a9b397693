// Package schedule runs the deploy periodically from a cron expression.
package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-co-op/gocron/v2"

	"github.com/apache/tsfile-website/internal/foundation/errors"
	"github.com/apache/tsfile-website/internal/logfields"
)

// Task is the unit of work run on every tick.
type Task func(ctx context.Context)

// Scheduler wraps a gocron scheduler.
type Scheduler struct {
	scheduler gocron.Scheduler
}

// NewScheduler creates a stopped scheduler.
func NewScheduler(opts ...gocron.SchedulerOption) (*Scheduler, error) {
	s, err := gocron.NewScheduler(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	return &Scheduler{scheduler: s}, nil
}

// Cron returns the job definition for a standard five-field cron expression.
func Cron(expr string) (gocron.JobDefinition, error) {
	expr = strings.TrimSpace(expr)
	if len(strings.Fields(expr)) != 5 {
		return nil, errors.ValidationError(fmt.Sprintf("schedule %q must have five fields", expr)).
			WithContext("schedule", expr).Build()
	}
	return gocron.CronJob(expr, false), nil
}

// Schedule registers task under name. Overlapping runs are skipped: a tick that
// fires while the previous run is still going is rescheduled.
func (s *Scheduler) Schedule(ctx context.Context, name string, def gocron.JobDefinition, task Task, opts ...gocron.JobOption) (string, error) {
	opts = append([]gocron.JobOption{
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	}, opts...)
	job, err := s.scheduler.NewJob(def, gocron.NewTask(func() {
		if ctx.Err() != nil {
			return
		}
		slog.Info("Running scheduled job", slog.String("job", name))
		task(ctx)
	}), opts...)
	if err != nil {
		return "", errors.ValidationError("invalid schedule").WithCause(err).WithContext("job", name).Build()
	}
	return job.ID().String(), nil
}

// NextRun reports when the job with the given id fires next.
func (s *Scheduler) NextRun(id string) (string, error) {
	for _, j := range s.scheduler.Jobs() {
		if j.ID().String() != id {
			continue
		}
		next, err := j.NextRun()
		if err != nil {
			return "", err
		}
		return next.Format("2006-01-02 15:04:05 MST"), nil
	}
	return "", fmt.Errorf("job %s not found", id)
}

func (s *Scheduler) Start() {
	slog.Info("Starting scheduler", slog.Int("jobs", len(s.scheduler.Jobs())))
	s.scheduler.Start()
}

// Stop waits for running jobs to finish and shuts the scheduler down.
func (s *Scheduler) Stop() error {
	slog.Info("Stopping scheduler")
	return s.scheduler.Shutdown()
}

// RunCron schedules task on expr and blocks until ctx is cancelled.
func RunCron(ctx context.Context, expr string, task Task, opts ...gocron.JobOption) error {
	def, err := Cron(expr)
	if err != nil {
		return err
	}
	s, err := NewScheduler()
	if err != nil {
		return err
	}
	id, err := s.Schedule(ctx, "deploy", def, task, opts...)
	if err != nil {
		_ = s.Stop()
		return err
	}
	s.Start()
	if next, err := s.NextRun(id); err == nil {
		slog.Info("Deploy scheduled", logfields.Schedule(expr), slog.String("next_run", next))
	}
	<-ctx.Done()
	return s.Stop()
}
