package metrics

import "time"

// OutcomeLabel enumerates deploy outcomes for counters.
type OutcomeLabel string

const (
	OutcomePublished OutcomeLabel = "published"
	OutcomeUnchanged OutcomeLabel = "unchanged"
	OutcomeFailed    OutcomeLabel = "failed"
)

// Recorder defines observability hooks for deploys.
type Recorder interface {
	ObserveDeployDuration(d time.Duration)
	IncDeployOutcome(outcome OutcomeLabel)
	IncRetry()
	SetPublishedFiles(n int)
	SetLastSuccess(t time.Time)
	IncBrokenLinks(kind string, n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveDeployDuration(time.Duration) {}
func (NoopRecorder) IncDeployOutcome(OutcomeLabel)       {}
func (NoopRecorder) IncRetry()                           {}
func (NoopRecorder) SetPublishedFiles(int)               {}
func (NoopRecorder) SetLastSuccess(time.Time)            {}
func (NoopRecorder) IncBrokenLinks(string, int)          {}
