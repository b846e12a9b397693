// Package notify publishes deploy outcomes and broken navbar links as JSON events.
package notify

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/apache/tsfile-website/internal/config"
	"github.com/apache/tsfile-website/internal/deploy"
	"github.com/apache/tsfile-website/internal/linkverify"
	"github.com/apache/tsfile-website/internal/logfields"
)

// Publisher sends raw payloads to a subject.
type Publisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
}

// DeployEvent is the payload published once per deploy.
type DeployEvent struct {
	ID         string    `json:"id"`
	Repo       string    `json:"repo"`
	Branch     string    `json:"branch"`
	Status     string    `json:"status"`
	Commit     string    `json:"commit,omitempty"`
	Changed    bool      `json:"changed"`
	Files      int       `json:"files"`
	Attempts   int       `json:"attempts"`
	Error      string    `json:"error,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	DurationMS int64     `json:"duration_ms"`
}

// NewDeployEvent builds the event for a finished deploy.
func NewDeployEvent(o deploy.Outcome) DeployEvent {
	ev := DeployEvent{
		ID:         o.ID,
		Repo:       o.Options.Repo,
		Branch:     o.Options.Branch,
		Status:     string(deploy.StatusOf(o)),
		Commit:     o.Result.Commit,
		Changed:    o.Result.Changed,
		Files:      o.Result.Files,
		Attempts:   o.Attempts,
		StartedAt:  o.Started,
		FinishedAt: o.Finished,
		DurationMS: o.Duration().Milliseconds(),
	}
	if o.Err != nil {
		ev.Error = o.Err.Error()
	}
	return ev
}

// Notifier routes events to their configured subjects.
type Notifier struct {
	pub         Publisher
	subject     string
	linkSubject string
}

var (
	_ deploy.Notifier = (*Notifier)(nil)
	_ linkverify.Sink = (*Notifier)(nil)
)

// New creates a notifier; empty subjects fall back to the defaults.
func New(pub Publisher, cfg config.NotifyConfig) *Notifier {
	n := &Notifier{pub: pub, subject: cfg.Subject, linkSubject: cfg.LinkSubject}
	if n.subject == "" {
		n.subject = config.DefaultDeploySubject
	}
	if n.linkSubject == "" {
		n.linkSubject = config.DefaultLinksSubject
	}
	return n
}

func (n *Notifier) DeployFinished(ctx context.Context, o deploy.Outcome) error {
	if err := n.send(ctx, n.subject, NewDeployEvent(o)); err != nil {
		return err
	}
	slog.Debug("Published deploy event", logfields.Subject(n.subject), logfields.DeployID(o.ID))
	return nil
}

// BrokenLinks publishes one message per broken link and returns every failure joined.
func (n *Notifier) BrokenLinks(ctx context.Context, events []linkverify.BrokenLinkEvent) error {
	var errs []error
	for _, ev := range events {
		if err := n.send(ctx, n.linkSubject, ev); err != nil {
			errs = append(errs, err)
		}
	}
	slog.Debug("Published broken link events", logfields.Subject(n.linkSubject), slog.Int("count", len(events)-len(errs)))
	return stderrors.Join(errs...)
}

func (n *Notifier) send(ctx context.Context, subject string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	return n.pub.Publish(ctx, subject, data)
}
