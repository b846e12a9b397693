// Package history keeps a ledger of deploys in SQLite.
package history

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Status is the final state of a deploy.
type Status string

const (
	StatusPublished Status = "published"
	StatusUnchanged Status = "unchanged"
	StatusFailed    Status = "failed"
)

// Record is one deploy.
type Record struct {
	ID         string    `json:"id"`
	Repo       string    `json:"repo"`
	Branch     string    `json:"branch"`
	Commit     string    `json:"commit,omitempty"`
	Status     Status    `json:"status"`
	Error      string    `json:"error,omitempty"`
	Attempts   int       `json:"attempts"`
	Files      int       `json:"files"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Duration is the wall time of the deploy.
func (r Record) Duration() time.Duration { return r.FinishedAt.Sub(r.StartedAt) }

// Store persists deploy records.
type Store interface {
	Record(ctx context.Context, r Record) error
	// List returns the most recent records first; limit <= 0 means all.
	List(ctx context.Context, limit int) ([]Record, error)
	Get(ctx context.Context, id string) (Record, error)
	Close() error
}

// NewID returns a fresh deploy id.
func NewID() string { return uuid.NewString() }
