// Package deploy runs the one-shot publish of the built site to its hosting branch.
package deploy

import (
	"context"
	"time"

	"github.com/apache/tsfile-website/internal/config"
	"github.com/apache/tsfile-website/internal/foundation/errors"
)

// Author is the identity recorded on the publish commit.
type Author struct {
	Name  string
	Email string
}

// Options describes one publish.
type Options struct {
	SourceDir    string
	Repo         string
	Branch       string
	Message      string
	Dotfiles     bool
	Remote       string
	Depth        int
	WorkspaceDir string
	Author       Author
	Auth         *config.AuthConfig
}

// OptionsFromConfig maps the deploy section onto publish options.
func OptionsFromConfig(d config.DeployConfig) Options {
	return Options{
		SourceDir:    d.SourceDir,
		Repo:         d.Repo,
		Branch:       d.Branch,
		Message:      d.Message,
		Dotfiles:     d.IncludeDotfiles(),
		Remote:       d.Remote,
		Depth:        d.Depth,
		WorkspaceDir: d.WorkspaceDir,
		Author:       Author{Name: d.Author.Name, Email: d.Author.Email},
		Auth:         d.Auth,
	}
}

// Validate checks the fields every publisher needs.
func (o Options) Validate() error {
	switch {
	case o.SourceDir == "":
		return errors.ValidationError("deploy source directory is empty").Build()
	case o.Repo == "":
		return errors.ValidationError("deploy repository is empty").Build()
	case o.Branch == "":
		return errors.ValidationError("deploy branch is empty").Build()
	case o.Message == "":
		return errors.ValidationError("deploy commit message is empty").Build()
	}
	return nil
}

// Result reports what a publish did.
type Result struct {
	Commit  string
	Changed bool
	Files   int
	// Created is set when the branch did not exist on the remote before this publish.
	Created bool
}

// Publisher pushes the contents of Options.SourceDir to Options.Branch of Options.Repo.
type Publisher interface {
	Publish(ctx context.Context, opts Options) (Result, error)
}

// PublisherFunc adapts a function to the Publisher interface.
type PublisherFunc func(ctx context.Context, opts Options) (Result, error)

func (f PublisherFunc) Publish(ctx context.Context, opts Options) (Result, error) { return f(ctx, opts) }

// Outcome is a finished publish as seen by recorders and notifiers.
type Outcome struct {
	ID       string
	Options  Options
	Result   Result
	Err      error
	Attempts int
	Started  time.Time
	Finished time.Time
}

// Duration is the wall time of the publish including retries.
func (o Outcome) Duration() time.Duration { return o.Finished.Sub(o.Started) }
