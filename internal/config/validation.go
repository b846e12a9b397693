package config

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/apache/tsfile-website/internal/foundation/errors"
)

// Validate checks the whole configuration and reports every problem found.
func (c *Config) Validate() error {
	var errs []error
	add := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	add(c.Site.Validate())
	if c.Search != nil {
		add(c.Search.Validate(c.Site.LocaleKeys()))
	}
	add(c.Analytics.Validate())
	add(c.validateOutput())
	add(c.ValidateDeploy())
	add(c.validateLinks())
	if c.Notify != nil && strings.TrimSpace(c.Notify.NATSURL) == "" {
		add(invalid("notify.nats_url must not be empty when notify is configured"))
	}
	return stderrors.Join(errs...)
}

func (c *Config) validateOutput() error {
	if c.Output.Format != RenderFormatJSON && c.Output.Format != RenderFormatYAML {
		return invalid(fmt.Sprintf("output.format: unsupported value %q", c.Output.Format))
	}
	return nil
}

// ValidateDeploy checks the deploy section alone, for callers that override it
// after Load.
func (c *Config) ValidateDeploy() error {
	d := c.Deploy
	var errs []error
	if d.Repo == "" {
		errs = append(errs, invalid("deploy.repo must not be empty"))
	}
	if err := validateBranchName(d.Branch); err != nil {
		errs = append(errs, err)
	}
	if strings.TrimSpace(d.Message) == "" {
		errs = append(errs, invalid("deploy.message must not be empty"))
	}
	if d.MaxRetries < 0 {
		errs = append(errs, invalid("deploy.max_retries cannot be negative"))
	}
	for field, raw := range map[string]string{
		"deploy.retry_initial_delay": d.RetryInitialDelay,
		"deploy.retry_max_delay":     d.RetryMaxDelay,
	} {
		if _, err := time.ParseDuration(raw); err != nil {
			errs = append(errs, invalid(fmt.Sprintf("%s: invalid duration %q", field, raw)))
		}
	}
	if d.Schedule != "" && len(strings.Fields(d.Schedule)) != 5 {
		errs = append(errs, invalid(fmt.Sprintf("deploy.schedule: expected a 5-field cron expression, got %q", d.Schedule)))
	}
	return stderrors.Join(errs...)
}

func (c *Config) validateLinks() error {
	if _, err := time.ParseDuration(c.Links.Timeout); err != nil {
		return invalid(fmt.Sprintf("links.timeout: invalid duration %q", c.Links.Timeout))
	}
	return nil
}

// validateBranchName applies the subset of git-check-ref-format rules that users
// realistically trip over.
func validateBranchName(b string) error {
	switch {
	case b == "":
		return invalid("deploy.branch must not be empty")
	case strings.HasPrefix(b, "-"), strings.HasPrefix(b, "/"), strings.HasSuffix(b, "/"),
		strings.HasSuffix(b, ".lock"), strings.Contains(b, ".."), strings.ContainsAny(b, " ~^:?*[\\"):
		return invalid(fmt.Sprintf("deploy.branch: invalid branch name %q", b))
	}
	return nil
}

func invalid(msg string) error { return errors.ValidationError(msg).Build() }
