package config

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/apache/tsfile-website/internal/analytics"
)

// normalize canonicalizes enumerations and trims user-entered strings. Unknown
// enumeration values are errors; empty values are left for applyDefaults.
func normalize(cfg *Config) error {
	var errs []error

	if raw := string(cfg.Output.Format); raw != "" {
		if cfg.Output.Format = NormalizeRenderFormat(raw); cfg.Output.Format == "" {
			errs = append(errs, fmt.Errorf("output.format: unsupported value %q (json|yaml)", raw))
		}
	}

	raw := string(cfg.Analytics.Provider)
	if cfg.Analytics.Provider = analytics.NormalizeProvider(raw); cfg.Analytics.Provider == "" {
		errs = append(errs, fmt.Errorf("analytics.provider: unsupported value %q (matomo|google|none)", raw))
	}

	if a := cfg.Deploy.Auth; a != nil {
		raw := string(a.Type)
		if a.Type = NormalizeAuthType(raw); a.Type == "" {
			errs = append(errs, fmt.Errorf("deploy.auth.type: unsupported value %q (none|token|basic|ssh)", raw))
		}
	}

	if raw := string(cfg.Deploy.RetryBackoff); raw != "" {
		if cfg.Deploy.RetryBackoff = NormalizeRetryBackoff(raw); cfg.Deploy.RetryBackoff == "" {
			errs = append(errs, fmt.Errorf("deploy.retry_backoff: unsupported value %q (fixed|linear|exponential)", raw))
		}
	}

	if raw := string(cfg.Monitoring.Logging.Level); raw != "" {
		cfg.Monitoring.Logging.Level = NormalizeLogLevel(raw)
	}
	if raw := string(cfg.Monitoring.Logging.Format); raw != "" {
		cfg.Monitoring.Logging.Format = NormalizeLogFormat(raw)
	}

	cfg.Deploy.Repo = strings.TrimSpace(cfg.Deploy.Repo)
	cfg.Deploy.Branch = strings.TrimSpace(cfg.Deploy.Branch)
	cfg.Deploy.Schedule = strings.TrimSpace(cfg.Deploy.Schedule)

	return stderrors.Join(errs...)
}
