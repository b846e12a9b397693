package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/apache/tsfile-website/internal/analytics"
	"github.com/apache/tsfile-website/internal/foundation/errors"
	"github.com/apache/tsfile-website/internal/search"
	"github.com/apache/tsfile-website/internal/site"
)

// CurrentVersion is the only configuration version understood by Load.
const CurrentVersion = "1.0"

// DefaultFileName is the configuration file looked up when no path is given.
const DefaultFileName = "tsfile-site.yaml"

// Config is the complete tsfile-site configuration.
type Config struct {
	Version    string           `yaml:"version"`
	Site       site.Site        `yaml:"site"`
	Navbar     NavbarConfig     `yaml:"navbar"`
	Search     *search.Options  `yaml:"search,omitempty"`
	Analytics  analytics.Config `yaml:"analytics"`
	Output     OutputConfig     `yaml:"output"`
	Deploy     DeployConfig     `yaml:"deploy"`
	Links      LinksConfig      `yaml:"links,omitempty"`
	History    HistoryConfig    `yaml:"history,omitempty"`
	Notify     *NotifyConfig    `yaml:"notify,omitempty"`
	Monitoring MonitoringConfig `yaml:"monitoring,omitempty"`

	baseDir string
}

// NavbarConfig locates the per-locale navbar files.
type NavbarConfig struct {
	Dir string `yaml:"dir"`
}

// OutputConfig controls where and how the generator configuration is rendered.
type OutputConfig struct {
	Directory string       `yaml:"directory"`
	Format    RenderFormat `yaml:"format"`
}

// DeployConfig describes the publish of the pre-built site to a hosting branch.
type DeployConfig struct {
	SourceDir         string           `yaml:"source_dir"`
	Repo              string           `yaml:"repo"`
	Branch            string           `yaml:"branch"`
	Message           string           `yaml:"message"`
	Dotfiles          *bool            `yaml:"dotfiles,omitempty"`
	Remote            string           `yaml:"remote,omitempty"`
	Depth             int              `yaml:"depth,omitempty"`
	WorkspaceDir      string           `yaml:"workspace_dir,omitempty"`
	Author            AuthorConfig     `yaml:"author,omitempty"`
	Auth              *AuthConfig      `yaml:"auth,omitempty"`
	MaxRetries        int              `yaml:"max_retries"`
	RetryBackoff      RetryBackoffMode `yaml:"retry_backoff,omitempty"`
	RetryInitialDelay string           `yaml:"retry_initial_delay,omitempty"`
	RetryMaxDelay     string           `yaml:"retry_max_delay,omitempty"`
	Schedule          string           `yaml:"schedule,omitempty"`
}

// IncludeDotfiles reports whether dot-prefixed entries are published. Defaults to true.
func (d DeployConfig) IncludeDotfiles() bool { return d.Dotfiles == nil || *d.Dotfiles }

// AuthorConfig is the identity recorded on publish commits.
type AuthorConfig struct {
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

// LinksConfig configures the navbar link checker.
type LinksConfig struct {
	SourceDir     string `yaml:"source_dir"`
	CheckExternal bool   `yaml:"check_external"`
	Timeout       string `yaml:"timeout,omitempty"`
}

// HistoryConfig enables the deploy ledger when Database is set.
type HistoryConfig struct {
	Database string `yaml:"database,omitempty"`
}

// NotifyConfig publishes deploy and link-check events to NATS.
type NotifyConfig struct {
	NATSURL     string `yaml:"nats_url"`
	Subject     string `yaml:"subject,omitempty"`
	LinkSubject string `yaml:"link_subject,omitempty"`
}

// MonitoringConfig represents logging and metrics configuration.
type MonitoringConfig struct {
	Logging MonitoringLogging `yaml:"logging,omitempty"`
	Metrics MonitoringMetrics `yaml:"metrics,omitempty"`
}

type MonitoringLogging struct {
	Level  LogLevel  `yaml:"level,omitempty"`
	Format LogFormat `yaml:"format,omitempty"`
}

// MonitoringMetrics writes a node-exporter textfile after each deploy when Textfile is set.
type MonitoringMetrics struct {
	Textfile string `yaml:"textfile,omitempty"`
}

// Load reads, normalizes, defaults and validates a configuration file.
func Load(configPath string) (*Config, error) {
	absPath, err := filepath.Abs(configPath)
	if err != nil {
		return nil, errors.ConfigError("invalid configuration path").WithCause(err).WithContext("path", configPath).Build()
	}
	baseDir := filepath.Dir(absPath)
	loadEnvFiles(baseDir)

	data, err := os.ReadFile(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigError(fmt.Sprintf("configuration file not found: %s", configPath)).
				WithContext("path", configPath).UserAction().Build()
		}
		return nil, errors.FileSystemError("failed to read config file").WithCause(err).WithContext("path", configPath).Build()
	}

	cfg, err := Parse([]byte(os.ExpandEnv(string(data))))
	if err != nil {
		return nil, err
	}
	cfg.baseDir = baseDir
	cfg.resolvePaths()

	if err := cfg.Validate(); err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "configuration validation failed").
			WithContext("path", configPath).Fatal().Build()
	}
	return cfg, nil
}

// Parse decodes, normalizes and defaults configuration bytes. Unknown fields and
// repeated mapping keys are rejected. Validation is left to the caller.
func Parse(data []byte) (*Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, errors.ConfigError("failed to decode configuration").WithCause(err).Build()
	}
	if cfg.Version != CurrentVersion {
		return nil, errors.ConfigError(fmt.Sprintf("unsupported configuration version: %q (expected %s)", cfg.Version, CurrentVersion)).Build()
	}
	if err := normalize(&cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "normalize").Build()
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// ResolvePath returns p unchanged when absolute, otherwise joined to the config directory.
func (c *Config) ResolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) || c.baseDir == "" {
		return p
	}
	return filepath.Join(c.baseDir, p)
}

func (c *Config) resolvePaths() {
	c.Navbar.Dir = c.ResolvePath(c.Navbar.Dir)
	c.Output.Directory = c.ResolvePath(c.Output.Directory)
	c.Deploy.SourceDir = c.ResolvePath(c.Deploy.SourceDir)
	c.Deploy.WorkspaceDir = c.ResolvePath(c.Deploy.WorkspaceDir)
	c.Links.SourceDir = c.ResolvePath(c.Links.SourceDir)
	c.History.Database = c.ResolvePath(c.History.Database)
	c.Monitoring.Metrics.Textfile = c.ResolvePath(c.Monitoring.Metrics.Textfile)
	if c.Deploy.Auth != nil {
		c.Deploy.Auth.KeyPath = c.ResolvePath(c.Deploy.Auth.KeyPath)
	}
}
