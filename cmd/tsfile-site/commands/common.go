package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/apache/tsfile-website/internal/config"
)

// Global carries the process streams into every command.
type Global struct {
	Stdout io.Writer
	Stderr io.Writer
}

// NewGlobal returns the process-wide streams.
func NewGlobal() *Global { return &Global{Stdout: os.Stdout, Stderr: os.Stderr} }

// ExitCode asks main to exit with the given status. The command has already
// reported the failure.
type ExitCode int

func (e ExitCode) Error() string { return fmt.Sprintf("exit status %d", int(e)) }

// CLI definition & global flags.
type CLI struct {
	Config   string           `short:"c" help:"Configuration file path" default:"tsfile-site.yaml" env:"TSFILE_SITE_CONFIG" type:"path"`
	Verbose  bool             `short:"v" help:"Enable verbose logging"`
	LogLevel string           `name:"log-level" help:"Log level (debug, info, warn, error); overrides the configuration" env:"TSFILE_SITE_LOG_LEVEL"`
	Version  kong.VersionFlag `name:"version" help:"Show version and exit"`

	Validate ValidateCmd `cmd:"" help:"Validate the configuration and navbar files"`
	Render   RenderCmd   `cmd:"" help:"Render the generator configuration"`
	Init     InitCmd     `cmd:"" help:"Write the default configuration and navbars"`
	Deploy   DeployCmd   `cmd:"" help:"Publish the built site to the hosting branch"`
	Links    LinksCmd    `cmd:"" help:"Check that navbar links resolve"`
	History  HistoryCmd  `cmd:"" help:"Show recent deploys"`
	Daemon   DaemonCmd   `cmd:"" help:"Deploy on the configured cron schedule until interrupted"`
	Watch    WatchCmd    `cmd:"" help:"Re-render whenever the configuration or a navbar changes"`

	logOutput io.Writer `kong:"-"`
}

// AfterApply runs after flag parsing; setup logging once. Flags and the
// environment win over the configuration file.
func (c *CLI) AfterApply() error {
	c.setupLogging(config.LogFormatText, c.flagLevel(config.LogLevelInfo))
	return nil
}

func (c *CLI) flagLevel(fallback config.LogLevel) slog.Level {
	switch {
	case c.Verbose:
		return slog.LevelDebug
	case c.LogLevel != "":
		return config.NormalizeLogLevel(c.LogLevel).SlogLevel()
	default:
		return fallback.SlogLevel()
	}
}

func (c *CLI) setupLogging(format config.LogFormat, level slog.Level) {
	out := c.logOutput
	if out == nil {
		out = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if format == config.LogFormatJSON {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// loadConfig loads the configuration and applies its logging section.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	c.setupLogging(cfg.Monitoring.Logging.Format, c.flagLevel(cfg.Monitoring.Logging.Level))
	return cfg, nil
}
