package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/apache/tsfile-website/internal/config"
	"github.com/apache/tsfile-website/internal/foundation/errors"
	"github.com/apache/tsfile-website/internal/linkverify"
	"github.com/apache/tsfile-website/internal/logfields"
	"github.com/apache/tsfile-website/internal/metrics"
	"github.com/apache/tsfile-website/internal/notify"
)

// LinksCmd implements the 'links' command.
type LinksCmd struct {
	External bool `short:"e" help:"Also check external links (overrides links.check_external)"`
	JSON     bool `help:"Print the report as JSON"`
	NoFail   bool `name:"no-fail" help:"Exit 0 even when links are broken"`
}

func (l *LinksCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	if l.External {
		cfg.Links.CheckExternal = true
	}
	navbars, err := config.LoadNavbars(cfg)
	if err != nil {
		return err
	}
	names := make(map[string]string, len(navbars))
	for key := range navbars {
		names[key], _ = cfg.Site.NavbarName(key)
	}

	checker, err := linkverify.NewChecker(cfg.Links)
	if err != nil {
		return err
	}
	var recorder *metrics.PrometheusRecorder
	if cfg.Monitoring.Metrics.Textfile != "" {
		recorder = metrics.NewPrometheusRecorder(nil)
		checker.WithRecorder(recorder)
	}
	if cfg.Notify != nil && cfg.Notify.NATSURL != "" {
		pub, err := notify.Connect(cfg.Notify.NATSURL)
		if err != nil {
			slog.Warn("Broken link notifications disabled", logfields.URL(cfg.Notify.NATSURL), logfields.Error(err))
		} else {
			defer func() { _ = pub.Close() }()
			checker.WithSink(notify.New(pub, *cfg.Notify))
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	report, err := checker.Check(ctx, linkverify.Collect(navbars, names))
	if err != nil {
		return err
	}
	if recorder != nil {
		if err := recorder.WriteTextfile(cfg.Monitoring.Metrics.Textfile); err != nil {
			slog.Warn("Failed to write metrics textfile", logfields.Error(err))
		}
	}

	if err := l.print(g, report); err != nil {
		return err
	}
	if broken := len(report.Broken()); broken > 0 && !l.NoFail {
		return errors.ValidationError(fmt.Sprintf("%d broken navbar links", broken)).Build()
	}
	return nil
}

func (l *LinksCmd) print(g *Global, report linkverify.Report) error {
	if l.JSON {
		enc := json.NewEncoder(g.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	for _, r := range report.Results {
		status := "ok"
		switch {
		case r.Skipped:
			status = "skip"
		case !r.OK:
			status = "BROKEN"
		}
		line := fmt.Sprintf("%-6s %-4s %s %s", status, r.Navbar, r.URL, r.Text)
		if r.Title != "" {
			line += fmt.Sprintf(" (%s)", r.Title)
		}
		if r.Error != "" {
			line += ": " + r.Error
		}
		_, _ = fmt.Fprintln(g.Stdout, line)
	}
	checked, broken := report.Count(linkverify.KindInternal)
	extChecked, extBroken := report.Count(linkverify.KindExternal)
	_, _ = fmt.Fprintf(g.Stdout, "%d internal (%d broken), %d external (%d broken)\n", checked, broken, extChecked, extBroken)
	return nil
}
