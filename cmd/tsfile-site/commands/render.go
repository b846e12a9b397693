package commands

import (
	"fmt"

	"github.com/apache/tsfile-website/internal/config"
	"github.com/apache/tsfile-website/internal/foundation/errors"
	"github.com/apache/tsfile-website/internal/render"
)

// RenderCmd implements the 'render' command.
type RenderCmd struct {
	Output string `short:"o" help:"Output directory (overrides output.directory)" type:"path"`
	Format string `short:"f" help:"Output format: json or yaml (overrides output.format)"`
}

func (r *RenderCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	if err := r.apply(cfg); err != nil {
		return err
	}
	out, err := render.Render(cfg)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(g.Stdout, "Wrote %s\nWrote %s\n", out.ConfigPath, out.HeadPath)
	return nil
}

func (r *RenderCmd) apply(cfg *config.Config) error {
	if r.Output != "" {
		cfg.Output.Directory = r.Output
	}
	if r.Format != "" {
		f := config.NormalizeRenderFormat(r.Format)
		if f == "" {
			return errors.ValidationError(fmt.Sprintf("unsupported format %q", r.Format)).UserAction().Build()
		}
		cfg.Output.Format = f
	}
	return nil
}
