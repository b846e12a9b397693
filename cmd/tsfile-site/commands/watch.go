package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/apache/tsfile-website/internal/config"
	"github.com/apache/tsfile-website/internal/logfields"
	"github.com/apache/tsfile-website/internal/render"
	"github.com/apache/tsfile-website/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Debounce time.Duration `help:"Quiet period before re-rendering" default:"300ms"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	rerender := func(context.Context) error {
		fresh, err := config.Load(root.Config)
		if err != nil {
			return err
		}
		out, err := render.Render(fresh)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(g.Stdout, "Re-rendered %s\n", out.ConfigPath)
		return nil
	}

	if _, err := render.Render(cfg); err != nil {
		// keep watching so the user can fix the problem
		slog.Error("Initial render failed", logfields.Error(err))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	watcher, err := watch.New(root.Config, cfg.Navbar.Dir, w.Debounce, rerender)
	if err != nil {
		return err
	}
	return watcher.Run(ctx)
}
