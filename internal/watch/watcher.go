// Package watch re-renders the site configuration when its inputs change.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/apache/tsfile-website/internal/logfields"
)

// DefaultDebounce collapses editor save bursts into a single run.
const DefaultDebounce = 300 * time.Millisecond

// Watcher calls a function after the config file, its .env files or a navbar
// file changed.
type Watcher struct {
	configPath string
	navbarDir  string
	debounce   time.Duration
	onChange   func(ctx context.Context) error
	fs         *fsnotify.Watcher
}

// New watches the directory of configPath and navbarDir. Directories are watched
// rather than files so that editors replacing files by rename are noticed.
func New(configPath, navbarDir string, debounce time.Duration, onChange func(ctx context.Context) error) (*Watcher, error) {
	absConfig, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}
	absNavbar, err := filepath.Abs(navbarDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve navbar directory: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	for _, dir := range []string{filepath.Dir(absConfig), absNavbar} {
		if err := fsw.Add(dir); err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}
	return &Watcher{
		configPath: absConfig,
		navbarDir:  absNavbar,
		debounce:   debounce,
		onChange:   onChange,
		fs:         fsw,
	}, nil
}

// Run processes events until ctx is cancelled. Errors from onChange are logged and
// watching continues.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() { _ = w.fs.Close() }()
	slog.Info("Watching for changes", logfields.Path(w.configPath), slog.String("navbar_dir", w.navbarDir))

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			slog.Debug("Change detected", logfields.Path(ev.Name), slog.String("op", ev.Op.String()))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			slog.Error("File watcher error", logfields.Error(err))
		case <-fire:
			fire = nil
			if err := w.onChange(ctx); err != nil {
				slog.Error("Re-render failed", logfields.Error(err))
			}
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
		return false
	}
	name := filepath.Clean(ev.Name)
	dir, base := filepath.Dir(name), filepath.Base(name)
	switch {
	case name == w.configPath:
		return true
	case dir == filepath.Dir(w.configPath) && (base == ".env" || base == ".env.local"):
		return true
	case dir == w.navbarDir:
		ext := strings.ToLower(filepath.Ext(base))
		return ext == ".yaml" || ext == ".yml"
	}
	return false
}
