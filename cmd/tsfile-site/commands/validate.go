package commands

import (
	"fmt"

	"github.com/apache/tsfile-website/internal/config"
)

// ValidateCmd implements the 'validate' command.
type ValidateCmd struct{}

func (v *ValidateCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	navbars, err := config.LoadNavbars(cfg)
	if err != nil {
		return err
	}
	links := 0
	for _, nav := range navbars {
		links += len(nav.Links())
	}
	_, _ = fmt.Fprintf(g.Stdout, "Configuration OK: %d locales, %d navbar links\n", len(cfg.Site.Locales), links)
	return nil
}
