package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/apache/tsfile-website/internal/foundation/errors"
	"github.com/apache/tsfile-website/internal/history"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	Limit int    `short:"n" help:"Number of deploys to show" default:"20"`
	ID    string `help:"Show a single deploy"`
	JSON  bool   `help:"Print as JSON"`
}

func (h *HistoryCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	if cfg.History.Database == "" {
		return errors.ConfigError("deploy history is not enabled (set history.database)").UserAction().Build()
	}
	store, err := history.NewSQLiteStore(cfg.History.Database)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	var records []history.Record
	if h.ID != "" {
		rec, err := store.Get(ctx, h.ID)
		if err != nil {
			return err
		}
		records = []history.Record{rec}
	} else if records, err = store.List(ctx, h.Limit); err != nil {
		return err
	}

	if h.JSON {
		enc := json.NewEncoder(g.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}
	if len(records) == 0 {
		_, _ = fmt.Fprintln(g.Stdout, "No deploys recorded")
		return nil
	}
	tw := tabwriter.NewWriter(g.Stdout, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "STARTED\tSTATUS\tBRANCH\tCOMMIT\tFILES\tDURATION\tID")
	for _, r := range records {
		commit := r.Commit
		if len(commit) > 8 {
			commit = commit[:8]
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			r.StartedAt.Local().Format("2006-01-02 15:04:05"), r.Status, r.Branch, commit, r.Files,
			r.Duration().Round(time.Millisecond), r.ID)
	}
	return tw.Flush()
}
