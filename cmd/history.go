package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/linkrank/internal/config"
	"github.com/papapumpkin/linkrank/internal/history"
	"github.com/papapumpkin/linkrank/internal/report"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded ranking runs",
	Long: `Lists runs recorded in the history database, newest first.
With --run, shows the stored top entries of a single run instead.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to list")
	historyCmd.Flags().Int64("run", 0, "show the stored entries of one run by ID")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	ctx := context.Background()
	out := cmd.OutOrStdout()

	// Nothing has been recorded yet; don't let the driver create an
	// empty database just to report that.
	if _, err := os.Stat(cfg.HistoryDB); os.IsNotExist(err) {
		fmt.Fprintln(out, "no recorded runs")
		return nil
	}

	store, err := history.Open(ctx, cfg.HistoryDB)
	if err != nil {
		return err
	}
	defer store.Close()

	if runID, _ := cmd.Flags().GetInt64("run"); runID > 0 {
		entries, err := store.Entries(ctx, runID)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintf(out, "no entries for run %d\n", runID)
			return nil
		}
		report.RankedList(out, entries)
		return nil
	}

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.Recent(ctx, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "no recorded runs")
		return nil
	}

	for _, r := range runs {
		var params string
		switch r.Method {
		case methodStochastic:
			params = fmt.Sprintf("walks=%d steps=%d", r.Walks, r.Steps)
		case methodDistribution:
			params = fmt.Sprintf("iterations=%d", r.Iterations)
		}
		fmt.Fprintf(out, "%4d  %s  %-12s  %s  %d nodes  %d edges  %s  %.2fs\n",
			r.ID, r.CreatedAt.Format(time.DateTime), r.Method, r.Source,
			r.Nodes, r.Edges, params, r.Duration.Seconds())
	}
	return nil
}
