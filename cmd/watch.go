package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/linkrank/internal/config"
	"github.com/papapumpkin/linkrank/internal/telemetry"
	"github.com/papapumpkin/linkrank/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch <webfile>",
	Short: "Re-rank whenever the web-link file changes",
	Long: `Runs an initial ranking, then watches the web-link file and re-runs
the ranking each time the file is rewritten. Stop with Ctrl-C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().Int("walks", 0, "number of random walks (0 = nodes²)")
	watchCmd.Flags().Int("steps", -1, "links followed per walk (-1 = 2x diameter; 0 is a valid walk length)")
	watchCmd.Flags().Int("iterations", 0, "distribution update rounds (0 = 2x diameter)")
	watchCmd.Flags().Int("top", 0, "entries to display (0 = config default)")
	watchCmd.Flags().Int("workers", 0, "parallel walkers (0 = config default)")
	watchCmd.Flags().Int64("seed", 0, "random seed (0 = derive from clock)")
	watchCmd.Flags().String("method", methodBoth, "estimation method: stochastic, distribution, or both")
	watchCmd.Flags().String("profile", "", "named parameter preset from the profiles file")
	watchCmd.Flags().Bool("no-history", false, "skip recording runs in the history database")

	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cfg := config.Load()
	sessionID := "watch-" + time.Now().Format("20060102-150405")
	emitter := openEmitter(cfg, sessionID)
	defer emitter.Close()

	rerank := func() {
		if err := runRank(cmd, args); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "rank failed: %v\n", err)
		}
	}
	rerank()

	w, err := watch.New(args[0])
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}
	defer w.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	fmt.Fprintf(out, "watching %s (Ctrl-C to stop)\n", args[0])
	for {
		select {
		case <-w.Changes:
			fmt.Fprintf(out, "\n%s changed at %s, re-ranking\n", args[0], time.Now().Format(time.TimeOnly))
			_ = emitter.Emit(telemetry.Event{
				Timestamp: time.Now(), Kind: telemetry.KindWatchReload, RunID: sessionID,
				Data: map[string]any{"source": args[0]},
			})
			rerank()
		case <-sig:
			fmt.Fprintln(out, "stopping")
			return nil
		}
	}
}
