package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/papapumpkin/linkrank/internal/config"
	"github.com/papapumpkin/linkrank/internal/graph"
	"github.com/papapumpkin/linkrank/internal/history"
	"github.com/papapumpkin/linkrank/internal/profile"
	"github.com/papapumpkin/linkrank/internal/rank"
	"github.com/papapumpkin/linkrank/internal/report"
	"github.com/papapumpkin/linkrank/internal/telemetry"
)

const (
	methodStochastic   = "stochastic"
	methodDistribution = "distribution"
	methodBoth         = "both"
)

var rankCmd = &cobra.Command{
	Use:   "rank <webfile>",
	Short: "Estimate PageRank for a web-link graph",
	Long: `Loads a web-link list (one "source target" pair per line), estimates
PageRank with the selected method(s), and prints the top-ranked pages.

With --method both (the default), both estimators run on the same graph and
their run times are compared. Unset sizing flags are derived from the graph:
walks = nodes², steps and iterations = 2 x the assumed graph diameter.`,
	Args: cobra.ExactArgs(1),
	RunE: runRank,
}

func init() {
	rankCmd.Flags().Int("walks", 0, "number of random walks (0 = nodes²)")
	rankCmd.Flags().Int("steps", -1, "links followed per walk (-1 = 2x diameter; 0 is a valid walk length)")
	rankCmd.Flags().Int("iterations", 0, "distribution update rounds (0 = 2x diameter)")
	rankCmd.Flags().Int("top", 0, "entries to display (0 = config default)")
	rankCmd.Flags().Int("workers", 0, "parallel walkers (0 = config default)")
	rankCmd.Flags().Int64("seed", 0, "random seed (0 = derive from clock)")
	rankCmd.Flags().String("method", methodBoth, "estimation method: stochastic, distribution, or both")
	rankCmd.Flags().String("profile", "", "named parameter preset from the profiles file")
	rankCmd.Flags().Bool("no-history", false, "skip recording the run in the history database")

	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if err := applyProfile(cmd, &cfg); err != nil {
		return err
	}
	applyRankOverrides(cmd, &cfg)

	method, _ := cmd.Flags().GetString("method")
	switch method {
	case methodStochastic, methodDistribution, methodBoth:
	default:
		return fmt.Errorf("unknown method %q (want stochastic, distribution, or both)", method)
	}

	source := args[0]
	g, err := graph.LoadFile(source)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	report.Stats(out, source, g.NodeCount(), g.EdgeCount())

	deriveSizing(&cfg, g.NodeCount())

	if cfg.Verbose {
		fmt.Fprintf(out, "parameters: walks=%d steps=%d iterations=%d workers=%d seed=%d top=%d\n",
			cfg.Walks, cfg.Steps, cfg.Iterations, cfg.Workers, cfg.Seed, cfg.TopK)
	}

	runID := time.Now().Format("20060102-150405")
	emitter := openEmitter(cfg, runID)
	defer emitter.Close()

	_ = emitter.Emit(telemetry.Event{
		Timestamp: time.Now(), Kind: telemetry.KindRunStart, RunID: runID,
		Data: map[string]any{"source": source},
	})
	_ = emitter.Emit(telemetry.Event{
		Timestamp: time.Now(), Kind: telemetry.KindGraphLoaded, RunID: runID,
		Data: map[string]any{"nodes": g.NodeCount(), "edges": g.EdgeCount()},
	})

	var store *history.Store
	if noHistory, _ := cmd.Flags().GetBool("no-history"); !noHistory {
		store = openHistory(cmd.ErrOrStderr(), cfg)
		if store != nil {
			defer store.Close()
		}
	}

	var stochasticTime, distributionTime time.Duration

	if method == methodStochastic || method == methodBoth {
		fmt.Fprintln(out, "Estimate PageRank through random walks:")
		scores, elapsed, err := timedEstimate(emitter, runID, methodStochastic, func() (map[string]float64, error) {
			return rank.Stochastic(g, rank.StochasticOptions{
				Walks:   cfg.Walks,
				Steps:   cfg.Steps,
				Workers: cfg.Workers,
				Seed:    cfg.Seed,
			})
		})
		if err != nil {
			return err
		}
		stochasticTime = elapsed
		top := rank.Top(scores, cfg.TopK)
		report.RankedList(out, top)
		report.Timing(out, elapsed)
		fmt.Fprintln(out)
		recordRun(cmd.ErrOrStderr(), store, history.Run{
			RunID: runID, Source: source, Method: methodStochastic,
			Walks: cfg.Walks, Steps: cfg.Steps,
			Nodes: g.NodeCount(), Edges: g.EdgeCount(),
			Duration: elapsed, Top: top,
		})
	}

	if method == methodDistribution || method == methodBoth {
		fmt.Fprintln(out, "Estimate PageRank through probability distributions:")
		scores, elapsed, err := timedEstimate(emitter, runID, methodDistribution, func() (map[string]float64, error) {
			return rank.Distribution(g, cfg.Iterations)
		})
		if err != nil {
			return err
		}
		distributionTime = elapsed
		top := rank.Top(scores, cfg.TopK)
		report.RankedList(out, top)
		report.Timing(out, elapsed)
		fmt.Fprintln(out)
		recordRun(cmd.ErrOrStderr(), store, history.Run{
			RunID: runID, Source: source, Method: methodDistribution,
			Iterations: cfg.Iterations,
			Nodes:      g.NodeCount(), Edges: g.EdgeCount(),
			Duration: elapsed, Top: top,
		})
	}

	if method == methodBoth {
		report.Speedup(out, stochasticTime, distributionTime)
	}

	_ = emitter.Emit(telemetry.Event{
		Timestamp: time.Now(), Kind: telemetry.KindRunDone, RunID: runID,
	})
	return nil
}

// timedEstimate runs one estimator with telemetry and wall-clock timing.
func timedEstimate(emitter *telemetry.Emitter, runID, method string, fn func() (map[string]float64, error)) (map[string]float64, time.Duration, error) {
	_ = emitter.Emit(telemetry.Event{
		Timestamp: time.Now(), Kind: telemetry.KindEstimateStart, RunID: runID, Method: method,
	})
	start := time.Now()
	scores, err := fn()
	elapsed := time.Since(start)
	if err != nil {
		return nil, 0, err
	}
	_ = emitter.Emit(telemetry.Event{
		Timestamp: time.Now(), Kind: telemetry.KindEstimateDone, RunID: runID, Method: method,
		Data: map[string]any{"seconds": elapsed.Seconds()},
	})
	return scores, elapsed, nil
}

// applyProfile layers a named preset from the profiles file onto the config.
// Flags applied afterwards still win over profile values.
func applyProfile(cmd *cobra.Command, cfg *config.Config) error {
	name, _ := cmd.Flags().GetString("profile")
	if name == "" {
		return nil
	}
	f, err := profile.Load(cfg.ProfilesPath)
	if err != nil {
		return err
	}
	p, err := f.Get(name)
	if err != nil {
		return err
	}
	if p.Walks > 0 {
		cfg.Walks = p.Walks
	}
	if p.Steps > 0 {
		cfg.Steps = p.Steps
	}
	if p.Iterations > 0 {
		cfg.Iterations = p.Iterations
	}
	if p.Workers > 0 {
		cfg.Workers = p.Workers
	}
	if p.Seed != 0 {
		cfg.Seed = p.Seed
	}
	return nil
}

// applyRankOverrides applies CLI flag values to the loaded config.
func applyRankOverrides(cmd *cobra.Command, cfg *config.Config) {
	if v, _ := cmd.Flags().GetInt("walks"); v > 0 {
		cfg.Walks = v
	}
	if v, _ := cmd.Flags().GetInt("steps"); cmd.Flags().Changed("steps") && v >= 0 {
		cfg.Steps = v
	}
	if v, _ := cmd.Flags().GetInt("iterations"); v > 0 {
		cfg.Iterations = v
	}
	if v, _ := cmd.Flags().GetInt("top"); v > 0 {
		cfg.TopK = v
	}
	if v, _ := cmd.Flags().GetInt("workers"); v > 0 {
		cfg.Workers = v
	}
	if v, _ := cmd.Flags().GetInt64("seed"); v != 0 {
		cfg.Seed = v
	}
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		cfg.Verbose = true
	}
}

// deriveSizing fills unset estimator sizes from the graph, following the
// original sizing: walks = n², steps and iterations = 2x diameter.
// Steps uses -1 as its unset sentinel so an explicit zero-step request
// survives derivation.
func deriveSizing(cfg *config.Config, nodes int) {
	diameter := cfg.Diameter
	if diameter < 1 {
		diameter = 3
	}
	if cfg.Walks < 1 {
		cfg.Walks = nodes * nodes
	}
	if cfg.Walks < 1 {
		cfg.Walks = 1 // empty or single-node graph
	}
	if cfg.Steps < 0 {
		cfg.Steps = 2 * diameter
	}
	if cfg.Iterations < 1 {
		cfg.Iterations = 2 * diameter
	}
}

// openEmitter opens the telemetry stream for a run. Telemetry is best
// effort: on any failure a nil (no-op) emitter is returned.
func openEmitter(cfg config.Config, runID string) *telemetry.Emitter {
	if cfg.TelemetryDir == "" {
		return nil
	}
	if err := os.MkdirAll(cfg.TelemetryDir, 0o755); err != nil {
		return nil
	}
	em, err := telemetry.NewEmitter(filepath.Join(cfg.TelemetryDir, runID+".jsonl"))
	if err != nil {
		return nil
	}
	return em
}

// openHistory opens the run-history store, warning instead of failing when
// it cannot be opened.
func openHistory(errw io.Writer, cfg config.Config) *history.Store {
	if cfg.HistoryDB == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.HistoryDB), 0o755); err != nil {
		fmt.Fprintf(errw, "warning: history disabled: %v\n", err)
		return nil
	}
	store, err := history.Open(context.Background(), cfg.HistoryDB)
	if err != nil {
		fmt.Fprintf(errw, "warning: history disabled: %v\n", err)
		return nil
	}
	return store
}

// recordRun persists a completed run, warning on failure.
func recordRun(errw io.Writer, store *history.Store, run history.Run) {
	if store == nil {
		return
	}
	if _, err := store.Record(context.Background(), run); err != nil {
		fmt.Fprintf(errw, "warning: record run: %v\n", err)
	}
}
