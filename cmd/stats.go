package cmd

import (
	"github.com/spf13/cobra"

	"github.com/papapumpkin/linkrank/internal/graph"
	"github.com/papapumpkin/linkrank/internal/report"
)

var statsCmd = &cobra.Command{
	Use:   "stats <webfile>",
	Short: "Print node and edge counts for a web-link graph",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	g, err := graph.LoadFile(args[0])
	if err != nil {
		return err
	}
	report.Stats(cmd.OutOrStdout(), args[0], g.NodeCount(), g.EdgeCount())
	return nil
}
