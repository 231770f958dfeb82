package cmd

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	verbose bool
	logger  *slog.Logger
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "tdbcp",
	Short: "Branch-cut-and-price solver for time-dependent VRPTW",
	Long: `tdbcp solves time-dependent vehicle routing problems with time windows
using branch-cut-and-price: a bidirectional labeling pricing engine feeding
a set-partitioning master over a column-generation search tree.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		return nil
	},
}

// Execute runs the root command, exiting the process with status 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	binName := BinName()
	rootCmd.Example = `  # Solve an instance with an experiment config
  ` + binName + ` solve --config ./config.json --instance ./instance.json

  # Write the result to a file instead of stdout
  ` + binName + ` solve --config ./config.json --instance ./instance.json --out ./result.json`
}

// GetLogger returns the logger configured by the root command's persistent
// pre-run, set up once --verbose has been parsed.
func GetLogger() *slog.Logger {
	return logger
}

// BinName returns the base name of the current executable.
func BinName() string {
	return filepath.Base(os.Args[0])
}
