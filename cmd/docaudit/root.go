package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/docaudit/internal/api"
	"github.com/jackzampolin/docaudit/version"
)

var (
	cfgFile      string
	outputFormat string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "docaudit",
	Short: "Structural analysis and quality checks for extracted PDF content",
	Long: `Docaudit consumes per-page content extracted from a PDF and derives the
document's structure: table of contents, heading hierarchy, appendix
boundaries, and printed page numbering.

It then runs a battery of quality checks against that structure:
  - Page-numbering consistency (gaps, resets, scheme changes)
  - Appendix ordering and TOC presence
  - Link reachability with bounded concurrent probing
  - Image caption presence

The result is a machine-readable report with per-check detail and an
overall pass/fail flag.`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.docaudit/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false, "enable debug logging",
	)

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		api.SetOutputFormat(outputFormat)

		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	}

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
