// Package cli provides the Cobra command structure for vellum.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/vellum/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root vellum command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "vellum",
		Short: "Inspect and edit Markdown documents through a lossless syntax tree",
		Long: `vellum parses Markdown into a lossless syntax tree and keeps the tree,
the line table, and the UTF-16 index current as the text is edited.

It targets CommonMark and GitHub Flavored Markdown (GFM). The inspect and
lines commands expose a document's tree and position index; edit applies
byte-range replacements incrementally and can write the result back
atomically, with unified diffs and backups for safety; stats reports
document measurements for one file or many.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newInspectCommand())
	rootCmd.AddCommand(newLinesCommand())
	rootCmd.AddCommand(newEditCommand())
	rootCmd.AddCommand(newStatsCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	decorateHelp(rootCmd, color, os.Stdout)

	return rootCmd
}
