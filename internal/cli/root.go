// Package cli provides the Cobra command structure for mdxor.
package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdxor/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root mdxor command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "mdxor",
		Short: "A Markdown and MDX parser with a differential checker",
		Long: `mdxor parses CommonMark, GitHub Flavored Markdown and MDX documents into
a typed syntax tree with exact source spans.

Documents can be dumped as an outline, JSON or YAML, checked in bulk for
parse failures, and compared block by block against goldmark to find
places where the two parsers disagree.`,
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

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.Join(ErrUsage, err)
	})

	// Add subcommands.
	rootCmd.AddCommand(newParseCommand())
	rootCmd.AddCommand(newCheckCommand())
	rootCmd.AddCommand(newCompareCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	NewHelpFormatter(nil).ApplyToCommand(rootCmd)

	return rootCmd
}

// usageArgs wraps a positional argument validator so its failures map to ExitInvalidUsage.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return errors.Join(ErrUsage, err)
		}
		return nil
	}
}
