package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdxor/internal/logging"
	"github.com/yaklabco/mdxor/pkg/compare"
	"github.com/yaklabco/mdxor/pkg/config"
	"github.com/yaklabco/mdxor/pkg/reporter"
)

// compareFlags holds the flags for the compare command.
type compareFlags struct {
	flavor    string
	noSummary bool
}

func newCompareCommand() *cobra.Command {
	flags := &compareFlags{}

	cmd := &cobra.Command{
		Use:   "compare [file|-]",
		Short: "Diff a document's block outline against goldmark",
		Long: `Parse a single document with both mdxor and goldmark and print a unified
diff of their block outlines. Exits with status 1 when the outlines differ.

Reads standard input when no file is given or the file is "-".

Examples:
  mdxor compare README.md
  mdxor compare --flavor gfm notes.md`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.flavor, "flavor", "", "markdown flavor: "+config.FlavorNames())
	cmd.Flags().BoolVar(&flags.noSummary, "no-summary", false, "omit the change count line")

	return cmd
}

func runCompare(cmd *cobra.Command, args []string, flags *compareFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	cliCfg := &config.Config{}
	if err := flavorFlag(cmd, flags.flavor, cliCfg); err != nil {
		return err
	}

	cfg, err := loadConfig(ctx, cmd, cliCfg)
	if err != nil {
		return err
	}

	path, content, err := readInput(ctx, cmd, args)
	if err != nil {
		return err
	}

	diff, err := compare.New(cfg.ParserOptions()).Compare(ctx, path, content)
	if err != nil {
		return fmt.Errorf("compare %s: %w", path, err)
	}

	hunks := 0
	if diff != nil {
		hunks = len(diff.Hunks)
	}
	logger.Debug("compared document", logging.FieldPath, path, logging.FieldHunks, hunks)

	opts := reporter.DefaultOptions()
	opts.Writer = cmd.OutOrStdout()
	opts.Color = colorMode(cmd)
	opts.ShowSummary = !flags.noSummary
	if err := reporter.WriteDiff(opts, path, diff); err != nil {
		return err
	}

	if diff.HasChanges() {
		return ErrFailuresFound
	}
	return nil
}
