package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdxor/internal/logging"
	"github.com/yaklabco/mdxor/pkg/analysis"
	"github.com/yaklabco/mdxor/pkg/compare"
	"github.com/yaklabco/mdxor/pkg/config"
	"github.com/yaklabco/mdxor/pkg/parser"
	"github.com/yaklabco/mdxor/pkg/reporter"
	"github.com/yaklabco/mdxor/pkg/runner"
)

// checkFlags holds the flags for the check command.
type checkFlags struct {
	format     string
	flavor     string
	sortBy     string
	ignore     []string
	extensions []string
	jobs       int
	strict     bool
	compare    bool
	verbose    bool
	compact    bool
	noDiff     bool
	noSummary  bool
}

func newCheckCommand() *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Parse documents in bulk and report failures",
		Long: `Parse every Markdown and MDX document under the given paths and report
files that fail to parse. With --compare, each document's block outline is
also diffed against goldmark.

Paths may be files or directories. The current directory is used when no
path is given.

Examples:
  mdxor check                        Check the current directory
  mdxor check docs/ README.md        Check specific paths
  mdxor check --compare --strict     Fail when any document diverges
  mdxor check --format json          Machine-readable report`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "", "output format: text, table, json, yaml, summary")
	cmd.Flags().StringVar(&flags.flavor, "flavor", "", "markdown flavor: "+config.FlavorNames())
	cmd.Flags().StringVar(&flags.sortBy, "sort", string(analysis.SortByStatus), "file ordering: status, count, alpha")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to skip (repeatable)")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil, "document extensions to include (repeatable)")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "parallel workers (0 = one per CPU)")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat divergence from goldmark as failure")
	cmd.Flags().BoolVar(&flags.compare, "compare", false, "diff each document against goldmark")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "list files that parsed cleanly")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "compact JSON output")
	cmd.Flags().BoolVar(&flags.noDiff, "no-diff", false, "omit outline diffs from text output")
	cmd.Flags().BoolVar(&flags.noSummary, "no-summary", false, "omit the summary line")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string, flags *checkFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	sortBy := analysis.SortField(flags.sortBy)
	if !sortBy.IsValid() {
		return fmt.Errorf("%w: unknown sort field %q", ErrUsage, flags.sortBy)
	}

	if flags.format != "" {
		if _, err := reporter.ParseFormat(flags.format); err != nil {
			return fmt.Errorf("%w: %w", ErrUsage, err)
		}
	}

	cliCfg := &config.Config{
		Format:  config.OutputFormat(flags.format),
		Jobs:    flags.jobs,
		Strict:  flags.strict,
		Compare: flags.compare,
	}
	if err := flavorFlag(cmd, flags.flavor, cliCfg); err != nil {
		return err
	}
	if cmd.Flags().Changed("ignore") {
		cliCfg.Ignore = flags.ignore
	}
	if cmd.Flags().Changed("ext") {
		cliCfg.Extensions = flags.extensions
	}

	cfg, err := loadConfig(ctx, cmd, cliCfg)
	if err != nil {
		return err
	}

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	parserOpts := cfg.ParserOptions()
	run := runner.New(parser.New(parserOpts))
	if cfg.Compare {
		run.Comparer = compare.New(parserOpts)
	}

	runOpts := runner.OptionsFromConfig(cfg, args)
	runOpts.WorkingDir = workDir

	logger.Debug("starting check",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldJobs, runOpts.Jobs,
		logging.FieldCompare, cfg.Compare,
	)

	result, err := run.Run(ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("check run failed"), err)
	}

	opts := reporter.DefaultOptions()
	opts.Writer = cmd.OutOrStdout()
	opts.ErrorWriter = cmd.ErrOrStderr()
	opts.Format = format
	opts.Color = colorMode(cmd)
	opts.ShowSummary = !flags.noSummary
	opts.ShowDiff = !flags.noDiff
	opts.Verbose = flags.verbose
	opts.Compact = flags.compact
	opts.SortBy = sortBy
	opts.WorkingDir = workDir

	rep, err := reporter.New(opts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	totals, err := rep.Report(ctx, result)
	if err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if ExitCodeFromTotals(totals, cfg.Strict) != ExitSuccess {
		return ErrFailuresFound
	}
	return nil
}
