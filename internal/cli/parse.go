package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdxor/internal/logging"
	"github.com/yaklabco/mdxor/pkg/config"
	"github.com/yaklabco/mdxor/pkg/parser"
	"github.com/yaklabco/mdxor/pkg/reporter"
)

// parseFlags holds the flags for the parse command.
type parseFlags struct {
	format string
	output string
	flavor string
}

func newParseCommand() *cobra.Command {
	flags := &parseFlags{}

	cmd := &cobra.Command{
		Use:   "parse [file|-]",
		Short: "Parse a document and print its syntax tree",
		Long: `Parse a single Markdown or MDX document and print the resulting tree.

Reads standard input when no file is given or the file is "-".

Examples:
  mdxor parse README.md                 Print the tree outline
  mdxor parse --format json doc.mdx     Print the tree as JSON
  cat doc.md | mdxor parse --flavor gfm Parse stdin as GitHub Flavored Markdown
  mdxor parse -o tree.yml --format yaml doc.mdx`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "tree", "output format: tree, json, yaml")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write output to a file instead of stdout")
	cmd.Flags().StringVar(&flags.flavor, "flavor", "", "markdown flavor: "+config.FlavorNames())

	return cmd
}

func runParse(cmd *cobra.Command, args []string, flags *parseFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	format, err := reporter.ParseTreeFormat(flags.format)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

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

	start := time.Now()
	tree, err := parser.New(cfg.ParserOptions()).Parse(ctx, path, content)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	logger.Debug("parsed document",
		logging.FieldPath, path,
		logging.FieldBytes, len(content),
		logging.FieldDuration, time.Since(start),
	)

	writer, commit := outputTarget(ctx, cmd, flags.output)
	color := colorMode(cmd)
	if flags.output != "" {
		color = "never"
	}

	opts := reporter.DefaultOptions()
	opts.Writer = writer
	opts.Color = color
	if err := reporter.WriteTree(opts, tree, format); err != nil {
		return err
	}

	if err := commit(); err != nil {
		return err
	}
	if flags.output != "" {
		logger.Info("wrote tree", logging.FieldOutput, flags.output)
	}
	return nil
}
