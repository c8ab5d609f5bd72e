package cli

import (
	"bufio"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdxor/internal/configloader"
	"github.com/yaklabco/mdxor/internal/logging"
	"github.com/yaklabco/mdxor/pkg/config"
	"github.com/yaklabco/mdxor/pkg/fsutil"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// initFlags holds the flags for the init command.
type initFlags struct {
	force   bool
	minimal bool
	flavor  string
	output  string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new mdxor configuration file",
		Long: `Create a new .mdxor.yml configuration file in the current directory
with the default settings for the chosen flavor, each one documented.

Examples:
  mdxor init                        Create a documented .mdxor.yml
  mdxor init --minimal              Omit the documentation comments
  mdxor init --flavor gfm           Default to GitHub Flavored Markdown
  mdxor init --output custom.yml    Write to a custom file path`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&flags.minimal, "minimal", false, "omit documentation comments")
	cmd.Flags().StringVar(&flags.flavor, "flavor", string(config.FlavorMDX), "default flavor: "+config.FlavorNames())
	cmd.Flags().StringVarP(&flags.output, "output", "o", configloader.ProjectConfigFiles[0], "output file path")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	ctx := commandContext(cmd)
	logger := logging.NewInteractive()

	flavor := config.Flavor(flags.flavor)
	if !configloader.IsValidFlavor(flavor) {
		return fmt.Errorf("%w: unknown flavor %q; valid flavors: %s", ErrUsage, flags.flavor, config.FlavorNames())
	}

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if fsutil.Exists(absPath) && !flags.force {
		if !configloader.IsInteractive() {
			return fmt.Errorf("%w: file %q already exists; use --force to overwrite", ErrUsage, flags.output)
		}
		if !confirm(cmd, fmt.Sprintf("%s already exists. Overwrite? [y/N] ", flags.output)) {
			logger.Info("left existing file unchanged", logging.FieldPath, flags.output)
			return nil
		}
		logger.Warn("overwriting existing file", logging.FieldPath, flags.output)
	}

	content := config.GenerateTemplate(config.TemplateOptions{
		Flavor:  flavor,
		Minimal: flags.minimal,
	})

	if err := fsutil.WriteAtomic(ctx, absPath, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, flags.output, logging.FieldFlavor, flavor)
	logger.Info("run 'mdxor check' to parse every document under the current directory")

	return nil
}

// confirm prompts on the command's output and reads a yes/no answer from its input.
func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprint(cmd.OutOrStdout(), prompt)

	answer, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
