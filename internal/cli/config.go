package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdxor/internal/configloader"
	"github.com/yaklabco/mdxor/internal/logging"
	"github.com/yaklabco/mdxor/pkg/config"
)

// commandContext returns the command's context with the default logger attached.
func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logging.WithLogger(ctx, logging.Default())
}

// loadConfig resolves the effective configuration for a command, layering
// cliCfg over the discovered config files and environment.
func loadConfig(ctx context.Context, cmd *cobra.Command, cliCfg *config.Config) (*config.Config, error) {
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, errors.Join(ErrConfig, err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	logger.Debug("configuration loaded",
		logging.FieldConfig, loadResult.LoadedFrom,
		logging.FieldFlavor, loadResult.Config.Flavor,
	)

	return loadResult.Config, nil
}

// flavorFlag validates a --flavor value when the flag was set.
func flavorFlag(cmd *cobra.Command, value string, cliCfg *config.Config) error {
	if !cmd.Flags().Changed("flavor") {
		return nil
	}
	flavor := config.Flavor(value)
	if !configloader.IsValidFlavor(flavor) {
		return fmt.Errorf("%w: unknown flavor %q; valid flavors: %s", ErrUsage, value, config.FlavorNames())
	}
	cliCfg.Flavor = flavor
	return nil
}

// colorMode returns the value of the global --color flag.
func colorMode(cmd *cobra.Command) string {
	color, err := cmd.Flags().GetString("color")
	if err != nil || color == "" {
		return "auto"
	}
	return color
}
