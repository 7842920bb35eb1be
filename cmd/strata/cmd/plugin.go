package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/strataview/strata/internal/config"
	"github.com/strataview/strata/internal/events"
	"github.com/strataview/strata/internal/logging"
	"github.com/strataview/strata/internal/plugins"
)

// pluginCmd represents the plugin command.
var pluginCmd = &cobra.Command{
	Use:   "plugin",
	Short: "Plugin management commands",
	Long:  `Commands for inspecting and verifying viewer plugins.`,
}

func init() {
	rootCmd.AddCommand(pluginCmd)

	pluginCmd.PersistentFlags().
		StringVarP(&pluginDir, "plugins", "p", "", "Plugin directory (overrides config)")
}

// resolvePluginDir returns the plugin directory from the flag or the config
// file.
func resolvePluginDir() (string, error) {
	if pluginDir != "" {
		return pluginDir, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return "", fmt.Errorf("loading configuration: %w", err)
	}

	return cfg.Plugin.Path, nil
}

// newInspectionManager builds a silent plugin manager without layer or
// settings access, suitable for one-shot CLI commands.
func newInspectionManager(ctx context.Context) (*plugins.Manager, error) {
	logger := logging.NewWithOutput(io.Discard, false, false)
	host := plugins.NewHostFunctions(nil, nil, logger)
	loader, err := plugins.NewWazeroLoader(ctx, host)
	if err != nil {
		return nil, fmt.Errorf("creating plugin runtime: %w", err)
	}

	return plugins.NewManager(ctx, loader, events.NewBus(logger), logger), nil
}
