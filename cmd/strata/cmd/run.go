package cmd

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/strataview/strata/internal/config"
	"github.com/strataview/strata/internal/events"
	"github.com/strataview/strata/internal/layers"
	"github.com/strataview/strata/internal/logging"
	"github.com/strataview/strata/internal/plugins"
	"github.com/strataview/strata/internal/viewer"
)

var (
	pluginDir string
	debug     bool
	logFile   string
)

// runCmd represents the run command.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the viewer shell",
	Long: `Start the interactive viewer shell. Plugins found in the plugin
directory are loaded on startup; failures are reported in the status bar
and skipped.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}
		if pluginDir != "" {
			cfg.Plugin.Path = pluginDir
		}

		// The terminal belongs to the TUI, so logs go to a file or nowhere.
		var out io.Writer = io.Discard
		if logFile != "" {
			f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
			if err != nil {
				return fmt.Errorf("opening log file: %w", err)
			}
			defer f.Close()
			out = f
		}
		logger := logging.NewWithOutput(out, debug, false).
			Level(logging.ParseLevel(cfg.Log.Level))
		if debug {
			logger = logger.Level(logging.ParseLevel("debug"))
		}

		storePath, err := config.DefaultStorePath()
		if err != nil {
			return fmt.Errorf("resolving plugin settings path: %w", err)
		}
		store, err := config.NewStore(storePath)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		bus := events.NewBus(logger)
		lm := layers.NewManager(bus)

		host := plugins.NewHostFunctions(lm, store, logger)
		loader, err := plugins.NewWazeroLoader(ctx, host)
		if err != nil {
			return fmt.Errorf("creating plugin runtime: %w", err)
		}

		pm := plugins.NewManager(ctx, loader, bus, logger)
		defer func() {
			if err := pm.Close(); err != nil {
				logger.Error().Err(err).Msg("plugin teardown failed")
			}
		}()

		pm.ScanDirectory(cfg.Plugin.Path)

		model := viewer.New(cfg.Viewer.Title, lm, pm, bus, logger)
		program := tea.NewProgram(model, tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("running viewer: %w", err)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&pluginDir, "plugins", "p", "", "Plugin directory (overrides config)")
	runCmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")
	runCmd.Flags().StringVar(&logFile, "log-file", "", "Write logs to this file")
}
