package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/strataview/strata/internal/plugins"
)

// verifyCmd represents the verify command.
var verifyCmd = &cobra.Command{
	Use:   "verify FILE",
	Short: "Dry-run load a plugin module",
	Long: `Load the given plugin module through the full load protocol and
report the stage it failed at, without registering it for use. Plugins with
dependencies verify only when the dependencies are present in the plugin
directory.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolvePluginDir()
		if err != nil {
			return err
		}

		pm, err := newInspectionManager(cmd.Context())
		if err != nil {
			return err
		}
		defer pm.Close()

		// Pre-load the directory so dependency names can resolve.
		pm.ScanDirectory(dir)

		path := args[0]
		loadErr := pm.Load(path)
		if loadErr == nil {
			for _, rec := range pm.Records() {
				if rec.FilePath == path {
					cmd.Printf("OK: %s %s loads cleanly\n", rec.Meta.Name, rec.Meta.Version)

					return nil
				}
			}
			cmd.Printf("OK: %s loads cleanly\n", path)

			return nil
		}
		if errors.Is(loadErr, plugins.ErrDuplicate) {
			cmd.Printf("OK: module already loads as part of %s\n", dir)

			return nil
		}

		return fmt.Errorf("verification failed at %s stage: %w", failedStage(loadErr), loadErr)
	},
}

// failedStage classifies a load error against the failure taxonomy.
func failedStage(err error) string {
	switch {
	case errors.Is(err, plugins.ErrContract):
		return "contract"
	case errors.Is(err, plugins.ErrValidation):
		return "metadata validation"
	case errors.Is(err, plugins.ErrDependency):
		return "dependency"
	case errors.Is(err, plugins.ErrInitialize):
		return "initialization"
	default:
		return "load"
	}
}

func init() {
	pluginCmd.AddCommand(verifyCmd)
}
