package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// infoCmd represents the info command.
var infoCmd = &cobra.Command{
	Use:   "info NAME",
	Short: "Show plugin details",
	Long:  `Show the full metadata of a single plugin from the plugin directory.`,
	Args:  cobra.ExactArgs(1),
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

		pm.ScanDirectory(dir)

		rec, ok := pm.Info(args[0])
		if !ok {
			return fmt.Errorf("plugin %s not found in %s", args[0], dir)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Name:         %s\n", rec.Meta.Name)
		fmt.Fprintf(out, "Version:      %s\n", rec.Meta.Version)
		fmt.Fprintf(out, "Description:  %s\n", rec.Meta.Description)
		fmt.Fprintf(out, "Author:       %s\n", rec.Meta.Author)
		fmt.Fprintf(out, "License:      %s\n", rec.Meta.License)
		fmt.Fprintf(out, "File:         %s\n", rec.FilePath)
		fmt.Fprintf(out, "Dependencies: %s\n", orNone(rec.Meta.Dependencies))
		fmt.Fprintf(out, "Capabilities: %s\n", orNone(rec.Meta.Capabilities))
		fmt.Fprintf(out, "Tags:         %s\n", orNone(rec.Meta.Tags))

		return nil
	},
}

func orNone(values []string) string {
	if len(values) == 0 {
		return "none"
	}

	return strings.Join(values, ", ")
}

func init() {
	pluginCmd.AddCommand(infoCmd)
}
