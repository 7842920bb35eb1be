package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// listCmd represents the list command.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed plugins",
	Long:  `List all plugins in the plugin directory with their metadata.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
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

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "Name\tVersion\tCapabilities\tDescription\tAuthor")
		fmt.Fprintln(w, "----\t-------\t------------\t-----------\t------")

		for _, rec := range pm.Records() {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				rec.Meta.Name,
				rec.Meta.Version,
				strings.Join(rec.Meta.Capabilities, ","),
				rec.Meta.Description,
				rec.Meta.Author)
		}

		return w.Flush()
	},
}

func init() {
	pluginCmd.AddCommand(listCmd)
}
