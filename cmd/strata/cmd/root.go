// Package cmd provides the CLI commands for the strata viewer.
package cmd

import (
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "strata",
	Short: "Layer-based viewer shell with wasm plugins",
	Long: `Strata is a terminal viewer shell built around an ordered layer
collection. Functionality is contributed by wasm plugins discovered in the
configured plugin directory.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
