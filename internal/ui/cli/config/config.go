package config

import (
	"github.com/spf13/cobra"

	"github.com/mredig/fingerstring-mcp/internal/appState"
)

var (
	includeSources bool

	ConfigCmd = &cobra.Command{
		Use:   "config",
		Short: "View configuration",
		Long:  "Print the merged configuration as YAML. With --include-sources each value is annotated with the file, variable or flag it came from.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return appState.Get().Effective.Print(cmd.OutOrStdout(), includeSources)
		},
	}
)

func init() {
	ConfigCmd.Flags().BoolVarP(&includeSources, "include-sources", "s", false, "Show source file for each configuration value")
}
