package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mredig/fingerstring-mcp/internal/appState"
	"github.com/mredig/fingerstring-mcp/internal/config"
	configCmd "github.com/mredig/fingerstring-mcp/internal/ui/cli/config"
	"github.com/mredig/fingerstring-mcp/internal/ui/cli/list"
	"github.com/mredig/fingerstring-mcp/internal/ui/cli/probe"
	"github.com/mredig/fingerstring-mcp/internal/ui/cli/serve"
	toolsCmd "github.com/mredig/fingerstring-mcp/internal/ui/cli/tools"
)

var (
	logLevel string
	logFile  string
	dbPath   string
)

var rootCmd = &cobra.Command{
	Use:               "fingerstring",
	Short:             "Lists and reminders for your MCP clients",
	Long:              `FingerString keeps hierarchical lists of tasks and serves them as MCP tools`,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
}

func Execute() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx, nil); err != nil {
		fmt.Fprintln(os.Stderr, err)
		cancel()
		os.Exit(1)
	}
}

// run executes the command line and always releases the app state after,
// whether or not the command failed. Nil args means os.Args.
func run(ctx context.Context, args []string) error {
	rootCmd.SetContext(ctx)
	if args != nil {
		rootCmd.SetArgs(args)
	}

	err := rootCmd.Execute()
	return errors.Join(err, appState.Cleanup())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Set logging level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file path (defaults to stderr)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database file")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		overrides := &config.RuntimeOverrides{}
		if logLevel != "" {
			overrides.LogLevel = &logLevel
		}
		if logFile != "" {
			overrides.LogFile = &logFile
		}
		if dbPath != "" {
			overrides.DBPath = &dbPath
		}
		return appState.Initialize(overrides)
	}

	// Remove "completions" command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(
		serve.ServeCmd,
		toolsCmd.ToolsCmd,
		probe.ProbeCmd,
		configCmd.ConfigCmd,
		list.ListCmd,
	)
}
