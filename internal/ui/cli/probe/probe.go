package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mredig/fingerstring-mcp/internal/appState"
	"github.com/mredig/fingerstring-mcp/internal/mcp"
)

var (
	argsFlag    string
	timeoutFlag time.Duration
)

var ProbeCmd = &cobra.Command{
	Use:   "probe [tool]",
	Short: "Talk to a freshly started server over MCP",
	Long: `Start "fingerstring serve" as a child process and talk to it through an MCP client.
Without a tool name the advertised tools are listed; with one, the tool is called
with the JSON object given in --args.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var arguments map[string]interface{}
		if argsFlag != "" {
			if err := json.Unmarshal([]byte(argsFlag), &arguments); err != nil {
				return fmt.Errorf("--args must be a JSON object: %w", err)
			}
		}

		self, err := os.Executable()
		if err != nil {
			return fmt.Errorf("failed to locate executable: %w", err)
		}

		app := appState.Get()
		client := mcp.NewClient(mcp.ServerCommand{
			Command: self,
			Args:    []string{"serve", "--db", app.Config.Database.Path, "--log-level", app.Config.Log.LogLevel},
		})

		ctx, cancel := context.WithTimeout(cmd.Context(), timeoutFlag)
		defer cancel()

		if err := client.Connect(ctx); err != nil {
			return fmt.Errorf("failed to connect to server: %w", err)
		}
		defer client.Close()

		if len(args) == 0 {
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(client.Tools()); err != nil {
				return fmt.Errorf("failed to print tools: %w", err)
			}
			return enc.Close()
		}

		texts, err := client.CallTool(ctx, args[0], arguments)
		if err != nil {
			return err
		}
		for _, text := range texts {
			fmt.Fprintln(cmd.OutOrStdout(), text)
		}
		return nil
	},
}

func init() {
	ProbeCmd.Flags().StringVar(&argsFlag, "args", "", "Tool arguments as a JSON object")
	ProbeCmd.Flags().DurationVar(&timeoutFlag, "timeout", 30*time.Second, "Give up after this long")
}
