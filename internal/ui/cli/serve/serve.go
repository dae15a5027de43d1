package serve

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mredig/fingerstring-mcp/internal/appState"
	"github.com/mredig/fingerstring-mcp/internal/mcp"
)

var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server on stdio",
	Long:  "Serve the FingerString tools over MCP, reading requests from stdin and writing responses to stdout.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := appState.Get()

		registry, err := app.Registry()
		if err != nil {
			return err
		}

		server, err := mcp.NewServer(app.Config.Server.Name, app.Config.Server.Version, registry, app.Logger)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			defer cancel()
			return server.ServeStdio(gctx, os.Stdin, os.Stdout)
		})
		g.Go(func() error {
			<-gctx.Done()
			app.Logger.Info("Shutting down MCP server", "cause", context.Cause(gctx))
			return nil
		})

		return g.Wait()
	},
}
