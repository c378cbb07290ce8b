package main

import (
	"os"
	"os/signal"
	"syscall"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/lealogineo/internal/mcp"
	"github.com/spf13/cobra"
)

func newServeCmd(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the conversion and letter tools over MCP on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Logs go to stderr so stdout stays clean for JSON-RPC.
			a, err := newApp(global, os.Stderr)
			if err != nil {
				return err
			}
			defer a.close()

			rosterSvc, err := a.rosterService()
			if err != nil {
				return err
			}
			letterSvc, err := a.letterService()
			if err != nil {
				return err
			}
			server := mcp.NewServer(mcp.Config{
				Services: mcp.Services{Roster: rosterSvc, Letters: letterSvc},
				Defaults: a.cfg,
				Version:  version,
				Logger:   a.logger,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a.logger.Info("starting stdio transport")
			// Run blocks until stdin closes or the context is canceled.
			if err := server.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && ctx.Err() == nil {
				return err
			}
			a.logger.Info("shutting down")
			return nil
		},
	}
}
