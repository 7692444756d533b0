package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/claytono/go-itemcmd/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server on stdio",
	Long: "Serves the resolve_item, chat_command and list_items tools over MCP stdio.\n" +
		"Logs go to ITEMCMD_LOG_FILE or stderr, never stdout.",
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	a.watch(ctx)
	defer a.ix.Close()

	s, err := server.New(server.Options{
		Snapshot:    a.ix,
		WikiBaseURL: a.cfg.WikiURL,
		Suggest:     a.cfg.Suggest,
		Logger:      a.logger,
	})
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}
	a.logger.Info("serving MCP on stdio", "name", server.ServerName, "version", server.Version)
	return server.Serve(s)
}
