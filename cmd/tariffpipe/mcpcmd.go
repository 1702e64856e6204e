package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/hazyhaar/tariffpipe/ingest"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the extraction tools over MCP stdio",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := newLogger()

		svc, err := ingest.NewService(cfg, logger)
		if err != nil {
			return err
		}
		defer svc.Close()

		srv := mcp.NewServer(&mcp.Implementation{Name: "tariffpipe", Version: version}, nil)
		svc.Extractor().RegisterMCP(srv)
		return srv.Run(cmd.Context(), &mcp.StdioTransport{})
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
