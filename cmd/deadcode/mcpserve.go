package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/dusk-indust/deadcode/internal/mcptools"
)

func mcpServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "mcp-serve",
		Short: "Run an MCP server exposing the dead-code scanner and explain tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			dc := mcptools.NewDeadCodeService()
			ex := mcptools.NewExplainService()
			server := mcptools.NewUnifiedMCPServer(dc, ex)

			if addr == "" {
				return mcptools.RunUnifiedMCPServerStdio(context.Background(), server)
			}

			handler := mcptools.NewUnifiedStreamableHandler(server)
			fmt.Fprintf(cmd.OutOrStdout(), "listening on %s\n", addr)
			return http.ListenAndServe(addr, handler)
		},
	}

	cmd.Flags().StringVar(&addr, "http", "", "serve over HTTP at this address instead of stdio")

	return cmd
}
