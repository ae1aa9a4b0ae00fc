package cli

import (
	mcpadapter "github.com/openkraft/licensekit/internal/adapters/inbound/mcp"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newMCPCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the licensekit MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd(g))
	return cmd
}

func newMCPServeCmd(g *globals) *cobra.Command {
	var projectPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start licensekit MCP server (stdio)",
		Long:  "Start the licensekit MCP server using stdio transport, exposing lint, compile and per-file license inspection.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if projectPath == "" {
				projectPath = "."
			}
			cfg, err := g.projectConfig(projectPath)
			if err != nil {
				return err
			}
			logger := g.logger(cmd.ErrOrStderr(), cfg)

			s := mcpadapter.NewLicenseKitMCPServer(projectPath, version, logger)
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&projectPath, "path", "", "Project path (defaults to current working directory)")

	return cmd
}
