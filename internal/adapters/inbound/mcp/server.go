package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"
	"github.com/openkraft/licensekit/internal/slogutil"
)

// NewLicenseKitMCPServer creates an MCP server exposing lint, compile and
// per-file inspection of the project rooted at projectPath.
func NewLicenseKitMCPServer(projectPath, version string, logger *slog.Logger) *server.MCPServer {
	if logger == nil {
		logger = slogutil.NewDiscardLogger()
	}

	s := server.NewMCPServer(
		"licensekit",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	h := &handlers{projectPath: projectPath, version: version, logger: logger}
	registerTools(s, h)
	registerResources(s, h)

	return s
}
