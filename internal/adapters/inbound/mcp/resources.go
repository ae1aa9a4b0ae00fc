package mcp

import (
	"context"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const bomURI = "licensekit://bom"

// registerResources registers all licensekit MCP resources on the given server.
func registerResources(s *server.MCPServer, h *handlers) {
	s.AddResource(
		mcplib.NewResource(
			bomURI,
			"Bill of Materials",
			mcplib.WithResourceDescription("SPDX 2.1 tag-value document for the project"),
			mcplib.WithMIMEType("text/spdx"),
		),
		h.handleBOMResource,
	)
}

func (h *handlers) handleBOMResource(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
	doc, err := h.compile(nil)
	if err != nil {
		return nil, err
	}

	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      bomURI,
			MIMEType: "text/spdx",
			Text:     doc,
		},
	}, nil
}
