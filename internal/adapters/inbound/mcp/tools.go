package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/openkraft/licensekit/internal/adapters/outbound/config"
	"github.com/openkraft/licensekit/internal/adapters/outbound/debian"
	"github.com/openkraft/licensekit/internal/adapters/outbound/extractor"
	"github.com/openkraft/licensekit/internal/adapters/outbound/scanner"
	"github.com/openkraft/licensekit/internal/adapters/outbound/vcsignore"
	"github.com/openkraft/licensekit/internal/application"
	"github.com/openkraft/licensekit/internal/domain"
	"github.com/openkraft/licensekit/internal/domain/licensedb"
)

const ignoreDebianArg = "ignore_debian"

type handlers struct {
	projectPath string
	version     string
	logger      *slog.Logger
}

// fileInfo is the payload of licensekit_file_info.
type fileInfo struct {
	Report *domain.FileReport `json:"report"`
	Errors []domain.FileError `json:"errors,omitempty"`
}

// registerTools registers all licensekit MCP tools on the given server.
func registerTools(s *server.MCPServer, h *handlers) {
	s.AddTool(
		mcplib.NewTool("licensekit_lint",
			mcplib.WithDescription("Lint the project: returns the files without a license identifier, files without copyright, and recoverable errors as JSON"),
			mcplib.WithBoolean(ignoreDebianArg, mcplib.Description("Do not consult debian/copyright or .reuse/dep5")),
		),
		h.handleLint,
	)

	s.AddTool(
		mcplib.NewTool("licensekit_compile",
			mcplib.WithDescription("Compile the project's SPDX 2.1 tag-value bill of materials"),
			mcplib.WithBoolean(ignoreDebianArg, mcplib.Description("Do not consult debian/copyright or .reuse/dep5")),
		),
		h.handleCompile,
	)

	s.AddTool(
		mcplib.NewTool("licensekit_file_info",
			mcplib.WithDescription("Returns the licenses, copyright lines, checksum and SPDXID found for a single file"),
			mcplib.WithString("file",
				mcplib.Required(),
				mcplib.Description("Path of the file relative to the project root"),
			),
			mcplib.WithBoolean(ignoreDebianArg, mcplib.Description("Do not consult debian/copyright or .reuse/dep5")),
		),
		h.handleFileInfo,
	)
}

func (h *handlers) scanService() *application.ScanService {
	return application.NewScanService(
		scanner.New(h.logger),
		vcsignore.New(true),
		debian.New(),
		extractor.New(),
		h.logger,
	)
}

// projectConfig loads .licensekit.yaml and applies the per-call override.
func (h *handlers) projectConfig(args map[string]any) (domain.ProjectConfig, error) {
	cfg, err := config.New().Load(h.projectPath)
	if err != nil {
		return domain.ProjectConfig{}, err
	}
	if v, ok := args[ignoreDebianArg].(bool); ok {
		cfg.IgnoreDebian = v
	}
	return cfg, nil
}

func (h *handlers) handleLint(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	cfg, err := h.projectConfig(request.GetArguments())
	if err != nil {
		return errorResult(fmt.Sprintf("loading config: %v", err)), nil
	}

	report, err := application.NewLintService(h.scanService()).Lint(h.projectPath, cfg)
	if err != nil {
		return errorResult(fmt.Sprintf("lint failed: %v", err)), nil
	}
	return jsonResult(report)
}

func (h *handlers) handleCompile(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	doc, err := h.compile(request.GetArguments())
	if err != nil {
		return errorResult(fmt.Sprintf("compile failed: %v", err)), nil
	}
	return textResult(doc), nil
}

func (h *handlers) handleFileInfo(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	file, err := request.RequireString("file")
	if err != nil {
		return errorResult("missing required parameter: file"), nil
	}

	cfg, err := h.projectConfig(request.GetArguments())
	if err != nil {
		return errorResult(fmt.Sprintf("loading config: %v", err)), nil
	}

	report, findings, err := h.scanService().FileInfo(h.projectPath, file, cfg)
	if err != nil {
		return errorResult(err.Error()), nil
	}
	return jsonResult(fileInfo{Report: report, Errors: findings})
}

func (h *handlers) compile(args map[string]any) (string, error) {
	cfg, err := h.projectConfig(args)
	if err != nil {
		return "", fmt.Errorf("loading config: %w", err)
	}

	svc := application.NewCompileService(h.scanService(), licensedb.Default(), "licensekit", h.version)
	doc, _, err := svc.Compile(h.projectPath, cfg)
	return doc, err
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// textResult returns a plain text content result.
func textResult(text string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(text)},
	}
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
