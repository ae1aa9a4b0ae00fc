package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/openkraft/licensekit/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
}

func fixtureProject(t *testing.T) *handlers {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "src/code.py", "# SPDX-License-Identifier: GPL-3.0\n# SPDX-FileCopyrightText: 2017 Jane Doe\n")
	writeFile(t, dir, "src/no_license.py", "")
	writeFile(t, dir, "debian/copyright", "Files: src/no_license.py\nCopyright: 2017 Jane Doe\nLicense: CC0-1.0\n")
	return &handlers{projectPath: dir, version: "test"}
}

func callRequest(name string, args map[string]any) mcplib.CallToolRequest {
	var req mcplib.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcplib.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcplib.TextContent)
	require.True(t, ok, "expected text content")
	return text.Text
}

func TestHandleLint(t *testing.T) {
	h := fixtureProject(t)

	res, err := h.handleLint(context.Background(), callRequest("licensekit_lint", nil))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var report domain.LintReport
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &report))
	assert.True(t, report.Result.IsCompliant)
	assert.Equal(t, 2, report.Files)
}

func TestHandleLint_IgnoreDebianArgument(t *testing.T) {
	h := fixtureProject(t)

	res, err := h.handleLint(context.Background(), callRequest("licensekit_lint", map[string]any{"ignore_debian": true}))
	require.NoError(t, err)

	var report domain.LintReport
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &report))
	assert.False(t, report.Result.IsCompliant)
	assert.Equal(t, []string{"src/no_license.py"}, report.Result.NonCompliantPaths)
}

func TestHandleCompile(t *testing.T) {
	h := fixtureProject(t)

	res, err := h.handleCompile(context.Background(), callRequest("licensekit_compile", nil))
	require.NoError(t, err)
	require.False(t, res.IsError)

	doc := resultText(t, res)
	assert.Contains(t, doc, "SPDXVersion: SPDX-2.1\n")
	assert.Contains(t, doc, "Creator: Tool: licensekit-test\n")
	assert.Contains(t, doc, "FileName: ./src/no_license.py\n")
}

func TestHandleFileInfo(t *testing.T) {
	h := fixtureProject(t)

	res, err := h.handleFileInfo(context.Background(), callRequest("licensekit_file_info", map[string]any{"file": "src/code.py"}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var info struct {
		Report domain.FileReport `json:"report"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &info))
	assert.Equal(t, []string{"GPL-3.0"}, info.Report.LicensesInFile)
	assert.Equal(t, domain.FileSPDXID("src/code.py"), info.Report.SPDXID)
}

func TestHandleFileInfo_MissingParameter(t *testing.T) {
	h := fixtureProject(t)

	res, err := h.handleFileInfo(context.Background(), callRequest("licensekit_file_info", nil))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestHandleFileInfo_UnreadableFile(t *testing.T) {
	h := fixtureProject(t)

	res, err := h.handleFileInfo(context.Background(), callRequest("licensekit_file_info", map[string]any{"file": "missing.py"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "missing.py")
}

func TestHandleBOMResource(t *testing.T) {
	h := fixtureProject(t)

	contents, err := h.handleBOMResource(context.Background(), mcplib.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcplib.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, bomURI, text.URI)
	assert.Contains(t, text.Text, "DataLicense: CC0-1.0\n")
}
