package extractor_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/openkraft/licensekit/internal/adapters/outbound/extractor"
	"github.com/openkraft/licensekit/internal/domain"
	"github.com/openkraft/licensekit/internal/domain/dep5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0644))
}

func table(t *testing.T, doc string) *dep5.Table {
	t.Helper()
	tbl, err := dep5.Parse(strings.NewReader(doc))
	require.NoError(t, err)
	return tbl
}

func TestExtract_InFileTags(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/code.py", "# SPDX-License-Identifier: GPL-3.0\n# Copyright 2017 Jane Doe\n")

	report, findings, err := extractor.New().Extract(dir, "src/code.py", domain.ExtractOptions{})
	require.NoError(t, err)
	assert.Empty(t, findings)

	assert.Equal(t, "src/code.py", report.Path)
	assert.Equal(t, "SPDXRef-8008eeb8d2000e5aa6eaa51b1cdc944d726e1107", report.SPDXID)
	assert.Equal(t, []string{"GPL-3.0"}, report.LicensesInFile)
	assert.Equal(t, []string{"Copyright 2017 Jane Doe"}, report.CopyrightLines)
	assert.Len(t, report.Checksum, 40)
}

func TestExtract_ChecksumCoversRawBytes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "empty.py", "")
	writeFile(t, dir, "hello.txt", "hello")

	report, _, err := extractor.New().Extract(dir, "empty.py", domain.ExtractOptions{})
	require.NoError(t, err)
	assert.Equal(t, "da39a3ee5e6b4b0d3255bfef95601890afd80709", report.Checksum)
	assert.False(t, report.IsLicensed())

	report, _, err = extractor.New().Extract(dir, "hello.txt", domain.ExtractOptions{})
	require.NoError(t, err)
	assert.Equal(t, "aaf4c61ddcc5e8a2dabede0f3b482cd9aea9434d", report.Checksum)
}

func TestExtract_SidecarWinsAndIsReportedAmbiguous(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "img.svg", "<!-- SPDX-License-Identifier: MIT -->\n<svg/>\n")
	writeFile(t, dir, "img.svg.license", "SPDX-License-Identifier: CC-BY-4.0\nSPDX-FileCopyrightText: 2020 Artist\n")

	report, findings, err := extractor.New().Extract(dir, "img.svg", domain.ExtractOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"CC-BY-4.0"}, report.LicensesInFile)
	assert.Equal(t, []string{"2020 Artist"}, report.CopyrightLines)
	require.Len(t, findings, 1)
	assert.Equal(t, domain.FileErrorAmbiguous, findings[0].Kind)
	assert.True(t, errors.Is(findings[0], domain.ErrAmbiguousSource))
}

func TestExtract_SidecarForBinaryFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "logo.png", "\x89PNG\x00\x00SPDX-License-Identifier: MIT")
	writeFile(t, dir, "logo.png.license", "SPDX-License-Identifier: CC0-1.0\n")

	report, findings, err := extractor.New().Extract(dir, "logo.png", domain.ExtractOptions{})
	require.NoError(t, err)
	assert.Empty(t, findings, "binary content is not tag-scanned, so no ambiguity")
	assert.Equal(t, []string{"CC0-1.0"}, report.LicensesInFile)
}

func TestExtract_BinaryWithoutSidecarIsUnlicensed(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "blob.bin", "\x00SPDX-License-Identifier: MIT\n")

	report, _, err := extractor.New().Extract(dir, "blob.bin", domain.ExtractOptions{})
	require.NoError(t, err)
	assert.False(t, report.IsLicensed())
}

func TestExtract_DebianFallback(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/no_license.py", "")
	tbl := table(t, "Files: src/*\nCopyright: 2017 Jane Doe\n 2017 Jane Doe\nLicense: CC0-1.0 OR MIT\n")

	report, findings, err := extractor.New().Extract(dir, "src/no_license.py", domain.ExtractOptions{
		DebianFallback: domain.DebianFallbackOn,
		Table:          tbl,
	})
	require.NoError(t, err)
	assert.Empty(t, findings)
	assert.Equal(t, "SPDXRef-bb5656f1b5e8283a8e930c54afd9a8bfebe7a548", report.SPDXID)
	assert.Equal(t, []string{"CC0-1.0", "MIT"}, report.LicensesInFile)
	assert.Equal(t, []string{"2017 Jane Doe"}, report.CopyrightLines)
}

func TestExtract_DebianFallbackOff(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "src/no_license.py", "")
	tbl := table(t, "Files: *\nCopyright: x\nLicense: CC0-1.0\n")

	report, _, err := extractor.New().Extract(dir, "src/no_license.py", domain.ExtractOptions{
		DebianFallback: domain.DebianFallbackOff,
		Table:          tbl,
	})
	require.NoError(t, err)
	assert.False(t, report.IsLicensed())
}

func TestExtract_InFileTagsBeatDebianTable(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.go", "// SPDX-License-Identifier: Apache-2.0\n")
	tbl := table(t, "Files: *\nCopyright: x\nLicense: CC0-1.0\n")

	report, _, err := extractor.New().Extract(dir, "a.go", domain.ExtractOptions{Table: tbl})
	require.NoError(t, err)
	assert.Equal(t, []string{"Apache-2.0"}, report.LicensesInFile)
	assert.Empty(t, report.CopyrightLines)
}

func TestExtract_MalformedTagFallsThroughToTable(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.go", "// SPDX-License-Identifier: (MIT\n")
	tbl := table(t, "Files: *\nCopyright: x\nLicense: CC0-1.0\n")

	report, findings, err := extractor.New().Extract(dir, "a.go", domain.ExtractOptions{Table: tbl})
	require.NoError(t, err)
	assert.Equal(t, []string{"CC0-1.0"}, report.LicensesInFile)
	require.Len(t, findings, 1)
	assert.Equal(t, domain.FileErrorMalformed, findings[0].Kind)
	assert.True(t, errors.Is(findings[0], domain.ErrMalformedLicenseTag))
	assert.Contains(t, findings[0].Error(), "line 1")
}

func TestExtract_MalformedTableExpression(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "")
	tbl := table(t, "Files: *\nCopyright: x\nLicense: MIT AND\n")

	report, findings, err := extractor.New().Extract(dir, "a.txt", domain.ExtractOptions{Table: tbl})
	require.NoError(t, err)
	assert.False(t, report.IsLicensed())
	assert.Equal(t, []string{"x"}, report.CopyrightLines)
	require.Len(t, findings, 1)
	assert.Equal(t, domain.FileErrorMalformed, findings[0].Kind)
}

func TestExtract_MissingFile(t *testing.T) {
	_, _, err := extractor.New().Extract(t.TempDir(), "nope.txt", domain.ExtractOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
