// Package extractor builds the FileReport of one file from its sidecar, its
// own comment tags or the project's DEP5 table.
package extractor

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/openkraft/licensekit/internal/domain"
	"github.com/openkraft/licensekit/internal/domain/tags"
)

// SidecarSuffix names the companion file carrying licensing for another file.
const SidecarSuffix = ".license"

// binarySniffLen bounds the prefix searched for NUL bytes.
const binarySniffLen = 8 * 1024

// Extractor implements domain.FileExtractor.
type Extractor struct{}

// New creates an Extractor.
func New() *Extractor { return &Extractor{} }

// Extract reads projectPath/path and returns its report. The returned error is
// non-nil only when the file (or its sidecar) could not be read.
func (e *Extractor) Extract(projectPath, path string, opts domain.ExtractOptions) (*domain.FileReport, []domain.FileError, error) {
	abs := filepath.Join(projectPath, filepath.FromSlash(path))
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, nil, err
	}

	sum := sha1.Sum(data)
	report := &domain.FileReport{
		Path:     path,
		SPDXID:   domain.FileSPDXID(path),
		Checksum: hex.EncodeToString(sum[:]),
	}

	var findings []domain.FileError
	malformed := func(res tags.Result, source string) {
		for _, m := range res.Malformed {
			findings = append(findings, domain.FileError{
				Path: path,
				Kind: domain.FileErrorMalformed,
				Err:  fmt.Errorf("%s line %d: %q: %w", source, m.Line, m.Expression, m.Err),
			})
		}
	}

	var inFile tags.Result
	if !isBinary(data) {
		inFile = tags.Extract(string(data), tags.StyleFor(path))
		malformed(inFile, "in-file")
	}

	sidecar, hasSidecar, err := readSidecar(abs)
	if err != nil {
		return nil, nil, err
	}
	if hasSidecar {
		malformed(sidecar, path+SidecarSuffix)
	}

	switch {
	case sidecar.Found():
		if inFile.Found() {
			findings = append(findings, domain.FileError{
				Path: path,
				Kind: domain.FileErrorAmbiguous,
				Err:  fmt.Errorf("both %s and in-file tags carry licensing; using the sidecar", path+SidecarSuffix),
			})
		}
		report.LicensesInFile = sidecar.Licenses
		report.CopyrightLines = sidecar.Copyrights
	case inFile.Found():
		report.LicensesInFile = inFile.Licenses
		report.CopyrightLines = inFile.Copyrights
	case opts.DebianFallback != domain.DebianFallbackOff && opts.Table != nil:
		entry, ok := opts.Table.Lookup(path)
		if !ok {
			break
		}
		ids, err := tags.ParseExpression(entry.Expression)
		if err != nil {
			findings = append(findings, domain.FileError{
				Path: path,
				Kind: domain.FileErrorMalformed,
				Err:  fmt.Errorf("copyright table: %q: %w", entry.Expression, err),
			})
		}
		report.LicensesInFile = sortedSet(ids)
		report.CopyrightLines = sortedSet(entry.Copyrights)
	}

	return report, findings, nil
}

func readSidecar(abs string) (tags.Result, bool, error) {
	data, err := os.ReadFile(abs + SidecarSuffix)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return tags.Result{}, false, nil
		}
		return tags.Result{}, false, err
	}
	return tags.Extract(string(data), tags.StyleGeneric), true, nil
}

func isBinary(data []byte) bool {
	if len(data) > binarySniffLen {
		data = data[:binarySniffLen]
	}
	return bytes.IndexByte(data, 0) >= 0
}

func sortedSet(values []string) []string {
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
