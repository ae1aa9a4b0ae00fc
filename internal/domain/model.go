package domain

import (
	"crypto/sha1"
	"encoding/hex"
	"time"
)

// FileReport holds the licensing evidence found for one file.
// Reports are produced once per scan and never mutated afterwards.
type FileReport struct {
	Path           string   `json:"path"`
	SPDXID         string   `json:"spdx_id"`
	Checksum       string   `json:"checksum"`
	LicensesInFile []string `json:"licenses_in_file"`
	CopyrightLines []string `json:"copyright_lines"`
}

// IsLicensed reports whether at least one license identifier was found.
func (r FileReport) IsLicensed() bool { return len(r.LicensesInFile) > 0 }

// HasCopyright reports whether at least one copyright statement was found.
func (r FileReport) HasCopyright() bool { return len(r.CopyrightLines) > 0 }

// ExtractedLicenseInfo pairs a synthesized LicenseRef identifier with the
// unrecognized text that produced it.
type ExtractedLicenseInfo struct {
	LicenseID string `json:"license_id"`
	Text      string `json:"text"`
}

// ProjectMetadata describes the document being compiled.
type ProjectMetadata struct {
	Name        string    `json:"name"`
	Namespace   string    `json:"namespace"`
	Created     time.Time `json:"created"`
	ToolName    string    `json:"tool_name"`
	ToolVersion string    `json:"tool_version"`
}

// LintResult is the pass/fail outcome of a lint run.
type LintResult struct {
	NonCompliantPaths []string `json:"non_compliant_paths"`
	IsCompliant       bool     `json:"is_compliant"`
}

// LintReport bundles a lint verdict with the scan it was computed from.
type LintReport struct {
	RootPath         string      `json:"root_path"`
	Result           LintResult  `json:"result"`
	MissingCopyright []string    `json:"missing_copyright,omitempty"`
	Errors           []FileError `json:"errors,omitempty"`
	Files            int         `json:"files"`
}

// ScanResult is the ordered output of scanning one project.
type ScanResult struct {
	RootPath string       `json:"root_path"`
	Reports  []FileReport `json:"reports"`
	Errors   []FileError  `json:"errors,omitempty"`
}

// Report returns the report for path, if the scan produced one.
func (s *ScanResult) Report(path string) (FileReport, bool) {
	for _, r := range s.Reports {
		if r.Path == path {
			return r, true
		}
	}
	return FileReport{}, false
}

// FileSPDXID derives the document-local SPDX identifier of a file from its
// root-relative path.
func FileSPDXID(path string) string {
	return "SPDXRef-" + sha1Hex(path)
}

// LicenseRefFor derives the project-local identifier for an unrecognized
// license text. Equal texts always yield equal identifiers.
func LicenseRefFor(text string) string {
	return "LicenseRef-" + sha1Hex(text)
}

func sha1Hex(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
