// Package spdx serializes file reports as an SPDX 2.1 tag-value document.
package spdx

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/openkraft/licensekit/internal/domain"
)

const (
	Version        = "SPDX-2.1"
	DataLicense    = "CC0-1.0"
	DocumentID     = "SPDXRef-DOCUMENT"
	NoAssertion    = "NOASSERTION"
	None           = "NONE"
	NamespaceBase  = "http://spdx.org/spdxdocs/spdx-v2.1-"
	CreatedLayout  = "2006-01-02T15:04:05Z"
	CreatorComment = "This document was created automatically using available license information consistent with the REUSE project."
)

// ErrDuplicateSPDXID is returned when two reports would share an SPDXID.
var ErrDuplicateSPDXID = errors.New("duplicate SPDXID")

// Compile renders reports, in the order given, as one tag-value document.
// Identifiers db does not recognize are replaced by their LicenseRef and
// listed once each in a trailing extracted-license section. Output depends
// only on its inputs.
func Compile(reports []domain.FileReport, meta domain.ProjectMetadata, db domain.LicenseDatabase) (string, error) {
	seen := make(map[string]string, len(reports))
	for _, r := range reports {
		if other, dup := seen[r.SPDXID]; dup {
			return "", fmt.Errorf("%w: %s for %s and %s", ErrDuplicateSPDXID, r.SPDXID, other, r.Path)
		}
		seen[r.SPDXID] = r.Path
	}

	extracted := make(map[string]domain.ExtractedLicenseInfo)
	paragraphs := make([]string, 0, len(reports)+2)
	paragraphs = append(paragraphs, header(reports, meta))

	for _, r := range reports {
		paragraphs = append(paragraphs, fileBlock(r, db, extracted))
	}

	for _, info := range sortedExtracted(extracted) {
		paragraphs = append(paragraphs, strings.Join([]string{
			"LicenseID: " + info.LicenseID,
			"LicenseName: " + NoAssertion,
			"ExtractedText: " + wrapText(info.Text),
		}, "\n"))
	}

	return strings.Join(paragraphs, "\n\n") + "\n", nil
}

func header(reports []domain.FileReport, meta domain.ProjectMetadata) string {
	lines := []string{
		"SPDXVersion: " + Version,
		"DataLicense: " + DataLicense,
		"SPDXID: " + DocumentID,
		"DocumentName: " + meta.Name,
		"DocumentNamespace: " + meta.Namespace,
		"Creator: Person: Anonymous ()",
		"Creator: Organization: Anonymous ()",
		fmt.Sprintf("Creator: Tool: %s-%s", meta.ToolName, meta.ToolVersion),
		"Created: " + meta.Created.UTC().Format(CreatedLayout),
		"CreatorComment: " + wrapText(CreatorComment),
	}
	for _, r := range reports {
		lines = append(lines, fmt.Sprintf("Relationship: %s describes %s", DocumentID, r.SPDXID))
	}
	return strings.Join(lines, "\n")
}

func fileBlock(r domain.FileReport, db domain.LicenseDatabase, extracted map[string]domain.ExtractedLicenseInfo) string {
	lines := []string{
		"FileName: ./" + r.Path,
		"SPDXID: " + r.SPDXID,
		"FileChecksum: SHA1: " + r.Checksum,
		"LicenseConcluded: " + NoAssertion,
	}

	ids := make([]string, 0, len(r.LicensesInFile))
	for _, id := range r.LicensesInFile {
		if db.IsRecognized(id) {
			ids = append(ids, id)
			continue
		}
		ref := domain.LicenseRefFor(id)
		if _, ok := extracted[ref]; !ok {
			extracted[ref] = domain.ExtractedLicenseInfo{LicenseID: ref, Text: id}
		}
		ids = append(ids, ref)
	}
	for _, id := range sortedUnique(ids) {
		lines = append(lines, "LicenseInfoInFile: "+id)
	}

	copyright := None
	if r.HasCopyright() {
		copyright = wrapText(strings.Join(sortedUnique(r.CopyrightLines), "\n"))
	}
	lines = append(lines, "FileCopyrightText: "+copyright)

	return strings.Join(lines, "\n")
}

func wrapText(s string) string {
	return "<text>" + s + "</text>"
}

func sortedExtracted(m map[string]domain.ExtractedLicenseInfo) []domain.ExtractedLicenseInfo {
	out := make([]domain.ExtractedLicenseInfo, 0, len(m))
	for _, info := range m {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LicenseID < out[j].LicenseID })
	return out
}

func sortedUnique(values []string) []string {
	out := append([]string(nil), values...)
	sort.Strings(out)
	n := 0
	for i, v := range out {
		if i > 0 && v == out[n-1] {
			continue
		}
		out[n] = v
		n++
	}
	return out[:n]
}
