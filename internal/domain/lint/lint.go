// Package lint decides project compliance from file reports.
package lint

import "github.com/openkraft/licensekit/internal/domain"

// Evaluate flags every report without a license identifier. The order of
// NonCompliantPaths follows reports.
func Evaluate(reports []domain.FileReport) domain.LintResult {
	res := domain.LintResult{NonCompliantPaths: []string{}}
	for _, r := range reports {
		if !r.IsLicensed() {
			res.NonCompliantPaths = append(res.NonCompliantPaths, r.Path)
		}
	}
	res.IsCompliant = len(res.NonCompliantPaths) == 0
	return res
}

// MissingCopyright lists reports without any copyright statement. It does not
// affect compliance.
func MissingCopyright(reports []domain.FileReport) []string {
	var out []string
	for _, r := range reports {
		if !r.HasCopyright() {
			out = append(out, r.Path)
		}
	}
	return out
}
