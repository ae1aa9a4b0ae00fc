package lint_test

import (
	"testing"

	"github.com/openkraft/licensekit/internal/domain"
	"github.com/openkraft/licensekit/internal/domain/lint"
	"github.com/stretchr/testify/assert"
)

func TestEvaluate_AllLicensed(t *testing.T) {
	res := lint.Evaluate([]domain.FileReport{
		{Path: "a.go", LicensesInFile: []string{"MIT"}, CopyrightLines: []string{"2020 A"}},
		{Path: "b.go", LicensesInFile: []string{"Apache-2.0"}},
	})
	assert.True(t, res.IsCompliant)
	assert.Empty(t, res.NonCompliantPaths)
}

func TestEvaluate_PreservesScanOrder(t *testing.T) {
	res := lint.Evaluate([]domain.FileReport{
		{Path: "z.go"},
		{Path: "a.go", LicensesInFile: []string{"MIT"}},
		{Path: "m.go", CopyrightLines: []string{"2020 A"}},
	})
	assert.False(t, res.IsCompliant)
	assert.Equal(t, []string{"z.go", "m.go"}, res.NonCompliantPaths)
}

func TestEvaluate_EmptyProjectIsCompliant(t *testing.T) {
	res := lint.Evaluate(nil)
	assert.True(t, res.IsCompliant)
	assert.NotNil(t, res.NonCompliantPaths)
}

func TestMissingCopyright(t *testing.T) {
	missing := lint.MissingCopyright([]domain.FileReport{
		{Path: "a.go", LicensesInFile: []string{"MIT"}},
		{Path: "b.go", CopyrightLines: []string{"2020 B"}},
	})
	assert.Equal(t, []string{"a.go"}, missing)
}
