package application

import (
	"github.com/openkraft/licensekit/internal/domain"
	"github.com/openkraft/licensekit/internal/domain/lint"
)

// LintService scans a project and evaluates compliance.
type LintService struct {
	scanner *ScanService
}

func NewLintService(scanner *ScanService) *LintService {
	return &LintService{scanner: scanner}
}

func (s *LintService) Lint(projectPath string, cfg domain.ProjectConfig) (*domain.LintReport, error) {
	scan, err := s.scanner.Scan(projectPath, cfg)
	if err != nil {
		return nil, err
	}

	return &domain.LintReport{
		RootPath:         scan.RootPath,
		Result:           lint.Evaluate(scan.Reports),
		MissingCopyright: lint.MissingCopyright(scan.Reports),
		Errors:           scan.Errors,
		Files:            len(scan.Reports),
	}, nil
}
