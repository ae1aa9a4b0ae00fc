package application

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/openkraft/licensekit/internal/domain"
	"github.com/openkraft/licensekit/internal/domain/spdx"
)

// CompileService scans a project and renders its SPDX document.
type CompileService struct {
	scanner     *ScanService
	db          domain.LicenseDatabase
	toolName    string
	toolVersion string
	now         func() time.Time
	newUUID     func() string
}

// CompileOption customizes a CompileService.
type CompileOption func(*CompileService)

// WithClock replaces the source of the Created timestamp.
func WithClock(now func() time.Time) CompileOption {
	return func(s *CompileService) { s.now = now }
}

// WithUUID replaces the source of the DocumentNamespace suffix.
func WithUUID(newUUID func() string) CompileOption {
	return func(s *CompileService) { s.newUUID = newUUID }
}

func NewCompileService(scanner *ScanService, db domain.LicenseDatabase, toolName, toolVersion string, opts ...CompileOption) *CompileService {
	s := &CompileService{
		scanner:     scanner,
		db:          db,
		toolName:    toolName,
		toolVersion: toolVersion,
		now:         time.Now,
		newUUID:     func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Compile returns the document together with the scan it was built from, so
// callers can surface recoverable errors.
func (s *CompileService) Compile(projectPath string, cfg domain.ProjectConfig) (string, *domain.ScanResult, error) {
	scan, err := s.scanner.Scan(projectPath, cfg)
	if err != nil {
		return "", nil, err
	}

	doc, err := spdx.Compile(scan.Reports, s.Metadata(scan.RootPath), s.db)
	if err != nil {
		return "", scan, fmt.Errorf("compiling SPDX document: %w", err)
	}
	return doc, scan, nil
}

// Metadata describes a document for the project rooted at absRoot.
func (s *CompileService) Metadata(absRoot string) domain.ProjectMetadata {
	return domain.ProjectMetadata{
		Name:        filepath.Base(absRoot),
		Namespace:   spdx.NamespaceBase + s.newUUID(),
		Created:     s.now().UTC(),
		ToolName:    s.toolName,
		ToolVersion: s.toolVersion,
	}
}
