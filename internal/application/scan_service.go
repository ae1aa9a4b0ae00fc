package application

import (
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/openkraft/licensekit/internal/domain"
	"github.com/openkraft/licensekit/internal/slogutil"
)

// ScanService orchestrates one scan:
// list files → drop VCS-ignored → load DEP5 table → extract each file in path order.
type ScanService struct {
	lister      domain.FileLister
	ignoreRules domain.IgnoreRulesLoader
	tables      domain.CopyrightTableLoader
	extractor   domain.FileExtractor
	logger      *slog.Logger
}

func NewScanService(
	lister domain.FileLister,
	ignoreRules domain.IgnoreRulesLoader,
	tables domain.CopyrightTableLoader,
	extractor domain.FileExtractor,
	logger *slog.Logger,
) *ScanService {
	if logger == nil {
		logger = slogutil.NewDiscardLogger()
	}
	return &ScanService{
		lister:      lister,
		ignoreRules: ignoreRules,
		tables:      tables,
		extractor:   extractor,
		logger:      logger,
	}
}

// Scan produces one report per in-scope file, sorted by path. Only a failure
// to enumerate the root (ScanRootError) or to load project-wide rules aborts
// the scan; per-file problems are collected in ScanResult.Errors.
func (s *ScanService) Scan(projectPath string, cfg domain.ProjectConfig) (*domain.ScanResult, error) {
	absPath, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, &domain.ScanRootError{Root: projectPath, Err: err}
	}

	files, err := s.lister.List(absPath, cfg.ExcludePaths...)
	if err != nil {
		return nil, &domain.ScanRootError{Root: absPath, Err: err}
	}
	files = append([]string(nil), files...)
	sort.Strings(files)

	oracle, err := s.ignoreOracle(absPath, cfg)
	if err != nil {
		return nil, err
	}
	opts, err := s.extractOptions(absPath, cfg)
	if err != nil {
		return nil, err
	}

	result := &domain.ScanResult{RootPath: absPath, Reports: []domain.FileReport{}}
	for _, f := range files {
		if oracle.IsIgnored(f) {
			s.logger.Debug("skipping ignored file", "path", f)
			continue
		}

		report, findings, err := s.extractor.Extract(absPath, f, opts)
		if err != nil {
			fe := domain.FileError{Path: f, Kind: domain.FileErrorRead, Err: err}
			s.logger.Warn("cannot read file", "path", f, "kind", fe.Kind, "error", err)
			result.Errors = append(result.Errors, fe)
			continue
		}
		for _, fe := range findings {
			s.logger.Warn("licensing problem", "path", fe.Path, "kind", fe.Kind, "error", fe.Err)
		}
		result.Errors = append(result.Errors, findings...)
		result.Reports = append(result.Reports, *report)
	}

	s.logger.Info("scan complete", "root", absPath, "files", len(result.Reports), "errors", len(result.Errors))
	return result, nil
}

// FileInfo extracts a single root-relative path the way Scan would, without
// consulting the ignore rules.
func (s *ScanService) FileInfo(projectPath, relPath string, cfg domain.ProjectConfig) (*domain.FileReport, []domain.FileError, error) {
	absPath, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, nil, err
	}
	clean := path.Clean(filepath.ToSlash(relPath))
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") || path.IsAbs(clean) {
		return nil, nil, fmt.Errorf("path %q must be relative to the project root", relPath)
	}

	opts, err := s.extractOptions(absPath, cfg)
	if err != nil {
		return nil, nil, err
	}
	report, findings, err := s.extractor.Extract(absPath, clean, opts)
	if err != nil {
		return nil, nil, domain.FileError{Path: clean, Kind: domain.FileErrorRead, Err: err}
	}
	return report, findings, nil
}

func (s *ScanService) ignoreOracle(absPath string, cfg domain.ProjectConfig) (domain.IgnoreOracle, error) {
	if cfg.IncludeVCSIgnored || s.ignoreRules == nil {
		return noIgnores{}, nil
	}
	oracle, err := s.ignoreRules.Load(absPath)
	if err != nil {
		return nil, fmt.Errorf("loading ignore rules: %w", err)
	}
	return oracle, nil
}

func (s *ScanService) extractOptions(absPath string, cfg domain.ProjectConfig) (domain.ExtractOptions, error) {
	opts := domain.ExtractOptions{DebianFallback: cfg.DebianFallback()}
	if opts.DebianFallback == domain.DebianFallbackOff || s.tables == nil {
		return opts, nil
	}
	table, err := s.tables.Load(absPath)
	if err != nil {
		return opts, fmt.Errorf("loading copyright table: %w", err)
	}
	opts.Table = table
	return opts, nil
}

type noIgnores struct{}

func (noIgnores) IsIgnored(string) bool { return false }
