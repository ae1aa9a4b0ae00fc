package scanner

import (
	"io/fs"
	"log/slog"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/openkraft/licensekit/internal/slogutil"
)

// VCS metadata directories are never candidates, wherever they appear.
var skipDirs = map[string]bool{
	".git": true,
	".hg":  true,
	".svn": true,
}

// Root-level paths holding license texts or project-wide licensing metadata.
var skipRootPaths = map[string]bool{
	"LICENSES":         true,
	"debian/copyright": true,
	".reuse/dep5":      true,
}

// FileScanner implements domain.FileLister by walking the filesystem.
type FileScanner struct {
	logger *slog.Logger
}

// New creates a FileScanner. A nil logger discards diagnostics.
func New(logger *slog.Logger) *FileScanner {
	if logger == nil {
		logger = slogutil.NewDiscardLogger()
	}
	return &FileScanner{logger: logger}
}

// List returns the root-relative, slash-separated paths of the regular files
// under projectPath that are candidates for licensing, sorted lexicographically.
// Only a failure to read the root itself is returned as an error; unreadable
// subdirectories are logged and skipped. Symlinks are not followed.
func (s *FileScanner) List(projectPath string, excludePaths ...string) ([]string, error) {
	absPath, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, err
	}

	excludes := normalizeExcludes(excludePaths)

	var files []string
	err = filepath.WalkDir(absPath, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == absPath {
				return err
			}
			s.logger.Warn("skipping unreadable path", "path", p, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if p == absPath {
			return nil
		}

		relPath, err := filepath.Rel(absPath, p)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)

		if d.IsDir() {
			if skipDirs[d.Name()] || skipRootPaths[relPath] || excluded(relPath, d.Name(), excludes) {
				s.logger.Debug("skipping directory", "path", relPath)
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}
		if isLicensingMetadata(relPath, d.Name()) || excluded(relPath, d.Name(), excludes) {
			s.logger.Debug("skipping file", "path", relPath)
			return nil
		}

		files = append(files, relPath)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// isLicensingMetadata reports whether a file describes licensing rather than
// being subject to it.
func isLicensingMetadata(relPath, name string) bool {
	if skipRootPaths[relPath] || strings.HasSuffix(name, ".license") {
		return true
	}
	if path.Dir(relPath) != "." {
		return false
	}
	upper := strings.ToUpper(name)
	return strings.HasPrefix(upper, "LICENSE") || strings.HasPrefix(upper, "COPYING")
}

func normalizeExcludes(excludePaths []string) []string {
	out := make([]string, 0, len(excludePaths))
	for _, p := range excludePaths {
		p = strings.Trim(filepath.ToSlash(p), "/")
		p = strings.TrimPrefix(p, "./")
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// excluded matches a configured exclude either as a root-relative path prefix
// or, when it has no slash, as the name of any file or directory.
func excluded(relPath, name string, excludes []string) bool {
	for _, e := range excludes {
		if relPath == e || strings.HasPrefix(relPath, e+"/") {
			return true
		}
		if !strings.Contains(e, "/") && name == e {
			return true
		}
	}
	return false
}
