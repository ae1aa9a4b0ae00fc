package domain

// FileLister enumerates the candidate files of a project as root-relative,
// slash-separated paths.
type FileLister interface {
	List(projectPath string, excludePaths ...string) ([]string, error)
}

// IgnoreOracle reports whether version control ignores a root-relative path.
type IgnoreOracle interface {
	IsIgnored(path string) bool
}

// IgnoreRulesLoader builds the ignore oracle for a project root.
type IgnoreRulesLoader interface {
	Load(projectPath string) (IgnoreOracle, error)
}

// CopyrightEntry is the licensing information a project-level table assigns to a path.
type CopyrightEntry struct {
	Expression string   `json:"expression"`
	Copyrights []string `json:"copyrights"`
}

// CopyrightTable is a project-level fallback table (DEP5) covering paths by glob.
type CopyrightTable interface {
	Lookup(path string) (CopyrightEntry, bool)
}

// CopyrightTableLoader locates and parses a project's fallback table.
// It returns (nil, nil) when the project has none.
type CopyrightTableLoader interface {
	Load(projectPath string) (CopyrightTable, error)
}

// DebianFallback toggles the DEP5 step of extraction.
type DebianFallback string

const (
	DebianFallbackOn  DebianFallback = "on"
	DebianFallbackOff DebianFallback = "off"
)

// ExtractOptions configures one extraction.
type ExtractOptions struct {
	DebianFallback DebianFallback
	Table          CopyrightTable
}

// FileExtractor produces the FileReport of one file. A non-nil error means the
// file could not be read; the returned FileErrors are recoverable findings.
type FileExtractor interface {
	Extract(projectPath, path string, opts ExtractOptions) (*FileReport, []FileError, error)
}

// ConfigLoader loads project-level configuration.
type ConfigLoader interface {
	Load(projectPath string) (ProjectConfig, error)
}

// LicenseDatabase answers whether an identifier is a known SPDX license.
type LicenseDatabase interface {
	IsRecognized(identifier string) bool
}
