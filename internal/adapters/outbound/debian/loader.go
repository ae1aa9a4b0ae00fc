// Package debian locates and parses a project's DEP5 copyright table.
package debian

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/openkraft/licensekit/internal/domain"
	"github.com/openkraft/licensekit/internal/domain/dep5"
)

// Locations are tried in order; the first existing file is used.
var Locations = []string{
	"debian/copyright",
	".reuse/dep5",
}

// Loader implements domain.CopyrightTableLoader.
type Loader struct{}

// New creates a Loader.
func New() *Loader { return &Loader{} }

// Load parses the first DEP5 file found under projectPath. It returns
// (nil, nil) when the project has none.
func (l *Loader) Load(projectPath string) (domain.CopyrightTable, error) {
	for _, rel := range Locations {
		f, err := os.Open(filepath.Join(projectPath, filepath.FromSlash(rel)))
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("opening %s: %w", rel, err)
		}
		table, err := dep5.Parse(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", rel, err)
		}
		return table, nil
	}
	return nil, nil
}
