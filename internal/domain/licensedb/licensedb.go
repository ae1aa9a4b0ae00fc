// Package licensedb holds the bundled list of SPDX license identifiers.
package licensedb

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

//go:embed licenses.json
var bundled []byte

// License is the canonical metadata of one SPDX license.
type License struct {
	ID          string `json:"licenseId"`
	Name        string `json:"name"`
	Deprecated  bool   `json:"isDeprecatedLicenseId"`
	OSIApproved bool   `json:"isOsiApproved"`
}

// Database is an immutable identifier -> License lookup table.
type Database struct {
	version  string
	licenses map[string]License
}

type listFile struct {
	Version  string    `json:"licenseListVersion"`
	Licenses []License `json:"licenses"`
}

var (
	defaultOnce sync.Once
	defaultDB   *Database
)

// Default returns the process-wide database parsed from the bundled list.
func Default() *Database {
	defaultOnce.Do(func() {
		db, err := Load(bytes.NewReader(bundled))
		if err != nil {
			panic(fmt.Sprintf("licensedb: bundled license list is invalid: %v", err))
		}
		defaultDB = db
	})
	return defaultDB
}

// New builds a database from explicit records.
func New(licenses ...License) *Database {
	db := &Database{licenses: make(map[string]License, len(licenses))}
	for _, l := range licenses {
		db.licenses[l.ID] = l
	}
	return db
}

// Load parses a license list in SPDX JSON format.
func Load(r io.Reader) (*Database, error) {
	var lf listFile
	if err := json.NewDecoder(r).Decode(&lf); err != nil {
		return nil, fmt.Errorf("parsing license list: %w", err)
	}
	for i, l := range lf.Licenses {
		if l.ID == "" {
			return nil, fmt.Errorf("license %d has no licenseId", i)
		}
	}
	db := New(lf.Licenses...)
	db.version = lf.Version
	return db, nil
}

// Version is the SPDX license list version the database was built from.
func (d *Database) Version() string { return d.version }

// Len returns the number of known identifiers.
func (d *Database) Len() int { return len(d.licenses) }

// IsRecognized reports whether identifier is a known SPDX license. Matching is
// case-sensitive; an "or later" suffix is recognized when its base identifier is.
func (d *Database) IsRecognized(identifier string) bool {
	_, ok := d.Lookup(identifier)
	return ok
}

// Lookup returns the metadata for identifier.
func (d *Database) Lookup(identifier string) (License, bool) {
	if l, ok := d.licenses[identifier]; ok {
		return l, true
	}
	if base, found := strings.CutSuffix(identifier, "+"); found && base != "" {
		l, ok := d.licenses[base]
		return l, ok
	}
	return License{}, false
}

// IDs returns all identifiers, sorted.
func (d *Database) IDs() []string {
	ids := make([]string, 0, len(d.licenses))
	for id := range d.licenses {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
