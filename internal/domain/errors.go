package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrFileRead marks a file that could not be read; it is left out of the report set.
	ErrFileRead = errors.New("file read error")
	// ErrMalformedLicenseTag marks a license tag whose expression could not be parsed.
	ErrMalformedLicenseTag = errors.New("malformed license tag")
	// ErrAmbiguousSource marks a file carrying both in-file tags and a .license sidecar.
	ErrAmbiguousSource = errors.New("ambiguous license source")
	// ErrNonCompliant is returned by lint when at least one file is unlicensed.
	ErrNonCompliant = errors.New("project is not compliant")
)

// FileErrorKind classifies recoverable per-file errors.
type FileErrorKind string

const (
	FileErrorRead      FileErrorKind = "file_read"
	FileErrorMalformed FileErrorKind = "malformed_tag"
	FileErrorAmbiguous FileErrorKind = "ambiguous_source"
)

// FileError is a recoverable error attached to one file of a scan.
type FileError struct {
	Path string        `json:"path"`
	Kind FileErrorKind `json:"kind"`
	Err  error         `json:"-"`
}

func (e FileError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Path, e.sentinel())
	}
	return fmt.Sprintf("%s: %s: %v", e.Path, e.sentinel(), e.Err)
}

func (e FileError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.sentinel()}
	}
	return []error{e.sentinel(), e.Err}
}

func (e FileError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Path    string        `json:"path"`
		Kind    FileErrorKind `json:"kind"`
		Message string        `json:"message"`
	}{e.Path, e.Kind, e.Error()})
}

func (e FileError) sentinel() error {
	switch e.Kind {
	case FileErrorRead:
		return ErrFileRead
	case FileErrorMalformed:
		return ErrMalformedLicenseTag
	default:
		return ErrAmbiguousSource
	}
}

// ScanRootError is fatal: the project root could not be enumerated.
type ScanRootError struct {
	Root string
	Err  error
}

func (e *ScanRootError) Error() string {
	return fmt.Sprintf("scanning project root %s: %v", e.Root, e.Err)
}

func (e *ScanRootError) Unwrap() error { return e.Err }
