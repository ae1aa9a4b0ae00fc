// Package dep5 parses Debian machine-readable copyright files and answers
// which paragraph covers a path.
package dep5

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/openkraft/licensekit/internal/domain"
)

// Entry is one Files paragraph.
type Entry struct {
	Patterns   []string
	Copyrights []string
	License    string

	compiled []*regexp.Regexp
}

// Table is an ordered list of Files paragraphs. The last matching paragraph wins.
type Table struct {
	Entries []Entry
}

type paragraph struct {
	fields map[string][]string
	line   int
}

// Parse reads a DEP5 document. The header paragraph and stand-alone License
// paragraphs are skipped.
func Parse(r io.Reader) (*Table, error) {
	paragraphs, err := readParagraphs(r)
	if err != nil {
		return nil, err
	}

	t := &Table{}
	for _, p := range paragraphs {
		files, ok := p.fields["files"]
		if !ok {
			continue
		}

		e := Entry{Patterns: strings.Fields(strings.Join(files, " "))}
		if len(e.Patterns) == 0 {
			return nil, fmt.Errorf("line %d: Files field is empty", p.line)
		}
		for _, c := range p.fields["copyright"] {
			if c = strings.TrimSpace(c); c != "" {
				e.Copyrights = append(e.Copyrights, c)
			}
		}
		if lic := p.fields["license"]; len(lic) > 0 {
			e.License = strings.TrimSpace(lic[0])
		}
		for _, pat := range e.Patterns {
			re, err := compileGlob(pat)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", p.line, err)
			}
			e.compiled = append(e.compiled, re)
		}
		t.Entries = append(t.Entries, e)
	}
	return t, nil
}

// Match returns the last Files paragraph with a pattern matching path.
func (t *Table) Match(path string) (Entry, bool) {
	for i := len(t.Entries) - 1; i >= 0; i-- {
		for _, re := range t.Entries[i].compiled {
			if re.MatchString(path) {
				return t.Entries[i], true
			}
		}
	}
	return Entry{}, false
}

// Lookup implements domain.CopyrightTable.
func (t *Table) Lookup(path string) (domain.CopyrightEntry, bool) {
	e, ok := t.Match(path)
	if !ok {
		return domain.CopyrightEntry{}, false
	}
	return domain.CopyrightEntry{Expression: e.License, Copyrights: e.Copyrights}, true
}

// readParagraphs splits the document into blank-line separated paragraphs of
// "Name: value" fields. Each field keeps its first line and continuation lines
// as separate values; a continuation line of a single "." is an empty line.
func readParagraphs(r io.Reader) ([]paragraph, error) {
	var (
		out     []paragraph
		current *paragraph
		field   string
		lineNo  int
	)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), " \t\r")

		if strings.TrimSpace(line) == "" {
			if current != nil {
				out = append(out, *current)
				current = nil
			}
			field = ""
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}

		if line[0] == ' ' || line[0] == '\t' {
			if current == nil || field == "" {
				return nil, fmt.Errorf("line %d: continuation line outside a field", lineNo)
			}
			value := strings.TrimSpace(line)
			if value == "." {
				value = ""
			}
			current.fields[field] = append(current.fields[field], value)
			continue
		}

		name, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("line %d: expected \"Field: value\", got %q", lineNo, line)
		}
		if current == nil {
			current = &paragraph{fields: make(map[string][]string), line: lineNo}
		}
		field = strings.ToLower(strings.TrimSpace(name))
		current.fields[field] = append(current.fields[field], strings.TrimSpace(value))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading copyright file: %w", err)
	}
	if current != nil {
		out = append(out, *current)
	}
	return out, nil
}

// compileGlob translates a DEP5 glob into an anchored regexp. "*" matches any
// sequence including "/", "?" matches one character, and a backslash escapes
// "*", "?" or "\".
func compileGlob(pattern string) (*regexp.Regexp, error) {
	pattern = strings.TrimPrefix(pattern, "./")

	var b strings.Builder
	b.WriteString("^")
	escaped := false
	for _, r := range pattern {
		switch {
		case escaped:
			b.WriteString(regexp.QuoteMeta(string(r)))
			escaped = false
		case r == '\\':
			escaped = true
		case r == '*':
			b.WriteString(".*")
		case r == '?':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	if escaped {
		return nil, fmt.Errorf("pattern %q ends with a backslash", pattern)
	}
	b.WriteString("$")
	return regexp.Compile(b.String())
}
