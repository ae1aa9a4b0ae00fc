// Package tags extracts SPDX license and copyright tags from file content.
package tags

import (
	"regexp"
	"sort"
	"strings"
)

const (
	licenseTag   = "SPDX-License-Identifier:"
	copyrightTag = "SPDX-FileCopyrightText:"
)

// copyrightLine matches "Copyright", "COPYRIGHT" or "©" followed either by a
// "(C)"/"©" marker or by a year or capitalized holder name.
var copyrightLine = regexp.MustCompile(`^(?:Copyright|COPYRIGHT|©)(?:\s*(?:\([Cc]\)|©)\s+\S|\s+[\p{Lu}\p{N}])`)

// MalformedTag is a license tag whose expression could not be parsed.
type MalformedTag struct {
	Line       int
	Expression string
	Err        error
}

// Result is the licensing evidence found in one piece of text.
type Result struct {
	Licenses   []string
	Copyrights []string
	Malformed  []MalformedTag
}

// Found reports whether the text carried any license or copyright information.
func (r Result) Found() bool {
	return len(r.Licenses) > 0 || len(r.Copyrights) > 0
}

// Extract scans content line by line for SPDX tags and copyright statements,
// stripping the comment markers of style first. Licenses and copyrights are
// returned sorted and de-duplicated.
func Extract(content string, style CommentStyle) Result {
	var res Result
	licenses := make(map[string]bool)
	copyrights := make(map[string]bool)
	prefixed := style
	prefixed.LinePrefixes = style.sortedPrefixes()

	for i, raw := range strings.Split(content, "\n") {
		lineNo := i + 1
		line := prefixed.stripComment(raw)

		switch {
		case strings.HasPrefix(line, licenseTag):
			expr := cleanValue(strings.TrimPrefix(line, licenseTag), style)
			ids, err := ParseExpression(expr)
			if err != nil {
				res.Malformed = append(res.Malformed, MalformedTag{Line: lineNo, Expression: expr, Err: err})
				continue
			}
			for _, id := range ids {
				licenses[id] = true
			}
		case strings.HasPrefix(line, copyrightTag):
			if text := cleanValue(strings.TrimPrefix(line, copyrightTag), style); text != "" {
				copyrights[text] = true
			}
		case copyrightLine.MatchString(line):
			copyrights[cleanValue(line, style)] = true
		}
	}

	res.Licenses = sortedKeys(licenses)
	res.Copyrights = sortedKeys(copyrights)
	return res
}

// cleanValue trims whitespace and a trailing block-comment terminator.
func cleanValue(v string, style CommentStyle) string {
	v = strings.TrimSpace(v)
	if style.BlockEnd != "" {
		v = strings.TrimSpace(strings.TrimSuffix(v, style.BlockEnd))
	}
	return strings.TrimRight(v, " \t\r")
}

func sortedKeys(m map[string]bool) []string {
	if len(m) == 0 {
		return nil
	}
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
