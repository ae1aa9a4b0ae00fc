package tags

import (
	"path"
	"sort"
	"strings"
)

// CommentStyle describes how comments are written in one family of file types.
type CommentStyle struct {
	Name         string
	LinePrefixes []string
	BlockStart   string
	BlockEnd     string
}

var (
	StyleC       = CommentStyle{Name: "c", LinePrefixes: []string{"//"}, BlockStart: "/*", BlockEnd: "*/"}
	StylePython  = CommentStyle{Name: "python", LinePrefixes: []string{"#"}, BlockStart: `"""`, BlockEnd: `"""`}
	StyleShell   = CommentStyle{Name: "shell", LinePrefixes: []string{"#"}}
	StyleHTML    = CommentStyle{Name: "html", BlockStart: "<!--", BlockEnd: "-->"}
	StyleSQL     = CommentStyle{Name: "sql", LinePrefixes: []string{"--"}, BlockStart: "/*", BlockEnd: "*/"}
	StyleHaskell = CommentStyle{Name: "haskell", LinePrefixes: []string{"--"}, BlockStart: "{-", BlockEnd: "-}"}
	StyleLisp    = CommentStyle{Name: "lisp", LinePrefixes: []string{";;;", ";;", ";"}}
	StyleTeX     = CommentStyle{Name: "tex", LinePrefixes: []string{"%"}}
	StyleML      = CommentStyle{Name: "ml", BlockStart: "(*", BlockEnd: "*)"}
	StyleBat     = CommentStyle{Name: "bat", LinePrefixes: []string{"::", "REM", "rem", "@REM", "@rem"}}
	StyleVim     = CommentStyle{Name: "vim", LinePrefixes: []string{`"`}}
	StyleINI     = CommentStyle{Name: "ini", LinePrefixes: []string{";", "#"}}

	// StyleGeneric strips every known marker; used for plain text, sidecars and
	// unknown file types.
	StyleGeneric = CommentStyle{
		Name:         "generic",
		LinePrefixes: []string{"//", "#", "--", ";;", ";", "%", "::", "REM"},
		BlockStart:   "/*",
		BlockEnd:     "*/",
	}
)

var extensionStyles = map[string]CommentStyle{
	".go": StyleC, ".c": StyleC, ".h": StyleC, ".cc": StyleC, ".cpp": StyleC, ".cxx": StyleC,
	".hpp": StyleC, ".hh": StyleC, ".java": StyleC, ".js": StyleC, ".mjs": StyleC, ".cjs": StyleC,
	".jsx": StyleC, ".ts": StyleC, ".tsx": StyleC, ".cs": StyleC, ".rs": StyleC, ".swift": StyleC,
	".kt": StyleC, ".kts": StyleC, ".scala": StyleC, ".groovy": StyleC, ".gradle": StyleC,
	".dart": StyleC, ".proto": StyleC, ".css": StyleC, ".scss": StyleC, ".less": StyleC,
	".php": StyleC, ".m": StyleC, ".mm": StyleC, ".zig": StyleC, ".v": StyleC, ".sv": StyleC,

	".py": StylePython, ".pyi": StylePython, ".pyx": StylePython,

	".sh": StyleShell, ".bash": StyleShell, ".zsh": StyleShell, ".fish": StyleShell,
	".rb": StyleShell, ".pl": StyleShell, ".pm": StyleShell, ".r": StyleShell, ".R": StyleShell,
	".yaml": StyleShell, ".yml": StyleShell, ".toml": StyleShell, ".cfg": StyleShell,
	".conf": StyleShell, ".cmake": StyleShell, ".mk": StyleShell, ".nix": StyleShell,
	".tf": StyleShell, ".ps1": StyleShell, ".jl": StyleShell, ".ex": StyleShell, ".exs": StyleShell,
	".awk": StyleShell, ".properties": StyleShell,

	".html": StyleHTML, ".htm": StyleHTML, ".xml": StyleHTML, ".xhtml": StyleHTML, ".svg": StyleHTML,
	".md": StyleHTML, ".markdown": StyleHTML, ".vue": StyleHTML, ".xsd": StyleHTML, ".xsl": StyleHTML,

	".sql": StyleSQL, ".lua": StyleSQL, ".ada": StyleSQL, ".adb": StyleSQL, ".ads": StyleSQL,

	".hs": StyleHaskell, ".elm": StyleHaskell, ".purs": StyleHaskell,

	".el": StyleLisp, ".lisp": StyleLisp, ".lsp": StyleLisp, ".clj": StyleLisp, ".cljs": StyleLisp,
	".scm": StyleLisp, ".rkt": StyleLisp,

	".tex": StyleTeX, ".sty": StyleTeX, ".cls": StyleTeX, ".bib": StyleTeX, ".erl": StyleTeX, ".hrl": StyleTeX,

	".ml": StyleML, ".mli": StyleML, ".pas": StyleML, ".fs": StyleML,

	".bat": StyleBat, ".cmd": StyleBat,

	".vim": StyleVim,

	".ini": StyleINI,
}

var fileNameStyles = map[string]CommentStyle{
	"Makefile":       StyleShell,
	"GNUmakefile":    StyleShell,
	"Dockerfile":     StyleShell,
	"Containerfile":  StyleShell,
	"CMakeLists.txt": StyleShell,
	"Gemfile":        StyleShell,
	"Rakefile":       StyleShell,
	"Vagrantfile":    StyleShell,
	".gitignore":     StyleShell,
	".gitattributes": StyleShell,
	".gitmodules":    StyleShell,
	".dockerignore":  StyleShell,
	".editorconfig":  StyleShell,
	".bashrc":        StyleShell,
	"go.mod":         StyleC,
	"go.sum":         StyleC,
	".vimrc":         StyleVim,
}

// StyleFor selects the comment style of a file from its name, then its extension.
func StyleFor(filePath string) CommentStyle {
	base := path.Base(filePath)
	if style, ok := fileNameStyles[base]; ok {
		return style
	}
	if style, ok := extensionStyles[path.Ext(base)]; ok {
		return style
	}
	if style, ok := extensionStyles[strings.ToLower(path.Ext(base))]; ok {
		return style
	}
	return StyleGeneric
}

// stripComment removes the comment markers of style from one line. LinePrefixes
// must be ordered longest first.
func (s CommentStyle) stripComment(line string) string {
	line = strings.TrimSpace(line)

	if s.BlockStart != "" {
		line = strings.TrimSpace(strings.TrimPrefix(line, s.BlockStart))
		line = strings.TrimSpace(strings.TrimSuffix(line, s.BlockEnd))
		// Continuation lines of C-style blocks conventionally start with "*".
		if s.BlockStart == "/*" && strings.HasPrefix(line, "*") && !strings.HasPrefix(line, "*/") {
			line = strings.TrimSpace(strings.TrimLeft(line, "*"))
		}
	}

	for _, prefix := range s.LinePrefixes {
		if strings.HasPrefix(line, prefix) {
			line = strings.TrimSpace(strings.TrimPrefix(line, prefix))
			break
		}
	}

	return line
}

// sortedPrefixes returns line prefixes longest first so "//" wins over "/".
func (s CommentStyle) sortedPrefixes() []string {
	prefixes := append([]string(nil), s.LinePrefixes...)
	sort.SliceStable(prefixes, func(i, j int) bool { return len(prefixes[i]) > len(prefixes[j]) })
	return prefixes
}
