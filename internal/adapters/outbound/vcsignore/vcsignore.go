// Package vcsignore answers whether Git ignores a project path, using go-git's
// gitignore matcher so no git binary is required.
package vcsignore

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/openkraft/licensekit/internal/domain"
)

// Loader implements domain.IgnoreRulesLoader.
type Loader struct {
	global bool
}

// New creates a Loader. When global is true the user's core.excludesfile and
// the system excludes are honored in addition to the repository's rules.
func New(global bool) *Loader {
	return &Loader{global: global}
}

// Load builds the oracle for projectPath. A project outside any Git worktree
// gets an oracle that ignores nothing.
func (l *Loader) Load(projectPath string) (domain.IgnoreOracle, error) {
	absPath, err := resolve(projectPath)
	if err != nil {
		return nil, err
	}

	repo, err := git.PlainOpenWithOptions(absPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return Nothing{}, nil
		}
		return nil, fmt.Errorf("opening git repo: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		if errors.Is(err, git.ErrIsBareRepository) {
			return Nothing{}, nil
		}
		return nil, fmt.Errorf("opening worktree: %w", err)
	}

	root, err := resolve(wt.Filesystem.Root())
	if err != nil {
		return nil, err
	}
	prefix, err := filepath.Rel(root, absPath)
	if err != nil {
		return nil, fmt.Errorf("locating project in worktree: %w", err)
	}

	patterns, err := gitignore.ReadPatterns(osfs.New(root), nil)
	if err != nil {
		return nil, fmt.Errorf("reading ignore rules: %w", err)
	}
	if l.global {
		rootFS := osfs.New("/")
		if ps, err := gitignore.LoadSystemPatterns(rootFS); err == nil {
			patterns = append(ps, patterns...)
		}
		if ps, err := gitignore.LoadGlobalPatterns(rootFS); err == nil {
			patterns = append(ps, patterns...)
		}
	}

	o := &Oracle{matcher: gitignore.NewMatcher(patterns)}
	if prefix != "." {
		o.prefix = strings.Split(filepath.ToSlash(prefix), "/")
	}
	return o, nil
}

// Oracle matches root-relative, slash-separated file paths against the
// worktree's ignore rules.
type Oracle struct {
	matcher gitignore.Matcher
	prefix  []string
}

// IsIgnored implements domain.IgnoreOracle.
func (o *Oracle) IsIgnored(path string) bool {
	parts := make([]string, 0, len(o.prefix)+strings.Count(path, "/")+1)
	parts = append(parts, o.prefix...)
	parts = append(parts, strings.Split(path, "/")...)
	return o.matcher.Match(parts, false)
}

// Nothing is the oracle of a tree without version control.
type Nothing struct{}

// IsIgnored always returns false.
func (Nothing) IsIgnored(string) bool { return false }

func resolve(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real, nil
	}
	return abs, nil
}
