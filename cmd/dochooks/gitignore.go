package main

import (
	"bufio"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// GitignorePattern represents a single gitignore pattern.
type GitignorePattern struct {
	Pattern  string
	Negation bool
	DirOnly  bool
}

// LoadGitignore parses .gitignore from the module root.
func LoadGitignore(root string) []GitignorePattern {
	f, err := os.Open(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	defer f.Close()

	var patterns []GitignorePattern
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		p := GitignorePattern{}
		if strings.HasPrefix(line, "!") {
			p.Negation = true
			line = line[1:]
		}
		if strings.HasSuffix(line, "/") {
			p.DirOnly = true
			line = strings.TrimSuffix(line, "/")
		}
		p.Pattern = line
		patterns = append(patterns, p)
	}
	return patterns
}

// IsGitignored checks if a module-relative package directory matches any
// gitignore pattern. The last matching pattern wins.
func IsGitignored(relDir string, patterns []GitignorePattern) bool {
	relDir = filepath.ToSlash(relDir)

	ignored := false
	for _, p := range patterns {
		if matchGitignore(relDir, p.Pattern) {
			ignored = !p.Negation
		}
	}
	return ignored
}

// matchGitignore matches a directory against one pattern. A pattern matches
// the directory itself or any of its parents.
func matchGitignore(dir, pattern string) bool {
	// Leading / or an inner / anchors the pattern to the root.
	anchored := strings.Contains(strings.TrimSuffix(pattern, "/"), "/")
	pattern = strings.TrimPrefix(pattern, "/")
	if !anchored {
		pattern = "**/" + pattern
	}

	for d := dir; d != "." && d != "" && d != "/"; d = path.Dir(d) {
		if ok, _ := doublestar.Match(pattern, d); ok {
			return true
		}
	}
	return false
}

// matchExclude reports whether a module-relative package dir matches any
// doublestar glob. A trailing "/..." also matches the dir itself.
func matchExclude(relDir string, globs []string) bool {
	relDir = filepath.ToSlash(relDir)
	for _, g := range globs {
		g = strings.TrimPrefix(filepath.ToSlash(g), "./")
		if base, ok := strings.CutSuffix(g, "/..."); ok {
			if relDir == base || strings.HasPrefix(relDir, base+"/") {
				return true
			}
			continue
		}
		if ok, _ := doublestar.Match(g, relDir); ok {
			return true
		}
	}
	return false
}
