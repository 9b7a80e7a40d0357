package main

import (
	"os"
	"path/filepath"
	"strings"
)

var allowedExts = map[string]struct{}{
	".ts":  {},
	".tsx": {},
	".js":  {},
	".jsx": {},
	".cjs": {},
	".mjs": {},
	".mdx": {},
	".css": {},
}

func hasScannableExtension(name string) bool {
	_, ok := allowedExts[strings.ToLower(filepath.Ext(name))]
	return ok
}

func parseGitIgnore(content string, dirPath string) []GlobMatcher {
	var entries []string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && !strings.HasPrefix(trimmed, "#") {
			entries = append(entries, trimmed)
		}
	}
	return CreateGlobMatchers(entries, dirPath)
}

// FindGitIgnoreMatchersUpToRepoRoot collects .gitignore entries from dirPath
// upward until a .git directory (or the filesystem root) is found, so a scan
// started in a subdirectory still honors repository-level ignores.
func FindGitIgnoreMatchersUpToRepoRoot(dirPath string) []GlobMatcher {
	var matchers []GlobMatcher
	dir := dirPath
	for {
		if content, err := os.ReadFile(filepath.Join(dir, ".gitignore")); err == nil {
			matchers = append(matchers, parseGitIgnore(string(content), dir)...)
		}
		if info, err := os.Stat(filepath.Join(dir, ".git")); err == nil && info.IsDir() {
			return matchers
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return matchers
		}
		dir = parent
	}
}

// GetFiles walks directory recursively collecting scannable source files,
// honoring the supplied exclusion matchers plus any nested .gitignore files.
func GetFiles(directory string, existing []string, matchers []GlobMatcher) []string {
	entries, err := os.ReadDir(directory)
	if err != nil {
		return existing
	}

	for _, entry := range entries {
		name := entry.Name()
		entryPath := filepath.Join(directory, name)

		if entry.IsDir() {
			if name == ".git" || MatchesAnyGlobMatcher(entryPath, matchers) {
				continue
			}
			childMatchers := matchers
			if content, readErr := os.ReadFile(filepath.Join(entryPath, ".gitignore")); readErr == nil {
				childMatchers = append(childMatchers, parseGitIgnore(string(content), entryPath)...)
			}
			existing = GetFiles(entryPath, existing, childMatchers)
			continue
		}

		if !hasScannableExtension(name) || MatchesAnyGlobMatcher(entryPath, matchers) {
			continue
		}
		existing = append(existing, entryPath)
	}
	return existing
}
