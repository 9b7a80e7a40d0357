package main

import (
	"strings"

	"github.com/gobwas/glob"
)

// GlobMatcher wraps one compiled exclusion pattern with the gitignore-style
// semantics the discovery walk needs.
type GlobMatcher struct {
	pattern      glob.Glob
	source       string
	matchAnyName bool // bare name without '/' or '*': matches any file or dir with that name
	root         string
}

// CreateGlobMatchers compiles gitignore-style patterns rooted at root.
func CreateGlobMatchers(patterns []string, root string) []GlobMatcher {
	rootNorm := strings.ReplaceAll(root, "\\", "/")
	if rootNorm != "" && !strings.HasSuffix(rootNorm, "/") {
		rootNorm += "/"
	}

	matchers := make([]GlobMatcher, 0, len(patterns))
	for _, raw := range patterns {
		// Bare names (no '/' and no '*') match any file or directory of that
		// exact name, matching .gitignore behavior.
		matchAnyName := !strings.Contains(raw, "/") && !strings.Contains(raw, "*")

		p := raw
		if strings.HasSuffix(p, "/") && !strings.Contains(p, "*") {
			// A trailing '/' entry covers the whole directory recursively.
			p = "**" + p + "**"
		}
		p = strings.ReplaceAll(p, "\\", "/")

		matchers = append(matchers, GlobMatcher{
			pattern:      glob.MustCompile(p),
			source:       p,
			matchAnyName: matchAnyName,
			root:         rootNorm,
		})
		// The glob library does not let `**/x` match `x` at the pattern root
		// itself, so a rootless variant is compiled alongside.
		if strings.HasPrefix(p, "**/") {
			flat := strings.Replace(p, "**/", "", 1)
			matchers = append(matchers, GlobMatcher{
				pattern: glob.MustCompile(flat),
				source:  flat,
				root:    rootNorm,
			})
		}
	}
	return matchers
}

// Matches tests a forward-slash file path against the matcher, relative to
// the matcher's root when it has one.
func (m GlobMatcher) Matches(filePath string) bool {
	p := strings.ReplaceAll(filePath, "\\", "/")
	if m.root != "" {
		if !strings.HasPrefix(p, m.root) {
			return false
		}
		p = strings.TrimPrefix(p, m.root)
	}
	if m.matchAnyName {
		for _, segment := range strings.Split(p, "/") {
			if segment == m.source {
				return true
			}
		}
		return false
	}
	return m.pattern.Match(p)
}

// MatchesAnyGlobMatcher reports whether any matcher excludes the path.
func MatchesAnyGlobMatcher(filePath string, matchers []GlobMatcher) bool {
	for _, m := range matchers {
		if m.Matches(filePath) {
			return true
		}
	}
	return false
}
