package main

import "strings"

// trimCommentSpace trims the whitespace around a comment's content once the
// // or /* */ markers are gone.
func trimCommentSpace(content string) string {
	return strings.TrimSpace(content)
}

// resolveCommentPolicy decides what happens to a terminated comment.
//
// A comment is stripped when a strip-prefix list was supplied and the content
// starts with one of its entries. It is collected either because it matches a
// notable prefix, or — when no notable list exists at all — because it was
// stripped: a caller that only asks to strip wants every removed comment
// reported back, while a notable filter narrows reporting to its own matches.
func resolveCommentPolicy(content string, stripPrefixes, notablePrefixes []string) (shouldStrip, shouldCollect bool) {
	shouldStrip = stripPrefixes != nil && hasAnyPrefix(content, stripPrefixes)
	isNotable := notablePrefixes != nil && hasAnyPrefix(content, notablePrefixes)
	shouldCollect = (shouldStrip && notablePrefixes == nil) || isNotable
	return shouldStrip, shouldCollect
}

func hasAnyPrefix(content string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(content, prefix) {
			return true
		}
	}
	return false
}

// commentFragments splits a block comment's content into one trimmed fragment
// per non-blank physical line. A single-line body yields one fragment.
func commentFragments(content string) []string {
	lines := strings.Split(content, "\n")
	fragments := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" {
			fragments = append(fragments, trimmed)
		}
	}
	return fragments
}
