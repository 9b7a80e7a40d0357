package main

import "strings"

// detectCSSImport reports whether a CSS `@import` rule starts at pos. The
// returned end covers the whole rule up to (and including) its terminating
// `;`, or up to the newline for unterminated rules. A malformed rule —
// missing closing quote or paren — is matched with record=false so the
// scanner jumps to a safe resume point instead of producing a record.
func detectCSSImport(src []byte, pos int) (end int, matched bool, record bool) {
	if src[pos] != '@' || !hasWordAt(src, pos+1, "import") {
		return 0, false, false
	}
	n := len(src)
	i := skipSpaces(src, pos+1+len("import"))
	if i >= n {
		return 0, false, false
	}

	ok := false
	if hasPrefixAt(src, i, "url(") {
		i, ok = skipCSSURL(src, i)
	} else if src[i] == '"' || src[i] == '\'' {
		i, ok = skipCSSString(src, i)
	}
	if !ok {
		return cssRecoveryPoint(src, pos), true, false
	}

	// Tolerate a trailing media/layer/supports clause up to the terminator.
	for i < n && src[i] != ';' && src[i] != '\n' {
		i++
	}
	if i < n && src[i] == ';' {
		i++
	}
	return i, true, true
}

// cssRecoveryPoint finds the next `;` or newline after a malformed rule.
func cssRecoveryPoint(src []byte, pos int) int {
	i := pos + 1
	for i < len(src) && src[i] != ';' && src[i] != '\n' {
		i++
	}
	if i < len(src) && src[i] == ';' {
		i++
	}
	return i
}

// skipCSSString advances past a quoted CSS string. The closing quote must
// appear before the next newline.
func skipCSSString(src []byte, i int) (int, bool) {
	quote := src[i]
	j := i + 1
	for j < len(src) && src[j] != quote && src[j] != '\n' {
		j++
	}
	if j >= len(src) || src[j] != quote {
		return i, false
	}
	return j + 1, true
}

// skipCSSURL advances past a `url(...)` token with a quoted or bare target.
func skipCSSURL(src []byte, i int) (int, bool) {
	n := len(src)
	j := skipSpaces(src, i+len("url("))
	if j >= n {
		return i, false
	}
	var ok bool
	if src[j] == '"' || src[j] == '\'' {
		j, ok = skipCSSString(src, j)
		if !ok {
			return i, false
		}
	} else {
		for j < n && src[j] != ')' && src[j] != '\n' && !isWhiteSpace(src[j]) {
			j++
		}
	}
	j = skipSpaces(src, j)
	if j >= n || src[j] != ')' {
		return i, false
	}
	return j + 1, true
}

// parseCSSStatement parses a recorded @import span into its target path.
// Quoted targets report quote-inclusive positions; a bare url(...) target
// reports the bare token itself.
func parseCSSStatement(span StatementSpan) *parsedStatement {
	text := []byte(span.Text)
	n := len(text)
	i := skipSpaces(text, 1+len("import"))
	if i >= n {
		return nil
	}

	var spec string
	var start, end int
	if hasPrefixAt(text, i, "url(") {
		i = skipSpaces(text, i+len("url("))
		if i >= n {
			return nil
		}
		if text[i] == '"' || text[i] == '\'' {
			var ok bool
			spec, start, end, ok = parseQuotedPath(text, i)
			if !ok {
				return nil
			}
		} else {
			start = i
			for i < n && text[i] != ')' && !isWhiteSpace(text[i]) {
				i++
			}
			end = i
			spec = string(text[start:end])
		}
	} else if text[i] == '"' || text[i] == '\'' {
		var ok bool
		spec, start, end, ok = parseQuotedPath(text, i)
		if !ok {
			return nil
		}
	} else {
		return nil
	}

	if spec == "" {
		return nil
	}
	return &parsedStatement{
		path:      spec,
		pathStart: span.Start + start,
		pathEnd:   span.Start + end,
	}
}

// isRelativeCSSPath reports whether a CSS import target resolves to a file:
// anything without an explicit protocol or a protocol-relative hostname.
func isRelativeCSSPath(spec string) bool {
	if strings.HasPrefix(spec, "http://") || strings.HasPrefix(spec, "https://") {
		return false
	}
	return !strings.HasPrefix(spec, "//")
}
