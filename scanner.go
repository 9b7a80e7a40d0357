package main

// StatementSpan is a raw import/export statement slice identified during the
// scan. Offsets point into the original source; parsing happens afterwards.
type StatementSpan struct {
	Start int
	End   int
	Text  string
}

// statementDetector is invoked at every code-state position. When matched is
// true the scanner jumps to end; record=false marks a malformed statement
// that is skipped without producing a span (best-effort recovery).
type statementDetector func(src []byte, pos int) (end int, matched bool, record bool)

type scanOptions struct {
	isMDX           bool
	detect          statementDetector
	stripPrefixes   []string
	notablePrefixes []string
}

// StrippedSource is the comment-stripped rendition of a scanned file plus the
// mapper translating original offsets into it. Present only when at least one
// comment was actually removed.
type StrippedSource struct {
	Code   string
	Mapper *PositionMapper
}

type scanResult struct {
	statements []StatementSpan
	stripped   *StrippedSource  // nil when no comment was removed
	comments   map[int][]string // nil when nothing was collected
}

// scanner walks the source one character at a time, switching between plain
// code, single-line comment, multi-line comment, string literal, template
// literal, and (MDX only) fenced-code-block contexts. Each context is handled
// by one consume function; statement detection runs only in plain code.
type scanner struct {
	src  []byte
	opts scanOptions

	// out is assembled only when a strip prefix list was supplied; if the
	// scan removes nothing it is discarded and callers keep the original.
	out         []byte
	strip       bool
	mapper      *PositionMapper
	line        int // current line in the output text
	strippedAny bool

	comments   map[int][]string
	statements []StatementSpan
}

func scanSource(src []byte, opts scanOptions) scanResult {
	s := &scanner{src: src, opts: opts, strip: opts.stripPrefixes != nil}
	if s.strip {
		s.out = make([]byte, 0, len(src))
		s.mapper = &PositionMapper{}
	}

	i := 0
	n := len(src)
	for i < n {
		c := src[i]

		// MDX backtick runs delimit opaque code: one or two backticks an
		// inline span, three or more a fenced block. Either way the closing
		// run must be at least as long as the opener.
		if opts.isMDX && c == '`' {
			i = s.copyFence(i, backtickRunLen(src, i))
			continue
		}

		if c == '/' && i+1 < n && src[i+1] == '/' {
			i = s.handleLineComment(i)
			continue
		}
		if c == '/' && i+1 < n && src[i+1] == '*' {
			i = s.handleBlockComment(i)
			continue
		}

		// MDX text is prose: plain quotes stay plain there, and its
		// backticks were consumed above.
		if c == '`' || (!opts.isMDX && (c == '"' || c == '\'')) {
			i = s.copyString(i, c)
			continue
		}

		if opts.detect != nil {
			if end, matched, record := opts.detect(src, i); matched {
				if record {
					s.statements = append(s.statements, StatementSpan{
						Start: i,
						End:   end,
						Text:  string(src[i:end]),
					})
				}
				s.copyVerbatim(i, end)
				i = end
				continue
			}
		}

		s.writeChar(i, c)
		i++
	}

	res := scanResult{statements: s.statements}
	if s.strippedAny {
		res.stripped = &StrippedSource{Code: string(s.out), Mapper: s.mapper}
	}
	if len(s.comments) > 0 {
		res.comments = s.comments
	}
	return res
}

func backtickRunLen(src []byte, i int) int {
	run := 0
	for i+run < len(src) && src[i+run] == '`' {
		run++
	}
	return run
}

// writeChar emits one source character to the output and keeps the line
// counter and position mapping current.
func (s *scanner) writeChar(origPos int, c byte) {
	if s.strip {
		s.mapper.record(origPos, len(s.out))
		s.out = append(s.out, c)
	}
	if c == '\n' {
		s.line++
	}
}

func (s *scanner) copyVerbatim(from, to int) {
	for i := from; i < to; i++ {
		s.writeChar(i, s.src[i])
	}
}

// copyString copies a string or template literal through untouched. Backslash
// escapes the next character; an unterminated literal runs to end of file.
func (s *scanner) copyString(i int, quote byte) int {
	n := len(s.src)
	s.writeChar(i, s.src[i])
	i++
	for i < n {
		c := s.src[i]
		if c == '\\' && i+1 < n {
			s.writeChar(i, c)
			s.writeChar(i+1, s.src[i+1])
			i += 2
			continue
		}
		s.writeChar(i, c)
		i++
		if c == quote {
			break
		}
	}
	return i
}

// copyFence copies an MDX backtick-delimited code region (inline span or
// fenced block) opened by a run of openLen backticks. Only a run of at least
// openLen backticks closes it, so a longer fence can wrap literal shorter
// fences and a double-backtick span can hold a single backtick. Everything
// inside is opaque.
func (s *scanner) copyFence(i, openLen int) int {
	n := len(s.src)
	s.copyVerbatim(i, i+openLen)
	i += openLen
	for i < n {
		if s.src[i] == '`' {
			if run := backtickRunLen(s.src, i); run >= openLen {
				s.copyVerbatim(i, i+run)
				return i + run
			}
		}
		s.writeChar(i, s.src[i])
		i++
	}
	return i
}

// lineIsBlankBefore reports whether the current output line holds only
// whitespace so far, i.e. the pending comment sits alone on its line.
func (s *scanner) lineIsBlankBefore() bool {
	for j := len(s.out) - 1; j >= 0; j-- {
		switch s.out[j] {
		case ' ', '\t', '\r':
		case '\n':
			return true
		default:
			return false
		}
	}
	return true
}

// truncateToLineStart drops everything written on the current output line.
func (s *scanner) truncateToLineStart() {
	j := len(s.out)
	for j > 0 && s.out[j-1] != '\n' {
		j--
	}
	s.setOutLen(j)
}

// setOutLen cuts the output back to length j and drops the mapper runs that
// pointed into the removed tail.
func (s *scanner) setOutLen(j int) {
	s.out = s.out[:j]
	s.mapper.truncate(j)
}

// trimTrailingWS removes trailing spaces and tabs from the output, keeping
// the pre-comment content of an inline comment's line tidy.
func (s *scanner) trimTrailingWS() {
	j := len(s.out)
	for j > 0 && (s.out[j-1] == ' ' || s.out[j-1] == '\t') {
		j--
	}
	s.setOutLen(j)
}

// outEndsWithOpenBrace reports whether the output, ignoring trailing spaces
// and tabs, ends with '{'. Used for the JSX {/* ... */} idiom.
func (s *scanner) outEndsWithOpenBrace() (int, bool) {
	j := len(s.out)
	for j > 0 && (s.out[j-1] == ' ' || s.out[j-1] == '\t') {
		j--
	}
	if j > 0 && s.out[j-1] == '{' {
		return j - 1, true
	}
	return 0, false
}

func (s *scanner) collect(line int, fragments []string) {
	if s.comments == nil {
		s.comments = make(map[int][]string)
	}
	s.comments[line] = append(s.comments[line], fragments...)
}

// handleLineComment consumes a // comment starting at i and applies the
// strip/collect policy. Returns the position the scan resumes at.
func (s *scanner) handleLineComment(i int) int {
	n := len(s.src)
	j := i
	for j < n && s.src[j] != '\n' {
		j++
	}
	content := trimCommentSpace(string(s.src[i+2 : j]))
	shouldStrip, shouldCollect := resolveCommentPolicy(content, s.opts.stripPrefixes, s.opts.notablePrefixes)

	if shouldCollect {
		s.collect(s.line, []string{content})
	}

	if !shouldStrip || !s.strip {
		s.copyVerbatim(i, j)
		return j
	}

	s.strippedAny = true
	if s.lineIsBlankBefore() {
		// Comment alone on its line: elide the line and its newline.
		s.truncateToLineStart()
		if j < n {
			j++ // swallow the newline without advancing the output line
		}
		return j
	}
	s.trimTrailingWS()
	return j
}

// handleBlockComment consumes a /* */ comment starting at i. A comment left
// unterminated at end of file is treated as running to the end.
func (s *scanner) handleBlockComment(i int) int {
	n := len(s.src)
	end := n
	contentEnd := n
	for j := i + 2; j+1 < n; j++ {
		if s.src[j] == '*' && s.src[j+1] == '/' {
			contentEnd = j
			end = j + 2
			break
		}
	}
	content := string(s.src[i+2 : contentEnd])
	shouldStrip, shouldCollect := resolveCommentPolicy(trimCommentSpace(content), s.opts.stripPrefixes, s.opts.notablePrefixes)

	if shouldCollect {
		s.collect(s.line, commentFragments(content))
	}

	if !shouldStrip || !s.strip {
		s.copyVerbatim(i, end)
		return end
	}

	s.strippedAny = true

	// JSX idiom {/* comment */}: elide the wrapping braces with the comment.
	if bracePos, ok := s.outEndsWithOpenBrace(); ok {
		k := end
		for k < n && (s.src[k] == ' ' || s.src[k] == '\t') {
			k++
		}
		if k < n && s.src[k] == '}' {
			s.setOutLen(bracePos)
			end = k + 1
		}
	}

	// Alone on its line (before and after): elide the whole line.
	if s.lineIsBlankBefore() {
		k := end
		for k < n && (s.src[k] == ' ' || s.src[k] == '\t' || s.src[k] == '\r') {
			k++
		}
		if k >= n {
			s.truncateToLineStart()
			return n
		}
		if s.src[k] == '\n' {
			s.truncateToLineStart()
			return k + 1
		}
	}

	s.trimTrailingWS()
	return end
}
