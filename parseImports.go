package main

// ImportNameKind distinguishes how a binding is imported.
type ImportNameKind uint8

const (
	DefaultImport ImportNameKind = iota
	NamedImport
	NamespaceImport
)

// ImportName is one imported binding. Namespace imports use "*" as the name
// with the local binding in Alias; default imports carry the local name.
type ImportName struct {
	Name       string         `json:"name"`
	Alias      string         `json:"alias,omitempty"`
	Kind       ImportNameKind `json:"kind"`
	IsTypeOnly bool           `json:"isTypeOnly,omitempty"`
}

// parsedStatement is the structured form of one import/export-from statement.
// Path offsets are absolute into the scanned source and include the quotes,
// so slicing [pathStart:pathEnd] yields the quoted specifier.
type parsedStatement struct {
	path      string
	pathStart int
	pathEnd   int
	names     []ImportName
	typeOnly  bool
}

func isWhiteSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isIdentChar(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || c == '_' || c == '$'
}

func skipSpaces(code []byte, i int) int {
	for i < len(code) && isWhiteSpace(code[i]) {
		i++
	}
	return i
}

func hasPrefixAt(code []byte, i int, s string) bool {
	if i < 0 || i+len(s) > len(code) {
		return false
	}
	for j := 0; j < len(s); j++ {
		if code[i+j] != s[j] {
			return false
		}
	}
	return true
}

// hasWordAt reports whether s appears at i as a whole word (not glued onto a
// longer identifier).
func hasWordAt(code []byte, i int, s string) bool {
	if !hasPrefixAt(code, i, s) {
		return false
	}
	end := i + len(s)
	return end >= len(code) || !isIdentChar(code[end])
}

func skipLineComment(code []byte, start int) int {
	i := start + 2
	for i < len(code) && code[i] != '\n' {
		i++
	}
	return i
}

func skipBlockComment(code []byte, start int) int {
	i := start + 2
	for i+1 < len(code) && !(code[i] == '*' && code[i+1] == '/') {
		i++
	}
	if i+1 < len(code) {
		i += 2
	}
	return i
}

func skipSpacesAndComments(code []byte, i int) int {
	n := len(code)
	for i < n {
		i = skipSpaces(code, i)
		if i+1 < n && code[i] == '/' && code[i+1] == '/' {
			i = skipLineComment(code, i)
			continue
		}
		if i+1 < n && code[i] == '/' && code[i+1] == '*' {
			i = skipBlockComment(code, i)
			continue
		}
		break
	}
	return i
}

func skipToStringEnd(code []byte, start int, quote byte) int {
	i := start + 1
	for i < len(code) {
		if code[i] == quote {
			return i
		}
		if code[i] == '\\' && i+1 < len(code) {
			i += 2
		} else {
			i++
		}
	}
	return i
}

// parseQuotedPath reads a quoted module specifier at i. Returns the bare
// specifier plus quote-inclusive start/end offsets. ok is false when the
// closing quote is missing.
func parseQuotedPath(code []byte, i int) (spec string, start, end int, ok bool) {
	quote := code[i]
	j := i + 1
	for j < len(code) && code[j] != quote {
		j++
	}
	if j >= len(code) {
		return "", 0, 0, false
	}
	return string(code[i+1 : j]), i, j + 1, true
}

func parseIdentifier(code []byte, i int) (name string, next int) {
	start := i
	for i < len(code) && isIdentChar(code[i]) {
		i++
	}
	return string(code[start:i]), i
}

// detectJSStatement reports whether a genuine import or `export ... from`
// statement starts at pos. `import` preceded by `@` is skipped so that
// decorator-like patterns never match. The returned end sits right after the
// module specifier's closing quote.
func detectJSStatement(src []byte, pos int) (end int, matched bool, record bool) {
	c := src[pos]
	if c != 'i' && c != 'e' {
		return 0, false, false
	}
	if pos > 0 {
		prev := src[pos-1]
		if isIdentChar(prev) {
			return 0, false, false
		}
		if c == 'i' && prev == '@' {
			return 0, false, false
		}
	}
	if c == 'i' && hasWordAt(src, pos, "import") {
		return detectImportEnd(src, pos+len("import"))
	}
	if c == 'e' && hasWordAt(src, pos, "export") {
		return detectExportEnd(src, pos+len("export"))
	}
	return 0, false, false
}

func detectImportEnd(src []byte, i int) (end int, matched bool, record bool) {
	n := len(src)
	i = skipSpacesAndComments(src, i)
	if i >= n {
		return 0, false, false
	}

	if hasWordAt(src, i, "type") {
		i = skipSpacesAndComments(src, i+len("type"))
		if i >= n {
			return 0, false, false
		}
	}

	// Side-effect import: import './mod'
	if src[i] == '"' || src[i] == '\'' {
		if _, _, pathEnd, ok := parseQuotedPath(src, i); ok {
			return pathEnd, true, true
		}
		return 0, false, false
	}

	// Dynamic import() is an expression, not a statement; leave it to the
	// plain scan.
	if src[i] == '(' {
		return 0, false, false
	}

	if !(isIdentChar(src[i]) || src[i] == '{' || src[i] == '*') {
		return 0, false, false
	}
	return scanForFromClause(src, i)
}

func detectExportEnd(src []byte, i int) (end int, matched bool, record bool) {
	n := len(src)
	i = skipSpacesAndComments(src, i)
	if i >= n {
		return 0, false, false
	}

	if hasWordAt(src, i, "type") {
		i = skipSpacesAndComments(src, i+len("type"))
		if i >= n {
			return 0, false, false
		}
	}

	// Only brace-list and star exports can be re-exports; `export const`
	// and friends are local declarations with no module path.
	if src[i] != '{' && src[i] != '*' {
		return 0, false, false
	}
	return scanForFromClause(src, i)
}

// scanForFromClause scans ahead for the `from` keyword, respecting nested
// braces, embedded strings, and comments. The statement terminates at `;` or
// a newline outside braces; hitting the terminator first means this is not a
// re-export and nothing is recorded.
func scanForFromClause(src []byte, i int) (end int, matched bool, record bool) {
	n := len(src)
	depth := 0
	for i < n {
		c := src[i]
		if c == '\'' || c == '"' || c == '`' {
			i = skipToStringEnd(src, i, c)
			if i < n {
				i++
			}
			continue
		}
		if c == '/' && i+1 < n && src[i+1] == '/' {
			i = skipLineComment(src, i)
			continue
		}
		if c == '/' && i+1 < n && src[i+1] == '*' {
			i = skipBlockComment(src, i)
			continue
		}
		if c == '{' {
			depth++
			i++
			continue
		}
		if c == '}' {
			depth--
			i++
			continue
		}
		if depth == 0 {
			if c == ';' || c == '\n' {
				return 0, false, false
			}
			if hasWordAt(src, i, "from") && (i == 0 || !isIdentChar(src[i-1])) {
				i = skipSpacesAndComments(src, i+len("from"))
				if i < n && (src[i] == '"' || src[i] == '\'') {
					if _, _, pathEnd, ok := parseQuotedPath(src, i); ok {
						return pathEnd, true, true
					}
				}
				return 0, false, false
			}
		}
		i++
	}
	return 0, false, false
}

// parseJSStatement parses a span recorded by detectJSStatement into its
// module path and binding list. Returns nil when the span cannot be parsed;
// a skipped statement must never fail the whole file.
func parseJSStatement(span StatementSpan) *parsedStatement {
	text := []byte(span.Text)
	n := len(text)

	i := 0
	if hasWordAt(text, 0, "import") || hasWordAt(text, 0, "export") {
		i = 6
	} else {
		return nil
	}
	i = skipSpacesAndComments(text, i)

	wholeType := false
	if hasWordAt(text, i, "type") {
		wholeType = true
		i = skipSpacesAndComments(text, i+len("type"))
	}
	if i >= n {
		return nil
	}

	stmt := &parsedStatement{typeOnly: wholeType}

	switch {
	case text[i] == '"' || text[i] == '\'':
		// Side-effect import: no bindings.
	case text[i] == '*':
		i = skipSpacesAndComments(text, i+1)
		alias := ""
		if hasWordAt(text, i, "as") {
			i = skipSpacesAndComments(text, i+len("as"))
			alias, i = parseIdentifier(text, i)
		}
		stmt.names = append(stmt.names, ImportName{Name: "*", Alias: alias, Kind: NamespaceImport, IsTypeOnly: wholeType})
	case text[i] == '{':
		var names []ImportName
		names, i = parseNamedBindings(text, i, wholeType)
		stmt.names = append(stmt.names, names...)
	case isIdentChar(text[i]):
		var local string
		local, i = parseIdentifier(text, i)
		if local == "" {
			return nil
		}
		stmt.names = append(stmt.names, ImportName{Name: local, Kind: DefaultImport, IsTypeOnly: wholeType})
		i = skipSpacesAndComments(text, i)
		if i < n && text[i] == ',' {
			i = skipSpacesAndComments(text, i+1)
			if i < n && text[i] == '*' {
				i = skipSpacesAndComments(text, i+1)
				if hasWordAt(text, i, "as") {
					i = skipSpacesAndComments(text, i+len("as"))
					var alias string
					alias, i = parseIdentifier(text, i)
					stmt.names = append(stmt.names, ImportName{Name: "*", Alias: alias, Kind: NamespaceImport, IsTypeOnly: wholeType})
				}
			} else if i < n && text[i] == '{' {
				var names []ImportName
				names, i = parseNamedBindings(text, i, wholeType)
				stmt.names = append(stmt.names, names...)
			}
		}
	default:
		return nil
	}

	// Locate the module path: either the side-effect specifier right here or
	// the string after `from`.
	i = skipSpacesAndComments(text, i)
	if i < n && hasWordAt(text, i, "from") {
		i = skipSpacesAndComments(text, i+len("from"))
	}
	if i >= n || (text[i] != '"' && text[i] != '\'') {
		return nil
	}
	spec, start, end, ok := parseQuotedPath(text, i)
	if !ok || spec == "" {
		return nil
	}
	stmt.path = spec
	stmt.pathStart = span.Start + start
	stmt.pathEnd = span.Start + end

	for _, name := range stmt.names {
		if name.IsTypeOnly {
			stmt.typeOnly = true
			break
		}
	}
	return stmt
}

// parseNamedBindings parses a `{ a, b as c, type D }` list starting at the
// opening brace. A leading `type` marks just that binding as type-only, so a
// single statement can mix type and value bindings.
func parseNamedBindings(text []byte, i int, wholeType bool) ([]ImportName, int) {
	n := len(text)
	var names []ImportName
	i++ // skip '{'
	for i < n {
		i = skipSpacesAndComments(text, i)
		if i >= n {
			break
		}
		if text[i] == '}' {
			i++
			break
		}

		isType := wholeType
		if hasWordAt(text, i, "type") {
			// `type` is a modifier only when another token follows; a bare
			// `{ type }` imports a binding literally named "type".
			after := skipSpacesAndComments(text, i+len("type"))
			if after < n && (isIdentChar(text[after]) || text[after] == '"' || text[after] == '\'') {
				isType = true
				i = after
			}
		}

		var name string
		if i < n && (text[i] == '"' || text[i] == '\'') {
			spec, _, end, ok := parseQuotedPath(text, i)
			if !ok {
				break
			}
			name = spec
			i = end
		} else {
			name, i = parseIdentifier(text, i)
			if name == "" {
				i++
				continue
			}
		}

		alias := ""
		i = skipSpacesAndComments(text, i)
		if hasWordAt(text, i, "as") {
			i = skipSpacesAndComments(text, i+len("as"))
			alias, i = parseIdentifier(text, i)
		}
		names = append(names, ImportName{Name: name, Alias: alias, Kind: NamedImport, IsTypeOnly: isType})

		i = skipSpacesAndComments(text, i)
		if i < n && text[i] == ',' {
			i++
		}
	}
	return names, i
}

// isRelativeJSPath reports whether a JS module specifier resolves to a file.
func isRelativeJSPath(spec string) bool {
	return hasPrefixAt([]byte(spec), 0, "./") || hasPrefixAt([]byte(spec), 0, "../")
}
