package main

import (
	"os"
	"path"
	"runtime"
	"strings"
	"sync"
)

// ImportPathPosition is the quote-inclusive byte range of one textual
// occurrence of a module path. Offsets point into the processed text when
// stripping changed the source, into the original text otherwise.
type ImportPathPosition struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// ImportRecord aggregates every import of one module path within a file.
// ResolvedURL is a file:// URL for relative imports and empty for externals.
type ImportRecord struct {
	Path            string               `json:"path"`
	ResolvedURL     string               `json:"resolvedUrl,omitempty"`
	Names           []ImportName         `json:"names"`
	IncludeTypeDefs bool                 `json:"includeTypeDefs,omitempty"`
	Positions       []ImportPathPosition `json:"positions"`
}

// ParseOptions configure comment handling for a parse call. A nil or empty
// RemoveCommentsWithPrefix disables stripping entirely.
type ParseOptions struct {
	RemoveCommentsWithPrefix []string
	NotableCommentsPrefix    []string
}

// ParseResult is the structured outcome of scanning one file. Stripped is
// non-nil only when at least one comment was removed; Comments is non-nil
// only when at least one comment was collected. When Stripped is nil the
// caller keeps using the original text and every position points into it.
type ParseResult struct {
	Relative  map[string]*ImportRecord
	Externals map[string]*ImportRecord
	Stripped  *StrippedSource
	Comments  map[int][]string
}

// ParseSource scans sourceText once and extracts its imports, optionally
// stripping and collecting comments. fileURLOrPath may be a file:// URL or a
// bare path; the extension picks the grammar (.css, .mdx, everything else is
// plain JS/TS). The scan never fails: malformed statements degrade to "no
// record produced".
func ParseSource(sourceText string, fileURLOrPath string, opts *ParseOptions) *ParseResult {
	portable := ToPortablePath(fileURLOrPath)
	ext := strings.ToLower(path.Ext(portable))

	scanOpts := scanOptions{}
	if opts != nil {
		if len(opts.RemoveCommentsWithPrefix) > 0 {
			scanOpts.stripPrefixes = opts.RemoveCommentsWithPrefix
		}
		if len(opts.NotableCommentsPrefix) > 0 {
			scanOpts.notablePrefixes = opts.NotableCommentsPrefix
		}
	}

	isCSS := ext == ".css"
	if isCSS {
		scanOpts.detect = detectCSSImport
	} else {
		scanOpts.isMDX = ext == ".mdx"
		scanOpts.detect = detectJSStatement
	}

	scan := scanSource([]byte(sourceText), scanOpts)

	result := &ParseResult{
		Relative:  make(map[string]*ImportRecord),
		Externals: make(map[string]*ImportRecord),
		Stripped:  scan.stripped,
		Comments:  scan.comments,
	}

	for _, span := range scan.statements {
		var stmt *parsedStatement
		if isCSS {
			stmt = parseCSSStatement(span)
		} else {
			stmt = parseJSStatement(span)
		}
		if stmt == nil {
			continue
		}

		relative := isRelativeJSPath(stmt.path)
		if isCSS {
			relative = isRelativeCSSPath(stmt.path)
		}

		records := result.Externals
		if relative {
			records = result.Relative
		}
		record, exists := records[stmt.path]
		if !exists {
			record = &ImportRecord{Path: stmt.path}
			if relative {
				record.ResolvedURL = ResolveRelativeImport(portable, stmt.path)
			}
			records[stmt.path] = record
		}

		for _, name := range stmt.names {
			record.addName(name)
		}
		if stmt.typeOnly {
			record.IncludeTypeDefs = true
		}

		start, end := stmt.pathStart, stmt.pathEnd
		if scan.stripped != nil {
			start = scan.stripped.Mapper.Map(start)
			end = scan.stripped.Mapper.Map(end)
		}
		record.Positions = append(record.Positions, ImportPathPosition{Start: start, End: end})
	}

	return result
}

// addName appends a binding unless the identical (name, kind, alias) triple
// is already present; repeated imports of the same binding keep one entry.
func (r *ImportRecord) addName(name ImportName) {
	for i, existing := range r.Names {
		if existing.Name == name.Name && existing.Kind == name.Kind && existing.Alias == name.Alias {
			// A value import of the same binding outweighs a type-only one.
			if !name.IsTypeOnly {
				r.Names[i].IsTypeOnly = false
			}
			return
		}
	}
	r.Names = append(r.Names, name)
}

// FileParseResult pairs a file with its parse outcome for the multi-file
// driver. Err is set only for read failures; parsing itself cannot fail.
type FileParseResult struct {
	FilePath string
	Result   *ParseResult
	Err      error
}

// ParseFiles parses many files concurrently. Each file is an independent
// pure computation, so the only coordination is a semaphore bounding memory.
// Returns the results plus the number of files that could not be read.
func ParseFiles(filePaths []string, opts *ParseOptions) ([]FileParseResult, int) {
	results := make([]FileParseResult, len(filePaths))
	var wg sync.WaitGroup

	maxConcurrency := runtime.GOMAXPROCS(0) * 2
	sem := make(chan struct{}, maxConcurrency)

	for idx, filePath := range filePaths {
		wg.Add(1)
		sem <- struct{}{}

		go func(idx int, filePath string) {
			defer wg.Done()
			defer func() { <-sem }()

			content, err := os.ReadFile(FromPortablePath(ToPortablePath(filePath)))
			if err != nil {
				results[idx] = FileParseResult{FilePath: filePath, Err: err}
				return
			}
			results[idx] = FileParseResult{
				FilePath: filePath,
				Result:   ParseSource(string(content), filePath, opts),
			}
		}(idx, filePath)
	}

	wg.Wait()
	errCount := 0
	for _, r := range results {
		if r.Err != nil {
			errCount++
		}
	}
	return results, errCount
}
