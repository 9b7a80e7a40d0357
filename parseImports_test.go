package main

import (
	"strings"
	"testing"
)

func parseJSForTests(code string) *ParseResult {
	return ParseSource(code, "/app/src/test.ts", nil)
}

func importKindToString(kind ImportNameKind) string {
	switch kind {
	case DefaultImport:
		return "default"
	case NamedImport:
		return "named"
	case NamespaceImport:
		return "namespace"
	}
	return "unknown"
}

func namesToString(names []ImportName) string {
	str := ""
	for _, name := range names {
		str += importKindToString(name.Kind) + "(" + name.Name
		if name.Alias != "" {
			str += " as " + name.Alias
		}
		if name.IsTypeOnly {
			str += " type"
		}
		str += ")\n"
	}
	return str
}

func codeToString(code string) string {
	str := "\n\n"
	for _, line := range strings.Split(code, "\n") {
		str += strings.TrimSpace(line) + "\n"
	}
	return str + "\n\n"
}

func singleRecord(t *testing.T, records map[string]*ImportRecord, path string, code string) *ImportRecord {
	t.Helper()
	if len(records) != 1 {
		t.Fatalf(`Parse invalid %s -> %d records, should be 1`, codeToString(code), len(records))
	}
	record, ok := records[path]
	if !ok {
		t.Fatalf(`Parse invalid %s -> no record for %q`, codeToString(code), path)
	}
	return record
}

func TestParseImportWithoutIdentifier(t *testing.T) {
	code := `import './module'`

	result := parseJSForTests(code)

	record := singleRecord(t, result.Relative, "./module", code)
	if len(record.Names) != 0 {
		t.Errorf(`Parse invalid %s -> %s`, codeToString(code), namesToString(record.Names))
	}
}

func TestParseDefaultImportSingleQuote(t *testing.T) {
	code := `import I from 'module'`

	result := parseJSForTests(code)

	record := singleRecord(t, result.Externals, "module", code)
	if len(record.Names) != 1 || record.Names[0].Name != "I" || record.Names[0].Kind != DefaultImport {
		t.Errorf(`Parse invalid %s -> %s`, codeToString(code), namesToString(record.Names))
	}
}

func TestParseDefaultImportDoubleQuote(t *testing.T) {
	code := `import I from "module"`

	result := parseJSForTests(code)

	record := singleRecord(t, result.Externals, "module", code)
	if len(record.Names) != 1 || record.Names[0].Name != "I" {
		t.Errorf(`Parse invalid %s -> %s`, codeToString(code), namesToString(record.Names))
	}
}

func TestParseNamedImports(t *testing.T) {
	code := `import { A, B } from './mod'`

	result := parseJSForTests(code)

	record := singleRecord(t, result.Relative, "./mod", code)
	if len(record.Names) != 2 ||
		record.Names[0].Name != "A" || record.Names[0].Kind != NamedImport ||
		record.Names[1].Name != "B" || record.Names[1].Kind != NamedImport {
		t.Errorf(`Parse invalid %s -> %s`, codeToString(code), namesToString(record.Names))
	}
}

func TestParseNamedImportWithAlias(t *testing.T) {
	code := `import { A as Renamed } from './mod'`

	result := parseJSForTests(code)

	record := singleRecord(t, result.Relative, "./mod", code)
	if len(record.Names) != 1 || record.Names[0].Name != "A" || record.Names[0].Alias != "Renamed" {
		t.Errorf(`Parse invalid %s -> %s`, codeToString(code), namesToString(record.Names))
	}
}

func TestParseNamespaceImport(t *testing.T) {
	code := `import * as utils from './utils'`

	result := parseJSForTests(code)

	record := singleRecord(t, result.Relative, "./utils", code)
	if len(record.Names) != 1 || record.Names[0].Name != "*" || record.Names[0].Alias != "utils" || record.Names[0].Kind != NamespaceImport {
		t.Errorf(`Parse invalid %s -> %s`, codeToString(code), namesToString(record.Names))
	}
}

func TestParseDefaultAndNamedImport(t *testing.T) {
	code := `import React, { useState, useEffect } from 'react'`

	result := parseJSForTests(code)

	record := singleRecord(t, result.Externals, "react", code)
	if len(record.Names) != 3 ||
		record.Names[0].Name != "React" || record.Names[0].Kind != DefaultImport ||
		record.Names[1].Name != "useState" || record.Names[2].Name != "useEffect" {
		t.Errorf(`Parse invalid %s -> %s`, codeToString(code), namesToString(record.Names))
	}
}

func TestParseDefaultAndNamespaceImport(t *testing.T) {
	code := `import Default, * as ns from './mod'`

	result := parseJSForTests(code)

	record := singleRecord(t, result.Relative, "./mod", code)
	if len(record.Names) != 2 ||
		record.Names[0].Kind != DefaultImport ||
		record.Names[1].Kind != NamespaceImport || record.Names[1].Alias != "ns" {
		t.Errorf(`Parse invalid %s -> %s`, codeToString(code), namesToString(record.Names))
	}
}

func TestParseTypeImportSetsIncludeTypeDefs(t *testing.T) {
	code := `import type { Props } from './types'`

	result := parseJSForTests(code)

	record := singleRecord(t, result.Relative, "./types", code)
	if !record.IncludeTypeDefs {
		t.Errorf(`Parse invalid %s -> IncludeTypeDefs false, should be true`, codeToString(code))
	}
	if len(record.Names) != 1 || !record.Names[0].IsTypeOnly {
		t.Errorf(`Parse invalid %s -> %s`, codeToString(code), namesToString(record.Names))
	}
}

func TestParseInlineTypeMixedBindings(t *testing.T) {
	code := `import { type Props, useThing } from './mod'`

	result := parseJSForTests(code)

	record := singleRecord(t, result.Relative, "./mod", code)
	if len(record.Names) != 2 ||
		!record.Names[0].IsTypeOnly || record.Names[0].Name != "Props" ||
		record.Names[1].IsTypeOnly || record.Names[1].Name != "useThing" {
		t.Errorf(`Parse invalid %s -> %s`, codeToString(code), namesToString(record.Names))
	}
	if !record.IncludeTypeDefs {
		t.Errorf(`Parse invalid %s -> IncludeTypeDefs false, should be true`, codeToString(code))
	}
}

func TestParseTypeAndValueImportsMergeIntoOneRecord(t *testing.T) {
	code := "import type { A } from 'x';\nimport { B } from 'x';"

	result := parseJSForTests(code)

	record := singleRecord(t, result.Externals, "x", code)
	if !record.IncludeTypeDefs {
		t.Errorf(`Parse invalid %s -> IncludeTypeDefs false, should be true`, codeToString(code))
	}
	if len(record.Names) != 2 ||
		record.Names[0].Name != "A" || !record.Names[0].IsTypeOnly ||
		record.Names[1].Name != "B" || record.Names[1].IsTypeOnly {
		t.Errorf(`Parse invalid %s -> %s`, codeToString(code), namesToString(record.Names))
	}
	if len(record.Positions) != 2 {
		t.Errorf(`Parse invalid %s -> %d positions, should be 2`, codeToString(code), len(record.Positions))
	}
}

func TestParseRepeatedImportDeduplicatesNames(t *testing.T) {
	code := "import React from 'react';\nimport React from 'react';"

	result := parseJSForTests(code)

	record := singleRecord(t, result.Externals, "react", code)
	if len(record.Names) != 1 {
		t.Errorf(`Parse invalid %s -> %s`, codeToString(code), namesToString(record.Names))
	}
	if len(record.Positions) != 2 {
		t.Errorf(`Parse invalid %s -> %d positions, should be 2`, codeToString(code), len(record.Positions))
	}
}

func TestParseExportFrom(t *testing.T) {
	code := `export { A, B as C } from './mod'`

	result := parseJSForTests(code)

	record := singleRecord(t, result.Relative, "./mod", code)
	if len(record.Names) != 2 || record.Names[1].Alias != "C" {
		t.Errorf(`Parse invalid %s -> %s`, codeToString(code), namesToString(record.Names))
	}
}

func TestParseExportStarFrom(t *testing.T) {
	code := `export * from './mod'`

	result := parseJSForTests(code)

	record := singleRecord(t, result.Relative, "./mod", code)
	if len(record.Names) != 1 || record.Names[0].Name != "*" || record.Names[0].Kind != NamespaceImport {
		t.Errorf(`Parse invalid %s -> %s`, codeToString(code), namesToString(record.Names))
	}
}

func TestParseExportTypeFrom(t *testing.T) {
	code := `export type { Props } from './types'`

	result := parseJSForTests(code)

	record := singleRecord(t, result.Relative, "./types", code)
	if !record.IncludeTypeDefs {
		t.Errorf(`Parse invalid %s -> IncludeTypeDefs false, should be true`, codeToString(code))
	}
}

func TestParseLocalExportNotRecorded(t *testing.T) {
	code := "export const x = 1;\nexport function f() { return 2 }"

	result := parseJSForTests(code)

	if len(result.Relative) != 0 || len(result.Externals) != 0 {
		t.Errorf(`Parse invalid %s -> should produce no records`, codeToString(code))
	}
}

func TestParseLocalBraceExportNotRecorded(t *testing.T) {
	code := "const a = 1;\nexport { a };"

	result := parseJSForTests(code)

	if len(result.Relative) != 0 || len(result.Externals) != 0 {
		t.Errorf(`Parse invalid %s -> should produce no records`, codeToString(code))
	}
}

func TestParseImportInsideStringIgnored(t *testing.T) {
	code := `const s = "import A from './fake'";`

	result := parseJSForTests(code)

	if len(result.Relative) != 0 || len(result.Externals) != 0 {
		t.Errorf(`Parse invalid %s -> should produce no records`, codeToString(code))
	}
}

func TestParseImportInsideTemplateIgnored(t *testing.T) {
	code := "const s = `\nimport A from './fake'\n`;"

	result := parseJSForTests(code)

	if len(result.Relative) != 0 || len(result.Externals) != 0 {
		t.Errorf(`Parse invalid %s -> should produce no records`, codeToString(code))
	}
}

func TestParseImportInsideCommentIgnored(t *testing.T) {
	code := "// import A from './fake'\n/* import B from './fake' */"

	result := parseJSForTests(code)

	if len(result.Relative) != 0 || len(result.Externals) != 0 {
		t.Errorf(`Parse invalid %s -> should produce no records`, codeToString(code))
	}
}

func TestParseDecoratorLikeImportIgnored(t *testing.T) {
	code := `@import './decorated'`

	result := parseJSForTests(code)

	if len(result.Relative) != 0 || len(result.Externals) != 0 {
		t.Errorf(`Parse invalid %s -> should produce no records`, codeToString(code))
	}
}

func TestParseMalformedImportSkipped(t *testing.T) {
	code := `import A form './typo'`

	result := parseJSForTests(code)

	if len(result.Relative) != 0 || len(result.Externals) != 0 {
		t.Errorf(`Parse invalid %s -> should produce no records`, codeToString(code))
	}
}

func TestParseMultilineNamedImports(t *testing.T) {
	code := "import {\n  A,\n  B as C,\n} from './mod'"

	result := parseJSForTests(code)

	record := singleRecord(t, result.Relative, "./mod", code)
	if len(record.Names) != 2 || record.Names[1].Alias != "C" {
		t.Errorf(`Parse invalid %s -> %s`, codeToString(code), namesToString(record.Names))
	}
}

func TestParseRelativeResolvedToFileURL(t *testing.T) {
	code := `import Foo from '../lib/Foo'`

	result := parseJSForTests(code)

	record := singleRecord(t, result.Relative, "../lib/Foo", code)
	if record.ResolvedURL != "file:///app/lib/Foo" {
		t.Errorf(`Parse invalid %s -> resolved %q, should be file:///app/lib/Foo`, codeToString(code), record.ResolvedURL)
	}
}

func TestParseExternalHasNoResolvedURL(t *testing.T) {
	code := `import React from 'react'`

	result := parseJSForTests(code)

	record := singleRecord(t, result.Externals, "react", code)
	if record.ResolvedURL != "" {
		t.Errorf(`Parse invalid %s -> resolved %q, should be empty`, codeToString(code), record.ResolvedURL)
	}
}

func TestParsePathPositionsSliceToQuotedPath(t *testing.T) {
	code := "import React from 'react';\nimport Foo from \"./Foo\";"

	result := parseJSForTests(code)

	for _, records := range []map[string]*ImportRecord{result.Relative, result.Externals} {
		for _, record := range records {
			for _, pos := range record.Positions {
				got := code[pos.Start:pos.End]
				want1 := `'` + record.Path + `'`
				want2 := `"` + record.Path + `"`
				if got != want1 && got != want2 {
					t.Errorf("position [%d:%d) sliced %q, should be the quoted path %q", pos.Start, pos.End, got, record.Path)
				}
			}
		}
	}
}
