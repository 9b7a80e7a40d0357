package main

import (
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
)

// ToPortablePath converts a file:// URL or a bare filesystem path into the
// canonical internal form: forward slashes, a leading '/', Windows drive
// letters kept as "/C:/...". All path joining downstream works on this form,
// so the logic behaves identically on every platform.
// Examples:
//   - "file:///C:/project/src/file.ts" -> "/C:/project/src/file.ts"
//   - "C:\\project\\src\\file.ts"      -> "/C:/project/src/file.ts"
//   - "/home/user/app.ts"              -> "/home/user/app.ts"
func ToPortablePath(p string) string {
	p = strings.TrimPrefix(p, "file://")
	p = strings.ReplaceAll(p, "\\", "/")
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

// ToFileURL renders a portable path as a file:// URL.
func ToFileURL(portable string) string {
	return "file://" + portable
}

// ResolveRelativeImport resolves a relative specifier against the directory
// of the importing file and returns the target as a file:// URL.
func ResolveRelativeImport(importerPortable, spec string) string {
	return ToFileURL(path.Join(path.Dir(importerPortable), spec))
}

// FromPortablePath converts an internal portable path back to the OS-native
// form for os.* calls. On Windows the leading slash before a drive letter is
// dropped and separators flipped back.
func FromPortablePath(portable string) string {
	if runtime.GOOS != "windows" {
		return portable
	}
	p := portable
	if len(p) >= 3 && p[0] == '/' && p[2] == ':' {
		p = p[1:]
	}
	return filepath.FromSlash(p)
}

// ResolveAbsoluteCwd makes a --cwd flag value absolute against the process
// working directory.
func ResolveAbsoluteCwd(cwd string) string {
	if filepath.IsAbs(cwd) {
		return cwd
	}
	execDir, _ := os.Getwd()
	return filepath.Join(execDir, cwd)
}
