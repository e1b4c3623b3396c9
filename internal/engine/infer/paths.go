package infer

import (
	"os"
	"path"
	"path/filepath"
	"strings"
)

// isRelativeSpecifier reports whether an extends specifier is a relative
// path rather than a bare importable-package specifier.
func isRelativeSpecifier(spec string) bool {
	return strings.HasPrefix(spec, "./") || strings.HasPrefix(spec, "../") ||
		spec == "." || spec == ".."
}

// resolveRelativeExtends resolves a relative extends specifier to an existing
// file, appending .json when the bare form is missing. Returns "" when
// nothing exists.
func resolveRelativeExtends(fromDir, spec string) string {
	candidate := filepath.Clean(filepath.Join(fromDir, spec))
	if fileExists(candidate) {
		return candidate
	}
	if !strings.HasSuffix(candidate, ".json") && fileExists(candidate+".json") {
		return candidate + ".json"
	}
	return ""
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}

// relSlash returns p relative to base in slash form, falling back to the
// slashed absolute path when no relative form exists.
func relSlash(base, p string) string {
	rel, err := filepath.Rel(base, p)
	if err != nil {
		return filepath.ToSlash(p)
	}
	return filepath.ToSlash(rel)
}

// joinPattern prefixes a glob pattern with a directory offset, keeping the
// pattern untouched when the offset is the unit root itself.
func joinPattern(offset, pattern string) string {
	if offset == "" || offset == "." {
		return path.Clean(filepath.ToSlash(pattern))
	}
	return path.Join(filepath.ToSlash(offset), filepath.ToSlash(pattern))
}

// within reports whether p is dir or lies under dir.
func within(dir, p string) bool {
	rel, err := filepath.Rel(dir, p)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func sameDir(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}
