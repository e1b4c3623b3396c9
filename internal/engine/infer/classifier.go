package infer

import (
	"os"
	"path/filepath"
	"strings"
)

// Classification of a project reference relative to the owning unit.
type Classification int

const (
	// Internal references stay within the owning unit's boundary.
	Internal Classification = iota
	// External references belong to another unit or leave the unit entirely.
	External
)

// unitMarkers identify a directory as the root of a buildable unit.
var unitMarkers = []string{"package.json", "project.json"}

// Classify decides whether the referenced config belongs to the unit rooted
// at unitRoot. A reference is external when its directory lies outside the
// unit root, or when any directory between it and the unit root (inclusive of
// the referenced directory, exclusive of the root) carries a unit marker and
// therefore belongs to a nested unit.
func Classify(referencedConfigPath, unitRoot string) Classification {
	dir := referencedDir(referencedConfigPath)

	rel, err := filepath.Rel(unitRoot, dir)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return External
	}

	for d := dir; d != unitRoot; d = filepath.Dir(d) {
		if hasUnitMarker(d) {
			return External
		}
		if filepath.Dir(d) == d {
			break
		}
	}
	return Internal
}

// referencedDir resolves the directory a reference points into: the path
// itself when it is (or looks like) a directory, its parent otherwise.
func referencedDir(path string) string {
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			return path
		}
		return filepath.Dir(path)
	}
	// Broken references still classify by shape.
	if strings.HasSuffix(path, ".json") {
		return filepath.Dir(path)
	}
	return path
}

// hasUnitMarker reports whether dir contains a unit-descriptor file.
func hasUnitMarker(dir string) bool {
	for _, marker := range unitMarkers {
		if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && !info.IsDir() {
			return true
		}
	}
	return false
}
