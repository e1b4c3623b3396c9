package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
)

// Walker walks directory trees during configuration file discovery.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields all files under root, pruning .git, .jj, and any directory
// whose name matches an ignore pattern. Yielded paths start with root, as
// produced by filepath.WalkDir.
func (w *Walker) WalkFiles(root string, ignores []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Unreadable subtrees are skipped, not fatal: discovery over a
				// partially-migrated workspace must not abort on one bad dir.
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if skip := w.shouldSkip(d, ignores); skip != nil {
				return skip
			}

			if d.IsDir() {
				return nil
			}

			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// shouldSkip returns filepath.SkipDir for pruned directories, nil otherwise.
func (w *Walker) shouldSkip(d fs.DirEntry, ignores []string) error {
	if !d.IsDir() {
		return nil
	}

	name := d.Name()
	if name == ".git" || name == ".jj" {
		return filepath.SkipDir
	}

	for _, ignore := range ignores {
		if matched, _ := filepath.Match(ignore, name); matched {
			return filepath.SkipDir
		}
	}
	return nil
}
