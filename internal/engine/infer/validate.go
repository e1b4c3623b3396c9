package infer

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.trai.ch/tsinfer/internal/core/domain"
)

// typeOnlyCondition is the conditional-export key that carries declaration
// files rather than runnable entry points.
const typeOnlyCondition = "types"

var sourceFileExtensions = []string{".ts", ".tsx", ".mts", ".cts"}

// buildOutputsValid checks that the unit's package descriptor points at
// compiled output rather than at the source tree. A build target derived for
// a unit whose packaging consumes sources directly would have meaningless
// outputs, so no build target is emitted for it. Absence of a descriptor is
// automatically valid.
//
// Candidate precedence: the "." export, then the remaining export entries
// (skipping the pure type-declaration condition), then the legacy main and
// module fields. The first candidate that yields a path decides.
func buildOutputsValid(cfg *domain.TsConfig, unitRoot string, pkg *domain.PackageJSON) bool {
	if pkg == nil {
		return true
	}
	for _, candidate := range entryPointCandidates(pkg) {
		if candidate == "" {
			continue
		}
		return !isSourcePath(cfg, unitRoot, candidate)
	}
	return true
}

func entryPointCandidates(pkg *domain.PackageJSON) []string {
	var candidates []string

	switch exports := pkg.Exports.(type) {
	case string:
		candidates = append(candidates, exports)
	case map[string]any:
		if dot, ok := exports["."]; ok {
			candidates = append(candidates, exportPath(dot))
		}
		keys := make([]string, 0, len(exports))
		for key := range exports {
			if key != "." {
				keys = append(keys, key)
			}
		}
		slices.Sort(keys)
		for _, key := range keys {
			candidates = append(candidates, exportPath(exports[key]))
		}
	}

	return append(candidates, pkg.Main, pkg.Module)
}

// exportPath extracts the entry path from one export entry, which is either
// a plain path or a conditional map whose non-"types" conditions carry paths.
func exportPath(entry any) string {
	switch value := entry.(type) {
	case string:
		return value
	case map[string]any:
		keys := make([]string, 0, len(value))
		for key := range value {
			keys = append(keys, key)
		}
		slices.Sort(keys)
		for _, key := range keys {
			if key == typeOnlyCondition {
				continue
			}
			if p := exportPath(value[key]); p != "" {
				return p
			}
		}
	}
	return ""
}

// isSourcePath reports whether a descriptor path points into the config's
// source tree. Paths under the configured output location are never source;
// otherwise membership in the covered file list or an include pattern match
// on a source extension marks the path as source.
func isSourcePath(cfg *domain.TsConfig, unitRoot, p string) bool {
	abs := filepath.Clean(filepath.Join(unitRoot, filepath.FromSlash(p)))

	if cfg.Options.OutFile != "" && within(filepath.Dir(cfg.Options.OutFile), abs) {
		return false
	}
	if cfg.Options.OutDir != "" && within(cfg.Options.OutDir, abs) {
		return false
	}

	for _, f := range cfg.FileNames {
		if f.String() == abs {
			return true
		}
	}

	if !hasSourceFileExtension(abs) {
		return false
	}

	rel := relSlash(cfg.Dir(), abs)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return false
	}

	includes := cfg.RawInclude
	if len(includes) == 0 {
		includes = []string{"**/*"}
	}
	for _, inc := range includes {
		pat := filepath.ToSlash(inc)
		if !strings.ContainsAny(pat, "*?[{") {
			pat += "/**"
		}
		if matched, err := doublestar.Match(pat, rel); err == nil && matched {
			return true
		}
	}
	return false
}

func hasSourceFileExtension(p string) bool {
	for _, ext := range sourceFileExtensions {
		if strings.HasSuffix(p, ext) {
			return true
		}
	}
	return false
}
