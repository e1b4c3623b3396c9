package infer

import (
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.trai.ch/tsinfer/internal/core/domain"
	"go.trai.ch/tsinfer/internal/core/ports"
)

// compilerPackage always participates in the external dependency marker: the
// derived commands invoke it, so its version influences every result.
const compilerPackage = "typescript"

// pattern is a unit-root-relative glob pattern together with the config that
// declared it. The declaring config matters for exclude reconciliation.
type pattern struct {
	glob   string
	source string
}

// deriveInputs computes the ordered cache input specifier list for a target.
//
// Include and exclude patterns of every involved config are translated to
// unit-root-relative form. An exclude is dropped when an include declared by
// a different involved config overlaps it, because that sibling legitimately
// still covers the excluded files. Without any include patterns the deriver
// falls back to a coarse named input set. Cross-unit consumption is
// represented either by the declaration outputs of dependency tasks (when
// any external reference exists in the internal closure) or by the upstream
// named input set.
func deriveInputs(
	unitRoot string,
	involved []*domain.TsConfig,
	hasExternal bool,
	externalPackages []string,
	named ports.NamedInputs,
) []domain.Input {
	includes, excludes := translatePatterns(unitRoot, involved)

	var inputs []domain.Input
	for _, inc := range includes {
		inputs = append(inputs, domain.PathInput(inc.glob))
	}
	for _, exc := range excludes {
		if reclaimedBySibling(exc, includes) {
			continue
		}
		inputs = append(inputs, domain.ExcludeInput(exc.glob))
	}

	if len(includes) == 0 {
		// Without explicit includes per-file tracking is unreliable; fall
		// back to coarse-grained caching.
		inputs = []domain.Input{domain.PathInput(defaultNamedInput(named))}
	}

	if hasExternal {
		inputs = append(inputs, domain.DependentOutputsInput("**/*.d.ts", false))
	} else {
		inputs = append(inputs, domain.PathInput("^"+defaultNamedInput(named)))
	}

	inputs = append(inputs, domain.ExternalDependenciesInput(externalDependencies(externalPackages)))
	return inputs
}

// translatePatterns rebases every involved config's raw include and exclude
// patterns onto the unit root. Configs outside the unit (extended bases above
// the unit root) contribute no patterns: their globs cannot be expressed
// relative to the unit.
func translatePatterns(unitRoot string, involved []*domain.TsConfig) (includes, excludes []pattern) {
	seen := make(map[string]struct{})
	for _, cfg := range involved {
		if _, dup := seen[cfg.Path]; dup {
			continue
		}
		seen[cfg.Path] = struct{}{}

		offset := relSlash(unitRoot, cfg.Dir())
		if offset == ".." || strings.HasPrefix(offset, "../") {
			continue
		}
		for _, inc := range cfg.RawInclude {
			includes = append(includes, pattern{glob: joinPattern(offset, inc), source: cfg.Path})
		}
		for _, exc := range cfg.RawExclude {
			excludes = append(excludes, pattern{glob: joinPattern(offset, exc), source: cfg.Path})
		}
	}
	return includes, excludes
}

// reclaimedBySibling reports whether an exclude overlaps an include declared
// by a different config. Containment is checked in both directions since
// either pattern may be the broader one.
func reclaimedBySibling(exc pattern, includes []pattern) bool {
	for _, inc := range includes {
		if inc.source == exc.source {
			continue
		}
		if patternsOverlap(inc.glob, exc.glob) {
			return true
		}
	}
	return false
}

func patternsOverlap(a, b string) bool {
	if matched, err := doublestar.Match(a, b); err == nil && matched {
		return true
	}
	if matched, err := doublestar.Match(b, a); err == nil && matched {
		return true
	}
	return false
}

// defaultNamedInput prefers the production set when the orchestrator defines
// one, since it excludes test sources from cache keys.
func defaultNamedInput(named ports.NamedInputs) string {
	if named.Defined("production") {
		return "production"
	}
	return "default"
}

// externalDependencies returns the sorted, deduplicated external package
// marker contents, always including the compiler itself.
func externalDependencies(packages []string) []string {
	deps := make([]string, 0, len(packages)+1)
	deps = append(deps, compilerPackage)
	deps = append(deps, packages...)
	slices.Sort(deps)
	return slices.Compact(deps)
}
