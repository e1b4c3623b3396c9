package infer

import (
	"errors"
	"os"
	"path/filepath"

	"go.trai.ch/tsinfer/internal/core/domain"
	"go.trai.ch/tsinfer/internal/core/ports"
)

// Walker traverses the references graph and extends chains of tsconfig
// records. All traversals are cycle-safe through a visited set keyed by
// resolved reference path; every node is visited at most once per traversal.
type Walker struct {
	loader   ports.ConfigLoader
	resolver ports.ModuleResolver
}

// NewWalker creates a Walker on top of the given loader and resolver.
func NewWalker(loader ports.ConfigLoader, resolver ports.ModuleResolver) *Walker {
	return &Walker{loader: loader, resolver: resolver}
}

// visitSignal steers the generic reference walk.
type visitSignal int

const (
	// descend continues into the visited config's own references.
	descend visitSignal = iota
	// prune visits the config but does not descend past it.
	prune
)

// errStopWalk short-circuits a walk from inside a visit function.
var errStopWalk = errors.New("stop walk")

// walkReferences visits every reachable reference of cfg exactly once.
// References that do not exist on disk are skipped silently; parse failures
// of referenced configs propagate.
func (w *Walker) walkReferences(
	cfg *domain.TsConfig,
	visited map[string]struct{},
	visit func(path string, ref *domain.TsConfig) (visitSignal, error),
) error {
	for _, ref := range cfg.References {
		resolved := ResolveReferencePath(ref)
		if _, seen := visited[resolved]; seen {
			continue
		}
		visited[resolved] = struct{}{}

		loaded, err := w.loader.Load(resolved)
		if err != nil {
			if errors.Is(err, domain.ErrConfigNotFound) {
				continue
			}
			return err
		}

		sig, err := visit(resolved, loaded)
		if err != nil {
			return err
		}
		if sig == descend {
			if err := w.walkReferences(loaded, visited, visit); err != nil {
				return err
			}
		}
	}
	return nil
}

// CollectInternal returns every transitively referenced config that stays
// inside the unit. External references prune their branch: the walk never
// descends into another unit's subtree.
func (w *Walker) CollectInternal(cfg *domain.TsConfig, unitRoot string) ([]*domain.TsConfig, error) {
	var internal []*domain.TsConfig
	visited := make(map[string]struct{})
	err := w.walkReferences(cfg, visited, func(path string, ref *domain.TsConfig) (visitSignal, error) {
		if Classify(path, unitRoot) == External {
			return prune, nil
		}
		internal = append(internal, ref)
		return descend, nil
	})
	if err != nil {
		return nil, err
	}
	return internal, nil
}

// CollectExternalShallow returns the external references sitting directly on
// the unit's internal reference closure, without descending past them.
func (w *Walker) CollectExternalShallow(cfg *domain.TsConfig, unitRoot string) ([]*domain.TsConfig, error) {
	var external []*domain.TsConfig
	visited := make(map[string]struct{})
	err := w.walkReferences(cfg, visited, func(path string, ref *domain.TsConfig) (visitSignal, error) {
		if Classify(path, unitRoot) == External {
			external = append(external, ref)
			return prune, nil
		}
		return descend, nil
	})
	if err != nil {
		return nil, err
	}
	return external, nil
}

// HasExternalReference reports whether any external reference exists at any
// depth of the internal closure, short-circuiting on the first hit. The
// caller owns the visited set, so repeated probes over a shared graph stay
// cycle-safe and amortized across invocations.
func (w *Walker) HasExternalReference(cfg *domain.TsConfig, unitRoot string, visited map[string]struct{}) (bool, error) {
	found := false
	err := w.walkReferences(cfg, visited, func(path string, ref *domain.TsConfig) (visitSignal, error) {
		if Classify(path, unitRoot) == External {
			found = true
			return prune, errStopWalk
		}
		return descend, nil
	})
	if err != nil && !errors.Is(err, errStopWalk) {
		return false, err
	}
	return found, nil
}

// ExtendedConfigFiles flattens cfg's extends chain iteratively: every
// intermediate file, and every external package name crossed during
// resolution. A bare specifier records its package and terminates that
// branch; resolution failures terminate silently.
func (w *Walker) ExtendedConfigFiles(cfg *domain.TsConfig) domain.ExtendedConfigs {
	var result domain.ExtendedConfigs
	seenFiles := map[string]struct{}{cfg.Path: {}}
	seenPackages := make(map[string]struct{})

	type pending struct {
		specifier string
		fromDir   string
	}
	queue := make([]pending, 0, len(cfg.Extends))
	for _, spec := range cfg.Extends {
		queue = append(queue, pending{specifier: spec, fromDir: cfg.Dir()})
	}

	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]

		if !isRelativeSpecifier(next.specifier) {
			res, err := w.resolver.Resolve(next.specifier, next.fromDir)
			if err != nil {
				continue
			}
			if _, seen := seenPackages[res.Package]; !seen && res.Package != "" {
				seenPackages[res.Package] = struct{}{}
				result.Packages = append(result.Packages, res.Package)
			}
			continue
		}

		file := resolveRelativeExtends(next.fromDir, next.specifier)
		if file == "" {
			continue
		}
		if _, seen := seenFiles[file]; seen {
			continue
		}
		seenFiles[file] = struct{}{}
		result.Files = append(result.Files, file)

		base, err := w.loader.Load(file)
		if err != nil {
			continue
		}
		for _, spec := range base.Extends {
			queue = append(queue, pending{specifier: spec, fromDir: base.Dir()})
		}
	}

	return result
}

// ResolveReferencePath resolves a reference entry to a concrete config file
// path, appending the default config filename when the reference names a
// directory.
func ResolveReferencePath(ref string) string {
	if info, err := os.Stat(ref); err == nil && info.IsDir() {
		return filepath.Join(ref, "tsconfig.json")
	}
	return ref
}
