package infer

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/tsinfer/internal/core/domain"
	"go.trai.ch/tsinfer/internal/core/ports"
	"go.trai.ch/zerr"
)

// frameworkConfigNames mark units whose build pipeline is owned by a bundler
// instead of the compiler. Such units get no derived targets.
var frameworkConfigNames = []string{
	"vite.config.ts", "vite.config.js",
	"vite.config.mts", "vite.config.mjs",
	"vite.config.cts", "vite.config.cjs",
}

// Engine derives task definitions for single tsconfig files. It is safe for
// concurrent use; all mutable state lives in the injected collaborators.
type Engine struct {
	loader ports.ConfigLoader
	walker *Walker
	hasher ports.FileHasher
	store  ports.MetadataStore
	pm     ports.PackageManager
	log    ports.Logger
}

// NewEngine creates an Engine on top of the injected ports.
func NewEngine(
	loader ports.ConfigLoader,
	resolver ports.ModuleResolver,
	hasher ports.FileHasher,
	store ports.MetadataStore,
	pm ports.PackageManager,
	log ports.Logger,
) *Engine {
	return &Engine{
		loader: loader,
		walker: NewWalker(loader, resolver),
		hasher: hasher,
		store:  store,
		pm:     pm,
		log:    log,
	}
}

// SetStore replaces the metadata store. Called before any derivation runs,
// never concurrently with PlanConfigFile.
func (e *Engine) SetStore(store ports.MetadataStore) {
	e.store = store
}

// OptionsHash digests the derivation options together with the defined named
// input set names. It partitions the metadata cache: results derived under
// different options never collide.
func (e *Engine) OptionsHash(opts domain.PlanOptions, named ports.NamedInputs) (string, error) {
	payload, err := json.Marshal(opts)
	if err != nil {
		return "", zerr.Wrap(err, "failed to marshal derivation options")
	}

	h := xxhash.New()
	h.Write(payload)
	h.Write([]byte{0})
	for _, name := range named.Names() {
		h.WriteString(name)
		h.Write([]byte{0})
	}
	return fmt.Sprintf("%016x", h.Sum64()), nil
}

// PlanConfigFile derives the task definitions for one tsconfig file. The
// returned bool reports whether the result came from the metadata cache.
//
// Files that cannot own targets short-circuit to an empty result: configs at
// the workspace root, configs without a unit descriptor next to them,
// secondary configs without a canonical sibling, and units driven by a
// bundler config.
func (e *Engine) PlanConfigFile(
	ctx context.Context,
	workspaceRoot, configPath string,
	opts domain.PlanOptions,
	named ports.NamedInputs,
) (domain.Projects, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	unitRoot := filepath.Dir(configPath)
	base := filepath.Base(configPath)

	wantTypecheck := opts.TypecheckEnabled() && base == CanonicalConfigName
	wantBuild := opts.BuildEnabled() && base == opts.BuildConfigName
	if !wantTypecheck && !wantBuild {
		return domain.Projects{}, false, nil
	}
	if sameDir(unitRoot, workspaceRoot) || !hasUnitMarker(unitRoot) {
		return domain.Projects{}, false, nil
	}
	if base != CanonicalConfigName && !fileExists(filepath.Join(unitRoot, CanonicalConfigName)) {
		return domain.Projects{}, false, nil
	}
	if hasFrameworkConfig(unitRoot) {
		return domain.Projects{}, false, nil
	}

	cfg, err := e.loader.Load(configPath)
	if err != nil {
		return nil, false, zerr.With(zerr.Wrap(err, "failed to load config"), "path", configPath)
	}

	internal, err := e.walker.CollectInternal(cfg, unitRoot)
	if err != nil {
		return nil, false, zerr.With(zerr.Wrap(err, "failed to collect internal references"), "path", configPath)
	}
	shallowExternal, err := e.walker.CollectExternalShallow(cfg, unitRoot)
	if err != nil {
		return nil, false, zerr.With(zerr.Wrap(err, "failed to collect external references"), "path", configPath)
	}
	visited := make(map[string]struct{})
	hasExternal, err := e.walker.HasExternalReference(cfg, unitRoot, visited)
	if err != nil {
		return nil, false, zerr.With(zerr.Wrap(err, "failed to probe external references"), "path", configPath)
	}

	extended := e.extendedClosure(cfg, internal)

	// The unit descriptor gates build-target validation, so its content must
	// invalidate build derivations. Typecheck derivations never read it.
	descriptorPath := ""
	if wantBuild {
		descriptorPath = filepath.Join(unitRoot, "package.json")
	}

	key, err := e.cacheKey(workspaceRoot, configPath, descriptorPath, opts, named, internal, shallowExternal, extended.Files)
	if err != nil {
		return nil, false, err
	}
	if cached, ok := e.store.Get(key); ok {
		return cached, true, nil
	}

	involvedInputs := append([]*domain.TsConfig{cfg}, internal...)
	for _, file := range extended.Files {
		loaded, err := e.loader.Load(file)
		if err != nil {
			e.log.Warn(fmt.Sprintf("skipping unreadable extended config %s: %v", file, err))
			continue
		}
		involvedInputs = append(involvedInputs, loaded)
	}
	inputs := deriveInputs(unitRoot, involvedInputs, hasExternal, extended.Packages, named)
	outputs := deriveOutputs(unitRoot, append([]*domain.TsConfig{cfg}, internal...))

	noEmit := cfg.Options.NoEmit || anyNoEmit(internal) || anyNoEmit(shallowExternal)
	cwd := relSlash(workspaceRoot, unitRoot)

	targets := make(map[string]domain.TaskDefinition)
	if wantTypecheck {
		targets[opts.TypecheckTargetName] = newTarget(
			opts.TypecheckTargetName,
			typecheckCommand(noEmit, opts.Verbose),
			cwd,
			"Runs type-checking for the project.",
			inputs,
			outputs,
		)
	}
	if wantBuild {
		pkg, err := e.pm.ReadPackage(unitRoot)
		if err != nil {
			return nil, false, zerr.With(zerr.Wrap(err, "failed to read unit descriptor"), "dir", unitRoot)
		}
		if buildOutputsValid(cfg, unitRoot, pkg) {
			targets[opts.BuildTargetName] = newTarget(
				opts.BuildTargetName,
				buildCommand(base, opts.Verbose),
				cwd,
				"Builds the project with tsc.",
				inputs,
				outputs,
			)
		}
	}

	projects := domain.Projects{}
	if len(targets) > 0 {
		projects[cwd] = domain.ProjectMetadata{
			ProjectType: "library",
			Targets:     targets,
		}
	}
	e.store.Put(key, projects)
	return projects, false, nil
}

// extendedClosure unions the extends chains of the root config and its
// internal reference closure.
func (e *Engine) extendedClosure(cfg *domain.TsConfig, internal []*domain.TsConfig) domain.ExtendedConfigs {
	var result domain.ExtendedConfigs
	seenFiles := make(map[string]struct{})
	seenPackages := make(map[string]struct{})

	merge := func(ext domain.ExtendedConfigs) {
		for _, file := range ext.Files {
			if _, seen := seenFiles[file]; !seen {
				seenFiles[file] = struct{}{}
				result.Files = append(result.Files, file)
			}
		}
		for _, pkg := range ext.Packages {
			if _, seen := seenPackages[pkg]; !seen {
				seenPackages[pkg] = struct{}{}
				result.Packages = append(result.Packages, pkg)
			}
		}
	}

	merge(e.walker.ExtendedConfigFiles(cfg))
	for _, ic := range internal {
		merge(e.walker.ExtendedConfigFiles(ic))
	}
	return result
}

// cacheKey composes the digest of every influencing file with the options
// hash and the config path. A change to any of the three invalidates the
// cached result.
func (e *Engine) cacheKey(
	workspaceRoot, configPath, descriptorPath string,
	opts domain.PlanOptions,
	named ports.NamedInputs,
	internal, shallowExternal []*domain.TsConfig,
	extendedFiles []string,
) (string, error) {
	influencing := make([]string, 0, 3+len(extendedFiles)+len(internal)+len(shallowExternal))
	influencing = append(influencing, configPath)
	if descriptorPath != "" {
		influencing = append(influencing, descriptorPath)
	}
	influencing = append(influencing, extendedFiles...)
	for _, cfg := range internal {
		influencing = append(influencing, cfg.Path)
	}
	for _, cfg := range shallowExternal {
		influencing = append(influencing, cfg.Path)
	}
	influencing = append(influencing, filepath.Join(workspaceRoot, e.pm.LockfileName(workspaceRoot)))

	filesDigest, err := e.hasher.HashFiles(influencing)
	if err != nil {
		return "", zerr.Wrap(err, "failed to hash influencing files")
	}
	optionsHash, err := e.OptionsHash(opts, named)
	if err != nil {
		return "", err
	}

	h := xxhash.New()
	h.WriteString(filesDigest)
	h.Write([]byte{0})
	h.WriteString(optionsHash)
	h.Write([]byte{0})
	h.WriteString(configPath)
	return fmt.Sprintf("%016x", h.Sum64()), nil
}

func anyNoEmit(configs []*domain.TsConfig) bool {
	for _, cfg := range configs {
		if cfg.Options.NoEmit {
			return true
		}
	}
	return false
}

// hasFrameworkConfig reports whether the unit carries a bundler config that
// takes over the build pipeline.
func hasFrameworkConfig(dir string) bool {
	for _, name := range frameworkConfigNames {
		if fileExists(filepath.Join(dir, name)) {
			return true
		}
	}
	return false
}
