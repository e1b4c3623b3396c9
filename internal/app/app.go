// Package app implements the application layer for tsinfer.
package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"go.trai.ch/tsinfer/internal/adapters/config"
	"go.trai.ch/tsinfer/internal/adapters/fs"
	"go.trai.ch/tsinfer/internal/core/domain"
	"go.trai.ch/tsinfer/internal/core/ports"
	"go.trai.ch/tsinfer/internal/engine/infer"
	"go.trai.ch/zerr"
)

// discoveryIgnores are directory names pruned during config file discovery.
var discoveryIgnores = []string{"node_modules", "dist", ".tsinfer"}

// App represents the main application logic: discover the workspace's
// tsconfig files and derive task definitions for each of them.
type App struct {
	engine    *infer.Engine
	walker    *fs.Walker
	store     ports.MetadataStore
	telemetry ports.Telemetry
	log       ports.Logger
}

// New creates a new App instance.
func New(
	engine *infer.Engine,
	walker *fs.Walker,
	store ports.MetadataStore,
	telemetry ports.Telemetry,
	log ports.Logger,
) *App {
	return &App{
		engine:    engine,
		walker:    walker,
		store:     store,
		telemetry: telemetry,
		log:       log,
	}
}

// SetStore replaces the metadata store. The CLI uses this to honor cache
// location overrides and the no-cache flag.
func (a *App) SetStore(store ports.MetadataStore) {
	a.store = store
	a.engine.SetStore(store)
}

// SetTelemetry replaces the telemetry recorder. The CLI uses this to enable
// progress output.
func (a *App) SetTelemetry(telemetry ports.Telemetry) {
	a.telemetry = telemetry
}

// RunOptions parameterize one batch run.
type RunOptions struct {
	// Options are the derivation options applied to every discovered config.
	Options domain.PlanOptions

	// NamedInputs are the named input set names defined by the host
	// orchestrator.
	NamedInputs []string

	// Workers bounds derivation parallelism. Zero means unbounded.
	Workers int
}

// Plan derives task definitions for every tsconfig file in the workspace.
// Individual file failures are collected per file; they never abort the
// batch or fail sibling files.
func (a *App) Plan(ctx context.Context, workspaceRoot string, opts RunOptions) (*domain.BatchResult, error) {
	root, err := filepath.Abs(workspaceRoot)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to resolve workspace root")
	}

	named := config.NewNamedInputSet(opts.NamedInputs...)
	optionsHash, err := a.engine.OptionsHash(opts.Options, named)
	if err != nil {
		return nil, err
	}
	if err := a.store.Load(optionsHash); err != nil {
		return nil, zerr.Wrap(err, "failed to load metadata cache")
	}

	configs := a.discoverConfigs(root)
	a.log.Debug(fmt.Sprintf("discovered %d config files", len(configs)))

	result := &domain.BatchResult{
		Projects: domain.Projects{},
		Errors:   make(map[string]string),
	}
	var mu sync.Mutex

	var group errgroup.Group
	if opts.Workers > 0 {
		group.SetLimit(opts.Workers)
	}
	for _, configPath := range configs {
		group.Go(func() error {
			rel, relErr := filepath.Rel(root, configPath)
			if relErr != nil {
				rel = configPath
			}
			rel = filepath.ToSlash(rel)

			vctx, vertex := a.telemetry.Record(ctx, rel)
			projects, cached, err := a.engine.PlanConfigFile(vctx, root, configPath, opts.Options, named)
			if cached {
				vertex.Cached()
			}
			vertex.Complete(err)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				a.log.Error(err)
				result.Errors[rel] = err.Error()
				return nil
			}
			result.Projects.Merge(projects)
			return nil
		})
	}
	_ = group.Wait()

	if err := a.store.Flush(); err != nil {
		return nil, zerr.Wrap(err, "failed to flush metadata cache")
	}
	if err := a.telemetry.Close(); err != nil {
		a.log.Warn(fmt.Sprintf("failed to close telemetry: %v", err))
	}
	return result, nil
}

// discoverConfigs returns every tsconfig file under root in walk order,
// skipping dependency and output directories.
func (a *App) discoverConfigs(root string) []string {
	var configs []string
	for path := range a.walker.WalkFiles(root, discoveryIgnores) {
		if isConfigFile(filepath.Base(path)) {
			configs = append(configs, path)
		}
	}
	return configs
}

// isConfigFile matches the canonical config name and its dotted variants
// (tsconfig.lib.json, tsconfig.spec.json, ...).
func isConfigFile(base string) bool {
	return strings.HasPrefix(base, "tsconfig.") && strings.HasSuffix(base, ".json")
}
