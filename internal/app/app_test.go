package app_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tsinfer/internal/adapters/cache"
	"go.trai.ch/tsinfer/internal/adapters/fs"
	"go.trai.ch/tsinfer/internal/adapters/logger"
	"go.trai.ch/tsinfer/internal/adapters/npm"
	"go.trai.ch/tsinfer/internal/adapters/telemetry"
	"go.trai.ch/tsinfer/internal/adapters/tsconfig"
	"go.trai.ch/tsinfer/internal/app"
	"go.trai.ch/tsinfer/internal/core/domain"
	"go.trai.ch/tsinfer/internal/engine/infer"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newApp(t *testing.T) *app.App {
	t.Helper()
	return newAppWithCache(t, filepath.Join(t.TempDir(), "meta"))
}

// newAppWithCache builds a full real-adapter stack over the given cache
// directory. Separate apps sharing a directory model separate processes
// sharing the persisted metadata cache.
func newAppWithCache(t *testing.T, cacheDir string) *app.App {
	t.Helper()
	loader, err := tsconfig.NewLoader(tsconfig.NewParser())
	require.NoError(t, err)

	log := logger.New()
	log.SetOutput(io.Discard)

	store := cache.NewStore(cacheDir)
	engine := infer.NewEngine(loader, npm.NewResolver(), fs.NewHasher(), store, npm.NewManager(), log)
	return app.New(engine, fs.NewWalker(), store, telemetry.NewNoop(), log)
}

func scaffoldWorkspace(t *testing.T) string {
	t.Helper()
	ws := t.TempDir()
	writeFile(t, filepath.Join(ws, "package-lock.json"), "{}")

	for _, name := range []string{"a", "b"} {
		unit := filepath.Join(ws, "packages", name)
		writeFile(t, filepath.Join(unit, "package.json"), `{"name": "`+name+`"}`)
		writeFile(t, filepath.Join(unit, "src", "index.ts"), "export {};")
		writeFile(t, filepath.Join(unit, "tsconfig.json"), `{"include": ["src/**/*"]}`)
	}
	return ws
}

func defaultRun() app.RunOptions {
	return app.RunOptions{
		Options: domain.PlanOptions{
			TypecheckTargetName: "typecheck",
			BuildTargetName:     "build",
			BuildConfigName:     "tsconfig.lib.json",
		},
		NamedInputs: []string{"default", "production"},
		Workers:     2,
	}
}

func TestApp_Plan_DerivesAllUnits(t *testing.T) {
	ws := scaffoldWorkspace(t)

	result, err := newApp(t).Plan(context.Background(), ws, defaultRun())
	require.NoError(t, err)

	assert.Empty(t, result.Errors)
	assert.Contains(t, result.Projects, "packages/a")
	assert.Contains(t, result.Projects, "packages/b")
	assert.Contains(t, result.Projects["packages/a"].Targets, "typecheck")
}

func TestApp_Plan_SkipsDependencyDirectories(t *testing.T) {
	ws := scaffoldWorkspace(t)
	writeFile(t, filepath.Join(ws, "packages", "a", "node_modules", "dep", "tsconfig.json"), `{`)

	result, err := newApp(t).Plan(context.Background(), ws, defaultRun())
	require.NoError(t, err)
	assert.Empty(t, result.Errors, "configs under node_modules must not be discovered")
}

func TestApp_Plan_CollectsPerFileErrors(t *testing.T) {
	ws := scaffoldWorkspace(t)
	broken := filepath.Join(ws, "packages", "c")
	writeFile(t, filepath.Join(broken, "package.json"), `{}`)
	writeFile(t, filepath.Join(broken, "tsconfig.json"), `{"include": [`)

	result, err := newApp(t).Plan(context.Background(), ws, defaultRun())
	require.NoError(t, err, "per-file failures must not fail the batch")

	assert.Contains(t, result.Errors, "packages/c/tsconfig.json")
	assert.Contains(t, result.Projects, "packages/a")
	assert.Contains(t, result.Projects, "packages/b")
	assert.NotContains(t, result.Projects, "packages/c")
}

func TestApp_Plan_SecondRunServedFromCache(t *testing.T) {
	ws := scaffoldWorkspace(t)
	a := newApp(t)

	first, err := a.Plan(context.Background(), ws, defaultRun())
	require.NoError(t, err)
	second, err := a.Plan(context.Background(), ws, defaultRun())
	require.NoError(t, err)

	assert.Equal(t, first.Projects, second.Projects)
}

// A unit can own two derived configs at once (typecheck from tsconfig.json,
// build from tsconfig.lib.json). Each config's cache entry must hold only its
// own targets, so removing one config must drop its target on the next batch
// even when the surviving config is served from the persisted cache.
func TestApp_Plan_RemovedBuildConfigDropsTarget(t *testing.T) {
	ws := scaffoldWorkspace(t)
	unit := filepath.Join(ws, "packages", "a")
	writeFile(t, filepath.Join(unit, "package.json"), `{"name": "a", "main": "./dist/index.js"}`)
	writeFile(t, filepath.Join(unit, "tsconfig.lib.json"), `{
		"compilerOptions": {"outDir": "./dist"},
		"include": ["src/**/*"]
	}`)
	cacheDir := filepath.Join(t.TempDir(), "meta")

	first, err := newAppWithCache(t, cacheDir).Plan(context.Background(), ws, defaultRun())
	require.NoError(t, err)
	require.Contains(t, first.Projects["packages/a"].Targets, "typecheck")
	require.Contains(t, first.Projects["packages/a"].Targets, "build")

	require.NoError(t, os.Remove(filepath.Join(unit, "tsconfig.lib.json")))

	second, err := newAppWithCache(t, cacheDir).Plan(context.Background(), ws, defaultRun())
	require.NoError(t, err)
	assert.Contains(t, second.Projects["packages/a"].Targets, "typecheck")
	assert.NotContains(t, second.Projects["packages/a"].Targets, "build")
}

func TestApp_Plan_DisabledCache(t *testing.T) {
	ws := scaffoldWorkspace(t)
	a := newApp(t)
	a.SetStore(cache.NewNoop())

	result, err := a.Plan(context.Background(), ws, defaultRun())
	require.NoError(t, err)
	assert.Contains(t, result.Projects, "packages/a")
}
