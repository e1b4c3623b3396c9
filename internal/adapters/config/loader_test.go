package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/tsinfer/internal/adapters/config"
)

func TestLoad_AbsentFileReturnsDefaults(t *testing.T) {
	settings, err := config.Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "typecheck", settings.Options.TypecheckTargetName)
	assert.Equal(t, "build", settings.Options.BuildTargetName)
	assert.Equal(t, "tsconfig.lib.json", settings.Options.BuildConfigName)
	assert.ElementsMatch(t, []string{"default", "production"}, settings.NamedInputs)
	assert.False(t, settings.CacheDisabled)
}

func TestLoad_OverridesTargetNames(t *testing.T) {
	dir := t.TempDir()
	writeOptions(t, dir, `
typecheck:
  targetName: check-types
build:
  targetName: compile
  configName: tsconfig.build.json
verbose: true
`)

	settings, err := config.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "check-types", settings.Options.TypecheckTargetName)
	assert.Equal(t, "compile", settings.Options.BuildTargetName)
	assert.Equal(t, "tsconfig.build.json", settings.Options.BuildConfigName)
	assert.True(t, settings.Options.Verbose)
}

func TestLoad_DisablesTargets(t *testing.T) {
	dir := t.TempDir()
	writeOptions(t, dir, `
typecheck:
  enabled: false
build:
  enabled: false
`)

	settings, err := config.Load(dir)
	require.NoError(t, err)

	assert.False(t, settings.Options.TypecheckEnabled())
	assert.False(t, settings.Options.BuildEnabled())
}

func TestLoad_CacheSettings(t *testing.T) {
	dir := t.TempDir()
	writeOptions(t, dir, `
cache:
  disabled: true
  dir: .cache/meta
namedInputs: [default, production, sharedGlobals]
`)

	settings, err := config.Load(dir)
	require.NoError(t, err)

	assert.True(t, settings.CacheDisabled)
	assert.Equal(t, filepath.Join(".cache", "meta"), filepath.FromSlash(settings.CacheDir))
	assert.Len(t, settings.NamedInputs, 3)
}

func TestLoad_MalformedFileFails(t *testing.T) {
	dir := t.TempDir()
	writeOptions(t, dir, "\ttabs are not yaml indentation")

	_, err := config.Load(dir)
	assert.Error(t, err)
}

func TestNamedInputSet(t *testing.T) {
	set := config.NewNamedInputSet("production", "default", "production")

	assert.True(t, set.Defined("production"))
	assert.True(t, set.Defined("default"))
	assert.False(t, set.Defined("sharedGlobals"))
	assert.Equal(t, []string{"default", "production"}, set.Names())
}

func writeOptions(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.DefaultFilename), []byte(content), 0o644))
}
