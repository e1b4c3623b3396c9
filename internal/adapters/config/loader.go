// Package config provides the loader for tsinfer plugin options.
package config

import (
	"os"
	"path/filepath"

	"go.trai.ch/tsinfer/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the options file looked up in the workspace root.
const DefaultFilename = "tsinfer.yaml"

// Settings is the full decoded options file: the derivation options plus
// workspace-level knobs that never join the cache key.
type Settings struct {
	Options       domain.PlanOptions
	NamedInputs   []string
	CacheDir      string
	CacheDisabled bool
}

// tsinferFile represents the structure of the tsinfer.yaml options file.
type tsinferFile struct {
	Version     string    `yaml:"version"`
	Typecheck   targetDTO `yaml:"typecheck"`
	Build       buildDTO  `yaml:"build"`
	Verbose     bool      `yaml:"verbose"`
	NamedInputs []string  `yaml:"namedInputs"`
	Cache       cacheDTO  `yaml:"cache"`
}

type targetDTO struct {
	Enabled    *bool  `yaml:"enabled"`
	TargetName string `yaml:"targetName"`
}

type buildDTO struct {
	Enabled    *bool  `yaml:"enabled"`
	TargetName string `yaml:"targetName"`
	ConfigName string `yaml:"configName"`
}

type cacheDTO struct {
	Disabled bool   `yaml:"disabled"`
	Dir      string `yaml:"dir"`
}

// Defaults returns the settings used when no options file exists: typecheck
// and build both enabled under their conventional names, with "production"
// and "default" named input sets defined.
func Defaults() Settings {
	return Settings{
		Options: domain.PlanOptions{
			TypecheckTargetName: "typecheck",
			BuildTargetName:     "build",
			BuildConfigName:     "tsconfig.lib.json",
		},
		NamedInputs: []string{"default", "production"},
		CacheDir:    "",
	}
}

// Load reads the options file from the given workspace root, falling back to
// Defaults when the file is absent.
func Load(workspaceRoot string) (Settings, error) {
	return LoadFile(filepath.Join(workspaceRoot, DefaultFilename))
}

// LoadFile reads one options file.
func LoadFile(path string) (Settings, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if os.IsNotExist(err) {
			return Defaults(), nil
		}
		return Settings{}, zerr.Wrap(err, "failed to read options file")
	}

	var file tsinferFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Settings{}, zerr.Wrap(err, "failed to parse options file")
	}

	settings := Defaults()

	if file.Typecheck.Enabled != nil && !*file.Typecheck.Enabled {
		settings.Options.TypecheckTargetName = ""
	} else if file.Typecheck.TargetName != "" {
		settings.Options.TypecheckTargetName = file.Typecheck.TargetName
	}

	if file.Build.Enabled != nil && !*file.Build.Enabled {
		settings.Options.BuildTargetName = ""
		settings.Options.BuildConfigName = ""
	} else {
		if file.Build.TargetName != "" {
			settings.Options.BuildTargetName = file.Build.TargetName
		}
		if file.Build.ConfigName != "" {
			settings.Options.BuildConfigName = file.Build.ConfigName
		}
	}

	settings.Options.Verbose = file.Verbose
	if len(file.NamedInputs) > 0 {
		settings.NamedInputs = file.NamedInputs
	}
	settings.CacheDisabled = file.Cache.Disabled
	settings.CacheDir = file.Cache.Dir

	return settings, nil
}
