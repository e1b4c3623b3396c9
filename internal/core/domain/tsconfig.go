// Package domain contains the core domain models for task definition inference.
package domain

import "path/filepath"

// CompilerOptions is the subset of resolved compiler options the derivation
// depends on. Path-valued options are absolute, resolved against the
// directory of the config that declared them.
type CompilerOptions struct {
	OutDir          string
	OutFile         string
	RootDir         string
	TsBuildInfoFile string
	DeclarationDir  string
	NoEmit          bool
	Composite       bool
}

// TsConfig is the parsed representation of one tsconfig file. Immutable once
// loaded; identity is its path. The loader caches records by (path, mtime).
type TsConfig struct {
	// Path is the absolute path of the config file.
	Path string

	// Options are the resolved compiler options, including options inherited
	// through relative extends chains.
	Options CompilerOptions

	// RawInclude and RawExclude are the config's own unexpanded glob
	// patterns, needed verbatim for cross-config exclude reconciliation.
	RawInclude []string
	RawExclude []string

	// Extends holds the raw extends specifiers in declaration order. A single
	// string extends and the array form both normalize to this slice.
	Extends []string

	// FileNames are the source files covered by this config, interned since
	// referenced projects re-list shared sources.
	FileNames []InternedString

	// References are the project reference paths, resolved to absolute paths
	// but kept as written otherwise (a reference may point at a file or at a
	// directory containing a tsconfig.json).
	References []string
}

// Dir returns the directory containing the config file.
func (c *TsConfig) Dir() string {
	return filepath.Dir(c.Path)
}

// HasIncludePatterns reports whether the config declares its own include set.
func (c *TsConfig) HasIncludePatterns() bool {
	return len(c.RawInclude) > 0
}

// ExtendedConfigs is the flattened extends chain of a config: every
// intermediate file plus every external package name crossed during
// resolution.
type ExtendedConfigs struct {
	Files    []string
	Packages []string
}
