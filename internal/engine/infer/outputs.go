package infer

import (
	"path"
	"path/filepath"
	"strings"

	"go.trai.ch/tsinfer/internal/core/domain"
)

// tsBuildInfoExt is the incremental-build metadata file extension.
const tsBuildInfoExt = ".tsbuildinfo"

// inPlaceOutputGlobs cover every artifact extension the compiler can emit
// next to its sources when neither outFile nor outDir is set.
var inPlaceOutputGlobs = []string{
	"**/*.{js,cjs,mjs,jsx}",
	"**/*.{js,cjs,mjs}.map",
	"**/*.d.{ts,cts,mts}",
	"**/*.d.{ts,cts,mts}.map",
}

// deriveOutputs computes the unit-root-relative output path list across the
// involved configs. Each config is in exactly one of three output modes:
// bundled file (outFile), output directory (outDir), or in-place emission.
func deriveOutputs(unitRoot string, involved []*domain.TsConfig) []string {
	seen := make(map[string]struct{})
	var outputs []string
	add := func(p string) {
		if p == "" {
			return
		}
		if _, dup := seen[p]; dup {
			return
		}
		seen[p] = struct{}{}
		outputs = append(outputs, p)
	}

	for _, cfg := range involved {
		opts := cfg.Options
		switch {
		case opts.OutFile != "":
			addOutFileOutputs(add, unitRoot, opts)
		case opts.OutDir != "":
			addOutDirOutputs(add, unitRoot, cfg, opts)
		case len(cfg.FileNames) > 0:
			addInPlaceOutputs(add, unitRoot, cfg, opts)
		}
	}
	return outputs
}

// addOutFileOutputs emits the bundle, its source map, its declaration file,
// the declaration source map, and the incremental metadata file.
func addOutFileOutputs(add func(string), unitRoot string, opts domain.CompilerOptions) {
	bundle := relSlash(unitRoot, opts.OutFile)
	dts := strings.TrimSuffix(bundle, path.Ext(bundle)) + ".d.ts"

	add(bundle)
	add(bundle + ".map")
	add(dts)
	add(dts + ".map")

	if opts.TsBuildInfoFile != "" {
		add(relSlash(unitRoot, opts.TsBuildInfoFile))
	} else {
		add(strings.TrimSuffix(bundle, path.Ext(bundle)) + tsBuildInfoExt)
	}
}

// addOutDirOutputs emits the whole output directory. The metadata file is
// listed separately only when it falls outside that directory, either via an
// explicit tsBuildInfoFile or via a rootDir offset that mirrors it out.
func addOutDirOutputs(add func(string), unitRoot string, cfg *domain.TsConfig, opts domain.CompilerOptions) {
	add(relSlash(unitRoot, opts.OutDir))

	switch {
	case opts.TsBuildInfoFile != "":
		if !within(opts.OutDir, opts.TsBuildInfoFile) {
			add(relSlash(unitRoot, opts.TsBuildInfoFile))
		}
	case opts.RootDir != "" && !sameDir(opts.RootDir, unitRoot):
		offset := relSlash(opts.RootDir, unitRoot)
		add(path.Join(relSlash(unitRoot, opts.OutDir), offset, "*"+tsBuildInfoExt))
	}
}

// addInPlaceOutputs emits glob patterns for every artifact extension rooted
// at the unit, plus the metadata file named after the config stem.
func addInPlaceOutputs(add func(string), unitRoot string, cfg *domain.TsConfig, opts domain.CompilerOptions) {
	for _, glob := range inPlaceOutputGlobs {
		add(glob)
	}

	if opts.TsBuildInfoFile != "" {
		add(relSlash(unitRoot, opts.TsBuildInfoFile))
		return
	}
	stem := strings.TrimSuffix(filepath.Base(cfg.Path), ".json")
	add(relSlash(unitRoot, filepath.Join(cfg.Dir(), stem+tsBuildInfoExt)))
}
