// Package tsconfig implements parsing and cached loading of tsconfig files.
package tsconfig

import (
	"encoding/json"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.trai.ch/tsinfer/internal/core/domain"
	"go.trai.ch/tsinfer/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ConfigParser = (*Parser)(nil)

// sourceExtensions are the file extensions the compiler treats as inputs.
var sourceExtensions = []string{".ts", ".tsx", ".mts", ".cts"}

// defaultExcludes mirror the compiler's implicit exclude list.
var defaultExcludes = []string{"node_modules", "bower_components", "jspm_packages"}

// Parser reads one tsconfig file and resolves it into a domain.TsConfig.
// Compiler options are merged through relative extends chains (child wins);
// bare package-style extends specifiers are left for the graph walker, which
// resolves them through the module resolver.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads and resolves the config file at path.
func (p *Parser) Parse(configPath string) (*domain.TsConfig, error) {
	abs, err := filepath.Abs(configPath)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve config path"), "path", configPath)
	}

	raw, err := p.readRaw(abs)
	if err != nil {
		return nil, err
	}

	opts := &rawCompilerOptions{}
	visited := map[string]struct{}{abs: {}}
	p.mergeExtendedOptions(raw, filepath.Dir(abs), visited, opts)
	applyOptions(opts, raw.CompilerOptions, filepath.Dir(abs))

	cfg := &domain.TsConfig{
		Path:       abs,
		Options:    resolveOptions(opts),
		RawInclude: raw.Include,
		RawExclude: raw.Exclude,
		Extends:    raw.extendsSpecifiers(),
	}

	for _, ref := range raw.References {
		if ref.Path == "" {
			continue
		}
		cfg.References = append(cfg.References, filepath.Clean(filepath.Join(cfg.Dir(), ref.Path)))
	}

	cfg.FileNames = domain.InternStrings(listFiles(cfg.Dir(), raw, cfg.Options))

	return cfg, nil
}

func (p *Parser) readRaw(abs string) (*rawTsConfig, error) {
	data, err := os.ReadFile(abs) //nolint:gosec // Path comes from workspace discovery
	if err != nil {
		if os.IsNotExist(err) {
			return nil, zerr.With(domain.ErrConfigNotFound, "path", abs)
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read config file"), "path", abs)
	}

	var raw rawTsConfig
	if err := json.Unmarshal(stripJSONC(data), &raw); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigParse, err.Error()), "path", abs)
	}
	return &raw, nil
}

// mergeExtendedOptions folds compiler options inherited through relative
// extends specifiers into dst, base first so nearer configs win. Bare
// specifiers are skipped here; resolution failures terminate the chain
// silently. Path-valued options resolve against the directory of the file
// that declared them.
func (p *Parser) mergeExtendedOptions(raw *rawTsConfig, dir string, visited map[string]struct{}, dst *rawCompilerOptions) {
	for _, spec := range raw.extendsSpecifiers() {
		if !isRelativeSpecifier(spec) {
			continue
		}
		basePath := resolveRelativeExtends(dir, spec)
		if basePath == "" {
			continue
		}
		if _, seen := visited[basePath]; seen {
			continue
		}
		visited[basePath] = struct{}{}

		base, err := p.readRaw(basePath)
		if err != nil {
			continue
		}
		baseDir := filepath.Dir(basePath)
		p.mergeExtendedOptions(base, baseDir, visited, dst)
		applyOptions(dst, base.CompilerOptions, baseDir)
	}
}

// isRelativeSpecifier reports whether an extends specifier is a relative
// path, as opposed to a bare importable-package specifier.
func isRelativeSpecifier(spec string) bool {
	return strings.HasPrefix(spec, "./") || strings.HasPrefix(spec, "../") ||
		strings.HasPrefix(spec, ".\\") || strings.HasPrefix(spec, "..\\") ||
		spec == "." || spec == ".."
}

// resolveRelativeExtends resolves a relative extends specifier to an existing
// file, appending .json when the bare form is missing. Returns "" when
// nothing exists.
func resolveRelativeExtends(fromDir, spec string) string {
	candidate := filepath.Clean(filepath.Join(fromDir, spec))
	if fileExists(candidate) {
		return candidate
	}
	if !strings.HasSuffix(candidate, ".json") && fileExists(candidate+".json") {
		return candidate + ".json"
	}
	return ""
}

func applyOptions(dst, src *rawCompilerOptions, dir string) {
	if src == nil {
		return
	}
	if src.OutDir != nil {
		dst.OutDir = absPtr(dir, *src.OutDir)
	}
	if src.OutFile != nil {
		dst.OutFile = absPtr(dir, *src.OutFile)
	}
	if src.RootDir != nil {
		dst.RootDir = absPtr(dir, *src.RootDir)
	}
	if src.TsBuildInfoFile != nil {
		dst.TsBuildInfoFile = absPtr(dir, *src.TsBuildInfoFile)
	}
	if src.DeclarationDir != nil {
		dst.DeclarationDir = absPtr(dir, *src.DeclarationDir)
	}
	if src.NoEmit != nil {
		dst.NoEmit = src.NoEmit
	}
	if src.Composite != nil {
		dst.Composite = src.Composite
	}
}

func absPtr(dir, p string) *string {
	resolved := filepath.Clean(filepath.Join(dir, p))
	return &resolved
}

func resolveOptions(raw *rawCompilerOptions) domain.CompilerOptions {
	opts := domain.CompilerOptions{}
	if raw.OutDir != nil {
		opts.OutDir = *raw.OutDir
	}
	if raw.OutFile != nil {
		opts.OutFile = *raw.OutFile
	}
	if raw.RootDir != nil {
		opts.RootDir = *raw.RootDir
	}
	if raw.TsBuildInfoFile != nil {
		opts.TsBuildInfoFile = *raw.TsBuildInfoFile
	}
	if raw.DeclarationDir != nil {
		opts.DeclarationDir = *raw.DeclarationDir
	}
	if raw.NoEmit != nil {
		opts.NoEmit = *raw.NoEmit
	}
	if raw.Composite != nil {
		opts.Composite = *raw.Composite
	}
	return opts
}

// listFiles expands the config's files/include/exclude into the covered
// source files, absolute and sorted.
func listFiles(configDir string, raw *rawTsConfig, opts domain.CompilerOptions) []string {
	seen := make(map[string]struct{})
	var result []string
	add := func(p string) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		result = append(result, p)
	}

	for _, f := range raw.Files {
		add(filepath.Clean(filepath.Join(configDir, f)))
	}

	includes := raw.Include
	if len(includes) == 0 && raw.Files == nil {
		includes = []string{"**/*"}
	}

	excludes := slices.Clone(raw.Exclude)
	excludes = append(excludes, defaultExcludes...)
	if opts.OutDir != "" {
		if rel, err := filepath.Rel(configDir, opts.OutDir); err == nil && !strings.HasPrefix(rel, "..") {
			excludes = append(excludes, filepath.ToSlash(rel))
		}
	}

	fsys := os.DirFS(configDir)
	for _, inc := range includes {
		for _, match := range expandInclude(fsys, configDir, inc) {
			if isExcluded(match, excludes) {
				continue
			}
			add(filepath.Join(configDir, filepath.FromSlash(match)))
		}
	}

	slices.Sort(result)
	return result
}

// expandInclude globs one include pattern and returns slash-separated paths
// relative to the config directory, filtered to source extensions. A pattern
// naming a directory covers the whole subtree, matching compiler behavior.
func expandInclude(fsys fs.FS, configDir, pattern string) []string {
	pat := path.Clean(filepath.ToSlash(pattern))
	if pat == "." {
		pat = "**/*"
	} else if !strings.ContainsAny(pat, "*?[{") {
		if info, err := os.Stat(filepath.Join(configDir, filepath.FromSlash(pat))); err == nil && info.IsDir() {
			pat += "/**/*"
		}
	}

	matches, err := doublestar.Glob(fsys, pat, doublestar.WithFilesOnly())
	if err != nil {
		return nil
	}

	var files []string
	for _, m := range matches {
		if hasSourceExtension(m) {
			files = append(files, m)
		}
	}
	return files
}

func hasSourceExtension(p string) bool {
	for _, ext := range sourceExtensions {
		if strings.HasSuffix(p, ext) {
			return true
		}
	}
	return false
}

// isExcluded matches a slash-separated relative path against exclude
// patterns. A pattern without glob meta characters excludes its subtree.
func isExcluded(rel string, excludes []string) bool {
	for _, ex := range excludes {
		pat := path.Clean(filepath.ToSlash(ex))
		if !strings.ContainsAny(pat, "*?[{") {
			if rel == pat || strings.HasPrefix(rel, pat+"/") {
				return true
			}
			continue
		}
		if ok, err := doublestar.Match(pat, rel); err == nil && ok {
			return true
		}
		if ok, err := doublestar.Match(pat+"/**", rel); err == nil && ok {
			return true
		}
	}
	return false
}

func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}
