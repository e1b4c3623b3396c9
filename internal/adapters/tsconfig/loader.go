package tsconfig

import (
	"os"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.trai.ch/tsinfer/internal/core/domain"
	"go.trai.ch/tsinfer/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// DefaultCacheSize bounds the loader cache. Sized for large monorepos where
// most configs share a handful of extended bases.
const DefaultCacheSize = 4096

type cacheKey struct {
	path  string
	mtime int64
}

// Loader memoizes parsed configs per (path, mtime). A file rewritten with new
// content but an unchanged mtime is served stale for the remainder of the
// batch; the cache is injected per batch, so the window closes with it.
// The LRU is safe for concurrent use, which matters because parallel
// derivations hit shared extended base configs.
type Loader struct {
	parser ports.ConfigParser
	cache  *lru.Cache[cacheKey, *domain.TsConfig]
}

// NewLoader creates a Loader around the given parser.
func NewLoader(parser ports.ConfigParser) (*Loader, error) {
	cache, err := lru.New[cacheKey, *domain.TsConfig](DefaultCacheSize)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to create config cache")
	}
	return &Loader{parser: parser, cache: cache}, nil
}

// Load returns the record for the config file at path, parsing at most once
// per (path, mtime). Failed loads are not cached.
func (l *Loader) Load(path string) (*domain.TsConfig, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve config path"), "path", path)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, zerr.With(domain.ErrConfigNotFound, "path", abs)
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to stat config file"), "path", abs)
	}

	key := cacheKey{path: abs, mtime: info.ModTime().UnixNano()}
	if cfg, ok := l.cache.Get(key); ok {
		return cfg, nil
	}

	cfg, err := l.parser.Parse(abs)
	if err != nil {
		return nil, err
	}
	l.cache.Add(key, cfg)
	return cfg, nil
}
