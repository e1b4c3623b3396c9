// Package cache implements the on-disk metadata cache for derivation results.
package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/tsinfer/internal/core/domain"
	"go.trai.ch/tsinfer/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.MetadataStore = (*Store)(nil)

// DefaultDir returns the default cache directory.
func DefaultDir() string {
	return filepath.Join(".tsinfer", "cache")
}

// Store implements ports.MetadataStore using one flat JSON file per
// derivation-options hash. Only keys observed during the current batch are
// written back on Flush, so entries for configs no longer present are pruned
// instead of accumulating.
type Store struct {
	dir string

	mu      sync.RWMutex
	path    string
	cache   map[string]domain.Projects
	touched map[string]struct{}
}

// NewStore creates a Store rooted at dir. Nothing is read until Load.
func NewStore(dir string) *Store {
	return &Store{
		dir:     filepath.Clean(dir),
		cache:   make(map[string]domain.Projects),
		touched: make(map[string]struct{}),
	}
}

// Load reads the cache document for the given options hash. A missing or
// unreadable document degrades to an empty cache.
func (s *Store) Load(optionsHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.path = filepath.Join(s.dir, "tsinfer-"+optionsHash+".json")
	s.cache = make(map[string]domain.Projects)
	s.touched = make(map[string]struct{})

	//nolint:gosec // Path is derived from the cache dir and an options hash
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, &s.cache); err != nil {
		// Corrupt cache behaves as a cold cache.
		s.cache = make(map[string]domain.Projects)
	}
	return nil
}

// Get returns the cached result for a composite key. Hits mark the key as
// observed so it survives the next Flush.
func (s *Store) Get(key string) (domain.Projects, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	projects, ok := s.cache[key]
	if !ok {
		return nil, false
	}
	s.touched[key] = struct{}{}
	return projects, true
}

// Put records the result for a composite key.
func (s *Store) Put(key string, projects domain.Projects) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache[key] = projects
	s.touched[key] = struct{}{}
}

// Flush rewrites the cache document with the keys observed since Load.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return nil
	}

	retained := make(map[string]domain.Projects, len(s.touched))
	for key := range s.touched {
		if projects, ok := s.cache[key]; ok {
			retained[key] = projects
		}
	}

	data, err := json.MarshalIndent(retained, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal metadata cache")
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return zerr.Wrap(err, "failed to create metadata cache directory")
	}

	//nolint:gosec // Path is derived from the cache dir and an options hash
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return zerr.Wrap(err, "failed to write metadata cache")
	}
	return nil
}

// Noop is a disabled metadata cache: every lookup misses and nothing is
// persisted. Used when the global cache-disable flag is set.
type Noop struct{}

var _ ports.MetadataStore = Noop{}

// NewNoop creates a disabled metadata cache.
func NewNoop() Noop { return Noop{} }

// Load implements ports.MetadataStore.
func (Noop) Load(string) error { return nil }

// Get implements ports.MetadataStore.
func (Noop) Get(string) (domain.Projects, bool) { return nil, false }

// Put implements ports.MetadataStore.
func (Noop) Put(string, domain.Projects) {}

// Flush implements ports.MetadataStore.
func (Noop) Flush() error { return nil }
