package ports

import "go.trai.ch/tsinfer/internal/core/domain"

// MetadataStore is the persistent metadata cache: one JSON document per
// derivation-options hash, mapping composite cache keys to derivation
// results. It is loaded once at batch start and flushed once at batch end;
// in between it is a concurrency-safe in-memory map.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type MetadataStore interface {
	// Load reads the cache document for the given options hash. A missing or
	// corrupt document degrades to an empty cache, never an error.
	Load(optionsHash string) error

	// Get returns the cached result for a composite key. A miss is not an
	// error; it triggers full derivation and a subsequent Put.
	Get(key string) (domain.Projects, bool)

	// Put records the result for a composite key.
	Put(key string, projects domain.Projects)

	// Flush rewrites the cache document wholesale. Only keys observed during
	// the current batch are written, pruning entries for configs no longer
	// present.
	Flush() error
}
