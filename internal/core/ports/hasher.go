package ports

// FileHasher computes content hashes over sets of files for cache keying.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type FileHasher interface {
	// HashFiles returns a single digest over the paths and contents of the
	// given files, independent of input order. Missing files contribute an
	// absence marker rather than failing, so a file appearing or disappearing
	// still changes the digest.
	HashFiles(paths []string) (string, error)
}
