package ports

import "context"

// Telemetry records per-derivation progress vertices.
//
//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks
type Telemetry interface {
	// Record starts recording a vertex for one unit of work.
	Record(ctx context.Context, name string) (context.Context, Vertex)

	// Close flushes and closes the recording session.
	Close() error
}

// Vertex represents one recorded unit of work.
type Vertex interface {
	// Cached marks the vertex as satisfied from cache.
	Cached()

	// Complete marks the vertex as finished, successfully when err is nil.
	Complete(err error)
}
