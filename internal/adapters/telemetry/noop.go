// Package telemetry provides progress recording adapters.
package telemetry

import (
	"context"

	"go.trai.ch/tsinfer/internal/core/ports"
)

var _ ports.Telemetry = (*Noop)(nil)

// Noop is a no-op implementation of ports.Telemetry.
type Noop struct{}

// NewNoop creates a new Noop telemetry adapter.
func NewNoop() *Noop {
	return &Noop{}
}

// Record returns a vertex that records nothing.
func (n *Noop) Record(ctx context.Context, _ string) (context.Context, ports.Vertex) {
	return ctx, noopVertex{}
}

// Close does nothing.
func (n *Noop) Close() error { return nil }

type noopVertex struct{}

func (noopVertex) Cached()        {}
func (noopVertex) Complete(error) {}
