package npm

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tsinfer/internal/core/ports"
)

const (
	// ResolverNodeID is the unique identifier for the module resolver Graft node.
	ResolverNodeID graft.ID = "adapter.npm.resolver"
	// ManagerNodeID is the unique identifier for the package manager Graft node.
	ManagerNodeID graft.ID = "adapter.npm.manager"
)

func init() {
	graft.Register(graft.Node[ports.ModuleResolver]{
		ID:        ResolverNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.ModuleResolver, error) {
			return NewResolver(), nil
		},
	})

	graft.Register(graft.Node[ports.PackageManager]{
		ID:        ManagerNodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.PackageManager, error) {
			return NewManager(), nil
		},
	})
}
