package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"go.trai.ch/tsinfer/internal/adapters/telemetry"
)

func TestNoop(t *testing.T) {
	n := telemetry.NewNoop()

	ctx, vertex := n.Record(context.Background(), "packages/a/tsconfig.json")
	if ctx == nil {
		t.Fatal("context must be passed through")
	}

	vertex.Cached()
	vertex.Complete(errors.New("ignored"))

	if err := n.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
}
