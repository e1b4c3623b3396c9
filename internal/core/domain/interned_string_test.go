package domain_test

import (
	"testing"

	"go.trai.ch/tsinfer/internal/core/domain"
)

func TestInternedString_Equality(t *testing.T) {
	a := domain.NewInternedString("/ws/packages/a/src/index.ts")
	b := domain.NewInternedString("/ws/packages/a/src/index.ts")

	if a != b {
		t.Error("equal strings should intern to equal values")
	}
	if a.String() != "/ws/packages/a/src/index.ts" {
		t.Errorf("unexpected value: %q", a.String())
	}
}

func TestInternedString_Zero(t *testing.T) {
	var zero domain.InternedString
	if zero.String() != "" {
		t.Errorf("zero value should render empty, got %q", zero.String())
	}
}

func TestInternStrings(t *testing.T) {
	if got := domain.InternStrings(nil); got != nil {
		t.Errorf("expected nil for empty input, got %v", got)
	}

	interned := domain.InternStrings([]string{"a.ts", "b.ts"})
	if len(interned) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(interned))
	}
	if interned[0].String() != "a.ts" || interned[1].String() != "b.ts" {
		t.Errorf("unexpected values: %v", interned)
	}
}
