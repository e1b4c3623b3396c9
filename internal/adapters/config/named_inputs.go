package config

import (
	"slices"

	"go.trai.ch/tsinfer/internal/core/ports"
)

var _ ports.NamedInputs = NamedInputSet{}

// NamedInputSet is a static ports.NamedInputs backed by a list of set names.
type NamedInputSet struct {
	names []string
}

// NewNamedInputSet builds a NamedInputSet from the given names.
func NewNamedInputSet(names ...string) NamedInputSet {
	sorted := slices.Clone(names)
	slices.Sort(sorted)
	return NamedInputSet{names: slices.Compact(sorted)}
}

// Defined reports whether name is a defined input set.
func (s NamedInputSet) Defined(name string) bool {
	_, ok := slices.BinarySearch(s.names, name)
	return ok
}

// Names returns the defined set names in sorted order.
func (s NamedInputSet) Names() []string {
	return slices.Clone(s.names)
}
