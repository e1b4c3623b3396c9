package ports

// NamedInputs is the host orchestrator's named input set lookup. The deriver
// only needs to know which sets exist: when a config declares no include
// patterns, per-file input tracking is unreliable and the deriver falls back
// to a named set reference ("production" when defined, else "default").
//
//go:generate go run go.uber.org/mock/mockgen -source=named_inputs.go -destination=mocks/mock_named_inputs.go -package=mocks
type NamedInputs interface {
	// Defined reports whether the orchestrator defines a named input set.
	Defined(name string) bool

	// Names returns the defined set names in a stable order. The names join
	// the derivation options hash since they influence the derived inputs.
	Names() []string
}
