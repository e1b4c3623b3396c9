package ports

// Resolution is the outcome of resolving an extends specifier. File is the
// resolved config file path; Package is the external package the resolution
// crossed into, empty for plain relative files.
type Resolution struct {
	File    string
	Package string
}

// ModuleResolver resolves bare (package-style) extends specifiers through the
// host module resolution mechanism.
//
//go:generate go run go.uber.org/mock/mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type ModuleResolver interface {
	// Resolve resolves specifier relative to fromDir. It returns
	// domain.ErrNotResolved when the specifier cannot be resolved; callers
	// treat that as "no extended config", not as a failure.
	Resolve(specifier, fromDir string) (Resolution, error)
}
