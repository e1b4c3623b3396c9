package domain

// PackageJSON is the subset of a unit's package descriptor consulted during
// build-target validation. Exports is kept in its raw decoded form because
// the field is polymorphic (a bare path, a path map, or a conditional map
// per entry).
type PackageJSON struct {
	Name    string `json:"name"`
	Main    string `json:"main"`
	Module  string `json:"module"`
	Types   string `json:"types"`
	Exports any    `json:"exports"`
}

// PlanOptions are the derivation options for one batch. The zero value
// disables both targets. The options participate in the composite cache key,
// so every field here must be JSON-serializable.
type PlanOptions struct {
	// TypecheckTargetName enables the typecheck target when non-empty.
	TypecheckTargetName string `json:"typecheckTargetName,omitempty"`

	// BuildTargetName enables the build target when non-empty.
	BuildTargetName string `json:"buildTargetName,omitempty"`

	// BuildConfigName is the config filename the build target is emitted for.
	BuildConfigName string `json:"buildConfigName,omitempty"`

	// Verbose adds --verbose to emitted compiler commands.
	Verbose bool `json:"verbose,omitempty"`
}

// TypecheckEnabled reports whether a typecheck target should be derived.
func (o PlanOptions) TypecheckEnabled() bool { return o.TypecheckTargetName != "" }

// BuildEnabled reports whether a build target should be derived.
func (o PlanOptions) BuildEnabled() bool {
	return o.BuildTargetName != "" && o.BuildConfigName != ""
}

// BatchResult aggregates one batch of per-file derivations. A failing file
// contributes an entry to Errors and nothing to Projects; sibling files are
// unaffected.
type BatchResult struct {
	Projects Projects          `json:"projects"`
	Errors   map[string]string `json:"errors,omitempty"`
}
