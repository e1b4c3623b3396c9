package domain

import (
	"encoding/json"
	"maps"

	"go.trai.ch/zerr"
)

// TaskDefinition is one named, cacheable, orderable command scoped to a unit.
// It is created fresh on each derivation and never mutated afterwards.
type TaskDefinition struct {
	Command   string         `json:"command"`
	Cwd       string         `json:"cwd,omitempty"`
	Cache     bool           `json:"cache"`
	Inputs    []Input        `json:"inputs,omitempty"`
	Outputs   []string       `json:"outputs,omitempty"`
	DependsOn []string       `json:"dependsOn,omitempty"`
	Metadata  TargetMetadata `json:"metadata"`
}

// TargetMetadata carries descriptive, non-semantic information about a target.
type TargetMetadata struct {
	Description  string      `json:"description,omitempty"`
	Technologies []string    `json:"technologies,omitempty"`
	Help         *TargetHelp `json:"help,omitempty"`
}

// TargetHelp points the user at the underlying tool's own help output.
type TargetHelp struct {
	Command string `json:"command"`
	Example string `json:"example,omitempty"`
}

// ProjectMetadata is the inferred metadata for one unit.
type ProjectMetadata struct {
	ProjectType string                    `json:"projectType"`
	Targets     map[string]TaskDefinition `json:"targets"`
}

// Clone returns a copy of m with its own Targets map. TaskDefinition values
// are never mutated after creation, so copying the entries is enough.
func (m ProjectMetadata) Clone() ProjectMetadata {
	m.Targets = maps.Clone(m.Targets)
	return m
}

// Projects maps workspace-relative unit roots to their inferred metadata.
// It is the per-configuration-file derivation result and the value type of
// the metadata cache.
type Projects map[string]ProjectMetadata

// Merge folds other into p, combining target maps for units present in both.
// Metadata from other is cloned before insertion so p never aliases maps the
// metadata cache still holds; merging a second config of the same unit must
// not leak its targets into the first config's cached entry.
func (p Projects) Merge(other Projects) {
	for root, meta := range other {
		existing, ok := p[root]
		if !ok {
			p[root] = meta.Clone()
			continue
		}
		for name, target := range meta.Targets {
			existing.Targets[name] = target
		}
		p[root] = existing
	}
}

// Input is one entry of a task's ordered input specifier list. Exactly one
// of the three shapes is populated:
//
//   - Path: a plain pattern, a "!"-negated exclusion, or a named input set
//     reference such as "production" or "^default";
//   - ExternalDependencies: package names whose versions influence the task;
//   - DependentTasksOutputFiles: a pattern over the output files of the
//     same-named task in dependency units.
//
// The wire form is heterogeneous (string or object), matching the host
// orchestrator's input specifier encoding.
type Input struct {
	Path                      string
	ExternalDependencies      []string
	DependentTasksOutputFiles string
	Transitive                bool
}

// PathInput returns a plain path (or named input set) specifier.
func PathInput(path string) Input {
	return Input{Path: path}
}

// ExcludeInput returns a negated path specifier.
func ExcludeInput(pattern string) Input {
	return Input{Path: "!" + pattern}
}

// ExternalDependenciesInput returns a specifier naming external packages the
// task depends on.
func ExternalDependenciesInput(packages []string) Input {
	return Input{ExternalDependencies: packages}
}

// DependentOutputsInput returns a specifier covering output files produced by
// the same-named task of dependency units.
func DependentOutputsInput(pattern string, transitive bool) Input {
	return Input{DependentTasksOutputFiles: pattern, Transitive: transitive}
}

type externalDepsJSON struct {
	ExternalDependencies []string `json:"externalDependencies"`
}

type dependentOutputsJSON struct {
	DependentTasksOutputFiles string `json:"dependentTasksOutputFiles"`
	Transitive                bool   `json:"transitive,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (in Input) MarshalJSON() ([]byte, error) {
	switch {
	case len(in.ExternalDependencies) > 0:
		return json.Marshal(externalDepsJSON{ExternalDependencies: in.ExternalDependencies})
	case in.DependentTasksOutputFiles != "":
		return json.Marshal(dependentOutputsJSON{
			DependentTasksOutputFiles: in.DependentTasksOutputFiles,
			Transitive:                in.Transitive,
		})
	default:
		return json.Marshal(in.Path)
	}
}

// UnmarshalJSON implements json.Unmarshaler. Inputs round-trip through the
// metadata cache, so both wire shapes must decode back.
func (in *Input) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &in.Path)
	}

	var obj struct {
		ExternalDependencies      []string `json:"externalDependencies"`
		DependentTasksOutputFiles string   `json:"dependentTasksOutputFiles"`
		Transitive                bool     `json:"transitive"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return zerr.Wrap(err, "failed to decode input specifier")
	}
	in.Path = ""
	in.ExternalDependencies = obj.ExternalDependencies
	in.DependentTasksOutputFiles = obj.DependentTasksOutputFiles
	in.Transitive = obj.Transitive
	return nil
}
