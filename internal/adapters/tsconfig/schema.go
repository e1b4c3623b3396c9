package tsconfig

import "encoding/json"

// rawTsConfig mirrors the on-disk tsconfig JSON. Extends is polymorphic
// (string or array of strings) and decoded separately.
type rawTsConfig struct {
	Extends         json.RawMessage     `json:"extends"`
	CompilerOptions *rawCompilerOptions `json:"compilerOptions"`
	Include         []string            `json:"include"`
	Exclude         []string            `json:"exclude"`
	Files           []string            `json:"files"`
	References      []rawReference      `json:"references"`
}

// rawCompilerOptions uses pointer fields so that extends merging can tell
// "unset" apart from an explicit zero value.
type rawCompilerOptions struct {
	OutDir          *string `json:"outDir"`
	OutFile         *string `json:"outFile"`
	RootDir         *string `json:"rootDir"`
	TsBuildInfoFile *string `json:"tsBuildInfoFile"`
	DeclarationDir  *string `json:"declarationDir"`
	NoEmit          *bool   `json:"noEmit"`
	Composite       *bool   `json:"composite"`
}

type rawReference struct {
	Path string `json:"path"`
}

// extendsSpecifiers normalizes the polymorphic extends field.
func (r *rawTsConfig) extendsSpecifiers() []string {
	if len(r.Extends) == 0 {
		return nil
	}
	var single string
	if err := json.Unmarshal(r.Extends, &single); err == nil {
		if single == "" {
			return nil
		}
		return []string{single}
	}
	var many []string
	if err := json.Unmarshal(r.Extends, &many); err == nil {
		return many
	}
	return nil
}
