package infer

import (
	"fmt"

	"go.trai.ch/tsinfer/internal/core/domain"
)

// CanonicalConfigName is the configuration file the typecheck target is
// derived for. Secondary configs (tsconfig.lib.json, tsconfig.spec.json)
// never get their own typecheck target.
const CanonicalConfigName = "tsconfig.json"

// noEmitNotice replaces the typecheck command when a referenced project sets
// noEmit: the compiler cannot build a no-emit referenced project in project
// reference mode, only check it.
const noEmitNotice = `echo "The typecheck target is disabled because one or more project references set 'noEmit: true'. Remove the option to re-enable it."`

func typecheckCommand(noEmit, verbose bool) string {
	if noEmit {
		return noEmitNotice
	}
	cmd := "tsc --build --emitDeclarationOnly"
	if verbose {
		cmd += " --verbose"
	}
	return cmd
}

func buildCommand(configName string, verbose bool) string {
	cmd := fmt.Sprintf("tsc --build %s", configName)
	if verbose {
		cmd += " --verbose"
	}
	return cmd
}

// newTarget assembles one task definition. Every derived target is cacheable
// and ordered after the same-named target of its dependency units.
func newTarget(name, command, cwd, description string, inputs []domain.Input, outputs []string) domain.TaskDefinition {
	return domain.TaskDefinition{
		Command:   command,
		Cwd:       cwd,
		Cache:     true,
		Inputs:    inputs,
		Outputs:   outputs,
		DependsOn: []string{"^" + name},
		Metadata: domain.TargetMetadata{
			Description:  description,
			Technologies: []string{"typescript"},
			Help: &domain.TargetHelp{
				Command: "npx tsc --build --help",
			},
		},
	}
}
