package infer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/tsinfer/internal/core/domain"
)

func TestDeriveOutputs_OutFile(t *testing.T) {
	cfg := &domain.TsConfig{
		Path: "/ws/pkg/tsconfig.json",
		Options: domain.CompilerOptions{
			OutFile: "/ws/pkg/dist/bundle.js",
		},
	}

	outputs := deriveOutputs("/ws/pkg", []*domain.TsConfig{cfg})

	assert.Equal(t, []string{
		"dist/bundle.js",
		"dist/bundle.js.map",
		"dist/bundle.d.ts",
		"dist/bundle.d.ts.map",
		"dist/bundle.tsbuildinfo",
	}, outputs)
}

func TestDeriveOutputs_OutFileWithExplicitBuildInfo(t *testing.T) {
	cfg := &domain.TsConfig{
		Path: "/ws/pkg/tsconfig.json",
		Options: domain.CompilerOptions{
			OutFile:         "/ws/pkg/dist/bundle.js",
			TsBuildInfoFile: "/ws/pkg/.cache/bundle.tsbuildinfo",
		},
	}

	outputs := deriveOutputs("/ws/pkg", []*domain.TsConfig{cfg})
	assert.Contains(t, outputs, ".cache/bundle.tsbuildinfo")
	assert.NotContains(t, outputs, "dist/bundle.tsbuildinfo")
}

func TestDeriveOutputs_OutDir(t *testing.T) {
	cfg := &domain.TsConfig{
		Path:    "/ws/pkg/tsconfig.json",
		Options: domain.CompilerOptions{OutDir: "/ws/pkg/dist"},
	}

	outputs := deriveOutputs("/ws/pkg", []*domain.TsConfig{cfg})
	assert.Equal(t, []string{"dist"}, outputs)
}

func TestDeriveOutputs_OutDirBuildInfoPlacement(t *testing.T) {
	t.Run("explicit file inside outDir is covered by the directory", func(t *testing.T) {
		cfg := &domain.TsConfig{
			Path: "/ws/pkg/tsconfig.json",
			Options: domain.CompilerOptions{
				OutDir:          "/ws/pkg/dist",
				TsBuildInfoFile: "/ws/pkg/dist/info.tsbuildinfo",
			},
		}
		outputs := deriveOutputs("/ws/pkg", []*domain.TsConfig{cfg})
		assert.Equal(t, []string{"dist"}, outputs)
	})

	t.Run("explicit file outside outDir is listed separately", func(t *testing.T) {
		cfg := &domain.TsConfig{
			Path: "/ws/pkg/tsconfig.json",
			Options: domain.CompilerOptions{
				OutDir:          "/ws/pkg/dist",
				TsBuildInfoFile: "/ws/pkg/.cache/info.tsbuildinfo",
			},
		}
		outputs := deriveOutputs("/ws/pkg", []*domain.TsConfig{cfg})
		assert.Equal(t, []string{"dist", ".cache/info.tsbuildinfo"}, outputs)
	})

	t.Run("rootDir offset mirrors the default location out of outDir", func(t *testing.T) {
		cfg := &domain.TsConfig{
			Path: "/ws/pkg/tsconfig.json",
			Options: domain.CompilerOptions{
				OutDir:  "/ws/pkg/dist",
				RootDir: "/ws/pkg/src",
			},
		}
		outputs := deriveOutputs("/ws/pkg", []*domain.TsConfig{cfg})
		assert.Equal(t, []string{"dist", "*.tsbuildinfo"}, outputs)
	})
}

func TestDeriveOutputs_InPlace(t *testing.T) {
	cfg := &domain.TsConfig{
		Path:      "/ws/pkg/tsconfig.json",
		FileNames: domain.InternStrings([]string{"/ws/pkg/src/index.ts"}),
	}

	outputs := deriveOutputs("/ws/pkg", []*domain.TsConfig{cfg})

	assert.Equal(t, []string{
		"**/*.{js,cjs,mjs,jsx}",
		"**/*.{js,cjs,mjs}.map",
		"**/*.d.{ts,cts,mts}",
		"**/*.d.{ts,cts,mts}.map",
		"tsconfig.tsbuildinfo",
	}, outputs)
}

func TestDeriveOutputs_InPlaceUsesConfigStemForBuildInfo(t *testing.T) {
	cfg := &domain.TsConfig{
		Path:      "/ws/pkg/tsconfig.lib.json",
		FileNames: domain.InternStrings([]string{"/ws/pkg/src/index.ts"}),
	}

	outputs := deriveOutputs("/ws/pkg", []*domain.TsConfig{cfg})
	assert.Contains(t, outputs, "tsconfig.lib.tsbuildinfo")
}

func TestDeriveOutputs_NoFilesNoOutputs(t *testing.T) {
	cfg := &domain.TsConfig{Path: "/ws/pkg/tsconfig.json"}

	outputs := deriveOutputs("/ws/pkg", []*domain.TsConfig{cfg})
	assert.Empty(t, outputs)
}

func TestDeriveOutputs_DeduplicatesAcrossConfigs(t *testing.T) {
	a := &domain.TsConfig{
		Path:    "/ws/pkg/tsconfig.json",
		Options: domain.CompilerOptions{OutDir: "/ws/pkg/dist"},
	}
	b := &domain.TsConfig{
		Path:    "/ws/pkg/sub/tsconfig.json",
		Options: domain.CompilerOptions{OutDir: "/ws/pkg/dist"},
	}

	outputs := deriveOutputs("/ws/pkg", []*domain.TsConfig{a, b})
	assert.Equal(t, []string{"dist"}, outputs)
}
