package tsconfig

import (
	"encoding/json"
	"testing"
)

func TestStripJSONC_Comments(t *testing.T) {
	input := []byte(`{
		// line comment
		"compilerOptions": {
			/* block
			   comment */
			"outDir": "./dist" // trailing
		}
	}`)

	var decoded map[string]any
	if err := json.Unmarshal(stripJSONC(input), &decoded); err != nil {
		t.Fatalf("stripped output should be valid JSON: %v", err)
	}

	opts, ok := decoded["compilerOptions"].(map[string]any)
	if !ok {
		t.Fatal("compilerOptions missing")
	}
	if opts["outDir"] != "./dist" {
		t.Errorf("expected outDir ./dist, got %v", opts["outDir"])
	}
}

func TestStripJSONC_CommentMarkersInsideStrings(t *testing.T) {
	input := []byte(`{"include": ["src//x", "a/*b*/c"], "exclude": ["\"//"]}`)

	var decoded map[string]any
	if err := json.Unmarshal(stripJSONC(input), &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	include := decoded["include"].([]any)
	if include[0] != "src//x" || include[1] != "a/*b*/c" {
		t.Errorf("string contents were mangled: %v", include)
	}
}

func TestStripJSONC_TrailingCommas(t *testing.T) {
	input := []byte(`{
		"include": ["src", ],
		"compilerOptions": {
			"composite": true,
		},
	}`)

	var decoded map[string]any
	if err := json.Unmarshal(stripJSONC(input), &decoded); err != nil {
		t.Fatalf("trailing commas should be removed: %v", err)
	}
}

func TestStripJSONC_PreservesLength(t *testing.T) {
	input := []byte("{\n// comment\n\"a\": 1\n}")
	out := stripJSONC(input)
	if len(out) != len(input) {
		t.Errorf("length changed from %d to %d", len(input), len(out))
	}
}
