package story

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestLinesUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Lines
	}{
		{
			name:  "plain string",
			input: `{"intro": "Welcome to the base."}`,
			want:  Lines{"Welcome to the base."},
		},
		{
			name:  "list of strings",
			input: `{"intro": ["Line one.", "Line two."]}`,
			want:  Lines{"Line one.", "Line two."},
		},
		{
			name:  "object with text list",
			input: `{"intro": {"text": ["Line one.", "Line two."]}}`,
			want:  Lines{"Line one.", "Line two."},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Story
			if err := json.Unmarshal([]byte(tt.input), &s); err != nil {
				t.Fatalf("Unmarshal error: %v", err)
			}
			if !reflect.DeepEqual(s.Intro, tt.want) {
				t.Errorf("Intro = %v, want %v", s.Intro, tt.want)
			}
		})
	}

	var s Story
	if err := json.Unmarshal([]byte(`{"intro": 42}`), &s); err == nil {
		t.Error("Unmarshal should reject a number as lines")
	}
	// An object without a "text" key is a typo, not empty lines.
	if err := json.Unmarshal([]byte(`{"intro": {"lines": ["Line one."]}}`), &s); err == nil {
		t.Error("Unmarshal should reject an object without a text key")
	}
}

func TestLinesUnmarshalYAML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Lines
	}{
		{
			name:  "plain string",
			input: "intro: Welcome to the base.",
			want:  Lines{"Welcome to the base."},
		},
		{
			name:  "list of strings",
			input: "intro:\n  - Line one.\n  - Line two.",
			want:  Lines{"Line one.", "Line two."},
		},
		{
			name:  "object with text list",
			input: "intro:\n  text:\n    - Line one.",
			want:  Lines{"Line one."},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Story
			if err := yaml.Unmarshal([]byte(tt.input), &s); err != nil {
				t.Fatalf("Unmarshal error: %v", err)
			}
			if !reflect.DeepEqual(s.Intro, tt.want) {
				t.Errorf("Intro = %v, want %v", s.Intro, tt.want)
			}
		})
	}

	var s Story
	if err := yaml.Unmarshal([]byte("intro:\n  lines:\n    - Line one."), &s); err == nil {
		t.Error("Unmarshal should reject an object without a text key")
	}
}

func TestLinesJoin(t *testing.T) {
	l := Lines{"First.", "", "Third."}
	if got := l.Join(); got != "First.\n\nThird." {
		t.Errorf("Join() = %q", got)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "story.json")
	data := `{"intro": {"text": ["An enemy ship is coming."]}, "outro": ["Earth is safe."]}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile error: %v", err)
	}
	if s.Intro.Join() != "An enemy ship is coming." {
		t.Errorf("Intro = %q", s.Intro.Join())
	}
	if s.Outro.Join() != "Earth is safe." {
		t.Errorf("Outro = %q", s.Outro.Join())
	}

	if _, err := LoadFromFile(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("LoadFromFile should fail for a missing file")
	}
}
