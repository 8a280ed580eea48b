// Package story holds the narrative framing of a game: the intro shown
// before play and the outro shown on victory.
package story

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Lines is an ordered list of narrative lines. It unmarshals from
// either a plain string, a list of strings, or an object with a "text"
// list, because story documents have shipped in all three shapes.
type Lines []string

func (l *Lines) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		*l = Lines{asString}
		return nil
	}
	var asList []string
	if err := json.Unmarshal(data, &asList); err == nil {
		*l = Lines(asList)
		return nil
	}
	var asObject struct {
		// Pointer so an object without a "text" key is rejected
		// instead of silently decoding to empty lines.
		Text *[]string `json:"text"`
	}
	if err := json.Unmarshal(data, &asObject); err == nil && asObject.Text != nil {
		*l = Lines(*asObject.Text)
		return nil
	}
	return fmt.Errorf("story lines: not a string, list, or {text: [...]} object: %s", string(data))
}

func (l *Lines) UnmarshalYAML(value *yaml.Node) error {
	var asString string
	if err := value.Decode(&asString); err == nil {
		*l = Lines{asString}
		return nil
	}
	var asList []string
	if err := value.Decode(&asList); err == nil {
		*l = Lines(asList)
		return nil
	}
	var asObject struct {
		Text *[]string `yaml:"text"`
	}
	if err := value.Decode(&asObject); err == nil && asObject.Text != nil {
		*l = Lines(*asObject.Text)
		return nil
	}
	return fmt.Errorf("story lines: not a string, list, or {text: [...]} object")
}

// Join renders the lines as a single block of text.
func (l Lines) Join() string {
	return strings.Join(l, "\n")
}

// Story is the narrative document for a game.
type Story struct {
	Intro Lines `json:"intro" yaml:"intro"`
	Outro Lines `json:"outro" yaml:"outro"`
}

// LoadFromFile reads a story document from a JSON or YAML file. A
// missing or malformed story file is fatal: no session can open or end
// without its narrative text.
func LoadFromFile(path string) (*Story, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading story file %s: %w", path, err)
	}
	var s Story
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("parsing story YAML %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("parsing story JSON %s: %w", path, err)
		}
	}
	return &s, nil
}
