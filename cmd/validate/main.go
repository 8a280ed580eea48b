// Command validate checks a world document (and optionally a story
// document) for structural problems before it is shipped: strict field
// names, duplicate definitions, and dangling references that the
// tolerant runtime loader would otherwise skip with a warning.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jmcardle/gatewalker/pkg/story"
	"github.com/jmcardle/gatewalker/pkg/world"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <world.json|world.yaml> [story.json]\n", os.Args[0])
		os.Exit(1)
	}

	validator := &WorldValidator{}
	if err := validator.validateFile(os.Args[1]); err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("World file is valid!")

	if len(os.Args) > 2 {
		if err := validateStoryFile(os.Args[2]); err != nil {
			fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Story file is valid!")
	}
}

type WorldValidator struct {
	errors []string
}

func (v *WorldValidator) validateFile(filename string) error {
	fmt.Printf("Validating %s...\n", filename)

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	v.errors = nil

	var doc world.Document
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		decoder := yaml.NewDecoder(strings.NewReader(string(data)))
		decoder.KnownFields(true)
		if err := decoder.Decode(&doc); err != nil {
			return fmt.Errorf("file %s failed strict YAML unmarshaling: %w", filename, err)
		}
	default:
		if !json.Valid(data) {
			return fmt.Errorf("file %s contains invalid JSON", filename)
		}
		decoder := json.NewDecoder(strings.NewReader(string(data)))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&doc); err != nil {
			return fmt.Errorf("file %s failed strict JSON unmarshaling: %w", filename, err)
		}
	}

	v.validateDocument(&doc)

	if len(v.errors) > 0 {
		return fmt.Errorf("validation errors in %s:\n%s", filename, strings.Join(v.errors, "\n"))
	}
	return nil
}

func (v *WorldValidator) validateDocument(doc *world.Document) {
	planets := make(map[string]bool)
	rooms := make(map[string]*world.RoomDoc)

	for i := range doc.Planets {
		planet := &doc.Planets[i]
		if planet.Name == "" {
			v.addError(fmt.Sprintf("planet %d has no name", i))
			continue
		}
		if planets[planet.Name] {
			v.addError(fmt.Sprintf("duplicate planet '%s'", planet.Name))
		}
		planets[planet.Name] = true

		for j := range planet.Rooms {
			room := &planet.Rooms[j]
			if room.Name == "" {
				v.addError(fmt.Sprintf("room %d on planet '%s' has no name", j, planet.Name))
				continue
			}
			if _, ok := rooms[room.Name]; ok {
				v.addError(fmt.Sprintf("duplicate room '%s'", room.Name))
			}
			rooms[room.Name] = room
		}
	}

	// Connection endpoints must resolve against the declared rooms.
	for name, room := range rooms {
		for _, conn := range room.Connections {
			if conn.ToRoom == "" {
				v.addError(fmt.Sprintf("room '%s' has a connection with no destination", name))
				continue
			}
			if _, ok := rooms[conn.ToRoom]; !ok {
				v.addError(fmt.Sprintf("room '%s' connects to unknown room '%s'", name, conn.ToRoom))
			}
		}
		if npc := room.NPC; npc != nil {
			v.validateNPC(npc, name)
		}
	}

	for _, conn := range doc.Connections {
		if _, ok := rooms[conn.FromRoom]; !ok {
			v.addError(fmt.Sprintf("connection from unknown room '%s'", conn.FromRoom))
		}
		if _, ok := rooms[conn.ToRoom]; !ok {
			v.addError(fmt.Sprintf("connection to unknown room '%s'", conn.ToRoom))
		}
	}

	if doc.Start != nil {
		if doc.Start.Planet != "" && !planets[doc.Start.Planet] {
			v.addError(fmt.Sprintf("start planet '%s' is not defined", doc.Start.Planet))
		}
		if doc.Start.Room != "" {
			if _, ok := rooms[doc.Start.Room]; !ok {
				v.addError(fmt.Sprintf("start room '%s' is not defined", doc.Start.Room))
			}
		}
	}
}

func (v *WorldValidator) validateNPC(npc *world.NPCDoc, roomName string) {
	if npc.FirstName == "" {
		v.addError(fmt.Sprintf("NPC in room '%s' has no first name", roomName))
	}
	if len(npc.Dialogues) > 0 {
		if _, ok := npc.Dialogues[world.DefaultTopic]; !ok {
			v.addError(fmt.Sprintf("NPC '%s' in room '%s' has dialogues but no '%s' topic", npc.FirstName, roomName, world.DefaultTopic))
		}
	}
	for topic, lines := range npc.Dialogues {
		if len(lines) == 0 {
			v.addError(fmt.Sprintf("NPC '%s' topic '%s' has no lines", npc.FirstName, topic))
		}
	}
}

func (v *WorldValidator) addError(msg string) {
	v.errors = append(v.errors, "  - "+msg)
}

func validateStoryFile(filename string) error {
	fmt.Printf("Validating %s...\n", filename)

	st, err := story.LoadFromFile(filename)
	if err != nil {
		return err
	}
	if len(st.Intro) == 0 {
		return fmt.Errorf("story file %s has no intro text", filename)
	}
	return nil
}
