package world

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is the file representation of a world. Planets embed their
// rooms; rooms embed their NPC and declare connections by target room
// name. A top-level connection list wires rooms across planets.
type Document struct {
	Start       *StartDoc       `json:"start,omitempty" yaml:"start,omitempty"`
	Planets     []PlanetDoc     `json:"planets" yaml:"planets"`
	Connections []ConnectionDoc `json:"connections,omitempty" yaml:"connections,omitempty"`
}

// StartDoc names the player's initial position.
type StartDoc struct {
	Planet string `json:"planet" yaml:"planet"`
	Room   string `json:"room" yaml:"room"`
}

// PlanetDoc is the file representation of a planet.
type PlanetDoc struct {
	Name    string    `json:"name" yaml:"name"`
	Picture string    `json:"picture,omitempty" yaml:"picture,omitempty"`
	Rooms   []RoomDoc `json:"rooms" yaml:"rooms"`
}

// RoomDoc is the file representation of a room.
type RoomDoc struct {
	Name        string          `json:"name" yaml:"name"`
	Description string          `json:"description" yaml:"description"`
	Objective   string          `json:"objective,omitempty" yaml:"objective,omitempty"`
	Requirement []string        `json:"requirement,omitempty" yaml:"requirement,omitempty"`
	Items       []string        `json:"items,omitempty" yaml:"items,omitempty"`
	Picture     string          `json:"picture,omitempty" yaml:"picture,omitempty"`
	NPC         *NPCDoc         `json:"npc,omitempty" yaml:"npc,omitempty"`
	Connections []ConnectionRef `json:"connections,omitempty" yaml:"connections,omitempty"`
}

// ConnectionRef is a connection declared inside its owning room.
type ConnectionRef struct {
	ToRoom string `json:"to_room" yaml:"to_room"`
	Type   string `json:"type" yaml:"type"`
}

// ConnectionDoc is a connection declared at the world level, outside
// any planet.
type ConnectionDoc struct {
	FromRoom string `json:"from_room" yaml:"from_room"`
	ToRoom   string `json:"to_room" yaml:"to_room"`
	Type     string `json:"type" yaml:"type"`
}

// NPCDoc is the file representation of a room's embedded NPC.
type NPCDoc struct {
	FirstName string              `json:"first_name" yaml:"first_name"`
	LastName  string              `json:"last_name" yaml:"last_name"`
	Hostile   bool                `json:"hostile,omitempty" yaml:"hostile,omitempty"`
	Inventory []string            `json:"inventory,omitempty" yaml:"inventory,omitempty"`
	Dialogues map[string][]string `json:"dialogues,omitempty" yaml:"dialogues,omitempty"`
}

// LoadFromFile reads a world document from a JSON or YAML file. A
// missing or malformed file is a fatal error; duplicate names and
// unresolved connection endpoints inside a well-formed document are
// warnings only.
func LoadFromFile(path string, logger *slog.Logger) (*World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading world file %s: %w", path, err)
	}
	var doc Document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing world YAML %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("parsing world JSON %s: %w", path, err)
		}
	}
	return Build(&doc, logger), nil
}

// pendingConnection defers edge wiring until every room exists, so
// declaration order in the document does not matter.
type pendingConnection struct {
	from string
	to   string
	kind string
}

// Build constructs a world from a parsed document in two passes: first
// all planets, rooms and NPCs, then all connections (room-level and
// world-level). Duplicate planet or room names and connections with
// missing endpoints are logged and skipped; Build never fails.
func Build(doc *Document, logger *slog.Logger) *World {
	w := New()
	if doc.Start != nil {
		w.Start = Start{Planet: doc.Start.Planet, Room: doc.Start.Room}
	}

	var pending []pendingConnection

	for _, pd := range doc.Planets {
		planet := &Planet{
			Name:    pd.Name,
			Picture: pd.Picture,
			Rooms:   make(map[string]*Room, len(pd.Rooms)),
		}
		if !w.AddPlanet(planet) {
			logger.Warn("duplicate planet skipped", "planet", pd.Name)
			continue
		}

		for _, rd := range pd.Rooms {
			room := &Room{
				Name:         rd.Name,
				Description:  rd.Description,
				Planet:       planet,
				Items:        append([]string(nil), rd.Items...),
				Requirements: append([]string(nil), rd.Requirement...),
				Objective:    rd.Objective,
				Picture:      rd.Picture,
			}
			if rd.NPC != nil {
				room.NPC = &NPC{
					FirstName: rd.NPC.FirstName,
					LastName:  rd.NPC.LastName,
					Room:      room,
					Hostile:   rd.NPC.Hostile,
					Inventory: append([]string(nil), rd.NPC.Inventory...),
					Dialogues: rd.NPC.Dialogues,
				}
				if room.NPC.Dialogues == nil {
					room.NPC.Dialogues = make(map[string][]string)
				}
			}
			if !w.AddRoom(room) {
				logger.Warn("duplicate room skipped", "room", rd.Name, "planet", pd.Name)
				continue
			}
			for _, cr := range rd.Connections {
				pending = append(pending, pendingConnection{from: rd.Name, to: cr.ToRoom, kind: cr.Type})
			}
		}
	}

	for _, cd := range doc.Connections {
		pending = append(pending, pendingConnection{from: cd.FromRoom, to: cd.ToRoom, kind: cd.Type})
	}

	for _, pc := range pending {
		from := w.Room(pc.from)
		if from == nil {
			logger.Warn("connection from unknown room skipped", "from", pc.from, "to", pc.to)
			continue
		}
		if w.Room(pc.to) == nil {
			logger.Warn("connection to unknown room skipped", "from", pc.from, "to", pc.to)
			continue
		}
		from.Connections = append(from.Connections, Connection{To: pc.to, Kind: pc.kind})
	}

	return w
}
