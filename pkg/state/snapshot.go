package state

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/jmcardle/gatewalker/pkg/world"
)

// SnapshotVersion is the current snapshot schema version. Loading a
// snapshot with a different version fails rather than guessing.
const SnapshotVersion = 1

// Snapshot is the serializable form of a session: the player, the
// objective log, and per-room deltas against the pristine world. It
// round-trips every mutable field of the session.
type Snapshot struct {
	Version    int                  `json:"version"`
	ID         uuid.UUID            `json:"id"`
	Status     Status               `json:"status"`
	Player     PlayerSnapshot       `json:"player"`
	Objectives []string             `json:"objectives,omitempty"`
	Rooms      map[string]RoomDelta `json:"rooms,omitempty"`
}

// PlayerSnapshot is the serializable form of the player. Room and
// planet are stored by name and re-resolved on load.
type PlayerSnapshot struct {
	Name      string   `json:"name"`
	Health    int      `json:"health"`
	Room      string   `json:"room"`
	Planet    string   `json:"planet"`
	Inventory []string `json:"inventory,omitempty"`
}

// RoomDelta records how a room diverged from the pristine world:
// picked-up items, a cleared requirement list, a dead NPC, or a traded
// NPC inventory.
type RoomDelta struct {
	Items               []string `json:"items"`
	RequirementsCleared bool     `json:"requirements_cleared,omitempty"`
	NPCDead             bool     `json:"npc_dead,omitempty"`
	NPCInventory        []string `json:"npc_inventory,omitempty"`
	NPCInventoryChanged bool     `json:"npc_inventory_changed,omitempty"`
}

// Capture produces a snapshot of s, recording room state only where it
// differs from the baseline (freshly loaded) world.
func Capture(s *Session, baseline *world.World) *Snapshot {
	snap := &Snapshot{
		Version:    SnapshotVersion,
		ID:         s.ID,
		Status:     s.Status,
		Objectives: append([]string(nil), s.Objectives...),
		Player: PlayerSnapshot{
			Name:      s.Player.Name,
			Health:    s.Player.Health,
			Inventory: s.Player.Items(),
		},
		Rooms: make(map[string]RoomDelta),
	}
	if s.Player.Room != nil {
		snap.Player.Room = s.Player.Room.Name
	}
	if s.Player.Planet != nil {
		snap.Player.Planet = s.Player.Planet.Name
	}

	for _, room := range s.World.Rooms() {
		base := baseline.Room(room.Name)
		if base == nil {
			continue
		}
		var delta RoomDelta
		changed := false
		if !slices.Equal(room.Items, base.Items) {
			delta.Items = append([]string{}, room.Items...)
			changed = true
		}
		if len(base.Requirements) > 0 && len(room.Requirements) == 0 {
			delta.RequirementsCleared = true
			changed = true
		}
		if room.NPC == nil && base.NPC != nil {
			delta.NPCDead = true
			changed = true
		} else if room.NPC != nil && room.NPC.Dead {
			delta.NPCDead = true
			changed = true
		}
		if room.NPC != nil && base.NPC != nil && !slices.Equal(room.NPC.Inventory, base.NPC.Inventory) {
			delta.NPCInventory = append([]string{}, room.NPC.Inventory...)
			delta.NPCInventoryChanged = true
			changed = true
		}
		if changed {
			snap.Rooms[room.Name] = delta
		}
	}
	if len(snap.Rooms) == 0 {
		snap.Rooms = nil
	}
	return snap
}

// Restore rebuilds a session from the snapshot onto w, which must be a
// fresh copy of the world the snapshot was captured against. The player
// position must resolve; a snapshot naming unknown rooms cannot produce
// a valid session.
func (snap *Snapshot) Restore(w *world.World) (*Session, error) {
	if snap.Version != SnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d (want %d)", snap.Version, SnapshotVersion)
	}

	for name, delta := range snap.Rooms {
		room := w.Room(name)
		if room == nil {
			return nil, fmt.Errorf("snapshot references unknown room %q", name)
		}
		if delta.Items != nil {
			room.Items = append([]string{}, delta.Items...)
		}
		if delta.RequirementsCleared {
			room.ClearRequirements()
		}
		if delta.NPCDead && room.NPC != nil {
			room.NPC.Dead = true
			room.NPC = nil
		}
		if delta.NPCInventoryChanged && room.NPC != nil {
			room.NPC.Inventory = append([]string{}, delta.NPCInventory...)
		}
	}

	playerRoom := w.Room(snap.Player.Room)
	if playerRoom == nil {
		return nil, fmt.Errorf("snapshot references unknown player room %q", snap.Player.Room)
	}
	planet := w.Planet(snap.Player.Planet)
	if planet == nil {
		planet = playerRoom.Planet
	}

	s := &Session{
		ID: snap.ID,
		Player: &Player{
			Name:      snap.Player.Name,
			Health:    snap.Player.Health,
			Room:      playerRoom,
			Planet:    planet,
			Inventory: make(map[string]bool, len(snap.Player.Inventory)),
		},
		World:      w,
		Objectives: append([]string(nil), snap.Objectives...),
		Status:     snap.Status,
	}
	for _, item := range snap.Player.Inventory {
		s.Player.Inventory[item] = true
	}
	return s, nil
}
