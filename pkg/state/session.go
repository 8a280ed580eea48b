// Package state holds the mutable side of a game: the player, the
// session wrapping one playthrough, and the snapshot schema used for
// save and resume.
package state

import (
	"sort"

	"github.com/google/uuid"
	"github.com/jmcardle/gatewalker/pkg/world"
)

// Status is the lifecycle state of a session. Death is not a status:
// the scripted death event relocates the player and play continues, so
// only victory and an explicit quit are terminal.
type Status string

const (
	StatusActive Status = "active"
	StatusWon    Status = "won"
	StatusQuit   Status = "quit"
)

// Player is the player character. Inventory is a presence set: owning
// an item is binary, re-adding is a no-op.
type Player struct {
	Name      string
	Health    int
	Room      *world.Room
	Planet    *world.Planet
	Inventory map[string]bool
}

// AddItem puts item into the player's inventory. Idempotent.
func (p *Player) AddItem(item string) {
	p.Inventory[item] = true
}

// RemoveItem takes item out of the player's inventory.
func (p *Player) RemoveItem(item string) {
	delete(p.Inventory, item)
}

// HasItem reports whether the player holds item.
func (p *Player) HasItem(item string) bool {
	return p.Inventory[item]
}

// HasAny reports whether the player holds at least one of items.
func (p *Player) HasAny(items []string) bool {
	for _, item := range items {
		if p.Inventory[item] {
			return true
		}
	}
	return false
}

// Items returns the inventory contents, sorted for stable display and
// serialization.
func (p *Player) Items() []string {
	items := make([]string, 0, len(p.Inventory))
	for item := range p.Inventory {
		items = append(items, item)
	}
	sort.Strings(items)
	return items
}

// DefaultHealth is the player's starting health. Nothing in normal play
// decrements it; the scripted death event relocates instead.
const DefaultHealth = 100

// Session is one playthrough: a player, the world copy the player is
// mutating, and the objective log. Exactly one actor drives a session;
// no locking is needed.
type Session struct {
	ID         uuid.UUID
	Player     *Player
	World      *world.World
	Objectives []string
	Status     Status
}

// New creates a session owning the given world. Position and the
// opening objective are established by the engine's script.
func New(w *world.World, playerName string) *Session {
	return &Session{
		ID: uuid.New(),
		Player: &Player{
			Name:      playerName,
			Health:    DefaultHealth,
			Inventory: make(map[string]bool),
		},
		World:  w,
		Status: StatusActive,
	}
}

// CurrentObjective returns the active objective: the last entry of the
// objective log.
func (s *Session) CurrentObjective() string {
	if len(s.Objectives) == 0 {
		return ""
	}
	return s.Objectives[len(s.Objectives)-1]
}

// LogObjective appends text to the objective log unless it is empty or
// already present. The log is append-only.
func (s *Session) LogObjective(text string) {
	if text == "" {
		return
	}
	for _, logged := range s.Objectives {
		if logged == text {
			return
		}
	}
	s.Objectives = append(s.Objectives, text)
}
