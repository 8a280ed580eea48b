// Package engine resolves player commands against a session: it checks
// preconditions, mutates player and world state in place, and returns a
// human-readable outcome string. Every rejected action is a no-op on
// the session.
package engine

import (
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jmcardle/gatewalker/pkg/state"
	"github.com/jmcardle/gatewalker/pkg/story"
	"github.com/jmcardle/gatewalker/pkg/world"
)

// Action is a player-issuable command keyword.
type Action string

const (
	ActionMove     Action = "move"
	ActionQuit     Action = "quit"
	ActionPickup   Action = "pickup"
	ActionInteract Action = "interact"
	ActionKill     Action = "kill"
	ActionTravel   Action = "travel"
	ActionPlant    Action = "plant"
	ActionDrop     Action = "drop"
)

// Resolver turns commands into state mutations and outcome messages.
// It is stateless across sessions; the same resolver can drive any
// number of independent sessions concurrently. The rng is the only
// shared mutable state and is guarded by a mutex.
type Resolver struct {
	story  *story.Story
	script Script
	logger *slog.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a resolver. A nil rng gets a time-seeded source; tests
// pass a fixed seed to make dialogue selection deterministic. A nil
// logger falls back to slog.Default().
func New(st *story.Story, script Script, rng *rand.Rand, logger *slog.Logger) *Resolver {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		story:  st,
		script: script,
		rng:    rng,
		logger: logger,
	}
}

// NewSession starts a playthrough on w. The session owns w and mutates
// it; callers wanting to reuse a loaded world pass a Clone.
func (r *Resolver) NewSession(w *world.World, playerName string) (*state.Session, error) {
	startPlanet := w.Start.Planet
	startRoom := w.Start.Room
	if startPlanet == "" {
		startPlanet = r.script.StartPlanet
	}
	if startRoom == "" {
		startRoom = r.script.StartRoom
	}

	planet := w.Planet(startPlanet)
	if planet == nil {
		return nil, fmt.Errorf("start planet %q not found", startPlanet)
	}
	room := planet.Rooms[startRoom]
	if room == nil {
		return nil, fmt.Errorf("start room %q not found on planet %q", startRoom, startPlanet)
	}

	s := state.New(w, playerName)
	s.Player.Planet = planet
	s.Player.Room = room
	s.LogObjective(r.script.OpeningObjective)
	return s, nil
}

// Intro returns the opening narrative text.
func (r *Resolver) Intro() string {
	return r.story.Intro.Join()
}

// Move walks the player through a local connection whose target name
// matches targetRoom case-insensitively. Entering the fatal room
// triggers the scripted death event after the move completes.
func (r *Resolver) Move(s *state.Session, targetRoom string) string {
	for _, conn := range s.Player.Room.LocalConnections() {
		if !strings.EqualFold(conn.To, targetRoom) {
			continue
		}
		next := s.World.Room(conn.To)
		if next == nil {
			r.logger.Warn("connection target missing at traversal", "from", s.Player.Room.Name, "to", conn.To)
			return fmt.Sprintf("The room %q could not be found.", conn.To)
		}
		if missing := missingItems(s.Player, next); len(missing) > 0 {
			return fmt.Sprintf("Requirements not met for %s. You are missing %s.", next.Name, missing[0])
		}
		r.enterRoom(s, next)
		if strings.EqualFold(next.Name, r.script.FatalRoom) {
			return r.deathEvent(s)
		}
		return fmt.Sprintf("You moved to %s.\n%s", next.Name, r.RoomStatus(s))
	}
	return fmt.Sprintf("No connection to room %q.", targetRoom)
}

// Travel takes an interplanetary connection by index into the current
// room's travel connections, in declaration order. Traveling from the
// departure room to the victory room ends the game in victory without
// moving the player.
func (r *Resolver) Travel(s *state.Session, destinationIndex int) string {
	conns := s.Player.Room.InterplanetaryConnections()
	if destinationIndex < 0 || destinationIndex >= len(conns) {
		return "Invalid travel destination."
	}
	conn := conns[destinationIndex]
	next := s.World.Room(conn.To)
	if next == nil {
		r.logger.Warn("connection target missing at traversal", "from", s.Player.Room.Name, "to", conn.To)
		return fmt.Sprintf("The room %q could not be found.", conn.To)
	}
	if missing := missingItems(s.Player, next); len(missing) > 0 {
		return fmt.Sprintf("Cannot travel. Requirements not met for %s. You are missing %s.",
			next.Name, strings.Join(missing, ", "))
	}
	if strings.EqualFold(s.Player.Room.Name, r.script.DepartureRoom) &&
		strings.EqualFold(next.Name, r.script.VictoryRoom) {
		s.Status = state.StatusWon
		return r.story.Outro.Join() + "\n" + r.script.VictoryMessage
	}
	r.enterRoom(s, next)
	return fmt.Sprintf("You traveled to %s.\n%s", next.Name, r.RoomStatus(s))
}

// Pickup moves an item from the current room into the player's
// inventory. Item names match exactly.
func (r *Resolver) Pickup(s *state.Session, item string) string {
	if !s.Player.Room.RemoveItem(item) {
		return fmt.Sprintf("%q is not in this room.", item)
	}
	s.Player.AddItem(item)
	return fmt.Sprintf("You picked up %s.", item)
}

// Interact greets the room's NPC. Hostile NPCs report hostility and
// whether the player is armed; combat itself is the separate Kill
// action. Friendly NPCs list their discussable topics.
func (r *Resolver) Interact(s *state.Session) string {
	npc := s.Player.Room.LiveNPC()
	if npc == nil {
		return "There's no one to interact with."
	}

	var lines []string
	if greetings := npc.Greetings(); len(greetings) > 0 {
		lines = append(lines, npc.Name()+": "+r.pick(greetings))
	} else {
		lines = append(lines, npc.Name()+" has nothing to say.")
	}

	if npc.Hostile {
		if s.Player.HasAny(r.script.Weapons) {
			lines = append(lines, npc.Name()+" is hostile. You are armed.")
		} else {
			lines = append(lines, npc.Name()+" is hostile, and you're unarmed. Be careful.")
		}
		return strings.Join(lines, "\n")
	}

	if topics := npc.Topics(); len(topics) > 0 {
		// cases.Caser carries internal state, so build one per call
		// rather than sharing it across sessions.
		titler := cases.Title(language.English)
		display := make([]string, len(topics))
		for i, topic := range topics {
			display[i] = titler.String(topic)
		}
		lines = append(lines, "Topics: "+strings.Join(display, ", "))
	}
	return strings.Join(lines, "\n")
}

// Talk asks the room's NPC about a topic, matched case-insensitively
// against its discussable dialogue keys.
func (r *Resolver) Talk(s *state.Session, topic string) string {
	npc := s.Player.Room.LiveNPC()
	if npc == nil {
		return "There's no one to talk to."
	}
	if npc.Hostile {
		return npc.Name() + " is in no mood for conversation."
	}
	for _, known := range npc.Topics() {
		if !strings.EqualFold(known, topic) {
			continue
		}
		lines := npc.Dialogues[known]
		if len(lines) == 0 {
			break
		}
		return npc.Name() + ": " + r.pick(lines)
	}
	return fmt.Sprintf("%s has nothing more to say about %s.", npc.Name(), topic)
}

// Trade takes an item from the room's NPC and gives it to the player.
func (r *Resolver) Trade(s *state.Session, item string) string {
	npc := s.Player.Room.LiveNPC()
	if npc == nil {
		return "There's no one to trade with."
	}
	if !npc.RemoveItem(item) {
		return fmt.Sprintf("%s has no %s to trade.", npc.Name(), item)
	}
	s.Player.AddItem(item)
	return fmt.Sprintf("You received %s!", item)
}

// Kill resolves combat in a single hit: a live NPC whose first name
// matches, plus an armed player, is all it takes. The NPC is detached
// from the room immediately on death.
func (r *Resolver) Kill(s *state.Session, targetFirstName string) string {
	npc := s.Player.Room.NPC
	if npc == nil || npc.Dead {
		return "There's no enemy here."
	}
	if !strings.EqualFold(npc.FirstName, targetFirstName) {
		return fmt.Sprintf("No enemy named %q here.", targetFirstName)
	}
	if !s.Player.HasAny(r.script.Weapons) {
		return "You don't have a weapon!"
	}
	npc.Dead = true
	s.Player.Room.NPC = nil
	return fmt.Sprintf("You killed %s.", npc.Name())
}

// Plant places the explosive in the reactor room, consuming it and
// permanently clearing the room's requirement list.
func (r *Resolver) Plant(s *state.Session) string {
	if !strings.EqualFold(s.Player.Room.Name, r.script.ReactorRoom) {
		return fmt.Sprintf("You're not in the %s.", r.script.ReactorRoom)
	}
	if !s.Player.HasItem(r.script.Explosive) {
		return fmt.Sprintf("You don't have %s.", r.script.Explosive)
	}
	s.Player.RemoveItem(r.script.Explosive)
	s.Player.Room.ClearRequirements()
	return fmt.Sprintf("You planted the %s in the %s!", r.script.Explosive, strings.ToLower(r.script.ReactorRoom))
}

// Drop throws the grenade in the shield generator room, consuming it.
// The action is narratively terminal but has no further world effect.
func (r *Resolver) Drop(s *state.Session) string {
	if !strings.EqualFold(s.Player.Room.Name, r.script.ShieldGeneratorRoom) {
		return fmt.Sprintf("You're not in the %s.", r.script.ShieldGeneratorRoom)
	}
	if !s.Player.HasItem(r.script.Grenade) {
		return fmt.Sprintf("You don't have a %s.", strings.ToLower(r.script.Grenade))
	}
	s.Player.RemoveItem(r.script.Grenade)
	return fmt.Sprintf("You threw the %s at the %s!", strings.ToLower(r.script.Grenade), strings.ToLower(r.script.ShieldGeneratorRoom))
}

// Quit ends the session.
func (r *Resolver) Quit(s *state.Session) string {
	s.Status = state.StatusQuit
	return "Game ended. Thanks for playing!"
}

// AvailableActions derives the closed set of commands valid right now
// from room and player state. It mutates nothing.
func (r *Resolver) AvailableActions(s *state.Session) []Action {
	room := s.Player.Room
	actions := []Action{ActionMove, ActionQuit}
	if len(room.Items) > 0 {
		actions = append(actions, ActionPickup)
	}
	if npc := room.LiveNPC(); npc != nil {
		actions = append(actions, ActionInteract)
		if npc.Hostile {
			actions = append(actions, ActionKill)
		}
	}
	if len(room.InterplanetaryConnections()) > 0 {
		actions = append(actions, ActionTravel)
	}
	if strings.EqualFold(room.Name, r.script.ReactorRoom) {
		actions = append(actions, ActionPlant)
	}
	if strings.EqualFold(room.Name, r.script.ShieldGeneratorRoom) {
		actions = append(actions, ActionDrop)
	}
	return actions
}

// RoomStatus projects the current room and active objective into a
// display string. It mutates nothing.
func (r *Resolver) RoomStatus(s *state.Session) string {
	room := s.Player.Room
	var b strings.Builder
	fmt.Fprintf(&b, "Location: %s\n%s", room.Name, room.Description)
	if npc := room.LiveNPC(); npc != nil {
		fmt.Fprintf(&b, "\nYou see %s here.", npc.Name())
	}
	if len(room.Items) > 0 {
		fmt.Fprintf(&b, "\nItems in room: %s", strings.Join(room.Items, ", "))
	}
	if objective := s.CurrentObjective(); objective != "" {
		fmt.Fprintf(&b, "\nCurrent Objective: %s", objective)
	}
	return b.String()
}

// enterRoom updates position, re-establishes the room/planet
// consistency invariant, and reveals the room's objective.
func (r *Resolver) enterRoom(s *state.Session, next *world.Room) {
	s.Player.Room = next
	if planet := s.World.PlanetOf(next.Name); planet != nil {
		s.Player.Planet = planet
	}
	s.LogObjective(next.Objective)
}

// deathEvent relocates the player to the scripted terminal room. The
// session stays active; only victory and quit are terminal.
func (r *Resolver) deathEvent(s *state.Session) string {
	if terminal := s.World.Room(r.script.TerminalRoom); terminal != nil {
		s.Player.Room = terminal
		if planet := s.World.PlanetOf(terminal.Name); planet != nil {
			s.Player.Planet = planet
		}
	} else {
		r.logger.Warn("terminal room missing, player not relocated", "room", r.script.TerminalRoom)
	}
	return r.script.DeathMessage
}

// missingItems returns the requirement entries absent from the player's
// inventory, in requirement order. Pure.
func missingItems(p *state.Player, room *world.Room) []string {
	var missing []string
	for _, required := range room.Requirements {
		if !p.HasItem(required) {
			missing = append(missing, required)
		}
	}
	return missing
}

// pick selects a uniformly random line. The rng is shared across all
// sessions driven by this resolver, so access is serialized.
func (r *Resolver) pick(lines []string) string {
	r.mu.Lock()
	n := r.rng.Intn(len(lines))
	r.mu.Unlock()
	return lines[n]
}
