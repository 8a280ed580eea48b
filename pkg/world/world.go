// Package world provides the static game world graph: planets, rooms,
// name-keyed connections between rooms, and the NPCs embedded in rooms.
// The graph is built once by the loader and its topology never changes
// during play; only room item lists, requirement lists and NPC slots
// mutate.
package world

import "sort"

// KindInterplanetary is the reserved connection kind that gates
// cross-planet travel. Every other kind is ordinary local movement.
const KindInterplanetary = "interplanetary"

// DefaultTopic is the reserved dialogue key holding an NPC's greeting
// lines. All other keys are discussable topics.
const DefaultTopic = "default"

// Connection is a directed edge to another room. The target is held by
// name and resolved by lookup at traversal time, so world documents may
// reference rooms in any order.
type Connection struct {
	To   string
	Kind string
}

// Interplanetary reports whether this connection requires the travel
// command rather than the move command.
func (c Connection) Interplanetary() bool {
	return c.Kind == KindInterplanetary
}

// NPC is a non-player character. An NPC is created at load time, lives
// in exactly one room, and is mutated only by death or by trade
// depleting its inventory.
type NPC struct {
	FirstName string
	LastName  string
	Room      *Room
	Hostile   bool
	Dead      bool
	Inventory []string
	Dialogues map[string][]string
}

// Name returns the NPC's display name.
func (n *NPC) Name() string {
	return n.FirstName + " " + n.LastName
}

// Greetings returns the NPC's default dialogue lines.
func (n *NPC) Greetings() []string {
	return n.Dialogues[DefaultTopic]
}

// Topics returns the discussable dialogue keys (everything except the
// default greeting), sorted for stable presentation.
func (n *NPC) Topics() []string {
	var topics []string
	for key := range n.Dialogues {
		if key != DefaultTopic {
			topics = append(topics, key)
		}
	}
	sort.Strings(topics)
	return topics
}

// RemoveItem takes item out of the NPC's inventory. It reports whether
// the item was present.
func (n *NPC) RemoveItem(item string) bool {
	for i, held := range n.Inventory {
		if held == item {
			n.Inventory = append(n.Inventory[:i], n.Inventory[i+1:]...)
			return true
		}
	}
	return false
}

// Room is an atomic location node. It belongs to exactly one planet for
// its entire lifetime.
type Room struct {
	Name         string
	Description  string
	Planet       *Planet
	Connections  []Connection
	Items        []string
	Requirements []string
	Objective    string
	Picture      string
	NPC          *NPC
}

// LocalConnections returns the room's outgoing connections usable by
// the move command, in declaration order.
func (r *Room) LocalConnections() []Connection {
	var conns []Connection
	for _, c := range r.Connections {
		if !c.Interplanetary() {
			conns = append(conns, c)
		}
	}
	return conns
}

// InterplanetaryConnections returns the room's outgoing travel
// connections, in declaration order. Travel destinations are selected
// by index into this slice.
func (r *Room) InterplanetaryConnections() []Connection {
	var conns []Connection
	for _, c := range r.Connections {
		if c.Interplanetary() {
			conns = append(conns, c)
		}
	}
	return conns
}

// RemoveItem takes item out of the room. It reports whether the item
// was present.
func (r *Room) RemoveItem(item string) bool {
	for i, present := range r.Items {
		if present == item {
			r.Items = append(r.Items[:i], r.Items[i+1:]...)
			return true
		}
	}
	return false
}

// ClearRequirements permanently unlocks the room. There is no undo.
func (r *Room) ClearRequirements() {
	r.Requirements = nil
}

// LiveNPC returns the room's NPC if one is present and alive.
func (r *Room) LiveNPC() *NPC {
	if r.NPC == nil || r.NPC.Dead {
		return nil
	}
	return r.NPC
}

// Planet groups rooms under a single identifier.
type Planet struct {
	Name    string
	Picture string
	Rooms   map[string]*Room
}

// Contains reports whether the planet owns a room with the given name.
func (p *Planet) Contains(roomName string) bool {
	_, ok := p.Rooms[roomName]
	return ok
}

// Start names the player's initial position.
type Start struct {
	Planet string
	Room   string
}

// World is the closed set of planets and rooms. Planet and room names
// are unique world-wide; duplicates are skipped at load time with a
// warning. Iteration order follows document declaration order so that
// planet scans behave deterministically.
type World struct {
	Start Start

	planets    map[string]*Planet
	planetList []string
	rooms      map[string]*Room
	roomList   []string
}

// New returns an empty world.
func New() *World {
	return &World{
		planets: make(map[string]*Planet),
		rooms:   make(map[string]*Room),
	}
}

// AddPlanet registers a planet. It reports false if a planet with the
// same name already exists, leaving the world unchanged.
func (w *World) AddPlanet(p *Planet) bool {
	if _, exists := w.planets[p.Name]; exists {
		return false
	}
	if p.Rooms == nil {
		p.Rooms = make(map[string]*Room)
	}
	w.planets[p.Name] = p
	w.planetList = append(w.planetList, p.Name)
	return true
}

// AddRoom registers a room under its owning planet. It reports false if
// a room with the same name already exists anywhere in the world.
func (w *World) AddRoom(r *Room) bool {
	if _, exists := w.rooms[r.Name]; exists {
		return false
	}
	w.rooms[r.Name] = r
	w.roomList = append(w.roomList, r.Name)
	if r.Planet != nil {
		r.Planet.Rooms[r.Name] = r
	}
	return true
}

// Planet looks up a planet by name.
func (w *World) Planet(name string) *Planet {
	return w.planets[name]
}

// Room looks up a room by its world-unique name.
func (w *World) Room(name string) *Room {
	return w.rooms[name]
}

// Planets returns all planets in declaration order.
func (w *World) Planets() []*Planet {
	planets := make([]*Planet, 0, len(w.planetList))
	for _, name := range w.planetList {
		planets = append(planets, w.planets[name])
	}
	return planets
}

// Rooms returns all rooms in declaration order.
func (w *World) Rooms() []*Room {
	rooms := make([]*Room, 0, len(w.roomList))
	for _, name := range w.roomList {
		rooms = append(rooms, w.rooms[name])
	}
	return rooms
}

// PlanetOf scans planets in declaration order and returns the first one
// containing a room with the given name, or nil.
func (w *World) PlanetOf(roomName string) *Planet {
	for _, name := range w.planetList {
		if w.planets[name].Contains(roomName) {
			return w.planets[name]
		}
	}
	return nil
}

// Clone returns a deep copy of the world so that independent sessions
// can mutate their own item lists, requirement lists and NPC slots.
func (w *World) Clone() *World {
	clone := New()
	clone.Start = w.Start
	for _, p := range w.Planets() {
		clone.AddPlanet(&Planet{
			Name:    p.Name,
			Picture: p.Picture,
			Rooms:   make(map[string]*Room, len(p.Rooms)),
		})
	}
	for _, r := range w.Rooms() {
		room := &Room{
			Name:         r.Name,
			Description:  r.Description,
			Planet:       clone.Planet(r.Planet.Name),
			Connections:  append([]Connection(nil), r.Connections...),
			Items:        append([]string(nil), r.Items...),
			Requirements: append([]string(nil), r.Requirements...),
			Objective:    r.Objective,
			Picture:      r.Picture,
		}
		if r.NPC != nil {
			npc := &NPC{
				FirstName: r.NPC.FirstName,
				LastName:  r.NPC.LastName,
				Room:      room,
				Hostile:   r.NPC.Hostile,
				Dead:      r.NPC.Dead,
				Inventory: append([]string(nil), r.NPC.Inventory...),
				Dialogues: make(map[string][]string, len(r.NPC.Dialogues)),
			}
			for topic, lines := range r.NPC.Dialogues {
				npc.Dialogues[topic] = append([]string(nil), lines...)
			}
			room.NPC = npc
		}
		clone.AddRoom(room)
	}
	return clone
}
