package world

import (
	"reflect"
	"testing"
)

func TestConnectionInterplanetary(t *testing.T) {
	tests := []struct {
		name string
		conn Connection
		want bool
	}{
		{name: "interplanetary kind", conn: Connection{To: "Gate Temple", Kind: KindInterplanetary}, want: true},
		{name: "local kind", conn: Connection{To: "Armory", Kind: "local"}, want: false},
		{name: "empty kind", conn: Connection{To: "Armory"}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.conn.Interplanetary(); got != tt.want {
				t.Errorf("Interplanetary() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRoomConnectionSplit(t *testing.T) {
	room := &Room{
		Name: "Gate Temple",
		Connections: []Connection{
			{To: "Village", Kind: "local"},
			{To: "Gate Room", Kind: KindInterplanetary},
			{To: "Shuttle Bay", Kind: KindInterplanetary},
		},
	}

	local := room.LocalConnections()
	if len(local) != 1 || local[0].To != "Village" {
		t.Errorf("LocalConnections() = %v, want [Village]", local)
	}

	travel := room.InterplanetaryConnections()
	want := []string{"Gate Room", "Shuttle Bay"}
	if len(travel) != len(want) {
		t.Fatalf("InterplanetaryConnections() returned %d connections, want %d", len(travel), len(want))
	}
	for i, conn := range travel {
		if conn.To != want[i] {
			t.Errorf("travel connection %d = %q, want %q (declaration order must hold)", i, conn.To, want[i])
		}
	}
}

func TestRoomRemoveItem(t *testing.T) {
	room := &Room{Name: "Armory", Items: []string{"P90", "M9"}}

	if !room.RemoveItem("P90") {
		t.Error("RemoveItem(P90) = false, want true")
	}
	if room.RemoveItem("P90") {
		t.Error("second RemoveItem(P90) = true, want false")
	}
	if !reflect.DeepEqual(room.Items, []string{"M9"}) {
		t.Errorf("Items = %v, want [M9]", room.Items)
	}
}

func TestNPCTopics(t *testing.T) {
	npc := &NPC{
		FirstName: "General",
		LastName:  "Hammond",
		Dialogues: map[string][]string{
			DefaultTopic: {"Welcome."},
			"mission":    {"Find the reactor."},
			"chulak":     {"Meet the resistance."},
		},
	}

	topics := npc.Topics()
	want := []string{"chulak", "mission"}
	if !reflect.DeepEqual(topics, want) {
		t.Errorf("Topics() = %v, want %v (sorted, default excluded)", topics, want)
	}
	if got := npc.Greetings(); len(got) != 1 || got[0] != "Welcome." {
		t.Errorf("Greetings() = %v, want [Welcome.]", got)
	}
	if got := npc.Name(); got != "General Hammond" {
		t.Errorf("Name() = %q", got)
	}
}

func TestRoomLiveNPC(t *testing.T) {
	npc := &NPC{FirstName: "Serpent", LastName: "Guard", Hostile: true}
	room := &Room{Name: "Corridor", NPC: npc}

	if room.LiveNPC() != npc {
		t.Error("LiveNPC() should return the living NPC")
	}
	npc.Dead = true
	if room.LiveNPC() != nil {
		t.Error("LiveNPC() should return nil for a dead NPC")
	}
	room.NPC = nil
	if room.LiveNPC() != nil {
		t.Error("LiveNPC() should return nil for an empty room")
	}
}

func TestWorldDuplicates(t *testing.T) {
	w := New()

	earth := &Planet{Name: "Earth"}
	if !w.AddPlanet(earth) {
		t.Fatal("first AddPlanet should succeed")
	}
	if w.AddPlanet(&Planet{Name: "Earth"}) {
		t.Error("duplicate AddPlanet should fail")
	}

	quarters := &Room{Name: "Quarters", Planet: earth}
	if !w.AddRoom(quarters) {
		t.Fatal("first AddRoom should succeed")
	}
	if w.AddRoom(&Room{Name: "Quarters", Planet: earth}) {
		t.Error("duplicate AddRoom should fail")
	}

	if w.Room("Quarters") != quarters {
		t.Error("Room lookup should return the first registration")
	}
	if !earth.Contains("Quarters") {
		t.Error("AddRoom should register the room on its planet")
	}
}

func TestWorldPlanetOf(t *testing.T) {
	w := New()
	earth := &Planet{Name: "Earth"}
	chulak := &Planet{Name: "Chulak"}
	w.AddPlanet(earth)
	w.AddPlanet(chulak)
	w.AddRoom(&Room{Name: "Quarters", Planet: earth})
	w.AddRoom(&Room{Name: "Village", Planet: chulak})

	if got := w.PlanetOf("Village"); got != chulak {
		t.Errorf("PlanetOf(Village) = %v, want Chulak", got)
	}
	if got := w.PlanetOf("Nowhere"); got != nil {
		t.Errorf("PlanetOf(Nowhere) = %v, want nil", got)
	}
}

func TestWorldClone(t *testing.T) {
	w := New()
	earth := &Planet{Name: "Earth", Picture: "earth.png"}
	w.AddPlanet(earth)
	w.AddRoom(&Room{
		Name:         "Reactor",
		Planet:       earth,
		Items:        []string{"C4"},
		Requirements: []string{"C4"},
		Connections:  []Connection{{To: "Corridor", Kind: "local"}},
		NPC: &NPC{
			FirstName: "Serpent",
			LastName:  "Guard",
			Hostile:   true,
			Inventory: []string{"Staff Weapon"},
			Dialogues: map[string][]string{DefaultTopic: {"Kree!"}},
		},
	})

	clone := w.Clone()

	// Mutating the clone must not leak into the original.
	cr := clone.Room("Reactor")
	cr.RemoveItem("C4")
	cr.ClearRequirements()
	cr.NPC.Dead = true
	cr.NPC.RemoveItem("Staff Weapon")

	orig := w.Room("Reactor")
	if len(orig.Items) != 1 || len(orig.Requirements) != 1 {
		t.Error("clone mutation leaked into original room")
	}
	if orig.NPC.Dead || len(orig.NPC.Inventory) != 1 {
		t.Error("clone mutation leaked into original NPC")
	}

	// Clone internals must be rewired, not shared.
	if cr.Planet == orig.Planet {
		t.Error("cloned room shares planet pointer with original")
	}
	if cr.NPC.Room != cr {
		t.Error("cloned NPC should point at the cloned room")
	}
	if clone.Planet("Earth").Rooms["Reactor"] != cr {
		t.Error("cloned planet should index the cloned room")
	}
}
