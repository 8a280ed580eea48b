package state

import (
	"reflect"
	"testing"

	"github.com/google/uuid"

	"github.com/jmcardle/gatewalker/pkg/world"
)

func TestPlayerInventorySet(t *testing.T) {
	p := &Player{Inventory: make(map[string]bool)}

	p.AddItem("C4")
	p.AddItem("C4")
	if !p.HasItem("C4") {
		t.Error("HasItem(C4) = false after AddItem")
	}
	if got := p.Items(); len(got) != 1 {
		t.Errorf("re-adding an item must not duplicate it: %v", got)
	}

	p.AddItem("P90")
	p.AddItem("M9")
	want := []string{"C4", "M9", "P90"}
	if got := p.Items(); !reflect.DeepEqual(got, want) {
		t.Errorf("Items() = %v, want %v (sorted)", got, want)
	}

	p.RemoveItem("C4")
	if p.HasItem("C4") {
		t.Error("HasItem(C4) = true after RemoveItem")
	}
	p.RemoveItem("C4")
}

func TestPlayerHasAny(t *testing.T) {
	p := &Player{Inventory: map[string]bool{"M9": true}}

	if !p.HasAny([]string{"P90", "M9", "C4"}) {
		t.Error("HasAny should find M9")
	}
	if p.HasAny([]string{"P90", "C4"}) {
		t.Error("HasAny should report false when nothing matches")
	}
	if p.HasAny(nil) {
		t.Error("HasAny(nil) should be false")
	}
}

func TestNewSession(t *testing.T) {
	w := world.New()
	s := New(w, "Carter")

	if s.ID == uuid.Nil {
		t.Error("session should get a non-nil UUID")
	}
	if s.Status != StatusActive {
		t.Errorf("Status = %q, want %q", s.Status, StatusActive)
	}
	if s.Player.Name != "Carter" || s.Player.Health != DefaultHealth {
		t.Errorf("player = %+v", s.Player)
	}
	if s.World != w {
		t.Error("session should own the given world")
	}
}

func TestObjectiveLog(t *testing.T) {
	s := New(world.New(), "Carter")

	if s.CurrentObjective() != "" {
		t.Error("empty log should have no current objective")
	}

	s.LogObjective("Go to the briefing room.")
	s.LogObjective("")
	s.LogObjective("Travel to Chulak.")
	s.LogObjective("Go to the briefing room.")

	want := []string{"Go to the briefing room.", "Travel to Chulak."}
	if !reflect.DeepEqual(s.Objectives, want) {
		t.Errorf("Objectives = %v, want %v", s.Objectives, want)
	}
	if got := s.CurrentObjective(); got != "Travel to Chulak." {
		t.Errorf("CurrentObjective() = %q", got)
	}
}
