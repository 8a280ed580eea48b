package engine

// Script names the rooms and items with scripted behavior. Room name
// comparisons against the script are case-insensitive. The zero value
// is not useful; start from DefaultScript and override as needed.
type Script struct {
	// StartPlanet and StartRoom position a new session when the world
	// document does not declare its own start.
	StartPlanet string
	StartRoom   string

	// OpeningObjective seeds the objective log before first room entry.
	OpeningObjective string

	// FatalRoom triggers the death event on entry via move. The player
	// is relocated to TerminalRoom and the session stays active.
	FatalRoom    string
	TerminalRoom string

	// ReactorRoom is where Plant is valid; planting consumes Explosive
	// and permanently clears the room's requirement list.
	ReactorRoom string
	Explosive   string

	// ShieldGeneratorRoom is where Drop is valid; dropping consumes
	// Grenade and has no further world effect.
	ShieldGeneratorRoom string
	Grenade             string

	// Traveling from DepartureRoom to VictoryRoom is the sole win
	// condition.
	DepartureRoom string
	VictoryRoom   string

	// Weapons lists the item identifiers that count as being armed.
	Weapons []string

	DeathMessage   string
	VictoryMessage string
}

// DefaultScript returns the script for the shipped campaign.
func DefaultScript() Script {
	return Script{
		StartPlanet:         "Earth",
		StartRoom:           "Quarters",
		OpeningObjective:    "Go to the briefing room and talk to General Hammond.",
		FatalRoom:           "Front Gate",
		TerminalRoom:        "Ascend",
		ReactorRoom:         "Reactor",
		Explosive:           "C4",
		ShieldGeneratorRoom: "Shield Generator",
		Grenade:             "Grenade",
		DepartureRoom:       "Shuttle Bay",
		VictoryRoom:         "Briefing Room",
		Weapons:             []string{"P90", "M9", "C4", "Staff Weapon"},
		DeathMessage:        "You have been captured by the enemy forces and killed!\nGame Over.",
		VictoryMessage:      "You win!",
	}
}
