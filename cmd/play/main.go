// Command play runs the game as a plain line-oriented console loop:
// numbered menus for movement and travel, a topic submenu for
// conversation, and prompt re-offers on malformed input.
package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/jmcardle/gatewalker/internal/config"
	"github.com/jmcardle/gatewalker/pkg/engine"
	"github.com/jmcardle/gatewalker/pkg/state"
	"github.com/jmcardle/gatewalker/pkg/story"
	"github.com/jmcardle/gatewalker/pkg/world"
)

const divider = "========================================"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	// Keep load warnings visible but off the transcript.
	logg := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	w, err := world.LoadFromFile(cfg.WorldFile, logg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load world: %v\n", err)
		os.Exit(1)
	}
	st, err := story.LoadFromFile(cfg.StoryFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load story: %v\n", err)
		os.Exit(1)
	}

	resolver := engine.New(st, engine.DefaultScript(), nil, logg)

	fmt.Println(divider)
	fmt.Println(resolver.Intro())
	fmt.Println(divider)

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("\nEnter your name: ")
	if !scanner.Scan() {
		return
	}
	name := strings.TrimSpace(scanner.Text())
	if name == "" {
		name = "Traveler"
	}

	s, err := resolver.NewSession(w, name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start session: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\n" + resolver.RoomStatus(s))

	for s.Status == state.StatusActive {
		actions := resolver.AvailableActions(s)
		fmt.Println("\n--- Available Actions ---")
		for _, action := range actions {
			fmt.Printf("[%s] %s\n", action, actionHint(action))
		}
		fmt.Println(strings.Repeat("-", 40))

		fmt.Print("What do you want to do? ")
		if !scanner.Scan() {
			return
		}
		input := strings.ToLower(strings.TrimSpace(scanner.Text()))
		fmt.Println(divider)

		if !contains(actions, engine.Action(input)) {
			fmt.Println("Invalid action. Please try again.")
			continue
		}

		switch engine.Action(input) {
		case engine.ActionMove:
			handleMove(scanner, resolver, s)
		case engine.ActionTravel:
			handleTravel(scanner, resolver, s)
		case engine.ActionPickup:
			handlePickup(scanner, resolver, s)
		case engine.ActionInteract:
			handleInteract(scanner, resolver, s)
		case engine.ActionKill:
			handleKill(scanner, resolver, s)
		case engine.ActionPlant:
			fmt.Println(resolver.Plant(s))
		case engine.ActionDrop:
			fmt.Println(resolver.Drop(s))
		case engine.ActionQuit:
			fmt.Println(resolver.Quit(s))
		}
	}
}

func actionHint(action engine.Action) string {
	switch action {
	case engine.ActionMove:
		return "Move to another room."
	case engine.ActionQuit:
		return "Quit the game."
	case engine.ActionPickup:
		return "Pick up an item."
	case engine.ActionInteract:
		return "Interact with the NPC."
	case engine.ActionKill:
		return "Attack the enemy."
	case engine.ActionTravel:
		return "Travel to another planet."
	case engine.ActionPlant:
		return "Plant the explosives."
	case engine.ActionDrop:
		return "Drop a grenade."
	}
	return ""
}

func contains(actions []engine.Action, action engine.Action) bool {
	for _, a := range actions {
		if a == action {
			return true
		}
	}
	return false
}

// choose presents a numbered menu and returns the selected index, or
// -1 if the input was not a valid number in range.
func choose(scanner *bufio.Scanner, prompt string, options []string) int {
	for i, option := range options {
		fmt.Printf("[%d] %s\n", i+1, option)
	}
	fmt.Print(prompt)
	if !scanner.Scan() {
		return -1
	}
	choice, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		fmt.Println("Invalid input. Please enter a number.")
		return -1
	}
	if choice < 1 || choice > len(options) {
		fmt.Println("Invalid choice. Please try again.")
		return -1
	}
	return choice - 1
}

func handleMove(scanner *bufio.Scanner, resolver *engine.Resolver, s *state.Session) {
	conns := s.Player.Room.LocalConnections()
	if len(conns) == 0 {
		fmt.Println("There are no local connections from this room.")
		return
	}
	options := make([]string, len(conns))
	for i, conn := range conns {
		options[i] = conn.To
	}
	fmt.Println("\nAvailable rooms:")
	if idx := choose(scanner, "Enter the number of the room you want to move to: ", options); idx >= 0 {
		fmt.Println(resolver.Move(s, conns[idx].To))
	}
}

func handleTravel(scanner *bufio.Scanner, resolver *engine.Resolver, s *state.Session) {
	conns := s.Player.Room.InterplanetaryConnections()
	options := make([]string, len(conns))
	for i, conn := range conns {
		options[i] = conn.To
	}
	fmt.Println("\nAvailable destinations:")
	if idx := choose(scanner, "Enter the number of the destination: ", options); idx >= 0 {
		fmt.Println(resolver.Travel(s, idx))
	}
}

func handlePickup(scanner *bufio.Scanner, resolver *engine.Resolver, s *state.Session) {
	items := s.Player.Room.Items
	if len(items) == 0 {
		fmt.Printf("There are no items in %s.\n", s.Player.Room.Name)
		return
	}
	fmt.Printf("\nItems in %s:\n", s.Player.Room.Name)
	if idx := choose(scanner, "Enter the number of the item you want to pick up: ", items); idx >= 0 {
		fmt.Println(resolver.Pickup(s, items[idx]))
	}
}

func handleInteract(scanner *bufio.Scanner, resolver *engine.Resolver, s *state.Session) {
	fmt.Println(resolver.Interact(s))

	npc := s.Player.Room.LiveNPC()
	if npc == nil || npc.Hostile {
		return
	}
	topics := npc.Topics()
	if len(topics) == 0 && len(npc.Inventory) == 0 {
		return
	}

	for {
		options := append([]string(nil), topics...)
		if len(npc.Inventory) > 0 {
			options = append(options, "Trade")
		}
		options = append(options, "End Conversation")

		fmt.Println("\nTopics to discuss:")
		idx := choose(scanner, "Choose a topic by entering the number: ", options)
		if idx < 0 {
			continue
		}
		switch options[idx] {
		case "End Conversation":
			fmt.Printf("You end the conversation with %s.\n", npc.Name())
			return
		case "Trade":
			handleTrade(scanner, resolver, s, npc)
		default:
			fmt.Println(resolver.Talk(s, topics[idx]))
		}
	}
}

func handleTrade(scanner *bufio.Scanner, resolver *engine.Resolver, s *state.Session, npc *world.NPC) {
	fmt.Printf("\n%s offers:\n", npc.Name())
	if idx := choose(scanner, "Enter the number of the item you want: ", npc.Inventory); idx >= 0 {
		fmt.Println(resolver.Trade(s, npc.Inventory[idx]))
	}
}

func handleKill(scanner *bufio.Scanner, resolver *engine.Resolver, s *state.Session) {
	fmt.Print("Who do you want to attack? Enter their first name: ")
	if !scanner.Scan() {
		return
	}
	fmt.Println(resolver.Kill(s, strings.TrimSpace(scanner.Text())))
}
