package main

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/jmcardle/gatewalker/internal/handlers"
	"github.com/jmcardle/gatewalker/pkg/state"
)

const PlaceHolderText = "Type a command (e.g. 'move Briefing Room')..."

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	config       *ConsoleConfig
	client       *http.Client
	session      *handlers.SessionResponse
	transcript   []transcriptEntry
	gameViewport viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	ready        bool
	width        int
	height       int
	err          error
	loading      bool

	// Quit confirmation state
	showQuitModal bool

	// Progress bar state
	progressTick int
}

type transcriptEntry struct {
	fromPlayer bool
	text       string
}

type actionResultMsg struct {
	session *handlers.SessionResponse
	err     error
}

type progressTickMsg struct{}

var (
	gamePanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")). // teal
			Bold(true)

	gameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")) // purple

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true).
			Align(lipgloss.Center)

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey
)

func NewConsoleUI(cfg *ConsoleConfig, client *http.Client, created *handlers.CreateSessionResponse) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 200
	ta.SetWidth(50)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false

	gameVp := viewport.New(50, 20)
	gameVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	session := created.SessionResponse
	transcript := []transcriptEntry{
		{text: created.Intro},
		{text: session.RoomStatus},
	}

	return ConsoleUI{
		config:       cfg,
		client:       client,
		session:      &session,
		transcript:   transcript,
		textarea:     ta,
		gameViewport: gameVp,
		metaViewport: metaVp,
	}
}

func (m *ConsoleUI) writeTranscript() {
	gameWidth := m.gameViewport.Width - 6

	var content strings.Builder
	content.WriteString(titleStyle.Render("GATEWALKER") + "\n\n")
	content.WriteString("Type commands below to explore. /help lists them.\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", max(gameWidth-6, 1))) + "\n\n")

	for _, entry := range m.transcript {
		if entry.fromPlayer {
			content.WriteString(userStyle.Render("You: ") + wordwrap.String(entry.text, gameWidth-6) + "\n\n")
		} else {
			content.WriteString(gameStyle.Render(wordwrap.String(entry.text, gameWidth)) + "\n\n")
		}
	}

	if m.loading {
		content.WriteString(m.renderProgressBar())
	}

	m.gameViewport.SetContent(content.String())
	m.gameViewport.GotoBottom()
}

func (m *ConsoleUI) writeMetadata() string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("SESSION") + "\n\n")

	content.WriteString("ID:\n")
	content.WriteString(m.session.ID.String()[:8] + "...\n\n")

	content.WriteString("Status:\n")
	content.WriteString(string(m.session.Status) + "\n\n")

	if len(m.session.Inventory) > 0 {
		content.WriteString("Inventory:\n")
		for _, item := range m.session.Inventory {
			content.WriteString("• " + item + "\n")
		}
		content.WriteString("\n")
	}

	if len(m.session.Objectives) > 0 {
		content.WriteString("Objective:\n")
		content.WriteString(m.session.Objectives[len(m.session.Objectives)-1] + "\n\n")
	}

	content.WriteString("Actions:\n")
	for _, action := range m.session.AvailableActions {
		content.WriteString("• " + string(action) + "\n")
	}

	content.WriteString("\n")
	content.WriteString("Commands:\n")
	content.WriteString("• Ctrl+C: Quit\n")
	content.WriteString("• Enter: Send\n")
	content.WriteString("• /help: Help\n")
	content.WriteString("• /copy: Copy log\n")

	return content.String()
}

func (m ConsoleUI) Init() tea.Cmd {
	return textarea.Blink
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.gameViewport, vpCmd = m.gameViewport.Update(msg)
		m.textarea, tiCmd = m.textarea.Update(msg)
		m.metaViewport, mvCmd = m.metaViewport.Update(msg)
		return m, tea.Batch(tiCmd, vpCmd, mvCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		gameWidth := int(float64(m.width)*0.75) - 4
		metaWidth := m.width - gameWidth - 6

		m.gameViewport.Width = gameWidth - 2
		m.gameViewport.Height = m.height - 7
		m.metaViewport.Width = metaWidth - 2
		m.metaViewport.Height = m.height - 4
		m.textarea.SetWidth(gameWidth - 4)

		m.ready = true
		m.writeTranscript()
		m.metaViewport.SetContent(m.writeMetadata())

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyEnter:
			if m.loading {
				return m, nil
			}

			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}

			if strings.HasPrefix(input, "/") {
				return m.handleCommand(input)
			}

			m.textarea.Reset()

			if m.session.Status != state.StatusActive {
				m.transcript = append(m.transcript, transcriptEntry{text: "The game has ended. Press Ctrl+C to exit."})
				m.writeTranscript()
				return m, nil
			}

			req, err := parseActionInput(input)
			if err != nil {
				m.transcript = append(m.transcript,
					transcriptEntry{fromPlayer: true, text: input},
					transcriptEntry{text: err.Error()})
				m.writeTranscript()
				return m, nil
			}

			m.loading = true
			m.progressTick = 0
			m.transcript = append(m.transcript, transcriptEntry{fromPlayer: true, text: input})
			m.writeTranscript()

			return m, tea.Batch(m.sendAction(req), progressTick())
		}

	case actionResultMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			m.transcript = append(m.transcript, transcriptEntry{text: errorStyle.Render("Error: " + msg.err.Error())})
		} else {
			m.session = msg.session
			m.transcript = append(m.transcript, transcriptEntry{text: msg.session.Message})
			m.metaViewport.SetContent(m.writeMetadata())
		}
		m.writeTranscript()
		return m, nil

	case progressTickMsg:
		if m.loading {
			m.progressTick++
			m.writeTranscript()
			return m, progressTick()
		}
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.gameViewport, vpCmd = m.gameViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

// parseActionInput turns a typed command line into an API action request.
// The first word is the verb; the rest is the target, except for travel,
// which takes a 1-based destination number.
func parseActionInput(input string) (handlers.ActionRequest, error) {
	verb, rest, _ := strings.Cut(input, " ")
	verb = strings.ToLower(verb)
	rest = strings.TrimSpace(rest)

	switch verb {
	case "move", "pickup", "kill", "trade":
		if rest == "" {
			return handlers.ActionRequest{}, fmt.Errorf("Usage: %s <name>", verb)
		}
		return handlers.ActionRequest{Action: verb, Target: rest}, nil
	case "talk":
		if rest == "" {
			return handlers.ActionRequest{}, fmt.Errorf("Usage: talk <topic>")
		}
		return handlers.ActionRequest{Action: "interact", Target: rest}, nil
	case "travel":
		n, err := strconv.Atoi(rest)
		if err != nil || n < 1 {
			return handlers.ActionRequest{}, fmt.Errorf("Usage: travel <number>")
		}
		idx := n - 1
		return handlers.ActionRequest{Action: "travel", Index: &idx}, nil
	case "interact", "plant", "drop", "quit":
		return handlers.ActionRequest{Action: verb}, nil
	default:
		return handlers.ActionRequest{}, fmt.Errorf("Unknown command %q. /help lists commands.", verb)
	}
}

func (m ConsoleUI) handleCommand(input string) (tea.Model, tea.Cmd) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "/help":
		helpText := `Commands:
• move <room> - Move to a connected room
• travel <number> - Travel to another planet
• pickup <item> - Pick up an item
• interact - Greet the person in the room
• talk <topic> - Discuss a topic with them
• trade <item> - Trade for one of their items
• kill <first name> - Attack an enemy
• plant - Plant the explosives
• drop - Drop a grenade
• quit - End the game
• /copy - Copy the transcript to the clipboard`
		m.transcript = append(m.transcript, transcriptEntry{text: helpText})
		m.writeTranscript()

	case "/copy":
		var log strings.Builder
		for _, entry := range m.transcript {
			if entry.fromPlayer {
				log.WriteString("You: ")
			}
			log.WriteString(entry.text + "\n")
		}
		if err := clipboard.WriteAll(log.String()); err != nil {
			m.transcript = append(m.transcript, transcriptEntry{text: errorStyle.Render("Copy failed: " + err.Error())})
		} else {
			m.transcript = append(m.transcript, transcriptEntry{text: "Transcript copied to clipboard."})
		}
		m.writeTranscript()
	}

	m.textarea.Reset()
	return m, nil
}

func (m ConsoleUI) sendAction(req handlers.ActionRequest) tea.Cmd {
	return func() tea.Msg {
		session, err := postAction(m.client, m.config.APIBaseURL, m.session.ID, req)
		return actionResultMsg{session, err}
	}
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc, tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				m.textarea.Focus()
				return m, textarea.Blink
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit Game?"))
	content.WriteString("\n\n")
	content.WriteString("Are you sure you want to leave the expedition?")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	gameWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - gameWidth - 6

	gamePanel := gamePanelStyle.Width(gameWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.gameViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", max(gameWidth-4, 1))),
			m.textarea.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, gamePanel, metaPanel)
}

// renderProgressBar draws the animated bar shown while a command is in
// flight.
func (m ConsoleUI) renderProgressBar() string {
	usable := m.gameViewport.Width - 6
	if usable <= 0 {
		usable = 30
	}
	if usable > 80 {
		usable = 80
	} else if usable < 10 {
		usable = 10
	}

	const totalFrames = 40
	frame := m.progressTick % totalFrames
	filled := (frame * usable) / totalFrames

	var bar strings.Builder
	for i := 0; i < usable; i++ {
		if i < filled {
			bar.WriteString("█")
		} else if i == filled && frame%4 < 2 {
			bar.WriteString("▓")
		} else {
			bar.WriteString("░")
		}
	}
	return separatorStyle.Render(bar.String())
}

func progressTick() tea.Cmd {
	return tea.Tick(time.Millisecond*200, func(time.Time) tea.Msg {
		return progressTickMsg{}
	})
}
