package main

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jwebster45206/dialogue-engine/pkg/dialogue"
	"github.com/jwebster45206/dialogue-engine/pkg/goals"
	"github.com/jwebster45206/dialogue-engine/pkg/sentence"
	"github.com/jwebster45206/dialogue-engine/pkg/world"
)

const PlaceHolderText = "go north | get the red ball | open the drawer..."

var titleCaser = cases.Title(language.English)

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	gen   *dialogue.Generator
	w     *world.World
	user  *world.Entity
	agent *world.Entity

	chatViewport viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	ready        bool
	width        int
	height       int
	loading      bool

	lines     []string
	dialogues int
	successes int

	// Agent selection state
	showAgentModal bool
	agents         []*world.Entity
	selectedAgent  int

	// Quit confirmation state
	showQuitModal bool
}

type dialogueDoneMsg struct {
	lines  []string
	result goals.Result
}

var (
	chatPanelStyle = lipgloss.NewStyle().
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
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	engineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)

	modalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	modalSelectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("0")).
				Background(lipgloss.Color("205")).
				Bold(true)
)

var separatorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240")) // dark grey

func NewConsoleUI(gen *dialogue.Generator, w *world.World, user *world.Entity) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 200
	ta.SetWidth(50)
	ta.SetHeight(3)
	ta.ShowLineNumbers = false

	chatVp := viewport.New(50, 20)
	chatVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	var agents []*world.Entity
	for _, p := range w.Players {
		if p != user {
			agents = append(agents, p)
		}
	}

	return ConsoleUI{
		gen:            gen,
		w:              w,
		user:           user,
		textarea:       ta,
		chatViewport:   chatVp,
		metaViewport:   metaVp,
		agents:         agents,
		showAgentModal: true,
	}
}

func playerName(p *world.Entity) string {
	if name, ok := p.Properties[world.PropName].(string); ok {
		return titleCaser.String(name)
	}
	return titleCaser.String(world.DisplayName(p))
}

func placeName(e *world.Entity) string {
	return strings.ReplaceAll(e.Key, "_", " ")
}

func (m *ConsoleUI) writeMetadata() {
	var content strings.Builder
	content.WriteString(titleStyle.Render("WORLD") + "\n\n")

	content.WriteString("You speak as:\n")
	content.WriteString(playerName(m.user) + "\n\n")

	content.WriteString("Talking to:\n")
	if m.agent != nil {
		content.WriteString(playerName(m.agent) + "\n\n")
	} else {
		content.WriteString("nobody yet\n\n")
	}

	content.WriteString("Players:\n")
	for _, p := range m.w.Players {
		if top := p.TopLocation(); top != nil {
			content.WriteString(fmt.Sprintf("• %s (%s)\n", playerName(p), placeName(top)))
		} else {
			content.WriteString(fmt.Sprintf("• %s\n", playerName(p)))
		}
	}
	content.WriteString("\n")

	content.WriteString("Dialogues:\n")
	content.WriteString(fmt.Sprintf("%d run, %d succeeded\n\n", m.dialogues, m.successes))

	content.WriteString("Commands:\n")
	content.WriteString("• Ctrl+C: Quit\n")
	content.WriteString("• Enter: Send\n")
	content.WriteString("• /help: Help\n")
	content.WriteString("• /agent: Switch agent\n")
	content.WriteString("• /copy: Copy transcript\n")

	m.metaViewport.SetContent(content.String())
}

// writeChatContent rebuilds the chat viewport from the transcript for
// the current width.
func (m *ConsoleUI) writeChatContent() {
	chatWidth := m.chatViewport.Width - 6

	var content strings.Builder
	content.WriteString(titleStyle.Render("DIALOGUE ENGINE") + "\n\n")
	content.WriteString("Direct the other players with short commands.\n")
	content.WriteString("Try: go north, get the red apple, is the drawer open?\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", max(chatWidth-6, 1))) + "\n\n")

	for _, line := range m.lines {
		content.WriteString(wordwrap.String(line, chatWidth) + "\n")
	}

	m.chatViewport.SetContent(content.String())
	m.chatViewport.GotoBottom()
}

func (m ConsoleUI) Init() tea.Cmd {
	return textarea.Blink
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showAgentModal {
		return m.updateAgentModal(msg)
	}
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
		m.chatViewport, vpCmd = m.chatViewport.Update(msg)
		m.textarea, tiCmd = m.textarea.Update(msg)
		m.metaViewport, mvCmd = m.metaViewport.Update(msg)
		return m, tea.Batch(tiCmd, vpCmd, mvCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.writeChatContent()
		m.writeMetadata()
		m.ready = true

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
			req, err := parseCommand(m.w, m.user, m.agent, input)
			if err != nil {
				m.lines = append(m.lines,
					userStyle.Render("You: ")+input,
					errorStyle.Render("Error: "+err.Error()), "")
				m.writeChatContent()
				return m, nil
			}

			m.lines = append(m.lines, userStyle.Render("You: ")+input)
			m.loading = true
			m.writeChatContent()
			return m, m.runDialogue(req)
		}

	case dialogueDoneMsg:
		m.loading = false
		m.dialogues++
		for _, line := range msg.lines {
			m.lines = append(m.lines, engineStyle.Render(line))
		}
		if msg.result == goals.Success {
			m.successes++
			m.lines = append(m.lines, resultStyle.Render("(request satisfied)"), "")
		} else {
			m.lines = append(m.lines, resultStyle.Render("(request not satisfied)"), "")
		}
		m.writeChatContent()
		m.writeMetadata()
		return m, nil
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.chatViewport, vpCmd = m.chatViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

func (m *ConsoleUI) resize() {
	chatWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - chatWidth - 6

	m.chatViewport.Width = chatWidth - 2
	m.chatViewport.Height = m.height - 7
	m.metaViewport.Width = metaWidth - 2
	m.metaViewport.Height = m.height - 4
	m.textarea.SetWidth(chatWidth - 4)
}

func (m ConsoleUI) runDialogue(req *sentence.Statement) tea.Cmd {
	return func() tea.Msg {
		start := m.gen.Context().Len()
		d := dialogue.New(m.gen, req, m.user, m.agent)
		result := d.Run(false)

		stmts := m.gen.Context().From(start)
		lines := make([]string, 0, len(stmts))
		for _, st := range stmts {
			lines = append(lines, st.String())
		}
		return dialogueDoneMsg{lines: lines, result: result}
	}
}

func (m ConsoleUI) handleCommand(input string) (tea.Model, tea.Cmd) {
	cmd := strings.ToLower(strings.TrimSpace(input))

	switch cmd {
	case "/help":
		helpText := `
Commands:
• go <direction>, go to <place>
• get <thing> [from <place>], drop <thing>
• look <thing>, open <thing>, close <thing>
• change <property> of <thing> to <value>
• is <thing> <value>?
• /agent - Talk to a different player
• /copy - Copy transcript to clipboard
• Ctrl+C - Quit
`
		m.lines = append(m.lines, titleStyle.Render("Help:")+helpText)
		m.writeChatContent()

	case "/agent":
		m.showAgentModal = true
		m.textarea.Reset()
		return m, nil

	case "/copy":
		transcript := stripANSI(m.lines)
		if err := clipboard.WriteAll(transcript); err != nil {
			m.lines = append(m.lines, errorStyle.Render("Error: "+err.Error()), "")
		} else {
			m.lines = append(m.lines, resultStyle.Render("(transcript copied)"), "")
		}
		m.writeChatContent()
	}

	m.textarea.Reset()
	return m, nil
}

// stripANSI rebuilds the raw transcript without styling escapes, by
// keeping only the plain statement text stored per line.
func stripANSI(lines []string) string {
	var sb strings.Builder
	for _, line := range lines {
		var plain strings.Builder
		inEscape := false
		for _, r := range line {
			switch {
			case r == '\x1b':
				inEscape = true
			case inEscape:
				if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
					inEscape = false
				}
			default:
				plain.WriteRune(r)
			}
		}
		sb.WriteString(plain.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

func (m ConsoleUI) updateAgentModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyUp:
			if m.selectedAgent > 0 {
				m.selectedAgent--
			}
		case tea.KeyDown:
			if m.selectedAgent < len(m.agents)-1 {
				m.selectedAgent++
			}
		case tea.KeyEnter:
			if len(m.agents) > 0 {
				m.agent = m.agents[m.selectedAgent]
				m.showAgentModal = false
				m.writeChatContent()
				m.writeMetadata()
				m.textarea.Focus()
				m.ready = true
				return m, textarea.Blink
			}
		}
	}

	return m, nil
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
				if m.showAgentModal {
					return m, nil
				}
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
	content.WriteString(modalTitleStyle.Render("Quit?"))
	content.WriteString("\n\n")
	content.WriteString("Leave the conversation?")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) renderAgentModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Who do you want to talk to?"))
	content.WriteString("\n\n")

	for i, agent := range m.agents {
		label := playerName(agent)
		if top := agent.TopLocation(); top != nil {
			label += " (" + placeName(top) + ")"
		}
		if i == m.selectedAgent {
			content.WriteString(modalSelectedItemStyle.Render(fmt.Sprintf("▶ %s", label)))
		} else {
			content.WriteString(modalItemStyle.Render(fmt.Sprintf("  %s", label)))
		}
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(promptStyle.Render("Use ↑/↓ to navigate, Enter to select, Ctrl+C to exit"))

	modal := modalStyle.Width(60).Render(content.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showAgentModal {
		return m.renderAgentModal()
	}
	if m.showQuitModal {
		return m.renderQuitModal()
	}
	if !m.ready {
		return "\n  Initializing..."
	}

	chatWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - chatWidth - 6

	chatPanel := chatPanelStyle.Width(chatWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.chatViewport.View(),
			"",
			separatorStyle.Render(strings.Repeat("─", max(chatWidth-4, 1))),
			m.textarea.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, chatPanel, metaPanel)
}
