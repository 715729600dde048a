// Package tui provides a Bubble Tea terminal browser for the game
// library.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/ia-launcher/internal/config"
	"github.com/handiism/ia-launcher/internal/dosbox"
	"github.com/handiism/ia-launcher/internal/library"
	"github.com/handiism/ia-launcher/internal/model"
	"github.com/handiism/ia-launcher/internal/session"
	"github.com/handiism/ia-launcher/internal/store"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F8B500")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F8B500"))

	installedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))
)

// State represents the current UI state.
type State int

const (
	StateBrowsing State = iota
	StateLaunching
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   store.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state   State
	spinner spinner.Model

	settings   *config.Settings
	games      []*model.Game
	cursor     int
	offset     int
	preview    string
	controller *session.Controller

	logs []LogEntry
	err  error

	progressCh chan store.ProgressEvent

	ctx    context.Context
	cancel context.CancelFunc

	width  int
	height int
}

// visibleRows is how many titles the list shows at once.
const visibleRows = 14

// NewModel creates a new TUI model. The library is scanned and the
// locator resolved before the program starts, so a missing emulator
// surfaces immediately instead of on first launch.
func NewModel(settings *config.Settings, locator dosbox.Locator) (Model, error) {
	ctx, cancel := context.WithCancel(context.Background())

	games, err := library.Scan(ctx, settings.LibraryPath)
	if err != nil {
		cancel()
		return Model{}, fmt.Errorf("scanning library %s: %w", settings.LibraryPath, err)
	}

	progressCh := make(chan store.ProgressEvent, 64)
	contentStore := store.NewStore(func(event store.ProgressEvent) {
		select {
		case progressCh <- event:
		default:
		}
	})

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#F8B500"))

	m := Model{
		state:      StateBrowsing,
		spinner:    sp,
		settings:   settings,
		games:      games,
		controller: session.NewController(contentStore, locator),
		progressCh: progressCh,
		ctx:        ctx,
		cancel:     cancel,
	}
	m.preview = m.renderPreview()

	return m, nil
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitForProgress())
}

// Message types
type (
	// ProgressMsg carries a content store event into the UI.
	ProgressMsg struct {
		Event store.ProgressEvent
	}

	// LaunchDoneMsg is sent when a session ends (for interactive
	// sessions) or the emulator has been spawned (autorun).
	LaunchDoneMsg struct {
		Game        string
		Interactive bool
		Err         error
	}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.cancel()
			return m, tea.Quit

		case "up", "k":
			if m.state == StateBrowsing && m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
				m.preview = m.renderPreview()
			}

		case "down", "j":
			if m.state == StateBrowsing && m.cursor < len(m.games)-1 {
				m.cursor++
				if m.cursor >= m.offset+visibleRows {
					m.offset = m.cursor - visibleRows + 1
				}
				m.preview = m.renderPreview()
			}

		case "enter":
			if m.state == StateBrowsing && len(m.games) > 0 {
				m.state = StateLaunching
				m.logs = nil
				return m, tea.Batch(m.launch(m.games[m.cursor], true), m.spinner.Tick)
			}

		case "i":
			// Interactive session: DOSBox stays open until the user
			// exits, and script edits are captured into metadata.
			if m.state == StateBrowsing && len(m.games) > 0 {
				m.state = StateLaunching
				m.logs = nil
				return m, tea.Batch(m.launch(m.games[m.cursor], false), m.spinner.Tick)
			}

		case "esc":
			if m.state == StateError {
				m.state = StateBrowsing
				m.err = nil
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		m.logs = append(m.logs, LogEntry{
			Message: msg.Event.Message,
			Level:   msg.Event.Level,
		})
		// Keep only last 8 logs
		if len(m.logs) > 8 {
			m.logs = m.logs[len(m.logs)-8:]
		}
		cmds = append(cmds, m.waitForProgress())

	case LaunchDoneMsg:
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.state = StateBrowsing
			if msg.Interactive {
				m.logs = append(m.logs, LogEntry{
					Message: fmt.Sprintf("Session for %s ended, changes captured", msg.Game),
					Level:   store.LevelSuccess,
				})
			}
		}
	}

	return m, tea.Batch(cmds...)
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("IA Launcher"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d titles in %s", len(m.games), m.settings.LibraryPath)))
	b.WriteString("\n\n")

	switch m.state {
	case StateBrowsing:
		b.WriteString(m.viewBrowser())
	case StateLaunching:
		b.WriteString(m.viewLaunching())
	case StateError:
		b.WriteString(m.viewError())
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewBrowser() string {
	if len(m.games) == 0 {
		return warningStyle.Render("Library is empty — add title directories with a metadata.ini")
	}

	var list strings.Builder
	end := m.offset + visibleRows
	if end > len(m.games) {
		end = len(m.games)
	}
	for i := m.offset; i < end; i++ {
		game := m.games[i]

		marker := "  "
		name := game.DisplayName()
		line := name
		if game.HasPayload() {
			line = installedStyle.Render(name)
		}
		if i == m.cursor {
			marker = "> "
			line = selectedStyle.Render(name)
		}
		list.WriteString(marker + line + "\n")
	}

	if m.preview == "" {
		return list.String()
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, list.String(), "   ", m.preview)
}

func (m Model) viewLaunching() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("Launching %s...", m.games[m.cursor].DisplayName())))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("Something went wrong:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString("  " + m.err.Error())
	}
	b.WriteString("\n")

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case store.LevelError:
			style = errorStyle
			prefix = "✗"
		case store.LevelWarning:
			style = warningStyle
			prefix = "!"
		case store.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case store.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateBrowsing:
		return "enter: play • i: interactive session • ↑/↓: browse • q: quit"
	case StateLaunching:
		return "waiting for the emulator..."
	case StateError:
		return "esc: back • q: quit"
	}
	return ""
}

// renderPreview renders the selected title's screenshot, if it has one.
func (m Model) renderPreview() string {
	if len(m.games) == 0 {
		return ""
	}
	path := m.games[m.cursor].TitleScreen()
	if path == "" {
		return ""
	}
	preview, err := RenderImageFile(path, 40, 28)
	if err != nil {
		return ""
	}
	return preview
}

// launch runs a session in the background and reports when it is done.
// For interactive sessions that means after the user exits DOSBox.
func (m *Model) launch(game *model.Game, autorun bool) tea.Cmd {
	return func() tea.Msg {
		err := m.controller.Start(m.ctx, game, autorun)
		return LaunchDoneMsg{
			Game:        game.DisplayName(),
			Interactive: !autorun,
			Err:         err,
		}
	}
}

// waitForProgress relays the next content store event into the UI.
func (m Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		event, ok := <-m.progressCh
		if !ok {
			return nil
		}
		return ProgressMsg{Event: event}
	}
}

// Run starts the TUI application.
func Run(settings *config.Settings, locator dosbox.Locator) error {
	m, err := NewModel(settings, locator)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
