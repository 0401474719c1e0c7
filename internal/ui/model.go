package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/amaumene/gomovies/internal/app"
	"github.com/amaumene/gomovies/internal/constants"
)

// Session is the part of app.Controller the terminal UI drives.
type Session interface {
	SetQuery(query string)
	Submit()
	Snapshot() app.State
	Subscribe(buffer int) (<-chan app.State, func())
	Done() <-chan struct{}
}

// stateMsg carries a State published by the session.
type stateMsg app.State

// sessionClosedMsg is sent once the session has stopped.
type sessionClosedMsg struct{}

// Model is the Bubble Tea model for the movie search screen.
type Model struct {
	session     Session
	updates     <-chan app.State
	done        <-chan struct{}
	unsubscribe func()

	input   textinput.Model
	spinner spinner.Model
	state   app.State
	width   int
}

// NewModel creates a Model bound to session. Call Close when the program
// exits.
func NewModel(session Session) Model {
	ti := textinput.New()
	ti.Placeholder = "Search through thousands of movies"
	ti.Prompt = "🔍 "
	ti.CharLimit = constants.MaxQueryLength
	ti.Width = 60
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = defaultStyles.Accent

	updates, unsubscribe := session.Subscribe(16)

	return Model{
		session:     session,
		updates:     updates,
		done:        session.Done(),
		unsubscribe: unsubscribe,
		input:       ti,
		spinner:     s,
		state:       session.Snapshot(),
	}
}

// Close stops the state subscription.
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, waitForState(m.updates, m.done))
}

func waitForState(updates <-chan app.State, done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case st := <-updates:
			return stateMsg(st)
		case <-done:
			return sessionClosedMsg{}
		}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(10, msg.Width-10)
		return m, nil

	case stateMsg:
		m.state = app.State(msg)
		return m, waitForState(m.updates, m.done)

	case sessionClosedMsg:
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyEnter:
		m.session.Submit()
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if value := m.input.Value(); value != before {
		m.state.Query = value
		m.session.SetQuery(value)
	}
	return m, cmd
}

func (m Model) View() string {
	return Render(m.state, m.input.View(), m.spinner.View(), m.width) +
		defaultStyles.Help.Render("enter: search now • esc: quit")
}
