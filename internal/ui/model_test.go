package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amaumene/gomovies/internal/app"
	"github.com/amaumene/gomovies/internal/models"
)

type fakeSession struct {
	queries      []string
	submits      int
	updates      chan app.State
	done         chan struct{}
	unsubscribed bool
}

func newFakeSession() *fakeSession {
	return &fakeSession{updates: make(chan app.State, 1), done: make(chan struct{})}
}

func (f *fakeSession) SetQuery(q string) { f.queries = append(f.queries, q) }
func (f *fakeSession) Submit()           { f.submits++ }
func (f *fakeSession) Snapshot() app.State {
	return app.State{Loading: true}
}
func (f *fakeSession) Subscribe(int) (<-chan app.State, func()) {
	return f.updates, func() { f.unsubscribed = true }
}
func (f *fakeSession) Done() <-chan struct{} { return f.done }

func typeRunes(t *testing.T, m tea.Model, s string) tea.Model {
	t.Helper()
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestModel_ForwardsTyping(t *testing.T) {
	session := newFakeSession()
	var m tea.Model = NewModel(session)

	m = typeRunes(t, m, "dune")

	assert.Equal(t, []string{"d", "du", "dun", "dune"}, session.queries)
	assert.Equal(t, "dune", m.(Model).state.Query)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "dun", session.queries[len(session.queries)-1])
}

func TestModel_EnterSubmits(t *testing.T) {
	session := newFakeSession()
	var m tea.Model = NewModel(session)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, 1, session.submits)
	assert.Empty(t, session.queries)
}

func TestModel_EscQuits(t *testing.T) {
	for _, key := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		var m tea.Model = NewModel(newFakeSession())
		_, cmd := m.Update(tea.KeyMsg{Type: key})
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestModel_ReceivesState(t *testing.T) {
	session := newFakeSession()
	m := NewModel(session)
	assert.True(t, m.state.Loading, "starts from the session snapshot")

	session.updates <- app.State{Movies: []models.Movie{{ID: 1, Title: "Heat"}}}
	msg := waitForState(m.updates, m.done)()

	updated, cmd := m.Update(msg)
	assert.NotNil(t, cmd, "keeps listening")
	assert.Contains(t, updated.View(), "Heat")
}

func TestModel_QuitsWhenSessionStops(t *testing.T) {
	session := newFakeSession()
	m := NewModel(session)
	close(session.done)

	msg := waitForState(m.updates, m.done)()
	assert.IsType(t, sessionClosedMsg{}, msg)

	_, cmd := m.Update(msg)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_WindowResize(t *testing.T) {
	var m tea.Model = NewModel(newFakeSession())
	m, _ = m.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	assert.Equal(t, 140, m.(Model).width)
}

func TestModel_Close(t *testing.T) {
	session := newFakeSession()
	m := NewModel(session)
	m.Close()
	assert.True(t, session.unsubscribed)
}
