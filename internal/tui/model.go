// Package tui renders the year-end recap as a full-screen slideshow.
package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"gachaledger/internal/recap"
)

// receiptSavedMsg reports the outcome of writing the receipt file.
type receiptSavedMsg struct {
	err  error
	path string
}

// Model holds the slideshow state: the computed recap, the current slide
// index and a viewport for the scrollable slides.
type Model struct {
	recap     *recap.Recap
	saveErr   error
	savedPath string
	keymap    KeyMap
	viewport  viewport.Model
	index     int
	width     int
	height    int
	quitting  bool
	ready     bool
}

// newModel creates a slideshow over a computed recap.
func newModel(r *recap.Recap) Model {
	return Model{
		recap:  r,
		keymap: DefaultKeyMap(),
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.EnterAltScreen
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport = viewport.New(msg.Width-4, msg.Height-6)
		m.ready = true
		m.refreshViewport()

	case receiptSavedMsg:
		m.saveErr = msg.err
		m.savedPath = msg.path
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.ForceQuit), key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Next):
		if m.index == len(m.recap.Slides)-1 {
			m.quitting = true
			return m, tea.Quit
		}
		m.index++
		m.refreshViewport()

	case key.Matches(msg, m.keymap.Prev):
		if m.index > 0 {
			m.index--
			m.refreshViewport()
		}

	case key.Matches(msg, m.keymap.Up):
		m.viewport.LineUp(1)

	case key.Matches(msg, m.keymap.Down):
		m.viewport.LineDown(1)

	case key.Matches(msg, m.keymap.Save):
		return m, m.saveReceipt()
	}

	return m, nil
}

// refreshViewport reloads the current slide's body into the viewport.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderSlideBody(m.recap.Slides[m.index]))
	m.viewport.GotoTop()
}

// saveReceipt writes the full-year receipt next to the working directory.
func (m Model) saveReceipt() tea.Cmd {
	r := m.recap
	return func() tea.Msg {
		path := fmt.Sprintf("recap_receipt_%d.txt", r.Year)
		if err := os.WriteFile(path, []byte(r.ReceiptText()), 0o644); err != nil {
			return receiptSavedMsg{err: err}
		}
		return receiptSavedMsg{path: path}
	}
}
