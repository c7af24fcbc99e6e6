package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gachaledger/internal/model"
	"gachaledger/internal/parse"
	"gachaledger/internal/recap"
)

func testRecap(t *testing.T) *recap.Recap {
	t.Helper()

	ledger := []model.Transaction{
		{
			Date:     time.Date(2024, time.March, 5, 0, 0, 0, 0, parse.KST),
			Title:    "리바이브 패스 (트릭컬 리바이브)",
			App:      "트릭컬 리바이브",
			Price:    11000,
			Currency: model.Won,
			Store:    model.GooglePlay,
		},
		{
			Date:     time.Date(2024, time.April, 2, 0, 0, 0, 0, parse.KST),
			Title:    "데일리 왕사탕 공물",
			App:      "트릭컬 리바이브",
			Price:    1200,
			Currency: model.Won,
			Store:    model.AppStore,
		},
	}
	r, err := recap.Build("트릭컬 리바이브", 2024, model.Won, ledger)
	require.NoError(t, err)
	return r
}

func resize(m Model) Model {
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated.(Model)
}

func keyPress(m Model, key string) Model {
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
	return updated.(Model)
}

func TestSlideNavigation(t *testing.T) {
	m := resize(newModel(testRecap(t)))
	require.True(t, m.ready)
	assert.Equal(t, 0, m.index)

	m = keyPress(m, "l")
	assert.Equal(t, 1, m.index)

	m = keyPress(m, "h")
	assert.Equal(t, 0, m.index)

	// Backing up off the first slide stays put.
	m = keyPress(m, "h")
	assert.Equal(t, 0, m.index)
}

func TestQuitOnLastSlide(t *testing.T) {
	m := resize(newModel(testRecap(t)))

	for i := 0; i < len(m.recap.Slides)-1; i++ {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
		m = updated.(Model)
	}
	assert.Equal(t, len(m.recap.Slides)-1, m.index)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = updated.(Model)
	require.NotNil(t, cmd)
	assert.True(t, m.quitting)
	assert.Empty(t, m.View())
}

func TestViewShowsSlideContent(t *testing.T) {
	m := resize(newModel(testRecap(t)))

	view := m.View()
	assert.Contains(t, view, "2024년 트릭컬 리바이브")
	assert.Contains(t, view, "1/")

	// Walk to the total slide and check the amount shows up.
	m = keyPress(m, "l")
	assert.Contains(t, m.View(), "₩12,200")
}

func TestReceiptSavedFooter(t *testing.T) {
	m := resize(newModel(testRecap(t)))

	updated, _ := m.Update(receiptSavedMsg{path: "recap_receipt_2024.txt"})
	m = updated.(Model)
	assert.Contains(t, m.View(), "recap_receipt_2024.txt")
}
