package tui

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/randutil"
	"github.com/lox/blackjack/internal/shoe"
)

func newTestModel(t *testing.T, cards string) *Model {
	t.Helper()
	DisableColor()
	cfg := config.Default()
	rng := randutil.New(3)
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	g, err := game.New(cfg,
		game.WithRand(rng),
		game.WithShoe(shoe.NewFromCards(cfg.Rules, rng, deck.MustParseCards(cards))),
		game.WithLogger(logger),
		game.WithClock(quartz.NewMock(t)),
	)
	require.NoError(t, err)
	m := New(g, logger)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func press(m *Model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		var msg tea.KeyMsg
		if k == "enter" {
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		} else {
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		_, cmd = m.Update(msg)
	}
	return cmd
}

func logContains(m *Model, s string) bool {
	for _, line := range m.Log() {
		if strings.Contains(line, s) {
			return true
		}
	}
	return false
}

func TestPlayRoundWithKeys(t *testing.T) {
	m := newTestModel(t, "T 5 6 9 8 8")

	press(m, "enter")
	require.Equal(t, game.WaitingForPlayInput, m.game.State())

	view := m.View()
	assert.Contains(t, view, "Dealer")
	assert.Contains(t, view, "[hit] [stand] [double] [surrender]")

	press(m, "s")
	assert.Equal(t, game.WaitingForNewGameInput, m.game.State())
	assert.True(t, logContains(m, "Hand 1: player"), "log: %v", m.Log())
	assert.Contains(t, m.View(), "Balance: 10010.00")
}

func TestUnavailableMoveIsReported(t *testing.T) {
	m := newTestModel(t, "T 5 6 9 8 8")
	press(m, "enter", "p")

	assert.Equal(t, game.WaitingForPlayInput, m.game.State())
	assert.Contains(t, m.View(), "split is not available now")
}

func TestMisplayShowsCorrection(t *testing.T) {
	m := newTestModel(t, "T 5 6 9 8 8")
	press(m, "enter", "h")

	assert.True(t, logContains(m, "Correction: T 6 vs 5 ?: stand, not hit"), "log: %v", m.Log())
	assert.Contains(t, m.View(), "Accuracy: 0/1")
}

func TestHintToggle(t *testing.T) {
	m := newTestModel(t, "T 5 6 9 8 8")
	press(m, "enter")
	assert.NotContains(t, m.View(), "Hint:")

	press(m, "?")
	assert.Contains(t, m.View(), "Hint: stand")
}

func TestBetKeys(t *testing.T) {
	m := newTestModel(t, "T 5 6 9 8 8")

	press(m, "+")
	assert.Equal(t, 20.0, m.game.Bet())
	press(m, "-", "-")
	assert.Equal(t, 10.0, m.game.Bet(), "bet stays at the table minimum")

	press(m, "+", "enter")
	assert.Equal(t, 20.0, m.game.Human().Hand(0).Bet)
	press(m, "+")
	assert.Equal(t, 20.0, m.game.Bet(), "bet is fixed during a round")
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, "T 5 6 9 8 8")
	cmd := press(m, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestLogIsBounded(t *testing.T) {
	m := newTestModel(t, "T 5 6 9 8 8")
	for i := range maxLogLines + 10 {
		m.AddLogEntry(strings.Repeat("x", i%7))
	}
	assert.Len(t, m.Log(), maxLogLines)
}
