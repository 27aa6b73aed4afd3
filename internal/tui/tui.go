// Package tui is the terminal renderer for a local blackjack table.
package tui

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/game"
	"github.com/lox/blackjack/internal/move"
	"github.com/lox/blackjack/internal/player"
)

// maxLogLines bounds the scrollback kept in memory.
const maxLogLines = 500

// Model is the Bubble Tea model for one table. Input runs the game
// synchronously inside Update, so bus events arrive on the UI goroutine.
type Model struct {
	game   *game.Game
	logger *log.Logger
	keys   keyMap

	logViewport viewport.Model
	help        help.Model

	gameLog  []string
	status   string
	showHint bool
	quitting bool

	width       int
	height      int
	initialized bool
}

// New creates a model for g and subscribes it to the table's events.
func New(g *game.Game, logger *log.Logger) *Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	vp := viewport.New(10, 5)
	vp.KeyMap = logKeys()

	m := &Model{
		game:        g,
		logger:      logger.WithPrefix("tui"),
		keys:        defaultKeyMap(),
		logViewport: vp,
		help:        help.New(),
	}
	g.Bus().Subscribe(game.SubscriberFunc(m.onEvent))
	m.AddLogEntry(InfoStyle.Render("Press enter to deal."))
	return m
}

// Init initializes the TUI model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Hint):
			m.showHint = !m.showHint
			return m, nil
		case key.Matches(msg, m.keys.BetUp):
			m.changeBet(+1)
			return m, nil
		case key.Matches(msg, m.keys.BetDown):
			m.changeBet(-1)
			return m, nil
		}
		if mv, ok := m.keys.moveFor(msg.String()); ok {
			m.play(mv)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

// play sends one move to the table.
func (m *Model) play(mv move.Move) {
	m.status = ""
	if !slices.Contains(m.game.LegalMoves(), mv) {
		m.status = InfoStyle.Render(fmt.Sprintf("%s is not available now", mv))
		return
	}
	err := m.game.Step(mv)
	switch {
	case errors.Is(err, player.ErrInsufficientBalance):
		m.status = ErrorStyle.Render("Not enough chips for that.")
	case err != nil:
		m.status = ErrorStyle.Render(err.Error())
		m.logger.Error("Step failed", "move", mv, "error", err)
	}
}

func (m *Model) changeBet(dir float64) {
	r := m.game.Rules()
	bet := m.game.Bet() + dir*r.MinBet
	if err := m.game.SetBet(bet); err != nil {
		m.status = InfoStyle.Render(err.Error())
		return
	}
	m.status = ""
}

// onEvent turns table events into log lines.
func (m *Model) onEvent(e game.GameEvent) {
	switch e := e.(type) {
	case game.HandWinnerEvent:
		if e.PlayerID != m.game.Human().ID {
			return
		}
		line := fmt.Sprintf("Hand %d: %s, paid %.2f", e.HandID%100+1, e.Result, e.Result.Payout)
		switch e.Result.Outcome {
		case player.PlayerWin:
			line = SuccessStyle.Render(line)
		case player.DealerWin:
			line = ErrorStyle.Render(line)
		}
		m.AddLogEntry(line)
	case game.ShuffleEvent:
		msg := fmt.Sprintf("Shuffling %d decks", e.Decks)
		if e.Forced {
			msg += " (shoe ran out)"
		}
		m.AddLogEntry(WarningStyle.Render(msg))
	case game.CreateRecordEvent:
		if r, ok := e.Record.(game.MoveRecord); ok && r.Correction != "" {
			m.AddLogEntry(WarningStyle.Render("Correction: " + r.Correction))
		}
	case game.ResetStateEvent:
		m.AddLogEntry(InfoStyle.Render(strings.Repeat("─", 20)))
	}
}

// AddLogEntry adds an entry to the game log
func (m *Model) AddLogEntry(entry string) {
	m.gameLog = append(m.gameLog, entry)
	if len(m.gameLog) > maxLogLines {
		m.gameLog = m.gameLog[len(m.gameLog)-maxLogLines:]
	}
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// Log returns the log entries
func (m *Model) Log() []string {
	out := make([]string, len(m.gameLog))
	copy(out, m.gameLog)
	return out
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	tablePane := m.renderTable()
	sidebar := m.renderSidebar()
	actions := m.renderActions()

	sidebarWidth := max(28, lipgloss.Width(sidebar))
	tableWidth := max(1, m.width-sidebarWidth-4)
	topHeight := max(1, lipgloss.Height(tablePane), lipgloss.Height(sidebar))

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		paneStyle.Width(tableWidth).Height(topHeight).Render(tablePane),
		paneStyle.Width(sidebarWidth).Height(topHeight).Render(sidebar),
	)
	bottom := paneStyle.Width(max(1, m.width-2)).Render(actions)

	logHeight := max(1, m.height-lipgloss.Height(top)-lipgloss.Height(bottom)-2)
	m.logViewport.Width = max(1, m.width-2)
	m.logViewport.Height = logHeight
	if !m.initialized && logHeight > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}
	logPane := paneStyle.Width(max(1, m.width-2)).Height(logHeight).Render(m.logViewport.View())

	return lipgloss.JoinVertical(lipgloss.Left, top, logPane, bottom)
}

func (m *Model) renderTable() string {
	var b strings.Builder
	dealer := m.game.Dealer().Cards()
	b.WriteString(HeaderStyle.Render("Dealer"))
	b.WriteString("  ")
	b.WriteString(formatCards(dealer.Cards()))
	if dealer.Len() > 0 {
		fmt.Fprintf(&b, "  %s", InfoStyle.Render(fmt.Sprint(dealer.VisibleTotal())))
	}
	b.WriteString("\n\n")

	for _, p := range m.game.Players() {
		b.WriteString(m.renderSeat(p))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) renderSeat(p *player.Player) string {
	var b strings.Builder
	name := p.Name
	if p.IsUser() {
		name = HeaderStyle.Render(name)
	}
	fmt.Fprintf(&b, "%s  %s\n", name, InfoStyle.Render(fmt.Sprintf("%.2f", p.Balance)))

	focused := m.game.FocusedHand()
	for _, h := range p.Hands() {
		if h.Len() == 0 {
			continue
		}
		line := fmt.Sprintf("  %s  %d  bet %.0f", formatCards(h.Cards()), h.CardTotal(), h.Bet)
		if r, ok := p.Result(h.ID); ok {
			line += "  " + r.String()
		}
		if p.IsUser() && h == focused && m.game.State() == game.WaitingForPlayInput {
			line = FocusedHandStyle.Render("▸") + line[1:]
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m *Model) renderSidebar() string {
	s := m.game.Session()
	sh := m.game.Shoe()
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", WarningStyle.Render(fmt.Sprintf("Bet: %.0f", m.game.Bet())))
	fmt.Fprintf(&b, "Balance: %.2f\n", m.game.Human().Balance)
	fmt.Fprintf(&b, "Rounds: %d\n", s.Rounds)
	fmt.Fprintf(&b, "Accuracy: %d/%d (%.0f%%)\n", s.LifetimeCorrect, s.LifetimeMoves, s.LifetimeAccuracy()*100)
	fmt.Fprintf(&b, "Shoe: %d/%d cards\n", sh.Remaining(), sh.Capacity())
	fmt.Fprintf(&b, "RC %+d  TC %+.1f\n", sh.RunningCount(), sh.TrueCount())
	fmt.Fprintf(&b, "Mode: %s\n", sh.Mode())
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) renderActions() string {
	var b strings.Builder
	legal := m.game.LegalMoves()
	names := make([]string, 0, len(legal))
	for _, mv := range legal {
		names = append(names, "["+mv.String()+"]")
	}
	b.WriteString(ActionsStyle.Render("Actions: " + strings.Join(names, " ")))
	if m.showHint {
		if advice := m.game.Advise(); advice != move.Invalid {
			b.WriteString("  ")
			b.WriteString(HandInfoStyle.Render("Hint: " + advice.String()))
		}
	}
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.status + "\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// formatCards formats cards with colors
func formatCards(cards []deck.Card) string {
	if len(cards) == 0 {
		return ""
	}
	formatted := make([]string, 0, len(cards))
	for _, c := range cards {
		switch {
		case !c.FaceUp:
			formatted = append(formatted, HiddenCardStyle.Render("??"))
		case c.Suit.IsRed():
			formatted = append(formatted, RedCardStyle.Render(c.String()))
		default:
			formatted = append(formatted, BlackCardStyle.Render(c.String()))
		}
	}
	return "[" + strings.Join(formatted, " ") + "]"
}

// Run starts the interactive program and blocks until the user quits.
func Run(g *game.Game, logger *log.Logger, opts ...tea.ProgramOption) error {
	_, err := tea.NewProgram(New(g, logger), append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)...).Run()
	return err
}
