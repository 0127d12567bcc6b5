// Package tui is an interactive explorer for hand probabilities.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/liarsodds/internal/chart"
	"github.com/lox/liarsodds/internal/hands"
	"github.com/lox/liarsodds/internal/probability"
)

const listWidth = 34

// Model is the Bubble Tea model for the explorer. The left pane lists every
// hand with its probability at the current number of cards on the table; the
// right pane shows the selected hand's full curve.
type Model struct {
	engine *probability.Engine
	logger *log.Logger

	kinds   []hands.Kind
	cursor  int
	draws   int
	matched [][]int // per hand, one count per MaxMatched entry
	slot    int     // which matched count +/- adjusts

	curve    viewport.Model
	width    int
	height   int
	err      error
	quitting bool
}

// NewModel creates an explorer starting at the given number of cards.
func NewModel(engine *probability.Engine, logger *log.Logger, draws int) *Model {
	size := engine.Deck().Size
	if draws < 0 {
		draws = 0
	}
	if draws > size {
		draws = size
	}

	vp := viewport.New(10, 5)
	vp.SetContent("")

	kinds := hands.Kinds()
	matched := make([][]int, len(kinds))
	for i, kind := range kinds {
		matched[i] = make([]int, len(kind.Shape().MaxMatched()))
	}
	return &Model{
		engine:  engine,
		logger:  logger.WithPrefix("tui"),
		kinds:   kinds,
		draws:   draws,
		matched: matched,
		curve:   vp,
	}
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Selected returns the highlighted hand.
func (m *Model) Selected() hands.Kind { return m.kinds[m.cursor] }

// Draws returns the current number of cards on the table.
func (m *Model) Draws() int { return m.draws }

// Matched returns how many cards of the selected hand are already held, one
// count per requirement: two pair and full house have two.
func (m *Model) Matched() []int { return append([]int(nil), m.matched[m.cursor]...) }

// Slot returns the index of the matched count that +/- adjusts.
func (m *Model) Slot() int { return m.slot }

// Err returns the last evaluation error, if any.
func (m *Model) Err() error { return m.err }

// Probability evaluates a hand at the current draw size with its matched
// counts. Hands the deck cannot make have probability zero.
func (m *Model) Probability(kind hands.Kind) (float64, error) {
	if !hands.Fits(m.engine.Deck(), kind) {
		return 0, nil
	}
	f, err := m.funcFor(kind)
	if err != nil {
		return 0, err
	}
	return f(m.draws)
}

func (m *Model) funcFor(kind hands.Kind) (probability.Func, error) {
	var idx int
	for i, k := range m.kinds {
		if k == kind {
			idx = i
		}
	}
	return hands.Func(m.engine, kind, m.matched[idx]...)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.quitting = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				m.slot = 0
			}
		case "down", "j":
			if m.cursor < len(m.kinds)-1 {
				m.cursor++
				m.slot = 0
			}
		case "tab":
			m.slot = (m.slot + 1) % len(m.matched[m.cursor])
		case "left", "h":
			if m.draws > 0 {
				m.draws--
			}
		case "right", "l":
			if m.draws < m.engine.Deck().Size {
				m.draws++
			}
		case "+", "=":
			held := m.matched[m.cursor]
			if limit := m.Selected().Shape().MaxMatched()[m.slot]; held[m.slot] < limit {
				held[m.slot]++
			}
		case "-", "_":
			if held := m.matched[m.cursor]; held[m.slot] > 0 {
				held[m.slot]--
			}
		case "pgup":
			m.curve.HalfPageUp()
			return m, nil
		case "pgdown":
			m.curve.HalfPageDown()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.curve, cmd = m.curve.Update(msg)
	return m, cmd
}

// View renders the explorer
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	header := HeaderStyle.Render(fmt.Sprintf(" liar's poker odds · %d of %d cards on the table ",
		m.draws, m.engine.Deck().Size))
	footer := InfoStyle.Render("↑/↓ hand  ←/→ cards  +/- held  tab next held rank  q quit")

	bodyHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer) - 2
	if bodyHeight < 1 {
		bodyHeight = 1
	}

	list := paneStyle.Width(listWidth).Height(bodyHeight).Render(m.renderList())

	curveWidth := m.width - listWidth - 4
	if curveWidth < 1 {
		curveWidth = 1
	}
	m.curve.Width = curveWidth
	m.curve.Height = bodyHeight
	m.curve.SetContent(m.renderCurve(curveWidth))
	curve := focusedPaneStyle.Width(curveWidth).Height(bodyHeight).Render(m.curve.View())

	body := lipgloss.JoinHorizontal(lipgloss.Top, list, curve)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m *Model) renderList() string {
	var b strings.Builder
	m.err = nil
	info := m.engine.Deck()
	for i, kind := range m.kinds {
		p, err := m.Probability(kind)
		value := ProbabilityStyle.Render(fmt.Sprintf("%6.2f%%", p*100))
		switch {
		case !hands.Fits(info, kind):
			value = InfoStyle.Render("      -")
		case err != nil:
			m.err = err
			value = ErrorStyle.Render("    err")
		}

		label := kind.String()
		if held := heldLabel(m.matched[i]); held != "" {
			label = fmt.Sprintf("%s (%s)", label, held)
		}

		style := ItemStyle
		cursor := "  "
		if i == m.cursor {
			style = SelectedStyle
			cursor = "> "
		}
		b.WriteString(style.Render(fmt.Sprintf("%s%-22s", cursor, label)))
		b.WriteString(value)
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(ErrorStyle.Render(m.err.Error()))
	}
	return b.String()
}

// heldLabel formats matched counts as "+2" or "+2/+1", or "" when nothing is held.
func heldLabel(matched []int) string {
	parts := make([]string, len(matched))
	held := false
	for i, n := range matched {
		parts[i] = fmt.Sprintf("+%d", n)
		held = held || n > 0
	}
	if !held {
		return ""
	}
	return strings.Join(parts, "/")
}

func (m *Model) renderCurve(width int) string {
	kind := m.Selected()
	if !hands.Fits(m.engine.Deck(), kind) {
		return InfoStyle.Render(fmt.Sprintf("%s cannot be made from a %d-card deck", kind, m.engine.Deck().Size))
	}
	f, err := m.funcFor(kind)
	if err != nil {
		return ErrorStyle.Render(err.Error())
	}

	size := m.engine.Deck().Size
	values, err := f.Curve(0, size)
	if err != nil {
		return ErrorStyle.Render(err.Error())
	}

	barWidth := width - 16
	if barWidth < 1 {
		barWidth = 1
	}

	var b strings.Builder
	b.WriteString(SelectedStyle.Render(kind.String()))
	b.WriteString("  ")
	b.WriteString(InfoStyle.Render(chart.Sparkline(values)))
	b.WriteString("\n")
	b.WriteString(InfoStyle.Render(m.heldSummary()))
	b.WriteString("\n\n")
	for draws, p := range values {
		line := fmt.Sprintf("%3d %7.2f%% %s", draws, p*100, strings.Repeat("█", int(p*float64(barWidth))))
		if draws == m.draws {
			line = ProbabilityStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// heldSummary describes the selected hand's matched counts and which one +/-
// adjusts.
func (m *Model) heldSummary() string {
	held := m.matched[m.cursor]
	if len(held) == 1 {
		return fmt.Sprintf("held: %d", held[0])
	}
	parts := make([]string, len(held))
	for i, n := range held {
		parts[i] = fmt.Sprintf("%d", n)
		if i == m.slot {
			parts[i] = "[" + parts[i] + "]"
		}
	}
	return "held: " + strings.Join(parts, " ")
}
