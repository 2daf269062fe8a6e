// Package focus renders one running break full screen: a big countdown,
// a progress bar, and a celebration once the break completes. The timer
// is never counted down locally; every frame derives the remaining time
// from the break's start stamp and the engine clock, so a laptop suspend
// shows up as elapsed time instead of a frozen countdown.
package focus

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"respite/internal/engine"
	"respite/internal/models"
)

type tickMsg time.Time

type Model struct {
	eng      *engine.Engine
	brk      models.ActiveBreak
	ok       bool
	finished bool
	progress progress.Model

	shouldQuit bool
	width      int
	height     int
}

func New(eng *engine.Engine) Model {
	prog := progress.New(progress.WithScaledGradient("#FF7CCB", "#FDFF8C"))
	prog.Width = 60

	brk, ok := eng.Focused()
	return Model{
		eng:      eng,
		brk:      brk,
		ok:       ok,
		progress: prog,
	}
}

func (m Model) Init() tea.Cmd {
	if !m.ok {
		return tea.Quit
	}
	return tea.Batch(tickCmd(), m.progress.Init())
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(msg.Width-20, 80)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Complete) && !m.finished:
			m.eng.Finish(m.brk.ID)
			m.finished = true
			return m, nil

		case key.Matches(msg, keys.Back):
			// Leave the break running and return to the dashboard.
			m.eng.ClearFocus()
			return m, tea.Quit

		case key.Matches(msg, keys.Quit):
			m.eng.ClearFocus()
			m.shouldQuit = true
			return m, tea.Quit
		}

	case tickMsg:
		if m.finished {
			return m, nil
		}
		if m.brk.Expired(m.eng.Now()) {
			// The engine's own pass may have beaten us to it; Finish on an
			// already-finished break is a no-op either way.
			m.eng.Finish(m.brk.ID)
			m.finished = true
			return m, nil
		}
		return m, tickCmd()

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd
	}

	return m, nil
}

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	containerStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Padding(2)

	if !m.ok {
		return containerStyle.Render("No break is running.")
	}

	if m.finished {
		return containerStyle.Render(m.renderCelebration())
	}

	now := m.eng.Now()
	remaining := m.brk.Remaining(now)
	if remaining < 0 {
		remaining = 0
	}
	minutes := remaining / 60
	seconds := remaining % 60

	nameStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF7CCB")).
		MarginBottom(2)

	timerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(lipgloss.Color("#7D56F4")).
		Padding(2, 4).
		MarginBottom(2)

	statusStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888")).
		MarginBottom(2)

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		nameStyle.Render("☕ "+m.brk.Name),
		timerStyle.Render(renderBigTime(minutes, seconds)),
		m.progress.ViewAs(m.brk.Percent(now)),
		statusStyle.Render("Step away. The timer keeps itself honest."),
		helpView(),
	)

	return containerStyle.Render(content)
}

// renderBigTime draws MM:SS as five rows of block art.
func renderBigTime(minutes, seconds int) string {
	digits := map[int][]string{
		0: {"███", "█ █", "█ █", "█ █", "███"},
		1: {" █ ", "██ ", " █ ", " █ ", "███"},
		2: {"███", "  █", "███", "█  ", "███"},
		3: {"███", "  █", "███", "  █", "███"},
		4: {"█ █", "█ █", "███", "  █", "  █"},
		5: {"███", "█  ", "███", "  █", "███"},
		6: {"███", "█  ", "███", "█ █", "███"},
		7: {"███", "  █", "  █", "  █", "  █"},
		8: {"███", "█ █", "███", "█ █", "███"},
		9: {"███", "█ █", "███", "  █", "███"},
	}

	colon := []string{" ", "█", " ", "█", " "}

	m1 := minutes / 10
	m2 := minutes % 10
	s1 := seconds / 10
	s2 := seconds % 10

	var lines []string
	for row := 0; row < 5; row++ {
		line := digits[m1][row] + " " + digits[m2][row] + " " + colon[row] + " " + digits[s1][row] + " " + digits[s2][row]
		lines = append(lines, line)
	}

	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func (m Model) renderCelebration() string {
	celebrationStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFD700")).
		Align(lipgloss.Center)

	celebration := []string{
		"",
		"       ✨  🌟  ✨",
		"",
		"    ╔══════════════════╗",
		"    ║  BREAK COMPLETE! ║",
		"    ╚══════════════════╝",
		"",
		"          🎉 🎊 🎉",
		"",
		fmt.Sprintf("     %s · %d minutes", m.brk.Name, m.brk.DurationSeconds/60),
		"",
		"    You actually stepped away.",
		"    Your streak thanks you!",
		"",
		"       🏆  💪  🚀",
		"",
	}

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666")).
		MarginTop(2)
	help := helpStyle.Render("Press 'b' to go back • 'q' to quit")

	return lipgloss.JoinVertical(
		lipgloss.Center,
		celebrationStyle.Render(lipgloss.JoinVertical(lipgloss.Center, celebration...)),
		help,
	)
}

func helpView() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666")).
		MarginTop(2)

	return helpStyle.Render("c: complete now • b: back to dashboard • q: quit")
}

// ShouldQuit reports whether the user quit the app from the focus view
// rather than stepping back to the dashboard.
func (m Model) ShouldQuit() bool {
	return m.shouldQuit
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

type keyMap struct {
	Complete key.Binding
	Back     key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Complete: key.NewBinding(
		key.WithKeys("c", "enter"),
		key.WithHelp("c", "complete now"),
	),
	Back: key.NewBinding(
		key.WithKeys("b", "esc"),
		key.WithHelp("b", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
