package help

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type Model struct {
	width  int
	height int
	quit   bool
}

func New() Model {
	return Model{}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Back), key.Matches(msg, keys.Quit):
			m.quit = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m Model) View() string {
	// Use reasonable defaults if dimensions aren't set
	width := m.width
	height := m.height
	if width == 0 {
		width = 100
	}
	if height == 0 {
		height = 30
	}

	containerStyle := lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(2)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF7CCB")).
		Align(lipgloss.Center).
		MarginBottom(1)

	dateStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888")).
		Align(lipgloss.Center).
		MarginBottom(2)

	sectionTitleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FDFF8C")).
		MarginBottom(1).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#4CAF50")).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#CCCCCC"))

	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666")).
		MarginTop(2).
		Align(lipgloss.Center)

	currentDate := time.Now().Format("Monday, January 2, 2006")

	title := titleStyle.Render("🆘 Respite Help")
	dateInfo := dateStyle.Render(currentDate)

	daySection := sectionTitleStyle.Render("☀️  Day & Breaks")
	dayContent := fmt.Sprintf("%s - %s\n%s - %s\n%s - %s\n%s - %s\n%s - %s\n%s - %s",
		keyStyle.Render("s"), descStyle.Render("Start or end your day (recurring reminders only fire while a day runs)"),
		keyStyle.Render("enter"), descStyle.Render("Start the selected due break, or focus a running one"),
		keyStyle.Render("x"), descStyle.Render("Skip the selected due break"),
		keyStyle.Render("z"), descStyle.Render("Snooze the selected due break for a few minutes"),
		keyStyle.Render("c"), descStyle.Render("Complete the selected running break right now"),
		keyStyle.Render("f"), descStyle.Render("Open the full-screen focus timer"))

	reminderSection := sectionTitleStyle.Render("🔔 Reminders")
	reminderContent := fmt.Sprintf("%s - %s\n%s - %s\n%s - %s\n%s - %s",
		keyStyle.Render("a"), descStyle.Render("Add a reminder (every N minutes, or once a day at a time)"),
		keyStyle.Render("enter"), descStyle.Render("Pause/resume the selected reminder"),
		keyStyle.Render("e"), descStyle.Render("Change a daily reminder's trigger time"),
		keyStyle.Render("x x"), descStyle.Render("Delete the selected reminder (press twice)"))

	navSection := sectionTitleStyle.Render("🧭 Views")
	navContent := fmt.Sprintf("%s - %s\n%s - %s\n%s - %s\n%s - %s\n%s - %s\n%s - %s",
		keyStyle.Render("↑/k ↓/j"), descStyle.Render("Move the cursor between rows"),
		keyStyle.Render("t"), descStyle.Render("Toggle the history view"),
		keyStyle.Render("g"), descStyle.Render("Open your profile (name, theme, reset)"),
		keyStyle.Render("? / f1"), descStyle.Render("Show this help page"),
		keyStyle.Render("b / esc"), descStyle.Render("Go back"),
		keyStyle.Render("q / Ctrl+C"), descStyle.Render("Quit the application"))

	dataSection := sectionTitleStyle.Render("💾 Where Your Data Lives")
	dataContent := descStyle.Render(
		"Everything is stored locally in ~/.respite/: reminders, stats, the\n" +
			"day flag and your profile as JSON files, plus history.db with every\n" +
			"completed break. A config.yaml in the same directory (or RESPITE_*\n" +
			"environment variables) overrides the data directory, the quote\n" +
			"endpoint and the snooze length.")

	aboutSection := sectionTitleStyle.Render("ℹ️  About Respite")
	aboutContent := descStyle.Render(
		"Respite nags you to actually take breaks. Add recurring reminders\n" +
			"for things like stretching, or daily ones like a lunch walk; when\n" +
			"one comes due you can start, skip or snooze it. Finished breaks\n" +
			"build a completion count and a day streak.\n\n" +
			"Timers derive their remaining time from the clock on every frame,\n" +
			"so suspending your laptop never freezes a countdown.")

	footer := footerStyle.Render("Press 'b' or 'esc' to go back")

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		dateInfo,
		daySection,
		dayContent,
		reminderSection,
		reminderContent,
		navSection,
		navContent,
		dataSection,
		dataContent,
		aboutSection,
		aboutContent,
		footer,
	)

	return containerStyle.Render(content)
}

func (m Model) ShouldQuit() bool {
	return m.quit
}

type keyMap struct {
	Back key.Binding
	Quit key.Binding
}

var keys = keyMap{
	Back: key.NewBinding(
		key.WithKeys("b", "esc"),
		key.WithHelp("b/esc", "back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
