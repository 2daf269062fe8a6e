package form

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"respite/internal/engine"
	"respite/internal/models"
	"respite/internal/storage"
)

const (
	profileFieldName = iota
	profileFieldTheme
	profileFieldCount
)

// Profile edits the stored user profile. It doubles as the first-run
// onboarding screen and carries the reset-everything escape hatch.
type Profile struct {
	store        *storage.Store
	eng          *engine.Engine
	username     textinput.Model
	theme        string
	fieldIndex   int
	saved        bool
	reset        bool
	confirmReset bool
	errorMsg     string
	width        int
	height       int
}

func NewProfile(store *storage.Store, eng *engine.Engine) (Profile, error) {
	profile, err := store.Profile()
	if err != nil {
		return Profile{}, err
	}

	username := textinput.New()
	username.Placeholder = "what should we call you?"
	username.SetValue(profile.Username)
	username.Focus()
	username.CharLimit = 30
	username.Width = 30

	return Profile{
		store:    store,
		eng:      eng,
		username: username,
		theme:    profile.Theme,
	}, nil
}

func (m Profile) Init() tea.Cmd {
	return textinput.Blink
}

func (m Profile) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, profileKeys.Tab), key.Matches(msg, profileKeys.Down):
			m.fieldIndex = (m.fieldIndex + 1) % profileFieldCount
			return m.updateFocus(), nil

		case key.Matches(msg, profileKeys.ShiftTab), key.Matches(msg, profileKeys.Up):
			m.fieldIndex--
			if m.fieldIndex < 0 {
				m.fieldIndex = profileFieldCount - 1
			}
			return m.updateFocus(), nil

		case key.Matches(msg, profileKeys.Toggle) && m.fieldIndex == profileFieldTheme:
			if m.theme == "dark" {
				m.theme = "light"
			} else {
				m.theme = "dark"
			}
			return m, nil

		case key.Matches(msg, profileKeys.Save):
			if err := m.save(); err == nil {
				m.saved = true
				return m, tea.Quit
			} else {
				m.errorMsg = err.Error()
			}
			return m, nil

		case key.Matches(msg, profileKeys.Reset):
			if !m.confirmReset {
				m.confirmReset = true
				return m, nil
			}
			if err := m.eng.ResetAll(); err == nil {
				m.reset = true
				return m, tea.Quit
			} else {
				m.errorMsg = err.Error()
				m.confirmReset = false
			}
			return m, nil

		case key.Matches(msg, profileKeys.Back):
			if m.confirmReset {
				m.confirmReset = false
				return m, nil
			}
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	oldValue := m.username.Value()
	m.username, cmd = m.username.Update(msg)
	if m.username.Value() != oldValue {
		m.errorMsg = ""
	}
	return m, cmd
}

func (m *Profile) updateFocus() tea.Model {
	if m.fieldIndex == profileFieldName {
		m.username.Focus()
	} else {
		m.username.Blur()
	}
	return m
}

func (m *Profile) save() error {
	return m.store.SaveProfile(models.Profile{
		Username: strings.TrimSpace(m.username.Value()),
		Theme:    m.theme,
	})
}

func (m Profile) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	containerStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Padding(4)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF7CCB")).
		MarginBottom(3).
		Align(lipgloss.Center)

	formStyle := lipgloss.NewStyle().
		Align(lipgloss.Left).
		MarginTop(2).
		MarginBottom(2)

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FDFF8C")).
		MarginBottom(1)

	inputStyle := lipgloss.NewStyle().
		MarginBottom(2)

	title := titleStyle.Render("👤 Profile")

	var form string
	form += labelStyle.Render("Your name:") + "\n"
	form += inputStyle.Render(m.username.View()) + "\n"
	form += labelStyle.Render("Theme:") + "\n"
	form += inputStyle.Render(m.renderThemeRow()) + "\n"

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		formStyle.Render(form),
		m.renderHelp(),
	)

	if m.confirmReset {
		warningStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true).
			MarginTop(2)
		content += "\n" + warningStyle.Render("⚠️  WARNING: This deletes every reminder, your stats and your whole break history!")
	}

	if m.errorMsg != "" {
		errorStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true).
			MarginTop(2)
		content += "\n" + errorStyle.Render("❌ "+m.errorMsg)
	}

	return containerStyle.Render(content)
}

func (m Profile) renderThemeRow() string {
	selectedStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#4CAF50"))

	dimStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888"))

	dark := "( ) dark"
	light := "( ) light"
	if m.theme == "light" {
		light = selectedStyle.Render("(•) light")
		dark = dimStyle.Render(dark)
	} else {
		dark = selectedStyle.Render("(•) dark")
		light = dimStyle.Render(light)
	}

	row := dark + "   " + light
	if m.fieldIndex == profileFieldTheme {
		return "▶ " + row
	}
	return "  " + row
}

func (m Profile) renderHelp() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666")).
		MarginTop(2)

	if m.confirmReset {
		return helpStyle.Render("⚠️  Press ctrl+r again to confirm RESET (deletes all data) • esc: cancel")
	}
	return helpStyle.Render("tab/↓: next field • ←/→: theme • enter: save • ctrl+r: reset all data • esc: back")
}

// Saved reports whether the profile was written before the form closed.
func (m Profile) Saved() bool {
	return m.saved
}

// DidReset reports whether the reset escape hatch ran.
func (m Profile) DidReset() bool {
	return m.reset
}

type profileKeyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	Save     key.Binding
	Reset    key.Binding
	Back     key.Binding
}

var profileKeys = profileKeyMap{
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	ShiftTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "previous field"),
	),
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "previous field"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "next field"),
	),
	Toggle: key.NewBinding(
		key.WithKeys("left", "right", " "),
		key.WithHelp("←/→", "toggle theme"),
	),
	Save: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "save"),
	),
	Reset: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "reset all data"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "back"),
	),
}
