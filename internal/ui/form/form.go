// Package form holds the two input screens: the new-reminder form and
// the profile editor. Letter keys always type into the focused field, so
// every hotkey here is a non-printing key.
package form

import (
	"fmt"
	"strconv"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"respite/internal/engine"
	"respite/internal/models"
)

// Virtual form rows. The kind row is a toggle, not a text input.
const (
	fieldName = iota
	fieldDuration
	fieldKind
	fieldDetail
	fieldCount
)

// Text inputs backing the rows. Interval and trigger time are separate
// inputs so flipping the kind back and forth loses nothing.
const (
	inputName = iota
	inputDuration
	inputInterval
	inputTrigger
	inputCount
)

type Model struct {
	eng        *engine.Engine
	inputs     []textinput.Model
	kind       models.BreakKind
	fieldIndex int
	created    bool
	errorMsg   string
	width      int
	height     int
}

func New(eng *engine.Engine) Model {
	inputs := make([]textinput.Model, inputCount)

	// Validation function to allow only numeric input
	numericValidation := func(text string) error {
		if text == "" {
			return nil // Allow empty input temporarily
		}
		for _, char := range text {
			if !unicode.IsDigit(char) {
				return fmt.Errorf("only numbers allowed")
			}
		}
		return nil
	}

	clockValidation := func(text string) error {
		for _, char := range text {
			if !unicode.IsDigit(char) && char != ':' {
				return fmt.Errorf("use 24h HH:MM")
			}
		}
		return nil
	}

	inputs[inputName] = textinput.New()
	inputs[inputName].Placeholder = "stretch"
	inputs[inputName].Focus()
	inputs[inputName].CharLimit = 40
	inputs[inputName].Width = 30

	inputs[inputDuration] = textinput.New()
	inputs[inputDuration].Placeholder = "5"
	inputs[inputDuration].CharLimit = 3
	inputs[inputDuration].Width = 20
	inputs[inputDuration].Validate = numericValidation

	inputs[inputInterval] = textinput.New()
	inputs[inputInterval].Placeholder = "45"
	inputs[inputInterval].CharLimit = 4
	inputs[inputInterval].Width = 20
	inputs[inputInterval].Validate = numericValidation

	inputs[inputTrigger] = textinput.New()
	inputs[inputTrigger].Placeholder = "12:30"
	inputs[inputTrigger].CharLimit = 5
	inputs[inputTrigger].Width = 20
	inputs[inputTrigger].Validate = clockValidation

	return Model{
		eng:    eng,
		inputs: inputs,
		kind:   models.KindRecurring,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Tab), key.Matches(msg, keys.Down):
			m.fieldIndex++
			if m.fieldIndex > fieldCount-1 {
				m.fieldIndex = 0
			}
			return m.updateFocus(), nil

		case key.Matches(msg, keys.ShiftTab), key.Matches(msg, keys.Up):
			m.fieldIndex--
			if m.fieldIndex < 0 {
				m.fieldIndex = fieldCount - 1
			}
			return m.updateFocus(), nil

		case key.Matches(msg, keys.Toggle) && m.fieldIndex == fieldKind:
			if m.kind == models.KindRecurring {
				m.kind = models.KindOneTime
			} else {
				m.kind = models.KindRecurring
			}
			m.errorMsg = ""
			return m, nil

		case key.Matches(msg, keys.Save):
			if err := m.save(); err == nil {
				m.created = true
				m.errorMsg = ""
				return m, tea.Quit
			} else {
				m.errorMsg = err.Error()
			}
			return m, nil

		case key.Matches(msg, keys.Cancel):
			return m, tea.Quit
		}
	}

	cmd := m.updateInputs(msg)
	return m, cmd
}

// detailInput maps the detail row to the input the current kind uses.
func (m Model) detailInput() int {
	if m.kind == models.KindRecurring {
		return inputInterval
	}
	return inputTrigger
}

func (m *Model) updateFocus() tea.Model {
	focused := -1
	switch m.fieldIndex {
	case fieldName:
		focused = inputName
	case fieldDuration:
		focused = inputDuration
	case fieldDetail:
		focused = m.detailInput()
	}

	for i := range m.inputs {
		if i == focused {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return m
}

func (m *Model) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		oldValue := m.inputs[i].Value()
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
		// Clear error message when user starts typing
		if m.inputs[i].Value() != oldValue {
			m.errorMsg = ""
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) save() error {
	name := m.inputs[inputName].Value()

	durationStr := m.inputs[inputDuration].Value()
	if durationStr == "" {
		return fmt.Errorf("break length is required")
	}
	duration, err := strconv.Atoi(durationStr)
	if err != nil || duration < 1 || duration > 180 {
		return fmt.Errorf("break length must be between 1-180 minutes")
	}

	switch m.kind {
	case models.KindRecurring:
		intervalStr := m.inputs[inputInterval].Value()
		if intervalStr == "" {
			return fmt.Errorf("interval is required")
		}
		interval, err := strconv.Atoi(intervalStr)
		if err != nil || interval < 1 {
			return fmt.Errorf("interval must be at least 1 minute")
		}
		_, err = m.eng.CreateRecurring(name, duration, interval)
		return err

	default:
		_, err := m.eng.CreateOneTime(name, duration, m.inputs[inputTrigger].Value())
		return err
	}
}

func (m Model) View() string {
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

	title := titleStyle.Render("➕ New Reminder")

	var form string
	form += labelStyle.Render("Name:") + "\n"
	form += inputStyle.Render(m.inputs[inputName].View()) + "\n"
	form += labelStyle.Render("Break length (minutes):") + "\n"
	form += inputStyle.Render(m.inputs[inputDuration].View()) + "\n"
	form += labelStyle.Render("Schedule:") + "\n"
	form += inputStyle.Render(m.renderKindRow()) + "\n"

	if m.kind == models.KindRecurring {
		form += labelStyle.Render("Every (minutes):") + "\n"
		form += inputStyle.Render(m.inputs[inputInterval].View()) + "\n"
	} else {
		form += labelStyle.Render("At time (24h HH:MM):") + "\n"
		form += inputStyle.Render(m.inputs[inputTrigger].View()) + "\n"
	}

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		formStyle.Render(form),
		m.renderHelp(),
	)

	if m.errorMsg != "" {
		errorStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true).
			MarginTop(2)
		content += "\n" + errorStyle.Render("❌ "+m.errorMsg)
	}

	return containerStyle.Render(content)
}

func (m Model) renderKindRow() string {
	selectedStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#4CAF50"))

	dimStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888"))

	recurring := "( ) every N minutes"
	oneTime := "( ) once a day"
	if m.kind == models.KindRecurring {
		recurring = selectedStyle.Render("(•) every N minutes")
		oneTime = dimStyle.Render(oneTime)
	} else {
		oneTime = selectedStyle.Render("(•) once a day")
		recurring = dimStyle.Render(recurring)
	}

	row := recurring + "   " + oneTime
	if m.fieldIndex == fieldKind {
		return "▶ " + row
	}
	return "  " + row
}

func (m Model) renderHelp() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666")).
		MarginTop(2)

	if m.fieldIndex == fieldKind {
		return helpStyle.Render("←/→/space: toggle schedule • tab/↓: next field • enter: save • esc: cancel")
	}
	return helpStyle.Render("tab/↓: next field • shift+tab/↑: previous • enter: save • esc: cancel")
}

// Created reports whether a reminder was saved before the form closed.
func (m Model) Created() bool {
	return m.created
}

type keyMap struct {
	Tab      key.Binding
	ShiftTab key.Binding
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	Save     key.Binding
	Cancel   key.Binding
}

var keys = keyMap{
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
		key.WithHelp("←/→", "toggle kind"),
	),
	Save: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "save"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "cancel"),
	),
}
