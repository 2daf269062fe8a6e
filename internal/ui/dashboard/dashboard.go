// Package dashboard is the home screen: the day banner, breaks waiting on
// a decision, breaks currently running, the reminder registry, and a
// history view. All scheduling state lives in the engine; this model only
// snapshots it once per second and turns key presses into engine calls.
package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"respite/internal/config"
	"respite/internal/engine"
	"respite/internal/history"
	"respite/internal/models"
	"respite/internal/quote"
	"respite/internal/storage"
	"respite/internal/ui/help"
)

type tickMsg time.Time
type quoteMsg string

type ViewState int

const (
	HomeView ViewState = iota
	StatsView
	HelpView
)

// section identifies which home-view list the cursor sits in.
type section int

const (
	sectionPending section = iota
	sectionActive
	sectionReminders
)

// A break that just came due stays highlighted for this many ticks.
const flashTicks = 3

type Model struct {
	eng    *engine.Engine
	hist   *history.DB
	cfg    *config.Config
	quotes *quote.Service

	profile models.Profile

	viewState ViewState
	width     int
	height    int

	// Engine snapshots, refreshed once per tick and after every action.
	reminders []models.Reminder
	pending   []models.Reminder
	active    []models.ActiveBreak
	stats     models.Stats
	dayActive bool

	todayCount int
	flash      map[string]int // pending ids still highlighted, by ticks left

	cursor        int
	confirmDelete string // reminder id armed for deletion

	// Inline reschedule of a one-time reminder.
	retiming    bool
	retimeID    string
	retimeName  string
	retimeInput textinput.Model

	// History view data, loaded when the view opens.
	dayCounts []history.DayCount
	recent    []history.Completion

	quoteLine    string
	quoteDay     string
	quotePending bool

	barProgress progress.Model
	helpModel   help.Model
	errorMsg    string

	shouldQuit   bool
	openForm     bool
	openFocus    bool
	openSettings bool
}

func New(eng *engine.Engine, hist *history.DB, store *storage.Store, cfg *config.Config, quotes *quote.Service) (Model, error) {
	profile, err := store.Profile()
	if err != nil {
		return Model{}, err
	}

	prog := progress.New(progress.WithScaledGradient("#FF7CCB", "#FDFF8C"))
	prog.Width = 30

	retime := textinput.New()
	retime.Placeholder = "12:30"
	retime.CharLimit = 5
	retime.Width = 10
	retime.Validate = func(text string) error {
		for _, char := range text {
			if !unicode.IsDigit(char) && char != ':' {
				return fmt.Errorf("use 24h HH:MM")
			}
		}
		return nil
	}

	m := Model{
		eng:         eng,
		hist:        hist,
		cfg:         cfg,
		quotes:      quotes,
		profile:     profile,
		viewState:   HomeView,
		flash:       make(map[string]int),
		retimeInput: retime,
		barProgress: prog,
		helpModel:   help.New(),
		// Init fires the first fetch; the flag stops the first tick from
		// firing another.
		quotePending: true,
	}
	m.refresh()

	return m, nil
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), m.barProgress.Init(), m.fetchQuoteCmd())
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// fetchQuoteCmd asks the quote service off the UI goroutine. The service
// caches per day, so firing this more than once is cheap.
func (m Model) fetchQuoteCmd() tea.Cmd {
	quotes := m.quotes
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return quoteMsg(quotes.Today(ctx))
	}
}

// refresh pulls fresh snapshots out of the engine and advances the flash
// countdowns, lighting up entries that came due since the last pass.
func (m *Model) refresh() {
	m.reminders = m.eng.Reminders()
	m.stats = m.eng.Stats()
	m.dayActive = m.eng.DayActive()
	m.active = m.eng.ActiveBreaks()

	known := make(map[string]bool, len(m.pending))
	for _, r := range m.pending {
		known[r.ID] = true
	}
	for id, left := range m.flash {
		if left <= 1 {
			delete(m.flash, id)
		} else {
			m.flash[id] = left - 1
		}
	}
	m.pending = m.eng.PendingBreaks()
	for _, r := range m.pending {
		if !known[r.ID] {
			m.flash[r.ID] = flashTicks
		}
	}

	if n, err := m.hist.CountOn(m.eng.Now().Format("2006-01-02")); err == nil {
		m.todayCount = n
	}

	m.clampCursor()
}

func (m *Model) loadHistoryView() {
	now := m.eng.Now()
	if counts, err := m.hist.LastDays(now, 14); err == nil {
		m.dayCounts = counts
	}
	if recent, err := m.hist.Recent(8); err == nil {
		m.recent = recent
	}
}

func (m Model) rowCount() int {
	return len(m.pending) + len(m.active) + len(m.reminders)
}

// selected maps the flat cursor onto (section, index within section).
// Only valid while rowCount() > 0.
func (m Model) selected() (section, int) {
	i := m.cursor
	if i < len(m.pending) {
		return sectionPending, i
	}
	i -= len(m.pending)
	if i < len(m.active) {
		return sectionActive, i
	}
	return sectionReminders, i - len(m.active)
}

func (m *Model) clampCursor() {
	if last := m.rowCount() - 1; m.cursor > last {
		if last < 0 {
			m.cursor = 0
		} else {
			m.cursor = last
		}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.barProgress.Width = min(msg.Width/3, 30)
		if m.viewState == HelpView {
			helpModel, _ := m.helpModel.Update(msg)
			m.helpModel = helpModel.(help.Model)
		}
		return m, nil

	case tea.KeyMsg:
		// Handle help view specially
		if m.viewState == HelpView {
			helpModel, _ := m.helpModel.Update(msg)
			m.helpModel = helpModel.(help.Model)
			if m.helpModel.ShouldQuit() {
				m.helpModel = help.New()
				m.viewState = HomeView
			}
			// Don't process other keys in help view, but keep the tick chain
			return m, nil
		}

		if m.retiming {
			return m.updateRetime(msg)
		}

		return m.updateKeys(msg)

	case tickMsg:
		m.refresh()
		cmds := []tea.Cmd{tickCmd()}
		// Roll the quote when the calendar day changes under a running app.
		if day := m.eng.Now().Format("2006-01-02"); day != m.quoteDay && !m.quotePending {
			m.quotePending = true
			cmds = append(cmds, m.fetchQuoteCmd())
		}
		return m, tea.Batch(cmds...)

	case quoteMsg:
		m.quoteLine = string(msg)
		m.quoteDay = m.eng.Now().Format("2006-01-02")
		m.quotePending = false
		return m, nil

	case progress.FrameMsg:
		progressModel, cmd := m.barProgress.Update(msg)
		m.barProgress = progressModel.(progress.Model)
		return m, cmd
	}

	return m, nil
}

// updateRetime owns the keyboard while the trigger-time input is open, so
// letter hotkeys cannot swallow what the user types.
func (m Model) updateRetime(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		m.retiming = false
		m.errorMsg = ""
		return m, nil

	case tea.KeyEnter:
		if err := m.eng.SetTriggerTime(m.retimeID, m.retimeInput.Value()); err != nil {
			m.errorMsg = err.Error()
			return m, nil
		}
		m.retiming = false
		m.errorMsg = ""
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.retimeInput, cmd = m.retimeInput.Update(msg)
	return m, cmd
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key other than another delete press disarms the confirmation.
	armed := m.confirmDelete
	m.confirmDelete = ""

	switch {
	case key.Matches(msg, keys.Quit):
		m.shouldQuit = true
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		m.viewState = HelpView
		// Ensure help model gets window size
		if m.width > 0 && m.height > 0 {
			sizeMsg := tea.WindowSizeMsg{Width: m.width, Height: m.height}
			helpModel, _ := m.helpModel.Update(sizeMsg)
			m.helpModel = helpModel.(help.Model)
		}
		return m, nil

	case key.Matches(msg, keys.Stats):
		if m.viewState == StatsView {
			m.viewState = HomeView
		} else {
			m.viewState = StatsView
			m.loadHistoryView()
		}
		return m, nil

	case key.Matches(msg, keys.Back):
		if m.viewState == StatsView {
			m.viewState = HomeView
		}
		m.errorMsg = ""
		return m, nil

	case key.Matches(msg, keys.Settings):
		m.openSettings = true
		return m, tea.Quit

	case key.Matches(msg, keys.Add):
		m.openForm = true
		return m, tea.Quit

	case key.Matches(msg, keys.Day):
		if m.dayActive {
			m.eng.EndDay()
		} else {
			m.eng.StartDay()
		}
		m.refresh()
		return m, nil
	}

	if m.viewState != HomeView {
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, keys.Down):
		if m.cursor < m.rowCount()-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, keys.Focus):
		// Jump into the focus view: the selected running break if the
		// cursor is on one, otherwise the oldest one.
		if id, ok := m.focusTarget(); ok {
			m.eng.Focus(id)
			m.openFocus = true
			return m, tea.Quit
		}
		return m, nil
	}

	if m.rowCount() == 0 {
		return m, nil
	}
	sec, idx := m.selected()

	switch {
	case key.Matches(msg, keys.Enter):
		switch sec {
		case sectionPending:
			m.eng.Start(m.pending[idx].ID)
		case sectionActive:
			m.eng.Focus(m.active[idx].ID)
			m.openFocus = true
			return m, tea.Quit
		case sectionReminders:
			m.eng.ToggleActive(m.reminders[idx].ID)
		}
		m.refresh()
		return m, nil

	case key.Matches(msg, keys.Skip):
		switch sec {
		case sectionPending:
			m.eng.Skip(m.pending[idx].ID)
			m.refresh()
		case sectionReminders:
			r := m.reminders[idx]
			if armed == r.ID {
				m.eng.DeleteReminder(r.ID)
				m.refresh()
			} else {
				m.confirmDelete = r.ID
			}
		}
		return m, nil

	case key.Matches(msg, keys.Snooze):
		if sec == sectionPending {
			m.eng.Snooze(m.pending[idx].ID, m.cfg.SnoozeMinutes)
			m.refresh()
		}
		return m, nil

	case key.Matches(msg, keys.Complete):
		if sec == sectionActive {
			m.eng.Finish(m.active[idx].ID)
			m.refresh()
		}
		return m, nil

	case key.Matches(msg, keys.Retime):
		if sec == sectionReminders && m.reminders[idx].IsOneTime() {
			r := m.reminders[idx]
			m.retiming = true
			m.retimeID = r.ID
			m.retimeName = r.Name
			m.retimeInput.SetValue(r.TriggerTime)
			m.retimeInput.Focus()
			return m, textinput.Blink
		}
		return m, nil
	}

	return m, nil
}

func (m Model) focusTarget() (string, bool) {
	if m.rowCount() > 0 {
		if sec, idx := m.selected(); sec == sectionActive {
			return m.active[idx].ID, true
		}
	}
	if len(m.active) > 0 {
		return m.active[0].ID, true
	}
	return "", false
}

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	switch m.viewState {
	case StatsView:
		return m.renderHistoryView()
	case HelpView:
		return m.helpModel.View()
	default:
		return m.renderHomeView()
	}
}

func (m Model) renderHomeView() string {
	containerStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Padding(2)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF7CCB")).
		Align(lipgloss.Center).
		MarginBottom(1)

	dateStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.dimColor())).
		Align(lipgloss.Center)

	quoteStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.dimColor())).
		Align(lipgloss.Center).
		MarginBottom(1)

	now := m.eng.Now()

	title := titleStyle.Render("🌿 Respite" + m.greeting())
	date := dateStyle.Render(now.Format("Monday, January 2, 2006"))

	parts := []string{title, date}
	if m.quoteLine != "" {
		parts = append(parts, quoteStyle.Render("“"+m.quoteLine+"”"))
	}
	parts = append(parts, m.renderDayBanner())

	if s := m.renderPendingSection(now); s != "" {
		parts = append(parts, s)
	}
	if s := m.renderActiveSection(now); s != "" {
		parts = append(parts, s)
	}
	parts = append(parts, m.renderReminderSection(now))

	if m.retiming {
		parts = append(parts, m.renderRetime())
	}

	parts = append(parts, m.renderStatsStrip(), m.renderHelp())

	return containerStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m Model) greeting() string {
	if m.profile.Username == "" {
		return ""
	}
	return " · hi, " + m.profile.Username
}

// dimColor picks the muted foreground for the configured theme.
func (m Model) dimColor() string {
	if m.profile.Theme == "light" {
		return "#555"
	}
	return "#888"
}

func (m Model) renderDayBanner() string {
	if m.dayActive {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4CAF50")).
			MarginBottom(1).
			Render("● Day is running · recurring reminders are live")
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.dimColor())).
		MarginBottom(1).
		Render("○ Day not started · press 's' when you sit down")
}

func (m Model) sectionTitle(text string) string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FDFF8C")).
		MarginTop(1).
		Render(text)
}

func (m Model) renderPendingSection(now time.Time) string {
	if len(m.pending) == 0 {
		return ""
	}

	flashStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#1A1A1A")).
		Background(lipgloss.Color("#FDFF8C"))

	rowStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FF6B6B")).
		Bold(true)

	dimStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.dimColor()))

	lines := []string{m.sectionTitle("🔔 Break time!")}
	for i, r := range m.pending {
		text := fmt.Sprintf("%s • %d min break", r.Name, r.DurationMinutes)
		wait := dimStyle.Render("  waiting " + fmtSince(now.Sub(r.LastTriggered)))

		style := rowStyle
		if _, ok := m.flash[r.ID]; ok {
			style = flashStyle
		}
		lines = append(lines, m.cursorFor(sectionPending, i)+style.Render(text)+wait)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderActiveSection(now time.Time) string {
	if len(m.active) == 0 {
		return ""
	}

	rowStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#CCCCCC"))

	timeStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#4CAF50"))

	lines := []string{m.sectionTitle("☕ On a break")}
	for i, b := range m.active {
		remaining := b.Remaining(now)
		if remaining < 0 {
			remaining = 0
		}
		row := rowStyle.Render(b.Name+"  ") +
			timeStyle.Render(fmt.Sprintf("%02d:%02d", remaining/60, remaining%60)) +
			"  " + m.barProgress.ViewAs(b.Percent(now))
		lines = append(lines, m.cursorFor(sectionActive, i)+row)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderReminderSection(now time.Time) string {
	dimStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.dimColor()))

	lines := []string{m.sectionTitle("📋 Reminders")}

	if len(m.reminders) == 0 {
		lines = append(lines, dimStyle.Render("  No reminders yet. Press 'a' to add your first."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	rowStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#CCCCCC"))

	onStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#4CAF50"))

	warnStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF6B6B"))

	for i, r := range m.reminders {
		dot := onStyle.Render("●")
		if !r.Active {
			dot = dimStyle.Render("○")
		}

		var schedule string
		if r.IsRecurring() {
			schedule = fmt.Sprintf("every %dm • %dm break", r.IntervalMinutes, r.DurationMinutes)
		} else {
			schedule = fmt.Sprintf("daily at %s • %dm break", r.TriggerTime, r.DurationMinutes)
		}

		name := rowStyle.Render(r.Name)
		if m.confirmDelete == r.ID {
			name = warnStyle.Render(r.Name + " (press 'x' again to delete)")
		}

		row := dot + " " + name + dimStyle.Render("  "+schedule+"  "+m.reminderHint(r, now))
		lines = append(lines, m.cursorFor(sectionReminders, i)+row)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// reminderHint summarizes what the scheduler will do next with a reminder.
func (m Model) reminderHint(r models.Reminder, now time.Time) string {
	if !r.Active {
		return "· paused"
	}
	for _, p := range m.pending {
		if p.ID == r.ID {
			return "· due now"
		}
	}
	for _, b := range m.active {
		if b.ID == r.ID {
			return "· on break"
		}
	}

	if r.IsRecurring() {
		if !m.dayActive || r.LastTriggered.IsZero() {
			return "· waits for day start"
		}
		left := r.Interval() - now.Sub(r.LastTriggered)
		if left < 0 {
			left = 0
		}
		return "· next in " + fmtShort(left)
	}

	target := r.TargetToday(now)
	if !r.LastTriggered.IsZero() && models.SameDay(r.LastTriggered, target) {
		return "· done today"
	}
	return "· today at " + r.TriggerTime
}

func (m Model) cursorFor(sec section, idx int) string {
	if m.viewState != HomeView || m.rowCount() == 0 {
		return "  "
	}
	if s, i := m.selected(); s == sec && i == idx {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("#FF7CCB")).Render("▶ ")
	}
	return "  "
}

func (m Model) renderRetime() string {
	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FDFF8C")).
		MarginTop(1)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		labelStyle.Render(fmt.Sprintf("New time for %q (24h HH:MM):", m.retimeName)),
		m.retimeInput.View(),
	)
}

func (m Model) renderStatsStrip() string {
	statStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FDFF8C")).
		MarginTop(1)

	streak := "day"
	if m.stats.Streak != 1 {
		streak = "days"
	}
	return statStyle.Render(fmt.Sprintf(
		"Today: %d • Streak: %d %s • All time: %d breaks",
		m.todayCount, m.stats.Streak, streak, m.stats.Completed,
	))
}

func (m Model) renderHistoryView() string {
	containerStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Padding(2)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF7CCB")).
		MarginBottom(1).
		Align(lipgloss.Center)

	dateStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.dimColor())).
		MarginBottom(2).
		Align(lipgloss.Center)

	statsStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#FDFF8C")).
		MarginBottom(1)

	dimStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.dimColor()))

	now := m.eng.Now()
	title := titleStyle.Render("📊 Break History")
	date := dateStyle.Render(now.Format("Monday, January 2, 2006"))

	streak := "day"
	if m.stats.Streak != 1 {
		streak = "days"
	}
	totals := statsStyle.Render(fmt.Sprintf(
		"Completed: %d breaks • Streak: %d %s • Today: %d",
		m.stats.Completed, m.stats.Streak, streak, m.todayCount,
	))

	chartTitle := m.sectionTitle("Last 14 days")
	chart := m.renderDayChart()

	recentTitle := m.sectionTitle("Recent breaks")
	var recentLines []string
	if len(m.recent) == 0 {
		recentLines = append(recentLines, dimStyle.Render("  Nothing finished yet. Take the next break!"))
	} else {
		for _, c := range m.recent {
			recentLines = append(recentLines, dimStyle.Render(fmt.Sprintf(
				"  %s  %s (%dm)",
				c.FinishedAt.Format("Jan 2 15:04"), c.Name, c.DurationSeconds/60,
			)))
		}
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		date,
		totals,
		chartTitle,
		chart,
		recentTitle,
		lipgloss.JoinVertical(lipgloss.Left, recentLines...),
		m.renderHelp(),
	)

	return containerStyle.Render(content)
}

// renderDayChart draws one block column per day, tallest column scaled to
// five rows, day-of-month labels underneath.
func (m Model) renderDayChart() string {
	if len(m.dayCounts) == 0 {
		return ""
	}

	maxCount := 1
	for _, d := range m.dayCounts {
		if d.Count > maxCount {
			maxCount = d.Count
		}
	}

	const chartHeight = 5
	barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FDFF8C"))
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.dimColor()))

	var rows []string
	for row := chartHeight; row >= 1; row-- {
		var b strings.Builder
		for _, d := range m.dayCounts {
			bars := d.Count * chartHeight / maxCount
			if d.Count > 0 && bars == 0 {
				bars = 1
			}
			if bars >= row {
				b.WriteString("█  ")
			} else {
				b.WriteString("   ")
			}
		}
		rows = append(rows, barStyle.Render(b.String()))
	}

	var labels strings.Builder
	for _, d := range m.dayCounts {
		labels.WriteString(d.Day[8:] + " ")
	}
	rows = append(rows, labelStyle.Render(labels.String()))

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderHelp() string {
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666")).
		MarginTop(2)

	var helpText string
	switch {
	case m.retiming:
		helpText = "enter: save time • esc: cancel"

	case m.viewState == StatsView:
		helpText = "t/b: back • ?: help • q: quit"

	default:
		sec := sectionReminders
		if m.rowCount() > 0 {
			sec, _ = m.selected()
		}
		switch sec {
		case sectionPending:
			helpText = "enter: take break • x: skip • z: snooze • s: day • a: add • t: history • ?: help • q: quit"
		case sectionActive:
			helpText = "enter/f: focus • c: complete now • s: day • a: add • t: history • ?: help • q: quit"
		default:
			if m.width > 100 {
				helpText = "enter: pause/resume • e: retime • x x: delete • a: add • s: day • t: history • g: profile • ?: help • q: quit"
			} else {
				helpText = "enter: toggle • a: add • s: day • t: history • ?: help • q: quit"
			}
		}
	}

	if m.errorMsg != "" {
		errorStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true).
			MarginBottom(1)
		return lipgloss.JoinVertical(
			lipgloss.Left,
			errorStyle.Render("❌ "+m.errorMsg),
			helpStyle.Render(helpText),
		)
	}

	return helpStyle.Render(helpText)
}

func (m Model) ShouldQuit() bool {
	return m.shouldQuit
}

func (m Model) ShouldOpenForm() bool {
	return m.openForm
}

func (m Model) ShouldOpenFocus() bool {
	return m.openFocus
}

func (m Model) ShouldOpenSettings() bool {
	return m.openSettings
}

// fmtSince shows how long a break has been waiting on a decision.
func fmtSince(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	return fmt.Sprintf("%dm", int(d.Minutes()))
}

// fmtShort prints a duration as minutes or hours+minutes.
func fmtShort(d time.Duration) string {
	mins := int(d.Minutes())
	switch {
	case mins < 1:
		return "<1m"
	case mins < 60:
		return fmt.Sprintf("%dm", mins)
	default:
		return fmt.Sprintf("%dh%02dm", mins/60, mins%60)
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Enter    key.Binding
	Skip     key.Binding
	Snooze   key.Binding
	Complete key.Binding
	Focus    key.Binding
	Retime   key.Binding
	Add      key.Binding
	Day      key.Binding
	Stats    key.Binding
	Help     key.Binding
	Settings key.Binding
	Back     key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "select"),
	),
	Skip: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "skip/delete"),
	),
	Snooze: key.NewBinding(
		key.WithKeys("z"),
		key.WithHelp("z", "snooze"),
	),
	Complete: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "complete now"),
	),
	Focus: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "focus view"),
	),
	Retime: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "change time"),
	),
	Add: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add reminder"),
	),
	Day: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "start/end day"),
	),
	Stats: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "history"),
	),
	Help: key.NewBinding(
		key.WithKeys("?", "f1"),
		key.WithHelp("?/f1", "help"),
	),
	Settings: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "profile"),
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
