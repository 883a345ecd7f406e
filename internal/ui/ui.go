package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"calnote/internal/calendar"
	"calnote/internal/config"
	"calnote/internal/session"
)

type Model struct {
	sess      *session.Session
	cfg       config.Config
	keys      keyMap
	help      help.Model
	input     textinput.Model
	view      session.View
	today     calendar.Date
	cursorDay int
	width     int
	status    string
	statusErr bool

	// markdown source of the task pane and its glamour rendering
	tasksSource   string
	tasksRendered string
}

type tasksRenderedMsg struct {
	source  string
	width   int
	content string
}

func Run(store session.TaskStore, cfg config.Config, configPath string, firstLaunch bool) error {
	m := newRunModel(store, cfg, configPath, firstLaunch, time.Now())
	program := tea.NewProgram(m, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func newRunModel(store session.TaskStore, cfg config.Config, configPath string, firstLaunch bool, now time.Time) Model {
	m := New(store, cfg, now)
	if firstLaunch {
		m.status = "Config written to " + configPath
	}
	return m
}

// New builds the model with the month of now displayed and the day cursor on
// today.
func New(store session.TaskStore, cfg config.Config, now time.Time) Model {
	today := calendar.Today(now)

	ti := textinput.New()
	ti.Placeholder = "Enter task description"
	ti.CharLimit = 256
	ti.Width = defaultInputWidth

	m := Model{
		sess:      session.New(store, calendar.CursorOf(today)),
		cfg:       cfg,
		keys:      newKeyMap(cfg.Keys),
		help:      help.New(),
		input:     ti,
		today:     today,
		cursorDay: today.Day,
		status:    "Move with arrows, space to select a day, 'a' to add a task.",
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("calnote")
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.view.DraftVisible {
			return m.updateDraftMode(msg)
		}
		return m.updateGridMode(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.input.Width = clamp(msg.Width-10, 10, 80)
		m.tasksRendered = ""
		return m, m.renderTasksCmd()
	case tasksRenderedMsg:
		if msg.source == m.tasksSource && msg.width == m.renderWidth() {
			m.tasksRendered = msg.content
		}
	}
	return m, nil
}

func (m Model) updateGridMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.PrevMonth):
		m.changeMonth(-1)
	case key.Matches(msg, m.keys.NextMonth):
		m.changeMonth(1)
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-7)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(7)
	case key.Matches(msg, m.keys.Today):
		cur := m.sess.Cursor()
		delta := (m.today.Year-cur.Year)*12 + m.today.Month - cur.Month
		if delta != 0 {
			m.sess.ChangeMonth(delta)
		}
		m.cursorDay = m.today.Day
		m.status = "Jumped to today"
	case key.Matches(msg, m.keys.Select):
		d := m.cursorDate()
		m.sess.SelectDate(d)
		m.input.SetValue("")
		m.input.Blur()
		if err := m.refresh(); err != nil {
			return m, nil
		}
		if m.view.HasSelection {
			m.status = "Selected " + m.view.SelectedKey
		} else {
			m.status = "Selection cleared"
		}
		return m, m.renderTasksCmd()
	case key.Matches(msg, m.keys.Add):
		if !m.view.HasSelection {
			m.status = "Select a day first"
			return m, nil
		}
		m.sess.BeginTask()
		m.input.SetValue("")
		m.status = "Type a task and press " + label(m.cfg.Keys.Confirm)
		m.refresh()
		return m, m.input.Focus()
	default:
		return m, nil
	}
	m.refresh()
	return m, m.renderTasksCmd()
}

func (m Model) updateDraftMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.sess.CancelDraft()
		m.input.SetValue("")
		m.input.Blur()
		m.status = "Cancelled"
		m.refresh()
		return m, nil
	case key.Matches(msg, m.keys.Save):
		m.sess.EditDraft(m.input.Value())
		if strings.TrimSpace(m.input.Value()) == "" {
			m.refresh()
			m.status = "Task cannot be empty"
			m.statusErr = true
			return m, nil
		}
		if err := m.sess.SaveTask(); err != nil {
			m.status = fmt.Sprintf("save failed: %v", err)
			m.statusErr = true
			return m, nil
		}
		m.input.SetValue("")
		m.input.Blur()
		m.status = "Saved task"
		m.statusErr = false
		m.refresh()
		return m, m.renderTasksCmd()
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.sess.EditDraft(m.input.Value())
		m.refresh()
		return m, cmd
	}
}

func (m *Model) changeMonth(delta int) {
	m.sess.ChangeMonth(delta)
	m.input.SetValue("")
	m.input.Blur()
	c := m.sess.Cursor()
	m.cursorDay = clamp(m.cursorDay, 1, calendar.LastDay(c.Year, c.Month))
	m.status = c.Label()
}

// moveCursor shifts the day cursor and stops at the edges of the month.
func (m *Model) moveCursor(delta int) {
	c := m.sess.Cursor()
	m.cursorDay = clamp(m.cursorDay+delta, 1, calendar.LastDay(c.Year, c.Month))
}

func (m Model) cursorDate() calendar.Date {
	c := m.sess.Cursor()
	return calendar.Date{Year: c.Year, Month: c.Month, Day: m.cursorDay}
}

// refresh re-reads the session view after an intent. On error the status
// line already shows it.
func (m *Model) refresh() error {
	v, err := m.sess.View()
	m.view = v
	if err != nil {
		m.status = fmt.Sprintf("reload failed: %v", err)
		m.statusErr = true
		return err
	}
	m.statusErr = false
	src := tasksMarkdown(v.Tasks)
	if src != m.tasksSource {
		m.tasksSource = src
		m.tasksRendered = ""
	}
	return nil
}

// tasksMarkdown builds one bullet per task. Each task is a code span so its
// text is shown as typed, never read as markup.
func tasksMarkdown(tasks []string) string {
	if len(tasks) == 0 {
		return ""
	}
	var b strings.Builder
	for _, t := range tasks {
		b.WriteString("- ")
		b.WriteString(codeSpan(strings.ReplaceAll(t, "\n", " ")))
		b.WriteString("\n")
	}
	return b.String()
}

// codeSpan fences s with one more backtick than its longest backtick run.
// The padding spaces are stripped again by the parser.
func codeSpan(s string) string {
	longest, run := 0, 0
	for _, r := range s {
		if r == '`' {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	fence := strings.Repeat("`", longest+1)
	return fence + " " + s + " " + fence
}

func (m Model) renderTasksCmd() tea.Cmd {
	if m.tasksSource == "" || m.tasksRendered != "" {
		return nil
	}
	source := m.tasksSource
	width := m.renderWidth()
	return func() tea.Msg {
		out, err := renderMarkdown(width, source)
		if err != nil {
			// plain list stays on screen
			return nil
		}
		return tasksRenderedMsg{source: source, width: width, content: out}
	}
}

func (m Model) renderWidth() int {
	return m.paneWidth() - 4
}

func (m Model) paneWidth() int {
	if m.width == 0 {
		return defaultPaneWidth
	}
	return clamp(m.width-6, 24, 80)
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(m.renderGrid())
	b.WriteString("\n")
	b.WriteString(m.renderTaskPane())
	b.WriteString("\n")

	if m.status != "" {
		if m.statusErr {
			b.WriteString(errorStyle.Render(m.status))
		} else {
			b.WriteString(successStyle.Render(m.status))
		}
		b.WriteString("\n")
	}
	if m.view.DraftVisible {
		b.WriteString(m.help.ShortHelpView(m.keys.draftHelp()))
	} else {
		b.WriteString(m.help.ShortHelpView(m.keys.gridHelp(m.view.HasSelection)))
	}
	return appStyle.Render(b.String())
}

func (m Model) renderHeader() string {
	prev := navStyle.Render("< " + label(m.cfg.Keys.PrevMonth))
	next := navStyle.Render(label(m.cfg.Keys.NextMonth) + " >")
	return lipgloss.JoinHorizontal(lipgloss.Top, prev, "   ", titleStyle.Render(m.view.Label), "   ", next)
}

func (m Model) weekOffset(d calendar.Date) int {
	if m.cfg.WeekStart == "monday" {
		return (d.Weekday() + 6) % 7
	}
	return d.Weekday()
}

func (m Model) weekdayHeader() []string {
	names := calendar.WeekdayNames
	if m.cfg.WeekStart == "monday" {
		names = append(append([]string{}, names[1:]...), names[0])
	}
	return names
}

func (m Model) renderGrid() string {
	var b strings.Builder
	for _, name := range m.weekdayHeader() {
		b.WriteString(weekdayStyle.Render(name))
	}
	b.WriteString("\n")

	if len(m.view.Days) == 0 {
		return b.String()
	}
	col := m.weekOffset(m.view.Days[0])
	b.WriteString(strings.Repeat(" ", col*cellWidth))
	for _, d := range m.view.Days {
		b.WriteString(m.renderDay(d))
		col++
		if col == 7 {
			b.WriteString("\n")
			col = 0
		}
	}
	if col != 0 {
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderDay(d calendar.Date) string {
	k := d.Key()
	text := fmt.Sprintf("%d", d.Day)
	if m.view.Counts[k] > 0 {
		text = markerStyle.Render("•") + text
	}
	switch {
	case m.view.HasSelection && m.view.SelectedKey == k:
		return selectedDayStyle.Render(text)
	case d.Day == m.cursorDay:
		return cursorDayStyle.Render(text)
	case d == m.today:
		return todayStyle.Render(text)
	default:
		return dayStyle.Render(text)
	}
}

func (m Model) renderTaskPane() string {
	var b strings.Builder
	if !m.view.HasSelection {
		b.WriteString(mutedStyle.Render("No day selected"))
		return paneStyle.Width(m.paneWidth()).Render(b.String())
	}

	b.WriteString(paneHeaderStyle.Render("Saved Tasks for " + m.view.SelectedKey))
	b.WriteString("\n")
	switch {
	case len(m.view.Tasks) == 0:
		b.WriteString(mutedStyle.Render("No tasks yet. Press " + label(m.cfg.Keys.Add) + " to add one."))
	case m.tasksRendered != "":
		b.WriteString(m.tasksRendered)
	default:
		for _, t := range m.view.Tasks {
			b.WriteString("• " + t + "\n")
		}
	}
	if m.view.DraftVisible {
		b.WriteString("\n\nNew task: ")
		b.WriteString(m.input.View())
	}
	return paneStyle.Width(m.paneWidth()).Render(strings.TrimRight(b.String(), "\n"))
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
