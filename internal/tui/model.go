package tui

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/td0m/taskclient/internal/page"
	"github.com/td0m/taskclient/internal/ui"
	"github.com/td0m/taskclient/pkg/dateinput"
)

const (
	headerHeight = 3 + 4
	footerHeight = 1
)

type focus int

const (
	focusLabel focus = iota
	focusDate
	focusSearchText
	focusSearchDate
	focusList
)

var (
	prompt       = lipgloss.NewStyle().Foreground(ui.Faded)
	searchPrompt = lipgloss.NewStyle().Foreground(ui.Blue)
	busy         = lipgloss.NewStyle().Foreground(ui.Orange)
	help         = lipgloss.NewStyle().Foreground(ui.Faded).Padding(0, 1)
)

// syncMsg is sent once a handler has run, the page may have changed
type syncMsg struct{}

// Model is the terminal rendition of the page. Handlers bound to its
// page run as commands, off the update loop; the model catches up with
// the page whenever one of them finishes.
type Model struct {
	ctx  context.Context
	page *page.Memory

	bar        ui.Bar
	viewport   viewport.Model
	label      textinput.Model
	date       dateinput.Model
	searchText textinput.Model
	searchDate textinput.Model

	rows    []page.Row
	cursor  int
	pending int
	version uint64
}

func New(ctx context.Context, p *page.Memory) *Model {
	m := &Model{
		ctx:        ctx,
		page:       p,
		bar:        ui.NewBar([]string{"Label", "Date", "Search", "Search date", "Tasks"}),
		label:      newInput(40),
		date:       dateinput.NewModel("date"),
		searchText: newInput(30),
		searchDate: newInput(12),
	}
	m.setFocus(focusLabel)
	return m
}

func newInput(width int) textinput.Model {
	i := textinput.NewModel()
	i.Prompt = ""
	i.Width = width
	return i
}

// Init is the first function that will be called. It returns an optional
// initial command. To not perform an initial command return nil.
func (m *Model) Init() tea.Cmd {
	return m.fire(page.EventReady)
}

// Update is called when a message is received. Use it to inspect messages
// and, in response, update the model and/or send a command.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - headerHeight - footerHeight
		m.bar.Width = msg.Width
		m.setCursor(m.cursor)
	case syncMsg:
		m.pending--
		m.sync()
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyTab:
			m.bar.Next(1)
			m.setFocus(focus(m.bar.Value()))
		case tea.KeyShiftTab:
			m.bar.Next(-1)
			m.setFocus(focus(m.bar.Value()))
		default:
			cmd = m.keyUpdate(msg)
		}
	}
	m.render()
	return m, cmd
}

// handle keys differently based on what has focus
func (m *Model) keyUpdate(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch focus(m.bar.Value()) {
	case focusLabel, focusDate:
		if msg.Type == tea.KeyEnter {
			return m.fire(page.EventAdd)
		}
		if focus(m.bar.Value()) == focusLabel {
			m.label, cmd = m.label.Update(msg)
			m.page.SetValue(page.FieldLabel, m.label.Value())
		} else {
			m.date, cmd = m.date.Update(msg)
			m.page.SetValue(page.FieldDate, m.date.Value())
		}
	case focusSearchText:
		before := m.searchText.Value()
		m.searchText, cmd = m.searchText.Update(msg)
		if v := m.searchText.Value(); v != before {
			m.page.SetValue(page.FieldSearchText, v)
			return tea.Batch(cmd, m.fire(page.EventSearchText))
		}
	case focusSearchDate:
		before := m.searchDate.Value()
		m.searchDate, cmd = m.searchDate.Update(msg)
		if v := m.searchDate.Value(); v != before {
			m.page.SetValue(page.FieldSearchDate, v)
			return tea.Batch(cmd, m.fire(page.EventSearchDate))
		}
	case focusList:
		switch msg.String() {
		case "j", "down":
			m.setCursor(m.cursor + 1)
		case "k", "up":
			m.setCursor(m.cursor - 1)
		case "g":
			m.setCursor(0)
		case "G":
			m.setCursor(len(m.rows))
		case "d", tea.KeyDelete.String():
			return m.deleteAtCursor()
		}
	}
	return cmd
}

// fire runs the handlers bound to e as a command
func (m *Model) fire(e page.Event) tea.Cmd {
	m.pending++
	ctx, p := m.ctx, m.page
	return func() tea.Msg {
		p.Fire(ctx, e)
		return syncMsg{}
	}
}

func (m *Model) deleteAtCursor() tea.Cmd {
	if m.cursor >= len(m.rows) {
		return nil
	}
	del := m.rows[m.cursor].Delete
	if del == nil {
		return nil
	}
	m.pending++
	ctx := m.ctx
	return func() tea.Msg {
		del(ctx)
		return syncMsg{}
	}
}

// sync pulls rows and input values that handlers changed on the page
func (m *Model) sync() {
	v := m.page.Version()
	if v == m.version {
		return
	}
	m.version = v
	m.rows = m.page.Rows()
	m.setCursor(m.cursor)

	if s := m.page.Value(page.FieldLabel); s != m.label.Value() {
		m.label.SetValue(s)
	}
	if s := m.page.Value(page.FieldDate); s != m.date.Value() {
		m.date.SetValue(s)
	}
	if s := m.page.Value(page.FieldSearchText); s != m.searchText.Value() {
		m.searchText.SetValue(s)
	}
	if s := m.page.Value(page.FieldSearchDate); s != m.searchDate.Value() {
		m.searchDate.SetValue(s)
	}
}

func (m *Model) setFocus(f focus) {
	m.bar.Set(int(f))
	m.label.Blur()
	m.date.Blur()
	m.searchText.Blur()
	m.searchDate.Blur()
	switch f {
	case focusLabel:
		m.label.Focus()
	case focusDate:
		m.date.Focus()
	case focusSearchText:
		m.searchText.Focus()
	case focusSearchDate:
		m.searchDate.Focus()
	}
}

func (m *Model) setCursor(value int) {
	m.cursor = clamp(value, 0, max(len(m.rows)-1, 0))
	if m.viewport.Height <= 0 {
		return
	}
	if m.cursor >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.YOffset = m.cursor - m.viewport.Height + 1
	}
	if m.cursor < m.viewport.YOffset {
		m.viewport.YOffset = m.cursor
	}
}

func (m *Model) render() {
	lines := make([]string, len(m.rows))
	for i, r := range m.rows {
		lines[i] = ui.RenderRow(r, focus(m.bar.Value()) == focusList && i == m.cursor)
	}
	m.viewport.SetContent(strings.Join(lines, "\n"))
}

// View renders the program's UI, which is just a string. The view is
// rendered after every Update.
func (m *Model) View() string {
	m.bar.Info = m.status()
	if m.pending > 0 {
		m.bar.Info = busy.Render(m.bar.Info)
	}
	s := m.bar.View()
	s += " " + prompt.Render("label: ") + m.label.View() + "\n"
	s += " " + m.date.View() + "\n"
	s += " " + searchPrompt.Render("search: ") + m.searchText.View() +
		searchPrompt.Render("  on: ") + m.searchDate.View() + "\n\n"
	s += m.viewport.View() + "\n"
	return s + help.Render("tab: next field • enter: add • j/k: move • d: delete • ctrl+c: quit")
}

func (m *Model) status() string {
	if m.pending > 0 {
		return "loading…"
	}
	n := 0
	for _, r := range m.rows {
		if !r.Placeholder {
			n++
		}
	}
	return strconv.Itoa(n) + " tasks"
}

func clamp(v, low, high int) int {
	return min(high, max(low, v))
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
