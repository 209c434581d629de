package dateinput

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/td0m/taskclient/pkg/task/date"
)

var (
	indicator = lipgloss.NewStyle().Padding(0, 1).Bold(true)
	checkmark = indicator.Copy().
			Foreground(lipgloss.AdaptiveColor{Light: "#00ad3b", Dark: "#73F59F"}).
			Render("✓")

	cross = indicator.Copy().
		Foreground(lipgloss.AdaptiveColor{Light: "", Dark: "#FF5047"}).
		Render("✗")

	faded = lipgloss.AdaptiveColor{Light: "#666", Dark: "#999"}
)

// Model is a text input that parses what is typed as a date and shows
// whether it understood it
type Model struct {
	Prompt string
	Now    func() time.Time

	i     textinput.Model
	value *time.Time
}

func NewModel(prompt string) Model {
	i := textinput.NewModel()
	i.CharLimit = 32
	i.Prompt = ""
	return Model{
		Prompt: prompt,
		Now:    time.Now,
		i:      i,
	}
}

// Init is the first function that will be called. It returns an optional
// initial command. To not perform an initial command return nil.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update is called when a message is received. Use it to inspect messages
// and, in response, update the model and/or send a command.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.i, cmd = m.i.Update(msg)
		m.parse()
		return m, cmd
	}
	return m, nil
}

// View renders the program's UI, which is just a string. The view is
// rendered after every Update.
func (m Model) View() string {
	indicator := cross
	if m.i.Value() == "" {
		indicator = ""
	} else if m.value != nil {
		indicator = checkmark + " " + date.Format(*m.value)
	}
	return lipgloss.NewStyle().Foreground(faded).Render(m.Prompt+": ") + m.i.View() + indicator
}

func (m *Model) Focus() { m.i.Focus() }
func (m *Model) Blur()  { m.i.Blur() }

// Value is the raw text, as typed
func (m Model) Value() string {
	return m.i.Value()
}

// Time is the parsed date, nil while the text does not parse
func (m Model) Time() *time.Time {
	return m.value
}

func (m *Model) SetValue(s string) {
	m.i.SetValue(s)
	m.parse()
}

func (m *Model) parse() {
	t, err := date.Parse(m.i.Value(), m.Now())
	if err != nil {
		m.value = nil
		return
	}
	m.value = &t
}
