package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	barContainer = lipgloss.NewStyle().Padding(1, 1)
	activeItem   = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	inactiveItem = lipgloss.NewStyle().Foreground(Secondary)
	barDivider   = lipgloss.NewStyle().Foreground(Faded)
)

// Bar shows which part of the page has focus, with free text on the right
type Bar struct {
	items []string
	i     int

	Width int
	Info  string
}

func NewBar(items []string) Bar {
	return Bar{items: items}
}

func (m Bar) View() string {
	items := make([]string, len(m.items))
	for i, t := range m.items {
		r := inactiveItem
		if i == m.i {
			r = activeItem
		}
		items[i] = r.Render(t)
	}
	w := lipgloss.Width
	left := strings.Join(items, barDivider.Render(" | "))
	right := m.Info
	space := lipgloss.NewStyle().Width(max(m.Width-2-w(left)-w(right), 0)).Render("")
	return barContainer.Render(lipgloss.JoinHorizontal(lipgloss.Center, left, space, right)) + "\n"
}

func (m Bar) Value() int {
	return m.i
}

func (m *Bar) Set(i int) {
	m.i = min(max(i, 0), len(m.items)-1)
}

// Next moves focus by inc, wrapping around both ends
func (m *Bar) Next(inc int) {
	n := len(m.items)
	if n == 0 {
		return
	}
	m.i = ((m.i+inc)%n + n) % n
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
