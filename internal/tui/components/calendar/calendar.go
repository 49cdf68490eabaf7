package calendar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aleksanderbl29/meal-planner/internal/planner"
)

var (
	weekStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	currentWeekStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("205")).
				Bold(true)

	rangeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	eatenStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))
)

type Model struct {
	viewport viewport.Model
	Weeks    []planner.Week
	width    int
	height   int
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.Weeks) == 0 {
		return "No weeks to show."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

func (m *Model) SetWeeks(weeks []planner.Week) {
	m.Weeks = weeks
	m.Render()
}

func (m *Model) Render() {
	m.viewport.SetContent(Render(m.Weeks))
}

// Render lays out the calendar rows as plain text with styling.
func Render(weeks []planner.Week) string {
	var b strings.Builder
	for i, w := range weeks {
		if i > 0 {
			b.WriteString("\n")
		}

		title := fmt.Sprintf("Week %d, %d", w.Week, w.Year)
		if w.Current {
			b.WriteString(currentWeekStyle.Render(title + " (this week)"))
		} else {
			b.WriteString(weekStyle.Render(title))
		}
		b.WriteString(" " + rangeStyle.Render(fmt.Sprintf("%s - %s", w.Start, w.End)) + "\n")

		if len(w.Meals) == 0 {
			b.WriteString("  " + emptyStyle.Render("no meals planned") + "\n")
			continue
		}
		for _, meal := range w.Meals {
			line := "  • " + meal.Name
			if meal.Eaten {
				line += " " + eatenStyle.Render("✓")
			}
			b.WriteString(line + "\n")
		}
	}
	return b.String()
}
