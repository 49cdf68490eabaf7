package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/aleksanderbl29/meal-planner/internal/weeks"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateUpcoming:
		content = docStyle.Render(m.upcoming.View())
	case StateCalendar:
		content = docStyle.Render(m.calendar.View())
	case StateHistory:
		content = docStyle.Render(m.history.View())
	case StateForm:
		content = m.viewForm()
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		m.viewHeader(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	active := m.state
	if active >= numMainTabs {
		active = m.previousState
	}

	var tabs []string
	tabTitles := []string{"Upcoming", "Calendar", "History"}
	for i, title := range tabTitles {
		if active == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewHeader() string {
	current := m.planner.CurrentWeek()
	start, end := weeks.FormatRange(current.Range())
	return weekLabelStyle.Render(fmt.Sprintf("Week %d, %d: %s - %s", current.Week, current.Year, start, end))
}

func (m Model) viewStatus() string {
	switch {
	case m.status == "":
		return ""
	case m.statusErr:
		return dangerStyle.Render("⚠ " + m.status)
	default:
		return statusStyle.Render(m.status)
	}
}

func (m Model) viewForm() string {
	title := "Add meal"
	if m.editing != nil {
		title = "Edit meal"
	}
	parts := []string{title, "", m.form.View()}
	if m.formError != "" {
		parts = append(parts, warningStyle.Render(m.formError))
	}
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m Model) viewConfirmDelete() string {
	name := ""
	if m.toDelete != nil {
		name = m.toDelete.Name
	}
	return lipgloss.Place(m.width, m.height-6,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Are you sure you want to delete %q?", name)),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
