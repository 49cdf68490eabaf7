package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/aleksanderbl29/meal-planner/internal/tui/components/meallist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Handle Form State
	if m.state == StateForm {
		if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
			m.formError = ""
			m.state = m.previousState
			return m, nil
		}

		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}
		cmds = append(cmds, cmd)

		switch m.form.State {
		case huh.StateCompleted:
			if err := m.saveForm(); err != nil {
				// Stay in the form so the user can retry or cancel with ESC
				m.formError = err.Error()
				m.form.State = huh.StateNormal
				return m, tea.Batch(cmds...)
			}
			m.formError = ""
			m.state = m.previousState
		case huh.StateAborted:
			m.formError = ""
			m.state = m.previousState
		}
		return m, tea.Batch(cmds...)
	}

	// Handle Confirm Delete State
	if m.state == StateConfirmDelete {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch msg.String() {
			case "y", "Y":
				if m.toDelete != nil {
					if err := m.planner.Remove(m.ctx, m.toDelete.ID); err != nil {
						m.setError(err)
					} else {
						m.setStatus(fmt.Sprintf("Deleted %s", m.toDelete.Name))
						m.reload()
					}
				}
				m.toDelete = nil
				m.state = m.previousState
			case "n", "N", "esc", "q":
				m.toDelete = nil
				m.state = m.previousState
			}
		}
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		// Leave room for tabs, the week header, the status line and help
		listHeight := msg.Height - 6

		h, v := docStyle.GetFrameSize()
		m.upcoming.SetSize(msg.Width-h, listHeight-v)
		m.history.SetSize(msg.Width-h, listHeight-v)
		m.calendar.SetSize(msg.Width-h, listHeight-v)

	case meallist.AddMealMsg:
		current := m.planner.CurrentWeek()
		m.editing = nil
		m.mealForm = &MealFormModel{Preset: 0, Week: current.Week, Year: current.Year}
		return m, m.openForm()

	case meallist.EditMealMsg:
		meal := msg.Meal
		m.editing = &meal
		m.mealForm = &MealFormModel{Name: meal.Name, Preset: presetCustom, Week: meal.Week, Year: meal.Year}
		return m, m.openForm()

	case meallist.DeleteMealMsg:
		meal := msg.Meal
		m.toDelete = &meal
		m.previousState = m.state
		m.state = StateConfirmDelete
		return m, nil

	case meallist.EatenMealMsg:
		if meal, err := m.planner.MarkEaten(m.ctx, msg.ID); err != nil {
			m.setError(err)
		} else {
			m.setStatus(fmt.Sprintf("Marked %s as eaten", meal.Name))
			m.reload()
		}
		return m, nil

	case meallist.PromoteMealMsg:
		if meal, err := m.planner.Promote(m.ctx, msg.ID); err != nil {
			m.setError(err)
		} else {
			m.setStatus(fmt.Sprintf("Moved %s to this week", meal.Name))
			m.reload()
		}
		return m, nil

	case tea.KeyMsg:
		if m.filtering() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab, m.keys.Right):
			m.state = (m.state + 1) % numMainTabs
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab, m.keys.Left):
			m.state = (m.state - 1 + numMainTabs) % numMainTabs
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Reload):
			m.setStatus("")
			m.reload()
			if !m.statusErr {
				m.setStatus("Reloaded")
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateUpcoming:
		m.upcoming, cmd = m.upcoming.Update(msg)
		cmds = append(cmds, cmd)
	case StateCalendar:
		m.calendar, cmd = m.calendar.Update(msg)
		cmds = append(cmds, cmd)
	case StateHistory:
		m.history, cmd = m.history.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// filtering reports whether the active list is taking filter input.
func (m Model) filtering() bool {
	switch m.state {
	case StateUpcoming:
		return m.upcoming.Filtering()
	case StateHistory:
		return m.history.Filtering()
	}
	return false
}

func (m *Model) openForm() tea.Cmd {
	m.formError = ""
	m.previousState = m.state
	m.state = StateForm
	m.form = NewMealForm(m.mealForm, m.planner.CurrentWeek().Year)
	return m.form.Init()
}

// saveForm creates or updates the meal described by the form.
func (m *Model) saveForm() error {
	wy := m.mealForm.Resolve(m.planner.Now())

	if m.editing == nil {
		meal, err := m.planner.Create(m.ctx, m.mealForm.Name, wy.Week, wy.Year)
		if err != nil {
			return err
		}
		m.setStatus(fmt.Sprintf("Added %s for week %d, %d", meal.Name, meal.Week, meal.Year))
	} else {
		meal := *m.editing
		meal.Name = m.mealForm.Name
		meal.Week, meal.Year = wy.Week, wy.Year
		updated, err := m.planner.Edit(m.ctx, meal)
		if err != nil {
			return err
		}
		m.setStatus(fmt.Sprintf("Updated %s", updated.Name))
	}

	m.editing = nil
	m.reload()
	return nil
}
