// Package tui is the interactive terminal front end: an upcoming list, a
// rolling calendar and the meal history, with forms for adding and editing.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/aleksanderbl29/meal-planner/internal/constants"
	"github.com/aleksanderbl29/meal-planner/internal/logger"
	"github.com/aleksanderbl29/meal-planner/internal/models"
	"github.com/aleksanderbl29/meal-planner/internal/planner"
	"github.com/aleksanderbl29/meal-planner/internal/tui/components/calendar"
	"github.com/aleksanderbl29/meal-planner/internal/tui/components/meallist"
)

type SessionState int

const (
	StateUpcoming SessionState = iota
	StateCalendar
	StateHistory
	StateForm
	StateConfirmDelete
)

// numMainTabs is the number of tab states; they come first in SessionState.
const numMainTabs = 3

type Model struct {
	planner       *planner.Service
	ctx           context.Context
	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model
	upcoming      meallist.Model
	history       meallist.Model
	calendar      calendar.Model
	form          *huh.Form
	mealForm      *MealFormModel
	editing       *models.Meal // nil while adding
	toDelete      *models.Meal
	status        string
	statusErr     bool
	formError     string
	quitting      bool
	width         int
	height        int
}

// NewModel builds the TUI on top of the planner. ctx carries the session
// every action runs under.
func NewModel(ctx context.Context, p *planner.Service) Model {
	m := Model{
		planner:  p,
		ctx:      ctx,
		state:    StateUpcoming,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		upcoming: meallist.New(nil, "Nothing planned yet.", 0, 0),
		history:  meallist.New(nil, "No meals in the history.", 0, 0),
		calendar: calendar.New(0, 0),
	}
	m.reload()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateUpcoming, StateHistory:
		lk := m.upcoming.Keys()
		keys = append(keys, lk.Add, lk.Edit, lk.Delete, lk.Eaten, lk.Promote)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.Reload}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right}

	var actions []key.Binding
	switch m.state {
	case StateUpcoming, StateHistory:
		lk := m.upcoming.Keys()
		actions = []key.Binding{lk.Add, lk.Edit, lk.Delete, lk.Eaten, lk.Promote}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// reload refreshes every view from the store.
func (m *Model) reload() {
	upcoming, err := m.planner.Upcoming(m.ctx, false)
	if err != nil {
		m.setError(err)
		return
	}
	history, err := m.planner.Historic(m.ctx)
	if err != nil {
		m.setError(err)
		return
	}
	cal, err := m.planner.Calendar(m.ctx, constants.DefaultWeeksBefore, constants.DefaultWeeksAfter)
	if err != nil {
		m.setError(err)
		return
	}

	m.upcoming.SetMeals(upcoming)
	m.history.SetMeals(history)
	m.calendar.SetWeeks(cal)
}

func (m *Model) setStatus(msg string) {
	m.status = msg
	m.statusErr = false
}

func (m *Model) setError(err error) {
	logger.Error("TUI action failed", "error", err)
	m.status = err.Error()
	m.statusErr = true
}
