package meallist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aleksanderbl29/meal-planner/internal/models"
	"github.com/aleksanderbl29/meal-planner/internal/weeks"
)

type AddMealMsg struct{}

type EditMealMsg struct {
	Meal models.Meal
}

type DeleteMealMsg struct {
	Meal models.Meal
}

type EatenMealMsg struct {
	ID string
}

type PromoteMealMsg struct {
	ID string
}

type Item struct {
	Meal models.Meal
}

func (i Item) Title() string {
	if i.Meal.Eaten {
		return "✓ " + i.Meal.Name
	}
	return i.Meal.Name
}

func (i Item) Description() string {
	start, end := weeks.FormatRange(weeks.DateRange(i.Meal.Week, i.Meal.Year))
	desc := fmt.Sprintf("Week %d, %d | %s - %s", i.Meal.Week, i.Meal.Year, start, end)
	if i.Meal.IsThisWeek {
		desc += " | this week"
	}
	if i.Meal.Eaten {
		desc += " | eaten"
	}
	return desc
}

func (i Item) FilterValue() string { return i.Meal.Name }

type KeyMap struct {
	Add     key.Binding
	Edit    key.Binding
	Delete  key.Binding
	Eaten   key.Binding
	Promote key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Eaten: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "eaten"),
		),
		Promote: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "to this week"),
		),
	}
}

type Model struct {
	list  list.Model
	keys  KeyMap
	empty string
}

// New builds a list. empty is shown when there are no meals.
func New(meals []models.Meal, empty string, width, height int) Model {
	l := list.New(toItems(meals), list.NewDefaultDelegate(), width, height)
	l.SetShowTitle(false)
	l.SetShowHelp(false) // Help is rendered by the main model

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Delete, keys.Eaten, keys.Promote}
	}
	l.AdditionalFullHelpKeys = l.AdditionalShortHelpKeys

	return Model{list: l, keys: keys, empty: empty}
}

func toItems(meals []models.Meal) []list.Item {
	items := make([]list.Item, len(meals))
	for i, m := range meals {
		items[i] = Item{Meal: m}
	}
	return items
}

func (m *Model) SetMeals(meals []models.Meal) {
	m.list.SetItems(toItems(meals))
}

// Meals returns the meals currently listed.
func (m Model) Meals() []models.Meal {
	items := m.list.Items()
	meals := make([]models.Meal, 0, len(items))
	for _, it := range items {
		if i, ok := it.(Item); ok {
			meals = append(meals, i.Meal)
		}
	}
	return meals
}

// Select moves the cursor to index i.
func (m *Model) Select(i int) {
	m.list.Select(i)
}

func (m Model) Keys() KeyMap { return m.keys }

// Filtering reports whether the filter input has focus.
func (m Model) Filtering() bool { return m.list.FilterState() == list.Filtering }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddMealMsg{} }
		case key.Matches(msg, m.keys.Edit):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return EditMealMsg(i) }
			}
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteMealMsg(i) }
			}
		case key.Matches(msg, m.keys.Eaten):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return EatenMealMsg{ID: i.Meal.ID} }
			}
		case key.Matches(msg, m.keys.Promote):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return PromoteMealMsg{ID: i.Meal.ID} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  " + m.empty + "\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
