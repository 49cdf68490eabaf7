package tui

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/aleksanderbl29/meal-planner/internal/weeks"
)

// presetCustom keeps the week and year picked explicitly in the form.
const presetCustom = -1

// MealFormModel backs the add and edit form. Preset is a week offset from
// now, or presetCustom.
type MealFormModel struct {
	Name   string
	Preset int
	Week   int
	Year   int
}

// Resolve returns the week the form points at.
func (fm MealFormModel) Resolve(now time.Time) weeks.WeekYear {
	if fm.Preset == presetCustom {
		return weeks.WeekYear{Week: fm.Week, Year: fm.Year}
	}
	return weeks.WeeksFromNow(now, fm.Preset)
}

// NewMealForm creates the form for adding or editing a meal
func NewMealForm(fm *MealFormModel, currentYear int) *huh.Form {
	weekOpts := make([]huh.Option[int], 0, len(weeks.WeekOptions()))
	for _, w := range weeks.WeekOptions() {
		weekOpts = append(weekOpts, huh.NewOption(fmt.Sprintf("Week %d (from %s)", w, weeks.StartDate(w, fm.Year)), w))
	}

	years := weeks.YearOptions(currentYear)
	if !slices.Contains(years, fm.Year) {
		years = append(years, fm.Year)
		slices.Sort(years)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("name cannot be empty")
					}
					return nil
				}),
			huh.NewSelect[int]().
				Title("When").
				Options(
					huh.NewOption("Pick week and year", presetCustom),
					huh.NewOption("This week", 0),
					huh.NewOption("Next week", 1),
					huh.NewOption("In 2 weeks", 2),
					huh.NewOption("In 3 weeks", 3),
					huh.NewOption("In 4 weeks", 4),
				).
				Value(&fm.Preset),
		),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Week").
				Options(weekOpts...).
				Value(&fm.Week),
			huh.NewSelect[int]().
				Title("Year").
				Options(huh.NewOptions(years...)...).
				Value(&fm.Year),
		).WithHideFunc(func() bool { return fm.Preset != presetCustom }),
	)
}
