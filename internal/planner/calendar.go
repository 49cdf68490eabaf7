package planner

import (
	"context"

	"github.com/aleksanderbl29/meal-planner/internal/models"
	"github.com/aleksanderbl29/meal-planner/internal/weeks"
)

// Week is one calendar row: a week, its date range and its meals.
type Week struct {
	Week    int           `json:"week"`
	Year    int           `json:"year"`
	Start   string        `json:"start"`
	End     string        `json:"end"`
	Current bool          `json:"current"`
	Meals   []models.Meal `json:"meals"`
}

// View selects which partition List returns.
type View string

const (
	ViewUpcoming View = "upcoming"
	ViewHistoric View = "historic"
	ViewAll      View = "all"
)

func (v View) Valid() bool {
	switch v {
	case ViewUpcoming, ViewHistoric, ViewAll:
		return true
	}
	return false
}

// List returns the meals of one view. thisWeekOnly applies to the upcoming view.
func (s *Service) List(ctx context.Context, view View, thisWeekOnly bool) ([]models.Meal, error) {
	switch view {
	case ViewHistoric:
		return s.Historic(ctx)
	case ViewAll:
		return s.Fetch(ctx)
	default:
		return s.Upcoming(ctx, thisWeekOnly)
	}
}

// Calendar returns the rolling window of weeks around the current one.
// Negative widths count as zero.
func (s *Service) Calendar(ctx context.Context, before, after int) ([]Week, error) {
	meals, err := s.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	current := s.CurrentWeek()

	window := weeks.Rolling(current.Week, current.Year, before, after)
	out := make([]Week, 0, len(window))
	for _, wy := range window {
		out = append(out, s.week(meals, wy.Week, wy.Year, current))
	}
	return out, nil
}

// WeekRange returns a single week with its date range and meals.
func (s *Service) WeekRange(ctx context.Context, week, year int) (Week, error) {
	meals, err := s.Fetch(ctx)
	if err != nil {
		return Week{}, err
	}
	return s.week(meals, week, year, s.CurrentWeek()), nil
}

func (s *Service) week(meals []models.Meal, week, year int, current weeks.WeekYear) Week {
	start, end := weeks.FormatRange(weeks.DateRange(week, year))
	planned := weeks.ForWeek(meals, week, year)
	if planned == nil {
		planned = []models.Meal{}
	}
	return Week{
		Week:    week,
		Year:    year,
		Start:   start,
		End:     end,
		Current: week == current.Week && year == current.Year,
		Meals:   planned,
	}
}
