// Package weeks holds the week arithmetic that decides which meals are
// upcoming, current or historic.
//
// Weeks are modelled as 52 per year. Dates are mapped to weeks with the ISO
// week number, but week 53 is folded into week 52, DateRange counts whole
// weeks from January 1st rather than applying the ISO leap-week rule, and
// Rolling wraps at 52. These are known approximations, kept on purpose so
// that stored (week, year) pairs keep meaning the same thing.
package weeks

import (
	"fmt"
	"sort"
	"time"

	"github.com/aleksanderbl29/meal-planner/internal/constants"
	"github.com/aleksanderbl29/meal-planner/internal/models"
)

// WeekYear identifies one planning week.
type WeekYear struct {
	Week int `json:"week"`
	Year int `json:"year"`
}

func (wy WeekYear) Key() int {
	return Key(wy.Week, wy.Year)
}

func (wy WeekYear) String() string {
	return fmt.Sprintf("%d/%d", wy.Week, wy.Year)
}

// Range returns the first and last day of the week.
func (wy WeekYear) Range() (time.Time, time.Time) {
	return DateRange(wy.Week, wy.Year)
}

// CurrentWeekYear returns the week number and year that now falls in.
func CurrentWeekYear(now time.Time) (int, int) {
	year, week := now.ISOWeek()
	if week > constants.MaxWeek {
		week = constants.MaxWeek
	}
	return week, year
}

// FromDate maps a calendar date to its (week, year).
func FromDate(t time.Time) WeekYear {
	week, year := CurrentWeekYear(t)
	return WeekYear{Week: week, Year: year}
}

// WeeksFromNow returns the week n weeks after now (n may be negative).
func WeeksFromNow(now time.Time, n int) WeekYear {
	return FromDate(now.AddDate(0, 0, n*7))
}

// Key returns a value whose numeric order matches chronological order.
// The year always outranks the week.
func Key(week, year int) int {
	return year*100 + week
}

// DateRange returns the Monday that starts the week containing day
// (week-1)*7+1 of year, and the Sunday six days later. Week numbers are not
// validated; out-of-range weeks land before or after the given year.
func DateRange(week, year int) (time.Time, time.Time) {
	day := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, (week-1)*7)
	offset := (int(day.Weekday()) + 6) % 7 // days since Monday
	start := day.AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 6)
}

// FormatRange renders a week range the way it is shown in lists: "Mar 3" and "Mar 9, 2025".
func FormatRange(start, end time.Time) (string, string) {
	return start.Format(constants.RangeStartFormat), end.Format(constants.RangeEndFormat)
}

// StartDate returns the first day of the week as YYYY-MM-DD.
func StartDate(week, year int) string {
	start, _ := DateRange(week, year)
	return start.Format(constants.DateFormat)
}

// Rolling returns before+after+1 consecutive weeks centred on the current
// week. Weeks past 52 roll into the next year and weeks before 1 into the
// previous one; 53-week years are ignored. Negative counts are treated as 0.
func Rolling(currentWeek, currentYear, before, after int) []WeekYear {
	if before < 0 {
		before = 0
	}
	if after < 0 {
		after = 0
	}

	weeks := make([]WeekYear, 0, before+after+1)
	for i := -before; i <= after; i++ {
		week := currentWeek + i
		year := currentYear
		for week < constants.MinWeek {
			year--
			week += constants.WeeksPerYear
		}
		for week > constants.MaxWeek {
			year++
			week -= constants.WeeksPerYear
		}
		weeks = append(weeks, WeekYear{Week: week, Year: year})
	}
	return weeks
}

// Classify reports whether the meal is planned for the current week.
func Classify(meal models.Meal, currentWeek, currentYear int) bool {
	return meal.Week == currentWeek && meal.Year == currentYear
}

// Reclassify returns a copy of meals with IsThisWeek recomputed.
func Reclassify(meals []models.Meal, currentWeek, currentYear int) []models.Meal {
	out := make([]models.Meal, len(meals))
	for i, m := range meals {
		m.IsThisWeek = Classify(m, currentWeek, currentYear)
		out[i] = m
	}
	return out
}

// Upcoming returns the meals planned for the current week or later that
// have not been eaten, oldest week first. With thisWeekOnly set, only the
// current week's meals are returned.
func Upcoming(meals []models.Meal, currentWeek, currentYear int, thisWeekOnly bool) []models.Meal {
	current := Key(currentWeek, currentYear)

	var out []models.Meal
	for _, m := range Reclassify(meals, currentWeek, currentYear) {
		if Key(m.Week, m.Year) < current || m.Eaten {
			continue
		}
		if thisWeekOnly && !m.IsThisWeek {
			continue
		}
		out = append(out, m)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return Key(out[i].Week, out[i].Year) < Key(out[j].Week, out[j].Year)
	})
	return out
}

// Historic returns the meals selected by policy, newest week first.
func Historic(meals []models.Meal, currentWeek, currentYear int, policy HistoricPolicy) []models.Meal {
	current := Key(currentWeek, currentYear)

	var out []models.Meal
	for _, m := range Reclassify(meals, currentWeek, currentYear) {
		if policy == HistoricPastOnly && Key(m.Week, m.Year) >= current {
			continue
		}
		out = append(out, m)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return Key(out[i].Week, out[i].Year) > Key(out[j].Week, out[j].Year)
	})
	return out
}

// ForWeek returns the meals planned for exactly the given week.
func ForWeek(meals []models.Meal, week, year int) []models.Meal {
	var out []models.Meal
	for _, m := range meals {
		if m.Week == week && m.Year == year {
			out = append(out, m)
		}
	}
	return out
}

// WeekOptions lists the selectable week numbers.
func WeekOptions() []int {
	opts := make([]int, 0, constants.MaxWeek)
	for w := constants.MinWeek; w <= constants.MaxWeek; w++ {
		opts = append(opts, w)
	}
	return opts
}

// YearOptions lists the selectable years around the current one.
func YearOptions(currentYear int) []int {
	var opts []int
	for y := currentYear - constants.YearOptionsBefore; y <= currentYear+constants.YearOptionsAfter; y++ {
		opts = append(opts, y)
	}
	return opts
}
