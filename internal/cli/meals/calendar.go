package meals

import (
	"fmt"
	"io"

	"github.com/aleksanderbl29/meal-planner/internal/cli"
	"github.com/aleksanderbl29/meal-planner/internal/constants"
	"github.com/aleksanderbl29/meal-planner/internal/planner"
)

type CalendarCmd struct {
	Before int  `help:"Weeks to show before the current week." default:"${weeks_before}"`
	After  int  `help:"Weeks to show after the current week." default:"${weeks_after}"`
	IDs    bool `help:"Show meal IDs." name:"ids"`
}

func (c *CalendarCmd) Run(ctx *cli.Context) error {
	if c.Before < 0 || c.After < 0 {
		return fmt.Errorf("--before and --after cannot be negative")
	}
	cal, err := ctx.Planner.Calendar(ctx.Request(), c.Before, c.After)
	if err != nil {
		return err
	}

	out := ctx.Writer()
	for i, w := range cal {
		if i > 0 {
			fmt.Fprintln(out)
		}
		printWeek(out, w, c.IDs)
	}
	return nil
}

type WeekCmd struct {
	Year int  `arg:"" optional:"" help:"Year (defaults to the current year)."`
	Week int  `arg:"" optional:"" help:"Week number 1-52 (defaults to the current week)."`
	IDs  bool `help:"Show meal IDs." name:"ids"`
}

func (c *WeekCmd) Run(ctx *cli.Context) error {
	current := ctx.Planner.CurrentWeek()
	year, week := c.Year, c.Week
	if year == 0 {
		year = current.Year
	}
	if week == 0 {
		week = current.Week
	}
	if year < 1 || year > 9999 {
		return fmt.Errorf("year must be between 1 and 9999, got %d", year)
	}
	if week < constants.MinWeek || week > constants.MaxWeek {
		return fmt.Errorf("week must be between %d and %d, got %d", constants.MinWeek, constants.MaxWeek, week)
	}

	w, err := ctx.Planner.WeekRange(ctx.Request(), week, year)
	if err != nil {
		return err
	}
	printWeek(ctx.Writer(), w, c.IDs)
	return nil
}

func printWeek(out io.Writer, w planner.Week, showIDs bool) {
	fmt.Fprintln(out, cli.FormatWeek(w))
	if len(w.Meals) == 0 {
		fmt.Fprintln(out, "  (no meals planned)")
		return
	}
	for _, m := range w.Meals {
		fmt.Fprintf(out, "  - %s\n", cli.FormatMeal(m, showIDs))
	}
}
