package meals

import (
	"encoding/json"
	"fmt"

	"github.com/aleksanderbl29/meal-planner/internal/cli"
	"github.com/aleksanderbl29/meal-planner/internal/planner"
)

type MealListCmd struct {
	View     string `help:"Which meals to list: upcoming, historic or all." enum:"upcoming,historic,all" default:"upcoming"`
	ThisWeek bool   `help:"Only meals planned for the current week (upcoming view)."`
	IDs      bool   `help:"Show meal IDs." name:"ids"`
	JSON     bool   `help:"Print meals as JSON." name:"json"`
}

func (c *MealListCmd) Run(ctx *cli.Context) error {
	view := planner.View(c.View)
	if !view.Valid() {
		return fmt.Errorf("invalid view %q (expected upcoming, historic or all)", c.View)
	}

	meals, err := ctx.Planner.List(ctx.Request(), view, c.ThisWeek)
	if err != nil {
		return err
	}

	out := ctx.Writer()
	if c.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(meals)
	}

	if len(meals) == 0 {
		fmt.Fprintln(out, "No meals found.")
		return nil
	}

	current := ctx.Planner.CurrentWeek()
	switch view {
	case planner.ViewHistoric:
		fmt.Fprintf(out, "Meal history (%s):\n", ctx.Planner.HistoricPolicy())
	case planner.ViewAll:
		fmt.Fprintln(out, "All meals:")
	default:
		fmt.Fprintf(out, "Upcoming meals (current week %d, %d):\n", current.Week, current.Year)
	}
	for _, m := range meals {
		fmt.Fprintf(out, "  - %s\n", cli.FormatMeal(m, c.IDs))
	}
	return nil
}
