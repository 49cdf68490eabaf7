package meals

import (
	"fmt"
	"strings"

	"github.com/aleksanderbl29/meal-planner/internal/cli"
)

type MealAddCmd struct {
	Name []string `arg:"" help:"Meal name."`
	When string   `help:"Target week: this-week, next-week, +N, -N or a date (YYYY-MM-DD) inside the week."`
	Week int      `help:"Week number (1-52). Overrides the week picked by --when."`
	Year int      `help:"Year. Overrides the year picked by --when."`
}

func (c *MealAddCmd) Run(ctx *cli.Context) error {
	wy, err := cli.ParseWhen(ctx.Planner.Now(), c.When)
	if err != nil {
		return err
	}
	if c.Week != 0 {
		wy.Week = c.Week
	}
	if c.Year != 0 {
		wy.Year = c.Year
	}

	meal, err := ctx.Planner.Create(ctx.Request(), strings.Join(c.Name, " "), wy.Week, wy.Year)
	if err != nil {
		return err
	}

	fmt.Fprintf(ctx.Writer(), "Added meal: %s (ID: %s) for week %d, %d\n", meal.Name, cli.ShortID(meal.ID), meal.Week, meal.Year)
	return nil
}
