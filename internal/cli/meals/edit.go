package meals

import (
	"errors"
	"fmt"

	"github.com/aleksanderbl29/meal-planner/internal/cli"
)

type MealEditCmd struct {
	ID    string  `arg:"" help:"Meal ID or unique ID prefix."`
	Name  *string `help:"New meal name."`
	When  *string `help:"Move to a week: this-week, next-week, +N, -N or a date (YYYY-MM-DD)."`
	Week  *int    `help:"New week number (1-52)."`
	Year  *int    `help:"New year."`
	Eaten *bool   `help:"Set eaten status."`
}

func (c *MealEditCmd) Run(ctx *cli.Context) error {
	if c.Name == nil && c.When == nil && c.Week == nil && c.Year == nil && c.Eaten == nil {
		return errors.New("nothing to change: pass at least one of --name, --when, --week, --year or --eaten")
	}

	id, err := ctx.ResolveID(c.ID)
	if err != nil {
		return err
	}
	meal, err := ctx.Planner.Get(ctx.Request(), id)
	if err != nil {
		return err
	}

	if c.Name != nil {
		meal.Name = *c.Name
	}
	if c.When != nil {
		wy, err := cli.ParseWhen(ctx.Planner.Now(), *c.When)
		if err != nil {
			return err
		}
		meal.Week, meal.Year = wy.Week, wy.Year
	}
	if c.Week != nil {
		meal.Week = *c.Week
	}
	if c.Year != nil {
		meal.Year = *c.Year
	}
	if c.Eaten != nil {
		meal.Eaten = *c.Eaten
	}

	updated, err := ctx.Planner.Edit(ctx.Request(), meal)
	if err != nil {
		return err
	}

	fmt.Fprintf(ctx.Writer(), "Updated meal: %s\n", cli.FormatMeal(updated, true))
	return nil
}
