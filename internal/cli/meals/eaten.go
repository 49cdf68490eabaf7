package meals

import (
	"fmt"

	"github.com/aleksanderbl29/meal-planner/internal/cli"
)

// MealEatenCmd moves a meal into the current week and marks it eaten.
type MealEatenCmd struct {
	ID string `arg:"" help:"Meal ID or unique ID prefix."`
}

func (c *MealEatenCmd) Run(ctx *cli.Context) error {
	id, err := ctx.ResolveID(c.ID)
	if err != nil {
		return err
	}
	meal, err := ctx.Planner.MarkEaten(ctx.Request(), id)
	if err != nil {
		return err
	}

	fmt.Fprintf(ctx.Writer(), "✓ Marked %s as eaten this week (week %d, %d)\n", meal.Name, meal.Week, meal.Year)
	return nil
}

// MealPromoteCmd moves a meal into the current week as not yet eaten.
type MealPromoteCmd struct {
	ID string `arg:"" help:"Meal ID or unique ID prefix."`
}

func (c *MealPromoteCmd) Run(ctx *cli.Context) error {
	id, err := ctx.ResolveID(c.ID)
	if err != nil {
		return err
	}
	meal, err := ctx.Planner.Promote(ctx.Request(), id)
	if err != nil {
		return err
	}

	fmt.Fprintf(ctx.Writer(), "Moved %s to this week (week %d, %d)\n", meal.Name, meal.Week, meal.Year)
	return nil
}
