package meals

import (
	"fmt"

	"github.com/aleksanderbl29/meal-planner/internal/cli"
)

type MealDeleteCmd struct {
	ID string `arg:"" help:"Meal ID or unique ID prefix."`
}

func (c *MealDeleteCmd) Run(ctx *cli.Context) error {
	// Resolve first so an unknown id is reported instead of silently ignored
	id, err := ctx.ResolveID(c.ID)
	if err != nil {
		return fmt.Errorf("failed to find meal with ID %s: %w", c.ID, err)
	}
	meal, err := ctx.Planner.Get(ctx.Request(), id)
	if err != nil {
		return err
	}

	if err := ctx.Planner.Remove(ctx.Request(), id); err != nil {
		return err
	}

	fmt.Fprintf(ctx.Writer(), "Deleted meal: %s (ID: %s)\n", meal.Name, cli.ShortID(meal.ID))
	return nil
}
