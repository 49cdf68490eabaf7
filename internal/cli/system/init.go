package system

import (
	"fmt"
	"os"

	"github.com/aleksanderbl29/meal-planner/internal/cli"
	"github.com/aleksanderbl29/meal-planner/internal/config"
)

type InitCmd struct {
	Force bool `help:"Delete the existing local store before initializing."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	out := ctx.Writer()
	local := ctx.Store.Secondary()

	if c.Force {
		path := local.GetConfigPath()
		if path != config.MemoryPath {
			if _, err := os.Stat(path); err == nil {
				// Close first to release the file handle
				if err := local.Close(); err != nil {
					return fmt.Errorf("failed to close existing local store: %w", err)
				}
				if err := os.Remove(path); err != nil {
					return fmt.Errorf("failed to delete existing local store: %w", err)
				}
				fmt.Fprintf(out, "Deleted existing local store at: %s\n", path)
			} else if !os.IsNotExist(err) {
				return fmt.Errorf("failed to access existing local store: %w", err)
			}
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Fprintf(out, "Initialized meal storage at: %s (%s)\n", local.GetConfigPath(), local.Name())

	if primary := ctx.Store.Primary(); primary != nil {
		fmt.Fprintf(out, "Remote store: %s (%s)\n", primary.Name(), primary.GetConfigPath())
	} else {
		fmt.Fprintln(out, "Remote store: not configured, meals are kept locally only")
	}
	return nil
}
