package system

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aleksanderbl29/meal-planner/internal/cli"
	"github.com/aleksanderbl29/meal-planner/internal/constants"
	"github.com/aleksanderbl29/meal-planner/internal/keyring"
	"github.com/aleksanderbl29/meal-planner/internal/models"
	"github.com/aleksanderbl29/meal-planner/internal/storage"
)

type DoctorCmd struct{}

// schemaVersioner is implemented by the SQL backed stores.
type schemaVersioner interface {
	SchemaVersion() (current, latest int, err error)
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	out := ctx.Writer()
	fmt.Fprintln(out, "Running diagnostics...")
	fmt.Fprintln(out)

	hasError := false
	local := ctx.Store.Secondary()

	// Check 1: local store reachable
	localReachable := false
	if err := checkStoreReachable(ctx, local); err != nil {
		reportFail(out, "Local store reachable", err)
		hasError = true
	} else {
		reportOK(out, "Local store reachable")
		localReachable = true
	}

	// Check 2: schema version (only if the local store is reachable)
	if localReachable {
		if err := checkSchemaVersion(local); err != nil {
			reportFail(out, "Schema version", err)
			hasError = true
		} else {
			reportOK(out, "Schema version")
		}
	} else {
		reportSkipped(out, "Schema version", "local store not reachable")
	}

	// Check 3: remote store (warning only, reads fall back to the local store)
	if primary := ctx.Store.Primary(); primary == nil {
		reportSkipped(out, "Remote store reachable", "not configured")
	} else if err := checkStoreReachable(ctx, primary); err != nil {
		reportWarn(out, "Remote store reachable", fmt.Errorf("%w (meals fall back to the local store)", err))
	} else {
		reportOK(out, "Remote store reachable")
	}

	// Check 4: stored meals decode and validate
	if localReachable {
		if err := checkMealData(ctx); err != nil {
			reportFail(out, "Meal data", err)
			hasError = true
		} else {
			reportOK(out, "Meal data")
		}
	} else {
		reportSkipped(out, "Meal data", "local store not reachable")
	}

	// Check 5: keyring (warning only)
	if !keyring.IsAvailable() {
		reportWarn(out, "OS keyring", keyring.ErrKeyringUnavailable)
	} else {
		reportOK(out, "OS keyring")
	}

	// Check 6: authentication settings
	if err := checkAuthConfig(ctx); err != nil {
		reportFail(out, "Authentication", err)
		hasError = true
	} else {
		reportOK(out, "Authentication")
	}

	// Check 7: clock sanity
	if err := checkClock(ctx.Planner.Now()); err != nil {
		reportFail(out, "Clock", err)
		hasError = true
	} else {
		reportOK(out, "Clock")
	}

	fmt.Fprintln(out)
	if hasError {
		fmt.Fprintln(out, "Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	fmt.Fprintln(out, "All diagnostics passed!")
	return nil
}

func reportOK(out io.Writer, name string) {
	fmt.Fprintf(out, "✓ %s: OK\n", name)
}

func reportFail(out io.Writer, name string, err error) {
	fmt.Fprintf(out, "❌ %s: FAIL\n", name)
	fmt.Fprintf(out, "   Error: %v\n", err)
}

func reportWarn(out io.Writer, name string, err error) {
	fmt.Fprintf(out, "⚠ %s: WARNING\n", name)
	fmt.Fprintf(out, "   %v\n", err)
}

func reportSkipped(out io.Writer, name, reason string) {
	fmt.Fprintf(out, "⊘ %s: SKIPPED (%s)\n", name, reason)
}

func checkStoreReachable(ctx *cli.Context, b storage.Backend) error {
	if _, _, err := b.Get(ctx.Request(), constants.MealsKey); err != nil {
		return fmt.Errorf("failed to read from %s store: %w", b.Name(), err)
	}
	return nil
}

func checkSchemaVersion(b storage.Backend) error {
	sv, ok := b.(schemaVersioner)
	if !ok {
		// Only the SQL stores carry a schema
		return nil
	}
	current, latest, err := sv.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

func checkMealData(ctx *cli.Context) error {
	raw, found, err := ctx.Store.Get(ctx.Request(), constants.MealsKey)
	if err != nil {
		return fmt.Errorf("failed to read meals: %w", err)
	}
	if !found {
		return nil
	}

	var meals []models.Meal
	if err := json.Unmarshal([]byte(raw), &meals); err != nil {
		return fmt.Errorf("stored meals are not a JSON array of meals: %w", err)
	}

	seen := make(map[string]bool, len(meals))
	var problems []error
	for _, m := range meals {
		if m.ID == "" {
			problems = append(problems, fmt.Errorf("meal %q has no id", m.Name))
			continue
		}
		if seen[m.ID] {
			problems = append(problems, fmt.Errorf("duplicate meal ID found: %s", m.ID))
		}
		seen[m.ID] = true
		if err := m.Validate(); err != nil {
			problems = append(problems, fmt.Errorf("meal %s: %w", m.ID, err))
		}
	}
	return errors.Join(problems...)
}

func checkAuthConfig(ctx *cli.Context) error {
	if ctx.Config.RequireAuth && ctx.JWT == nil {
		return errors.New("--require-auth is set but no JWT secret is configured, every action will be rejected")
	}
	return nil
}

func checkClock(now time.Time) error {
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
