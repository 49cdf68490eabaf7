package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/aleksanderbl29/meal-planner/internal/auth"
	"github.com/aleksanderbl29/meal-planner/internal/cli"
	"github.com/aleksanderbl29/meal-planner/internal/keyring"
)

// KeyringSetCmd stores a credential in the OS keyring
type KeyringSetCmd struct {
	Secret string `arg:"" help:"Secret to store: kv-rest-token or jwt-secret." enum:"kv-rest-token,jwt-secret"`
	Value  string `arg:"" optional:"" help:"Secret value. Prompted for when omitted."`
}

func (cmd *KeyringSetCmd) Run(ctx *cli.Context) error {
	secret, err := keyring.ParseSecret(cmd.Secret)
	if err != nil {
		return err
	}

	value := cmd.Value
	if value == "" {
		err := huh.NewInput().
			Title(fmt.Sprintf("Value for %s", secret)).
			EchoMode(huh.EchoModePassword).
			Value(&value).
			Run()
		if err != nil {
			return fmt.Errorf("failed to read secret: %w", err)
		}
	}

	if secret == keyring.JWTSecret {
		if _, err := auth.NewJWTManager(value, time.Hour); err != nil {
			return err
		}
	}

	if err := keyring.Set(secret, value); err != nil {
		return err
	}

	fmt.Fprintf(ctx.Writer(), "✓ %s stored successfully in OS keyring\n", secret)
	return nil
}

// KeyringGetCmd shows a masked credential from the OS keyring
type KeyringGetCmd struct {
	Secret string `arg:"" help:"Secret to show: kv-rest-token or jwt-secret." enum:"kv-rest-token,jwt-secret"`
}

func (cmd *KeyringGetCmd) Run(ctx *cli.Context) error {
	secret, err := keyring.ParseSecret(cmd.Secret)
	if err != nil {
		return err
	}
	value, err := keyring.Get(secret)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("no %s found in keyring. Use 'mealplanner keyring set %s' to store one", secret, secret)
		}
		return fmt.Errorf("failed to retrieve %s from keyring: %w", secret, err)
	}

	fmt.Fprintf(ctx.Writer(), "%s: %s\n", secret, keyring.Mask(value))
	return nil
}

// KeyringDeleteCmd removes a credential from the OS keyring
type KeyringDeleteCmd struct {
	Secret string `arg:"" help:"Secret to delete: kv-rest-token or jwt-secret." enum:"kv-rest-token,jwt-secret"`
}

func (cmd *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	secret, err := keyring.ParseSecret(cmd.Secret)
	if err != nil {
		return err
	}
	if err := keyring.Delete(secret); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("no %s found in keyring", secret)
		}
		return err
	}

	fmt.Fprintf(ctx.Writer(), "✓ %s deleted from OS keyring\n", secret)
	return nil
}

// KeyringStatusCmd reports keyring availability and which secrets are stored
type KeyringStatusCmd struct{}

func (cmd *KeyringStatusCmd) Run(ctx *cli.Context) error {
	out := ctx.Writer()
	if !keyring.IsAvailable() {
		fmt.Fprintln(out, "❌ OS keyring is not available on this system")
		fmt.Fprintln(out, "   Use KV_REST_API_TOKEN and MEALPLANNER_JWT_SECRET instead.")
		return nil
	}

	fmt.Fprintln(out, "✓ OS keyring is available")
	for _, secret := range keyring.Secrets {
		_, err := keyring.Get(secret)
		switch {
		case err == nil:
			fmt.Fprintf(out, "  ✓ %s: stored\n", secret)
		case errors.Is(err, keyring.ErrNotFound):
			fmt.Fprintf(out, "  ⊘ %s: not set\n", secret)
		default:
			fmt.Fprintf(out, "  ⚠ %s: %v\n", secret, err)
		}
	}
	return nil
}
