package system

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aleksanderbl29/meal-planner/internal/auth"
	"github.com/aleksanderbl29/meal-planner/internal/cli"
)

// TokenCmd issues a session token for the API and the --token flag.
type TokenCmd struct {
	User     string        `arg:"" help:"User the token identifies."`
	Duration time.Duration `help:"How long the token stays valid." default:"${token_duration}"`
}

func (c *TokenCmd) Run(ctx *cli.Context) error {
	if strings.TrimSpace(c.User) == "" {
		return errors.New("user cannot be empty")
	}
	if ctx.Config.JWTSecret == "" {
		return errors.New("no JWT secret configured (set MEALPLANNER_JWT_SECRET or run 'mealplanner keyring set jwt-secret')")
	}
	if c.Duration <= 0 {
		return errors.New("duration must be positive")
	}

	m, err := auth.NewJWTManager(ctx.Config.JWTSecret, c.Duration)
	if err != nil {
		return err
	}
	token, err := m.Generate(c.User)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	fmt.Fprintln(ctx.Writer(), token)
	return nil
}
