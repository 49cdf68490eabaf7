package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/aleksanderbl29/meal-planner/internal/auth"
	"github.com/aleksanderbl29/meal-planner/internal/config"
	"github.com/aleksanderbl29/meal-planner/internal/constants"
	"github.com/aleksanderbl29/meal-planner/internal/models"
	"github.com/aleksanderbl29/meal-planner/internal/planner"
	"github.com/aleksanderbl29/meal-planner/internal/storage"
	"github.com/aleksanderbl29/meal-planner/internal/weeks"
)

// ShortIDLength is how many characters of a meal id are printed in lists.
// Any unique prefix is accepted wherever an id is expected.
const ShortIDLength = 8

var ErrAmbiguousID = errors.New("ambiguous meal id")

type Context struct {
	Config  config.Config
	Store   *storage.Tiered
	Meals   *storage.MealStore
	Planner *planner.Service
	// JWT is nil when no signing secret is configured.
	JWT *auth.JWTManager
	// UserID is the session established with --token, if any.
	UserID string
	Out    io.Writer
}

// NewContext wires the meal store and planner on top of an already built
// store. The store is not loaded.
func NewContext(cfg config.Config, store *storage.Tiered) (*Context, error) {
	policy, err := cfg.Policy()
	if err != nil {
		return nil, err
	}

	var jwtManager *auth.JWTManager
	if cfg.JWTSecret != "" {
		duration, _ := time.ParseDuration(constants.DefaultTokenDuration)
		jwtManager, err = auth.NewJWTManager(cfg.JWTSecret, duration)
		if err != nil {
			return nil, err
		}
	}

	meals := storage.NewMealStore(store)
	return &Context{
		Config: cfg,
		Store:  store,
		Meals:  meals,
		Planner: planner.New(meals, planner.Options{
			RequireAuth: cfg.RequireAuth,
			Historic:    policy,
		}),
		JWT: jwtManager,
	}, nil
}

// Authenticate validates a session token and remembers its user.
// An empty token leaves the context anonymous.
func (c *Context) Authenticate(token string) error {
	if token == "" {
		return nil
	}
	if c.JWT == nil {
		return errors.New("session tokens need a JWT secret (set MEALPLANNER_JWT_SECRET or 'mealplanner keyring set jwt-secret')")
	}
	claims, err := c.JWT.Validate(token)
	if err != nil {
		return fmt.Errorf("%w: %w", planner.ErrAuthRequired, err)
	}
	c.UserID = claims.UserID
	return nil
}

// Request returns the context planner calls run under, carrying the session
// user when one is set.
func (c *Context) Request() context.Context {
	ctx := context.Background()
	if c.UserID != "" {
		ctx = auth.WithUserID(ctx, c.UserID)
	}
	return ctx
}

// Writer returns where command output goes, stdout unless overridden.
func (c *Context) Writer() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// ResolveID expands a full id or unique id prefix to the stored id.
func (c *Context) ResolveID(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", fmt.Errorf("%w: empty id", planner.ErrNotFound)
	}
	meals, err := c.Planner.Fetch(c.Request())
	if err != nil {
		return "", err
	}

	var matches []string
	for _, m := range meals {
		if m.ID == ref {
			return m.ID, nil
		}
		if strings.HasPrefix(m.ID, ref) {
			matches = append(matches, m.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", planner.ErrNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w: %q matches %d meals", ErrAmbiguousID, ref, len(matches))
	}
}

// ShortID truncates an id for display.
func ShortID(id string) string {
	if len(id) <= ShortIDLength {
		return id
	}
	return id[:ShortIDLength]
}

// ParseWhen turns a week reference into a week. It accepts "" or
// "this-week", "next-week", a signed week offset such as "+3" or "-1", and
// a YYYY-MM-DD date inside the target week.
func ParseWhen(now time.Time, when string) (weeks.WeekYear, error) {
	when = strings.ToLower(strings.TrimSpace(when))
	switch when {
	case "", "now", "this-week":
		return weeks.FromDate(now), nil
	case "next-week":
		return weeks.WeeksFromNow(now, 1), nil
	case "last-week":
		return weeks.WeeksFromNow(now, -1), nil
	}

	if strings.HasPrefix(when, "+") || strings.HasPrefix(when, "-") {
		n, err := strconv.Atoi(when)
		if err != nil {
			return weeks.WeekYear{}, fmt.Errorf("invalid week offset %q", when)
		}
		return weeks.WeeksFromNow(now, n), nil
	}

	t, err := time.Parse(constants.DateFormat, when)
	if err != nil {
		return weeks.WeekYear{}, fmt.Errorf("invalid week reference %q (use this-week, next-week, +N, -N or YYYY-MM-DD)", when)
	}
	return weeks.FromDate(t), nil
}

// FormatMeal renders one list line.
func FormatMeal(m models.Meal, showIDs bool) string {
	var b strings.Builder
	if showIDs {
		fmt.Fprintf(&b, "[%s] ", ShortID(m.ID))
	}
	b.WriteString(m.Name)
	fmt.Fprintf(&b, " (week %d, %d)", m.Week, m.Year)
	if m.IsThisWeek {
		b.WriteString(" *this week*")
	}
	if m.Eaten {
		b.WriteString(" ✓ eaten")
	}
	return b.String()
}

// FormatWeek renders a week heading such as "Week 10, 2025: Mar 3 - Mar 9, 2025".
func FormatWeek(w planner.Week) string {
	line := fmt.Sprintf("Week %d, %d: %s - %s", w.Week, w.Year, w.Start, w.End)
	if w.Current {
		line += " (current)"
	}
	return line
}
