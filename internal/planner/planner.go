// Package planner holds the meal actions called by the CLI, the TUI and the
// HTTP API. It enforces the optional session check and wraps store failures
// with the action that caused them.
package planner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aleksanderbl29/meal-planner/internal/auth"
	"github.com/aleksanderbl29/meal-planner/internal/logger"
	"github.com/aleksanderbl29/meal-planner/internal/models"
	"github.com/aleksanderbl29/meal-planner/internal/storage"
	"github.com/aleksanderbl29/meal-planner/internal/weeks"
)

var (
	ErrAuthRequired = errors.New("authentication required")
	ErrNotFound     = errors.New("meal not found")
)

// Options configures a Service. The zero value disables the session check
// and uses HistoricAll.
type Options struct {
	// RequireAuth makes every action fail with ErrAuthRequired when
	// Sessions reports no user.
	RequireAuth bool
	Sessions    auth.SessionProvider
	Historic    weeks.HistoricPolicy
	// Now replaces the clock of both the service and its store, so week
	// classification always agrees. When nil the store's clock is used.
	Now         func() time.Time
}

type Service struct {
	store       *storage.MealStore
	sessions    auth.SessionProvider
	requireAuth bool
	historic    weeks.HistoricPolicy
	now         func() time.Time
}

func New(store *storage.MealStore, opts Options) *Service {
	s := &Service{
		store:       store,
		sessions:    opts.Sessions,
		requireAuth: opts.RequireAuth,
		historic:    opts.Historic,
		now:         opts.Now,
	}
	if s.sessions == nil {
		s.sessions = auth.ContextSessions{}
	}
	if s.historic == "" {
		s.historic = weeks.HistoricAll
	}
	switch {
	case s.now != nil:
		store.Now = s.now
	case store.Now != nil:
		s.now = store.Now
	default:
		s.now = time.Now
		store.Now = time.Now
	}
	return s
}

// Now returns the service clock.
func (s *Service) Now() time.Time { return s.now() }

// CurrentWeek returns the week "now" falls in.
func (s *Service) CurrentWeek() weeks.WeekYear {
	week, year := weeks.CurrentWeekYear(s.now())
	return weeks.WeekYear{Week: week, Year: year}
}

func (s *Service) HistoricPolicy() weeks.HistoricPolicy { return s.historic }

func (s *Service) authorize(ctx context.Context) error {
	if !s.requireAuth {
		return nil
	}
	if _, ok := s.sessions.Session(ctx); !ok {
		return ErrAuthRequired
	}
	return nil
}

// Fetch returns every meal with IsThisWeek recomputed.
func (s *Service) Fetch(ctx context.Context) ([]models.Meal, error) {
	if err := s.authorize(ctx); err != nil {
		return nil, fmt.Errorf("failed to fetch meals: %w", err)
	}
	return s.store.List(ctx), nil
}

// Get returns one meal, or ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (models.Meal, error) {
	if err := s.authorize(ctx); err != nil {
		return models.Meal{}, fmt.Errorf("failed to get meal: %w", err)
	}
	meal, ok := s.store.Get(ctx, id)
	if !ok {
		return models.Meal{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return meal, nil
}

func (s *Service) Create(ctx context.Context, name string, week, year int) (models.Meal, error) {
	if err := s.authorize(ctx); err != nil {
		return models.Meal{}, fmt.Errorf("failed to create meal: %w", err)
	}
	meal, err := s.store.Add(ctx, models.Meal{Name: name, Week: week, Year: year})
	if err != nil {
		return models.Meal{}, fmt.Errorf("failed to create meal: %w", err)
	}
	logger.Info("Meal created", "id", meal.ID, "week", meal.Week, "year", meal.Year)
	return meal, nil
}

// Edit replaces a stored meal. Editing an unknown id changes nothing.
func (s *Service) Edit(ctx context.Context, meal models.Meal) (models.Meal, error) {
	if err := s.authorize(ctx); err != nil {
		return models.Meal{}, fmt.Errorf("failed to update meal: %w", err)
	}
	updated, err := s.store.Update(ctx, meal)
	if err != nil {
		return models.Meal{}, fmt.Errorf("failed to update meal: %w", err)
	}
	return updated, nil
}

// Remove deletes a meal. Removing an unknown id changes nothing.
func (s *Service) Remove(ctx context.Context, id string) error {
	if err := s.authorize(ctx); err != nil {
		return fmt.Errorf("failed to delete meal: %w", err)
	}
	if err := s.store.Remove(ctx, id); err != nil {
		return fmt.Errorf("failed to delete meal: %w", err)
	}
	return nil
}

// MarkEaten moves the meal to the current week and flags it eaten.
func (s *Service) MarkEaten(ctx context.Context, id string) (models.Meal, error) {
	meal, err := s.moveToCurrentWeek(ctx, id, true)
	if err != nil {
		return models.Meal{}, fmt.Errorf("failed to mark meal eaten: %w", err)
	}
	return meal, nil
}

// Promote moves the meal to the current week and clears the eaten flag.
func (s *Service) Promote(ctx context.Context, id string) (models.Meal, error) {
	meal, err := s.moveToCurrentWeek(ctx, id, false)
	if err != nil {
		return models.Meal{}, fmt.Errorf("failed to move meal to this week: %w", err)
	}
	return meal, nil
}

func (s *Service) moveToCurrentWeek(ctx context.Context, id string, eaten bool) (models.Meal, error) {
	if err := s.authorize(ctx); err != nil {
		return models.Meal{}, err
	}
	meal, ok := s.store.Get(ctx, id)
	if !ok {
		return models.Meal{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	current := s.CurrentWeek()
	meal.Week, meal.Year = current.Week, current.Year
	meal.Eaten = eaten
	return s.store.Update(ctx, meal)
}

// Upcoming returns uneaten meals planned for the current week or later,
// oldest week first.
func (s *Service) Upcoming(ctx context.Context, thisWeekOnly bool) ([]models.Meal, error) {
	meals, err := s.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	current := s.CurrentWeek()
	return weeks.Upcoming(meals, current.Week, current.Year, thisWeekOnly), nil
}

// Historic returns the history list under the configured policy, newest first.
func (s *Service) Historic(ctx context.Context) ([]models.Meal, error) {
	meals, err := s.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	current := s.CurrentWeek()
	return weeks.Historic(meals, current.Week, current.Year, s.historic), nil
}
