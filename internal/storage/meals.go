package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aleksanderbl29/meal-planner/internal/constants"
	"github.com/aleksanderbl29/meal-planner/internal/logger"
	"github.com/aleksanderbl29/meal-planner/internal/models"
	"github.com/aleksanderbl29/meal-planner/internal/weeks"
)

// MealStore keeps the meal collection as one JSON array under a single key.
// Every mutation is a read-modify-write of the whole collection without any
// version check, so concurrent writers lose updates (last writer wins).
type MealStore struct {
	backend Backend
	key     string

	// Now and NewID are replaceable for tests.
	Now   func() time.Time
	NewID func() (string, error)
}

func NewMealStore(backend Backend) *MealStore {
	return &MealStore{
		backend: backend,
		key:     constants.MealsKey,
		Now:     time.Now,
		NewID:   newUUID,
	}
}

func newUUID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func (s *MealStore) Backend() Backend { return s.backend }

// List returns the whole collection with IsThisWeek recomputed. It never
// fails: a read error, a missing key or an undecodable payload all yield an
// empty collection.
func (s *MealStore) List(ctx context.Context) []models.Meal {
	meals, _ := s.load(ctx)
	week, year := weeks.CurrentWeekYear(s.Now())
	return weeks.Reclassify(meals, week, year)
}

// Get returns the meal with the given id.
func (s *MealStore) Get(ctx context.Context, id string) (models.Meal, bool) {
	for _, m := range s.List(ctx) {
		if m.ID == id {
			return m, true
		}
	}
	return models.Meal{}, false
}

// Add stores meal under a freshly generated id and returns the stored record.
func (s *MealStore) Add(ctx context.Context, meal models.Meal) (models.Meal, error) {
	meal = meal.Normalize()
	if err := meal.Validate(); err != nil {
		return models.Meal{}, err
	}

	meals, err := s.loadForWrite(ctx)
	if err != nil {
		return models.Meal{}, err
	}
	id, err := s.uniqueID(meals)
	if err != nil {
		return models.Meal{}, err
	}
	meal.ID = id
	meal.IsThisWeek = s.classify(meal)

	meals = append(meals, meal)
	if err := s.save(ctx, meals); err != nil {
		return models.Meal{}, err
	}
	return meal, nil
}

// Update replaces the stored meal with the same id. An unknown id is a
// no-op and nothing is written.
func (s *MealStore) Update(ctx context.Context, meal models.Meal) (models.Meal, error) {
	meal = meal.Normalize()
	if err := meal.Validate(); err != nil {
		return models.Meal{}, err
	}
	meal.IsThisWeek = s.classify(meal)

	meals, err := s.loadForWrite(ctx)
	if err != nil {
		return models.Meal{}, err
	}
	found := false
	for i := range meals {
		if meals[i].ID == meal.ID {
			meals[i] = meal
			found = true
			break
		}
	}
	if !found {
		logger.Debug("Update of unknown meal ignored", "id", meal.ID)
		return meal, nil
	}

	if err := s.save(ctx, meals); err != nil {
		return models.Meal{}, err
	}
	return meal, nil
}

// Remove deletes the meal with the given id. An unknown id is a no-op and
// the stored collection is left untouched.
func (s *MealStore) Remove(ctx context.Context, id string) error {
	meals, err := s.loadForWrite(ctx)
	if err != nil {
		return err
	}
	kept := make([]models.Meal, 0, len(meals))
	for _, m := range meals {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	if len(kept) == len(meals) {
		logger.Debug("Remove of unknown meal ignored", "id", id)
		return nil
	}
	return s.save(ctx, kept)
}

func (s *MealStore) classify(meal models.Meal) bool {
	week, year := weeks.CurrentWeekYear(s.Now())
	return weeks.Classify(meal, week, year)
}

func (s *MealStore) uniqueID(meals []models.Meal) (string, error) {
	taken := make(map[string]struct{}, len(meals))
	for _, m := range meals {
		taken[m.ID] = struct{}{}
	}
	for attempt := 0; attempt < 10; attempt++ {
		id, err := s.NewID()
		if err != nil {
			return "", fmt.Errorf("failed to generate meal id: %w", err)
		}
		if _, dup := taken[id]; !dup && id != "" {
			return id, nil
		}
	}
	return "", fmt.Errorf("failed to generate a unique meal id")
}

// load returns the raw stored collection. List treats any error as an empty
// collection; the write paths go through loadForWrite instead.
func (s *MealStore) load(ctx context.Context) ([]models.Meal, error) {
	raw, found, err := s.backend.Get(ctx, s.key)
	if err != nil {
		logger.Error("Error fetching meals", "store", s.backend.Name(), "error", err)
		return []models.Meal{}, err
	}
	if !found || raw == "" {
		return []models.Meal{}, nil
	}

	var meals []models.Meal
	if err := json.Unmarshal([]byte(raw), &meals); err != nil {
		logger.Error("Stored meals are not valid JSON, treating as empty", "store", s.backend.Name(), "error", err)
		return []models.Meal{}, err
	}
	if meals == nil {
		meals = []models.Meal{}
	}
	return meals, nil
}

// loadForWrite refuses to start a read-modify-write from a collection that
// could not be read, so a failed read never overwrites the stored meals.
func (s *MealStore) loadForWrite(ctx context.Context) ([]models.Meal, error) {
	meals, err := s.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read stored meals: %w", ErrPersistence, err)
	}
	return meals, nil
}

func (s *MealStore) save(ctx context.Context, meals []models.Meal) error {
	if meals == nil {
		meals = []models.Meal{}
	}
	data, err := json.Marshal(meals)
	if err != nil {
		return fmt.Errorf("failed to encode meals: %w", err)
	}
	return s.backend.Set(ctx, s.key, string(data))
}
