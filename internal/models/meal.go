package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aleksanderbl29/meal-planner/internal/constants"
)

var ErrInvalidMeal = errors.New("invalid meal")

// Meal is a single planned dish tagged with the week it is planned for.
// IsThisWeek is derived from Week/Year and is recomputed whenever meals are
// loaded; the stored value is never authoritative.
type Meal struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Week       int    `json:"week"`
	Year       int    `json:"year"`
	IsThisWeek bool   `json:"isThisWeek"`
	Eaten      bool   `json:"eaten,omitempty"`
}

func (m Meal) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidMeal)
	}
	if m.Week < constants.MinWeek || m.Week > constants.MaxWeek {
		return fmt.Errorf("%w: week must be between %d and %d, got %d", ErrInvalidMeal, constants.MinWeek, constants.MaxWeek, m.Week)
	}
	if m.Year < 1 || m.Year > 9999 {
		return fmt.Errorf("%w: year must be between 1 and 9999, got %d", ErrInvalidMeal, m.Year)
	}
	return nil
}

// Normalize returns a copy of the meal with surrounding whitespace trimmed from the name.
func (m Meal) Normalize() Meal {
	m.Name = strings.TrimSpace(m.Name)
	return m
}
