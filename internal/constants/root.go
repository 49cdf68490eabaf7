package constants

const (
	AppName            = "mealplanner"
	DefaultKeyringUser = "kv-rest-token"
	DefaultConfigPath  = "~/.config/mealplanner/meals.db"
	Version            = "v0.3.0"

	// MealsKey is the single key the whole meal collection is stored under,
	// both remotely and locally.
	MealsKey = "meals"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Display formats for week ranges ("Mar 3" - "Mar 9, 2025")
	RangeStartFormat = "Jan 2"
	RangeEndFormat   = "Jan 2, 2006"

	// Week numbering bounds. Years with a 53rd ISO week are not modelled.
	MinWeek      = 1
	MaxWeek      = 52
	WeeksPerYear = 52

	// Calendar window around the current week
	DefaultWeeksBefore = 2
	DefaultWeeksAfter  = 4

	// Year picker spans current-1 .. current+2
	YearOptionsBefore = 1
	YearOptionsAfter  = 2

	// Server defaults
	DefaultListenAddr    = ":8080"
	DefaultTokenDuration = "720h"
	APIVersion           = "v1"

	// EnvTestPostgres enables the PostgreSQL integration tests
	EnvTestPostgres = "MEALPLANNER_TEST_POSTGRES"
)
