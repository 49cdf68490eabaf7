package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/aleksanderbl29/meal-planner/internal/logger"
	"github.com/aleksanderbl29/meal-planner/internal/models"
	"github.com/aleksanderbl29/meal-planner/internal/planner"
	"github.com/aleksanderbl29/meal-planner/internal/storage"
)

// Exit codes returned by the CLI.
const (
	ExitFailure     = 1
	ExitInvalidMeal = 2
	ExitAuth        = 3
	ExitPersistence = 4
	ExitNotFound    = 5
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// ExitCode maps known failures to distinct process exit codes.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case stderrors.Is(err, models.ErrInvalidMeal):
		return ExitInvalidMeal
	case stderrors.Is(err, planner.ErrAuthRequired):
		return ExitAuth
	case stderrors.Is(err, storage.ErrPersistence):
		return ExitPersistence
	case stderrors.Is(err, planner.ErrNotFound):
		return ExitNotFound
	default:
		return ExitFailure
	}
}

// Hint returns a short suggestion for the user, or "" when there is none.
func Hint(err error) string {
	switch {
	case stderrors.Is(err, models.ErrInvalidMeal):
		return "a meal needs a name, a week between 1 and 52 and a year between 1 and 9999"
	case stderrors.Is(err, planner.ErrAuthRequired):
		return "pass a token from 'mealplanner token <user>' or unset MEALPLANNER_REQUIRE_AUTH"
	case stderrors.Is(err, storage.ErrPersistence):
		return "run 'mealplanner doctor' to check the configured stores"
	case stderrors.Is(err, planner.ErrNotFound):
		return "run 'mealplanner list --view all' to see meal ids"
	}
	return ""
}

// Report writes the formatted error and its hint to w.
func Report(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(w, Format(err))
	if hint := Hint(err); hint != "" {
		fmt.Fprintf(w, "Hint: %s\n", hint)
	}
}

// Fatal logs an error and exits the program with the code from ExitCode
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		Report(os.Stderr, err)
		os.Exit(ExitCode(err))
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(ExitFailure)
}
