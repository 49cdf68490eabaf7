package system

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/aleksanderbl29/meal-planner/internal/cli"
	"github.com/aleksanderbl29/meal-planner/internal/planner"
	"github.com/aleksanderbl29/meal-planner/internal/storage"
	"github.com/aleksanderbl29/meal-planner/internal/storage/sqlite"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// 2025-03-05 is in week 10 of 2025.
var fixedNow = time.Date(2025, time.March, 5, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

var errUnavailable = errors.New("remote unavailable")

// unavailableBackend is a remote store that cannot be reached.
type unavailableBackend struct {
	*storage.MemoryBackend
}

func (unavailableBackend) Get(context.Context, string) (string, bool, error) {
	return "", false, errUnavailable
}

func (unavailableBackend) Set(context.Context, string, string) error {
	return errUnavailable
}

func (unavailableBackend) Name() string { return "unavailable" }

func newContext(store *storage.Tiered) (*cli.Context, *bytes.Buffer) {
	meals := storage.NewMealStore(store)
	meals.Now = clock
	out := &bytes.Buffer{}
	return &cli.Context{
		Store:   store,
		Meals:   meals,
		Planner: planner.New(meals, planner.Options{Now: clock}),
		Out:     out,
	}, out
}

func setupSQLiteContext(t *testing.T, primary storage.Backend) (*cli.Context, *bytes.Buffer, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "meals.db")
	store := storage.NewTiered(primary, sqlite.NewStore(dbPath))
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})
	ctx, out := newContext(store)
	return ctx, out, dbPath
}
