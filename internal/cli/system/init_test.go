package system

import (
	"os"
	"strings"
	"testing"

	"github.com/aleksanderbl29/meal-planner/internal/storage"
)

func TestInitCmd_Success(t *testing.T) {
	ctx, out, dbPath := setupSQLiteContext(t, nil)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init command failed: %v", err)
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("database file was not created at %s", dbPath)
	}
	output := out.String()
	if !strings.Contains(output, "Initialized meal storage at: "+dbPath) || !strings.Contains(output, "not configured") {
		t.Errorf("output = %q", output)
	}
}

func TestInitCmd_Idempotent(t *testing.T) {
	ctx, _, _ := setupSQLiteContext(t, nil)
	cmd := &InitCmd{}

	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("first init failed: %v", err)
	}
	if _, err := ctx.Planner.Create(ctx.Request(), "Soup", 10, 2025); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("second init failed: %v", err)
	}

	if n := len(ctx.Meals.List(ctx.Request())); n != 1 {
		t.Errorf("meals after re-init = %d, want 1", n)
	}
}

func TestInitCmd_Force(t *testing.T) {
	ctx, out, dbPath := setupSQLiteContext(t, nil)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("first init failed: %v", err)
	}
	if _, err := ctx.Planner.Create(ctx.Request(), "Soup", 10, 2025); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("force init failed: %v", err)
	}
	if !strings.Contains(out.String(), "Deleted existing local store at: "+dbPath) {
		t.Errorf("output = %q", out.String())
	}
	if n := len(ctx.Meals.List(ctx.Request())); n != 0 {
		t.Errorf("meals after force init = %d, want 0", n)
	}
}

func TestInitCmd_ForceMemory(t *testing.T) {
	ctx, _ := newContext(storage.NewTiered(nil, storage.NewMemoryBackend()))
	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("force init on memory store failed: %v", err)
	}
}

func TestInitCmd_ReportsRemote(t *testing.T) {
	ctx, out, _ := setupSQLiteContext(t, storage.NewMemoryBackend())

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init command failed: %v", err)
	}
	if !strings.Contains(out.String(), "Remote store: memory") {
		t.Errorf("output = %q", out.String())
	}
}
