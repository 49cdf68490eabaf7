package meals

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/aleksanderbl29/meal-planner/internal/cli"
	"github.com/aleksanderbl29/meal-planner/internal/models"
	"github.com/aleksanderbl29/meal-planner/internal/planner"
	"github.com/aleksanderbl29/meal-planner/internal/storage"
)

// 2025-03-05 is in week 10 of 2025.
var fixedNow = time.Date(2025, time.March, 5, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func setupTestContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := storage.NewTiered(nil, storage.NewMemoryBackend())
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

func addMeal(t *testing.T, ctx *cli.Context, name string, week, year int) models.Meal {
	t.Helper()
	meal, err := ctx.Planner.Create(ctx.Request(), name, week, year)
	if err != nil {
		t.Fatalf("Create(%q) error = %v", name, err)
	}
	return meal
}

func TestMealAddCmd(t *testing.T) {
	tests := []struct {
		name     string
		cmd      MealAddCmd
		wantWeek int
		wantYear int
		wantErr  error
	}{
		{
			name:     "defaults to current week",
			cmd:      MealAddCmd{Name: []string{"Chili", "con", "carne"}},
			wantWeek: 10,
			wantYear: 2025,
		},
		{
			name:     "next week",
			cmd:      MealAddCmd{Name: []string{"Soup"}, When: "next-week"},
			wantWeek: 11,
			wantYear: 2025,
		},
		{
			name:     "offset",
			cmd:      MealAddCmd{Name: []string{"Soup"}, When: "+3"},
			wantWeek: 13,
			wantYear: 2025,
		},
		{
			name:     "date",
			cmd:      MealAddCmd{Name: []string{"Soup"}, When: "2025-12-24"},
			wantWeek: 52,
			wantYear: 2025,
		},
		{
			name:     "explicit week overrides when",
			cmd:      MealAddCmd{Name: []string{"Soup"}, When: "next-week", Week: 20},
			wantWeek: 20,
			wantYear: 2025,
		},
		{
			name:     "explicit year",
			cmd:      MealAddCmd{Name: []string{"Soup"}, Week: 1, Year: 2026},
			wantWeek: 1,
			wantYear: 2026,
		},
		{
			name:    "blank name",
			cmd:     MealAddCmd{Name: []string{"  "}},
			wantErr: models.ErrInvalidMeal,
		},
		{
			name:    "week out of range",
			cmd:     MealAddCmd{Name: []string{"Soup"}, Week: 53},
			wantErr: models.ErrInvalidMeal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, out := setupTestContext(t)
			err := tt.cmd.Run(ctx)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Run() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}

			meals := ctx.Meals.List(ctx.Request())
			if len(meals) != 1 {
				t.Fatalf("stored %d meals, want 1", len(meals))
			}
			got := meals[0]
			if got.Week != tt.wantWeek || got.Year != tt.wantYear {
				t.Errorf("meal planned for %d/%d, want %d/%d", got.Week, got.Year, tt.wantWeek, tt.wantYear)
			}
			if !strings.Contains(out.String(), "Added meal: "+got.Name) {
				t.Errorf("output = %q", out.String())
			}
		})
	}
}

func TestMealAddCmdInvalidWhen(t *testing.T) {
	ctx, _ := setupTestContext(t)
	cmd := MealAddCmd{Name: []string{"Soup"}, When: "someday"}
	if err := cmd.Run(ctx); err == nil {
		t.Fatal("expected error for unknown week reference")
	}
	if n := len(ctx.Meals.List(ctx.Request())); n != 0 {
		t.Errorf("stored %d meals, want 0", n)
	}
}

func TestMealEditCmd(t *testing.T) {
	ctx, out := setupTestContext(t)
	meal := addMeal(t, ctx, "Soup", 12, 2025)

	name := "Tomato soup"
	week := 14
	eaten := true
	cmd := MealEditCmd{ID: cli.ShortID(meal.ID), Name: &name, Week: &week, Eaten: &eaten}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got, err := ctx.Planner.Get(ctx.Request(), meal.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Name != name || got.Week != 14 || got.Year != 2025 || !got.Eaten {
		t.Errorf("meal after edit = %+v", got)
	}
	if !strings.Contains(out.String(), "Updated meal:") {
		t.Errorf("output = %q", out.String())
	}
}

func TestMealEditCmdErrors(t *testing.T) {
	ctx, _ := setupTestContext(t)
	meal := addMeal(t, ctx, "Soup", 12, 2025)

	name := "Other"
	blank := " "

	if err := (&MealEditCmd{ID: meal.ID}).Run(ctx); err == nil {
		t.Error("expected error when no changes are given")
	}
	if err := (&MealEditCmd{ID: "nope", Name: &name}).Run(ctx); !errors.Is(err, planner.ErrNotFound) {
		t.Errorf("unknown id error = %v, want ErrNotFound", err)
	}
	if err := (&MealEditCmd{ID: meal.ID, Name: &blank}).Run(ctx); !errors.Is(err, models.ErrInvalidMeal) {
		t.Errorf("blank name error = %v, want ErrInvalidMeal", err)
	}
}

func TestMealDeleteCmd(t *testing.T) {
	ctx, out := setupTestContext(t)
	meal := addMeal(t, ctx, "Soup", 12, 2025)
	keep := addMeal(t, ctx, "Pasta", 12, 2025)

	if err := (&MealDeleteCmd{ID: meal.ID}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	meals := ctx.Meals.List(ctx.Request())
	if len(meals) != 1 || meals[0].ID != keep.ID {
		t.Errorf("remaining meals = %+v, want only Pasta", meals)
	}
	if !strings.Contains(out.String(), "Deleted meal: Soup") {
		t.Errorf("output = %q", out.String())
	}

	if err := (&MealDeleteCmd{ID: meal.ID}).Run(ctx); !errors.Is(err, planner.ErrNotFound) {
		t.Errorf("second delete error = %v, want ErrNotFound", err)
	}
}

func TestMealEatenAndPromoteCmd(t *testing.T) {
	ctx, out := setupTestContext(t)
	meal := addMeal(t, ctx, "Soup", 3, 2025)

	if err := (&MealEatenCmd{ID: meal.ID}).Run(ctx); err != nil {
		t.Fatalf("eaten Run() error = %v", err)
	}
	got, _ := ctx.Planner.Get(ctx.Request(), meal.ID)
	if got.Week != 10 || got.Year != 2025 || !got.Eaten || !got.IsThisWeek {
		t.Errorf("after eaten = %+v, want eaten in 10/2025", got)
	}

	if err := (&MealPromoteCmd{ID: meal.ID}).Run(ctx); err != nil {
		t.Fatalf("promote Run() error = %v", err)
	}
	got, _ = ctx.Planner.Get(ctx.Request(), meal.ID)
	if got.Eaten {
		t.Errorf("after promote = %+v, want not eaten", got)
	}

	output := out.String()
	if !strings.Contains(output, "Marked Soup as eaten") || !strings.Contains(output, "Moved Soup to this week") {
		t.Errorf("output = %q", output)
	}
}

func TestMealListCmd(t *testing.T) {
	ctx, out := setupTestContext(t)
	addMeal(t, ctx, "Tacos", 10, 2025)
	addMeal(t, ctx, "Pasta", 12, 2025)
	addMeal(t, ctx, "Soup", 4, 2025)

	tests := []struct {
		name    string
		cmd     MealListCmd
		want    []string
		notWant []string
	}{
		{
			name:    "upcoming",
			cmd:     MealListCmd{View: "upcoming"},
			want:    []string{"Upcoming meals", "Tacos", "Pasta"},
			notWant: []string{"Soup"},
		},
		{
			name:    "this week",
			cmd:     MealListCmd{View: "upcoming", ThisWeek: true},
			want:    []string{"Tacos (week 10, 2025) *this week*"},
			notWant: []string{"Pasta", "Soup"},
		},
		{
			name: "historic",
			cmd:  MealListCmd{View: "historic"},
			want: []string{"Meal history (all)", "Soup", "Tacos", "Pasta"},
		},
		{
			name: "all",
			cmd:  MealListCmd{View: "all"},
			want: []string{"All meals:", "Soup"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out.Reset()
			if err := tt.cmd.Run(ctx); err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			output := out.String()
			for _, w := range tt.want {
				if !strings.Contains(output, w) {
					t.Errorf("output missing %q:\n%s", w, output)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(output, w) {
					t.Errorf("output should not contain %q:\n%s", w, output)
				}
			}
		})
	}
}

func TestMealListCmdEmptyAndInvalid(t *testing.T) {
	ctx, out := setupTestContext(t)
	if err := (&MealListCmd{View: "upcoming"}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "No meals found.") {
		t.Errorf("output = %q", out.String())
	}
	if err := (&MealListCmd{View: "later"}).Run(ctx); err == nil {
		t.Error("expected error for invalid view")
	}
}

func TestMealListCmdJSON(t *testing.T) {
	ctx, out := setupTestContext(t)
	meal := addMeal(t, ctx, "Tacos", 10, 2025)

	if err := (&MealListCmd{View: "all", JSON: true}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out.String(), `"id": "`+meal.ID+`"`) || !strings.Contains(out.String(), `"isThisWeek": true`) {
		t.Errorf("output = %s", out.String())
	}
}

func TestCalendarCmd(t *testing.T) {
	ctx, out := setupTestContext(t)
	addMeal(t, ctx, "Tacos", 10, 2025)

	if err := (&CalendarCmd{Before: 1, After: 1}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	output := out.String()
	for _, w := range []string{
		"Week 9, 2025",
		"Week 10, 2025: Mar 3 - Mar 9, 2025 (current)",
		"  - Tacos",
		"Week 11, 2025",
		"(no meals planned)",
	} {
		if !strings.Contains(output, w) {
			t.Errorf("output missing %q:\n%s", w, output)
		}
	}

	if err := (&CalendarCmd{Before: -1}).Run(ctx); err == nil {
		t.Error("expected error for negative window")
	}
}

func TestWeekCmd(t *testing.T) {
	ctx, out := setupTestContext(t)
	addMeal(t, ctx, "Roast", 52, 2025)

	if err := (&WeekCmd{Year: 2025, Week: 52}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "Week 52, 2025: Dec 22 - Dec 28, 2025") || !strings.Contains(out.String(), "Roast") {
		t.Errorf("output = %q", out.String())
	}

	out.Reset()
	if err := (&WeekCmd{}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "Week 10, 2025") {
		t.Errorf("default week output = %q", out.String())
	}

	if err := (&WeekCmd{Year: 2025, Week: 53}).Run(ctx); err == nil {
		t.Error("expected error for week 53")
	}
}

func TestAuthRequiredCommands(t *testing.T) {
	ctx, _ := setupTestContext(t)
	ctx.Planner = planner.New(ctx.Meals, planner.Options{RequireAuth: true, Now: clock})

	err := (&MealAddCmd{Name: []string{"Soup"}}).Run(ctx)
	if !errors.Is(err, planner.ErrAuthRequired) {
		t.Fatalf("anonymous add error = %v, want ErrAuthRequired", err)
	}

	ctx.UserID = "alice"
	if err := (&MealAddCmd{Name: []string{"Soup"}}).Run(ctx); err != nil {
		t.Fatalf("authenticated add error = %v", err)
	}
}
