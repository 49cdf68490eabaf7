package planner

import (
	"context"
	"testing"
)

func TestCalendar(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, Options{})

	tacos := mustCreate(t, s, ctx, "Tacos", 10, 2025)
	mustCreate(t, s, ctx, "Soup", 5, 2025)
	pasta := mustCreate(t, s, ctx, "Pasta", 12, 2025)

	cal, err := s.Calendar(ctx, 2, 4)
	if err != nil {
		t.Fatalf("Calendar() error = %v", err)
	}
	if len(cal) != 7 {
		t.Fatalf("Calendar() returned %d weeks, want 7", len(cal))
	}
	if cal[0].Week != 8 || cal[6].Week != 14 {
		t.Errorf("Calendar() spans %d..%d, want 8..14", cal[0].Week, cal[6].Week)
	}

	current := cal[2]
	if !current.Current || current.Week != 10 {
		t.Errorf("cal[2] = %+v, want the current week", current)
	}
	if len(current.Meals) != 1 || current.Meals[0].ID != tacos.ID {
		t.Errorf("week 10 meals = %+v, want Tacos", current.Meals)
	}
	if current.Start != "Mar 3" || current.End != "Mar 9, 2025" {
		t.Errorf("week 10 range = %q - %q", current.Start, current.End)
	}
	if len(cal[4].Meals) != 1 || cal[4].Meals[0].ID != pasta.ID {
		t.Errorf("week 12 meals = %+v, want Pasta", cal[4].Meals)
	}
	if cal[1].Meals == nil {
		t.Error("empty weeks should carry an empty, non-nil meal list")
	}
}

func TestWeekRange(t *testing.T) {
	s := newTestService(t, Options{})
	w, err := s.WeekRange(context.Background(), 52, 2025)
	if err != nil {
		t.Fatalf("WeekRange() error = %v", err)
	}
	if w.Start != "Dec 22" || w.End != "Dec 28, 2025" || w.Current {
		t.Errorf("WeekRange(52, 2025) = %+v", w)
	}
}

func TestList(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, Options{})
	mustCreate(t, s, ctx, "Tacos", 10, 2025)
	mustCreate(t, s, ctx, "Soup", 5, 2025)

	tests := []struct {
		view View
		want int
	}{
		{ViewUpcoming, 1},
		{ViewHistoric, 2},
		{ViewAll, 2},
	}
	for _, tt := range tests {
		t.Run(string(tt.view), func(t *testing.T) {
			if !tt.view.Valid() {
				t.Fatalf("%q should be valid", tt.view)
			}
			got, err := s.List(ctx, tt.view, false)
			if err != nil || len(got) != tt.want {
				t.Errorf("List(%q) = %d meals, %v; want %d", tt.view, len(got), err, tt.want)
			}
		})
	}
	if View("bogus").Valid() {
		t.Error("bogus view reported valid")
	}
}
