package weeks

import (
	"testing"
	"time"

	"github.com/aleksanderbl29/meal-planner/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestCurrentWeekYear(t *testing.T) {
	tests := []struct {
		name     string
		now      time.Time
		wantWeek int
		wantYear int
	}{
		{name: "mid year", now: date(2025, time.March, 5), wantWeek: 10, wantYear: 2025},
		{name: "late december belongs to next year", now: date(2024, time.December, 30), wantWeek: 1, wantYear: 2025},
		{name: "early january belongs to previous year", now: date(2027, time.January, 1), wantWeek: 52, wantYear: 2026},
		{name: "week 53 folds into 52", now: date(2020, time.December, 31), wantWeek: 52, wantYear: 2020},
		{name: "plain first week", now: date(2025, time.January, 2), wantWeek: 1, wantYear: 2025},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			week, year := CurrentWeekYear(tt.now)
			if week != tt.wantWeek || year != tt.wantYear {
				t.Errorf("CurrentWeekYear(%s) = %d/%d, want %d/%d", tt.now.Format("2006-01-02"), week, year, tt.wantWeek, tt.wantYear)
			}
		})
	}
}

func TestWeeksFromNow(t *testing.T) {
	now := date(2025, time.March, 5)

	tests := []struct {
		n    int
		want WeekYear
	}{
		{n: 0, want: WeekYear{Week: 10, Year: 2025}},
		{n: 1, want: WeekYear{Week: 11, Year: 2025}},
		{n: 3, want: WeekYear{Week: 13, Year: 2025}},
		{n: -10, want: WeekYear{Week: 52, Year: 2024}},
	}

	for _, tt := range tests {
		if got := WeeksFromNow(now, tt.n); got != tt.want {
			t.Errorf("WeeksFromNow(%d) = %v, want %v", tt.n, got, tt.want)
		}
	}
}

func TestKeyOrdering(t *testing.T) {
	tests := []struct {
		name   string
		before WeekYear
		after  WeekYear
	}{
		{name: "same year", before: WeekYear{3, 2025}, after: WeekYear{4, 2025}},
		{name: "year boundary", before: WeekYear{52, 2024}, after: WeekYear{1, 2025}},
		{name: "year outranks week", before: WeekYear{50, 2024}, after: WeekYear{2, 2025}},
		{name: "single digit vs double digit week", before: WeekYear{9, 2025}, after: WeekYear{10, 2025}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.before.Key() >= tt.after.Key() {
				t.Errorf("Key(%v) = %d, want less than Key(%v) = %d", tt.before, tt.before.Key(), tt.after, tt.after.Key())
			}
		})
	}
}

func TestDateRange(t *testing.T) {
	tests := []struct {
		name      string
		week      int
		year      int
		wantStart string
		wantEnd   string
	}{
		{name: "week 10 2025", week: 10, year: 2025, wantStart: "2025-03-03", wantEnd: "2025-03-09"},
		{name: "week 1 starts in previous year", week: 1, year: 2025, wantStart: "2024-12-30", wantEnd: "2025-01-05"},
		{name: "jan 1 on a sunday", week: 1, year: 2023, wantStart: "2022-12-26", wantEnd: "2023-01-01"},
		{name: "last week", week: 52, year: 2025, wantStart: "2025-12-22", wantEnd: "2025-12-28"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := DateRange(tt.week, tt.year)
			if got := start.Format("2006-01-02"); got != tt.wantStart {
				t.Errorf("start = %s, want %s", got, tt.wantStart)
			}
			if got := end.Format("2006-01-02"); got != tt.wantEnd {
				t.Errorf("end = %s, want %s", got, tt.wantEnd)
			}
		})
	}
}

func TestDateRangeSpansSevenDays(t *testing.T) {
	for _, year := range []int{2023, 2024, 2025, 2026} {
		for week := 1; week <= 52; week++ {
			start, end := DateRange(week, year)
			if start.Weekday() != time.Monday {
				t.Errorf("DateRange(%d, %d) start is %s, want Monday", week, year, start.Weekday())
			}
			if got := end.Sub(start); got != 6*24*time.Hour {
				t.Errorf("DateRange(%d, %d) spans %v, want 144h", week, year, got)
			}
		}
	}
}

func TestFormatRange(t *testing.T) {
	start, end := FormatRange(DateRange(10, 2025))
	if start != "Mar 3" || end != "Mar 9, 2025" {
		t.Errorf("FormatRange() = %q, %q, want %q, %q", start, end, "Mar 3", "Mar 9, 2025")
	}
	if got := StartDate(10, 2025); got != "2025-03-03" {
		t.Errorf("StartDate() = %q, want %q", got, "2025-03-03")
	}
}

func TestRolling(t *testing.T) {
	tests := []struct {
		name  string
		week  int
		year  int
		want  []WeekYear
		count [2]int
	}{
		{
			name:  "wraps into previous year",
			week:  1,
			year:  2025,
			count: [2]int{2, 4},
			want:  []WeekYear{{51, 2024}, {52, 2024}, {1, 2025}, {2, 2025}, {3, 2025}, {4, 2025}, {5, 2025}},
		},
		{
			name:  "wraps into next year",
			week:  50,
			year:  2025,
			count: [2]int{2, 4},
			want:  []WeekYear{{48, 2025}, {49, 2025}, {50, 2025}, {51, 2025}, {52, 2025}, {1, 2026}, {2, 2026}},
		},
		{
			name:  "only current",
			week:  20,
			year:  2025,
			count: [2]int{0, 0},
			want:  []WeekYear{{20, 2025}},
		},
		{
			name:  "negative counts act as zero",
			week:  20,
			year:  2025,
			count: [2]int{-3, 1},
			want:  []WeekYear{{20, 2025}, {21, 2025}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rolling(tt.week, tt.year, tt.count[0], tt.count[1])
			if len(got) != len(tt.want) {
				t.Fatalf("Rolling() returned %d weeks, want %d: %v", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Rolling()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestRollingProperties(t *testing.T) {
	counts := [][2]int{{0, 0}, {2, 4}, {10, 10}, {51, 0}, {0, 51}, {60, 60}}

	for week := 1; week <= 52; week++ {
		for _, c := range counts {
			got := Rolling(week, 2025, c[0], c[1])
			if len(got) != c[0]+c[1]+1 {
				t.Fatalf("Rolling(%d, 2025, %d, %d) returned %d weeks, want %d", week, c[0], c[1], len(got), c[0]+c[1]+1)
			}

			seen := make(map[WeekYear]bool)
			for i, wy := range got {
				if wy.Week < 1 || wy.Week > 52 {
					t.Errorf("Rolling(%d, 2025, %d, %d)[%d] = %v, week out of range", week, c[0], c[1], i, wy)
				}
				if seen[wy] {
					t.Errorf("Rolling(%d, 2025, %d, %d) repeats %v", week, c[0], c[1], wy)
				}
				seen[wy] = true
				if i > 0 && got[i-1].Key() >= wy.Key() {
					t.Errorf("Rolling(%d, 2025, %d, %d) not ordered at %d: %v then %v", week, c[0], c[1], i, got[i-1], wy)
				}
			}
		}
	}
}

func TestClassify(t *testing.T) {
	meal := models.Meal{Name: "Tacos", Week: 10, Year: 2025}
	if !Classify(meal, 10, 2025) {
		t.Error("Classify() = false, want true for same week and year")
	}
	if Classify(meal, 10, 2024) {
		t.Error("Classify() = true, want false for different year")
	}
	if Classify(meal, 11, 2025) {
		t.Error("Classify() = true, want false for different week")
	}
}

func TestReclassifyIgnoresStoredFlag(t *testing.T) {
	meals := []models.Meal{
		{ID: "1", Name: "Stale", Week: 2, Year: 2025, IsThisWeek: true},
		{ID: "2", Name: "Current", Week: 10, Year: 2025, IsThisWeek: false},
	}

	got := Reclassify(meals, 10, 2025)
	if got[0].IsThisWeek {
		t.Error("stale IsThisWeek flag was trusted")
	}
	if !got[1].IsThisWeek {
		t.Error("current meal was not flagged as this week")
	}
	if !meals[0].IsThisWeek {
		t.Error("Reclassify() modified its input")
	}
}

func TestUpcoming(t *testing.T) {
	meals := []models.Meal{
		{ID: "next-year", Name: "Roast", Week: 2, Year: 2026},
		{ID: "tacos", Name: "Tacos", Week: 10, Year: 2025},
		{ID: "soup", Name: "Soup", Week: 5, Year: 2025},
		{ID: "eaten", Name: "Curry", Week: 12, Year: 2025, Eaten: true},
		{ID: "later", Name: "Pasta", Week: 11, Year: 2025},
	}

	t.Run("all upcoming", func(t *testing.T) {
		got := Upcoming(meals, 10, 2025, false)
		wantIDs := []string{"tacos", "later", "next-year"}
		if len(got) != len(wantIDs) {
			t.Fatalf("Upcoming() returned %d meals, want %d: %v", len(got), len(wantIDs), got)
		}
		for i, id := range wantIDs {
			if got[i].ID != id {
				t.Errorf("Upcoming()[%d].ID = %s, want %s", i, got[i].ID, id)
			}
		}
		if !got[0].IsThisWeek {
			t.Error("Tacos should be flagged as this week")
		}
	})

	t.Run("this week only", func(t *testing.T) {
		got := Upcoming(meals, 10, 2025, true)
		if len(got) != 1 || got[0].ID != "tacos" {
			t.Errorf("Upcoming(thisWeekOnly) = %v, want only tacos", got)
		}
	})

	t.Run("eaten meals excluded regardless of week", func(t *testing.T) {
		for _, m := range Upcoming(meals, 10, 2025, false) {
			if m.Eaten {
				t.Errorf("eaten meal %s in upcoming", m.ID)
			}
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if got := Upcoming(nil, 10, 2025, false); len(got) != 0 {
			t.Errorf("Upcoming(nil) = %v, want empty", got)
		}
	})
}

func TestHistoric(t *testing.T) {
	meals := []models.Meal{
		{ID: "soup", Name: "Soup", Week: 5, Year: 2025},
		{ID: "old", Name: "Stew", Week: 50, Year: 2024},
		{ID: "tacos", Name: "Tacos", Week: 10, Year: 2025},
		{ID: "eaten", Name: "Curry", Week: 10, Year: 2025, Eaten: true},
	}

	t.Run("all policy", func(t *testing.T) {
		got := Historic(meals, 10, 2025, HistoricAll)
		wantIDs := []string{"tacos", "eaten", "soup", "old"}
		if len(got) != len(wantIDs) {
			t.Fatalf("Historic(all) returned %d meals, want %d", len(got), len(wantIDs))
		}
		for i, id := range wantIDs {
			if got[i].ID != id {
				t.Errorf("Historic(all)[%d].ID = %s, want %s", i, got[i].ID, id)
			}
		}
	})

	t.Run("past only policy", func(t *testing.T) {
		got := Historic(meals, 10, 2025, HistoricPastOnly)
		wantIDs := []string{"soup", "old"}
		if len(got) != len(wantIDs) {
			t.Fatalf("Historic(past) returned %d meals, want %d", len(got), len(wantIDs))
		}
		for i, id := range wantIDs {
			if got[i].ID != id {
				t.Errorf("Historic(past)[%d].ID = %s, want %s", i, got[i].ID, id)
			}
		}
	})

	t.Run("soup is historic not upcoming", func(t *testing.T) {
		for _, m := range Upcoming(meals, 10, 2025, false) {
			if m.ID == "soup" {
				t.Error("soup should not be upcoming")
			}
		}
		found := false
		for _, m := range Historic(meals, 10, 2025, HistoricPastOnly) {
			if m.ID == "soup" {
				found = true
			}
		}
		if !found {
			t.Error("soup should be historic")
		}
	})
}

func TestForWeek(t *testing.T) {
	meals := []models.Meal{
		{ID: "a", Week: 10, Year: 2025},
		{ID: "b", Week: 10, Year: 2024},
		{ID: "c", Week: 10, Year: 2025},
	}

	got := ForWeek(meals, 10, 2025)
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Errorf("ForWeek() = %v, want a and c", got)
	}
}

func TestOptions(t *testing.T) {
	weeks := WeekOptions()
	if len(weeks) != 52 || weeks[0] != 1 || weeks[51] != 52 {
		t.Errorf("WeekOptions() = %v, want 1..52", weeks)
	}

	years := YearOptions(2025)
	want := []int{2024, 2025, 2026, 2027}
	if len(years) != len(want) {
		t.Fatalf("YearOptions() = %v, want %v", years, want)
	}
	for i := range want {
		if years[i] != want[i] {
			t.Errorf("YearOptions()[%d] = %d, want %d", i, years[i], want[i])
		}
	}
}

func TestParseHistoricPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    HistoricPolicy
		wantErr bool
	}{
		{in: "", want: HistoricAll},
		{in: "all", want: HistoricAll},
		{in: "past", want: HistoricPastOnly},
		{in: "strict", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseHistoricPolicy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseHistoricPolicy(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseHistoricPolicy(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
