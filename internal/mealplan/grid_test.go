package mealplan

import (
	"testing"
	"time"
)

func TestBuildCalendar_Dimensions(t *testing.T) {
	for _, n := range []int{1, 4, 6, 8} {
		cal := BuildCalendar(date(2024, time.January, 1), time.Sunday, nil, n)
		if len(cal.Weeks) != n {
			t.Fatalf("weeksToShow=%d: got %d rows", n, len(cal.Weeks))
		}
		for i, w := range cal.Weeks {
			if len(w.Days) != 7 {
				t.Fatalf("week %d has %d days", i, len(w.Days))
			}
		}
	}
}

func TestBuildCalendar_StrictlyConsecutiveDates(t *testing.T) {
	cal := BuildCalendar(date(2024, time.March, 1), time.Monday, nil, DefaultWeeksToShow)
	var prev time.Time
	for _, w := range cal.Weeks {
		for _, d := range w.Days {
			if !prev.IsZero() && !d.Date.Equal(prev.AddDate(0, 0, 1)) {
				t.Fatalf("dates not consecutive: %v after %v", d.Date, prev)
			}
			prev = d.Date
		}
	}
}

func TestBuildCalendar_ColumnZeroMatchesWeekStart(t *testing.T) {
	for ws := time.Sunday; ws <= time.Saturday; ws++ {
		cal := BuildCalendar(date(2024, time.June, 1), ws, nil, 6)
		for i, w := range cal.Weeks {
			if w.Days[0].Name != ws {
				t.Fatalf("weekStart=%v week %d column 0 = %v", ws, i, w.Days[0].Name)
			}
			want := time.Weekday((int(ws) + 6) % 7)
			if w.Days[6].Name != want {
				t.Fatalf("weekStart=%v week %d column 6 = %v, want %v", ws, i, w.Days[6].Name, want)
			}
			if !w.Days[6].Date.Equal(w.Days[0].Date.AddDate(0, 0, 6)) {
				t.Fatalf("column 6 not six days after column 0")
			}
		}
	}
}

func TestBuildCalendar_GridStartNotAfterFirstOfMonth(t *testing.T) {
	// 2024-09-01 is a Sunday; with Sunday week start the grid begins on it.
	cal := BuildCalendar(date(2024, time.September, 1), time.Sunday, nil, 6)
	if !cal.Weeks[0].Days[0].Date.Equal(date(2024, time.September, 1)) {
		t.Errorf("grid start = %v", cal.Weeks[0].Days[0].Date)
	}
	// With a Monday week start the grid rolls back into August.
	cal = BuildCalendar(date(2024, time.September, 1), time.Monday, nil, 6)
	if !cal.Weeks[0].Days[0].Date.Equal(date(2024, time.August, 26)) {
		t.Errorf("grid start = %v", cal.Weeks[0].Days[0].Date)
	}
}

func TestBuildCalendar_CurrentMonthFlagAndItems(t *testing.T) {
	items := map[string][]Item{
		"2024-01-08": {{Name: "Pasta Carbonara", IsRecipe: true}},
	}
	cal := BuildCalendar(date(2024, time.January, 1), time.Monday, items, 6)

	var seen bool
	for _, w := range cal.Weeks {
		for _, d := range w.Days {
			if d.Date.Equal(date(2024, time.January, 8)) {
				seen = true
				if len(d.Items) != 1 || d.Items[0].Name != "Pasta Carbonara" {
					t.Errorf("items = %+v", d.Items)
				}
				if !d.IsCurrentMonth {
					t.Error("January day not flagged current month")
				}
			}
			if d.Date.Month() != time.January && d.IsCurrentMonth {
				t.Errorf("%v wrongly flagged current month", d.Date)
			}
		}
	}
	if !seen {
		t.Fatal("grid never reached January 8th")
	}
}
