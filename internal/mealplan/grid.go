package mealplan

import "time"

// DefaultWeeksToShow is the number of week rows in the calendar grid.
const DefaultWeeksToShow = 6

// BuildCalendar projects the daily-item mapping onto a fixed-size grid
// for a display month. The grid starts at the configured week-start
// weekday on or before the first of the month, then emits weeksToShow
// consecutive 7-day rows; grid dates are strictly consecutive across the
// whole grid. IsCurrentMonth flags days belonging to the display month.
func BuildCalendar(month time.Time, weekStart time.Weekday, items map[string][]Item, weeksToShow int) Calendar {
	if weeksToShow <= 0 {
		weeksToShow = DefaultWeeksToShow
	}
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	day := StartOfWeek(first, weekStart)
	if day.After(first) {
		day = day.AddDate(0, 0, -7)
	}

	cal := Calendar{Month: first, Weeks: make([]GridWeek, 0, weeksToShow)}
	for w := 0; w < weeksToShow; w++ {
		week := GridWeek{Days: make([]GridDay, 0, 7)}
		for d := 0; d < 7; d++ {
			week.Days = append(week.Days, GridDay{
				Date:           day,
				Name:           day.Weekday(),
				Items:          items[DateKey(day)],
				IsCurrentMonth: day.Month() == first.Month() && day.Year() == first.Year(),
			})
			day = day.AddDate(0, 0, 1)
		}
		cal.Weeks = append(cal.Weeks, week)
	}
	return cal
}
