package mealplan

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// WeekHeadingPrefix is the literal prefix of a week heading in the list
// layout ("# Week of January 8th").
const WeekHeadingPrefix = "Week of "

// WeekStartColumn is the literal first header cell of the table layout.
const WeekStartColumn = "Week Start"

// dateKeyLayout is the map key format for daily-item lookups.
const dateKeyLayout = "2006-01-02"

// Ordinal returns the English ordinal form of a day number: 1st, 2nd,
// 3rd, 4th, ... 11th, 12th, 13th, 21st, 22nd.
func Ordinal(day int) string {
	suffix := "th"
	if day%100 < 11 || day%100 > 13 {
		switch day % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(day) + suffix
}

// WeekLabel formats a date as the year-less label used in week headings
// and table rows, e.g. "January 8th".
func WeekLabel(d time.Time) string {
	return fmt.Sprintf("%s %s", d.Month().String(), Ordinal(d.Day()))
}

// StartOfWeek rolls t back to the most recent occurrence of the
// configured week-start weekday, truncated to midnight.
func StartOfWeek(t time.Time, weekStart time.Weekday) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	diff := (int(day.Weekday()) - int(weekStart) + 7) % 7
	return day.AddDate(0, 0, -diff)
}

// CurrentWeekLabel returns the label of the week containing now, rolled
// to the configured week-start weekday.
func CurrentWeekLabel(now time.Time, weekStart time.Weekday) string {
	return WeekLabel(StartOfWeek(now, weekStart))
}

// ParseLabel parses a "<Month> <Day-ordinal>" label assuming now's year.
// If the parsed date falls before now AND now is in December while the
// label names January, the label is re-parsed against the next year.
// This handles a plan spanning a calendar year boundary; it is a
// deliberate heuristic, not a full calendar algorithm, and it never
// year-rolls for labels parsed in November through October.
//
// A label that does not parse yields (now, false): the caller treats the
// week as "current" rather than propagating an error.
func ParseLabel(label string, now time.Time) (time.Time, bool) {
	month, day, ok := splitLabel(label)
	if !ok {
		return now, false
	}
	parsed := time.Date(now.Year(), month, day, 0, 0, 0, 0, now.Location())
	if parsed.Before(now) && now.Month() == time.December && month == time.January {
		parsed = time.Date(now.Year()+1, month, day, 0, 0, 0, 0, now.Location())
	}
	return parsed, true
}

func splitLabel(label string) (time.Month, int, bool) {
	fields := strings.Fields(strings.TrimSpace(label))
	if len(fields) != 2 {
		return 0, 0, false
	}
	month, ok := monthByName(fields[0])
	if !ok {
		return 0, 0, false
	}
	day, err := strconv.Atoi(strings.TrimRight(fields[1], "stndrh"))
	if err != nil || day < 1 || day > 31 {
		return 0, 0, false
	}
	return month, day, true
}

func monthByName(name string) (time.Month, bool) {
	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(m.String(), name) {
			return m, true
		}
	}
	return 0, false
}

// DayNameIndex resolves an English weekday name (case-insensitive) to its
// time.Weekday value.
func DayNameIndex(name string) (time.Weekday, bool) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), name) {
			return d, true
		}
	}
	return 0, false
}

// DayNames returns the seven weekday names starting at weekStart.
func DayNames(weekStart time.Weekday) []string {
	out := make([]string, 7)
	for i := 0; i < 7; i++ {
		out[i] = time.Weekday((int(weekStart) + i) % 7).String()
	}
	return out
}

// DateKey formats a date as the canonical daily-item map key.
func DateKey(t time.Time) string {
	return t.Format(dateKeyLayout)
}

// dayDate maps a weekday name within a week to its literal calendar date:
// the week's start date plus (day - weekStart) mod 7 days.
func dayDate(weekStartDate time.Time, day, weekStart time.Weekday) time.Time {
	offset := (int(day) - int(weekStart) + 7) % 7
	return weekStartDate.AddDate(0, 0, offset)
}
