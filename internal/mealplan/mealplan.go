// Package mealplan implements the meal-plan document engine: layout
// detection, week/day extraction over byte ranges, the calendar grid
// projection, and offset-preserving document mutation. Every function is a
// pure transformation over an immutable text value; structural records
// (headings, links) are injected through outline.Source rather than
// re-parsed here.
package mealplan

import "time"

// Format is the textual layout of a plan note.
type Format int

const (
	// FormatList encodes weeks as "# Week of ..." headings with "## <Day>"
	// sub-headings and "- [[...]]" items.
	FormatList Format = iota
	// FormatTable encodes weeks as one table row per week, one column per day.
	FormatTable
)

func (f Format) String() string {
	if f == FormatTable {
		return "table"
	}
	return "list"
}

// Week is a dated section of the plan note. Start and End bound the week's
// content: for the list layout Start is the end offset of the week heading
// and End the start of the next week heading (or document end); for the
// table layout they bound the week's row line.
type Week struct {
	Label     string    `json:"label"` // e.g. "January 8th"
	StartDate time.Time `json:"start_date"`
	Start     int       `json:"start"`
	End       int       `json:"end"`
	Selected  bool      `json:"selected"`
}

// Item is one scheduled entry on a day: a recipe link or literal text.
type Item struct {
	Name     string `json:"name"`
	IsRecipe bool   `json:"is_recipe"`
}

// GridDay is a single cell of the calendar grid.
type GridDay struct {
	Date           time.Time    `json:"date"`
	Name           time.Weekday `json:"name"`
	Items          []Item       `json:"items"`
	IsCurrentMonth bool         `json:"is_current_month"`
}

// GridWeek is one 7-day row of the calendar grid.
type GridWeek struct {
	Days []GridDay `json:"days"`
}

// Calendar is the grid projection for a display month. It is derived on
// every read and never persisted.
type Calendar struct {
	Weeks []GridWeek `json:"weeks"`
	Month time.Time  `json:"month"`
}
