package mealplan

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mbracken/skillet/internal/apperr"
	"github.com/mbracken/skillet/internal/outline"
)

const listPlan = `# Week of January 1st
## Monday
- [[Leftovers]]
## Tuesday

# Week of January 8th
## Monday
- [[Pasta Carbonara]]
## Tuesday
- [[Chicken Tikka Masala]]
- family dinner out
## Wednesday

# Week of January 15th
## Monday
- [[Minestrone]]
`

const tablePlan = `| Week Start | Monday | Tuesday | Wednesday | Thursday | Friday | Saturday | Sunday |
|---|---|---|---|---|---|---|---|
| January 1st | [[Leftovers]] |  |  |  |  |  |  |
| January 8th | [[Pasta Carbonara]] | [[Chicken Tikka Masala]]<br>family dinner out |  |  |  |  |  |
| January 15th | [[Minestrone]] |  |  |  |  |  |  |
`

// now fixed inside the January 8th week (Monday start).
var testNow = time.Date(2024, time.January, 10, 9, 30, 0, 0, time.UTC)

func TestExtractWeeks_ListFiltersPastWeeks(t *testing.T) {
	weeks, err := ExtractWeeks(listPlan, outline.Scanner{}, time.Monday, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(weeks) != 2 {
		t.Fatalf("len(weeks) = %d, want 2", len(weeks))
	}
	if weeks[0].Label != "January 8th" || weeks[1].Label != "January 15th" {
		t.Errorf("labels = %q, %q", weeks[0].Label, weeks[1].Label)
	}
	if !weeks[0].Selected {
		t.Error("current week should be selected")
	}
	if weeks[1].Selected {
		t.Error("future week should not be selected")
	}
}

func TestExtractWeeks_ListByteRanges(t *testing.T) {
	weeks, err := ExtractWeeks(listPlan, outline.Scanner{}, time.Monday, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, w := range weeks {
		if w.Start >= w.End {
			t.Errorf("week %d range [%d,%d) inverted", i, w.Start, w.End)
		}
	}
	// Ranges never overlap and are ordered.
	if weeks[0].End > weeks[1].Start {
		t.Errorf("ranges overlap: [%d,%d) then [%d,%d)", weeks[0].Start, weeks[0].End, weeks[1].Start, weeks[1].End)
	}
	// The January 8th section contains its own items and not the next week's.
	section := listPlan[weeks[0].Start:weeks[0].End]
	if !strings.Contains(section, "[[Pasta Carbonara]]") {
		t.Errorf("section missing item: %q", section)
	}
	if strings.Contains(section, "[[Minestrone]]") {
		t.Errorf("section bleeds into next week: %q", section)
	}
}

func TestExtractWeeks_TableFiltersAndRanges(t *testing.T) {
	weeks, err := ExtractWeeks(tablePlan, outline.Scanner{}, time.Monday, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(weeks) != 2 {
		t.Fatalf("len(weeks) = %d, want 2", len(weeks))
	}
	if weeks[0].Label != "January 8th" || weeks[1].Label != "January 15th" {
		t.Errorf("labels = %q, %q", weeks[0].Label, weeks[1].Label)
	}
	row := tablePlan[weeks[0].Start:weeks[0].End]
	if !strings.HasPrefix(row, "| January 8th |") {
		t.Errorf("row slice = %q", row)
	}
	if strings.Contains(row, "\n") {
		t.Errorf("table week range spans lines: %q", row)
	}
}

func TestExtractWeeks_TableMalformedHeader(t *testing.T) {
	doc := "| Start | Monday |\n|---|---|\n| January 8th | x |\n"
	_, err := ExtractWeeks(doc, outline.Scanner{}, time.Monday, testNow)
	if !errors.Is(err, apperr.ErrMalformedTableHeader) {
		t.Fatalf("err = %v, want ErrMalformedTableHeader", err)
	}
}

func TestExtractWeeks_SortedAscending(t *testing.T) {
	doc := "# Week of January 15th\n## Monday\n\n# Week of January 8th\n## Monday\n"
	weeks, err := ExtractWeeks(doc, outline.Scanner{}, time.Monday, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(weeks) != 2 || weeks[0].Label != "January 8th" {
		t.Fatalf("weeks not sorted: %+v", weeks)
	}
}

func TestDaysOfWeek_Bounds(t *testing.T) {
	weeks, _ := ExtractWeeks(listPlan, outline.Scanner{}, time.Monday, testNow)
	days := DaysOfWeek(listPlan, outline.Scanner{}, weeks[0], time.Monday)
	if len(days) != 3 {
		t.Fatalf("len(days) = %d, want 3", len(days))
	}
	if days[0].Name != time.Monday || days[1].Name != time.Tuesday {
		t.Errorf("day names = %v, %v", days[0].Name, days[1].Name)
	}
	mon := listPlan[days[0].Start:days[0].End]
	if !strings.Contains(mon, "[[Pasta Carbonara]]") || strings.Contains(mon, "Tikka") {
		t.Errorf("monday range = %q", mon)
	}
	if !days[0].Date.Equal(date(2024, time.January, 8)) {
		t.Errorf("monday date = %v", days[0].Date)
	}
	if !days[1].Date.Equal(date(2024, time.January, 9)) {
		t.Errorf("tuesday date = %v", days[1].Date)
	}
}

func TestWalkTable_CellOffsets(t *testing.T) {
	doc := "intro\n| a | bb |\n| ccc | d |\n"
	rows := walkTable(doc)
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	c := rows[1].Cells[0]
	if doc[c.Start:c.End] != " ccc " {
		t.Errorf("cell slice = %q", doc[c.Start:c.End])
	}
	if rows[1].Start != len("intro\n| a | bb |\n") {
		t.Errorf("row start = %d", rows[1].Start)
	}
}
