package mealplan

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mbracken/skillet/internal/apperr"
	"github.com/mbracken/skillet/internal/outline"
)

// DaySection is a day's sub-range inside a list-layout week.
type DaySection struct {
	Date  time.Time
	Name  time.Weekday
	Start int
	End   int
}

// ExtractWeeks produces the ordered current-and-future weeks of a plan
// note, for either layout. Weeks whose start date falls strictly before
// the week containing now are discarded; the remainder is sorted
// ascending by start date. Byte ranges of distinct weeks never overlap.
func ExtractWeeks(doc string, src outline.Source, weekStart time.Weekday, now time.Time) ([]Week, error) {
	var weeks []Week
	var err error
	switch DetectFormat(doc) {
	case FormatTable:
		weeks, err = extractTableWeeks(doc, now)
	default:
		weeks = extractListWeeks(doc, src, now)
	}
	if err != nil {
		return nil, err
	}

	cutoff := StartOfWeek(now, weekStart)
	currentLabel := WeekLabel(cutoff)
	kept := weeks[:0]
	for _, w := range weeks {
		if w.StartDate.Before(cutoff) {
			continue
		}
		w.Selected = w.Label == currentLabel
		kept = append(kept, w)
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].StartDate.Before(kept[j].StartDate) })
	return kept, nil
}

// extractListWeeks walks level-1 headings prefixed "Week of ". A week's
// content starts at its heading's end offset and runs to the next week
// heading's start, or to document end.
func extractListWeeks(doc string, src outline.Source, now time.Time) []Week {
	var headings []outline.Heading
	for _, h := range src.Headings(doc) {
		if h.Level == 1 && strings.HasPrefix(h.Text, WeekHeadingPrefix) {
			headings = append(headings, h)
		}
	}

	weeks := make([]Week, 0, len(headings))
	for i, h := range headings {
		label := strings.TrimPrefix(h.Text, WeekHeadingPrefix)
		start, _ := ParseLabel(label, now)
		end := len(doc)
		if i+1 < len(headings) {
			end = headings[i+1].Start
		}
		weeks = append(weeks, Week{
			Label:     label,
			StartDate: start,
			Start:     h.End,
			End:       end,
		})
	}
	return weeks
}

// DaysOfWeek returns the day sub-ranges of a list-layout week: each
// level-2 heading whose text is a weekday name opens a day section that
// runs to the next day heading or the week's end.
func DaysOfWeek(doc string, src outline.Source, w Week, weekStart time.Weekday) []DaySection {
	var days []DaySection
	for _, h := range src.Headings(doc) {
		if h.Start < w.Start || h.Start >= w.End || h.Level != 2 {
			continue
		}
		name, ok := DayNameIndex(h.Text)
		if !ok {
			continue
		}
		if n := len(days); n > 0 {
			days[n-1].End = h.Start
		}
		days = append(days, DaySection{
			Date:  dayDate(w.StartDate, name, weekStart),
			Name:  name,
			Start: h.End,
			End:   w.End,
		})
	}
	return days
}

// tableCell is a '|'-delimited cell with the byte range of its raw
// content (excluding the delimiters themselves).
type tableCell struct {
	Text  string
	Start int
	End   int
}

// tableRow is one line of a table with recomputed cell offsets.
type tableRow struct {
	Line  string
	Start int // offset of the row's first byte
	End   int // offset one past the row's last byte (excluding newline)
	Cells []tableCell
}

// walkTable reconstructs per-row, per-cell byte ranges that the
// structural index does not provide: it tracks a running offset
// incremented by line length + 1 per line and splits each '|' row into
// cells. Rows stop at the first non-'|' line after the table begins.
func walkTable(doc string) []tableRow {
	var rows []tableRow
	offset := 0
	started := false
	for _, line := range strings.Split(doc, "\n") {
		isRow := strings.HasPrefix(strings.TrimSpace(line), "|")
		if isRow {
			started = true
			rows = append(rows, splitRow(line, offset))
		} else if started && strings.TrimSpace(line) != "" {
			break
		}
		offset += len(line) + 1
	}
	return rows
}

// splitRow walks the '|' boundaries of a row line and records each
// cell's content range relative to the whole document.
func splitRow(line string, lineStart int) tableRow {
	row := tableRow{Line: line, Start: lineStart, End: lineStart + len(line)}
	cellStart := -1
	for i, r := range line {
		if r != '|' {
			continue
		}
		if cellStart >= 0 {
			row.Cells = append(row.Cells, tableCell{
				Text:  line[cellStart:i],
				Start: lineStart + cellStart,
				End:   lineStart + i,
			})
		}
		cellStart = i + 1
	}
	// Content after a trailing unclosed '|' still forms a cell.
	if cellStart >= 0 && cellStart < len(line) && strings.TrimSpace(line[cellStart:]) != "" {
		row.Cells = append(row.Cells, tableCell{
			Text:  line[cellStart:],
			Start: lineStart + cellStart,
			End:   lineStart + len(line),
		})
	}
	return row
}

// headerColumns locates the header row containing the "Week Start" token
// and returns the day-name columns that follow it, plus the header row's
// index within rows.
func headerColumns(rows []tableRow) (int, []string, error) {
	for i, row := range rows {
		if len(row.Cells) == 0 {
			continue
		}
		if strings.TrimSpace(row.Cells[0].Text) != WeekStartColumn {
			continue
		}
		cols := make([]string, 0, len(row.Cells)-1)
		for _, c := range row.Cells[1:] {
			cols = append(cols, strings.TrimSpace(c.Text))
		}
		return i, cols, nil
	}
	return 0, nil, fmt.Errorf("mealplan: %w", apperr.ErrMalformedTableHeader)
}

func isSeparatorRow(row tableRow) bool {
	for _, c := range row.Cells {
		if strings.Trim(strings.TrimSpace(c.Text), "-:") != "" {
			return false
		}
	}
	return len(row.Cells) > 0
}

// extractTableWeeks parses one week per data row: the first cell is the
// week's date label, and the row's own line is the week's byte range.
func extractTableWeeks(doc string, now time.Time) ([]Week, error) {
	rows := walkTable(doc)
	headerIdx, _, err := headerColumns(rows)
	if err != nil {
		return nil, err
	}

	var weeks []Week
	for _, row := range rows[headerIdx+1:] {
		if isSeparatorRow(row) || len(row.Cells) == 0 {
			continue
		}
		label := strings.TrimSpace(row.Cells[0].Text)
		if label == "" {
			continue
		}
		start, _ := ParseLabel(label, now)
		weeks = append(weeks, Week{
			Label:     label,
			StartDate: start,
			Start:     row.Start,
			End:       row.End,
		})
	}
	return weeks, nil
}
