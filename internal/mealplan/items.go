package mealplan

import (
	"strings"
	"time"

	"github.com/mbracken/skillet/internal/outline"
)

// ExtractDailyItems maps each calendar date covered by weeks to the
// ordered items scheduled on it. Recipe links become Item{IsRecipe:true};
// plain text list items and cell segments become literal display items.
// Keys are DateKey-formatted dates.
func ExtractDailyItems(doc string, src outline.Source, weeks []Week, weekStart time.Weekday) (map[string][]Item, error) {
	items := make(map[string][]Item)
	if len(weeks) == 0 {
		return items, nil
	}

	if DetectFormat(doc) == FormatTable {
		if err := collectTableItems(doc, src, weeks, weekStart, items); err != nil {
			return nil, err
		}
		return items, nil
	}

	links := src.Links(doc)
	for _, w := range weeks {
		for _, day := range DaysOfWeek(doc, src, w, weekStart) {
			key := DateKey(day.Date)
			for _, it := range lineItems(doc[day.Start:day.End], day.Start, links) {
				items[key] = append(items[key], it)
			}
		}
	}
	return items, nil
}

// lineItems walks the "- " list lines of a day section, in document
// order. A line containing wikilinks yields one recipe item per link;
// any other non-empty line yields a literal text item.
func lineItems(section string, base int, links []outline.Link) []Item {
	var out []Item
	offset := base
	for _, line := range strings.Split(section, "\n") {
		lineEnd := offset + len(line)
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "- ") {
			body := strings.TrimSpace(trimmed[2:])
			linked := false
			for _, l := range links {
				if l.Start >= offset && l.Start < lineEnd {
					out = append(out, Item{Name: l.Target, IsRecipe: true})
					linked = true
				}
			}
			if !linked && body != "" {
				out = append(out, Item{Name: body})
			}
		}
		offset = lineEnd + 1
	}
	return out
}

// collectTableItems assigns each link (or plain segment) to the calendar
// date of the column whose recomputed byte range contains it.
func collectTableItems(doc string, src outline.Source, weeks []Week, weekStart time.Weekday, items map[string][]Item) error {
	rows := walkTable(doc)
	headerIdx, cols, err := headerColumns(rows)
	if err != nil {
		return err
	}
	links := src.Links(doc)

	rowByStart := make(map[int]tableRow, len(rows))
	for _, r := range rows[headerIdx+1:] {
		rowByStart[r.Start] = r
	}

	for _, w := range weeks {
		row, ok := rowByStart[w.Start]
		if !ok || len(row.Cells) < 2 {
			continue
		}
		for ci, cell := range row.Cells[1:] {
			if ci >= len(cols) {
				break
			}
			day, ok := DayNameIndex(cols[ci])
			if !ok {
				continue
			}
			key := DateKey(dayDate(w.StartDate, day, weekStart))
			for _, it := range cellItems(cell, links) {
				items[key] = append(items[key], it)
			}
		}
	}
	return nil
}

// cellItems splits a cell on the literal "<br>" separator, yielding a
// recipe item for every link within a segment's byte range and a text
// item for every non-empty link-free segment.
func cellItems(cell tableCell, links []outline.Link) []Item {
	var out []Item
	segStart := cell.Start
	for _, seg := range strings.Split(cell.Text, "<br>") {
		segEnd := segStart + len(seg)
		if strings.Contains(seg, "[[") {
			for _, l := range links {
				if l.Start >= segStart && l.Start < segEnd {
					out = append(out, Item{Name: l.Target, IsRecipe: true})
				}
			}
		} else if trimmed := strings.TrimSpace(seg); trimmed != "" {
			out = append(out, Item{Name: trimmed})
		}
		segStart = segEnd + len("<br>")
	}
	return out
}
