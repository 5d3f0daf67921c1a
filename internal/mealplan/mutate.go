package mealplan

import (
	"fmt"
	"strings"
	"time"

	"github.com/mbracken/skillet/internal/apperr"
	"github.com/mbracken/skillet/internal/outline"
)

// InsertEntry returns a new document with entry scheduled on the named
// day of week w. The whole new text is computed in memory; callers
// perform a single write afterwards, so a failure here leaves the stored
// document untouched.
//
// List layout: a "- [[entry]]" line is appended after the day heading's
// existing items, so repeated inserts for the same day accumulate in
// insertion order. Table layout: only the target row's line is rewritten;
// within the row, a non-empty cell gains "<br>[[entry]]" after its
// existing content. No byte outside the modified line shifts.
func InsertEntry(doc string, src outline.Source, w Week, dayName, entry string) (string, error) {
	if DetectFormat(doc) == FormatTable {
		return insertTableEntry(doc, w, dayName, entry)
	}
	return insertListEntry(doc, src, w, dayName, entry)
}

func insertListEntry(doc string, src outline.Source, w Week, dayName, entry string) (string, error) {
	var heading *outline.Heading
	for _, h := range src.Headings(doc) {
		if h.Level == 2 && h.Start >= w.Start && h.Start < w.End && strings.EqualFold(h.Text, dayName) {
			heading = &h
			break
		}
	}
	if heading == nil {
		return "", fmt.Errorf("mealplan: day heading %q in week %q: %w", dayName, w.Label, apperr.ErrNotFound)
	}

	// Append after the day's existing item lines.
	pos := heading.End
	rest := doc[heading.End:]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		offset := heading.End + nl + 1
		for _, line := range strings.Split(doc[offset:], "\n") {
			if !strings.HasPrefix(strings.TrimSpace(line), "- ") {
				break
			}
			pos = offset + len(line)
			offset = pos + 1
		}
	}

	return doc[:pos] + "\n- [[" + entry + "]]" + doc[pos:], nil
}

func insertTableEntry(doc string, w Week, dayName, entry string) (string, error) {
	rows := walkTable(doc)
	headerIdx, cols, err := headerColumns(rows)
	if err != nil {
		return "", err
	}

	col := -1
	for i, c := range cols {
		if strings.EqualFold(c, dayName) {
			col = i
			break
		}
	}
	if col < 0 {
		return "", fmt.Errorf("mealplan: day column %q: %w", dayName, apperr.ErrNotFound)
	}

	for _, row := range rows[headerIdx+1:] {
		if isSeparatorRow(row) || len(row.Cells) == 0 {
			continue
		}
		if strings.TrimSpace(row.Cells[0].Text) != w.Label {
			continue
		}
		if col+1 >= len(row.Cells) {
			return "", fmt.Errorf("mealplan: row %q has no cell for %q: %w", w.Label, dayName, apperr.ErrNotFound)
		}

		cells := make([]string, len(row.Cells))
		for i, c := range row.Cells {
			cells[i] = strings.TrimSpace(c.Text)
		}
		link := "[[" + entry + "]]"
		if cells[col+1] == "" {
			cells[col+1] = link
		} else {
			cells[col+1] += "<br>" + link
		}

		line := "| " + strings.Join(cells, " | ") + " |"
		return doc[:row.Start] + line + doc[row.End:], nil
	}
	return "", fmt.Errorf("mealplan: week row %q: %w", w.Label, apperr.ErrNotFound)
}

// EnsureWeekSection guarantees that the week containing now has a
// section in the document, creating scaffolding in the document's own
// layout when absent. Applying it twice for the same week is a no-op the
// second time.
func EnsureWeekSection(doc string, weekStart time.Weekday, now time.Time) (string, error) {
	label := CurrentWeekLabel(now, weekStart)
	if DetectFormat(doc) == FormatTable {
		return ensureTableWeek(doc, label, weekStart)
	}
	return ensureListWeek(doc, label, weekStart), nil
}

// ensureListWeek prepends a "# Week of <label>" heading followed by the
// seven day headings in week-start order.
func ensureListWeek(doc, label string, weekStart time.Weekday) string {
	header := "# " + WeekHeadingPrefix + label
	if strings.Contains(doc, header) {
		return doc
	}
	var b strings.Builder
	b.WriteString(header)
	b.WriteByte('\n')
	for _, day := range DayNames(weekStart) {
		b.WriteString("## ")
		b.WriteString(day)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	b.WriteString(doc)
	return b.String()
}

// ensureTableWeek adds a data row for label, creating the header and
// separator rows first when the document has no table yet. The new row
// is placed ahead of existing week rows.
func ensureTableWeek(doc, label string, weekStart time.Weekday) (string, error) {
	rows := walkTable(doc)
	headerIdx, _, err := headerColumns(rows)
	if err != nil {
		// No table yet: scaffold a fresh one ahead of existing content.
		block := CreateTableWeekSection(label, DayNames(weekStart))
		if strings.TrimSpace(doc) == "" {
			return block + "\n", nil
		}
		return block + "\n" + doc, nil
	}

	for _, row := range rows[headerIdx+1:] {
		if len(row.Cells) > 0 && strings.TrimSpace(row.Cells[0].Text) == label {
			return doc, nil
		}
	}

	insertAfter := rows[headerIdx]
	if headerIdx+1 < len(rows) && isSeparatorRow(rows[headerIdx+1]) {
		insertAfter = rows[headerIdx+1]
	}
	pos := insertAfter.End
	return doc[:pos] + "\n" + emptyDataRow(label) + doc[pos:], nil
}

// CreateTableWeekSection renders the scaffolding of a fresh table-layout
// week: header row, separator row, and one empty data row.
func CreateTableWeekSection(label string, dayNames []string) string {
	header := "| " + WeekStartColumn + " | " + strings.Join(dayNames, " | ") + " |"
	sep := strings.Repeat("|---", len(dayNames)+1) + "|"
	return header + "\n" + sep + "\n" + emptyDataRow(label)
}

func emptyDataRow(label string) string {
	return "| " + label + " |" + strings.Repeat(" |", 7)
}
