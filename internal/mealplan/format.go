package mealplan

import "strings"

// DetectFormat classifies a plan note's layout from its leading content:
// a document whose first non-whitespace character is '|' is a table,
// anything else is a list. Detection never fails; ambiguous input
// defaults to FormatList. Every layout-dependent branch in this package
// uses this single heuristic.
func DetectFormat(doc string) Format {
	if strings.HasPrefix(strings.TrimLeft(doc, " \t\r\n"), "|") {
		return FormatTable
	}
	return FormatList
}
