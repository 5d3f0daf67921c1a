package shopping

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultTemplate is the shopping-list line template used when the
// configuration does not set one.
const DefaultTemplate = "{description} ({quantity} {unitOfMeasure})"

var (
	emptyParensRe = regexp.MustCompile(`\(\s*\)`)
	multiSpaceRe  = regexp.MustCompile(`  +`)
	placeholderRe = regexp.MustCompile(`\{(description|quantity|unitOfMeasure|altQuantity|altUnitOfMeasure)\}`)
)

// Render substitutes an ingredient's fields into the line template.
// Absent fields substitute to nothing, and a trailing cleanup removes
// the empty parenthetical remnants that leaves behind.
func Render(ing Ingredient, template string) string {
	line := placeholderRe.ReplaceAllStringFunc(template, func(ph string) string {
		switch ph[1 : len(ph)-1] {
		case "description":
			return ing.Description
		case "quantity":
			return formatQuantity(ing.Quantity)
		case "unitOfMeasure":
			return ing.UnitOfMeasure
		case "altQuantity":
			return formatQuantity(ing.AltQuantity)
		case "altUnitOfMeasure":
			return ing.AltUnitOfMeasure
		}
		return ""
	})
	line = multiSpaceRe.ReplaceAllString(line, " ")
	line = strings.ReplaceAll(line, "( ", "(")
	line = strings.ReplaceAll(line, " )", ")")
	line = emptyParensRe.ReplaceAllString(line, "")
	return strings.TrimSpace(line)
}

// ChecklistLine renders an ingredient as one markdown checklist line.
func ChecklistLine(ing Ingredient, template string) string {
	return "- [ ] " + Render(ing, template)
}

func formatQuantity(q *float64) string {
	if q == nil {
		return ""
	}
	return strconv.FormatFloat(*q, 'f', -1, 64)
}
