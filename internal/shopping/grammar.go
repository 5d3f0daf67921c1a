package shopping

import (
	"strconv"
	"strings"
)

// Grammar parses free-text ingredient lines into structured ingredients.
// The engine treats it as a supplied primitive; tests may inject fixtures
// through this interface.
type Grammar interface {
	// Parse returns the structured ingredients found in text. An empty
	// result means the grammar could not make sense of the line.
	Parse(text string) ([]Ingredient, error)
}

// DefaultGrammar is the built-in quantity/unit/description parser. It
// understands integers, decimals, ASCII fractions ("1/2", "1 1/2") and a
// fixed vocabulary of units of measure; everything after quantity and
// unit is the description.
type DefaultGrammar struct{}

var units = map[string]string{
	"tsp": "tsp", "teaspoon": "tsp", "teaspoons": "tsp",
	"tbsp": "tbsp", "tablespoon": "tbsp", "tablespoons": "tbsp",
	"cup": "cup", "cups": "cup",
	"oz": "oz", "ounce": "oz", "ounces": "oz",
	"lb": "lb", "lbs": "lb", "pound": "lb", "pounds": "lb",
	"g": "g", "gram": "g", "grams": "g",
	"kg": "kg", "ml": "ml", "l": "l", "liter": "l", "liters": "l",
	"pinch": "pinch", "pinches": "pinch",
	"clove": "clove", "cloves": "clove",
	"can": "can", "cans": "can",
	"slice": "slice", "slices": "slice",
	"bunch": "bunch", "bunches": "bunch",
}

// Parse implements Grammar. The quantity may appear anywhere in the
// line (a parenthetical is parsed against a synthetic leading
// placeholder), so the first numeric token is taken as the quantity and
// the token after it as a candidate unit; everything else is the
// description.
func (DefaultGrammar) Parse(text string) ([]Ingredient, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil, nil
	}

	var ing Ingredient
	rest := fields
	for i := range fields {
		q, n := parseQuantity(fields[i:])
		if n == 0 {
			continue
		}
		ing.Quantity = &q
		rest = append(append([]string{}, fields[:i]...), fields[i+n:]...)
		if i+n < len(fields) {
			if u, ok := units[strings.ToLower(fields[i+n])]; ok {
				ing.UnitOfMeasure = u
				rest = append(append([]string{}, fields[:i]...), fields[i+n+1:]...)
			}
		}
		break
	}

	ing.Description = strings.TrimSpace(strings.Join(rest, " "))
	if ing.Description == "" {
		return nil, nil
	}
	return []Ingredient{ing}, nil
}

// parseQuantity consumes up to two fields as a numeric quantity: "2",
// "1.5", "1/2", or the mixed form "1 1/2". It returns the value and the
// number of fields consumed (0 when the first field is not numeric).
func parseQuantity(fields []string) (float64, int) {
	v, ok := parseNumber(fields[0])
	if !ok {
		return 0, 0
	}
	if len(fields) > 1 && strings.Contains(fields[1], "/") {
		if frac, ok := parseNumber(fields[1]); ok {
			return v + frac, 2
		}
	}
	return v, 1
}

func parseNumber(s string) (float64, bool) {
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err1 := strconv.ParseFloat(num, 64)
		d, err2 := strconv.ParseFloat(den, 64)
		if err1 != nil || err2 != nil || d == 0 {
			return 0, false
		}
		return n / d, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
