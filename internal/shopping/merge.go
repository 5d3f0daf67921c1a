package shopping

import "strings"

// mergeKey identifies ingredients that are the same item: case-folded
// description plus exact unit of measure.
func mergeKey(ing Ingredient) string {
	return strings.ToLower(ing.Description) + "\x00" + ing.UnitOfMeasure
}

// Merge folds duplicate ingredients together, summing quantities with
// absent treated as zero. Keys keep first-seen order, so merging is
// idempotent and order-insensitive on the key: [A,B] then [A] sums the
// same as [A,A,B] in one pass. Entries are copied; inputs are never
// mutated.
func Merge(ingredients []Ingredient) []Ingredient {
	order := make([]string, 0, len(ingredients))
	byKey := make(map[string]*Ingredient, len(ingredients))

	for _, ing := range ingredients {
		key := mergeKey(ing)
		existing, ok := byKey[key]
		if !ok {
			cp := ing
			if ing.Quantity != nil {
				q := *ing.Quantity
				cp.Quantity = &q
			}
			if ing.AltQuantity != nil {
				q := *ing.AltQuantity
				cp.AltQuantity = &q
			}
			byKey[key] = &cp
			order = append(order, key)
			continue
		}
		if ing.Quantity != nil || existing.Quantity != nil {
			sum := qty(existing.Quantity) + qty(ing.Quantity)
			existing.Quantity = &sum
		}
		if ing.AltQuantity != nil || existing.AltQuantity != nil {
			sum := qty(existing.AltQuantity) + qty(ing.AltQuantity)
			existing.AltQuantity = &sum
		}
	}

	out := make([]Ingredient, 0, len(order))
	for _, key := range order {
		out = append(out, *byKey[key])
	}
	return out
}

func qty(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
