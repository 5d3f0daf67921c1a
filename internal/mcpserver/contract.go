package mcpserver

// PlanFormatContract describes the two meal-plan note layouts that
// LLM consumers must follow when editing the plan directly.
const PlanFormatContract = `# Skillet Meal Plan Format Contract

The plan note encodes one week per section. Two layouts exist; the
layout is detected from the first non-whitespace character of the note
(a ` + "`" + `|` + "`" + ` means table, anything else means list). Never mix layouts in
one note.

## Week labels

Every week is labelled "<Month> <ordinal day>" of its starting date,
e.g. ` + "`" + `January 8th` + "`" + ` for the week starting 2024-01-08. The starting
weekday is a vault setting (default Monday). Labels carry no year; a
January label seen in December belongs to the coming January.

## List layout

` + "```" + `markdown
# Week of January 8th
## Monday
- [[Pasta Carbonara]]
- Leftovers
## Tuesday
...one heading per day, seven days in week-start order...
` + "```" + `

- Week sections start with ` + "`" + `# Week of <label>` + "`" + `.
- Day sub-headings are level 2.
- Each scheduled item is a ` + "`" + `- ` + "`" + ` list line. Recipes are
  ` + "`" + `[[wikilinks]]` + "`" + ` to notes in the recipe folder; plain text is
  allowed for one-off meals.

## Table layout

` + "```" + `markdown
| Week Start | Monday | Tuesday | Wednesday | Thursday | Friday | Saturday | Sunday |
|---|---|---|---|---|---|---|---|
| January 8th |  | [[Pasta Carbonara]] |  |  |  |  |  |
` + "```" + `

- The header row must contain a ` + "`" + `Week Start` + "`" + ` column; the day columns
  follow in week-start order.
- One data row per week, newest week directly under the separator row.
- Multiple items in one day cell are separated with ` + "`" + `<br>` + "`" + `.

## Recipes

Recipe notes live in the vault's recipe folder and carry an
` + "`" + `## Ingredients` + "`" + ` section of ` + "`" + `- ` + "`" + ` list lines, one ingredient per
line (e.g. ` + "`" + `- 200 g spaghetti` + "`" + `). Lines ending with ` + "`" + `:` + "`" + ` are group
headers and are skipped by the shopping-list aggregator.
`
