// Package outline extracts the structural skeleton of a Markdown document:
// headings and wikilinks together with their byte offsets. The meal-plan
// engine never re-parses Markdown itself; it consumes these records through
// the Source interface, so tests can inject literal fixtures.
package outline

import (
	"regexp"
	"strings"
)

var (
	headingRe  = regexp.MustCompile(`^(#{1,6})\s+(.*?)\s*$`)
	wikilinkRe = regexp.MustCompile(`\[\[(.*?)\]\]`)
)

// Heading is a Markdown heading with its byte range in the document.
// Start is the offset of the first '#', End the offset one past the last
// character of the heading line (excluding the newline).
type Heading struct {
	Level int
	Text  string
	Start int
	End   int
}

// Link is a wikilink occurrence. Target is the link destination with any
// |alias stripped; Start/End span the full [[...]] token.
type Link struct {
	Target string
	Start  int
	End    int
}

// Source supplies structural records for a document. The production
// implementation is Scanner; tests may substitute fixtures.
type Source interface {
	Headings(doc string) []Heading
	Links(doc string) []Link
}

// Scanner is the regex-based Source implementation.
type Scanner struct{}

// Headings returns every heading in document order.
func (Scanner) Headings(doc string) []Heading {
	var out []Heading
	offset := 0
	for _, line := range strings.Split(doc, "\n") {
		if m := headingRe.FindStringSubmatch(line); m != nil {
			out = append(out, Heading{
				Level: len(m[1]),
				Text:  m[2],
				Start: offset,
				End:   offset + len(line),
			})
		}
		offset += len(line) + 1
	}
	return out
}

// Links returns every wikilink in document order. Aliased links
// ([[Target|Alias]]) are normalised to their target; empty targets are
// dropped. Unlike a backlink index, occurrences are NOT deduplicated:
// the same recipe scheduled twice yields two records.
func (Scanner) Links(doc string) []Link {
	idxs := wikilinkRe.FindAllStringSubmatchIndex(doc, -1)
	var out []Link
	for _, m := range idxs {
		raw := doc[m[2]:m[3]]
		target := raw
		if i := strings.Index(raw, "|"); i >= 0 {
			target = raw[:i]
		}
		target = strings.TrimSpace(target)
		if target == "" {
			continue
		}
		out = append(out, Link{Target: target, Start: m[0], End: m[1]})
	}
	return out
}
