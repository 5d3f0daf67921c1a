package outline

import (
	"strings"
	"testing"
)

func TestHeadings_LevelsAndOffsets(t *testing.T) {
	doc := "# Week of January 8th\ntext\n## Monday\n- [[Pasta]]\n## Tuesday\n"
	hs := Scanner{}.Headings(doc)
	if len(hs) != 3 {
		t.Fatalf("len(headings) = %d, want 3", len(hs))
	}
	if hs[0].Level != 1 || hs[0].Text != "Week of January 8th" {
		t.Errorf("heading 0 = %+v", hs[0])
	}
	if hs[0].Start != 0 || hs[0].End != len("# Week of January 8th") {
		t.Errorf("heading 0 range = [%d,%d)", hs[0].Start, hs[0].End)
	}
	if hs[1].Level != 2 || hs[1].Text != "Monday" {
		t.Errorf("heading 1 = %+v", hs[1])
	}
	// Offsets must point into the document text.
	if doc[hs[1].Start:hs[1].End] != "## Monday" {
		t.Errorf("heading 1 slice = %q", doc[hs[1].Start:hs[1].End])
	}
}

func TestHeadings_TrailingSpaceTrimmed(t *testing.T) {
	hs := Scanner{}.Headings("## Wednesday  \n")
	if len(hs) != 1 || hs[0].Text != "Wednesday" {
		t.Fatalf("headings = %+v", hs)
	}
}

func TestLinks_OffsetsAndAliases(t *testing.T) {
	doc := "- [[Pasta Carbonara]]\n- [[Chicken Tikka Masala|tikka]]\n"
	ls := Scanner{}.Links(doc)
	if len(ls) != 2 {
		t.Fatalf("len(links) = %d, want 2", len(ls))
	}
	if ls[0].Target != "Pasta Carbonara" {
		t.Errorf("target = %q", ls[0].Target)
	}
	if doc[ls[0].Start:ls[0].End] != "[[Pasta Carbonara]]" {
		t.Errorf("link slice = %q", doc[ls[0].Start:ls[0].End])
	}
	if ls[1].Target != "Chicken Tikka Masala" {
		t.Errorf("aliased target = %q", ls[1].Target)
	}
}

func TestLinks_DuplicatesKept(t *testing.T) {
	ls := Scanner{}.Links("[[Soup]] and [[Soup]] again")
	if len(ls) != 2 {
		t.Fatalf("len(links) = %d, want 2 (occurrences, not unique targets)", len(ls))
	}
}

func TestLinks_EmptyTargetDropped(t *testing.T) {
	ls := Scanner{}.Links("see [[ ]] and [[|alias]]")
	if len(ls) != 0 {
		t.Errorf("expected no links, got %v", ls)
	}
}

func TestParseMeta_FrontmatterTitleAndTags(t *testing.T) {
	input := []byte("---\ntitle: Minestrone\ntags:\n  - soup\n  - vegetarian\n---\n# Minestrone\nBody.\n")
	m := ParseMeta(input)
	if m.Title != "Minestrone" {
		t.Errorf("title = %q, want %q", m.Title, "Minestrone")
	}
	if len(m.Tags) != 2 || m.Tags[0] != "soup" || m.Tags[1] != "vegetarian" {
		t.Errorf("tags = %v", m.Tags)
	}
	if !strings.HasPrefix(m.Body, "# Minestrone") {
		t.Errorf("body = %q", m.Body)
	}
}

func TestParseMeta_H1Fallback(t *testing.T) {
	m := ParseMeta([]byte("some text\n# Pad Thai\nmore"))
	if m.Title != "Pad Thai" {
		t.Errorf("title = %q, want %q", m.Title, "Pad Thai")
	}
	if m.Frontmatter != nil {
		t.Errorf("expected nil frontmatter, got %v", m.Frontmatter)
	}
}

func TestParseMeta_InvalidYAMLFallback(t *testing.T) {
	m := ParseMeta([]byte("---\n: invalid: yaml: {{{\n---\nBody\n"))
	if m.Frontmatter != nil {
		t.Errorf("expected nil frontmatter on invalid YAML")
	}
}
