package mealplan

import (
	"testing"
	"time"

	"github.com/mbracken/skillet/internal/outline"
)

func TestExtractDailyItems_List(t *testing.T) {
	weeks, _ := ExtractWeeks(listPlan, outline.Scanner{}, time.Monday, testNow)
	items, err := ExtractDailyItems(listPlan, outline.Scanner{}, weeks, time.Monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mon := items["2024-01-08"]
	if len(mon) != 1 || mon[0].Name != "Pasta Carbonara" || !mon[0].IsRecipe {
		t.Errorf("monday items = %+v", mon)
	}

	tue := items["2024-01-09"]
	if len(tue) != 2 {
		t.Fatalf("tuesday items = %+v", tue)
	}
	if tue[0].Name != "Chicken Tikka Masala" || !tue[0].IsRecipe {
		t.Errorf("tuesday[0] = %+v", tue[0])
	}
	if tue[1].Name != "family dinner out" || tue[1].IsRecipe {
		t.Errorf("tuesday[1] = %+v", tue[1])
	}

	// Next week's Monday maps a week later.
	if next := items["2024-01-15"]; len(next) != 1 || next[0].Name != "Minestrone" {
		t.Errorf("next monday = %+v", next)
	}

	// Past weeks were filtered out before item extraction.
	if _, ok := items["2024-01-01"]; ok {
		t.Error("filtered week leaked items")
	}
}

func TestExtractDailyItems_Table(t *testing.T) {
	weeks, _ := ExtractWeeks(tablePlan, outline.Scanner{}, time.Monday, testNow)
	items, err := ExtractDailyItems(tablePlan, outline.Scanner{}, weeks, time.Monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mon := items["2024-01-08"]
	if len(mon) != 1 || mon[0].Name != "Pasta Carbonara" || !mon[0].IsRecipe {
		t.Errorf("monday items = %+v", mon)
	}

	// A <br>-joined cell yields the link and the plain segment, in order.
	tue := items["2024-01-09"]
	if len(tue) != 2 {
		t.Fatalf("tuesday items = %+v", tue)
	}
	if tue[0].Name != "Chicken Tikka Masala" || !tue[0].IsRecipe {
		t.Errorf("tuesday[0] = %+v", tue[0])
	}
	if tue[1].Name != "family dinner out" || tue[1].IsRecipe {
		t.Errorf("tuesday[1] = %+v", tue[1])
	}
}

func TestExtractDailyItems_EmptyWeeks(t *testing.T) {
	items, err := ExtractDailyItems(listPlan, outline.Scanner{}, nil, time.Monday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("items = %+v, want empty", items)
	}
}
