package ui

import (
	"strings"
	"testing"

	"salesdesk/internal/menu"
	"salesdesk/internal/types"
)

func TestDetectTheme(t *testing.T) {
	t.Setenv("SALESDESK_DARK_MODE", "1")
	if !DetectTheme().IsDark {
		t.Fatalf("expected dark theme when SALESDESK_DARK_MODE=1")
	}

	t.Setenv("SALESDESK_DARK_MODE", "")
	t.Setenv("COLORFGBG", "")
	if DetectTheme().IsDark {
		t.Fatalf("expected light theme by default")
	}

	t.Setenv("COLORFGBG", "15;0")
	if !DetectTheme().IsDark {
		t.Fatalf("expected dark theme for black background")
	}
}

func TestSimpleTable(t *testing.T) {
	table := NewSimpleTable("Suppliers", []string{"Name", "City"})
	table.AddRow("ACME", "Berlin")

	view := table.View(DefaultStyles())
	t.Logf("View:\n%q", view)

	if !strings.Contains(view, "Suppliers") {
		t.Error("View missing title")
	}
	if !strings.Contains(view, "ACME") {
		t.Error("View missing cell content")
	}
}

func TestSimpleTable_EmptyRendersNothing(t *testing.T) {
	table := NewSimpleTable("Empty", []string{"A"})
	if got := table.View(DefaultStyles()); got != "" {
		t.Errorf("expected empty view, got %q", got)
	}
}

func TestRenderMenuTree(t *testing.T) {
	svc := menu.New(nil)
	svc.Initialize([]types.MenuItem{
		{ID: "1", Caption: "Orders"},
		{ID: "2", ParentID: "1", Caption: "Create", Tooltip: "Create a new order"},
		{ID: "3", ParentID: "1", Caption: "Search"},
	})

	out := RenderMenuTree(DefaultStyles(), svc.Roots())
	t.Logf("Tree:\n%s", out)

	for _, want := range []string{"Orders", "Create", "Search", "Create a new order", "└── "} {
		if !strings.Contains(out, want) {
			t.Errorf("tree output missing %q", want)
		}
	}
}
