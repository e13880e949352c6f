package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestSimpleTable(t *testing.T) {
	table := NewSimpleTable("Provinces", []string{"Province", "Funding"})
	table.RightAlign[1] = true
	table.AddRow("Alberta", "$228 Million")
	table.AddRow("Ontario", "$74 Million")

	view := table.View(DefaultStyles())
	t.Logf("View:\n%s", view)

	for _, want := range []string{"Provinces", "Province", "Alberta", "$74 Million", "─"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSimpleTableEmpty(t *testing.T) {
	if got := NewSimpleTable("x", []string{"a"}).View(DefaultStyles()); got != "" {
		t.Fatalf("empty table should render nothing, got %q", got)
	}
}

func TestSimpleTableSwatches(t *testing.T) {
	table := NewSimpleTable("", []string{"City"})
	table.AddRow("London")
	table.AddRow("Calgary")
	table.Swatches = []lipgloss.Color{"#a8dadc"}

	view := table.View(DefaultStyles())
	if n := strings.Count(view, "■"); n != 2 {
		t.Fatalf("expected a swatch per row, got %d", n)
	}
}
