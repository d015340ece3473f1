package cli

import (
	"bytes"
	"testing"

	"github.com/ledgerline/expensectl/pkg/expenses"
)

func TestPieValues(t *testing.T) {
	data := []expenses.CategoryBreakdown{
		{Category: "rent", TotalAmount: 900, Percentage: 90},
		{Category: "food", TotalAmount: 95, Percentage: 9.5},
		{Category: "gum", TotalAmount: 3, Percentage: 0.3},
		{Category: "tips", TotalAmount: 2, Percentage: 0.2},
		{Category: "refunds", TotalAmount: 0, Percentage: 0},
	}

	values := pieValues(data)
	if len(values) != 3 {
		t.Fatalf("pieValues() returned %d slices, want 3", len(values))
	}
	if values[0].Label != "rent: 900.00 (90.0%)" {
		t.Errorf("label = %q", values[0].Label)
	}
	other := values[2]
	if other.Value != 5 || other.Label != "other: 5.00" {
		t.Errorf("other slice = %+v", other)
	}
}

func TestPieValuesEmpty(t *testing.T) {
	if got := pieValues(nil); len(got) != 0 {
		t.Errorf("pieValues(nil) = %v", got)
	}
}

func TestRenderPieChart(t *testing.T) {
	var buf bytes.Buffer
	values := pieValues([]expenses.CategoryBreakdown{
		{Category: "food", TotalAmount: 40, Percentage: 40},
		{Category: "transport", TotalAmount: 60, Percentage: 60},
	})
	if err := renderPieChart(&buf, values); err != nil {
		t.Fatalf("renderPieChart() error = %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}
