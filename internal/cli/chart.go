package cli

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/ledgerline/expensectl/pkg/errors"
	"github.com/ledgerline/expensectl/pkg/expenses"
)

// minSliceShare is the smallest percentage that gets its own slice.
// Smaller categories are folded into "other" so labels stay readable.
const minSliceShare = 1.0

// writePieChart renders the category breakdown as a PNG pie chart at path.
func writePieChart(path string, data []expenses.CategoryBreakdown) error {
	values := pieValues(data)
	if len(values) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "nothing to chart: no spending in this range")
	}

	f, err := createFile(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "create chart file")
	}
	if err := renderPieChart(f, values); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func renderPieChart(w io.Writer, values []chart.Value) error {
	pie := chart.PieChart{
		Title:  "Spending by category",
		Width:  800,
		Height: 800,
		Values: values,
		Background: chart.Style{
			Padding:   chart.Box{Top: 50, Left: 50, Right: 50, Bottom: 50},
			FillColor: chart.ColorWhite,
		},
	}
	if err := pie.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render pie chart: %w", err)
	}
	return nil
}

// pieValues turns the breakdown into chart slices, skipping empty categories
// and merging the ones below minSliceShare.
func pieValues(data []expenses.CategoryBreakdown) []chart.Value {
	var (
		values []chart.Value
		other  float64
	)
	for _, b := range data {
		if b.TotalAmount <= 0 {
			continue
		}
		if b.Percentage < minSliceShare {
			other += b.TotalAmount
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s: %s (%s)", b.Category, money(b.TotalAmount), percent(b.Percentage)),
			Value: b.TotalAmount,
			Style: chart.Style{FontSize: 12, FontColor: chart.ColorBlack},
		})
	}
	if other > 0 {
		values = append(values, chart.Value{
			Label: "other: " + money(other),
			Value: other,
			Style: chart.Style{FontSize: 12, FontColor: chart.ColorBlack},
		})
	}
	return values
}
