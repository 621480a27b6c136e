// Package chart renders the dashboard's amount-by-category pie chart. The
// chart is regenerated on every dashboard load; nothing is cached.
package chart

import (
	"bytes"
	"encoding/base64"
	"fmt"

	gochart "github.com/wcharczuk/go-chart/v2"

	"outlay/internal/apiclient"
)

// uncategorizedLabel is the slice label for expenses without a category.
const uncategorizedLabel = "Uncategorized"

// Slice is one pie slice: a category label and the summed amount.
type Slice struct {
	Label string
	Value int64
}

// Aggregate joins expenses to category names and sums amounts per category.
// Slices follow the category list order; expenses with no category or an
// unknown category id are grouped under "Uncategorized" at the end. Slices
// with a zero or negative total are dropped because they cannot be drawn.
func Aggregate(categories []apiclient.Category, expenses []apiclient.Expense) []Slice {
	names := make(map[uint]string, len(categories))
	for _, cat := range categories {
		names[cat.ID] = cat.CategoryName
	}

	totals := make(map[string]int64)
	for _, e := range expenses {
		label := uncategorizedLabel
		if e.CategoryID != nil {
			if name, ok := names[*e.CategoryID]; ok {
				label = name
			}
		}
		totals[label] += e.Amount
	}

	slices := make([]Slice, 0, len(totals))
	for _, cat := range categories {
		if total := totals[cat.CategoryName]; total > 0 {
			slices = append(slices, Slice{Label: cat.CategoryName, Value: total})
		}
	}
	if total := totals[uncategorizedLabel]; total > 0 {
		slices = append(slices, Slice{Label: uncategorizedLabel, Value: total})
	}
	return slices
}

// PieDataURI renders the aggregated spending as a pie chart PNG and returns
// it as a base64 data URI for inline embedding. An empty aggregate yields an
// empty string so callers can hide the chart.
func PieDataURI(categories []apiclient.Category, expenses []apiclient.Expense) (string, error) {
	slices := Aggregate(categories, expenses)
	if len(slices) == 0 {
		return "", nil
	}

	values := make([]gochart.Value, 0, len(slices))
	for _, s := range slices {
		values = append(values, gochart.Value{Label: s.Label, Value: float64(s.Value)})
	}

	pie := gochart.PieChart{
		Title:  "Amount spent per category",
		Width:  512,
		Height: 512,
		Values: values,
	}

	var buf bytes.Buffer
	if err := pie.Render(gochart.PNG, &buf); err != nil {
		return "", fmt.Errorf("render pie chart: %w", err)
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
