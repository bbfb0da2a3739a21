package pricegraph

import (
	"fmt"
	"slices"

	"github.com/etnz/pricegraph/date"
	"github.com/shopspring/decimal"
)

// Series is the chart-ready projection of a Graph: one label and one value
// per row, in row order.
type Series struct {
	Label  string   // graph title, used as the dataset name
	Labels []string // dates
	Values []Price
}

// Len returns the number of points in the series.
func (s Series) Len() int { return len(s.Values) }

// ToSeries projects the rows of g, position by position. Rows are neither
// sorted, deduplicated nor parsed.
func ToSeries(g Graph) Series {
	s := Series{
		Label:  g.Title,
		Labels: make([]string, len(g.Rows)),
		Values: make([]Price, len(g.Rows)),
	}
	for i, row := range g.Rows {
		s.Labels[i], s.Values[i] = row.Date, row.Price
	}
	return s
}

// Latest returns the price of the last row of g.
//
// It is the last by position, not by date: it is the most recent value only
// if rows were entered in chronological order (see Chronological).
func Latest(g Graph) Price {
	if len(g.Rows) == 0 {
		return Price{}
	}
	return g.Rows[len(g.Rows)-1].Price
}

// Chronological returns a copy of g with rows sorted by date. Rows on the
// same date keep their relative order.
//
// It fails if any date is not a valid "YYYY-MM-DD" date.
func Chronological(g Graph) (Graph, error) {
	type dated struct {
		on  date.Date
		row DataPoint
	}
	rows := make([]dated, len(g.Rows))
	for i, row := range g.Rows {
		on, err := date.Parse(row.Date)
		if err != nil {
			return Graph{}, fmt.Errorf("row %d: %w", i+1, err)
		}
		rows[i] = dated{on, row}
	}
	slices.SortStableFunc(rows, func(a, b dated) int { return a.on.Compare(b.on) })

	sorted := g.Clone()
	for i, r := range rows {
		sorted.Rows[i] = r.row
	}
	return sorted, nil
}

// Change summarizes the move between the first and the last row of a graph.
type Change struct {
	First, Last Price
	Delta       Price
	Percent     decimal.Decimal // relative to First, meaningless if !HasPercent
	HasPercent  bool
}

// ChangeOf returns the change between the first and the last row of g, by
// position.
func ChangeOf(g Graph) Change {
	if len(g.Rows) == 0 {
		return Change{}
	}
	c := Change{First: g.Rows[0].Price, Last: Latest(g)}
	c.Delta = c.Last.Sub(c.First)
	c.Percent, c.HasPercent = c.Last.RelativeTo(c.First)
	return c
}
