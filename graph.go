package pricegraph

import (
	"fmt"
	"slices"
)

// DataPoint is one (price, date) pair of a Graph.
//
// The date is kept as the ISO "YYYY-MM-DD" string it was entered with; the
// store never parses nor reorders it.
type DataPoint struct {
	Price Price  `json:"price"`
	Date  string `json:"date"`
}

// Graph is a named, described and ordered series of data points.
type Graph struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Rows        []DataPoint `json:"rows"`
}

// Clone returns a deep copy of g.
func (g Graph) Clone() Graph {
	g.Rows = slices.Clone(g.Rows)
	return g
}

// Draft is the content of a Graph before the repository assigns it an id.
type Draft struct {
	Title       string
	Description string
	Rows        []DataPoint
}

// Draft returns the content of g, to be edited and stored back.
func (g Graph) Draft() Draft {
	return Draft{Title: g.Title, Description: g.Description, Rows: slices.Clone(g.Rows)}
}

// CandidateRow is a row as typed by the user.
type CandidateRow struct {
	Price string
	Date  string
}

// Candidate is a graph as typed by the user, before validation.
type Candidate struct {
	Title       string
	Description string
	Rows        []CandidateRow
}

// CandidateOf returns the form content for an existing graph, as an edit
// form would be prefilled.
func CandidateOf(g Graph) Candidate {
	c := Candidate{Title: g.Title, Description: g.Description}
	for _, row := range g.Rows {
		c.Rows = append(c.Rows, CandidateRow{Price: row.Price.String(), Date: row.Date})
	}
	return c
}

// Draft converts a validated candidate into a Draft, parsing prices. Texts
// and dates are kept as typed.
//
// Prices must be non-negative decimal numbers, otherwise the error wraps
// ErrInvalidPrice.
func (c Candidate) Draft() (Draft, error) {
	d := Draft{
		Title:       c.Title,
		Description: c.Description,
		Rows:        make([]DataPoint, 0, len(c.Rows)),
	}
	for i, row := range c.Rows {
		p, err := ParsePrice(row.Price)
		if err != nil {
			return Draft{}, fmt.Errorf("%w: row %d: %v", ErrInvalidPrice, i+1, err)
		}
		if p.IsNegative() {
			return Draft{}, fmt.Errorf("%w: row %d: %s is negative", ErrInvalidPrice, i+1, p)
		}
		d.Rows = append(d.Rows, DataPoint{Price: p, Date: row.Date})
	}
	return d, nil
}
