package renderer

import "github.com/etnz/pricegraph"

// Detail is the data of a single graph page.
type Detail struct {
	ID          int64
	Title       string
	Description string
	Sample      bool
	// Notice is shown above the graph, for instance when the requested
	// graph could not be found.
	Notice string
	// Chronological is true when rows were sorted by date.
	Chronological bool

	Latest     Amount
	Since      string // date of the first row
	Delta      Amount
	Percent    Percent
	HasPercent bool

	Rows []DetailRow
}

// DetailRow is one point of the series.
type DetailRow struct {
	Date  string
	Price Amount
}

// NewDetail creates the page for g. Rows are displayed in g's order.
func NewDetail(g pricegraph.Graph, currency string) *Detail {
	s := pricegraph.ToSeries(g)
	c := pricegraph.ChangeOf(g)
	d := &Detail{
		ID:          g.ID,
		Title:       g.Title,
		Description: g.Description,
		Sample:      pricegraph.IsSeed(g.ID),
		Latest:      NewAmount(pricegraph.Latest(g), currency),
		Delta:       NewAmount(c.Delta, currency),
		Percent:     Percent{c.Percent},
		HasPercent:  c.HasPercent,
		Rows:        make([]DetailRow, s.Len()),
	}
	for i := range s.Values {
		d.Rows[i] = DetailRow{Date: s.Labels[i], Price: NewAmount(s.Values[i], currency)}
	}
	if len(s.Labels) > 0 {
		d.Since = s.Labels[0]
	}
	return d
}

// Empty reports whether the graph has no rows.
func (d *Detail) Empty() bool { return len(d.Rows) == 0 }
