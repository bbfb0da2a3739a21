package renderer

import "github.com/etnz/pricegraph"

// Listing is the data of the graphs listing.
type Listing struct {
	Currency string
	Items    []ListingItem
}

// ListingItem is one graph in the listing.
type ListingItem struct {
	ID          int64
	Title       string
	Description string
	Sample      bool
	Points      int
	Latest      Amount
}

// NewListing creates the listing of graphs, in the given order.
func NewListing(graphs []pricegraph.Graph, currency string) *Listing {
	l := &Listing{Currency: currency, Items: make([]ListingItem, 0, len(graphs))}
	for _, g := range graphs {
		l.Items = append(l.Items, ListingItem{
			ID:          g.ID,
			Title:       g.Title,
			Description: g.Description,
			Sample:      pricegraph.IsSeed(g.ID),
			Points:      len(g.Rows),
			Latest:      NewAmount(pricegraph.Latest(g), currency),
		})
	}
	return l
}
