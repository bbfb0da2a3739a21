package pricegraph

// SeedID is the id reserved for the sample graph. It is far above any id
// produced from the clock in our lifetime, so it never collides.
const SeedID int64 = 9999999999999

// IsSeed reports whether id designates the sample graph.
func IsSeed(id int64) bool { return id == SeedID }

// Seed returns the built-in sample graph.
//
// It is listed first by the repository, never persisted and cannot be
// updated or removed. Each call returns a fresh copy.
func Seed() Graph {
	return Graph{
		ID:          SeedID,
		Title:       "Sample Data",
		Description: "A sample graph with hardcoded data",
		Rows: []DataPoint{
			{Price: P(30000), Date: "2024-01-01"},
			{Price: P(32000), Date: "2024-02-01"},
			{Price: P(31000), Date: "2024-03-01"},
			{Price: P(33000), Date: "2024-04-01"},
			{Price: P(34000), Date: "2024-05-01"},
		},
	}
}
