package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/etnz/pricegraph"
	"github.com/etnz/pricegraph/date"
)

// rowsFlag collects repeated -r <price>,<date> flags.
type rowsFlag []pricegraph.CandidateRow

func (r *rowsFlag) String() string {
	if r == nil {
		return ""
	}
	parts := make([]string, len(*r))
	for i, row := range *r {
		parts[i] = row.Price + "," + row.Date
	}
	return strings.Join(parts, " ")
}

// Set parses one row. Dates are normalized to YYYY-MM-DD, empty fields are
// left for validation to report.
func (r *rowsFlag) Set(v string) error {
	price, on, ok := strings.Cut(v, ",")
	if !ok {
		return fmt.Errorf("row %q is not <price>,<date>", v)
	}
	price, on = strings.TrimSpace(price), strings.TrimSpace(on)
	if on != "" {
		d, err := date.Parse(on)
		if err != nil {
			return err
		}
		on = d.String()
	}
	*r = append(*r, pricegraph.CandidateRow{Price: price, Date: on})
	return nil
}

// parseID parses a graph id argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid graph id %q", arg)
	}
	return id, nil
}

// draft validates c and converts it.
func draft(c pricegraph.Candidate) (pricegraph.Draft, error) {
	if err := pricegraph.Validate(c); err != nil {
		return pricegraph.Draft{}, err
	}
	return c.Draft()
}
