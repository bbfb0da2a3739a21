package pricegraph

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/PaesslerAG/jsonpath"
)

// this file contains functions to bring series in and out of the store.

// DecodeJSON reads any JSON document from r, keeping numbers as json.Number
// so that prices keep all their digits.
func DecodeJSON(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("cannot parse json document: %w", err)
	}
	return doc, nil
}

// ImportRows extracts candidate rows from doc.
//
// datesPath and pricesPath are JSONPath expressions, for instance
// "$.data[*].day" and "$.data[*].close", that must select the same number of
// values. Dates must be strings, prices numbers or numeric strings. A null
// value becomes an empty field, left for Validate to report.
func ImportRows(doc any, datesPath, pricesPath string) ([]CandidateRow, error) {
	dates, err := selectAll(doc, datesPath)
	if err != nil {
		return nil, err
	}
	prices, err := selectAll(doc, pricesPath)
	if err != nil {
		return nil, err
	}
	if len(dates) != len(prices) {
		return nil, fmt.Errorf("%q selects %d dates but %q selects %d prices", datesPath, len(dates), pricesPath, len(prices))
	}

	rows := make([]CandidateRow, len(dates))
	for i := range dates {
		d, err := jsonString(dates[i], false)
		if err != nil {
			return nil, fmt.Errorf("date #%d: %w", i+1, err)
		}
		p, err := jsonString(prices[i], true)
		if err != nil {
			return nil, fmt.Errorf("price #%d: %w", i+1, err)
		}
		rows[i] = CandidateRow{Price: p, Date: d}
	}
	return rows, nil
}

// selectAll evaluates path on doc, always returning a list.
func selectAll(doc any, path string) ([]any, error) {
	v, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil, fmt.Errorf("invalid json path %q: %w", path, err)
	}
	// jsonpath returns a list for wildcards and filters, a single value otherwise.
	if list, ok := v.([]any); ok {
		return list, nil
	}
	return []any{v}, nil
}

func jsonString(v any, numeric bool) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case json.Number:
		if numeric {
			return t.String(), nil
		}
	case float64:
		if numeric {
			return strconv.FormatFloat(t, 'f', -1, 64), nil
		}
	}
	return "", fmt.Errorf("unexpected json value %v (%T)", v, v)
}

// Export writes graphs in the persisted format: an indented JSON array.
func Export(w io.Writer, graphs []Graph) error {
	if graphs == nil {
		graphs = []Graph{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(graphs); err != nil {
		return fmt.Errorf("cannot export graphs: %w", err)
	}
	return nil
}

// ImportGraphs reads graphs written by Export, returning their content as
// candidates to be checked like typed graphs. Ids are dropped so that the
// repository gives fresh ones. A missing price or date is an empty field.
func ImportGraphs(r io.Reader) ([]Candidate, error) {
	type record struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Rows        []struct {
			Price any `json:"price"`
			Date  any `json:"date"`
		} `json:"rows"`
	}
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var records []record
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("cannot parse exported graphs: %w", err)
	}
	candidates := make([]Candidate, 0, len(records))
	for i, rec := range records {
		c := Candidate{Title: rec.Title, Description: rec.Description}
		for j, row := range rec.Rows {
			p, err := jsonString(row.Price, true)
			if err != nil {
				return nil, fmt.Errorf("graph #%d row %d price: %w", i+1, j+1, err)
			}
			d, err := jsonString(row.Date, false)
			if err != nil {
				return nil, fmt.Errorf("graph #%d row %d date: %w", i+1, j+1, err)
			}
			c.Rows = append(c.Rows, CandidateRow{Price: p, Date: d})
		}
		candidates = append(candidates, c)
	}
	return candidates, nil
}
