package pricegraph

import (
	"errors"
	"fmt"
	"strings"
)

// MaxDescriptionWords is the maximum number of words in a graph description.
const MaxDescriptionWords = 30

var (
	// ErrMissingField is returned when the title, the description, or any
	// row field is empty.
	ErrMissingField = errors.New("all fields are required, please fill in all fields")

	// ErrDescriptionTooLong is returned when the description has more than
	// MaxDescriptionWords words.
	ErrDescriptionTooLong = fmt.Errorf("description should not exceed %d words", MaxDescriptionWords)

	// ErrInvalidPrice is returned when a price is not a non-negative number.
	ErrInvalidPrice = errors.New("price must be a non-negative number")
)

// WordCount returns the number of whitespace separated words in s.
//
// Like the form counter it mimics, an empty or blank string counts as one
// word.
func WordCount(s string) int {
	n := len(strings.Fields(s))
	if n == 0 {
		return 1
	}
	return n
}

// Validate checks c before it is accepted, and returns the first failure:
// ErrMissingField first, then ErrDescriptionTooLong.
//
// Only empty fields are missing: a blank description is accepted and
// counts as one word.
//
// Prices are not checked here, see Candidate.Draft.
func Validate(c Candidate) error {
	switch {
	case c.Title == "":
		return fmt.Errorf("%w: title is empty", ErrMissingField)
	case c.Description == "":
		return fmt.Errorf("%w: description is empty", ErrMissingField)
	case len(c.Rows) == 0:
		return fmt.Errorf("%w: at least one row is needed", ErrMissingField)
	}
	for i, row := range c.Rows {
		if row.Price == "" {
			return fmt.Errorf("%w: row %d has no price", ErrMissingField, i+1)
		}
		if row.Date == "" {
			return fmt.Errorf("%w: row %d has no date", ErrMissingField, i+1)
		}
	}
	if n := WordCount(c.Description); n > MaxDescriptionWords {
		return fmt.Errorf("%w: got %d", ErrDescriptionTooLong, n)
	}
	return nil
}
