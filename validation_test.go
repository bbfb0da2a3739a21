package pricegraph

import (
	"errors"
	"strings"
	"testing"
)

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func TestWordCount(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 1}, // the naive split counts the empty string as a word
		{"   ", 1},
		{"one", 1},
		{"  two   words ", 2},
		{"tabs\tand\nnewlines", 3},
		{words(30), 30},
	}
	for _, tt := range tests {
		if got := WordCount(tt.in); got != tt.want {
			t.Errorf("WordCount(%q) = %d want %d", tt.in, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	valid := func() Candidate {
		return Candidate{
			Title:       "T",
			Description: "d",
			Rows:        []CandidateRow{{Price: "10", Date: "2024-01-01"}},
		}
	}
	tests := []struct {
		name   string
		modify func(c *Candidate)
		want   error
	}{
		{"valid", func(c *Candidate) {}, nil},
		{"empty title", func(c *Candidate) { c.Title = "" }, ErrMissingField},
		{"blank title", func(c *Candidate) { c.Title = "  " }, nil},
		{"empty description", func(c *Candidate) { c.Description = "" }, ErrMissingField},
		{"blank description is one word", func(c *Candidate) { c.Description = "   " }, nil},
		{"no rows", func(c *Candidate) { c.Rows = nil }, ErrMissingField},
		{"row without price", func(c *Candidate) {
			c.Rows = append(c.Rows, CandidateRow{Date: "2024-02-01"})
		}, ErrMissingField},
		{"row without date", func(c *Candidate) {
			c.Rows = append(c.Rows, CandidateRow{Price: "3"})
		}, ErrMissingField},
		{"blank date is not missing", func(c *Candidate) { c.Rows[0].Date = " " }, nil},
		{"30 words", func(c *Candidate) { c.Description = words(30) }, nil},
		{"31 words", func(c *Candidate) { c.Description = words(31) }, ErrDescriptionTooLong},
		{"missing field wins over length", func(c *Candidate) {
			c.Description = words(31)
			c.Title = ""
		}, ErrMissingField},
		{"price format is not checked", func(c *Candidate) { c.Rows[0].Price = "abc" }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.modify(&c)
			err := Validate(c)
			if tt.want == nil {
				if err != nil {
					t.Errorf("Validate() = %v want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v want %v", err, tt.want)
			}
		})
	}
}

func TestCandidateDraft(t *testing.T) {
	c := Candidate{
		Title:       " T ",
		Description: "d",
		Rows: []CandidateRow{
			{Price: "10", Date: "2024-01-01"},
			{Price: " 12.50 ", Date: " 2024-02-01 "},
		},
	}
	d, err := c.Draft()
	if err != nil {
		t.Fatalf("Draft() error: %v", err)
	}
	if d.Title != " T " {
		t.Errorf("Draft().Title = %q want %q", d.Title, " T ")
	}
	if len(d.Rows) != 2 || !d.Rows[1].Price.Equal(P(12.5)) || d.Rows[1].Date != " 2024-02-01 " {
		t.Errorf("Draft().Rows = %v", d.Rows)
	}

	for _, price := range []string{"abc", "-1", "1,5"} {
		c := Candidate{Title: "T", Description: "d", Rows: []CandidateRow{{Price: price, Date: "2024-01-01"}}}
		if _, err := c.Draft(); !errors.Is(err, ErrInvalidPrice) {
			t.Errorf("Draft() with price %q error = %v want ErrInvalidPrice", price, err)
		}
	}
}

func TestCandidateOf(t *testing.T) {
	c := CandidateOf(Seed())
	if err := Validate(c); err != nil {
		t.Errorf("Validate(CandidateOf(Seed())) = %v want nil", err)
	}
	if got, want := c.Rows[4], (CandidateRow{Price: "34000", Date: "2024-05-01"}); got != want {
		t.Errorf("CandidateOf(Seed()).Rows[4] = %v want %v", got, want)
	}
}
