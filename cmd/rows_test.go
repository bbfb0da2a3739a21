package cmd

import (
	"flag"
	"testing"

	"github.com/etnz/pricegraph"
	"github.com/google/go-cmp/cmp"
)

func TestRowsFlag(t *testing.T) {
	var rows rowsFlag
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	f.Var(&rows, "r", "")
	if err := f.Parse([]string{"-r", "30000,2024-01-01", "-r", " 12.5 , 2024-2-3", "-r", ",2024-03-01", "-r", "7,"}); err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	want := rowsFlag{
		{Price: "30000", Date: "2024-01-01"},
		{Price: "12.5", Date: "2024-02-03"},
		{Price: "", Date: "2024-03-01"},
		{Price: "7", Date: ""},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
	head := rows[:2]
	if got := head.String(); got != "30000,2024-01-01 12.5,2024-02-03" {
		t.Errorf("String() = %q", got)
	}
}

func TestRowsFlagErrors(t *testing.T) {
	for _, v := range []string{"30000", "30000,yesterday", "1,2024-13-01"} {
		var rows rowsFlag
		if err := rows.Set(v); err == nil {
			t.Errorf("Set(%q) succeeded want error", v)
		}
	}
}

func TestParseID(t *testing.T) {
	if id, err := parseID("9999999999999"); err != nil || id != pricegraph.SeedID {
		t.Errorf("parseID() = %d, %v want %d", id, err, pricegraph.SeedID)
	}
	if _, err := parseID("abc"); err == nil {
		t.Error("parseID(abc) succeeded want error")
	}
}
