package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/pricegraph"
	"github.com/google/subcommands"
)

type addCmd struct {
	title       string
	description string
	rows        rowsFlag
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "create a new graph" }
func (*addCmd) Usage() string {
	return `pgraph add -t <title> -D <description> -r <price>,<date> [-r <price>,<date>...]

  Creates a new graph. All fields are required, the description is limited to
  30 words, prices are non-negative numbers and dates are YYYY-MM-DD.

  Rows are kept in the order they are given.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.title, "t", "", "Graph title (required)")
	f.StringVar(&c.description, "D", "", "Graph description, up to 30 words (required)")
	f.Var(&c.rows, "r", "A row as <price>,<date>, repeat for each row (required)")
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 0 {
		fmt.Fprintf(os.Stderr, "Error: unexpected arguments %q\n", f.Args())
		return subcommands.ExitUsageError
	}
	d, err := draft(pricegraph.Candidate{Title: c.title, Description: c.description, Rows: c.rows})
	if err != nil {
		return reject(err)
	}

	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.close()

	g, err := a.repo.Create(ctx, d)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error saving graph: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("✅ Created graph %d %q.\n", g.ID, g.Title)
	return subcommands.ExitSuccess
}
