package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/pricegraph"
	"github.com/google/subcommands"
)

type updateCmd struct {
	title       string
	description string
	rows        rowsFlag
}

func (*updateCmd) Name() string     { return "update" }
func (*updateCmd) Synopsis() string { return "edit a stored graph" }
func (*updateCmd) Usage() string {
	return `pgraph update [-t <title>] [-D <description>] [-r <price>,<date>...] <id>

  Edits the graph <id>. Omitted fields keep their stored value, rows given
  with -r replace all the stored rows. The result is validated like a new
  graph, then replaces the stored graph.

  The sample graph cannot be edited.
`
}

func (c *updateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.title, "t", "", "New graph title")
	f.StringVar(&c.description, "D", "", "New graph description, up to 30 words")
	f.Var(&c.rows, "r", "A row as <price>,<date>, repeat for each row; replaces all rows")
}

func (c *updateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: update expects exactly one graph id")
		return subcommands.ExitUsageError
	}
	id, err := parseID(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if pricegraph.IsSeed(id) {
		fmt.Fprintln(os.Stderr, "Error: the sample graph cannot be edited")
		return subcommands.ExitUsageError
	}

	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.close()

	stored, err := a.repo.Get(ctx, id)
	if errors.Is(err, pricegraph.ErrNotFound) {
		fmt.Fprintf(os.Stderr, "Error: no graph with id %d\n", id)
		return subcommands.ExitFailure
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading graph: %v\n", err)
		return subcommands.ExitFailure
	}

	// The form starts with the stored values.
	form := pricegraph.CandidateOf(stored)
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "t":
			form.Title = c.title
		case "D":
			form.Description = c.description
		case "r":
			form.Rows = c.rows
		}
	})

	d, err := draft(form)
	if err != nil {
		return reject(err)
	}
	if _, err := a.repo.Update(ctx, id, d); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving graph: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("✅ Updated graph %d.\n", id)
	return subcommands.ExitSuccess
}
