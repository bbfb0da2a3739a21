package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/pricegraph"
	"github.com/etnz/pricegraph/renderer"
	"github.com/google/subcommands"
)

type showCmd struct {
	chronological bool
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "display a graph, its series and its latest value" }
func (*showCmd) Usage() string {
	return `pgraph show [-chronological] <id>

  Displays the graph <id>. When no graph has this id the sample graph is
  displayed instead.

  The latest value is the price of the last row as entered. With
  -chronological rows are sorted by date first.
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.chronological, "chronological", false, "sort rows by date")
}

func (c *showCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: show expects exactly one graph id")
		return subcommands.ExitUsageError
	}
	id, err := parseID(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.close()

	var notice string
	g, err := a.repo.Get(ctx, id)
	if errors.Is(err, pricegraph.ErrNotFound) {
		g = pricegraph.Seed()
		notice = fmt.Sprintf("graph %d not found, showing the sample graph", id)
	} else if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading graph: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.chronological {
		if g, err = pricegraph.Chronological(g); err != nil {
			fmt.Fprintf(os.Stderr, "Error sorting graph %d: %v\n", id, err)
			return subcommands.ExitFailure
		}
	}

	d := renderer.NewDetail(g, a.cfg.Currency)
	d.Notice = notice
	d.Chronological = c.chronological
	printMarkdown(renderer.RenderDetail(d))
	return subcommands.ExitSuccess
}
