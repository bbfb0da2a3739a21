package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/pricegraph/renderer"
	"github.com/google/subcommands"
)

type listCmd struct{}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list all graphs with their latest price" }
func (*listCmd) Usage() string {
	return `pgraph list

  Lists the sample graph followed by the stored graphs, in creation order.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {}

func (c *listCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.close()

	graphs, err := a.repo.List(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading graphs: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RenderListing(renderer.NewListing(graphs, a.cfg.Currency)))
	return subcommands.ExitSuccess
}
