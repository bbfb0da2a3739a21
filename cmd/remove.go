package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/pricegraph"
	"github.com/google/subcommands"
)

type removeCmd struct{}

func (*removeCmd) Name() string     { return "remove" }
func (*removeCmd) Synopsis() string { return "delete stored graphs" }
func (*removeCmd) Usage() string {
	return `pgraph remove <id>...

  Deletes the given graphs. Unknown ids are ignored, the sample graph cannot
  be removed.
`
}

func (c *removeCmd) SetFlags(f *flag.FlagSet) {}

func (c *removeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: remove expects at least one graph id")
		return subcommands.ExitUsageError
	}
	ids := make([]int64, 0, f.NArg())
	for _, arg := range f.Args() {
		id, err := parseID(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		if pricegraph.IsSeed(id) {
			fmt.Fprintln(os.Stderr, "Error: the sample graph cannot be removed")
			return subcommands.ExitUsageError
		}
		ids = append(ids, id)
	}

	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.close()

	for _, id := range ids {
		if err := a.repo.Remove(ctx, id); err != nil {
			fmt.Fprintf(os.Stderr, "Error removing graph %d: %v\n", id, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("🗑️ Removed graph %d.\n", id)
	}
	return subcommands.ExitSuccess
}
