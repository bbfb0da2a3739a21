package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/pricegraph"
	"github.com/google/subcommands"
)

type importCmd struct {
	file        string
	title       string
	description string
	dates       string
	prices      string
	graphs      bool
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "create graphs out of JSON documents" }
func (*importCmd) Usage() string {
	return `pgraph import -f <file> -t <title> -D <description> -dates <jsonpath> -prices <jsonpath>
pgraph import -f <file> -graphs

  The first form creates one graph whose rows are read from any JSON
  document: -dates and -prices are JSONPath expressions selecting the same
  number of values, for instance '$.data[*].day' and '$.data[*].close'.

  The second form creates again all the graphs of a file written by
  'pgraph export'. They get new ids.

  Use -f - to read from stdin. See 'pgraph topic import'.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.file, "f", "-", "JSON file to read, - for stdin")
	f.StringVar(&c.title, "t", "", "Title of the new graph")
	f.StringVar(&c.description, "D", "", "Description of the new graph")
	f.StringVar(&c.dates, "dates", "", "JSONPath selecting the dates")
	f.StringVar(&c.prices, "prices", "", "JSONPath selecting the prices")
	f.BoolVar(&c.graphs, "graphs", false, "Read a file written by 'pgraph export'")
}

func (c *importCmd) open() (io.ReadCloser, error) {
	if c.file == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(c.file)
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.graphs && (c.dates == "" || c.prices == "") {
		fmt.Fprintln(os.Stderr, "Error: either -graphs or both -dates and -prices are required")
		return subcommands.ExitUsageError
	}

	r, err := c.open()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening %q: %v\n", c.file, err)
		return subcommands.ExitFailure
	}
	defer r.Close()

	var drafts []pricegraph.Draft
	if c.graphs {
		candidates, err := pricegraph.ImportGraphs(r)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		// Exported graphs are checked like typed ones.
		for i, cand := range candidates {
			d, err := draft(cand)
			if err != nil {
				return reject(fmt.Errorf("graph #%d: %w", i+1, err))
			}
			drafts = append(drafts, d)
		}
	} else {
		doc, err := pricegraph.DecodeJSON(r)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		rows, err := pricegraph.ImportRows(doc, c.dates, c.prices)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		d, err := draft(pricegraph.Candidate{Title: c.title, Description: c.description, Rows: rows})
		if err != nil {
			return reject(err)
		}
		drafts = append(drafts, d)
	}

	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer a.close()

	for _, d := range drafts {
		g, err := a.repo.Create(ctx, d)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error saving graph: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Printf("✅ Created graph %d %q with %d rows.\n", g.ID, g.Title, len(g.Rows))
	}
	return subcommands.ExitSuccess
}
