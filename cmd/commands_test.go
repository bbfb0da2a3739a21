package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/pricegraph"
	"github.com/etnz/pricegraph/kv"
	"github.com/google/go-cmp/cmp"
	"github.com/google/subcommands"
)

// firstID is the id of the first graph created at the frozen time.
const firstID = 1717243200000

// setFlag sets a global flag for the duration of the test.
func setFlag(t *testing.T, name, value string) {
	t.Helper()
	old := flag.Lookup(name).Value.String()
	if err := flag.Set(name, value); err != nil {
		t.Fatalf("flag.Set(%q, %q) error: %v", name, value, err)
	}
	t.Cleanup(func() { flag.Set(name, old) })
}

// useStore points the commands to a new file store and returns a repository
// to inspect it.
func useStore(t *testing.T) *pricegraph.Repository {
	t.Helper()
	t.Setenv(envStore, "")
	t.Setenv(envConfig, "")
	t.Setenv(envTestingNow, "2024-06-01 12:00:00")
	dir := t.TempDir()
	setFlag(t, "store", "file:"+dir)
	store, err := kv.NewFile(dir)
	if err != nil {
		t.Fatal(err)
	}
	return pricegraph.NewRepository(store)
}

// run executes c as if called with args.
func run(t *testing.T, c subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("%s: invalid arguments %q: %v", c.Name(), args, err)
	}
	return c.Execute(context.Background(), f)
}

func persisted(t *testing.T, repo *pricegraph.Repository) []pricegraph.Graph {
	t.Helper()
	graphs, err := repo.Persisted(context.Background())
	if err != nil {
		t.Fatalf("Persisted() error: %v", err)
	}
	return graphs
}

func dp(price float64, on string) pricegraph.DataPoint {
	return pricegraph.DataPoint{Price: pricegraph.P(price), Date: on}
}

// stderr returns what f writes to os.Stderr.
func stderr(t *testing.T, f func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	old := os.Stderr
	os.Stderr = w
	defer func() { os.Stderr = old }()
	f()
	w.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	return string(out)
}

func TestReject(t *testing.T) {
	err := fmt.Errorf("graph #2: %w", pricegraph.ErrMissingField)
	var status subcommands.ExitStatus
	got := stderr(t, func() { status = reject(err) })
	if want := "Error: graph #2: " + pricegraph.ErrMissingField.Error() + "\n"; got != want {
		t.Errorf("reject() wrote %q want %q", got, want)
	}
	if status != subcommands.ExitUsageError {
		t.Errorf("reject() = %v want usage error", status)
	}
}

func TestAdd(t *testing.T) {
	repo := useStore(t)
	status := run(t, &addCmd{}, "-t", "Gold", "-D", "Troy ounce", "-r", "2250,2024-03-01", "-r", "2300.5,2024-4-1")
	if status != subcommands.ExitSuccess {
		t.Fatalf("add = %v want success", status)
	}
	want := []pricegraph.Graph{{
		ID:          firstID,
		Title:       "Gold",
		Description: "Troy ounce",
		Rows:        []pricegraph.DataPoint{dp(2250, "2024-03-01"), dp(2300.5, "2024-04-01")},
	}}
	if diff := cmp.Diff(want, persisted(t, repo)); diff != "" {
		t.Errorf("stored graphs mismatch (-want +got):\n%s", diff)
	}

	// Same frozen time, the next id is free.
	run(t, &addCmd{}, "-t", "Silver", "-D", "Troy ounce", "-r", "27,2024-03-01")
	if got := persisted(t, repo); len(got) != 2 || got[1].ID != firstID+1 {
		t.Errorf("second graph = %v want id %d", got, int64(firstID+1))
	}
}

func TestAddInvalid(t *testing.T) {
	repo := useStore(t)
	tests := []struct {
		name string
		args []string
	}{
		{"no title", []string{"-D", "d", "-r", "1,2024-01-01"}},
		{"no rows", []string{"-t", "T", "-D", "d"}},
		{"empty price", []string{"-t", "T", "-D", "d", "-r", ",2024-01-01"}},
		{"negative price", []string{"-t", "T", "-D", "d", "-r", "-1,2024-01-01"}},
		{"long description", []string{"-t", "T", "-D", strings.Repeat("word ", 31), "-r", "1,2024-01-01"}},
		{"arguments", []string{"-t", "T", "-D", "d", "-r", "1,2024-01-01", "extra"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if status := run(t, &addCmd{}, tt.args...); status != subcommands.ExitUsageError {
				t.Errorf("add %q = %v want usage error", tt.args, status)
			}
		})
	}
	if got := persisted(t, repo); len(got) != 0 {
		t.Errorf("invalid graphs were stored: %v", got)
	}
}

func TestUpdate(t *testing.T) {
	repo := useStore(t)
	run(t, &addCmd{}, "-t", "Gold", "-D", "Troy ounce", "-r", "2250,2024-03-01")
	id := "1717243200000"

	// Omitted fields keep their value.
	if status := run(t, &updateCmd{}, "-t", "Gold spot", id); status != subcommands.ExitSuccess {
		t.Fatalf("update = %v want success", status)
	}
	want := pricegraph.Graph{ID: firstID, Title: "Gold spot", Description: "Troy ounce", Rows: []pricegraph.DataPoint{dp(2250, "2024-03-01")}}
	if diff := cmp.Diff([]pricegraph.Graph{want}, persisted(t, repo)); diff != "" {
		t.Errorf("after update (-want +got):\n%s", diff)
	}

	// Rows are replaced all at once.
	run(t, &updateCmd{}, "-r", "1,2024-01-01", "-r", "2,2024-01-02", id)
	want.Rows = []pricegraph.DataPoint{dp(1, "2024-01-01"), dp(2, "2024-01-02")}
	if diff := cmp.Diff([]pricegraph.Graph{want}, persisted(t, repo)); diff != "" {
		t.Errorf("after rows update (-want +got):\n%s", diff)
	}

	// An invalid edit changes nothing.
	if status := run(t, &updateCmd{}, "-D", "", id); status != subcommands.ExitUsageError {
		t.Errorf("update with empty description = %v want usage error", status)
	}
	if diff := cmp.Diff([]pricegraph.Graph{want}, persisted(t, repo)); diff != "" {
		t.Errorf("after invalid update (-want +got):\n%s", diff)
	}
}

func TestUpdateErrors(t *testing.T) {
	useStore(t)
	tests := []struct {
		args []string
		want subcommands.ExitStatus
	}{
		{[]string{"-t", "x", "9999999999999"}, subcommands.ExitUsageError},
		{[]string{"-t", "x", "42"}, subcommands.ExitFailure},
		{[]string{"-t", "x", "abc"}, subcommands.ExitUsageError},
		{[]string{"-t", "x"}, subcommands.ExitUsageError},
	}
	for _, tt := range tests {
		if got := run(t, &updateCmd{}, tt.args...); got != tt.want {
			t.Errorf("update %q = %v want %v", tt.args, got, tt.want)
		}
	}
}

func TestRemove(t *testing.T) {
	repo := useStore(t)
	run(t, &addCmd{}, "-t", "Gold", "-D", "Troy ounce", "-r", "2250,2024-03-01")
	run(t, &addCmd{}, "-t", "Silver", "-D", "Troy ounce", "-r", "27,2024-03-01")

	if status := run(t, &removeCmd{}, "1717243200000", "42"); status != subcommands.ExitSuccess {
		t.Fatalf("remove = %v want success", status)
	}
	if got := persisted(t, repo); len(got) != 1 || got[0].Title != "Silver" {
		t.Errorf("after remove = %v want [Silver]", got)
	}
	if status := run(t, &removeCmd{}, "9999999999999"); status != subcommands.ExitUsageError {
		t.Errorf("remove sample = %v want usage error", status)
	}
	if status := run(t, &removeCmd{}); status != subcommands.ExitUsageError {
		t.Errorf("remove without id = %v want usage error", status)
	}
}

func TestImportRows(t *testing.T) {
	repo := useStore(t)
	file := filepath.Join(t.TempDir(), "quotes.json")
	doc := `{"data":[{"day":"2024-01-01","close":100.1},{"day":"2024-01-02","close":101}]}`
	if err := os.WriteFile(file, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}
	status := run(t, &importCmd{}, "-f", file, "-t", "ACME", "-D", "daily close", "-dates", "$.data[*].day", "-prices", "$.data[*].close")
	if status != subcommands.ExitSuccess {
		t.Fatalf("import = %v want success", status)
	}
	want := []pricegraph.Graph{{
		ID:          firstID,
		Title:       "ACME",
		Description: "daily close",
		Rows:        []pricegraph.DataPoint{dp(100.1, "2024-01-01"), dp(101, "2024-01-02")},
	}}
	if diff := cmp.Diff(want, persisted(t, repo)); diff != "" {
		t.Errorf("imported graphs mismatch (-want +got):\n%s", diff)
	}

	// The title is required as for any new graph.
	status = run(t, &importCmd{}, "-f", file, "-D", "daily close", "-dates", "$.data[*].day", "-prices", "$.data[*].close")
	if status != subcommands.ExitUsageError {
		t.Errorf("import without title = %v want usage error", status)
	}
	if status := run(t, &importCmd{}, "-f", file); status != subcommands.ExitUsageError {
		t.Errorf("import without paths = %v want usage error", status)
	}
}

func TestExportImportGraphs(t *testing.T) {
	source := useStore(t)
	run(t, &addCmd{}, "-t", "Gold", "-D", "Troy ounce", "-r", "2250,2024-03-01")
	run(t, &addCmd{}, "-t", "Silver", "-D", "Troy ounce", "-r", "27,2024-03-01", "-r", "28,2024-04-01")
	file := filepath.Join(t.TempDir(), "graphs.json")
	if status := run(t, &exportCmd{}, "-o", file); status != subcommands.ExitSuccess {
		t.Fatalf("export = %v want success", status)
	}

	target := useStore(t)
	if status := run(t, &importCmd{}, "-graphs", "-f", file); status != subcommands.ExitSuccess {
		t.Fatalf("import -graphs = %v want success", status)
	}
	if diff := cmp.Diff(persisted(t, source), persisted(t, target)); diff != "" {
		t.Errorf("imported graphs mismatch (-want +got):\n%s", diff)
	}
}

func TestImportGraphsInvalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing price", `[{"id":1,"title":"T","description":"d","rows":[{"price":1,"date":"2024-01-01"},{"date":"2024-02-01"}]}]`},
		{"missing date", `[{"id":1,"title":"T","description":"d","rows":[{"price":1}]}]`},
		{"negative price", `[{"id":1,"title":"Neg","description":"d","rows":[{"price":-5,"date":"2024-01-01"}]}]`},
		{"no rows", `[{"id":1,"title":"T","description":"d","rows":[]}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := useStore(t)
			file := filepath.Join(t.TempDir(), "graphs.json")
			if err := os.WriteFile(file, []byte(tt.doc), 0644); err != nil {
				t.Fatal(err)
			}
			if status := run(t, &importCmd{}, "-graphs", "-f", file); status != subcommands.ExitUsageError {
				t.Errorf("import -graphs = %v want usage error", status)
			}
			if got := persisted(t, repo); len(got) != 0 {
				t.Errorf("invalid graphs were stored: %v", got)
			}
		})
	}
}

func TestShowAndList(t *testing.T) {
	useStore(t)
	run(t, &addCmd{}, "-t", "Gold", "-D", "Troy ounce", "-r", "2300,2024-04-01", "-r", "2250,2024-03-01")
	tests := []struct {
		c    subcommands.Command
		args []string
		want subcommands.ExitStatus
	}{
		{&listCmd{}, nil, subcommands.ExitSuccess},
		{&showCmd{}, []string{"1717243200000"}, subcommands.ExitSuccess},
		{&showCmd{}, []string{"-chronological", "1717243200000"}, subcommands.ExitSuccess},
		{&showCmd{}, []string{"9999999999999"}, subcommands.ExitSuccess},
		{&showCmd{}, []string{"42"}, subcommands.ExitSuccess}, // falls back to the sample
		{&showCmd{}, nil, subcommands.ExitUsageError},
		{&showCmd{}, []string{"abc"}, subcommands.ExitUsageError},
	}
	for _, tt := range tests {
		if got := run(t, tt.c, tt.args...); got != tt.want {
			t.Errorf("%s %q = %v want %v", tt.c.Name(), tt.args, got, tt.want)
		}
	}
}

func TestInvalidCurrency(t *testing.T) {
	useStore(t)
	setFlag(t, "currency", "XYZ")
	if got := run(t, &listCmd{}); got != subcommands.ExitFailure {
		t.Errorf("list with unknown currency = %v want failure", got)
	}
}

func TestMetricsTextfile(t *testing.T) {
	useStore(t)
	file := filepath.Join(t.TempDir(), "pgraph.prom")
	setFlag(t, "metrics-textfile", file)
	run(t, &addCmd{}, "-t", "Gold", "-D", "Troy ounce", "-r", "2250,2024-03-01")

	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("metrics file not written: %v", err)
	}
	for _, want := range []string{
		`pricegraph_kv_operations_total{op="get",result="not_found"} 1`,
		`pricegraph_kv_operations_total{op="set",result="ok"} 1`,
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("metrics file does not contain %q:\n%s", want, data)
		}
	}
}
