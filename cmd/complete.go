package cmd

import (
	"context"
	"flag"
	"os"
	"strconv"
	"strings"

	"github.com/etnz/pricegraph/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion returns the shell completion of the pgraph command line.
//
// Calling Complete on it from main answers the shell when COMP_LINE is set.
func Completion() *complete.Command {
	ids := complete.PredictFunc(predictIDs)
	rows := map[string]complete.Predictor{
		"t": predict.Something,
		"D": predict.Something,
		"r": predict.Something,
	}
	topics, _ := docs.GetAllTopics()

	return &complete.Command{
		Sub: map[string]*complete.Command{
			"list": {},
			"show": {
				Flags: map[string]complete.Predictor{"chronological": predict.Nothing},
				Args:  ids,
			},
			"add":    {Flags: rows},
			"update": {Flags: rows, Args: ids},
			"remove": {Args: ids},
			"import": {
				Flags: map[string]complete.Predictor{
					"f":      predict.Files("*.json"),
					"t":      predict.Something,
					"D":      predict.Something,
					"dates":  predict.Something,
					"prices": predict.Something,
					"graphs": predict.Nothing,
				},
			},
			"export": {Flags: map[string]complete.Predictor{"o": predict.Files("*.json")}},
			"topic":  {Args: predict.Set(topics)},
		},
		Flags: map[string]complete.Predictor{
			"store":            predict.Something,
			"key":              predict.Something,
			"currency":         predict.Set{"EUR", "USD", "GBP", "CHF", "JPY"},
			"config":           predict.Files("*.yaml"),
			"metrics-textfile": predict.Files("*.prom"),
			"log-level":        predict.Set{"debug", "info", "warn", "error"},
			"plain":            predict.Nothing,
		},
	}
}

// predictIDs completes the ids of the graphs in the configured store.
//
// Completion runs before flags are parsed, so the global flags are read from
// COMP_LINE. Local stores that do not exist yet are not created.
func predictIDs(prefix string) []string {
	ctx := context.Background()
	cfg, err := configFrom(lineFlags(os.Getenv("COMP_LINE")))
	if err != nil {
		return nil
	}
	cfg.LogLevel = "error"
	cfg.MetricsTextfile = ""
	if !storeExists(cfg.Store) {
		return nil
	}
	a, err := newApp(ctx, cfg)
	if err != nil {
		return nil
	}
	defer a.Close()

	graphs, err := a.repo.List(ctx)
	if err != nil {
		return nil
	}
	var ids []string
	for _, g := range graphs {
		if id := strconv.FormatInt(g.ID, 10); strings.HasPrefix(id, prefix) {
			ids = append(ids, id)
		}
	}
	return ids
}

// lineFlags returns the global flags typed before the subcommand in a
// command line, as "-name value" or "-name=value".
func lineFlags(line string) map[string]string {
	set := make(map[string]string)
	args := strings.Fields(line)
	if len(args) > 0 {
		args = args[1:] // program name
	}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			break // subcommand
		}
		name := strings.TrimLeft(arg, "-")
		if n, v, ok := strings.Cut(name, "="); ok {
			set[n] = v
			continue
		}
		if f := flag.Lookup(name); f != nil {
			if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
				set[name] = "true"
				continue
			}
		}
		if i+1 < len(args) {
			set[name] = args[i+1]
			i++
		}
	}
	return set
}

// storeExists reports whether dsn is a remote store, or a local one already
// on disk.
func storeExists(dsn string) bool {
	scheme, path, found := strings.Cut(dsn, ":")
	if !found {
		scheme, path = "file", dsn
	}
	switch scheme {
	case "file", "badger", "sqlite":
		_, err := os.Stat(path)
		return err == nil
	}
	return true
}
