// Package cmd implements the CLI application to manage price graphs.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/etnz/pricegraph"
	"github.com/etnz/pricegraph/kv"
	"github.com/etnz/pricegraph/renderer"
	"github.com/google/subcommands"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&listCmd{}, "graphs")
	c.Register(&showCmd{}, "graphs")
	c.Register(&addCmd{}, "graphs")
	c.Register(&updateCmd{}, "graphs")
	c.Register(&removeCmd{}, "graphs")

	c.Register(&importCmd{}, "exchange")
	c.Register(&exportCmd{}, "exchange")

	c.Register(&topicCmd{}, "help")
}

const (
	envStore  = "PRICEGRAPH_STORE"
	envConfig = "PRICEGRAPH_CONFIG"
	// envTestingNow freezes the clock, in time.DateTime format, so that
	// generated ids are reproducible.
	envTestingNow = "PRICEGRAPH_TESTING_NOW"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var storeDSN = flag.String("store", defaultStore, "Key-value store holding the graphs, see 'pgraph topic storage'")
var storeKey = flag.String("key", pricegraph.DefaultKey, "Key of the store under which graphs are saved")
var currency = flag.String("currency", "", "Currency code used to display prices (e.g. EUR), plain numbers if empty")
var configFile = flag.String("config", "", "Path to a YAML configuration file (default $"+envConfig+")")
var metricsTextfile = flag.String("metrics-textfile", "", "Write store metrics to this file on exit, in the Prometheus text format")
var logLevel = flag.String("log-level", "warn", "Minimum level of the logs written to stderr: debug, info, warn or error")
var plainOutput = flag.Bool("plain", false, "Print markdown as is, without terminal rendering")

// now is the application clock.
func now() time.Time {
	if v := os.Getenv(envTestingNow); v != "" {
		if t, err := time.Parse(time.DateTime, v); err == nil {
			return t
		}
	}
	return time.Now()
}

// globalConfig merges the configuration file, the environment and the
// global flags that were explicitly set.
func globalConfig() (Config, error) {
	set := make(map[string]string)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = f.Value.String() })
	return configFrom(set)
}

// configFrom is globalConfig for the flags in set.
func configFrom(set map[string]string) (Config, error) {
	path := set["config"]
	if path == "" {
		path = os.Getenv(envConfig)
	}
	var file Config
	if path != "" {
		var err error
		if file, err = LoadConfig(path); err != nil {
			return Config{}, err
		}
	}
	return resolveConfig(file, os.Getenv, set), nil
}

// newLogger returns a console logger on stderr.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.DisableCaller = true
	zc.DisableStacktrace = true
	zc.EncoderConfig.TimeKey = ""
	return zc.Build()
}

// app holds what a command needs to work on graphs.
type app struct {
	cfg      Config
	logger   *zap.Logger
	registry *prometheus.Registry
	store    kv.Store
	repo     *pricegraph.Repository
}

// openApp opens the store named by the global configuration.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := globalConfig()
	if err != nil {
		return nil, err
	}
	return newApp(ctx, cfg)
}

func newApp(ctx context.Context, cfg Config) (*app, error) {
	if !renderer.ValidCurrency(cfg.Currency) {
		return nil, fmt.Errorf("unknown currency %q", cfg.Currency)
	}
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	store, err := kv.Open(ctx, cfg.Store, logger)
	if err != nil {
		return nil, fmt.Errorf("cannot open store %q: %w", cfg.Store, err)
	}
	logger.Debug("store opened", zap.String("store", cfg.Store), zap.String("key", cfg.Key))

	registry := prometheus.NewRegistry()
	store = kv.Instrument(store, kv.NewMetrics(registry))
	repo := pricegraph.NewRepository(store,
		pricegraph.WithIDGenerator(&pricegraph.ClockIDs{Now: now}),
		pricegraph.WithLogger(logger),
		pricegraph.WithKey(cfg.Key),
	)
	return &app{cfg: cfg, logger: logger, registry: registry, store: store, repo: repo}, nil
}

// Close closes the store and writes the metrics file if configured.
func (a *app) Close() error {
	err := a.store.Close()
	if a.cfg.MetricsTextfile != "" {
		if werr := prometheus.WriteToTextfile(a.cfg.MetricsTextfile, a.registry); werr != nil {
			err = errors.Join(err, fmt.Errorf("cannot write metrics: %w", werr))
		}
	}
	_ = a.logger.Sync() // fails on some terminals, nothing to do about it
	return err
}

// close is Close for defer statements.
func (a *app) close() {
	if err := a.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error closing store: %v\n", err)
	}
}

// reject reports an invalid user input.
func reject(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return subcommands.ExitUsageError
}
