package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/etnz/pricegraph"
	"gopkg.in/yaml.v3"
)

const defaultStore = "file:.pricegraph"

// Config is the global configuration, as read from a YAML file:
//
//	store: sqlite:graphs.db
//	currency: EUR
type Config struct {
	Store           string `yaml:"store"`
	Key             string `yaml:"key"`
	Currency        string `yaml:"currency"`
	LogLevel        string `yaml:"log_level"`
	MetricsTextfile string `yaml:"metrics_textfile"`
}

func defaultConfig() Config {
	return Config{Store: defaultStore, Key: pricegraph.DefaultKey, LogLevel: "warn"}
}

// LoadConfig reads a configuration file. Unknown fields are errors.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("cannot read config: %w", err)
	}
	var c Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("cannot parse config %q: %w", path, err)
	}
	return c, nil
}

// override replaces the fields of c that are set in o.
func (c *Config) override(o Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&c.Store, o.Store)
	set(&c.Key, o.Key)
	set(&c.Currency, o.Currency)
	set(&c.LogLevel, o.LogLevel)
	set(&c.MetricsTextfile, o.MetricsTextfile)
}

// resolveConfig applies, by increasing priority, the defaults, the file,
// the environment and the flags explicitly set on the command line.
func resolveConfig(file Config, getenv func(string) string, flags map[string]string) Config {
	c := defaultConfig()
	c.override(file)
	c.override(Config{Store: getenv(envStore)})
	c.override(Config{
		Store:           flags["store"],
		Key:             flags["key"],
		Currency:        flags["currency"],
		LogLevel:        flags["log-level"],
		MetricsTextfile: flags["metrics-textfile"],
	})
	return c
}
