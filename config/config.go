package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/siherrmann/ranker/helper"
	"github.com/siherrmann/ranker/model"
	"gopkg.in/yaml.v3"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config is the server configuration
type Config struct {
	LogLevel string      `yaml:"log_level"`
	HTTP     HTTPConfig  `yaml:"http"`
	Rank     RankConfig  `yaml:"rank"`
	Graphs   []GraphSpec `yaml:"graphs"`
}

// HTTPConfig configures the HTTP listener
type HTTPConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// RankConfig configures the rank engine of every graph
type RankConfig struct {
	MaxDepth int `yaml:"max_depth"`
	Workers  int `yaml:"workers"`
}

// GraphSpec describes one served graph.
// Memory graphs are loaded from File, Postgres graphs use the RANKER_DB_* environment with Schema.
type GraphSpec struct {
	Name    string `yaml:"name"`
	Storage string `yaml:"storage"`
	File    string `yaml:"file"`
	Schema  string `yaml:"schema"`
}

// Load reads a YAML configuration file, applies defaults and validates it
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, helper.NewError("read config", err)
	}

	config := &Config{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, helper.NewError("parse config", err)
	}

	config.ApplyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Default returns a configuration without graphs and with all defaults applied
func Default() *Config {
	config := &Config{}
	config.ApplyDefaults()
	return config
}

// ApplyDefaults fills every unset value
func (c *Config) ApplyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}

	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8080"
	}
	if c.HTTP.ReadTimeout <= 0 {
		c.HTTP.ReadTimeout = 30 * time.Second
	}
	if c.HTTP.WriteTimeout <= 0 {
		c.HTTP.WriteTimeout = 60 * time.Second
	}
	if c.HTTP.ShutdownTimeout <= 0 {
		c.HTTP.ShutdownTimeout = 10 * time.Second
	}

	if c.Rank.MaxDepth <= 0 {
		c.Rank.MaxDepth = model.DefaultMaxDepth
	}
	if c.Rank.Workers <= 0 {
		c.Rank.Workers = 1
	}

	for i := range c.Graphs {
		if c.Graphs[i].Storage == "" {
			c.Graphs[i].Storage = StorageMemory
		}
		c.Graphs[i].Storage = strings.ToLower(c.Graphs[i].Storage)
	}
}

// Validate checks the configuration after defaults are applied
func (c *Config) Validate() error {
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}

	seen := make(map[string]bool, len(c.Graphs))
	for i, g := range c.Graphs {
		if g.Name == "" {
			return helper.InvalidArgument("graph %d has no name", i)
		}
		if seen[g.Name] {
			return helper.InvalidArgument("graph '%s' is configured twice", g.Name)
		}
		seen[g.Name] = true

		switch g.Storage {
		case StorageMemory:
			if g.File == "" {
				return helper.InvalidArgument("memory graph '%s' needs a file", g.Name)
			}
		case StoragePostgres:
		default:
			return helper.InvalidArgument("graph '%s' has unknown storage '%s'", g.Name, g.Storage)
		}
	}

	return nil
}

// Level returns the configured log level, info if it can't be parsed
func (c *Config) Level() slog.Level {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// ParseLevel parses debug, info, warn or error
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, helper.InvalidArgument("unknown log level '%s'", s)
	}
	return level, nil
}

// Graph returns the graph with the given name
func (c *Config) Graph(name string) (GraphSpec, error) {
	for _, g := range c.Graphs {
		if g.Name == name {
			return g, nil
		}
	}
	return GraphSpec{}, helper.NotFound("graph '%s'", name)
}

func (g GraphSpec) String() string {
	return fmt.Sprintf("%s (%s)", g.Name, g.Storage)
}
