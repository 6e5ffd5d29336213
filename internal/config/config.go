// Package config loads ftsearch CLI settings from a YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides: FTSEARCH_DSN, FTSEARCH_SEARCH_TABLE...
const EnvPrefix = "FTSEARCH"

// Config is the CLI configuration.
type Config struct {
	Driver   string        `mapstructure:"driver"`
	DSN      string        `mapstructure:"dsn"`
	Database Database      `mapstructure:"database"`
	Models   []ModelConfig `mapstructure:"models"`
	Search   SearchConfig  `mapstructure:"search"`
}

// Database holds connection parts used when DSN is empty.
type Database struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
}

// ModelConfig describes one table the CLI can query.
type ModelConfig struct {
	Table      string           `mapstructure:"table"`
	PrimaryKey string           `mapstructure:"primary_key"`
	Columns    []string         `mapstructure:"columns"`
	Fulltext   []string         `mapstructure:"fulltext"`
	Relations  []RelationConfig `mapstructure:"relations"`
}

// RelationConfig describes a foreign key from a model to another table.
type RelationConfig struct {
	Name      string `mapstructure:"name"`
	Column    string `mapstructure:"column"`
	Ref       string `mapstructure:"ref"`
	RefColumn string `mapstructure:"ref_column"`
}

// SearchConfig holds search defaults.
type SearchConfig struct {
	Table  string   `mapstructure:"table"`
	Fields []string `mapstructure:"fields"`
	Mode   string   `mapstructure:"mode"`
	Limit  int      `mapstructure:"limit"`
}

// Load reads path, or ./ftsearch.yaml when path is empty and the file
// exists, then applies FTSEARCH_* environment overrides.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetDefault("driver", "mysql")
	v.SetDefault("dsn", "")
	v.SetDefault("database.host", "127.0.0.1")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "")
	v.SetDefault("search.table", "")
	v.SetDefault("search.fields", []string{})
	v.SetDefault("search.mode", "auto")
	v.SetDefault("search.limit", 0)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("ftsearch")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}

// Validate checks the parts every command needs.
func (c Config) Validate() error {
	if len(c.Models) == 0 {
		return errors.New("config: no models")
	}
	if c.Search.Table == "" {
		return errors.New("config: search.table is required")
	}
	if _, ok := c.Model(c.Search.Table); !ok {
		return fmt.Errorf("config: search.table %q is not a configured model", c.Search.Table)
	}
	for _, m := range c.Models {
		if m.Table == "" || len(m.Columns) == 0 {
			return fmt.Errorf("config: model %q needs a table and columns", m.Table)
		}
	}
	return nil
}

// Model returns the configured model for table.
func (c Config) Model(table string) (ModelConfig, bool) {
	for _, m := range c.Models {
		if m.Table == table {
			return m, true
		}
	}
	return ModelConfig{}, false
}
