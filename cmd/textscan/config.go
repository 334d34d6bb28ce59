package main

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/biggeezerdevelopment/textscan"
)

const (
	defaultConfigPath = "/etc/textscan/textscan.toml"
	defaultChunkSize  = 4096
	defaultColumns    = 80
)

// Config is the tool configuration. Values read from the TOML file act as
// defaults for the command line flags.
type Config struct {
	// Columns is the column budget per line. 0 means the terminal width.
	Columns int `toml:"columns"`

	// ChunkSize is the number of bytes read from the input at a time.
	ChunkSize int `toml:"chunk_size"`

	// AmbiguousWide counts East Asian ambiguous-width characters as two
	// columns.
	AmbiguousWide bool `toml:"ambiguous_wide"`

	// ScalarOnly disables the vectorized ASCII path.
	ScalarOnly bool `toml:"scalar_only"`

	LogLevel string `toml:"log_level"`
}

func DefaultConfig() *Config {
	return &Config{
		ChunkSize: defaultChunkSize,
		LogLevel:  "info",
	}
}

// UpdateFromFile populates the Config from the TOML-encoded file at the given path.
func (c *Config) UpdateFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if _, err := toml.Decode(string(data), c); err != nil {
		return fmt.Errorf("unable to decode configuration %v: %w", path, err)
	}
	return nil
}

// ToBytes encodes the config into a byte slice.
func (c *Config) ToBytes() ([]byte, error) {
	var buffer bytes.Buffer
	if err := toml.NewEncoder(&buffer).Encode(c); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func (c *Config) Validate() error {
	if c.Columns < 0 {
		return fmt.Errorf("invalid columns %d: must not be negative", c.Columns)
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("invalid chunk size %d: must be positive", c.ChunkSize)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	return nil
}

// Scanner returns a scanner with the configured width rules.
func (c *Config) Scanner() *textscan.Scanner {
	var opts []textscan.Option
	if c.AmbiguousWide {
		opts = append(opts, textscan.WithEastAsianAmbiguousWide(true))
	}
	if c.ScalarOnly {
		opts = append(opts, textscan.WithScalarOnly())
	}
	return textscan.New(opts...)
}

// ColumnBudget resolves a zero Columns to the width of the terminal on
// stdout, or 80 when stdout is not a terminal.
func (c *Config) ColumnBudget() int {
	if c.Columns > 0 {
		return c.Columns
	}

	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if width, _, err := term.GetSize(fd); err == nil && width > 0 {
			return width
		}
	}
	return defaultColumns
}

func GetConfigFromContext(c *cli.Context) (*Config, error) {
	config, ok := c.App.Metadata["config"].(*Config)
	if !ok {
		return nil, errors.New("type assertion error when accessing tool config")
	}
	return config, nil
}

func mergeConfig(config *Config, ctx *cli.Context) error {
	// Don't parse the config if the user explicitly set it to "".
	path := ctx.String("config")
	if path != "" {
		if err := config.UpdateFromFile(path); err != nil {
			if ctx.IsSet("config") || !errors.Is(err, fs.ErrNotExist) {
				return err
			}
		}
	}

	// Override options set with the CLI.
	if ctx.IsSet("columns") {
		config.Columns = ctx.Int("columns")
	}
	if ctx.IsSet("chunk-size") {
		config.ChunkSize = ctx.Int("chunk-size")
	}
	if ctx.IsSet("ambiguous-wide") {
		config.AmbiguousWide = ctx.Bool("ambiguous-wide")
	}
	if ctx.IsSet("scalar") {
		config.ScalarOnly = ctx.Bool("scalar")
	}
	if ctx.IsSet("log-level") {
		config.LogLevel = ctx.String("log-level")
	}

	return config.Validate()
}
