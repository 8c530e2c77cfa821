package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is looked up in the working directory when no config path is given
const FileName = "bella.yml"

type Config struct {
	// source checked when a command isn't given -f
	Entry    string       `yaml:"entry"`
	LogLevel string       `yaml:"log_level"`
	Parser   ParserConfig `yaml:"parser"`
	Memory   MemoryConfig `yaml:"memory"`
	Output   OutputConfig `yaml:"output"`
}

type ParserConfig struct {
	// nesting bound of blocks and parenthesised expressions, must be positive
	MaxDepth int `yaml:"max_depth"`
}

type MemoryConfig struct {
	Enabled bool `yaml:"enabled"`
	// only read when Enabled is set
	CheckFunctionBodies bool `yaml:"check_function_bodies"`
}

type OutputConfig struct {
	Color bool `yaml:"color"`
	// print the ast dump after a successful check
	TraceAST bool `yaml:"trace_ast"`
}

func Default() *Config {
	return &Config{
		Entry:    "main.bla",
		LogLevel: "warn",
		Parser: ParserConfig{
			MaxDepth: 256,
		},
		Memory: MemoryConfig{
			Enabled:             true,
			CheckFunctionBodies: true,
		},
		Output: OutputConfig{
			Color: true,
		},
	}
}

var levels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// ValidationError gathers every invalid field of a config file
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// Load reads the config at path on top of the defaults. a missing file is
// not an error, the defaults are returned as is.
func Load(path string) (*Config, error) {
	if path == "" {
		path = FileName
	}

	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	cfg, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a config document, unknown keys are rejected
func Parse(r io.Reader) (*Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	if err := decoder.Decode(cfg); err != nil {
		// an empty document keeps the defaults
		if errors.Is(err, io.EOF) {
			return cfg, nil
		}
		return nil, fmt.Errorf("parse: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs ValidationError

	if strings.TrimSpace(c.Entry) == "" {
		errs.Issues = append(errs.Issues, "entry must be a non-empty path")
	}
	if _, ok := levels[strings.ToLower(c.LogLevel)]; !ok {
		errs.Issues = append(errs.Issues, fmt.Sprintf("log_level %q must be one of debug, info, warn, error", c.LogLevel))
	}
	if c.Parser.MaxDepth <= 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("parser.max_depth must be positive, got %d", c.Parser.MaxDepth))
	}

	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// Level is the slog level named by log_level
func (c *Config) Level() slog.Level {
	if level, ok := levels[strings.ToLower(c.LogLevel)]; ok {
		return level
	}
	return slog.LevelWarn
}
