package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nalgeon/be"
)

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	be.Err(t, err, nil)
	be.Equal(t, *cfg, *Default())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	content := `entry: src/prog.bla
log_level: debug
parser:
  max_depth: 32
memory:
  check_function_bodies: false
output:
  color: false
  trace_ast: true
`
	be.Err(t, os.WriteFile(path, []byte(content), 0o644), nil)

	cfg, err := Load(path)
	be.Err(t, err, nil)
	be.Equal(t, cfg.Entry, "src/prog.bla")
	be.Equal(t, cfg.Level(), slog.LevelDebug)
	be.Equal(t, cfg.Parser.MaxDepth, 32)
	be.Equal(t, cfg.Memory.CheckFunctionBodies, false)
	// untouched keys keep their defaults
	be.Equal(t, cfg.Memory.Enabled, true)
	be.Equal(t, cfg.Output.Color, false)
	be.Equal(t, cfg.Output.TraceAST, true)
}

func TestParseEmptyDocument(t *testing.T) {
	cfg, err := Parse(strings.NewReader(""))
	be.Err(t, err, nil)
	be.Equal(t, *cfg, *Default())
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse(strings.NewReader("entry: a.bla\nverbose: true\n"))
	be.Err(t, err, "field verbose not found")
}

func TestParseValidation(t *testing.T) {
	_, err := Parse(strings.NewReader("entry: \"\"\nlog_level: loud\nparser:\n  max_depth: -1\n"))
	be.Err(t, err, "entry must be a non-empty path")

	var verr *ValidationError
	be.True(t, errors.As(err, &verr))
	be.Equal(t, len(verr.Issues), 3)
	be.True(t, strings.Contains(verr.Issues[1], "log_level"))
	be.True(t, strings.Contains(verr.Issues[2], "parser.max_depth"))
}

func TestParseRejectsUnboundedDepth(t *testing.T) {
	_, err := Parse(strings.NewReader("parser:\n  max_depth: 0\n"))
	be.Err(t, err, "parser.max_depth must be positive, got 0")
}

func TestParseLeavesMemorySwitchesAlone(t *testing.T) {
	cfg, err := Parse(strings.NewReader("memory:\n  enabled: false\n"))
	be.Err(t, err, nil)
	be.Equal(t, cfg.Memory.Enabled, false)
	be.Equal(t, cfg.Memory.CheckFunctionBodies, true)
}
