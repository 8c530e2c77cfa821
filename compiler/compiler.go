package compiler

import (
	"bella/ast"
	"bella/config"
	"bella/lexer"
	"bella/memory"
	"bella/parser"
	"bella/semantics"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Result holds what every phase that ran produced
type Result struct {
	FilePath string
	Source   string
	Tokens   []lexer.Token
	Program  *ast.Program
	Symbols  *semantics.SymbolTable
	// false when memory verification is turned off
	Verified bool
}

// Compiler runs the front end phases in order, lex, parse then verify,
// stopping at the first error any of them reports.
type Compiler struct {
	Config *config.Config
	Logger *slog.Logger
}

func New(cfg *config.Config, logger *slog.Logger) *Compiler {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = NewLogger(io.Discard, cfg.Level())
	}
	return &Compiler{
		Config: cfg,
		Logger: logger,
	}
}

// NewLogger is the text logger every command writes its phase records to
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func (c *Compiler) Tokenize(filePath, src string) ([]lexer.Token, error) {
	tokens, err := lexer.NewLexer(filePath, src).Tokenize()
	if err != nil {
		c.Logger.Debug("lexing failed", "file", filePath, "error", err)
		return nil, err
	}

	c.Logger.Debug("lexed", "file", filePath, "tokens", len(tokens))
	return tokens, nil
}

// Parse lexes and parses src, leaving memory verification out
func (c *Compiler) Parse(filePath, src string) (*Result, error) {
	tokens, err := c.Tokenize(filePath, src)
	if err != nil {
		return nil, err
	}

	p := parser.NewParser(tokens, filePath)
	p.MaxDepth = c.Config.Parser.MaxDepth

	program, err := p.Parse()
	if err != nil {
		c.Logger.Debug("parsing failed", "file", filePath, "error", err)
		return nil, err
	}
	c.Logger.Debug("parsed", "file", filePath, "statements", len(program.Statements))

	return &Result{
		FilePath: filePath,
		Source:   src,
		Tokens:   tokens,
		Program:  program,
		Symbols:  p.Symbols(),
	}, nil
}

// Check runs every phase over src
func (c *Compiler) Check(filePath, src string) (*Result, error) {
	result, err := c.Parse(filePath, src)
	if err != nil {
		return nil, err
	}

	if !c.Config.Memory.Enabled {
		c.Logger.Info("memory verification disabled", "file", filePath)
		return result, nil
	}

	err = memory.Verify(
		result.Program,
		memory.WithFilePath(filePath),
		memory.WithFunctionBodies(c.Config.Memory.CheckFunctionBodies),
	)
	if err != nil {
		c.Logger.Debug("memory verification failed", "file", filePath, "error", err)
		return nil, err
	}

	result.Verified = true
	c.Logger.Debug("memory verified", "file", filePath)
	return result, nil
}

// ReadSource loads the program at path, falling back to the configured entry
func (c *Compiler) ReadSource(path string) (string, string, error) {
	if path == "" {
		path = c.Config.Entry
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("read %s: %w", path, err)
	}
	return filepath.Base(path), string(content), nil
}

func (c *Compiler) CheckFile(path string) (*Result, error) {
	name, src, err := c.ReadSource(path)
	if err != nil {
		return nil, err
	}
	return c.Check(name, src)
}
