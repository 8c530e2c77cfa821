package repl

import (
	"bella/ast"
	"bella/compiler"
	"bella/internals"
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
)

const (
	PROMPT      = `>>> `
	CONT_PROMPT = `... `
	historyFile = ".bella_history"
)

// Session accumulates lines until they form a whole program, then checks it.
// every program is checked on its own, with fresh tables.
type Session struct {
	compiler *compiler.Compiler
	pending  strings.Builder
}

func NewSession(c *compiler.Compiler) *Session {
	return &Session{compiler: c}
}

// Eval checks src as a complete program
func (s *Session) Eval(src string) (*compiler.Result, error) {
	return s.compiler.Check("<repl>", src)
}

// Pending reports whether lines are waiting for the rest of their program
func (s *Session) Pending() bool {
	return s.pending.Len() > 0
}

func (s *Session) Reset() {
	s.pending.Reset()
}

// Feed adds a line to the pending input. done is false while the input ends
// before the program does, the caller keeps feeding lines in that case.
func (s *Session) Feed(line string) (result *compiler.Result, done bool, err error) {
	if s.pending.Len() > 0 {
		s.pending.WriteByte('\n')
	}
	s.pending.WriteString(line)

	src := s.pending.String()
	if strings.TrimSpace(src) == "" {
		s.Reset()
		return nil, true, nil
	}

	result, err = s.Eval(src)
	if internals.IsIncomplete(err) {
		return nil, false, nil
	}

	s.Reset()
	return result, true, err
}

func (s *Session) report(out io.Writer, src string, result *compiler.Result, err error) {
	color := s.compiler.Config.Output.Color

	if err != nil {
		msg := internals.Snippet(err, src)
		if color {
			msg = internals.Colorize(msg)
		}
		fmt.Fprintln(out, msg)
		return
	}
	if result == nil {
		return
	}

	if s.compiler.Config.Output.TraceAST {
		fmt.Fprint(out, ast.Dump(result.Program))
	}
	if color {
		fmt.Fprintf(out, "\033[1;32mok\033[0m %s\n", result.Program.String())
	} else {
		fmt.Fprintf(out, "ok %s\n", result.Program.String())
	}
}

// Start reads programs line by line from in, used when in isn't a terminal
func Start(in io.Reader, out io.Writer, c *compiler.Compiler) {
	session := NewSession(c)
	scanner := bufio.NewScanner(in)

	for {
		if session.Pending() {
			fmt.Fprint(out, CONT_PROMPT)
		} else {
			fmt.Fprint(out, PROMPT)
		}

		if !scanner.Scan() {
			if session.Pending() {
				// the input ended mid program, report it as is
				src := session.pending.String()
				session.Reset()
				_, err := session.Eval(src)
				fmt.Fprintln(out)
				session.report(out, src, nil, err)
			}
			return
		}

		line := scanner.Text()
		src := pendingWith(session, line)
		result, done, err := session.Feed(line)
		if done {
			session.report(out, src, result, err)
		}
	}
}

func pendingWith(s *Session, line string) string {
	if s.Pending() {
		return s.pending.String() + "\n" + line
	}
	return line
}

// historyPath is false when there is no home directory to keep history in
func historyPath() (string, bool) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", false
	}
	return filepath.Join(home, historyFile), true
}

// Interactive runs the line editor on the terminal, with history kept in the
// home directory when there is one. Ctrl-C drops the pending input, Ctrl-D quits.
func Interactive(out io.Writer, c *compiler.Compiler) error {
	session := NewSession(c)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if histPath, ok := historyPath(); ok {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	for {
		prompt := PROMPT
		if session.Pending() {
			prompt = CONT_PROMPT
		}

		line, err := ln.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			session.Reset()
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			return err
		}

		if strings.TrimSpace(line) == ":quit" && !session.Pending() {
			return nil
		}

		src := pendingWith(session, line)
		result, done, err := session.Feed(line)
		if !done {
			continue
		}
		session.report(out, src, result, err)
		if strings.TrimSpace(src) != "" {
			ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
		}
	}
}
