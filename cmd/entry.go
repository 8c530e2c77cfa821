package cmd

import (
	"bella/ast"
	"bella/compiler"
	"bella/config"
	"bella/internals"
	"bella/repl"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
)

type (
	// CommandFunc returns the process exit code
	CommandFunc func(args []string) int

	FlagInfo struct {
		Name        string
		Description string
	}

	CommandInfo struct {
		Description string
		Function    CommandFunc
		Flags       []FlagInfo
	}
)

var (
	commands map[string]CommandInfo

	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

var (
	fileFlag   = FlagInfo{Name: "-f", Description: "program file path, defaults to the entry of the config"}
	configFlag = FlagInfo{Name: "-c", Description: "config file path, defaults to " + config.FileName}
)

func init() {
	commands = map[string]CommandInfo{
		"check": {
			Description: "Lexes, parses and verifies the memory safety of a program",
			Function:    Check,
			Flags:       []FlagInfo{fileFlag, configFlag},
		},
		"ast": {
			Description: "Prints the syntax tree of a program",
			Function:    Ast,
			Flags:       []FlagInfo{fileFlag, configFlag},
		},
		"tokens": {
			Description: "Prints the tokens of a program",
			Function:    Tokens,
			Flags:       []FlagInfo{fileFlag, configFlag},
		},
		"repl": {
			Description: "Checks programs typed in one after the other",
			Function:    Repl,
			Flags:       []FlagInfo{configFlag},
		},
		"help": {
			Description: "Prints the usage of all commands",
			Function:    Help,
			Flags:       []FlagInfo{},
		},
	}
}

func Help(args []string) int {
	if len(args) < 1 {
		// show the whole help catalog, in a stable order
		names := make([]string, 0, len(commands))
		for name := range commands {
			names = append(names, name)
		}
		sort.Strings(names)

		printResult := "\n\033[1;35mSupported Commands:\033[0m\n\n"

		for _, name := range names {
			cmd := commands[name]
			printResult += fmt.Sprintf("  \033[1;36m%v\033[0m\n", name)
			printResult += fmt.Sprintf("    \033[1;37mDescription:\033[0m \033[0;37m%v\033[0m\n", cmd.Description)

			if len(cmd.Flags) > 0 {
				printResult += "    \033[1;37mFlags:\033[0m\n"
				for _, fl := range cmd.Flags {
					printResult += fmt.Sprintf("      \033[1;33m%v\033[0m - \033[0;37m%v\033[0m\n", fl.Name, fl.Description)
				}
			}
			printResult += "\n"
		}

		fmt.Fprintln(stdout, printResult)
		return 0
	}

	// print the help of the specified command
	cmdName := args[0]

	cmd, ok := commands[cmdName]
	if !ok {
		fmt.Fprintln(stderr, "ERROR: provided command, isn't supported")
		return 1
	}

	printResult := fmt.Sprintf("\n\033[1;35mCommand:\033[0m \033[1;36m%v\033[0m\n", cmdName)
	printResult += fmt.Sprintf("\033[1;37mDescription:\033[0m \033[0;37m%v\033[0m\n", cmd.Description)

	if len(cmd.Flags) > 0 {
		printResult += fmt.Sprintln("\033[1;37mFlags:\033[0m")
		for _, fl := range cmd.Flags {
			printResult += fmt.Sprintf("  \033[1;33m%v\033[0m - \033[0;37m%v\033[0m\n", fl.Name, fl.Description)
		}
	} else {
		printResult += "\033[0;37m(No flags available)\033[0m\n"
	}

	fmt.Fprintln(stdout, printResult)
	return 0
}

type options struct {
	file   string
	config string
}

func parseFlags(name string, args []string) (*options, error) {
	opts := &options{}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&opts.file, "f", "", fileFlag.Description)
	fs.StringVar(&opts.config, "c", "", configFlag.Description)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected argument %q, check help %s", fs.Arg(0), name)
	}
	return opts, nil
}

// setup parses the flags and builds the compiler every command runs on
func setup(name string, args []string) (*options, *compiler.Compiler, bool) {
	opts, err := parseFlags(name, args)
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return nil, nil, false
	}

	cfg, err := config.Load(opts.config)
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return nil, nil, false
	}

	logger := compiler.NewLogger(stderr, cfg.Level())
	return opts, compiler.New(cfg, logger), true
}

func report(c *compiler.Compiler, src string, err error) {
	msg := internals.Snippet(err, src)
	if c.Config.Output.Color {
		msg = internals.Colorize(msg)
	}
	fmt.Fprintln(stderr, msg)
}

func Check(args []string) int {
	opts, c, ok := setup("check", args)
	if !ok {
		return 1
	}

	name, src, err := c.ReadSource(opts.file)
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return 1
	}

	result, err := c.Check(name, src)
	if err != nil {
		report(c, src, err)
		return 1
	}

	if c.Config.Output.TraceAST {
		fmt.Fprint(stdout, ast.Dump(result.Program))
	}

	status := "passed"
	if !result.Verified {
		status = "parsed, memory verification skipped"
	}
	if c.Config.Output.Color {
		fmt.Fprintf(stdout, "\033[1;32m%s\033[0m: %s\n", name, status)
	} else {
		fmt.Fprintf(stdout, "%s: %s\n", name, status)
	}
	return 0
}

func Ast(args []string) int {
	opts, c, ok := setup("ast", args)
	if !ok {
		return 1
	}

	name, src, err := c.ReadSource(opts.file)
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return 1
	}

	result, err := c.Parse(name, src)
	if err != nil {
		report(c, src, err)
		return 1
	}

	fmt.Fprint(stdout, ast.Dump(result.Program))
	return 0
}

func Tokens(args []string) int {
	opts, c, ok := setup("tokens", args)
	if !ok {
		return 1
	}

	name, src, err := c.ReadSource(opts.file)
	if err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return 1
	}

	tokens, err := c.Tokenize(name, src)
	if err != nil {
		report(c, src, err)
		return 1
	}

	for _, tok := range tokens {
		fmt.Fprintf(stdout, "%d:%d\t%-12s %q\n", tok.Row, tok.Col, tok.Kind, tok.Text)
	}
	return 0
}

func Repl(args []string) int {
	_, c, ok := setup("repl", args)
	if !ok {
		return 1
	}

	// piped input gets the plain line reader, no line editing
	if info, err := os.Stdin.Stat(); err == nil && info.Mode()&os.ModeCharDevice == 0 {
		repl.Start(os.Stdin, stdout, c)
		return 0
	}

	if err := repl.Interactive(stdout, c); err != nil {
		fmt.Fprintf(stderr, "ERROR: %v\n", err)
		return 1
	}
	return 0
}

// Run dispatches args to their command and returns the exit code
func Run(args []string) int {
	if len(args) < 1 {
		fmt.Fprintln(stderr, "ERROR: at least provide command name to kick off the cli")
		return 1
	}

	name := args[0]
	cmd, ok := commands[name]
	if !ok {
		fmt.Fprintf(stderr, "ERROR: unknown command %v, check help for manual.\n", name)
		return 1
	}

	return cmd.Function(args[1:])
}

func Execute() {
	os.Exit(Run(os.Args[1:]))
}
