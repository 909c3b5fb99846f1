package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/tsani/nutcalc/config"
	"github.com/tsani/nutcalc/driver"
	"github.com/tsani/nutcalc/eval"
)

const usage = "usage: nutcalc [-v] [-i] (FILE | -c STATEMENT)..."

var errHelp = errors.New("help requested")

// action is one step of the command line: a module file to load, or a
// single statement given with -c.
type action struct {
	statement bool
	arg       string
}

type options struct {
	interactive bool // start a REPL after processing the actions
	verbose     bool // log definitions and module loads to stderr
	actions     []action
}

// parseArgs scans args in order. Flags may appear anywhere, interleaved with
// files and -c statements; after `--` everything is a file.
func parseArgs(args []string) (options, error) {
	var opts options
	for i := 0; i < len(args); i++ {
		switch arg := args[i]; {
		case arg == "--":
			for _, file := range args[i+1:] {
				opts.actions = append(opts.actions, action{arg: file})
			}
			return opts, nil
		case arg == "-i":
			opts.interactive = true
		case arg == "-v":
			opts.verbose = true
		case arg == "-c":
			if i+1 == len(args) {
				return opts, errors.New("-c needs a statement")
			}
			i++
			opts.actions = append(opts.actions, action{statement: true, arg: args[i]})
		case arg == "-h", arg == "-help", arg == "--help":
			return opts, errHelp
		case len(arg) > 1 && arg[0] == '-':
			return opts, fmt.Errorf("flag provided but not defined: %s", arg)
		default:
			opts.actions = append(opts.actions, action{arg: arg})
		}
	}
	return opts, nil
}

func main() {
	opts, err := parseArgs(os.Args[1:])
	if errors.Is(err, errHelp) {
		fmt.Println(usage)
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	cfg.Verbose = cfg.Verbose || opts.verbose

	interp := eval.NewInterpreter()
	if cfg.Verbose {
		interp.Log = log.New(os.Stderr, "nutcalc: ", 0)
	}
	loader := driver.NewLoader(interp, driver.OS)

	if err := run(interp, loader, cfg.Prelude, opts.actions); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	if opts.interactive {
		if err := RunPrompt(interp, cfg.History); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}

// run loads the prelude, then performs the actions in order, stopping at the
// first failure.
func run(interp *eval.Interpreter, loader *driver.Loader, prelude []string, actions []action) error {
	for _, path := range prelude {
		if err := loader.LoadFile(path); err != nil {
			return err
		}
	}
	for _, a := range actions {
		var err error
		if a.statement {
			err = driver.RunLine(interp, a.arg)
		} else {
			err = loader.LoadFile(a.arg)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func RunPrompt(interp *eval.Interpreter, history string) error {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	defer func() {
		if err := os.MkdirAll(filepath.Dir(history), os.ModePerm); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		if f, err := os.Create(history); err == nil {
			defer f.Close()
			if _, err := line.WriteHistory(f); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		}
		line.Close()
	}()

	if f, err := os.Open(history); err == nil {
		defer f.Close()
		if _, err := line.ReadHistory(f); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}

	for {
		input, err := line.Prompt("nutcalc> ")
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			return nil
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		line.AppendHistory(input)
		if strings.ToLower(strings.TrimSpace(input)) == "exit" {
			return nil
		}
		if err := driver.RunLine(interp, input); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
	}
}
