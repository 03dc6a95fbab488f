// Scrapcore is a deterministic bot-squad survival game for the terminal.
// Usage: scrapcore [--version] [--plain] [--script <file>] [--trace]
// [--seed <n>] [--content <dir>] [--tuning <file>]
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/nathoo/scrapcore/cli"
	"github.com/nathoo/scrapcore/engine"
	"github.com/nathoo/scrapcore/loader"
	"github.com/nathoo/scrapcore/tuning"
	"github.com/nathoo/scrapcore/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "Usage: scrapcore [--version] [--plain] [--script <file>] [--trace] [--seed <n>] [--content <dir>] [--tuning <file>]\n"

func main() {
	plain := false
	trace := false
	seed := time.Now().UnixNano()
	var scriptFile, contentDir, tuningFile string

	args := os.Args[1:]
	value := func(i int) string {
		if i+1 >= len(args) {
			fmt.Fprintf(os.Stderr, "%s requires a value\n", args[i])
			os.Exit(1)
		}
		return args[i+1]
	}
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("scrapcore %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			plain = true
		case "--trace":
			trace = true
		case "--script":
			scriptFile = value(i)
			i++
		case "--content":
			contentDir = value(i)
			i++
		case "--tuning":
			tuningFile = value(i)
			i++
		case "--seed":
			n, err := strconv.ParseInt(value(i), 10, 64)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Invalid seed %q: %v\n", args[i+1], err)
				os.Exit(1)
			}
			seed = n
			i++
		default:
			fmt.Fprintf(os.Stderr, "Unknown argument %q\n%s", args[i], usage)
			os.Exit(1)
		}
	}

	cfg := engine.Config{Seed: seed}

	// Load Lua content packs over the built-in catalog.
	if contentDir != "" {
		reg, err := loader.Load(contentDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading content: %v\n", err)
			os.Exit(1)
		}
		cfg.Registry = reg
	}

	if tuningFile != "" {
		t, err := tuning.Load(tuningFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading tuning: %v\n", err)
			os.Exit(1)
		}
		rules := t.Rules()
		cfg.Rules = &rules
	}

	eng := engine.New(cfg)

	// Script mode: open file, force plain, echo commands.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		fmt.Printf("scrapcore %s, seed %d\n\n", version, seed)
		c := cli.New(eng)
		c.In = f
		c.EchoInput = true
		c.Trace = trace
		c.Run()
		return
	}

	// Use plain CLI if --plain flag or stdout is not a terminal.
	if plain || !isTerminal() {
		fmt.Printf("scrapcore %s, seed %d\n\n", version, seed)
		c := cli.New(eng)
		c.Trace = trace
		c.Run()
		return
	}

	if err := tui.Run(eng); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
