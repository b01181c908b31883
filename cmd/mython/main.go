// Command mython runs the interpreter in batch mode or as an interactive
// REPL, dispatching on the first argument and returning its exit code
// through os.Exit.
package main

import (
	"fmt"
	"os"

	"mython/pkg/driver"
	"mython/pkg/repl"
)

const cliToolVersion = "mython 0.0.0-dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 1
	}

	switch args[0] {
	case "--help", "-h":
		printUsage()
		return 0
	case "--version", "-V":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return 0
	case "repl":
		return runRepl()
	default:
		return runBatch(args)
	}
}

// runBatch runs `mython <in_file> <out_file>`. Exit code 0 on success, 1
// on any error; diagnostics go to stderr as a single line, program output
// goes only to out_file.
func runBatch(args []string) int {
	if len(args) != 2 {
		printUsage()
		return 1
	}
	cfg, err := driver.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := driver.RunFile(args[0], args[1], cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runRepl() int {
	cfg, err := driver.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := repl.Run(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: mython <in_file> <out_file>")
	fmt.Fprintln(os.Stderr, "       mython repl")
}
