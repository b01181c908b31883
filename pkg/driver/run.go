package driver

import (
	"fmt"
	"os"

	"mython/pkg/ast"
	"mython/pkg/interpreter"
)

// RunFile executes the program in inPath and writes its output to outPath.
// Program output goes only to the out file; diagnostics are the caller's
// responsibility (stderr, exit 1).
func RunFile(inPath, outPath string, cfg *Config) error {
	src, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("cannot open %s: %w", inPath, err)
	}
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("cannot open %s: %w", outPath, err)
	}
	defer out.Close()

	interp := interpreter.New(out)
	if cfg != nil && cfg.Trace {
		interp.Trace = func(stmt ast.Node) {
			fmt.Fprintf(os.Stderr, "trace: %T\n", stmt)
		}
	}
	return interp.RunProgram(string(src))
}
