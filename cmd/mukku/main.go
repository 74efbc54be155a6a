// Command mukku compiles a Mukku source file and prints every stage of the
// pipeline, followed by the program's output.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mukku-lang/mukku"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("mukku", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: mukku <file.mukku>\n")
		fmt.Fprintf(stderr, "Compile a .mukku file, show tokens, parse tree, symbol table,\n")
		fmt.Fprintf(stderr, "three-address code and assembly, then run it\n")
	}

	if err := fs.Parse(args); err != nil {
		return 1
	}

	if fs.NArg() != 1 {
		fmt.Fprintf(stderr, "Error: expected exactly one file argument\n")
		fs.Usage()
		return 1
	}

	filename := fs.Arg(0)
	sourceBytes, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(stderr, "Error: could not open file '%s': %v\n", filename, err)
		return 1
	}

	c := mukku.Compile(string(sourceBytes))
	if err := mukku.WriteReport(stdout, c); err != nil {
		fmt.Fprintf(stderr, "Error writing output: %v\n", err)
		return 1
	}

	if !c.Succeeded() || c.RuntimeErr != nil {
		return 1
	}
	return 0
}
