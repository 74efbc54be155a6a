package mukku

import (
	"bytes"
	"fmt"
	"io"
)

// WriteReport writes the transcript of c: source, tokens, parse tree, symbol
// table, IR, assembly and program output. Sections after a failed stage are
// replaced by that stage's diagnostics.
func WriteReport(w io.Writer, c *Compilation) error {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "=== Source Code ===\n%s\n\n", c.Source)

	buf.WriteString("=== Lexical Analysis (Tokenization) ===\n")
	for _, tok := range c.Tokens {
		fmt.Fprintf(&buf, "Line %d, Column %d: %s = %s\n", tok.Line, tok.Column, tok.Kind.Category(), tok.Text)
	}
	if c.FailedStage == StageLex {
		writeErrors(&buf, c.Errors)
		return flush(w, &buf)
	}

	buf.WriteString("\n=== Syntax Analysis (Parsing) ===\n")
	if c.FailedStage == StageParse {
		writeErrors(&buf, c.Errors)
		return flush(w, &buf)
	}

	tree, err := TreeJSON(c.Program)
	if err != nil {
		return fmt.Errorf("rendering parse tree: %w", err)
	}
	fmt.Fprintf(&buf, "\nParse Tree (JSON):\n%s\n", tree)

	buf.WriteString("\n=== Semantic Analysis ===\n")
	if c.FailedStage == StageCheck {
		writeErrors(&buf, c.Errors)
		return flush(w, &buf)
	}

	buf.WriteString("\nSymbol Table:\n")
	for _, name := range c.Symbols.Names() {
		fmt.Fprintf(&buf, "%s: %s\n", name, c.Symbols.LookupVariable(name).Kind)
	}

	buf.WriteString("\n=== Intermediate Code Generation ===\n")
	buf.WriteString("\nIntermediate Code (Three-Address Code):\n")
	writeListing(&buf, c.IR)

	buf.WriteString("\n=== Assembly Code Generation ===\n")
	buf.WriteString("\nAssembly Code:\n")
	writeListing(&buf, c.Asm)

	buf.WriteString("\nCompilation successful!\n")
	buf.WriteString("\n=== Output of Input Code ===\n")
	buf.WriteString(c.Output)
	if c.RuntimeErr != nil {
		fmt.Fprintf(&buf, "Runtime error: %v\n", c.RuntimeErr)
	}
	return flush(w, &buf)
}

// Report returns the transcript of c as a string.
func Report(c *Compilation) (string, error) {
	var buf bytes.Buffer
	if err := WriteReport(&buf, c); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func writeErrors(buf *bytes.Buffer, errs *ErrorCollection) {
	buf.WriteString("\nCompilation errors:\n")
	for _, err := range errs.Errors() {
		buf.WriteString(err.Message)
		buf.WriteByte('\n')
	}
}

func writeListing(buf *bytes.Buffer, code []string) {
	for i, instr := range code {
		fmt.Fprintf(buf, "%d: %s\n", i, instr)
	}
}

func flush(w io.Writer, buf *bytes.Buffer) error {
	_, err := buf.WriteTo(w)
	return err
}
