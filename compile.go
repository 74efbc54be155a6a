package mukku

import "bytes"

// Compilation holds everything produced by one run of the pipeline. A new
// Compilation is created for every source text and never shared.
type Compilation struct {
	Source  string
	Tokens  []Token
	Program *ASTNode
	Symbols *SymbolTable
	IR      []string
	Asm     []string

	// Output is what the interpreter printed, up to RuntimeErr if any.
	Output     string
	RuntimeErr error

	// Errors holds the diagnostics of FailedStage. Stages after a failed
	// one never run, so the collection only ever holds one stage's errors.
	Errors      *ErrorCollection
	FailedStage Stage
}

// Succeeded reports whether every compile stage passed. A runtime error in
// the interpreter does not count as a compile failure.
func (c *Compilation) Succeeded() bool {
	return c.FailedStage == ""
}

// Compile runs the whole pipeline on src: tokenize, parse, check, generate
// IR and assembly, then interpret.
func Compile(src string) *Compilation {
	c := &Compilation{
		Source:  src,
		Symbols: NewSymbolTable(),
		Errors:  NewErrorCollection(),
	}

	c.Tokens = Tokenize(src, c.Errors)
	if c.Errors.HasErrors() {
		c.FailedStage = StageLex
		return c
	}

	c.Program = NewParser(c.Tokens, c.Errors).ParseProgram()
	if c.Errors.HasErrors() {
		c.FailedStage = StageParse
		return c
	}

	Check(c.Program, c.Symbols, c.Errors)
	if c.Errors.HasErrors() {
		c.FailedStage = StageCheck
		return c
	}

	c.IR = GenerateIR(c.Program)
	c.Asm = GenerateAsm(c.Program)

	var out bytes.Buffer
	c.RuntimeErr = NewInterpreter(&out).Run(c.Program)
	c.Output = out.String()
	return c
}
