package api

import "github.com/mukku-lang/mukku"

// CompileRequest is the body of a Compile call.
type CompileRequest struct {
	Code   string `json:"code"`
	Format string `json:"format"` // "single" or "txtar"
}

// CompileResponse carries one result per compiled file, in input order.
type CompileResponse struct {
	Results []*FileResult `json:"results"`
}

// FileResult is the outcome of compiling one source file.
type FileResult struct {
	Name string `json:"name"`

	// Output is the same transcript the CLI prints.
	Output string `json:"output"`

	// Type is "success" or "error".
	Type string `json:"type"`

	Tokens        []Token         `json:"tokens,omitempty"`
	Tree          *mukku.TreeNode `json:"tree,omitempty"`
	Symbols       []string        `json:"symbols,omitempty"`
	IR            []string        `json:"ir,omitempty"`
	Asm           []string        `json:"asm,omitempty"`
	ProgramOutput string          `json:"program_output,omitempty"`
	Errors        []Diagnostic    `json:"errors,omitempty"`
}

type Token struct {
	Kind   string `json:"kind"`
	Text   string `json:"text"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// Diagnostic is a compile or runtime error. Line is 0 when the error has no
// position.
type Diagnostic struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
}

const (
	resultSuccess = "success"
	resultError   = "error"
)
