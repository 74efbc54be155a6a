package mukku

import (
	"fmt"
	"strings"
)

// Stage identifies the pipeline stage that reported a diagnostic.
type Stage string

const (
	StageLex     Stage = "lex"
	StageParse   Stage = "parse"
	StageCheck   Stage = "check"
	StageRuntime Stage = "runtime"
)

// Pos is a source position. The zero Pos means "no position".
type Pos struct {
	Line   int
	Column int
}

func (p Pos) IsValid() bool {
	return p.Line > 0
}

func (p Pos) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// CompileError is one diagnostic. Message is the full human-readable text,
// including the position when the reporting stage has one.
type CompileError struct {
	Stage   Stage
	Pos     Pos
	Message string
}

func (e *CompileError) Error() string {
	return e.Message
}

// ErrorCollection accumulates diagnostics in the order they are recorded.
type ErrorCollection struct {
	errors []*CompileError
}

func NewErrorCollection() *ErrorCollection {
	return &ErrorCollection{}
}

// Add records a diagnostic without a position.
func (ec *ErrorCollection) Add(stage Stage, format string, args ...any) {
	ec.errors = append(ec.errors, &CompileError{
		Stage:   stage,
		Message: fmt.Sprintf(format, args...),
	})
}

// AddAt records a diagnostic and appends " at line L, column C" to it.
func (ec *ErrorCollection) AddAt(stage Stage, pos Pos, format string, args ...any) {
	ec.errors = append(ec.errors, &CompileError{
		Stage:   stage,
		Pos:     pos,
		Message: fmt.Sprintf(format, args...) + " at " + pos.String(),
	})
}

func (ec *ErrorCollection) HasErrors() bool {
	return len(ec.errors) > 0
}

func (ec *ErrorCollection) Count() int {
	return len(ec.errors)
}

func (ec *ErrorCollection) Errors() []*CompileError {
	return ec.errors
}

// String renders one diagnostic per line.
func (ec *ErrorCollection) String() string {
	var sb strings.Builder
	for i, err := range ec.errors {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(err.Message)
	}
	return sb.String()
}
