package mukku

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/nalgeon/be"

	"github.com/mukku-lang/mukku/sexy"
)

func TestSexyAllTests(t *testing.T) {
	testFiles, err := filepath.Glob("test/*_test.md")
	be.Err(t, err, nil)
	be.True(t, len(testFiles) > 0)

	for _, testFile := range testFiles {
		testName := strings.TrimSuffix(filepath.Base(testFile), ".md")

		t.Run(testName, func(t *testing.T) {
			content, err := os.ReadFile(testFile)
			be.Err(t, err, nil)

			testCases, err := sexy.ExtractTestCases(string(content))
			be.Err(t, err, nil)

			for _, tc := range testCases {
				t.Run(tc.Name, func(t *testing.T) {
					c := Compile(tc.Input)
					for _, assertion := range tc.Assertions {
						t.Run(string(assertion.Type), func(t *testing.T) {
							checkAssertion(t, c, assertion)
						})
					}
				})
			}
		})
	}
}

func checkAssertion(t *testing.T, c *Compilation, assertion sexy.Assertion) {
	t.Helper()

	if assertion.Type == sexy.AssertionTypeCompileError {
		if c.Succeeded() {
			t.Fatalf("line %d: expected compile errors, compilation succeeded", assertion.Line)
		}
		assertLines(t, assertion, messages(c.Errors))
		return
	}

	if !c.Succeeded() {
		t.Fatalf("line %d: compilation failed at %s:\n%s", assertion.Line, c.FailedStage, c.Errors)
	}

	switch assertion.Type {
	case sexy.AssertionTypeAST:
		got, err := sexy.Parse(ToSExpr(c.Program))
		be.Err(t, err, nil)
		if !sexy.Equal(got, assertion.ParsedSexy) {
			t.Errorf("line %d: AST mismatch\ngot:  %s\nwant: %s", assertion.Line, got, assertion.ParsedSexy)
		}
	case sexy.AssertionTypeSymbols:
		assertLines(t, assertion, c.Symbols.Names())
	case sexy.AssertionTypeIR:
		assertLines(t, assertion, c.IR)
	case sexy.AssertionTypeAsm:
		assertLines(t, assertion, c.Asm)
	case sexy.AssertionTypeExecute:
		output := c.Output
		if c.RuntimeErr != nil {
			output += fmt.Sprintf("Runtime error: %v\n", c.RuntimeErr)
		}
		be.Equal(t, strings.TrimRight(output, "\n"), assertion.Content)
	default:
		t.Fatalf("line %d: unsupported assertion type %s", assertion.Line, assertion.Type)
	}
}

func assertLines(t *testing.T, assertion sexy.Assertion, got []string) {
	t.Helper()
	if diff := cmp.Diff(assertion.Lines(), got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("line %d: %s mismatch (-want +got):\n%s", assertion.Line, assertion.Type, diff)
	}
}

func messages(errs *ErrorCollection) []string {
	var msgs []string
	for _, err := range errs.Errors() {
		msgs = append(msgs, err.Message)
	}
	return msgs
}
