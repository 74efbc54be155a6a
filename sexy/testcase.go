package sexy

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// InputFence is the language tag of the code fence holding a test's program.
const InputFence = "mukku"

// AssertionType represents the type of assertion code fence in a test
type AssertionType string

const (
	AssertionTypeAST          AssertionType = "ast"           // s-expression of the parse tree
	AssertionTypeSymbols      AssertionType = "symbols"       // one declared name per line, sorted
	AssertionTypeIR           AssertionType = "ir"            // three-address code, one instruction per line
	AssertionTypeAsm          AssertionType = "asm"           // pseudo-assembly, one instruction per line
	AssertionTypeExecute      AssertionType = "execute"       // interpreter output
	AssertionTypeCompileError AssertionType = "compile-error" // diagnostics, one per line
)

var assertionTypes = map[string]AssertionType{
	string(AssertionTypeAST):          AssertionTypeAST,
	string(AssertionTypeSymbols):      AssertionTypeSymbols,
	string(AssertionTypeIR):           AssertionTypeIR,
	string(AssertionTypeAsm):          AssertionTypeAsm,
	string(AssertionTypeExecute):      AssertionTypeExecute,
	string(AssertionTypeCompileError): AssertionTypeCompileError,
}

// Assertion represents a single assertion in a test
type Assertion struct {
	Type       AssertionType
	Content    string // raw fence content without the trailing newline
	ParsedSexy *Node  // only set for AssertionTypeAST
	Line       int    // line of the fence in the markdown file
}

// Lines splits Content into lines. An empty fence has no lines.
func (a Assertion) Lines() []string {
	if a.Content == "" {
		return nil
	}
	return strings.Split(a.Content, "\n")
}

// TestCase represents a complete test case extracted from Markdown
type TestCase struct {
	Name       string // heading text after "Test: "
	Input      string // program source from the mukku fence
	Assertions []Assertion
}

// ExtractTestCases parses a Markdown document and extracts all test cases.
// A test starts at a heading "Test: <name>" and holds exactly one mukku
// fence and at least one assertion fence.
func ExtractTestCases(markdownContent string) ([]TestCase, error) {
	md := goldmark.New()
	source := []byte(markdownContent)
	doc := md.Parser().Parse(text.NewReader(source))

	var testCases []TestCase
	var currentTestCase *TestCase
	seen := make(map[string]bool)

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Heading:
			headingText := extractTextFromNode(n, source)
			name, ok := strings.CutPrefix(headingText, "Test: ")
			if !ok {
				return ast.WalkContinue, nil
			}
			if currentTestCase != nil {
				if err := validateTestCase(currentTestCase); err != nil {
					return ast.WalkStop, err
				}
				testCases = append(testCases, *currentTestCase)
			}
			if seen[name] {
				return ast.WalkStop, fmt.Errorf("duplicate test name '%s'", name)
			}
			seen[name] = true
			currentTestCase = &TestCase{Name: name}

		case *ast.FencedCodeBlock:
			language := string(n.Language(source))
			content := extractCodeBlockContent(n, source)
			lineNum := getLineNumber(n, source)
			assertionType, isAssertion := assertionTypes[language]

			if currentTestCase == nil {
				if language == "" {
					// Plain code blocks are documentation.
					return ast.WalkContinue, nil
				}
				if language == InputFence || isAssertion {
					return ast.WalkStop, fmt.Errorf("line %d: %s fence found outside of test case", lineNum, language)
				}
				return ast.WalkStop, fmt.Errorf("line %d: unknown fence language '%s' found outside of test case", lineNum, language)
			}

			switch {
			case language == "":
				return ast.WalkContinue, nil
			case language == InputFence:
				if currentTestCase.Input != "" {
					return ast.WalkStop, fmt.Errorf("line %d: multiple input fences found in test '%s'", lineNum, currentTestCase.Name)
				}
				currentTestCase.Input = strings.TrimRight(content, "\n")
			case isAssertion:
				assertion := Assertion{
					Type:    assertionType,
					Content: strings.TrimRight(content, "\n"),
					Line:    lineNum,
				}
				if assertionType == AssertionTypeAST {
					parsed, err := Parse(assertion.Content)
					if err != nil {
						return ast.WalkStop, fmt.Errorf("line %d: failed to parse ast assertion in test '%s': %w", lineNum, currentTestCase.Name, err)
					}
					assertion.ParsedSexy = parsed
				}
				currentTestCase.Assertions = append(currentTestCase.Assertions, assertion)
			default:
				return ast.WalkStop, fmt.Errorf("line %d: unknown fence language '%s' in test '%s'", lineNum, language, currentTestCase.Name)
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking markdown AST: %w", err)
	}

	if currentTestCase != nil {
		if err := validateTestCase(currentTestCase); err != nil {
			return nil, err
		}
		testCases = append(testCases, *currentTestCase)
	}
	return testCases, nil
}

// extractTextFromNode extracts plain text content from a markdown node
func extractTextFromNode(node ast.Node, source []byte) string {
	var buf bytes.Buffer
	ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if text, ok := n.(*ast.Text); ok {
				buf.Write(text.Segment.Value(source))
			}
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

func extractCodeBlockContent(codeBlock *ast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer
	for i := 0; i < codeBlock.Lines().Len(); i++ {
		line := codeBlock.Lines().At(i)
		buf.Write(line.Value(source))
	}
	return buf.String()
}

func validateTestCase(testCase *TestCase) error {
	if testCase.Input == "" {
		return fmt.Errorf("test '%s' has no input fence", testCase.Name)
	}
	if len(testCase.Assertions) == 0 {
		return fmt.Errorf("test '%s' has no assertion fences", testCase.Name)
	}
	return nil
}

// getLineNumber returns the 1-based line of the first content line of node.
func getLineNumber(node ast.Node, source []byte) int {
	if node.Lines().Len() == 0 {
		return 1
	}
	startPos := node.Lines().At(0).Start
	return bytes.Count(source[:min(startPos, len(source))], []byte("\n")) + 1
}
