package mukku

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nalgeon/be"
)

func lexInput(t *testing.T, input string) []Token {
	t.Helper()
	errs := NewErrorCollection()
	tokens := Tokenize(input, errs)
	be.Equal(t, errs.Count(), 0)
	return tokens
}

func TestKeywords(t *testing.T) {
	tests := []struct {
		input string
		kind  TokenKind
	}{
		{"val", VAL},
		{"prt", PRT},
		{"agar", AGAR},
		{"nhi-to", NHI_TO},
		{"bhejo", BHEJO},
	}

	for _, tt := range tests {
		tokens := lexInput(t, tt.input)
		be.Equal(t, len(tokens), 2)
		be.Equal(t, tokens[0].Kind, tt.kind)
		be.Equal(t, tokens[0].Text, tt.input)
		be.Equal(t, tokens[0].Kind.Category(), "Keyword")
		be.Equal(t, tokens[1].Kind, END)
	}
}

func TestKeywordPrefixIsIdentifier(t *testing.T) {
	for _, input := range []string{"value", "prtx", "agarwal", "bhejo_", "val2"} {
		tokens := lexInput(t, input)
		be.Equal(t, tokens[0].Kind, IDENT)
		be.Equal(t, tokens[0].Text, input)
	}
}

func TestNhiToNeedsHyphen(t *testing.T) {
	tokens := lexInput(t, "nhi - to")
	kinds := []TokenKind{tokens[0].Kind, tokens[1].Kind, tokens[2].Kind}
	be.Equal(t, kinds, []TokenKind{IDENT, OP, IDENT})
}

func TestOperators(t *testing.T) {
	tests := []struct {
		input string
		kind  TokenKind
	}{
		{"+", OP},
		{"-", OP},
		{"*", OP},
		{"/", OP},
		{"==", COMPARE},
		{"!=", COMPARE},
		{"<=", COMPARE},
		{">=", COMPARE},
		{"<", COMPARE},
		{">", COMPARE},
		{"=", ASSIGN},
	}

	for _, tt := range tests {
		tokens := lexInput(t, tt.input)
		be.Equal(t, tokens[0].Kind, tt.kind)
		be.Equal(t, tokens[0].Text, tt.input)
	}
}

func TestTwoCharOperatorsWin(t *testing.T) {
	tokens := lexInput(t, "a<=b")
	be.Equal(t, len(tokens), 4)
	be.Equal(t, tokens[1].Kind, COMPARE)
	be.Equal(t, tokens[1].Text, "<=")

	// "===" is "==" followed by "="
	tokens = lexInput(t, "===")
	be.Equal(t, tokens[0].Text, "==")
	be.Equal(t, tokens[1].Kind, ASSIGN)
}

func TestDelimiters(t *testing.T) {
	tests := []struct {
		input string
		kind  TokenKind
	}{
		{"(", LPAREN},
		{")", RPAREN},
		{"{", LBRACE},
		{"}", RBRACE},
		{";", SEMI},
	}

	for _, tt := range tests {
		tokens := lexInput(t, tt.input)
		be.Equal(t, tokens[0].Kind, tt.kind)
	}
}

func TestLiterals(t *testing.T) {
	tokens := lexInput(t, `42 "hello world" _tmp1`)
	be.Equal(t, tokens[0].Kind, NUMBER)
	be.Equal(t, tokens[0].Text, "42")
	be.Equal(t, tokens[1].Kind, STRING)
	be.Equal(t, tokens[1].Text, `"hello world"`)
	be.Equal(t, tokens[2].Kind, IDENT)
	be.Equal(t, tokens[2].Text, "_tmp1")
}

func TestPositions(t *testing.T) {
	tokens := lexInput(t, "val x = 5;\n  prt(x);")

	type pos struct {
		Text string
		Line int
		Col  int
	}
	var got []pos
	for _, tok := range tokens {
		got = append(got, pos{tok.Text, tok.Line, tok.Column})
	}
	want := []pos{
		{"val", 1, 0},
		{"x", 1, 4},
		{"=", 1, 6},
		{"5", 1, 8},
		{";", 1, 9},
		{"prt", 2, 2},
		{"(", 2, 5},
		{"x", 2, 6},
		{")", 2, 7},
		{";", 2, 8},
		{"", 2, 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("positions mismatch (-want +got):\n%s", diff)
	}
}

func TestEndTokenLine(t *testing.T) {
	tokens := lexInput(t, "val x;\n\n")
	end := tokens[len(tokens)-1]
	be.Equal(t, end.Kind, END)
	be.Equal(t, end.Line, 3)
	be.Equal(t, end.Column, 0)

	tokens = lexInput(t, "")
	be.Equal(t, len(tokens), 1)
	be.Equal(t, tokens[0].Kind, END)
	be.Equal(t, tokens[0].Line, 1)
}

func TestIllegalCharacters(t *testing.T) {
	errs := NewErrorCollection()
	tokens := Tokenize("val @x = 1 # 2;\n$", errs)

	be.Equal(t, errs.Count(), 3)
	be.Equal(t, errs.String(), strings.Join([]string{
		"Illegal character '@' at line 1, column 4",
		"Illegal character '#' at line 1, column 11",
		"Illegal character '$' at line 2, column 0",
	}, "\n"))

	// Lexing continues after each illegal character.
	var texts []string
	for _, tok := range tokens {
		texts = append(texts, tok.Text)
	}
	be.Equal(t, texts, []string{"val", "x", "=", "1", "2", ";", ""})

	for _, err := range errs.Errors() {
		be.Equal(t, err.Stage, StageLex)
	}
}

func TestIllegalMultibyteCharacters(t *testing.T) {
	errs := NewErrorCollection()
	tokens := Tokenize("val é = 1;\nprt(€);", errs)

	be.Equal(t, messages(errs), []string{
		"Illegal character 'é' at line 1, column 4",
		"Illegal character '€' at line 2, column 4",
	})

	// Columns after a multibyte character are still byte offsets.
	be.Equal(t, tokens[1].Text, "=")
	be.Equal(t, tokens[1].Column, 7)
	be.Equal(t, tokens[6].Text, ")")
	be.Equal(t, tokens[6].Column, 7)
}

func TestUnterminatedString(t *testing.T) {
	errs := NewErrorCollection()
	tokens := Tokenize("prt(\"abc\n);", errs)

	be.Equal(t, errs.Count(), 1)
	be.Equal(t, errs.Errors()[0].Message, `Illegal character '"' at line 1, column 4`)
	be.Equal(t, tokens[2].Kind, IDENT)
	be.Equal(t, tokens[2].Text, "abc")
	be.Equal(t, tokens[3].Line, 2)
}

func TestTokenKindString(t *testing.T) {
	be.Equal(t, IDENT.String(), "ID")
	be.Equal(t, NHI_TO.String(), "nhi-to")
	be.Equal(t, NUMBER.Category(), "NUMBER")
	be.Equal(t, TokenKind(99).String(), "TokenKind(99)")
}

// Every token's line and column locate its text in the source.
func TestPositionsLocateText(t *testing.T) {
	pieces := []string{"val", "prt", "agar", "nhi-to", "bhejo", "x", "total", "42", `"hi"`,
		"+", "-", "*", "/", "==", "<", ">=", "=", "(", ")", "{", "}", ";"}
	spaces := []string{" ", "  ", "\n", "\t", "\n\n   "}

	r := rand.New(rand.NewPCG(1, 2))
	for range 200 {
		var sb strings.Builder
		for range r.IntN(20) + 1 {
			sb.WriteString(pieces[r.IntN(len(pieces))])
			sb.WriteString(spaces[r.IntN(len(spaces))])
		}
		src := sb.String()
		lines := strings.Split(src, "\n")

		for _, tok := range lexInput(t, src) {
			if tok.Kind == END {
				continue
			}
			line := lines[tok.Line-1]
			be.True(t, strings.HasPrefix(line[tok.Column:], tok.Text))
		}
	}
}
