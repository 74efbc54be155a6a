package mukku

import (
	"regexp"
	"unicode/utf8"
)

// lexRule pairs an anchored pattern with the kind of token it produces.
type lexRule struct {
	pattern *regexp.Regexp
	kind    TokenKind
}

func rule(pattern string, kind TokenKind) lexRule {
	return lexRule{pattern: regexp.MustCompile("^(?:" + pattern + ")"), kind: kind}
}

// lexRules are tried in order at every position; the first match wins.
// Keywords come first, then two-character operators before their
// one-character prefixes, and identifiers last. Keywords end at a word
// boundary so "value" lexes as one identifier.
var lexRules = []lexRule{
	rule(`val\b`, VAL),
	rule(`prt\b`, PRT),
	rule(`agar\b`, AGAR),
	rule(`nhi-to\b`, NHI_TO),
	rule(`bhejo\b`, BHEJO),

	rule(`==|!=|<=|>=`, COMPARE),
	rule(`<|>`, COMPARE),
	rule(`=`, ASSIGN),
	rule(`[+*/\-]`, OP),

	rule(`\(`, LPAREN),
	rule(`\)`, RPAREN),
	rule(`\{`, LBRACE),
	rule(`\}`, RBRACE),
	rule(`;`, SEMI),

	rule(`"[^"\n]*"`, STRING),
	rule(`[0-9]+`, NUMBER),
	rule(`[a-zA-Z_][a-zA-Z0-9_]*`, IDENT),
}

// Lexer turns source text into tokens. Illegal characters are recorded in
// Errors and skipped so that one pass reports all of them.
type Lexer struct {
	input     string
	pos       int // current reading position in input
	line      int // current line number (1-indexed)
	lineStart int // offset of the first byte of the current line

	Errors *ErrorCollection
}

func NewLexer(input string, errs *ErrorCollection) *Lexer {
	return &Lexer{input: input, line: 1, Errors: errs}
}

// Tokenize lexes the whole of src. The returned stream always ends with an
// END token.
func Tokenize(src string, errs *ErrorCollection) []Token {
	l := NewLexer(src, errs)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Kind == END {
			return tokens
		}
	}
}

// NextToken scans the next token, skipping (and reporting) any illegal
// characters on the way.
func (l *Lexer) NextToken() Token {
	for {
		l.skipWhitespace()
		if l.pos >= len(l.input) {
			return Token{Kind: END, Line: l.line, Column: 0}
		}

		rest := l.input[l.pos:]
		for _, r := range lexRules {
			loc := r.pattern.FindStringIndex(rest)
			if loc == nil {
				continue
			}
			tok := Token{
				Kind:   r.kind,
				Text:   rest[:loc[1]],
				Line:   l.line,
				Column: l.pos - l.lineStart,
			}
			l.pos += loc[1]
			return tok
		}

		// One diagnostic per character, not per byte. Columns stay byte
		// offsets.
		ch, width := utf8.DecodeRuneInString(rest)
		pos := Pos{Line: l.line, Column: l.pos - l.lineStart}
		l.Errors.AddAt(StageLex, pos, "Illegal character '%c'", ch)
		l.pos += width
	}
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) && isSpace(l.input[l.pos]) {
		if l.input[l.pos] == '\n' {
			l.line++
			l.lineStart = l.pos + 1
		}
		l.pos++
	}
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	default:
		return false
	}
}
