package mukku

import "fmt"

// TokenKind is the type of token (keyword, identifier, operator, literal, etc.).
type TokenKind int

// Definition of token kinds
const (
	// Keywords
	VAL    TokenKind = iota // val
	PRT                     // prt
	AGAR                    // agar
	NHI_TO                  // nhi-to
	BHEJO                   // bhejo

	// Identifiers + literals
	IDENT  // x, total, _tmp
	NUMBER // 12345
	STRING // "hello"

	// Operators
	OP      // + - * /
	COMPARE // == != < > <= >=
	ASSIGN  // =

	// Delimiters
	LPAREN // (
	RPAREN // )
	LBRACE // {
	RBRACE // }
	SEMI   // ;

	// Special tokens
	END
)

var tokenKindNames = [...]string{
	VAL:     "val",
	PRT:     "prt",
	AGAR:    "agar",
	NHI_TO:  "nhi-to",
	BHEJO:   "bhejo",
	IDENT:   "ID",
	NUMBER:  "NUMBER",
	STRING:  "STRING",
	OP:      "OP",
	COMPARE: "COMPARE",
	ASSIGN:  "ASSIGN",
	LPAREN:  "LPAREN",
	RPAREN:  "RPAREN",
	LBRACE:  "LBRACE",
	RBRACE:  "RBRACE",
	SEMI:    "SEMI",
	END:     "END",
}

func (k TokenKind) String() string {
	if k >= 0 && int(k) < len(tokenKindNames) {
		return tokenKindNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// IsKeyword reports whether k is one of the reserved words.
func (k TokenKind) IsKeyword() bool {
	switch k {
	case VAL, PRT, AGAR, NHI_TO, BHEJO:
		return true
	default:
		return false
	}
}

// Category is the name printed for k in the token listing. All keywords
// share the "Keyword" category.
func (k TokenKind) Category() string {
	if k.IsKeyword() {
		return "Keyword"
	}
	return k.String()
}

// Token is a single lexeme. Line is 1-based; Column is the 0-based byte
// offset from the start of the line.
type Token struct {
	Kind   TokenKind
	Text   string
	Line   int
	Column int
}

func (t Token) Pos() Pos {
	return Pos{Line: t.Line, Column: t.Column}
}

// reservedKeywords is consulted by the parser in addition to token kinds.
var reservedKeywords = map[string]bool{
	"val":    true,
	"prt":    true,
	"agar":   true,
	"nhi-to": true,
	"bhejo":  true,
}
