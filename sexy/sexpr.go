// Package sexy reads the small s-expression dialect used by Mukku's
// markdown test cases: symbols, "strings", integers and (lists).
package sexy

import (
	"fmt"
	"strings"
	"unicode"
)

// NodeType represents the type of a Node
type NodeType int

const (
	NodeSymbol NodeType = iota
	NodeString
	NodeInteger
	NodeList
)

func (t NodeType) String() string {
	switch t {
	case NodeSymbol:
		return "symbol"
	case NodeString:
		return "string"
	case NodeInteger:
		return "integer"
	case NodeList:
		return "list"
	default:
		return fmt.Sprintf("NodeType(%d)", int(t))
	}
}

// Node is one datum.
type Node struct {
	Type  NodeType
	Text  string  // NodeSymbol, NodeString, NodeInteger
	Items []*Node // NodeList
}

// String prints n in canonical form: single spaces between list items and
// strings escaped the way the reader expects them.
func (n *Node) String() string {
	switch n.Type {
	case NodeSymbol, NodeInteger:
		return n.Text
	case NodeString:
		escaped := strings.ReplaceAll(n.Text, "\\", "\\\\")
		escaped = strings.ReplaceAll(escaped, "\"", "\\\"")
		return "\"" + escaped + "\""
	case NodeList:
		parts := make([]string, len(n.Items))
		for i, item := range n.Items {
			parts[i] = item.String()
		}
		return "(" + strings.Join(parts, " ") + ")"
	default:
		return fmt.Sprintf("UNKNOWN_NODE_TYPE_%d", n.Type)
	}
}

func NewSymbol(name string) *Node {
	return &Node{Type: NodeSymbol, Text: name}
}

func NewString(value string) *Node {
	return &Node{Type: NodeString, Text: value}
}

func NewInteger(text string) *Node {
	return &Node{Type: NodeInteger, Text: text}
}

func NewList(items ...*Node) *Node {
	return &Node{Type: NodeList, Items: items}
}

// IsAtom reports whether n is anything but a list.
func (n *Node) IsAtom() bool {
	return n.Type != NodeList
}

// Head returns the symbol at the front of a list, or "" if n is not a list
// starting with a symbol.
func (n *Node) Head() string {
	if n.Type != NodeList || len(n.Items) == 0 || n.Items[0].Type != NodeSymbol {
		return ""
	}
	return n.Items[0].Text
}

// Equal reports whether a and b are structurally identical.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Type != b.Type || a.Text != b.Text || len(a.Items) != len(b.Items) {
		return false
	}
	for i := range a.Items {
		if !Equal(a.Items[i], b.Items[i]) {
			return false
		}
	}
	return true
}

type parser struct {
	lexer        *lexer
	currentToken token
}

// Parse parses input, which must hold exactly one datum.
func Parse(input string) (*Node, error) {
	p := &parser{lexer: newLexer(input)}
	p.nextToken()

	result, err := p.parseDatum()
	if p.lexer.err != nil {
		// Lexer errors take priority because they might cause confusing parser errors.
		return nil, p.lexer.err
	}
	if err != nil {
		return nil, err
	}
	if p.currentToken.Type != tokenEOF {
		return nil, fmt.Errorf("offset %d: expected EOF but got %s", p.currentToken.Position, p.currentToken.Type)
	}
	return result, nil
}

func (p *parser) nextToken() {
	p.currentToken = p.lexer.nextToken()
}

func (p *parser) parseDatum() (*Node, error) {
	tok := p.currentToken
	switch tok.Type {
	case tokenSymbol:
		p.nextToken()
		return NewSymbol(tok.Value), nil
	case tokenString:
		p.nextToken()
		return NewString(tok.Value), nil
	case tokenInteger:
		p.nextToken()
		return NewInteger(tok.Value), nil
	case tokenLParen:
		return p.parseList()
	default:
		return nil, fmt.Errorf("offset %d: unexpected token: %s", tok.Position, tok.Type)
	}
}

func (p *parser) parseList() (*Node, error) {
	list := NewList()
	p.nextToken() // consume '('

	for p.currentToken.Type != tokenRParen && p.currentToken.Type != tokenEOF {
		item, err := p.parseDatum()
		if err != nil {
			return nil, err
		}
		list.Items = append(list.Items, item)
	}

	if p.currentToken.Type != tokenRParen {
		return nil, fmt.Errorf("offset %d: expected ')' but got %s", p.currentToken.Position, p.currentToken.Type)
	}
	p.nextToken() // consume ')'
	return list, nil
}

type tokenType int

const (
	tokenEOF tokenType = iota
	tokenSymbol
	tokenString
	tokenInteger
	tokenLParen
	tokenRParen
)

func (t tokenType) String() string {
	switch t {
	case tokenEOF:
		return "EOF"
	case tokenSymbol:
		return "symbol"
	case tokenString:
		return "string"
	case tokenInteger:
		return "integer"
	case tokenLParen:
		return "'('"
	case tokenRParen:
		return "')'"
	default:
		return fmt.Sprintf("unknown token %d", int(t))
	}
}

type token struct {
	Type     tokenType
	Value    string
	Position int
}

// lexer works on bytes; symbols and strings may still hold UTF-8 text since
// only ASCII bytes are ever delimiters.
type lexer struct {
	input string
	pos   int
	err   error
}

func newLexer(input string) *lexer {
	return &lexer{input: input}
}

func (l *lexer) peek(offset int) byte {
	if l.pos+offset >= len(l.input) {
		return 0
	}
	return l.input[l.pos+offset]
}

func (l *lexer) skipWhitespaceAndComments() {
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		switch {
		case c == ';':
			for l.pos < len(l.input) && l.input[l.pos] != '\n' {
				l.pos++
			}
		case unicode.IsSpace(rune(c)):
			l.pos++
		default:
			return
		}
	}
}

func (l *lexer) fail(format string, args ...any) token {
	if l.err == nil {
		l.err = fmt.Errorf("offset %d: "+format, append([]any{l.pos}, args...)...)
	}
	return token{Type: tokenEOF, Position: l.pos}
}

func (l *lexer) nextToken() token {
	l.skipWhitespaceAndComments()
	start := l.pos
	c := l.peek(0)

	switch {
	case l.pos >= len(l.input):
		return token{Type: tokenEOF, Position: start}
	case c == '(':
		l.pos++
		return token{Type: tokenLParen, Value: "(", Position: start}
	case c == ')':
		l.pos++
		return token{Type: tokenRParen, Value: ")", Position: start}
	case c == '"':
		return l.readString()
	case isDigit(c) || (c == '-' && isDigit(l.peek(1))):
		l.pos++
		for isDigit(l.peek(0)) {
			l.pos++
		}
		return token{Type: tokenInteger, Value: l.input[start:l.pos], Position: start}
	case isSymbolChar(c):
		for l.pos < len(l.input) && isSymbolChar(l.input[l.pos]) {
			l.pos++
		}
		return token{Type: tokenSymbol, Value: l.input[start:l.pos], Position: start}
	default:
		return l.fail("unexpected character '%c'", c)
	}
}

func (l *lexer) readString() token {
	start := l.pos
	l.pos++ // skip opening quote

	var sb strings.Builder
	for {
		if l.pos >= len(l.input) {
			return l.fail("unterminated string")
		}
		c := l.input[l.pos]
		switch c {
		case '"':
			l.pos++
			return token{Type: tokenString, Value: sb.String(), Position: start}
		case '\\':
			switch next := l.peek(1); next {
			case '"', '\\':
				sb.WriteByte(next)
				l.pos += 2
			default:
				return l.fail("invalid escape sequence: \\%c", next)
			}
		default:
			sb.WriteByte(c)
			l.pos++
		}
	}
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

// isSymbolChar accepts operator characters too, so "+" and "<=" are symbols.
func isSymbolChar(c byte) bool {
	switch {
	case c >= 0x80:
		return true
	case c <= ' ', c == '(', c == ')', c == '"', c == ';':
		return false
	default:
		return c < 0x7f
	}
}
