package mukku

// Parser builds an AST from a token stream. Syntax errors are recorded in
// Errors; a statement that fails to parse is dropped and parsing goes on with
// the next token, so a single run can report several errors.
type Parser struct {
	tokens []Token
	pos    int

	Errors *ErrorCollection
}

// NewParser creates a parser over tokens, which must end with an END token.
func NewParser(tokens []Token, errs *ErrorCollection) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != END {
		tokens = append(tokens, Token{Kind: END, Line: 1})
	}
	return &Parser{tokens: tokens, Errors: errs}
}

func (p *Parser) current() Token {
	return p.tokens[p.pos]
}

// advance moves to the next token but never past END.
func (p *Parser) advance() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
}

func (p *Parser) errorf(format string, args ...any) {
	p.Errors.AddAt(StageParse, p.current().Pos(), format, args...)
}

// expect consumes a token of the given kind or records "Expected <what>".
func (p *Parser) expect(kind TokenKind, what string) bool {
	if p.current().Kind != kind {
		p.errorf("Expected %s", what)
		return false
	}
	p.advance()
	return true
}

// ParseProgram parses statements until END. The result is never nil, but it
// is only meaningful when Errors is empty.
func (p *Parser) ParseProgram() *ASTNode {
	program := &ASTNode{Kind: NodeProgram, Pos: p.current().Pos()}
	for p.current().Kind != END {
		if stmt := p.ParseStatement(); stmt != nil {
			program.addChild(stmt)
		}
	}
	return program
}

// ParseStatement dispatches on the leading keyword.
func (p *Parser) ParseStatement() *ASTNode {
	switch p.current().Kind {
	case VAL:
		return p.parseDeclaration()
	case PRT:
		return p.parsePrint()
	case AGAR:
		return p.parseIfElse()
	case BHEJO:
		return p.parseReturn()
	default:
		p.errorf("Unexpected statement or keyword '%s'", p.current().Text)
		p.advance()
		return nil
	}
}

func (p *Parser) parseDeclaration() *ASTNode {
	start := p.current().Pos()
	p.advance() // skip 'val'

	tok := p.current()
	if tok.Kind.IsKeyword() {
		p.errorf("Cannot use reserved keyword '%s' as an identifier after 'val'", tok.Text)
		return nil
	}
	if tok.Kind != IDENT {
		p.errorf("Expected identifier after 'val'")
		return nil
	}
	if reservedKeywords[tok.Text] {
		p.errorf("Cannot use reserved keyword '%s' as an identifier after 'val'", tok.Text)
		return nil
	}
	p.advance() // skip identifier

	decl := &ASTNode{Kind: NodeDeclaration, Value: tok.Text, Pos: start}
	if p.current().Kind == ASSIGN {
		p.advance() // skip '='
		init := p.ParseExpression()
		if init == nil {
			p.errorf("Invalid expression in declaration")
			return nil
		}
		decl.addChild(init)
	}

	if !p.expect(SEMI, "';' at end of declaration") {
		return nil
	}
	return decl
}

func (p *Parser) parsePrint() *ASTNode {
	start := p.current().Pos()
	p.advance() // skip 'prt'
	if !p.expect(LPAREN, "'(' after 'prt'") {
		return nil
	}

	var arg *ASTNode
	if tok := p.current(); tok.Kind == STRING {
		arg = &ASTNode{Kind: NodeStringLiteral, Value: tok.Text, Pos: tok.Pos()}
		p.advance()
	} else {
		arg = p.ParseExpression()
		if arg == nil {
			return nil
		}
	}

	if !p.expect(RPAREN, "')' after prt argument") {
		return nil
	}
	if !p.expect(SEMI, "';' after prt statement") {
		return nil
	}
	return &ASTNode{Kind: NodePrint, Children: []*ASTNode{arg}, Pos: start}
}

func (p *Parser) parseIfElse() *ASTNode {
	start := p.current().Pos()
	p.advance() // skip 'agar'
	if !p.expect(LPAREN, "'(' after 'agar'") {
		return nil
	}

	cond := p.ParseExpression()
	if cond == nil {
		p.errorf("Invalid condition in agar statement")
		return nil
	}
	if !p.expect(RPAREN, "')' after agar condition") {
		return nil
	}
	if !p.expect(LBRACE, "'{' after agar condition") {
		return nil
	}
	thenBlock := p.parseBlockBody()
	if !p.expect(RBRACE, "'}' at end of agar block") {
		return nil
	}

	node := &ASTNode{Kind: NodeIfElse, Children: []*ASTNode{cond, thenBlock}, Pos: start}

	if p.current().Kind == NHI_TO {
		p.advance() // skip 'nhi-to'
		if !p.expect(LBRACE, "'{' after nhi-to") {
			return nil
		}
		elseBlock := p.parseBlockBody()
		if !p.expect(RBRACE, "'}' at end of nhi-to block") {
			return nil
		}
		node.addChild(elseBlock)
	}
	return node
}

// parseBlockBody parses statements up to (not including) '}' or END.
func (p *Parser) parseBlockBody() *ASTNode {
	block := &ASTNode{Kind: NodeBlock, Pos: p.current().Pos()}
	for p.current().Kind != RBRACE && p.current().Kind != END {
		if stmt := p.ParseStatement(); stmt != nil {
			block.addChild(stmt)
		}
	}
	return block
}

func (p *Parser) parseReturn() *ASTNode {
	start := p.current().Pos()
	p.advance() // skip 'bhejo'

	expr := p.ParseExpression()
	if expr == nil {
		p.errorf("Invalid expression in bhejo statement")
		return nil
	}
	if !p.expect(SEMI, "';' after bhejo statement") {
		return nil
	}
	return &ASTNode{Kind: NodeReturn, Children: []*ASTNode{expr}, Pos: start}
}

// precedence returns the precedence tier of a binary operator, or -1 if op
// is not one.
func precedence(op string) int {
	switch op {
	case "==", "!=", "<", ">", "<=", ">=":
		return 0
	case "+", "-":
		return 1
	case "*", "/":
		return 2
	default:
		return -1
	}
}

// ParseExpression parses a binary expression.
func (p *Parser) ParseExpression() *ASTNode {
	return p.parseExpressionWithPrecedence(0)
}

// parseExpressionWithPrecedence implements precedence climbing. The right
// operand is parsed with prec+1 and the loop continues at the caller's
// minPrec, so "8 - 3 - 2" groups as "(8 - 3) - 2".
func (p *Parser) parseExpressionWithPrecedence(minPrec int) *ASTNode {
	left := p.parsePrimary()
	if left == nil {
		return nil
	}

	for {
		tok := p.current()
		if tok.Kind != OP && tok.Kind != COMPARE {
			break
		}
		prec := precedence(tok.Text)
		if prec < minPrec {
			break
		}
		p.advance()

		right := p.parseExpressionWithPrecedence(prec + 1)
		if right == nil {
			return nil
		}
		left = &ASTNode{
			Kind:     NodeBinaryExpr,
			Value:    tok.Text,
			Children: []*ASTNode{left, right},
			Pos:      left.Pos,
		}
	}
	return left
}

func (p *Parser) parsePrimary() *ASTNode {
	tok := p.current()
	switch tok.Kind {
	case IDENT:
		p.advance()
		return &ASTNode{Kind: NodeIdentifier, Value: tok.Text, Pos: tok.Pos()}
	case NUMBER:
		p.advance()
		return &ASTNode{Kind: NodeNumberLiteral, Value: tok.Text, Pos: tok.Pos()}
	default:
		p.errorf("Expected identifier or number in expression")
		return nil
	}
}
