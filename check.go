package mukku

// Checker resolves names against a flat symbol table.
type Checker struct {
	Symbols *SymbolTable
	Errors  *ErrorCollection
}

func NewChecker(symbols *SymbolTable, errs *ErrorCollection) *Checker {
	return &Checker{Symbols: symbols, Errors: errs}
}

// Check walks program depth-first, declaring variables and reporting
// redeclarations and uses of undeclared names.
func Check(program *ASTNode, symbols *SymbolTable, errs *ErrorCollection) {
	NewChecker(symbols, errs).checkNode(program)
}

func (c *Checker) checkNode(node *ASTNode) {
	if node == nil {
		return
	}

	switch node.Kind {
	case NodeDeclaration:
		// The initializer is resolved before the name exists, so
		// "val x = x;" is rejected.
		c.checkChildren(node)
		if err := c.Symbols.DeclareVariable(node.Value); err != nil {
			c.Errors.AddAt(StageCheck, node.Pos, "Variable '%s' already declared", node.Value)
		}

	case NodeIdentifier:
		if c.Symbols.LookupVariable(node.Value) == nil {
			c.Errors.AddAt(StageCheck, node.Pos, "Undeclared variable '%s'", node.Value)
		}

	case NodeProgram, NodePrint, NodeIfElse, NodeBlock, NodeReturn,
		NodeBinaryExpr, NodeNumberLiteral, NodeStringLiteral:
		c.checkChildren(node)

	default:
		panic(unhandledKind("check", node))
	}
}

func (c *Checker) checkChildren(node *ASTNode) {
	for _, child := range node.Children {
		c.checkNode(child)
	}
}
