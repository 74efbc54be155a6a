package mukku

import "fmt"

// NodeKind represents different types of AST nodes
type NodeKind int

const (
	NodeProgram       NodeKind = iota
	NodeDeclaration            // Value: variable name; Children: [initializer]?
	NodePrint                  // Children: [StringLiteral | expression]
	NodeIfElse                 // Children: [condition, then Block, else Block?]
	NodeBlock                  // Children: statements
	NodeReturn                 // Children: [expression]
	NodeBinaryExpr             // Value: operator; Children: [left, right]
	NodeIdentifier             // Value: name
	NodeNumberLiteral          // Value: decimal digits
	NodeStringLiteral          // Value: literal text including the quotes
)

var nodeKindNames = [...]string{
	NodeProgram:       "Program",
	NodeDeclaration:   "Declaration",
	NodePrint:         "Print",
	NodeIfElse:        "IfElse",
	NodeBlock:         "Block",
	NodeReturn:        "Return",
	NodeBinaryExpr:    "BinaryExpr",
	NodeIdentifier:    "Identifier",
	NodeNumberLiteral: "NumberLiteral",
	NodeStringLiteral: "StringLiteral",
}

func (k NodeKind) String() string {
	if k >= 0 && int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return fmt.Sprintf("NodeKind(%d)", int(k))
}

// ASTNode represents a node in the Abstract Syntax Tree
type ASTNode struct {
	Kind     NodeKind
	Value    string
	Children []*ASTNode
	Pos      Pos // first token of the node; not part of any dump
}

func (n *ASTNode) addChild(child *ASTNode) {
	n.Children = append(n.Children, child)
}

// unhandledKind is called from the default case of every switch over
// NodeKind. Reaching it means a consumer is missing a case.
func unhandledKind(stage string, n *ASTNode) string {
	return fmt.Sprintf("%s: unhandled node kind %v", stage, n.Kind)
}
