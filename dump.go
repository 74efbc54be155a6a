package mukku

import (
	"bytes"
	"encoding/json"
	"strings"
)

// TreeNode is the JSON shape of an AST node in the parse-tree dump.
type TreeNode struct {
	Type     string      `json:"type"`
	Value    string      `json:"value,omitempty"`
	Children []*TreeNode `json:"children,omitempty"`
}

// ToTree converts an AST into its JSON model.
func ToTree(node *ASTNode) *TreeNode {
	if node == nil {
		return nil
	}
	tn := &TreeNode{Type: node.Kind.String(), Value: node.Value}
	for _, child := range node.Children {
		tn.Children = append(tn.Children, ToTree(child))
	}
	return tn
}

// TreeJSON renders node with each nested object indented four spaces past
// its parent and each field two spaces past its object.
func TreeJSON(node *ASTNode) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ToTree(node)); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// ToSExpr converts an AST node to s-expression string representation
func ToSExpr(node *ASTNode) string {
	switch node.Kind {
	case NodeProgram:
		return sexprList("program", node.Children)
	case NodeBlock:
		return sexprList("block", node.Children)
	case NodeDeclaration:
		result := "(declare " + quote(node.Value)
		for _, child := range node.Children {
			result += " " + ToSExpr(child)
		}
		return result + ")"
	case NodePrint:
		return sexprList("print", node.Children)
	case NodeIfElse:
		return sexprList("if", node.Children)
	case NodeReturn:
		return sexprList("return", node.Children)
	case NodeBinaryExpr:
		left := ToSExpr(node.Children[0])
		right := ToSExpr(node.Children[1])
		return "(binary " + quote(node.Value) + " " + left + " " + right + ")"
	case NodeIdentifier:
		return "(var " + quote(node.Value) + ")"
	case NodeNumberLiteral:
		return node.Value
	case NodeStringLiteral:
		return "(string " + quote(unquote(node.Value)) + ")"
	default:
		panic(unhandledKind("sexpr", node))
	}
}

func sexprList(head string, children []*ASTNode) string {
	result := "(" + head
	for _, child := range children {
		result += " " + ToSExpr(child)
	}
	return result + ")"
}

// quote escapes only backslash and double quote, the two escapes the
// s-expression reader understands.
func quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
