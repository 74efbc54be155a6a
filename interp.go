package mukku

import (
	"errors"
	"fmt"
	"io"
	"strconv"
)

var (
	ErrDivisionByZero = errors.New("division by zero")
	ErrLiteralRange   = errors.New("integer literal out of range")
)

// Interpreter executes an AST directly, independent of the generated code.
// Variables live in one global map.
type Interpreter struct {
	out       io.Writer
	variables map[string]int
}

func NewInterpreter(out io.Writer) *Interpreter {
	return &Interpreter{out: out, variables: make(map[string]int)}
}

// Variable returns the current value of name and whether it is bound.
func (in *Interpreter) Variable(name string) (int, bool) {
	v, ok := in.variables[name]
	return v, ok
}

// Run executes program. It stops at the first runtime error.
func (in *Interpreter) Run(program *ASTNode) error {
	return in.execute(program)
}

func (in *Interpreter) execute(node *ASTNode) error {
	switch node.Kind {
	case NodeProgram, NodeBlock:
		for _, child := range node.Children {
			if err := in.execute(child); err != nil {
				return err
			}
		}

	case NodeDeclaration:
		value := 0
		if len(node.Children) > 0 {
			v, err := in.evaluate(node.Children[0])
			if err != nil {
				return err
			}
			value = v
		}
		in.variables[node.Value] = value

	case NodePrint:
		arg := node.Children[0]
		if arg.Kind == NodeStringLiteral {
			_, err := fmt.Fprintln(in.out, unquote(arg.Value))
			return err
		}
		v, err := in.evaluate(arg)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(in.out, v)
		return err

	case NodeIfElse:
		cond, err := in.evaluate(node.Children[0])
		if err != nil {
			return err
		}
		if cond != 0 {
			return in.execute(node.Children[1])
		}
		if len(node.Children) > 2 {
			return in.execute(node.Children[2])
		}

	case NodeReturn:
		// There are no functions, so a return is a labelled print and
		// execution continues.
		v, err := in.evaluate(node.Children[0])
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(in.out, "Return: %d\n", v)
		return err

	case NodeBinaryExpr, NodeIdentifier, NodeNumberLiteral, NodeStringLiteral:
		_, err := in.evaluate(node)
		return err

	default:
		panic(unhandledKind("interp", node))
	}
	return nil
}

func (in *Interpreter) evaluate(node *ASTNode) (int, error) {
	switch node.Kind {
	case NodeNumberLiteral:
		v, err := strconv.Atoi(node.Value)
		if err != nil {
			return 0, fmt.Errorf("%w: %s", ErrLiteralRange, node.Value)
		}
		return v, nil

	case NodeIdentifier:
		// Unbound names read as zero; a checked program never has any.
		return in.variables[node.Value], nil

	case NodeBinaryExpr:
		left, err := in.evaluate(node.Children[0])
		if err != nil {
			return 0, err
		}
		right, err := in.evaluate(node.Children[1])
		if err != nil {
			return 0, err
		}
		return applyOperator(node.Value, left, right)

	case NodeStringLiteral:
		return 0, nil

	case NodeProgram, NodeDeclaration, NodePrint, NodeIfElse, NodeBlock, NodeReturn:
		panic(fmt.Sprintf("interp: %v is not an expression", node.Kind))

	default:
		panic(unhandledKind("interp", node))
	}
}

func applyOperator(op string, left, right int) (int, error) {
	switch op {
	case "+":
		return left + right, nil
	case "-":
		return left - right, nil
	case "*":
		return left * right, nil
	case "/":
		if right == 0 {
			return 0, ErrDivisionByZero
		}
		return left / right, nil
	case "==":
		return boolToInt(left == right), nil
	case "!=":
		return boolToInt(left != right), nil
	case "<":
		return boolToInt(left < right), nil
	case "<=":
		return boolToInt(left <= right), nil
	case ">":
		return boolToInt(left > right), nil
	case ">=":
		return boolToInt(left >= right), nil
	default:
		panic("interp: unknown operator " + op)
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// unquote strips one leading and one trailing '"' when both are present.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
