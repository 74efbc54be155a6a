package mukku

import "strconv"

// IRGenerator lowers an AST to three-address code. Temporaries (T<n>) and
// labels (L<n>) are numbered from one shared counter, so label numbers skip
// the values used by temporaries and vice versa.
type IRGenerator struct {
	Code    []string
	counter int
}

func NewIRGenerator() *IRGenerator {
	return &IRGenerator{}
}

// GenerateIR returns the three-address code for program.
func GenerateIR(program *ASTNode) []string {
	g := NewIRGenerator()
	g.Generate(program)
	return g.Code
}

func (g *IRGenerator) emit(instr string) {
	g.Code = append(g.Code, instr)
}

func (g *IRGenerator) next() int {
	g.counter++
	return g.counter
}

func (g *IRGenerator) newTemp() string {
	return "T" + strconv.Itoa(g.next())
}

func (g *IRGenerator) newLabel() string {
	return "L" + strconv.Itoa(g.next())
}

// Generate emits code for node and returns the name holding its value:
// a variable, a literal or a temporary. Statements return "".
func (g *IRGenerator) Generate(node *ASTNode) string {
	switch node.Kind {
	case NodeProgram, NodeBlock:
		for _, child := range node.Children {
			g.Generate(child)
		}

	case NodeDeclaration:
		if len(node.Children) > 0 {
			value := g.Generate(node.Children[0])
			g.emit(node.Value + " = " + value)
		}

	case NodePrint:
		value := g.Generate(node.Children[0])
		g.emit("print " + value)

	case NodeReturn:
		value := g.Generate(node.Children[0])
		g.emit("return " + value)

	case NodeIfElse:
		cond := g.Generate(node.Children[0])
		elseLabel := g.newLabel()
		endLabel := g.newLabel()

		g.emit("ifnot " + cond + " goto " + elseLabel)
		g.Generate(node.Children[1])
		g.emit("goto " + endLabel)
		g.emit(elseLabel + ":")
		if len(node.Children) > 2 {
			g.Generate(node.Children[2])
		}
		g.emit(endLabel + ":")

	case NodeBinaryExpr:
		left := g.Generate(node.Children[0])
		right := g.Generate(node.Children[1])
		result := g.newTemp()
		g.emit(result + " = " + left + " " + node.Value + " " + right)
		return result

	case NodeIdentifier, NodeNumberLiteral, NodeStringLiteral:
		return node.Value

	default:
		panic(unhandledKind("ir", node))
	}
	return ""
}
