package mukku

// registers is the whole register pool. Registers are handed out by cycling
// a counter modulo len(registers) and are never freed, so an expression
// needing more than four live values silently reuses a register that still
// holds an operand. Small expressions are unaffected.
var registers = [...]string{"eax", "ebx", "ecx", "edx"}

var lowByte = map[string]string{
	"eax": "al",
	"ebx": "bl",
	"ecx": "cl",
	"edx": "dl",
}

var setccSuffix = map[string]string{
	"==": "e",
	"!=": "ne",
	"<":  "l",
	">":  "g",
	"<=": "le",
	">=": "ge",
}

func register(idx int) string {
	return registers[idx%len(registers)]
}

// AsmGenerator lowers an AST to a naive register-based pseudo-assembly.
// Control flow is not lowered: IfElse and Print produce no instructions.
type AsmGenerator struct {
	Code []string
}

func NewAsmGenerator() *AsmGenerator {
	return &AsmGenerator{}
}

// GenerateAsm returns the pseudo-assembly for program.
func GenerateAsm(program *ASTNode) []string {
	g := NewAsmGenerator()
	regCount := 0
	g.Generate(program, &regCount)
	return g.Code
}

func (g *AsmGenerator) emit(instr string) {
	g.Code = append(g.Code, instr)
}

// Generate emits code for node using *regCount to pick registers and returns
// the register holding an expression's value ("" for statements).
func (g *AsmGenerator) Generate(node *ASTNode, regCount *int) string {
	switch node.Kind {
	case NodeProgram, NodeBlock:
		for _, child := range node.Children {
			g.Generate(child, regCount)
		}

	case NodeNumberLiteral, NodeIdentifier:
		reg := register(*regCount)
		*regCount++
		g.emit("mov " + reg + ", " + node.Value)
		return reg

	case NodeBinaryExpr:
		left := g.Generate(node.Children[0], regCount)
		right := g.Generate(node.Children[1], regCount)
		switch op := node.Value; op {
		case "+":
			g.emit("add " + left + ", " + right)
		case "-":
			g.emit("sub " + left + ", " + right)
		case "*":
			g.emit("imul " + left + ", " + right)
		case "/":
			// Sign-extend the dividend before the two-register divide.
			g.emit("cdq")
			g.emit("idiv " + right)
		default:
			g.emit("cmp " + left + ", " + right)
			g.emit("set" + setccSuffix[op] + " " + lowByte[left])
			g.emit("movzx " + left + ", " + lowByte[left])
		}
		return left

	case NodeDeclaration:
		if len(node.Children) > 0 {
			local := 0
			reg := g.Generate(node.Children[0], &local)
			g.emit("mov " + node.Value + ", " + reg)
		} else {
			g.emit("mov " + node.Value + ", 0")
		}

	case NodeReturn:
		local := 0
		reg := g.Generate(node.Children[0], &local)
		g.emit("mov eax, " + reg)
		g.emit("ret")

	case NodeIfElse, NodePrint:
		// not lowered

	case NodeStringLiteral:
		// only reachable through Print, which is not lowered

	default:
		panic(unhandledKind("asm", node))
	}
	return ""
}
