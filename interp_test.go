package mukku

import (
	"bytes"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/nalgeon/be"
)

func runInput(t *testing.T, input string) (string, *Interpreter, error) {
	t.Helper()
	var out bytes.Buffer
	in := NewInterpreter(&out)
	err := in.Run(parseOK(t, input))
	return out.String(), in, err
}

func TestInterpPrint(t *testing.T) {
	tests := []struct {
		input  string
		output string
	}{
		{"prt(42);", "42\n"},
		{`prt("hello");`, "hello\n"},
		{`prt("");`, "\n"},
		{"prt(2 + 3 * 4);", "14\n"},
		{"prt(10 - 2 - 3);", "5\n"},
		{"prt(100 / 10 / 5);", "2\n"},
		{"prt(0 - 5);", "-5\n"},
		{"prt(7 / 2);", "3\n"},
		{"prt(1 < 2);", "1\n"},
		{"prt(2 < 1);", "0\n"},
		{"prt(1 + 1 == 2);", "1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			out, _, err := runInput(t, tt.input)
			be.Err(t, err, nil)
			be.Equal(t, out, tt.output)
		})
	}
}

func TestInterpConditional(t *testing.T) {
	out, _, err := runInput(t, "val a = 5; agar (a > 3) { prt(1); } nhi-to { prt(0); }")
	be.Err(t, err, nil)
	be.Equal(t, out, "1\n")

	out, _, err = runInput(t, "val a = 2; agar (a > 3) { prt(1); } nhi-to { prt(0); }")
	be.Err(t, err, nil)
	be.Equal(t, out, "0\n")

	out, _, err = runInput(t, "agar (0) { prt(1); }\nprt(2);")
	be.Err(t, err, nil)
	be.Equal(t, out, "2\n")

	// Any nonzero value is true.
	out, _, err = runInput(t, "agar (0 - 3) { prt(1); }")
	be.Err(t, err, nil)
	be.Equal(t, out, "1\n")
}

func TestInterpVariables(t *testing.T) {
	_, in, err := runInput(t, "val r = 2 + 3 * 4;\nval s;\nagar (r) { val inner = r / 2; }")
	be.Err(t, err, nil)

	r, ok := in.Variable("r")
	be.True(t, ok)
	be.Equal(t, r, 14)

	s, ok := in.Variable("s")
	be.True(t, ok)
	be.Equal(t, s, 0)

	inner, ok := in.Variable("inner")
	be.True(t, ok)
	be.Equal(t, inner, 7)

	_, ok = in.Variable("missing")
	be.True(t, !ok)
}

func TestInterpReturn(t *testing.T) {
	out, _, err := runInput(t, "val x = 6;\nbhejo x * 7;\nprt(x);")
	be.Err(t, err, nil)
	be.Equal(t, out, "Return: 42\n6\n")
}

func TestInterpDivisionByZero(t *testing.T) {
	out, _, err := runInput(t, "prt(1);\nval z = 0;\nprt(5 / z);\nprt(2);")
	be.True(t, errors.Is(err, ErrDivisionByZero))
	be.Equal(t, out, "1\n")

	_, _, err = runInput(t, "agar (1 / 0) { }")
	be.True(t, errors.Is(err, ErrDivisionByZero))
}

func TestInterpLiteralRange(t *testing.T) {
	_, _, err := runInput(t, "val big = 99999999999999999999;")
	be.True(t, errors.Is(err, ErrLiteralRange))
	be.True(t, strings.Contains(err.Error(), "99999999999999999999"))
}

// Evaluating "a op b" agrees with Go's integer arithmetic.
func TestInterpOperatorsAgreeWithGo(t *testing.T) {
	ops := map[string]func(a, b int) int{
		"+":  func(a, b int) int { return a + b },
		"-":  func(a, b int) int { return a - b },
		"*":  func(a, b int) int { return a * b },
		"/":  func(a, b int) int { return a / b },
		"==": func(a, b int) int { return boolToInt(a == b) },
		"!=": func(a, b int) int { return boolToInt(a != b) },
		"<":  func(a, b int) int { return boolToInt(a < b) },
		">":  func(a, b int) int { return boolToInt(a > b) },
		"<=": func(a, b int) int { return boolToInt(a <= b) },
		">=": func(a, b int) int { return boolToInt(a >= b) },
	}

	r := rand.New(rand.NewPCG(3, 4))
	for range 500 {
		a := r.IntN(2000)
		b := r.IntN(2000) + 1
		for op, fn := range ops {
			src := fmt.Sprintf("val a = %d;\nval b = %d;\nprt(a %s b);", a, b, op)
			out, _, err := runInput(t, src)
			be.Err(t, err, nil)
			be.Equal(t, out, fmt.Sprintf("%d\n", fn(a, b)))
		}
	}
}

func TestUnquote(t *testing.T) {
	be.Equal(t, unquote(`"abc"`), "abc")
	be.Equal(t, unquote(`""`), "")
	be.Equal(t, unquote(`"`), `"`)
	be.Equal(t, unquote("abc"), "abc")
}

// randomChain builds "n0 op n1 op n2 ..." from arithmetic operators and
// returns the source with its operands and operators.
func randomChain(r *rand.Rand) (string, []int, []string) {
	arith := []string{"+", "-", "*", "/"}
	operands := []int{r.IntN(100)}
	var operators []string
	for range r.IntN(5) + 1 {
		operators = append(operators, arith[r.IntN(len(arith))])
		operands = append(operands, r.IntN(99)+1)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprint(operands[0]))
	for i, op := range operators {
		fmt.Fprintf(&sb, " %s %d", op, operands[i+1])
	}
	return sb.String(), operands, operators
}

// evalChain folds "*" and "/" left to right into terms, then folds the
// terms with "+" and "-" left to right.
func evalChain(operands []int, operators []string) int {
	terms := []int{operands[0]}
	var termOps []string
	for i, op := range operators {
		n := operands[i+1]
		switch op {
		case "*":
			terms[len(terms)-1] *= n
		case "/":
			terms[len(terms)-1] /= n
		default:
			terms = append(terms, n)
			termOps = append(termOps, op)
		}
	}

	result := terms[0]
	for i, op := range termOps {
		if op == "+" {
			result += terms[i+1]
		} else {
			result -= terms[i+1]
		}
	}
	return result
}

// Chains mixing precedence tiers evaluate with "*" and "/" binding tighter
// and equal tiers grouping to the left.
func TestInterpMixedChainsAgreeWithGo(t *testing.T) {
	compares := map[string]func(a, b int) bool{
		"==": func(a, b int) bool { return a == b },
		"!=": func(a, b int) bool { return a != b },
		"<":  func(a, b int) bool { return a < b },
		">":  func(a, b int) bool { return a > b },
		"<=": func(a, b int) bool { return a <= b },
		">=": func(a, b int) bool { return a >= b },
	}
	compareOps := []string{"==", "!=", "<", ">", "<=", ">="}

	r := rand.New(rand.NewPCG(5, 6))
	for range 500 {
		src, operands, operators := randomChain(r)
		want := evalChain(operands, operators)

		if r.IntN(3) == 0 {
			rsrc, roperands, roperators := randomChain(r)
			op := compareOps[r.IntN(len(compareOps))]
			src = src + " " + op + " " + rsrc
			want = boolToInt(compares[op](want, evalChain(roperands, roperators)))
		}

		out, _, err := runInput(t, "prt("+src+");")
		be.Err(t, err, nil)
		be.Equal(t, out, fmt.Sprintf("%d\n", want))
	}
}

func TestInterpLeftGrouping(t *testing.T) {
	tests := []struct {
		input  string
		output string
	}{
		{"prt(8 - 3 - 2);", "3\n"},
		{"prt(64 / 8 / 2);", "4\n"},
		{"prt(7 / 2 * 2);", "6\n"},
		{"prt(10 - 4 + 3);", "9\n"},
	}
	for _, tt := range tests {
		out, _, err := runInput(t, tt.input)
		be.Err(t, err, nil)
		be.Equal(t, out, tt.output)
	}
}
