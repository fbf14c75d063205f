package evaluator_test

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/npillmayer/sai"
	"github.com/npillmayer/sai/evaluator"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	lua "github.com/yuin/gopher-lua"
)

func TestSetup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sai")
	defer teardown()
	//
	intp := evaluator.NewInterpreter()
	if intp == nil {
		t.Errorf("error creating interpreter")
	}
	if err := intp.Start("  \n "); err != evaluator.ErrNoProgramToExecute {
		t.Errorf("expected empty-input-error, but got %v", err)
	}
}

func TestPrecedence(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sai")
	defer teardown()
	//
	intp := evaluator.NewInterpreter()
	if err := intp.Start("var x = 2 + 3 * 4; function void main() { print(x); }"); err != nil {
		t.Fatal(err)
	}
	if x := intp.Globals().Get("x").Value; x != 14 {
		t.Errorf("expected x = 14, is %g", x)
	}
	if lines := intp.Output().Lines(); len(lines) != 1 || lines[0] != "14" {
		t.Errorf("expected output [14], got %v", lines)
	}
}

func TestIfElseOutput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sai")
	defer teardown()
	//
	intp := evaluator.NewInterpreter()
	if err := intp.Start("function void main() { if (1 < 2) { print(1); } else { print(2); } }"); err != nil {
		t.Fatal(err)
	}
	if err := intp.Start("function void main() { if (2 < 1) { print(1); } else { print(2); } }"); err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(intp.Output().Lines(), ","); got != "1,2" {
		t.Errorf("expected output 1,2, got %s", got)
	}
	intp.Output().Clear()
	if intp.Output().Len() != 0 {
		t.Errorf("expected empty output after clear")
	}
}

func TestCountdown(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sai")
	defer teardown()
	//
	intp := evaluator.NewInterpreter()
	src := `var runs = 0;
	function void main() {
		var n = 3;
		while (n > 0) { runs = runs + 1; n = n - 1; }
	}`
	if err := intp.Start(src); err != nil {
		t.Fatal(err)
	}
	if runs := intp.Globals().Get("runs").Value; runs != 3 {
		t.Errorf("expected loop body to run 3 times, ran %g times", runs)
	}
}

func TestErrorsTerminateRun(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sai")
	defer teardown()
	//
	tests := []struct {
		src  string
		kind error
	}{
		{"function float add(a, b) { return a + b; } function void main() { add(1); }", sai.ErrIncorrectParameters},
		{"function void main() { undeclared(); }", sai.ErrSubroutineNotFound},
		{"function void main() { print(undeclared); }", sai.ErrSymbolNotFound},
		{"function void main() { print(1) }", sai.ErrParse},
		{"var x = 1;", sai.ErrMissingMainFunction},
		{"function void main() { print(1); print(1 % 0); print(2); }", sai.ErrZeroDivide},
	}
	for _, tt := range tests {
		intp := evaluator.NewInterpreter()
		if err := intp.Start(tt.src); !errors.Is(err, tt.kind) {
			t.Errorf("%q: expected %v, got %v", tt.src, tt.kind, err)
		}
		if intp.Output().Len() > 1 {
			t.Errorf("%q: expected run to terminate at first error", tt.src)
		}
	}
}

func TestRecursiveFactorial(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sai")
	defer teardown()
	//
	src := `
	function float fact(float n) {
		var before = n;
		var r = 1;
		if (n > 1) { r = n * fact(n - 1); }
		if (before != n) { print(-1); }
		return r;
	}
	function void main() {
		for (var i = 1; i <= 6; i++) { print(fact(i)); }
	}`
	intp := evaluator.NewInterpreter()
	if err := intp.Start(src); err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(intp.Output().Lines(), " "); got != "1 2 6 24 120 720" {
		t.Errorf("unexpected factorials: %s", got)
	}
}

func TestExtraSink(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sai")
	defer teardown()
	//
	var b strings.Builder
	intp := evaluator.NewInterpreter(evaluator.WithSink(sai.WriterSink{W: &b, Precision: 2}))
	if err := intp.Start("function void main() { print(1 / 3); print(7); }"); err != nil {
		t.Fatal(err)
	}
	if b.String() != "0.33\n7\n" {
		t.Errorf("expected rounded output on writer, got %q", b.String())
	}
	if intp.Output().Lines()[1] != "7" {
		t.Errorf("expected exact literals in interpreter output")
	}
}

func TestStopRun(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sai")
	defer teardown()
	//
	intp := evaluator.NewInterpreter()
	err := intp.Start("function void main() { print(1); stop(); print(2); }")
	if !errors.Is(err, sai.ErrStop) {
		t.Errorf("expected stop, got %v", err)
	}
}

// '^' shares the level of '*' and, as every binary operator, groups to the
// left. Prefix minus belongs to its operand.
func TestRaise(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sai")
	defer teardown()
	//
	tests := []struct {
		expr string
		r    float64
	}{
		{"2 ^ 3 ^ 2", 64},
		{"2 * 3 ^ 2", 36},
		{"2 ^ 3 * 2", 16},
		{"2 + 3 ^ 2", 11},
		{"4 ^ 0.5", 2},
		{"2 ^ -1", 0.5},
		{"-2 ^ 2", 4},
		{"3 - -2", 5},
		{"pow(2, 3) ^ 2", 64},
	}
	for _, tt := range tests {
		intp := evaluator.NewInterpreter()
		if err := intp.Start(fmt.Sprintf("var r = %s; function void main() { }", tt.expr)); err != nil {
			t.Errorf("%s: %v", tt.expr, err)
			continue
		}
		if r := intp.Globals().Get("r").Value; r != tt.r {
			t.Errorf("%s: expected %g, got %g", tt.expr, tt.r, r)
		}
	}
}

// Arithmetic on literals has to match float64 arithmetic, as implemented
// by Lua. Lua groups '^' to the right, so it is left out here.
func TestArithmeticAgainstLua(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sai")
	defer teardown()
	//
	L := lua.NewState()
	defer L.Close()
	rnd := rand.New(rand.NewSource(4711))
	for i := 0; i < 200; i++ {
		expr := randomExpr(rnd, 3)
		intp := evaluator.NewInterpreter()
		err := intp.Start(fmt.Sprintf("var r = %s; function void main() { }", expr))
		if errors.Is(err, sai.ErrZeroDivide) {
			continue
		} else if err != nil {
			t.Fatalf("%s: %v", expr, err)
		}
		if err = L.DoString("return " + expr); err != nil {
			t.Fatalf("lua cannot evaluate %s: %v", expr, err)
		}
		expected := float64(L.Get(-1).(lua.LNumber))
		L.Pop(1)
		if got := intp.Globals().Get("r").Value; got != expected {
			t.Errorf("%s: expected %g, got %g", expr, expected, got)
		}
	}
}

func randomExpr(rnd *rand.Rand, depth int) string {
	if depth == 0 || rnd.Intn(4) == 0 {
		return fmt.Sprintf("%d.%d", rnd.Intn(20), rnd.Intn(10))
	}
	ops := []string{"+", "-", "*", "/"}
	lhs, rhs := randomExpr(rnd, depth-1), randomExpr(rnd, depth-1)
	op := ops[rnd.Intn(len(ops))]
	if rnd.Intn(3) == 0 {
		return fmt.Sprintf("(%s %s %s)", lhs, op, rhs)
	}
	return fmt.Sprintf("%s %s %s", lhs, op, rhs)
}
