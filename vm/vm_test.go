package vm

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/npillmayer/sai"
	"github.com/npillmayer/sai/grammar"
	"github.com/npillmayer/sai/program"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestEveryOperationHasHandler(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sai.vm")
	defer teardown()
	//
	fc := StandardCaller()
	for op := program.OpNone + 1; op < program.NumOps; op++ {
		switch op {
		case program.OpIdentifier, program.OpFunctionName, program.OpReturn:
			continue
		}
		if fc.Handler(op) == nil {
			t.Errorf("expected handler for operation %s", op)
		}
	}
}

func TestUnknownExpression(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sai.vm")
	defer teardown()
	//
	vm := New(nil, nil, nil)
	if _, err := vm.Eval(program.NewLeaf(program.OpIdentifier, "x")); !errors.Is(err, sai.ErrUnknownExpression) {
		t.Errorf("expected unknown expression, got %v", err)
	}
	if _, err := vm.Eval(program.NewNode(program.NumOps)); !errors.Is(err, sai.ErrUnknownExpression) {
		t.Errorf("expected unknown expression, got %v", err)
	}
}

func TestCheckParameters(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sai.vm")
	defer teardown()
	//
	vm := New(nil, nil, nil)
	vm.Execute() // sets up frames, fails for missing main
	one := program.ValueNode(sai.FromFloat(1))
	_, err := vm.Eval(program.NewNode(program.OpAdd, one))
	if !errors.Is(err, sai.ErrIncorrectParameters) {
		t.Errorf("expected incorrect parameters, got %v", err)
	}
	_, err = vm.Eval(program.NewNode(program.OpSqrt))
	if !errors.Is(err, sai.ErrNoParameters) {
		t.Errorf("expected no parameters, got %v", err)
	}
	v, err := vm.Eval(program.NewNode(program.OpLess, one, program.ValueNode(sai.FromFloat(2))))
	if err != nil || v.Type() != sai.BooleanType || v.Literal() != "1" {
		t.Errorf("expected 1 < 2 to be true, got %v (%v)", v, err)
	}
}

func TestGlobalInitializers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sai.vm")
	defer teardown()
	//
	vm, _, err := run(t, "var x = 2 + 3 * 4; var y = x++; function void main() { }")
	if err != nil {
		t.Fatal(err)
	}
	if x := vm.Globals().Get("x").Value; x != 15 {
		t.Errorf("expected x = 15 after increment, is %g", x)
	}
	if y := vm.Globals().Get("y").Value; y != 14 {
		t.Errorf("expected y = 14, is %g", y)
	}
}

func TestMissingMain(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sai.vm")
	defer teardown()
	//
	if _, _, err := run(t, "var x = 1;"); !errors.Is(err, sai.ErrMissingMainFunction) {
		t.Errorf("expected missing main, got %v", err)
	}
}

func TestMainTakesNoParameters(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sai.vm")
	defer teardown()
	//
	_, out, err := run(t, "function void main(a) { print(a); }")
	if !errors.Is(err, sai.ErrIncorrectParameters) {
		t.Errorf("expected main with parameters to be rejected, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected main not to run, output is %v", out.Lines())
	}
}

func TestIfElse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sai.vm")
	defer teardown()
	//
	for src, expected := range map[string]string{
		"if (1 < 2) { print(1); } else { print(2); }":                       "1",
		"if (2 < 1) { print(1); } else { print(2); }":                       "2",
		"if (2 < 1) { print(1); } print(3);":                                  "3",
		"if (1 and 0) { print(1); } else { if (0 or 1) { print(4); } }":     "4",
		"if (1 != 1) { print(1); } else { print(2); } print(3);":            "2 3",
		"if (3 % 2 == 1) { if (0) { print(1); } else { print(2); } print(5); }": "2 5",
	} {
		_, out, err := run(t, "function void main() { "+src+" }")
		if err != nil {
			t.Errorf("%s: %v", src, err)
			continue
		}
		if got := strings.Join(out.Lines(), " "); got != expected {
			t.Errorf("%s: expected output %q, got %q", src, expected, got)
		}
	}
}

func TestWhileLoop(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sai.vm")
	defer teardown()
	//
	_, out, err := run(t, `function void main() {
		var n = 3;
		while (n > 0) {
			print(n);
			n = n - 1;
		}
		print(n);
	}`)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(out.Lines(), " "); got != "3 2 1 0" {
		t.Errorf("expected body to run 3 times, output is %q", got)
	}
}

func TestForLoop(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sai.vm")
	defer teardown()
	//
	_, out, err := run(t, `var sum = 0;
	function void main() {
		for (var i = 0; i < 3; i++) {
			for (var j = 0; j < i; j = j + 1) { sum = sum + 1; }
			print(i);
		}
		for (var k = 5; k < 3; k++) { print(k); }
		print(sum);
	}`)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(out.Lines(), " "); got != "0 1 2 3" {
		t.Errorf("unexpected output of nested for loops: %q", got)
	}
}

func TestRecursion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sai.vm")
	defer teardown()
	//
	_, out, err := run(t, `
	function float fact(float n) {
		if (n <= 1) { return 1; }
		return n * fact(n - 1);
	}
	function float keep(n) {
		var local = n * 10;
		if (n > 0) { keep(n - 1); }
		return local;
	}
	function void main() {
		print(fact(5));
		print(keep(3));
	}`)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(out.Lines(), " "); got != "120 30" {
		t.Errorf("expected fact(5) = 120 and intact locals, got %q", got)
	}
}

func TestCallErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sai.vm")
	defer teardown()
	//
	tests := []struct {
		src  string
		kind error
	}{
		{"function float add(a, b) { return a + b; } function void main() { print(add(1)); }", sai.ErrIncorrectParameters},
		{"function void main() { nowhere(1); }", sai.ErrSubroutineNotFound},
		{"function void main() { print(1 / 0); }", sai.ErrZeroDivide},
		{"function void main() { print(mod(1, 0)); }", sai.ErrZeroDivide},
		{"function void main() { print(ln(0)); }", sai.ErrInvalidInput},
		{"function void f() { } function void main() { var x = f(); }", sai.ErrInvalidInput},
		{"function void f() { return; } function void main() { print(f()); }", sai.ErrInvalidInput},
		{"function void main() { print(sqrt(4, 2)); }", sai.ErrIncorrectParameters},
	}
	for _, tt := range tests {
		if _, _, err := run(t, tt.src); !errors.Is(err, tt.kind) {
			t.Errorf("%q: expected %v, got %v", tt.src, tt.kind, err)
		}
	}
}

func TestCallDepth(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sai.vm")
	defer teardown()
	//
	src := "function void down(n) { down(n + 1); } function void main() { down(0); }"
	prog, err := grammar.Parse(src)
	if err != nil {
		t.Fatal(err)
	}
	vm := New(prog.Globals, prog.Nodes, prog.Subroutines, WithMaxCallDepth(50))
	if err = vm.Execute(); !errors.Is(err, sai.ErrCallDepth) {
		t.Errorf("expected call depth exceeded, got %v", err)
	}
	if vm.frames.Depth() != 0 {
		t.Errorf("expected all frames to be popped, depth is %d", vm.frames.Depth())
	}
}

func TestStop(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sai.vm")
	defer teardown()
	//
	_, out, err := run(t, "function void main() { print(1); stop(); print(2); }")
	if !errors.Is(err, sai.ErrStop) {
		t.Errorf("expected program to stop, got %v", err)
	}
	if got := strings.Join(out.Lines(), " "); got != "1" {
		t.Errorf("expected output before stop only, got %q", got)
	}
}

func TestOutputOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sai.vm")
	defer teardown()
	//
	_, out, err := run(t, `function void p(x) { print(x); }
	function void main() { print(1.5); p(2); print(sqr(3)); print(2 < 1); }`)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(out.Lines(), " "); got != "1.5 2 9 0" {
		t.Errorf("unexpected output %q", got)
	}
	out.Clear()
	if out.Len() != 0 {
		t.Errorf("expected cleared output to be empty")
	}
}

func TestIncrementDecrement(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sai.vm")
	defer teardown()
	//
	_, out, err := run(t, `var x = 1;
	function void main() { print(x++); print(x); x--; x--; print(x); print(5--); }`)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Join(out.Lines(), " "); got != "1 2 0 4" {
		t.Errorf("unexpected output %q", got)
	}
}

func TestStandardCallerIsShared(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sai.vm")
	defer teardown()
	//
	var wg sync.WaitGroup
	callers := make([]*FunctionCaller, 8)
	for i := range callers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			callers[i] = New(nil, nil, nil).caller
		}(i)
	}
	wg.Wait()
	for i, fc := range callers {
		if fc == nil || fc != callers[0] {
			t.Errorf("VM %d: expected the shared standard caller", i)
		}
	}
}

func run(t *testing.T, src string) (*VM, *sai.Output, error) {
	prog, err := grammar.Parse(src)
	if err != nil {
		t.Fatalf("cannot parse %q: %v", src, err)
	}
	out := &sai.Output{}
	vm := New(prog.Globals, prog.Nodes, prog.Subroutines, WithOutput(out))
	return vm, out, vm.Execute()
}
