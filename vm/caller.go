package vm

import (
	"sync"

	"github.com/npillmayer/sai"
	"github.com/npillmayer/sai/corelang"
	"github.com/npillmayer/sai/program"
)

// Handler executes a node on a VM.
type Handler func(vm *VM, n *program.Node) (sai.Value, error)

// FunctionCaller maps every operation to its handler.
type FunctionCaller struct {
	handlers [program.NumOps]Handler
}

// Handler returns the handler for an operation, or nil.
func (fc *FunctionCaller) Handler(op program.Op) Handler {
	if op >= program.NumOps {
		return nil
	}
	return fc.handlers[op]
}

var standardCaller *FunctionCaller
var initStandardCaller sync.Once

// StandardCaller returns the function caller for the standard language.
//
// Leaves 'identifier' and 'functionName' only appear as operands and have
// no handler; 'return' is handled by the executor.
func StandardCaller() *FunctionCaller {
	initStandardCaller.Do(func() {
		standardCaller = newStandardCaller(corelang.LoadStandardLanguage())
	})
	return standardCaller
}

func newStandardCaller(lang *corelang.Language) *FunctionCaller {
	fc := &FunctionCaller{}
	fc.handlers[program.OpValue] = execValue
	fc.handlers[program.OpGetVariable] = execGetVariable
	fc.handlers[program.OpAssignment] = execAssignment
	fc.handlers[program.OpIf] = execIf
	fc.handlers[program.OpWhile] = execLoop
	fc.handlers[program.OpFor] = execLoop
	fc.handlers[program.OpDoNothing] = execSentinel
	fc.handlers[program.OpFunctionCall] = execFunctionCall
	fc.handlers[program.OpPrint] = execPrint
	fc.handlers[program.OpStop] = execStop
	for op := program.OpNone; op < program.NumOps; op++ {
		if fc.handlers[op] != nil {
			continue
		}
		b, ok := lang.ForOp(op)
		if !ok || b.Fn == nil {
			continue
		}
		switch op {
		case program.OpIncrement, program.OpDecrement:
			fc.handlers[op] = execIncDec(b)
		default:
			fc.handlers[op] = execBuiltin(b)
		}
	}
	return fc
}

// CheckParameters checks the number of parameters of a node and evaluates
// them, in order.
func (vm *VM) CheckParameters(n *program.Node, count int) ([]sai.Value, error) {
	if n.Arity() != count {
		err := sai.NewParameterError(n.Op.String(), count, n.Arity())
		tracer().Errorf(err.Error())
		return nil, err
	}
	args := make([]sai.Value, count)
	for i, p := range n.Params {
		v, err := vm.Eval(p)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}

// floats converts evaluated parameters to floats. Undefined values, as
// returned from subroutines without return value, are rejected.
func floats(op program.Op, args []sai.Value) ([]float64, error) {
	f := make([]float64, len(args))
	for i, a := range args {
		x, err := a.AsFloat()
		if err != nil {
			tracer().Errorf("%s: parameter %d has no value", op, i+1)
			return nil, err
		}
		f[i] = x
	}
	return f, nil
}
