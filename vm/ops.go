package vm

import (
	"fmt"

	"github.com/npillmayer/sai"
	"github.com/npillmayer/sai/corelang"
	"github.com/npillmayer/sai/program"
	"github.com/npillmayer/sai/sframe"
)

// --- Leaves and variables --------------------------------------------------

func execValue(vm *VM, n *program.Node) (sai.Value, error) {
	return n.Value(), nil
}

func execGetVariable(vm *VM, n *program.Node) (sai.Value, error) {
	sym, err := vm.symbol(n.Literal)
	if err != nil {
		return sai.None, err
	}
	return sai.FromFloat(sym.Value), nil
}

// symbol resolves a name against the active invocation, then the globals.
func (vm *VM) symbol(name string) (*sframe.Symbol, error) {
	if sym := vm.frames.Resolve(name); sym != nil {
		return sym, nil
	}
	tracer().P("symbol", name).Errorf("symbol not found")
	return nil, fmt.Errorf("%w: %s", sai.ErrSymbolNotFound, name)
}

// assignment(identifier, expression)
func execAssignment(vm *VM, n *program.Node) (sai.Value, error) {
	if n.Arity() != 2 {
		return sai.None, sai.NewParameterError(n.Op.String(), 2, n.Arity())
	}
	sym, err := vm.symbol(n.Params[0].Literal)
	if err != nil {
		return sai.None, err
	}
	v, err := vm.Eval(n.Params[1])
	if err != nil {
		return sai.None, err
	}
	f, err := v.AsFloat()
	if err != nil {
		tracer().P("symbol", sym.Name).Errorf("cannot assign an undefined value")
		return sai.None, err
	}
	sym.Value = f
	tracer().P("symbol", sym.Name).Debugf("assigned %s", v)
	return sai.None, nil
}

// --- Control flow ----------------------------------------------------------

func (vm *VM) truth(n *program.Node) (bool, error) {
	v, err := vm.Eval(n)
	if err != nil {
		return false, err
	}
	return v.AsBool()
}

// ifStmt(condition): if false, continue behind the jump target.
func execIf(vm *VM, n *program.Node) (sai.Value, error) {
	cursor, err := vm.cursor()
	if err != nil {
		return sai.None, err
	}
	args, err := vm.CheckParameters(n, 1)
	if err != nil {
		return sai.None, err
	}
	ok, err := args[0].AsBool()
	if err != nil {
		return sai.None, err
	}
	if !ok {
		cursor.SkipPast(n.JumpTo)
	}
	return sai.None, nil
}

// whileLoop(condition) and forLoop(init, condition, step), entered from
// the preceding statement.
func execLoop(vm *VM, n *program.Node) (sai.Value, error) {
	cursor, err := vm.cursor()
	if err != nil {
		return sai.None, err
	}
	cond := n.Param(0)
	if n.Op == program.OpFor {
		if n.Arity() != 3 {
			return sai.None, sai.NewParameterError(n.Op.String(), 3, n.Arity())
		}
		if _, err = vm.Eval(n.Params[0]); err != nil {
			return sai.None, err
		}
		cond = n.Params[1]
	} else if n.Arity() != 1 {
		return sai.None, sai.NewParameterError(n.Op.String(), 1, n.Arity())
	}
	ok, err := vm.truth(cond)
	if err != nil {
		return sai.None, err
	}
	if !ok {
		cursor.SkipPast(n.JumpTo)
	}
	return sai.None, nil
}

// doNothing: plain sentinels have no effect. An else gate is reached only
// after the if-part and skips the else-part. A loop's sentinel re-enters
// the loop if the condition still holds.
func execSentinel(vm *VM, n *program.Node) (sai.Value, error) {
	if n.JumpTo == program.NoJump && n.Back == program.NoJump {
		return sai.None, nil
	}
	cursor, err := vm.cursor()
	if err != nil {
		return sai.None, err
	}
	if n.JumpTo != program.NoJump {
		cursor.SkipPast(n.JumpTo)
		return sai.None, nil
	}
	head := cursor.Sequence().At(n.Back)
	cond := head.Param(0)
	if head.Op == program.OpFor {
		if _, err = vm.Eval(head.Param(2)); err != nil {
			return sai.None, err
		}
		cond = head.Param(1)
	}
	ok, err := vm.truth(cond)
	if err != nil {
		return sai.None, err
	}
	if ok {
		cursor.Seek(n.Back + 1)
	}
	return sai.None, nil
}

// --- Calls -----------------------------------------------------------------

// functionCall(functionName, args...)
func execFunctionCall(vm *VM, n *program.Node) (sai.Value, error) {
	fname := n.Param(0)
	if fname == nil || fname.Op != program.OpFunctionName {
		tracer().Errorf("function call without function name")
		return sai.None, sai.ErrFunctionNameExpected
	}
	sub := vm.subs.Get(fname.Literal)
	if sub == nil {
		tracer().P("sub", fname.Literal).Errorf("subroutine not found")
		return sai.None, fmt.Errorf("%w: %s", sai.ErrSubroutineNotFound, fname.Literal)
	}
	argNodes := n.Params[1:]
	if len(argNodes) != sub.ParameterCount() {
		err := sai.NewParameterError(sub.Name, sub.ParameterCount(), len(argNodes))
		tracer().Errorf(err.Error())
		return sai.None, err
	}
	args := make([]float64, len(argNodes))
	for i, a := range argNodes {
		v, err := vm.Eval(a)
		if err != nil {
			return sai.None, err
		}
		if args[i], err = v.AsFloat(); err != nil {
			return sai.None, err
		}
	}
	return vm.invoke(sub, args)
}

func execPrint(vm *VM, n *program.Node) (sai.Value, error) {
	args, err := vm.CheckParameters(n, 1)
	if err != nil {
		return sai.None, err
	}
	if _, err = floats(n.Op, args); err != nil {
		return sai.None, err
	}
	vm.out.Append(args[0].Literal())
	return sai.None, nil
}

func execStop(vm *VM, n *program.Node) (sai.Value, error) {
	if _, err := vm.CheckParameters(n, 0); err != nil {
		return sai.None, err
	}
	tracer().Infof("program stopped")
	return sai.None, sai.ErrStop
}

// --- Operators and math built-ins ------------------------------------------

// execIncDec increments or decrements its operand, using the arithmetic of
// built-in b. A variable operand is updated and the previous value is
// returned.
func execIncDec(b *corelang.Builtin) Handler {
	return func(vm *VM, n *program.Node) (sai.Value, error) {
		args, err := vm.CheckParameters(n, b.Arity)
		if err != nil {
			return sai.None, err
		}
		x, err := floats(n.Op, args)
		if err != nil {
			return sai.None, err
		}
		v, err := b.Fn(x...)
		if err != nil {
			return sai.None, err
		}
		if operand := n.Params[0]; operand.Op == program.OpGetVariable {
			sym, err := vm.symbol(operand.Literal)
			if err != nil {
				return sai.None, err
			}
			sym.Value = v
			return args[0], nil
		}
		return sai.FromFloat(v), nil
	}
}

func execBuiltin(b *corelang.Builtin) Handler {
	return func(vm *VM, n *program.Node) (sai.Value, error) {
		args, err := vm.CheckParameters(n, b.Arity)
		if err != nil {
			return sai.None, err
		}
		x, err := floats(n.Op, args)
		if err != nil {
			return sai.None, err
		}
		r, err := b.Fn(x...)
		if err != nil {
			return sai.None, err
		}
		if b.IsBoolean {
			return sai.FromBool(r != 0), nil
		}
		return sai.FromFloat(r), nil
	}
}
