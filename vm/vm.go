package vm

import (
	"fmt"

	"github.com/npillmayer/sai"
	"github.com/npillmayer/sai/program"
	"github.com/npillmayer/sai/sframe"
)

// VM is a virtual machine for one program run.
type VM struct {
	globals  *sframe.SymbolTable
	code     *program.Sequence
	subs     *sframe.SubroutineTable
	frames   *sframe.FrameStack
	caller   *FunctionCaller
	out      sai.Sink
	maxDepth int
}

// Option configures a VM.
type Option func(*VM)

// WithOutput sets the sink to receive printed values.
func WithOutput(out sai.Sink) Option {
	return func(vm *VM) {
		vm.out = out
	}
}

// WithMaxCallDepth limits the number of active invocations. 0 means
// unlimited.
func WithMaxCallDepth(n int) Option {
	return func(vm *VM) {
		vm.maxDepth = n
	}
}

// New creates a virtual machine for a parsed program: the global symbol
// table, the sequence of global initializers and the subroutine table.
//
// Without option WithMaxCallDepth the depth limit is taken from
// configuration key "vm.maxdepth".
func New(globals *sframe.SymbolTable, code *program.Sequence, subs *sframe.SubroutineTable, opts ...Option) *VM {
	if globals == nil {
		globals = sframe.NewSymbolTable("#global")
	}
	if code == nil {
		code = program.NewSequence()
	}
	if subs == nil {
		subs = sframe.NewSubroutineTable()
	}
	vm := &VM{
		globals:  globals,
		code:     code,
		subs:     subs,
		caller:   StandardCaller(),
		out:      &sai.Output{},
		maxDepth: sai.ConfigInt(sai.KeyMaxCallDepth, sai.DefaultMaxCallDepth),
	}
	for _, opt := range opts {
		opt(vm)
	}
	return vm
}

// Globals returns the global symbol table.
func (vm *VM) Globals() *sframe.SymbolTable {
	return vm.globals
}

// Output returns the sink printed values are appended to.
func (vm *VM) Output() sai.Sink {
	return vm.out
}

// Execute runs the program: first the global initializers, then 'main',
// which takes no parameters.
// Symbol values of the globals stay accessible after Execute returns.
//
// Execute stops at the first error. If the program executes 'stop',
// sai.ErrStop is returned.
func (vm *VM) Execute() error {
	vm.frames = sframe.NewFrameStack(vm.globals)
	tracer().Infof("executing %d global initializers", vm.code.Len())
	for i := 0; i < vm.code.Len(); i++ {
		if _, err := vm.Eval(vm.code.At(i)); err != nil {
			return err
		}
	}
	main := vm.subs.Get("main")
	if main == nil {
		tracer().Errorf("no main function")
		return sai.ErrMissingMainFunction
	}
	if n := main.ParameterCount(); n > 0 {
		err := sai.NewParameterError(main.Name, 0, n)
		tracer().Errorf("main must not have parameters: %v", err)
		return err
	}
	tracer().Infof("calling main")
	_, err := vm.invoke(main, nil)
	return err
}

// Eval evaluates a node by dispatching its operation.
func (vm *VM) Eval(n *program.Node) (sai.Value, error) {
	h := vm.caller.Handler(n.Op)
	if h == nil {
		tracer().Errorf("no handler for operation %s", n.Op)
		return sai.None, fmt.Errorf("%w: %s", sai.ErrUnknownExpression, n.Op)
	}
	return h(vm, n)
}

// invoke calls a subroutine with already evaluated arguments, in a new
// frame.
func (vm *VM) invoke(sub *sframe.Subroutine, args []float64) (sai.Value, error) {
	if vm.maxDepth > 0 && vm.frames.Depth() >= vm.maxDepth {
		tracer().P("sub", sub.Name).Errorf("call depth %d exceeded", vm.maxDepth)
		return sai.None, fmt.Errorf("%w: calling %s at depth %d", sai.ErrCallDepth, sub.Name, vm.maxDepth)
	}
	frame := vm.frames.PushNewFrame(sub)
	defer vm.frames.PopFrame()
	for i, param := range frame.Symbols.Parameters() {
		if i < len(args) {
			param.Value = args[i]
		}
	}
	return vm.run(frame)
}

// run is the node sequence executor for a frame. It returns the value of
// the frame's return statement, if any.
func (vm *VM) run(frame *sframe.Frame) (sai.Value, error) {
	cursor := frame.Cursor
	for {
		node, inx, ok := cursor.Next()
		if !ok {
			return sai.None, nil
		}
		tracer().Debugf("%s[%d] %s", frame.Sub.Name, inx, node.Op)
		if node.Op == program.OpReturn {
			if node.Arity() == 0 {
				return sai.None, nil
			}
			return vm.Eval(node.Params[0])
		}
		if _, err := vm.Eval(node); err != nil {
			return sai.None, err
		}
	}
}

// cursor returns the cursor of the active invocation.
func (vm *VM) cursor() (*program.Cursor, error) {
	frame := vm.frames.Current()
	if frame == nil {
		return nil, fmt.Errorf("%w: control flow outside of a function", sai.ErrUnknownExpression)
	}
	return frame.Cursor, nil
}
