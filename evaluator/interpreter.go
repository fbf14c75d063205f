package evaluator

import (
	"errors"
	"strings"

	"github.com/npillmayer/sai"
	"github.com/npillmayer/sai/grammar"
	"github.com/npillmayer/sai/sframe"
	"github.com/npillmayer/sai/vm"
)

// ErrNoProgramToExecute flags an empty input program
var ErrNoProgramToExecute error = errors.New("no program to execute")

// Interpreter compiles and runs programs.
type Interpreter struct {
	output   *sai.Output
	sinks    sai.Tee
	maxDepth int
	last     *vm.VM
}

// Option configures an interpreter.
type Option func(*Interpreter)

// WithSink adds a sink which receives printed values, in addition to the
// interpreter's output.
func WithSink(sink sai.Sink) Option {
	return func(intp *Interpreter) {
		intp.sinks = append(intp.sinks, sink)
	}
}

// WithMaxCallDepth limits the number of active subroutine invocations.
// 0 means unlimited.
func WithMaxCallDepth(n int) Option {
	return func(intp *Interpreter) {
		intp.maxDepth = n
	}
}

// NewInterpreter creates a new interpreter. The call depth limit defaults
// to configuration key "vm.maxdepth".
func NewInterpreter(opts ...Option) *Interpreter {
	intp := &Interpreter{
		output:   &sai.Output{},
		maxDepth: sai.ConfigInt(sai.KeyMaxCallDepth, sai.DefaultMaxCallDepth),
	}
	intp.sinks = sai.Tee{intp.output}
	for _, opt := range opts {
		opt(intp)
	}
	return intp
}

// Output returns the values printed by all runs since the last call to
// Output().Clear().
func (intp *Interpreter) Output() *sai.Output {
	return intp.output
}

// Compile parses source text into a program. Every call builds new symbol
// tables.
func (intp *Interpreter) Compile(src string) (*grammar.Program, error) {
	if strings.TrimSpace(src) == "" {
		tracer().Errorf("empty program")
		return nil, ErrNoProgramToExecute
	}
	prog, err := grammar.Parse(src)
	if err != nil {
		tracer().Errorf("compile failed: %v", err)
		return nil, err
	}
	return prog, nil
}

// Run executes a compiled program on a new virtual machine.
func (intp *Interpreter) Run(prog *grammar.Program) error {
	if prog == nil {
		return ErrNoProgramToExecute
	}
	intp.last = vm.New(prog.Globals, prog.Nodes, prog.Subroutines,
		vm.WithOutput(intp.sinks),
		vm.WithMaxCallDepth(intp.maxDepth))
	err := intp.last.Execute()
	if err != nil && !errors.Is(err, sai.ErrStop) {
		tracer().Errorf("run failed: %v", err)
	} else {
		tracer().Infof("run completed")
	}
	return err
}

// Start compiles and runs source text.
func (intp *Interpreter) Start(src string) error {
	prog, err := intp.Compile(src)
	if err != nil {
		return err
	}
	return intp.Run(prog)
}

// Globals returns the global symbols of the most recent run, or nil.
func (intp *Interpreter) Globals() *sframe.SymbolTable {
	if intp.last == nil {
		return nil
	}
	return intp.last.Globals()
}
