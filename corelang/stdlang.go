package corelang

import (
	"fmt"
	"math"
	"sync"

	"github.com/npillmayer/sai"
	"github.com/npillmayer/sai/program"
)

// MathFunc is the implementation of an arithmetic built-in.
type MathFunc func(args ...float64) (float64, error)

// Builtin describes a built-in operation.
//
// Operators have no name, as they are not callable by name from source
// text. Print and stop have no math function, they are handled by the
// virtual machine directly.
type Builtin struct {
	Name      string
	Op        program.Op
	Arity     int
	Fn        MathFunc
	IsBoolean bool // result is a truth value
}

// Language is the table of built-ins.
type Language struct {
	byName map[string]*Builtin
	byOp   [program.NumOps]*Builtin
}

// Lookup returns the built-in callable by name, if any.
func (lang *Language) Lookup(name string) (*Builtin, bool) {
	b, ok := lang.byName[name]
	return b, ok
}

// ForOp returns the built-in implementing an operation, if any.
func (lang *Language) ForOp(op program.Op) (*Builtin, bool) {
	if op >= program.NumOps {
		return nil, false
	}
	b := lang.byOp[op]
	return b, b != nil
}

// IsBuiltin is a predicate: is name reserved for a built-in?
func (lang *Language) IsBuiltin(name string) bool {
	_, ok := lang.byName[name]
	return ok
}

// Names returns the names of all callable built-ins.
func (lang *Language) Names() []string {
	names := make([]string, 0, len(lang.byName))
	for op := program.OpNone; op < program.NumOps; op++ {
		if b := lang.byOp[op]; b != nil && b.Name != "" {
			names = append(names, b.Name)
		}
	}
	return names
}

func (lang *Language) define(b *Builtin) {
	if b.Name != "" {
		lang.byName[b.Name] = b
	}
	lang.byOp[b.Op] = b
}

var standard *Language
var loadStandard sync.Once

// LoadStandardLanguage returns the table of built-ins. It is safe for
// concurrent use.
func LoadStandardLanguage() *Language {
	loadStandard.Do(func() {
		standard = loadStandardLanguage()
		tracer().Debugf("loaded %d named built-ins", len(standard.byName))
	})
	return standard
}

func loadStandardLanguage() *Language {
	lang := &Language{byName: make(map[string]*Builtin)}
	defineOperators(lang)
	defineLibrary(lang)
	return lang
}

func defineOperators(lang *Language) {
	binary := func(op program.Op, fn func(a, b float64) (float64, error)) {
		lang.define(&Builtin{Op: op, Arity: 2, Fn: func(args ...float64) (float64, error) {
			return fn(args[0], args[1])
		}})
	}
	compare := func(op program.Op, fn func(a, b float64) bool) {
		lang.define(&Builtin{Op: op, Arity: 2, IsBoolean: true, Fn: func(args ...float64) (float64, error) {
			return boolf(fn(args[0], args[1])), nil
		}})
	}
	binary(program.OpAdd, func(a, b float64) (float64, error) { return a + b, nil })
	binary(program.OpMin, func(a, b float64) (float64, error) { return a - b, nil })
	binary(program.OpMul, func(a, b float64) (float64, error) { return a * b, nil })
	binary(program.OpDiv, Div)
	binary(program.OpRaise, func(a, b float64) (float64, error) { return math.Pow(a, b), nil })
	lang.define(&Builtin{Op: program.OpIncrement, Arity: 1, Fn: func(args ...float64) (float64, error) {
		return args[0] + 1, nil
	}})
	lang.define(&Builtin{Op: program.OpDecrement, Arity: 1, Fn: func(args ...float64) (float64, error) {
		return args[0] - 1, nil
	}})
	compare(program.OpLess, func(a, b float64) bool { return a < b })
	compare(program.OpLessOrEq, func(a, b float64) bool { return a <= b })
	compare(program.OpGreater, func(a, b float64) bool { return a > b })
	compare(program.OpGreaterOrEq, func(a, b float64) bool { return a >= b })
	compare(program.OpEquals, func(a, b float64) bool { return a == b })
	compare(program.OpNotEquals, func(a, b float64) bool { return a != b })
	compare(program.OpAnd, func(a, b float64) bool { return a != 0 && b != 0 })
	compare(program.OpOr, func(a, b float64) bool { return a != 0 || b != 0 })
}

func defineLibrary(lang *Language) {
	unary := func(name string, op program.Op, fn func(x float64) (float64, error)) {
		lang.define(&Builtin{Name: name, Op: op, Arity: 1, Fn: func(args ...float64) (float64, error) {
			return fn(args[0])
		}})
	}
	binary := func(name string, op program.Op, fn func(a, b float64) (float64, error)) {
		lang.define(&Builtin{Name: name, Op: op, Arity: 2, Fn: func(args ...float64) (float64, error) {
			return fn(args[0], args[1])
		}})
	}
	total := func(fn func(float64) float64) func(float64) (float64, error) {
		return func(x float64) (float64, error) { return fn(x), nil }
	}
	lang.define(&Builtin{Name: "print", Op: program.OpPrint, Arity: 1})
	lang.define(&Builtin{Name: "stop", Op: program.OpStop, Arity: 0})
	unary("sqr", program.OpSqr, total(func(x float64) float64 { return x * x }))
	unary("cbc", program.OpCbc, total(func(x float64) float64 { return x * x * x }))
	binary("pow", program.OpPow, func(a, b float64) (float64, error) { return math.Pow(a, b), nil })
	unary("sqrt", program.OpSqrt, Sqrt)
	unary("cbrt", program.OpCbrt, total(math.Cbrt))
	unary("sin", program.OpSin, total(math.Sin))
	unary("cos", program.OpCos, total(math.Cos))
	unary("tan", program.OpTan, total(math.Tan))
	unary("deg", program.OpDeg, total(func(x float64) float64 { return x * 180 / math.Pi }))
	unary("rad", program.OpRad, total(func(x float64) float64 { return x * math.Pi / 180 }))
	binary("percent", program.OpPercent, func(a, b float64) (float64, error) {
		q, err := Div(a, b)
		return q * 100, err
	})
	binary("permillage", program.OpPermillage, func(a, b float64) (float64, error) {
		q, err := Div(a, b)
		return q * 1000, err
	})
	unary("log10", program.OpLog10, logf(math.Log10))
	unary("log2", program.OpLog2, logf(math.Log2))
	unary("ln", program.OpLn, logf(math.Log))
	binary("logBase", program.OpLogBase, LogBase)
	binary("mod", program.OpMod, Mod)
}

// --- Math functions with domain checks -------------------------------------

// Div divides a by b.
func Div(a, b float64) (float64, error) {
	if b == 0 {
		return math.NaN(), domainError(sai.ErrZeroDivide, "division of %g by zero", a)
	}
	return a / b, nil
}

// Mod is the floating point remainder of a/b, with the sign of a.
func Mod(a, b float64) (float64, error) {
	if b == 0 {
		return math.NaN(), domainError(sai.ErrZeroDivide, "modulo of %g by zero", a)
	}
	return math.Mod(a, b), nil
}

// Sqrt is the square root of a non-negative x.
func Sqrt(x float64) (float64, error) {
	if x < 0 {
		return math.NaN(), domainError(sai.ErrInvalidInput, "square root of negative number %g", x)
	}
	return math.Sqrt(x), nil
}

// LogBase is the logarithm of x to base.
func LogBase(x, base float64) (float64, error) {
	if x <= 0 || base <= 0 || base == 1 {
		return math.NaN(), domainError(sai.ErrInvalidInput, "logarithm of %g to base %g", x, base)
	}
	return math.Log(x) / math.Log(base), nil
}

func logf(fn func(float64) float64) func(float64) (float64, error) {
	return func(x float64) (float64, error) {
		if x <= 0 {
			return math.NaN(), domainError(sai.ErrInvalidInput, "logarithm of non-positive number %g", x)
		}
		return fn(x), nil
	}
}

func domainError(kind error, format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	tracer().Errorf(msg)
	return fmt.Errorf("%w: %s", kind, msg)
}

func boolf(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
