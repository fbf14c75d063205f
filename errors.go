package sai

import (
	"errors"
	"fmt"
)

var (
	// ErrLex indicates a failure to tokenize source text.
	ErrLex = errors.New("lex error")

	// ErrParse is the parent kind of all structural parse failures.
	ErrParse = errors.New("parse error")

	// ErrUnexpectedToken flags a token of the wrong kind.
	ErrUnexpectedToken = errors.New("unexpected token")

	// ErrMissingToken flags a required separator or bracket which is absent.
	ErrMissingToken = errors.New("missing token")

	// ErrUnmatchedBracket flags a block or group without closing bracket.
	ErrUnmatchedBracket = errors.New("unmatched bracket")

	// ErrDuplicate flags a second declaration of a symbol or subroutine name.
	ErrDuplicate = errors.New("duplicate declaration")

	// ErrMissingReturnType flags a function definition without return type.
	ErrMissingReturnType = errors.New("expected return type")

	// ErrInvalidStatement flags a token which cannot start a statement.
	ErrInvalidStatement = errors.New("no statement found")

	// ErrSymbolNotFound flags an identifier with no symbol in scope.
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrNoParameters flags an operation or call invoked without arguments.
	ErrNoParameters = errors.New("no parameters")

	// ErrIncorrectParameters flags an argument count mismatch.
	ErrIncorrectParameters = errors.New("incorrect parameters")

	// ErrSubroutineNotFound flags a call of an undefined subroutine.
	ErrSubroutineNotFound = errors.New("subroutine not found")

	// ErrMissingMainFunction flags a program without subroutine 'main'.
	ErrMissingMainFunction = errors.New("no main function found")

	// ErrFunctionNameExpected flags a call node without a function name.
	ErrFunctionNameExpected = errors.New("expected function name")

	// ErrInvalidInput flags a domain error of a math built-in.
	ErrInvalidInput = errors.New("invalid input")

	// ErrZeroDivide flags a division or modulo by zero.
	ErrZeroDivide = errors.New("division by zero")

	// ErrUnknownExpression flags a node with an operation that has no handler.
	ErrUnknownExpression = errors.New("unknown expression type")

	// ErrCallDepth flags a call chain exceeding the configured depth.
	ErrCallDepth = errors.New("call depth exceeded")

	// ErrStop is returned when a program executes 'stop'. It is not a
	// failure of the program, but halts it as a whole.
	ErrStop = errors.New("program stopped")
)

// ParseError is a structural parse failure at a token position.
// It matches ErrParse as well as its specific Kind with errors.Is.
type ParseError struct {
	Line, Column int
	Lexeme       string
	Kind         error
	Msg          string
}

func (e *ParseError) Error() string {
	msg := e.Msg
	if msg == "" && e.Kind != nil {
		msg = e.Kind.Error()
	}
	if e.Lexeme != "" {
		return fmt.Sprintf("%d:%d: %s at %q", e.Line, e.Column, msg, e.Lexeme)
	}
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, msg)
}

// Unwrap returns both the parent and the specific kind of a parse error.
func (e *ParseError) Unwrap() []error {
	if e.Kind == nil {
		return []error{ErrParse}
	}
	if e.Kind == ErrSymbolNotFound {
		// symbol lookup failures have their own kind, not a sub-kind of ErrParse
		return []error{e.Kind}
	}
	return []error{ErrParse, e.Kind}
}

// ParameterError is an argument count mismatch of an operation or a call.
type ParameterError struct {
	Op       string
	Expected int
	Got      int
	Kind     error // ErrNoParameters or ErrIncorrectParameters
}

// NewParameterError creates a parameter error for an operation, choosing
// the kind from the argument count.
func NewParameterError(op string, expected, got int) *ParameterError {
	kind := ErrIncorrectParameters
	if got == 0 {
		kind = ErrNoParameters
	}
	return &ParameterError{Op: op, Expected: expected, Got: got, Kind: kind}
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("%s: %s: expected %d, got %d", e.Op, e.Kind.Error(), e.Expected, e.Got)
}

func (e *ParameterError) Unwrap() error {
	return e.Kind
}
