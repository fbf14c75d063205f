// Package token defines the tokens consumed by the parser.
//
// Tokens carry their nesting level (the number of enclosing, unclosed curly
// brackets) and an optional partner, which pairs an 'if' with its 'else'.
package token

import "fmt"

// Type is the kind of a token.
type Type int

const (
	None Type = iota
	EOF

	Identifier
	Float // numeric literal; also the 'float' type keyword, see FloatType

	// keywords
	Var
	Function
	If
	Else
	While
	ForLoop
	Return
	FloatType
	Void
	NoneType
	And
	Or

	// operators
	OperatorPlus
	OperatorMinus
	OperatorMultiply
	OperatorDivide
	OperatorRaised
	OperatorModulo
	UniOperatorPlus
	UniOperatorMinus
	LowerThan
	LowerOrEqThan
	GreaterThan
	GreaterOrEqThan
	Comparator
	NotEquals
	Equals // assignment '='

	// punctuation
	OpenBracket
	CloseBracket
	OpenCurlyBracket
	CloseCurlyBracket
	Seperator
	EOL

	maxType // do not change sequence, used as a marker
)

var typeNames = [...]string{
	None: "None", EOF: "EOF",
	Identifier: "Identifier", Float: "Float",
	Var: "Var", Function: "Function", If: "If", Else: "Else", While: "While",
	ForLoop: "ForLoop", Return: "Return", FloatType: "FloatType", Void: "Void",
	NoneType: "NoneType", And: "And", Or: "Or",
	OperatorPlus: "OperatorPlus", OperatorMinus: "OperatorMinus",
	OperatorMultiply: "OperatorMultiply", OperatorDivide: "OperatorDivide",
	OperatorRaised: "OperatorRaised", OperatorModulo: "OperatorModulo",
	UniOperatorPlus: "UniOperatorPlus", UniOperatorMinus: "UniOperatorMinus",
	LowerThan: "LowerThan", LowerOrEqThan: "LowerOrEqThan",
	GreaterThan: "GreaterThan", GreaterOrEqThan: "GreaterOrEqThan",
	Comparator: "Comparator", NotEquals: "NotEquals", Equals: "Equals",
	OpenBracket: "OpenBracket", CloseBracket: "CloseBracket",
	OpenCurlyBracket: "OpenCurlyBracket", CloseCurlyBracket: "CloseCurlyBracket",
	Seperator: "Seperator", EOL: "EOL",
}

func (t Type) String() string {
	if t >= 0 && t < maxType {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// IsReturnType is a predicate: may t start a function's return type?
func (t Type) IsReturnType() bool {
	return t == FloatType || t == Void || t == NoneType
}

// Keywords maps reserved words to their token types.
var Keywords = map[string]Type{
	"var":      Var,
	"function": Function,
	"if":       If,
	"else":     Else,
	"while":    While,
	"for":      ForLoop,
	"return":   Return,
	"float":    FloatType,
	"void":     Void,
	"none":     NoneType,
	"and":      And,
	"or":       Or,
}

// NoPartner is the partner index of unpaired tokens.
const NoPartner = -1

// Token is a typed lexeme with position and nesting metadata.
type Token struct {
	Type    Type
	Value   string
	Level   int // number of enclosing unclosed '{'
	Partner int // index of the paired token within the stream, or NoPartner
	Line    int
	Column  int
}

// HasPartner is a predicate: is this token paired with another one?
func (t Token) HasPartner() bool {
	return t.Partner != NoPartner
}

func (t Token) String() string {
	if t.Value == "" {
		return fmt.Sprintf("<%s@%d:%d>", t.Type, t.Line, t.Column)
	}
	return fmt.Sprintf("<%s %q@%d:%d>", t.Type, t.Value, t.Line, t.Column)
}
