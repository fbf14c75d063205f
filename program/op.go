package program

import "fmt"

// Op is the operation of a program node. The set of operations is closed;
// the virtual machine holds a handler for every operation which can be
// executed.
type Op uint8

const (
	OpNone Op = iota

	// leaves
	OpValue
	OpGetVariable
	OpIdentifier
	OpFunctionName

	// arithmetic
	OpAdd
	OpMin
	OpMul
	OpDiv
	OpMod
	OpRaise
	OpIncrement
	OpDecrement

	// comparison and boolean combinators
	OpLess
	OpLessOrEq
	OpGreater
	OpGreaterOrEq
	OpEquals
	OpNotEquals
	OpAnd
	OpOr

	// statements
	OpAssignment
	OpIf
	OpWhile
	OpFor
	OpFunctionCall
	OpReturn
	OpDoNothing

	// library
	OpPrint
	OpStop
	OpSqr
	OpCbc
	OpPow
	OpSqrt
	OpCbrt
	OpSin
	OpCos
	OpTan
	OpDeg
	OpRad
	OpPercent
	OpPermillage
	OpLog10
	OpLog2
	OpLn
	OpLogBase

	NumOps // do not change sequence, used as a marker
)

var opTags = [NumOps]string{
	OpNone: "none", OpValue: "value", OpGetVariable: "getVariable",
	OpIdentifier: "identifier", OpFunctionName: "functionName",
	OpAdd: "add", OpMin: "min", OpMul: "mul", OpDiv: "div", OpMod: "mod",
	OpRaise: "raise", OpIncrement: "increment", OpDecrement: "decrement",
	OpLess: "less", OpLessOrEq: "lessOrEq", OpGreater: "greater",
	OpGreaterOrEq: "greaterOrEq", OpEquals: "equals", OpNotEquals: "notEquals",
	OpAnd: "and", OpOr: "or",
	OpAssignment: "assignment", OpIf: "ifStmt", OpWhile: "whileLoop",
	OpFor: "forLoop", OpFunctionCall: "functionCall", OpReturn: "return",
	OpDoNothing: "doNothing",
	OpPrint: "print", OpStop: "stop", OpSqr: "sqr", OpCbc: "cbc", OpPow: "pow",
	OpSqrt: "sqrt", OpCbrt: "cbrt", OpSin: "sin", OpCos: "cos", OpTan: "tan",
	OpDeg: "deg", OpRad: "rad", OpPercent: "percent", OpPermillage: "permillage",
	OpLog10: "log10", OpLog2: "log2", OpLn: "ln", OpLogBase: "logBase",
}

var tagOps map[string]Op

func init() {
	tagOps = make(map[string]Op, NumOps)
	for op, tag := range opTags {
		tagOps[tag] = Op(op)
	}
}

// String returns the operation's tag, e.g. "add" or "whileLoop".
func (op Op) String() string {
	if op < NumOps {
		return opTags[op]
	}
	return fmt.Sprintf("<illegal op %d>", op)
}

// OpFromTag returns the operation for a tag.
func OpFromTag(tag string) (Op, bool) {
	op, ok := tagOps[tag]
	return op, ok
}

// IsLeaf is a predicate: does a node with this operation carry a literal
// instead of parameters?
func (op Op) IsLeaf() bool {
	return op >= OpValue && op <= OpFunctionName
}

// IsBranch is a predicate: does a node with this operation own a flattened
// block, guarded by a sentinel?
func (op Op) IsBranch() bool {
	return op == OpIf || op == OpWhile || op == OpFor
}

// IsLoop is a predicate: is this a loop head?
func (op Op) IsLoop() bool {
	return op == OpWhile || op == OpFor
}
