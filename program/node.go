package program

import (
	"github.com/npillmayer/sai"
)

// NoJump marks a node without jump target or back edge.
const NoJump = -1

// Node is the unit of program representation. Within a Sequence nodes are
// statements; their parameters are operand trees owned by the node.
//
// JumpTo is the forward exit of a branch: the arena index of a doNothing
// sentinel later in the same sequence. Back is set on a loop's sentinel
// only and holds the arena index of the loop head.
type Node struct {
	Op      Op
	Literal string
	Params  []*Node
	JumpTo  int
	Back    int
	value   sai.Value // cached value of a literal leaf
}

// NewNode creates a node for an operation with operands.
func NewNode(op Op, params ...*Node) *Node {
	return &Node{Op: op, Params: params, JumpTo: NoJump, Back: NoJump}
}

// NewLeaf creates a leaf node (variable reference, identifier, function name).
func NewLeaf(op Op, literal string) *Node {
	return &Node{Op: op, Literal: literal, JumpTo: NoJump, Back: NoJump}
}

// NewValue creates a value node from a decimal text literal.
func NewValue(literal string) (*Node, error) {
	v, err := sai.ParseLiteral(literal)
	if err != nil {
		return nil, err
	}
	n := NewLeaf(OpValue, literal)
	n.value = v
	return n, nil
}

// ValueNode creates a value node from a runtime value. Booleans are
// encoded as "0" and "1".
func ValueNode(v sai.Value) *Node {
	n := NewLeaf(OpValue, v.Literal())
	n.value = v
	return n
}

// Value returns the value of a value node.
func (n *Node) Value() sai.Value {
	if n.Op != OpValue {
		return sai.None
	}
	if !n.value.IsKnown() {
		n.value, _ = sai.ParseLiteral(n.Literal)
	}
	return n.value
}

// Sentinel creates a doNothing node.
func Sentinel() Node {
	return Node{Op: OpDoNothing, JumpTo: NoJump, Back: NoJump}
}

// IsSentinel is a predicate: is this a doNothing node?
func (n *Node) IsSentinel() bool {
	return n.Op == OpDoNothing
}

// Arity returns the number of parameters of n.
func (n *Node) Arity() int {
	return len(n.Params)
}

// Param returns parameter i of n, or nil.
func (n *Node) Param(i int) *Node {
	if i < 0 || i >= len(n.Params) {
		return nil
	}
	return n.Params[i]
}
