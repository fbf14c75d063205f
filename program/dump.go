package program

import (
	"bytes"
	"fmt"
	"strings"
)

// String renders a node and its operand tree in prefix form, e.g.
// "add(value 2, mul(value 3, value 4))".
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	if n.Op.IsLeaf() {
		return n.Op.String() + " " + n.Literal
	}
	if len(n.Params) == 0 {
		return n.Op.String()
	}
	var b strings.Builder
	b.WriteString(n.Op.String())
	b.WriteByte('(')
	for i, p := range n.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
	}
	b.WriteByte(')')
	return b.String()
}

// Dump renders a sequence as a listing, one statement per line, with
// flattened blocks indented below their branch node.
func (seq *Sequence) Dump() string {
	var b bytes.Buffer
	depth := 0
	for i := range seq.nodes {
		n := &seq.nodes[i]
		if n.IsSentinel() && depth > 0 && n.JumpTo == NoJump {
			depth--
		}
		indent := depth
		if n.IsSentinel() && n.JumpTo != NoJump && depth > 0 {
			indent-- // an else gate closes the if-body and opens the else-body
		}
		fmt.Fprintf(&b, "%4d  %s%s", i, strings.Repeat("  ", indent), n.String())
		if n.JumpTo != NoJump {
			fmt.Fprintf(&b, "  → %d", n.JumpTo)
		}
		if n.Back != NoJump {
			fmt.Fprintf(&b, "  ↺ %d", n.Back)
		}
		b.WriteByte('\n')
		if n.Op.IsBranch() {
			depth++
		}
	}
	tracer().Debugf("dumped sequence of %d nodes", len(seq.nodes))
	return b.String()
}
