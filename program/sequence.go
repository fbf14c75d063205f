package program

import (
	"fmt"
)

// Sequence is a flat, ordered sequence of statement nodes. Nodes are stored
// in an arena and refer to each other by index only, so sequences may be
// copied and spliced without dangling references.
type Sequence struct {
	nodes []Node
}

// NewSequence creates an empty node sequence.
func NewSequence() *Sequence {
	return &Sequence{}
}

// Len returns the number of nodes.
func (seq *Sequence) Len() int {
	if seq == nil {
		return 0
	}
	return len(seq.nodes)
}

// At returns the node at arena index i.
func (seq *Sequence) At(i int) *Node {
	if seq == nil || i < 0 || i >= len(seq.nodes) {
		return nil
	}
	return &seq.nodes[i]
}

// Append adds a statement node at the end and returns its index.
func (seq *Sequence) Append(n *Node) int {
	seq.nodes = append(seq.nodes, *n)
	return len(seq.nodes) - 1
}

// AppendSentinel adds a doNothing node at the end and returns its index.
func (seq *Sequence) AppendSentinel() int {
	seq.nodes = append(seq.nodes, Sentinel())
	return len(seq.nodes) - 1
}

// SetJumpTo links the branch node at index from to the sentinel at index to.
func (seq *Sequence) SetJumpTo(from, to int) error {
	if err := seq.checkSentinelAfter(from, to); err != nil {
		return err
	}
	seq.nodes[from].JumpTo = to
	return nil
}

// SetBack links the sentinel at index from back to the loop head at index to.
func (seq *Sequence) SetBack(from, to int) error {
	if from < 0 || from >= len(seq.nodes) || to < 0 || to >= from {
		return fmt.Errorf("illegal back edge %d -> %d", from, to)
	}
	if !seq.nodes[from].IsSentinel() || !seq.nodes[to].Op.IsLoop() {
		return fmt.Errorf("back edge %d -> %d must lead from a sentinel to a loop", from, to)
	}
	seq.nodes[from].Back = to
	return nil
}

func (seq *Sequence) checkSentinelAfter(from, to int) error {
	if from < 0 || from >= len(seq.nodes) || to <= from || to >= len(seq.nodes) {
		return fmt.Errorf("illegal jump %d -> %d", from, to)
	}
	if !seq.nodes[to].IsSentinel() {
		return fmt.Errorf("jump %d -> %d must target a sentinel", from, to)
	}
	return nil
}

// Splice appends all nodes of a fragment, parsed into its own local
// sequence, at the end of seq. Jump targets and back edges of the fragment
// are relocated. Returns the index of the fragment's first node within seq.
func (seq *Sequence) Splice(frag *Sequence) int {
	offset := len(seq.nodes)
	for _, n := range frag.nodes {
		if n.JumpTo != NoJump {
			n.JumpTo += offset
		}
		if n.Back != NoJump {
			n.Back += offset
		}
		seq.nodes = append(seq.nodes, n)
	}
	return offset
}

// Cursor creates a new cursor positioned before the first node.
func (seq *Sequence) Cursor() *Cursor {
	return &Cursor{seq: seq}
}

// Validate checks the jump invariants: every jump target is a later
// sentinel, every back edge leads from a sentinel to an earlier loop head.
func (seq *Sequence) Validate() error {
	for i := range seq.nodes {
		n := &seq.nodes[i]
		if n.JumpTo != NoJump {
			if err := seq.checkSentinelAfter(i, n.JumpTo); err != nil {
				return err
			}
		} else if n.Op.IsBranch() {
			return fmt.Errorf("branch node %d (%s) has no exit", i, n.Op)
		}
		if n.Back != NoJump {
			if !n.IsSentinel() || n.Back >= i || !seq.nodes[n.Back].Op.IsLoop() {
				return fmt.Errorf("illegal back edge %d -> %d", i, n.Back)
			}
		}
	}
	return nil
}

// --- Cursor ----------------------------------------------------------------

// Cursor is a movable position within a sequence. Every invocation of a
// subroutine executes its body with a cursor of its own.
type Cursor struct {
	seq *Sequence
	pos int // index of the next node to return
}

// Next returns the next node and its index, and advances. If no node
// remains, ok is false.
func (c *Cursor) Next() (n *Node, inx int, ok bool) {
	if c.pos >= c.seq.Len() {
		return nil, c.pos, false
	}
	inx = c.pos
	c.pos++
	return &c.seq.nodes[inx], inx, true
}

// Seek sets the cursor such that the next node returned is the one at i.
func (c *Cursor) Seek(i int) {
	c.pos = i
}

// SkipPast sets the cursor just behind the node at i. This realizes the
// jump to a sentinel: execution continues with the node following it.
func (c *Cursor) SkipPast(i int) {
	c.pos = i + 1
}

// Pos returns the index of the next node to return.
func (c *Cursor) Pos() int {
	return c.pos
}

// Sequence returns the sequence the cursor moves in.
func (c *Cursor) Sequence() *Sequence {
	return c.seq
}
