package program

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestOpTags(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sai.program")
	defer teardown()
	//
	for op := OpNone + 1; op < NumOps; op++ {
		tag := op.String()
		if tag == "" {
			t.Errorf("operation %d has no tag", op)
			continue
		}
		if back, ok := OpFromTag(tag); !ok || back != op {
			t.Errorf("expected tag %q to map back to op %d, got %d", tag, op, back)
		}
	}
	if OpIf.String() != "ifStmt" || OpWhile.String() != "whileLoop" {
		t.Errorf("unexpected statement tags: %s, %s", OpIf, OpWhile)
	}
}

func TestSpliceRelocatesJumps(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sai.program")
	defer teardown()
	//
	seq := NewSequence()
	seq.Append(NewNode(OpPrint, mustValue(t, "0")))
	frag := NewSequence()
	head := frag.Append(NewNode(OpWhile, mustValue(t, "1")))
	frag.Append(NewNode(OpPrint, mustValue(t, "1")))
	end := frag.AppendSentinel()
	if err := frag.SetJumpTo(head, end); err != nil {
		t.Fatal(err)
	}
	if err := frag.SetBack(end, head); err != nil {
		t.Fatal(err)
	}
	at := seq.Splice(frag)
	if at != 1 {
		t.Errorf("expected fragment to start at 1, starts at %d", at)
	}
	if seq.At(1).JumpTo != 3 {
		t.Errorf("expected loop exit to be relocated to 3, is %d", seq.At(1).JumpTo)
	}
	if seq.At(3).Back != 1 {
		t.Errorf("expected back edge to be relocated to 1, is %d", seq.At(3).Back)
	}
	if err := seq.Validate(); err != nil {
		t.Error(err)
	}
	t.Logf("\n%s", seq.Dump())
}

func TestJumpMustTargetLaterSentinel(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sai.program")
	defer teardown()
	//
	seq := NewSequence()
	i := seq.Append(NewNode(OpIf, mustValue(t, "1")))
	p := seq.Append(NewNode(OpPrint, mustValue(t, "1")))
	if err := seq.SetJumpTo(i, p); err == nil {
		t.Error("expected jump to a non-sentinel to be rejected")
	}
	s := seq.AppendSentinel()
	if err := seq.SetJumpTo(s, i); err == nil {
		t.Error("expected backward jump to be rejected")
	}
	if err := seq.Validate(); err == nil {
		t.Error("expected branch without exit to fail validation")
	}
	if err := seq.SetJumpTo(i, s); err != nil {
		t.Error(err)
	}
	if err := seq.Validate(); err != nil {
		t.Error(err)
	}
}

func TestCursor(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sai.program")
	defer teardown()
	//
	seq := NewSequence()
	for _, lit := range []string{"1", "2", "3", "4"} {
		seq.Append(NewNode(OpPrint, mustValue(t, lit)))
	}
	c := seq.Cursor()
	n, inx, ok := c.Next()
	if !ok || inx != 0 || n.Param(0).Literal != "1" {
		t.Fatalf("expected first node, got %v@%d", n, inx)
	}
	c.SkipPast(1)
	if _, inx, _ = c.Next(); inx != 2 {
		t.Errorf("expected cursor to continue behind node 1, is at %d", inx)
	}
	c.Seek(0)
	if _, inx, _ = c.Next(); inx != 0 {
		t.Errorf("expected cursor to be reset to 0, is at %d", inx)
	}
	c.Seek(4)
	if _, _, ok = c.Next(); ok {
		t.Error("expected cursor to be exhausted")
	}
	other := seq.Cursor()
	if other.Pos() != 0 {
		t.Error("expected cursors to move independently")
	}
}

func TestNodeString(t *testing.T) {
	n := NewNode(OpAdd, mustValue(t, "2"), NewNode(OpMul, mustValue(t, "3"), NewLeaf(OpGetVariable, "x")))
	if s := n.String(); s != "add(value 2, mul(value 3, getVariable x))" {
		t.Errorf("unexpected rendering: %s", s)
	}
}

func mustValue(t *testing.T, lit string) *Node {
	n, err := NewValue(lit)
	if err != nil {
		t.Fatal(err)
	}
	return n
}
