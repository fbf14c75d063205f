/*
Package program implements the executable program representation: nodes
and flat node sequences.

Statements are not nested. A conditional or loop is flattened into the
enclosing sequence: the branch node is followed by the nodes of its body,
followed by a doNothing sentinel. The branch node's JumpTo names this
sentinel. If the condition fails, execution continues behind the sentinel;
otherwise it falls through into the body.

   k:   ifStmt [cond]           JumpTo=g
        …if-body
   g:   doNothing               JumpTo=e     (else gate)
        …else-body
   e:   doNothing

   k:   whileLoop [cond]        JumpTo=e
        …body
   e:   doNothing               Back=k

A sentinel reached by falling through is a no-op, unless it carries a
JumpTo (an else gate: skip the else-body) or a Back edge (a loop end:
re-check the loop's condition).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package program

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'sai.program'.
func tracer() tracing.Trace {
	return tracing.Select("sai.program")
}
