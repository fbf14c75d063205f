/*
Package vm implements the virtual machine, which executes node sequences.

The machine runs the global initializers once, in order, then calls
subroutine 'main'. Every invocation of a subroutine gets a frame of its
own, holding a fresh copy of the subroutine's symbols and a cursor into its
body. Nodes are evaluated by dispatching their operation through a fixed
table of handlers.

Control flow

Branches and loops are flattened into the sequence. A branch node is
followed by its body and a sentinel node, which is the branch's jump
target; jumping to a sentinel continues execution behind it. An
if-statement with an else-part has an additional sentinel between the two
parts, which jumps to the end when reached after the if-part. A loop's
sentinel links back to the loop head: reaching it re-evaluates the loop
condition (after the step expression, for for-loops).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package vm

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'sai.vm'
func tracer() tracing.Trace {
	return tracing.Select("sai.vm")
}
