/*
Package evaluator is the top-level entry point for running programs.

An Interpreter compiles source text and executes the resulting program on
a fresh virtual machine. Every run works on its own symbol tables; nothing
is shared between runs except the output, which accumulates until it is
cleared.

Errors are not recovered from. The first error of a run terminates it and
is reported to the caller.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package evaluator

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'sai'.
func tracer() tracing.Trace {
	return tracing.Select("sai")
}
