/*
Package sframe implements symbols, symbol tables, subroutines and the
frame stack of active subroutine invocations.

Symbol tables and the subroutine table are built once by the parser. During
execution only the value cells of symbols change. Every invocation of a
subroutine works on a clone of the subroutine's symbol table, held by
the invocation's frame; name lookup checks the current frame first, then
falls back to the global symbol table.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sframe

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'sai.runtime'
func tracer() tracing.Trace {
	return tracing.Select("sai.runtime")
}
