/*
Package corelang implements the fixed library of built-in operations of the
language: arithmetic and comparison operators, math functions, print and
stop.

Every built-in is described by an entry in a table, which the parser uses
to recognize built-in names and the virtual machine uses to dispatch
operations. Math built-ins are pure functions on floats. They check their
domain and never panic.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package corelang

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'sai.core'.
func tracer() tracing.Trace {
	return tracing.Select("sai.core")
}
