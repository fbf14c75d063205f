/*
Package grammar implements the front end of the language: a lexer producing
tokens with nesting metadata, and a recursive-descent parser lowering
tokens into node sequences, symbol tables and a subroutine table.

Statements are not kept as nested blocks. Control structures are flattened:
a branch node is followed by its body and a doNothing sentinel, which is
the branch's jump target. Nested structures are parsed into fragments of
their own and spliced into the enclosing sequence.

Identifiers are resolved while parsing, against the local scope of the
current function first, then against the globals. Function calls are
resolved at run time.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package grammar

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'sai.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("sai.grammar")
}
