package sai

import (
	"fmt"
	"io"
)

// Sink receives printed values, one literal per print operation.
type Sink interface {
	Append(string)
}

// Output is an append-only, ordered sequence of printed values.
// Consumers may read and clear it between runs.
type Output struct {
	lines []string
}

var _ Sink = (*Output)(nil)

// Append adds a printed value.
func (out *Output) Append(s string) {
	out.lines = append(out.lines, s)
}

// Lines returns a copy of all values printed so far.
func (out *Output) Lines() []string {
	l := make([]string, len(out.lines))
	copy(l, out.lines)
	return l
}

// Len returns the number of printed values.
func (out *Output) Len() int {
	return len(out.lines)
}

// Clear empties the output.
func (out *Output) Clear() {
	out.lines = out.lines[:0]
}

// WriterSink writes every printed value as a line to an io.Writer,
// rounded to Precision decimal places (see FormatLiteral).
type WriterSink struct {
	W         io.Writer
	Precision int
}

var _ Sink = WriterSink{}

// Append writes s to the underlying writer.
func (ws WriterSink) Append(s string) {
	if _, err := fmt.Fprintln(ws.W, FormatLiteral(s, ws.Precision)); err != nil {
		tracer().Errorf("cannot write output: %v", err)
	}
}

// Tee forwards every printed value to all of its sinks.
type Tee []Sink

// Append forwards s to all sinks.
func (t Tee) Append(s string) {
	for _, sink := range t {
		sink.Append(s)
	}
}
