package sframe

import (
	"github.com/emirpasic/gods/stacks/linkedliststack"
	"github.com/npillmayer/sai/program"
)

// Frame is the state of one active invocation of a subroutine: a private
// copy of the subroutine's symbols and a cursor into its body.
type Frame struct {
	Sub     *Subroutine
	Symbols *SymbolTable
	Cursor  *program.Cursor
}

// FrameStack is the stack of active invocations. The bottom of the stack
// is not a frame but the global symbol table, which lives for the whole
// execution.
//
// Frames are never shared: recursion pushes a fresh frame for every
// invocation, so locals of a caller are untouched by its callees.
type FrameStack struct {
	globals *SymbolTable
	frames  *linkedliststack.Stack
}

// NewFrameStack creates an empty frame stack on top of a global
// symbol table.
func NewFrameStack(globals *SymbolTable) *FrameStack {
	if globals == nil {
		globals = NewSymbolTable("#global")
	}
	return &FrameStack{
		globals: globals,
		frames:  linkedliststack.New(),
	}
}

// Globals returns the global symbol table.
func (fs *FrameStack) Globals() *SymbolTable {
	return fs.globals
}

// PushNewFrame starts an invocation of sub. The new frame gets a clone of
// the subroutine's symbol table and a cursor positioned at the start of
// the body.
func (fs *FrameStack) PushNewFrame(sub *Subroutine) *Frame {
	frame := &Frame{
		Sub:     sub,
		Symbols: sub.Symbols.Clone(),
		Cursor:  sub.Body.Cursor(),
	}
	fs.frames.Push(frame)
	tracer().P("sub", sub.Name).Debugf("pushing new frame, depth = %d", fs.frames.Size())
	return frame
}

// PopFrame ends the invocation on top of the stack and returns its frame.
// Popping an empty stack returns nil.
func (fs *FrameStack) PopFrame() *Frame {
	f, ok := fs.frames.Pop()
	if !ok {
		tracer().Errorf("attempt to pop frame from empty stack")
		return nil
	}
	frame := f.(*Frame)
	tracer().P("sub", frame.Sub.Name).Debugf("popped frame")
	return frame
}

// Current returns the frame on top of the stack, or nil if no subroutine
// is active.
func (fs *FrameStack) Current() *Frame {
	f, ok := fs.frames.Peek()
	if !ok {
		return nil
	}
	return f.(*Frame)
}

// Depth returns the number of active invocations.
func (fs *FrameStack) Depth() int {
	return fs.frames.Size()
}

// Resolve finds the symbol for a name, searching the current frame first,
// then the globals. It returns nil if the name is not declared in either.
func (fs *FrameStack) Resolve(name string) *Symbol {
	if frame := fs.Current(); frame != nil {
		if sym := frame.Symbols.Get(name); sym != nil {
			return sym
		}
	}
	return fs.globals.Get(name)
}
