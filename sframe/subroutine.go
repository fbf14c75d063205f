package sframe

import (
	"fmt"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/npillmayer/sai"
	"github.com/npillmayer/sai/program"
	"github.com/npillmayer/sai/token"
)

// SubroutineKind classifies subroutines. Built-ins are not subroutines,
// they are defined by package corelang.
type SubroutineKind uint8

// Kinds of subroutines
const (
	UserFunction SubroutineKind = iota
)

// Subroutine is a named function with its own symbol table and a node
// sequence as its body. Parameters are the first symbols of the table, in
// declaration order.
type Subroutine struct {
	Name       string
	ReturnType token.Type
	Kind       SubroutineKind
	Symbols    *SymbolTable
	Body       *program.Sequence
}

// NewSubroutine creates a user function with an empty symbol table and an
// empty body.
func NewSubroutine(name string, returnType token.Type) *Subroutine {
	return &Subroutine{
		Name:       name,
		ReturnType: returnType,
		Kind:       UserFunction,
		Symbols:    NewSymbolTable(name),
		Body:       program.NewSequence(),
	}
}

// ParameterCount returns the number of declared parameters.
func (sub *Subroutine) ParameterCount() int {
	return sub.Symbols.ParameterCount()
}

func (sub *Subroutine) String() string {
	return fmt.Sprintf("<%s %s/%d>", sub.ReturnType, sub.Name, sub.ParameterCount())
}

// --- Subroutine Table ------------------------------------------------------

// SubroutineTable maps names to subroutines. Names are unique, iteration
// is in lexical order of names.
type SubroutineTable struct {
	subs *treemap.Map
}

// NewSubroutineTable creates an empty subroutine table.
func NewSubroutineTable() *SubroutineTable {
	return &SubroutineTable{subs: treemap.NewWithStringComparator()}
}

// Add inserts a subroutine. A second subroutine of the same name is rejected.
func (t *SubroutineTable) Add(sub *Subroutine) error {
	if _, found := t.subs.Get(sub.Name); found {
		tracer().P("sub", sub.Name).Errorf("duplicate subroutine")
		return fmt.Errorf("%w: subroutine %s already defined", sai.ErrDuplicate, sub.Name)
	}
	t.subs.Put(sub.Name, sub)
	return nil
}

// Get returns the subroutine for a name, or nil.
func (t *SubroutineTable) Get(name string) *Subroutine {
	if t == nil {
		return nil
	}
	if sub, found := t.subs.Get(name); found {
		return sub.(*Subroutine)
	}
	return nil
}

// Names returns the sorted list of subroutine names.
func (t *SubroutineTable) Names() []string {
	keys := t.subs.Keys()
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.(string)
	}
	return names
}

// Len returns the number of subroutines.
func (t *SubroutineTable) Len() int {
	if t == nil {
		return 0
	}
	return t.subs.Size()
}
