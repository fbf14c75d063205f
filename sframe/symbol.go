package sframe

import (
	"fmt"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/npillmayer/sai"
	"github.com/npillmayer/sai/token"
)

// SymbolKind is the scope class of a symbol.
type SymbolKind uint8

// Symbols are global variables, local variables of a subroutine, or
// parameters of a subroutine.
const (
	Global SymbolKind = iota
	Local
	Parameter
)

func (k SymbolKind) String() string {
	switch k {
	case Global:
		return "global"
	case Local:
		return "local"
	case Parameter:
		return "parameter"
	}
	return fmt.Sprintf("<illegal kind %d>", k)
}

// Symbol is a named, mutable storage cell for a single float.
type Symbol struct {
	Name         string
	DeclaredType token.Type
	Kind         SymbolKind
	Value        float64
}

// NewSymbol creates a symbol with initial value 0.
func NewSymbol(name string, typ token.Type, kind SymbolKind) *Symbol {
	return &Symbol{Name: name, DeclaredType: typ, Kind: kind}
}

func (sym *Symbol) String() string {
	return fmt.Sprintf("<%s %s=%s>", sym.Kind, sym.Name, sai.FromFloat(sym.Value).Literal())
}

// --- Symbol Table ----------------------------------------------------------

// SymbolTable is an insertion-ordered mapping from names to symbols. Names
// are unique.
type SymbolTable struct {
	Name    string
	symbols *linkedhashmap.Map
}

// NewSymbolTable creates an empty symbol table.
func NewSymbolTable(name string) *SymbolTable {
	return &SymbolTable{
		Name:    name,
		symbols: linkedhashmap.New(),
	}
}

// Add inserts a symbol. A second symbol with the same name is rejected,
// never overwritten.
func (st *SymbolTable) Add(sym *Symbol) error {
	if _, found := st.symbols.Get(sym.Name); found {
		tracer().P("symbol", sym.Name).Errorf("duplicate declaration in %s", st.Name)
		return fmt.Errorf("%w: %s already declared in %s", sai.ErrDuplicate, sym.Name, st.Name)
	}
	st.symbols.Put(sym.Name, sym)
	tracer().P("symbol", sym.Name).Debugf("declared %s symbol in %s", sym.Kind, st.Name)
	return nil
}

// Has is a predicate: is name declared in this table?
func (st *SymbolTable) Has(name string) bool {
	_, found := st.symbols.Get(name)
	return found
}

// Get returns the symbol for a name, or nil.
func (st *SymbolTable) Get(name string) *Symbol {
	if st == nil {
		return nil
	}
	if sym, found := st.symbols.Get(name); found {
		return sym.(*Symbol)
	}
	return nil
}

// Len returns the number of symbols.
func (st *SymbolTable) Len() int {
	return st.symbols.Size()
}

// Symbols returns all symbols in declaration order.
func (st *SymbolTable) Symbols() []*Symbol {
	syms := make([]*Symbol, 0, st.symbols.Size())
	it := st.symbols.Iterator()
	for it.Next() {
		syms = append(syms, it.Value().(*Symbol))
	}
	return syms
}

// Parameters returns the parameter symbols in declaration order.
func (st *SymbolTable) Parameters() []*Symbol {
	var params []*Symbol
	for _, sym := range st.Symbols() {
		if sym.Kind == Parameter {
			params = append(params, sym)
		}
	}
	return params
}

// ParameterCount returns the number of parameter symbols, used to check the
// arity at call sites.
func (st *SymbolTable) ParameterCount() int {
	return len(st.Parameters())
}

// Clone creates a table with the same symbols in the same order, but with
// fresh value cells, all set to 0.
func (st *SymbolTable) Clone() *SymbolTable {
	c := NewSymbolTable(st.Name)
	it := st.symbols.Iterator()
	for it.Next() {
		sym := it.Value().(*Symbol)
		c.symbols.Put(sym.Name, NewSymbol(sym.Name, sym.DeclaredType, sym.Kind))
	}
	return c
}
