package grammar

import (
	"fmt"

	"github.com/npillmayer/sai"
	"github.com/npillmayer/sai/corelang"
	"github.com/npillmayer/sai/program"
	"github.com/npillmayer/sai/sframe"
	"github.com/npillmayer/sai/token"
)

// Program is the result of parsing: the global symbol table, the sequence
// of global initializers and the subroutine table.
type Program struct {
	Globals     *sframe.SymbolTable
	Nodes       *program.Sequence
	Subroutines *sframe.SubroutineTable
}

// NewProgram creates an empty program.
func NewProgram() *Program {
	return &Program{
		Globals:     sframe.NewSymbolTable("#global"),
		Nodes:       program.NewSequence(),
		Subroutines: sframe.NewSubroutineTable(),
	}
}

// Parser is a recursive-descent parser for a token stream. A parser is
// used for one stream only.
type Parser struct {
	toks  []token.Token
	pos   int
	prog  *Program
	lang  *corelang.Language
	scope *sframe.SymbolTable // symbols of the function currently parsed
	used  map[string]bool     // globals referenced by the function currently parsed
}

// NewParser creates a parser for a token stream, as produced by Tokenize.
func NewParser(toks []token.Token) *Parser {
	if len(toks) == 0 || toks[len(toks)-1].Type != token.EOF {
		toks = append(toks, token.Token{Type: token.EOF, Partner: token.NoPartner})
	}
	return &Parser{
		toks: toks,
		prog: NewProgram(),
		lang: corelang.LoadStandardLanguage(),
	}
}

// Parse parses source text into a program.
func Parse(src string) (*Program, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	return NewParser(toks).Parse()
}

// Parse parses the complete token stream. It stops at the first error and
// returns no partial program.
func (p *Parser) Parse() (*Program, error) {
	tracer().Infof("parsing %d tokens", len(p.toks))
	for p.peek().Type != token.EOF {
		var err error
		switch p.peek().Type {
		case token.Var:
			err = p.globalDecl()
		case token.Function:
			err = p.function()
		default:
			err = p.errorf(sai.ErrInvalidStatement, p.peek(), "expected declaration or function")
		}
		if err != nil {
			return nil, err
		}
	}
	tracer().Infof("parsed %d globals, %d subroutines", p.prog.Globals.Len(), p.prog.Subroutines.Len())
	return p.prog, nil
}

// --- Token stream ----------------------------------------------------------

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

func (p *Parser) peekAt(n int) token.Token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *Parser) next() token.Token {
	t := p.toks[p.pos]
	if t.Type != token.EOF {
		p.pos++
	}
	return t
}

// expect consumes a token of type typ, or fails with an error of kind
// ErrMissingToken.
func (p *Parser) expect(typ token.Type, what string) (token.Token, error) {
	if t := p.peek(); t.Type != typ {
		return t, p.errorf(sai.ErrMissingToken, t, "expected %s", what)
	}
	return p.next(), nil
}

func (p *Parser) errorf(kind error, t token.Token, format string, args ...interface{}) error {
	err := &sai.ParseError{
		Line:   t.Line,
		Column: t.Column,
		Lexeme: t.Value,
		Kind:   kind,
		Msg:    fmt.Sprintf(format, args...),
	}
	tracer().Errorf(err.Error())
	return err
}

// --- Scope -----------------------------------------------------------------

// declare adds a symbol to the current scope, which is the function
// currently parsed or the globals.
func (p *Parser) declare(t token.Token, kind sframe.SymbolKind) error {
	st := p.prog.Globals
	if p.scope != nil {
		st = p.scope
	}
	if p.scope != nil && p.used[t.Value] {
		// at run time the name would resolve to the local from the start
		return p.errorf(sai.ErrDuplicate, t, "local %s shadows a global used before in %s",
			t.Value, p.scope.Name)
	}
	if err := st.Add(sframe.NewSymbol(t.Value, token.FloatType, kind)); err != nil {
		return p.errorf(sai.ErrDuplicate, t, "symbol %s already declared", t.Value)
	}
	return nil
}

// resolve looks up a variable name in the current function's scope, then
// in the globals.
func (p *Parser) resolve(t token.Token) (*sframe.Symbol, error) {
	if sym := p.scope.Get(t.Value); sym != nil {
		return sym, nil
	}
	if sym := p.prog.Globals.Get(t.Value); sym != nil {
		if p.scope != nil {
			p.used[t.Value] = true
		}
		return sym, nil
	}
	return nil, p.errorf(sai.ErrSymbolNotFound, t, "symbol %s not declared", t.Value)
}

// --- Declarations ----------------------------------------------------------

// globalDecl := 'var' IDENT [ '=' expr ] ';'
func (p *Parser) globalDecl() error {
	node, err := p.declaration(sframe.Global)
	if err != nil {
		return err
	}
	p.prog.Nodes.Append(node)
	return nil
}

// declaration parses a variable declaration with optional initializer,
// including the trailing ';'. A declaration without an initializer sets
// the variable to 0.
func (p *Parser) declaration(kind sframe.SymbolKind) (*program.Node, error) {
	node, err := p.declarationNoEOL(kind)
	if err != nil {
		return nil, err
	}
	if _, err = p.expect(token.EOL, "';'"); err != nil {
		return nil, err
	}
	return node, nil
}

func (p *Parser) declarationNoEOL(kind sframe.SymbolKind) (*program.Node, error) {
	p.next() // 'var'
	id, err := p.expect(token.Identifier, "variable name")
	if err != nil {
		return nil, err
	}
	var init *program.Node
	if p.peek().Type == token.Equals {
		p.next()
		if init, err = p.expression(); err != nil {
			return nil, err
		}
	} else {
		init = program.ValueNode(sai.FromFloat(0))
	}
	// the symbol is not visible in its own initializer
	if err = p.declare(id, kind); err != nil {
		return nil, err
	}
	return program.NewNode(program.OpAssignment, program.NewLeaf(program.OpIdentifier, id.Value), init), nil
}

// function := 'function' retType IDENT '(' [ param { ',' param } ] ')' block
func (p *Parser) function() error {
	p.next() // 'function'
	rt := p.peek()
	if !rt.Type.IsReturnType() {
		return p.errorf(sai.ErrMissingReturnType, rt, "expected return type of function")
	}
	p.next()
	id, err := p.expect(token.Identifier, "function name")
	if err != nil {
		return err
	}
	if p.lang.IsBuiltin(id.Value) {
		return p.errorf(sai.ErrDuplicate, id, "function %s is a built-in", id.Value)
	}
	sub := sframe.NewSubroutine(id.Value, rt.Type)
	if err = p.prog.Subroutines.Add(sub); err != nil {
		return p.errorf(sai.ErrDuplicate, id, "function %s already defined", id.Value)
	}
	tracer().P("sub", sub.Name).Debugf("function definition")
	p.scope, p.used = sub.Symbols, make(map[string]bool)
	defer func() { p.scope, p.used = nil, nil }()
	if err = p.parameters(); err != nil {
		return err
	}
	return p.block(sub.Body)
}

// param := [ 'float' ] IDENT
func (p *Parser) parameters() error {
	if _, err := p.expect(token.OpenBracket, "'('"); err != nil {
		return err
	}
	if p.peek().Type == token.CloseBracket {
		p.next()
		return nil
	}
	for {
		if p.peek().Type == token.FloatType {
			p.next()
		}
		id, err := p.expect(token.Identifier, "parameter name")
		if err != nil {
			return err
		}
		if err = p.declare(id, sframe.Parameter); err != nil {
			return err
		}
		if p.peek().Type != token.Seperator {
			break
		}
		p.next()
	}
	_, err := p.expect(token.CloseBracket, "')'")
	return err
}
