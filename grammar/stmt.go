package grammar

import (
	"github.com/npillmayer/sai"
	"github.com/npillmayer/sai/program"
	"github.com/npillmayer/sai/sframe"
	"github.com/npillmayer/sai/token"
)

// block := '{' { statement } '}'
//
// Statements of the block are appended to seq. The block ends at the first
// token which is not nested deeper than the opening bracket.
func (p *Parser) block(seq *program.Sequence) error {
	open, err := p.expect(token.OpenCurlyBracket, "'{'")
	if err != nil {
		return err
	}
	for p.peek().Type != token.CloseCurlyBracket && p.peek().Level > open.Level {
		if err = p.statement(seq); err != nil {
			return err
		}
	}
	if p.peek().Type != token.CloseCurlyBracket {
		return p.errorf(sai.ErrUnmatchedBracket, open, "block not closed")
	}
	p.next()
	return nil
}

// statement dispatches on the kind of the next token.
func (p *Parser) statement(seq *program.Sequence) error {
	t := p.peek()
	switch t.Type {
	case token.Var:
		node, err := p.declaration(sframe.Local)
		if err != nil {
			return err
		}
		seq.Append(node)
		return nil
	case token.Identifier:
		return p.simpleStatement(seq)
	case token.If:
		return p.ifStatement(seq)
	case token.While:
		return p.whileLoop(seq)
	case token.ForLoop:
		return p.forLoop(seq)
	case token.Return:
		return p.returnStatement(seq)
	}
	return p.errorf(sai.ErrInvalidStatement, t, "no statement found")
}

// simpleStatement parses an assignment, an increment or decrement, or a
// call, each terminated by ';'.
func (p *Parser) simpleStatement(seq *program.Sequence) error {
	node, err := p.simpleNoEOL()
	if err != nil {
		return err
	}
	if _, err = p.expect(token.EOL, "';'"); err != nil {
		return err
	}
	seq.Append(node)
	return nil
}

func (p *Parser) simpleNoEOL() (*program.Node, error) {
	id := p.peek()
	switch p.peekAt(1).Type {
	case token.Equals:
		return p.assignment()
	case token.UniOperatorPlus, token.UniOperatorMinus, token.OpenBracket:
		return p.unary()
	}
	return nil, p.errorf(sai.ErrUnexpectedToken, p.peekAt(1), "expected assignment or call after %s", id.Value)
}

// assignment := IDENT '=' expr
func (p *Parser) assignment() (*program.Node, error) {
	id := p.next()
	if _, err := p.resolve(id); err != nil {
		return nil, err
	}
	p.next() // '='
	rhs, err := p.expression()
	if err != nil {
		return nil, err
	}
	return program.NewNode(program.OpAssignment, program.NewLeaf(program.OpIdentifier, id.Value), rhs), nil
}

// condition := '(' expr ')'
func (p *Parser) condition() (*program.Node, error) {
	if _, err := p.expect(token.OpenBracket, "'('"); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err = p.expect(token.CloseBracket, "')'"); err != nil {
		return nil, err
	}
	return cond, nil
}

// ifStatement := 'if' '(' expr ')' block [ 'else' block ]
//
// Without else:           With else:
//
//   k: ifStmt → e           k: ifStmt → g
//      if-body                 if-body
//   e: doNothing            g: doNothing → e
//                              else-body
//                           e: doNothing
func (p *Parser) ifStatement(seq *program.Sequence) error {
	kw := p.next()
	cond, err := p.condition()
	if err != nil {
		return err
	}
	frag := program.NewSequence()
	head := frag.Append(program.NewNode(program.OpIf, cond))
	if err = p.block(frag); err != nil {
		return err
	}
	if !kw.HasPartner() {
		end := frag.AppendSentinel()
		if err = frag.SetJumpTo(head, end); err != nil {
			return err
		}
		seq.Splice(frag)
		return nil
	}
	if p.pos != kw.Partner {
		return p.errorf(sai.ErrUnexpectedToken, p.peek(), "expected else")
	}
	p.next() // 'else'
	gate := frag.AppendSentinel()
	if err = frag.SetJumpTo(head, gate); err != nil {
		return err
	}
	if err = p.block(frag); err != nil {
		return err
	}
	end := frag.AppendSentinel()
	if err = frag.SetJumpTo(gate, end); err != nil {
		return err
	}
	seq.Splice(frag)
	return nil
}

// whileLoop := 'while' '(' expr ')' block
func (p *Parser) whileLoop(seq *program.Sequence) error {
	p.next() // 'while'
	cond, err := p.condition()
	if err != nil {
		return err
	}
	return p.loop(seq, program.NewNode(program.OpWhile, cond))
}

// forLoop := 'for' '(' forInit ';' expr ';' forStep ')' block
//
// The loop node holds [init, condition, step].
func (p *Parser) forLoop(seq *program.Sequence) error {
	p.next() // 'for'
	if _, err := p.expect(token.OpenBracket, "'('"); err != nil {
		return err
	}
	var init *program.Node
	var err error
	if p.peek().Type == token.Var {
		init, err = p.declarationNoEOL(sframe.Local)
	} else if p.peek().Type == token.Identifier && p.peekAt(1).Type == token.Equals {
		init, err = p.assignment()
	} else {
		err = p.errorf(sai.ErrUnexpectedToken, p.peek(), "expected loop initializer")
	}
	if err != nil {
		return err
	}
	if _, err = p.expect(token.EOL, "';'"); err != nil {
		return err
	}
	cond, err := p.expression()
	if err != nil {
		return err
	}
	if _, err = p.expect(token.EOL, "';'"); err != nil {
		return err
	}
	var step *program.Node
	if p.peek().Type == token.Identifier && p.peekAt(1).Type == token.Equals {
		step, err = p.assignment()
	} else {
		step, err = p.expression()
	}
	if err != nil {
		return err
	}
	if _, err = p.expect(token.CloseBracket, "')'"); err != nil {
		return err
	}
	return p.loop(seq, program.NewNode(program.OpFor, init, cond, step))
}

// loop flattens a loop head and its body:
//
//   k: whileLoop|forLoop → e
//      body
//   e: doNothing ↺ k
func (p *Parser) loop(seq *program.Sequence, head *program.Node) error {
	frag := program.NewSequence()
	k := frag.Append(head)
	if err := p.block(frag); err != nil {
		return err
	}
	e := frag.AppendSentinel()
	if err := frag.SetJumpTo(k, e); err != nil {
		return err
	}
	if err := frag.SetBack(e, k); err != nil {
		return err
	}
	seq.Splice(frag)
	return nil
}

// returnStatement := 'return' [ expr ] ';'
func (p *Parser) returnStatement(seq *program.Sequence) error {
	p.next() // 'return'
	node := program.NewNode(program.OpReturn)
	if p.peek().Type != token.EOL {
		val, err := p.expression()
		if err != nil {
			return err
		}
		node.Params = append(node.Params, val)
	}
	if _, err := p.expect(token.EOL, "';'"); err != nil {
		return err
	}
	seq.Append(node)
	return nil
}
