package grammar

import (
	"github.com/npillmayer/sai"
	"github.com/npillmayer/sai/program"
	"github.com/npillmayer/sai/token"
)

// Binary operators per precedence level, lowest first.
var (
	booleanOps = map[token.Type]program.Op{
		token.And: program.OpAnd,
		token.Or:  program.OpOr,
	}
	relationalOps = map[token.Type]program.Op{
		token.LowerThan:       program.OpLess,
		token.LowerOrEqThan:   program.OpLessOrEq,
		token.GreaterThan:     program.OpGreater,
		token.GreaterOrEqThan: program.OpGreaterOrEq,
		token.Comparator:      program.OpEquals,
		token.NotEquals:       program.OpNotEquals,
	}
	additiveOps = map[token.Type]program.Op{
		token.OperatorPlus:  program.OpAdd,
		token.OperatorMinus: program.OpMin,
	}
	multiplicativeOps = map[token.Type]program.Op{
		token.OperatorMultiply: program.OpMul,
		token.OperatorDivide:   program.OpDiv,
		token.OperatorRaised:   program.OpRaise,
		token.OperatorModulo:   program.OpMod,
	}
)

// expression := relational { ('and'|'or') relational }
func (p *Parser) expression() (*program.Node, error) {
	return p.binary(booleanOps, p.relational)
}

// relational := additive { ('<'|'<='|'>'|'>='|'=='|'!=') additive }
func (p *Parser) relational() (*program.Node, error) {
	return p.binary(relationalOps, p.additive)
}

// additive := multiplicative { ('+'|'-') multiplicative }
func (p *Parser) additive() (*program.Node, error) {
	return p.binary(additiveOps, p.multiplicative)
}

// multiplicative := unary { ('*'|'/'|'^'|'%') unary }
func (p *Parser) multiplicative() (*program.Node, error) {
	return p.binary(multiplicativeOps, p.unary)
}

// binary parses a left-associative chain of operands of the next higher
// precedence level.
func (p *Parser) binary(ops map[token.Type]program.Op, operand func() (*program.Node, error)) (*program.Node, error) {
	lhs, err := operand()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := ops[p.peek().Type]
		if !ok {
			return lhs, nil
		}
		p.next()
		rhs, err := operand()
		if err != nil {
			return nil, err
		}
		lhs = program.NewNode(op, lhs, rhs)
	}
}

// unary := term [ '++' | '--' ]
func (p *Parser) unary() (*program.Node, error) {
	t, err := p.term()
	if err != nil {
		return nil, err
	}
	switch p.peek().Type {
	case token.UniOperatorPlus:
		p.next()
		return program.NewNode(program.OpIncrement, t), nil
	case token.UniOperatorMinus:
		p.next()
		return program.NewNode(program.OpDecrement, t), nil
	}
	return t, nil
}

// term := NUMBER | IDENT | IDENT '(' args ')' | '(' expr ')' | '-' term
func (p *Parser) term() (*program.Node, error) {
	t := p.peek()
	switch t.Type {
	case token.Float:
		p.next()
		n, err := program.NewValue(t.Value)
		if err != nil {
			return nil, p.errorf(sai.ErrUnexpectedToken, t, "malformed number")
		}
		return n, nil
	case token.Identifier:
		if p.peekAt(1).Type == token.OpenBracket {
			return p.call()
		}
		p.next()
		if _, err := p.resolve(t); err != nil {
			return nil, err
		}
		return program.NewLeaf(program.OpGetVariable, t.Value), nil
	case token.OpenBracket:
		p.next()
		e, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err = p.expect(token.CloseBracket, "')'"); err != nil {
			return nil, err
		}
		return e, nil
	case token.OperatorMinus:
		p.next()
		operand, err := p.term()
		if err != nil {
			return nil, err
		}
		return program.NewNode(program.OpMin, program.ValueNode(sai.FromFloat(0)), operand), nil
	}
	return nil, p.errorf(sai.ErrUnexpectedToken, t, "expected operand")
}

// call := IDENT '(' [ expr { ',' expr } ] ')'
//
// Calls of built-ins become nodes of the built-in's operation. All other
// calls become functionCall nodes with the function name as first
// parameter; they are resolved at run time.
func (p *Parser) call() (*program.Node, error) {
	id := p.next()
	p.next() // '('
	var args []*program.Node
	if p.peek().Type != token.CloseBracket {
		for {
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.peek().Type != token.Seperator {
				break
			}
			p.next()
		}
	}
	if _, err := p.expect(token.CloseBracket, "')'"); err != nil {
		return nil, err
	}
	if b, ok := p.lang.Lookup(id.Value); ok {
		return program.NewNode(b.Op, args...), nil
	}
	params := append([]*program.Node{program.NewLeaf(program.OpFunctionName, id.Value)}, args...)
	return program.NewNode(program.OpFunctionCall, params...), nil
}
