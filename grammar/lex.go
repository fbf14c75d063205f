package grammar

/*
BSD License

Copyright (c) 2019–21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.  */

import (
	"fmt"
	"strings"
	"sync"

	"github.com/npillmayer/sai"
	"github.com/npillmayer/sai/token"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// The tokens representing operators and punctuation
var literals = []struct {
	lexeme string
	typ    token.Type
}{
	{"+", token.OperatorPlus}, {"-", token.OperatorMinus},
	{"*", token.OperatorMultiply}, {"/", token.OperatorDivide},
	{"^", token.OperatorRaised}, {"%", token.OperatorModulo},
	{"++", token.UniOperatorPlus}, {"--", token.UniOperatorMinus},
	{"<", token.LowerThan}, {"<=", token.LowerOrEqThan},
	{">", token.GreaterThan}, {">=", token.GreaterOrEqThan},
	{"==", token.Comparator}, {"!=", token.NotEquals}, {"=", token.Equals},
	{"(", token.OpenBracket}, {")", token.CloseBracket},
	{"{", token.OpenCurlyBracket}, {"}", token.CloseCurlyBracket},
	{",", token.Seperator}, {";", token.EOL},
}

var lexer *lexmachine.Lexer
var lexerErr error
var initOnce sync.Once // monitors one-time initialization

// Lexer returns the compiled lexmachine lexer for the language.
func Lexer() (*lexmachine.Lexer, error) {
	initOnce.Do(func() {
		lexer = lexmachine.NewLexer()
		lexer.Add([]byte(`//[^\n]*`), skip) // skip comments
		lexer.Add([]byte(`( |\t|\n|\r)+`), skip)
		lexer.Add([]byte(`[0-9]+(\.[0-9]+)?`), makeToken(token.Float))
		lexer.Add([]byte(`([a-z]|[A-Z]|_)([a-z]|[A-Z]|[0-9]|_)*`), makeIdentOrKeyword)
		for _, lit := range literals {
			r := "\\" + strings.Join(strings.Split(lit.lexeme, ""), "\\")
			lexer.Add([]byte(r), makeToken(lit.typ))
		}
		if lexerErr = lexer.Compile(); lexerErr != nil {
			tracer().Errorf("cannot compile lexer: %v", lexerErr)
		}
	})
	return lexer, lexerErr
}

func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

func makeToken(t token.Type) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(int(t), string(m.Bytes), m), nil
	}
}

func makeIdentOrKeyword(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
	lexeme := string(m.Bytes)
	if kw, ok := token.Keywords[lexeme]; ok {
		return s.Token(int(kw), lexeme, m), nil
	}
	return s.Token(int(token.Identifier), lexeme, m), nil
}

// Tokenize splits source text into tokens. The token list is terminated
// by an EOF token. Nesting levels are set and brackets as well as if/else
// pairs are linked.
func Tokenize(src string) ([]token.Token, error) {
	lx, err := Lexer()
	if err != nil {
		return nil, err
	}
	scanner, err := lx.Scanner([]byte(src))
	if err != nil {
		return nil, err
	}
	var toks []token.Token
	line, col := 1, 1
	for tok, err, eof := scanner.Next(); !eof; tok, err, eof = scanner.Next() {
		if ui, is := err.(*machines.UnconsumedInput); is {
			tracer().Errorf("unrecognized input at %d:%d", ui.FailLine, ui.FailColumn)
			return nil, fmt.Errorf("%w: %d:%d: unrecognized input %q", sai.ErrLex,
				ui.StartLine, ui.StartColumn, excerpt(ui.Text[ui.StartTC:]))
		} else if err != nil {
			return nil, fmt.Errorf("%w: %v", sai.ErrLex, err)
		}
		t := tok.(*lexmachine.Token)
		line, col = t.EndLine, t.EndColumn+1
		toks = append(toks, token.Token{
			Type:    token.Type(t.Type),
			Value:   t.Value.(string),
			Partner: token.NoPartner,
			Line:    t.StartLine,
			Column:  t.StartColumn,
		})
	}
	toks = append(toks, token.Token{
		Type:    token.EOF,
		Partner: token.NoPartner,
		Line:    line,
		Column:  col,
	})
	if err := link(toks); err != nil {
		return nil, err
	}
	tracer().Debugf("source split into %d tokens", len(toks))
	return toks, nil
}

func excerpt(b []byte) string {
	if i := strings.IndexAny(string(b), " \t\r\n"); i > 0 {
		b = b[:i]
	}
	if len(b) > 16 {
		b = b[:16]
	}
	return string(b)
}

// link sets the nesting levels, pairs brackets and pairs every 'if' with
// the 'else' directly following the closing bracket of its block.
// Curly and round brackets share one stack and have to nest properly.
func link(toks []token.Token) error {
	var open []int
	level := 0
	for i := range toks {
		t := &toks[i]
		switch t.Type {
		case token.OpenCurlyBracket, token.OpenBracket:
			t.Level = level
			open = append(open, i)
			if t.Type == token.OpenCurlyBracket {
				level++
			}
			continue
		case token.CloseCurlyBracket, token.CloseBracket:
			if len(open) == 0 {
				return unmatched(t)
			}
			o := open[len(open)-1]
			if closing[toks[o].Type] != t.Type {
				return unmatched(t)
			}
			open = open[:len(open)-1]
			if t.Type == token.CloseCurlyBracket {
				level--
			}
			t.Partner, toks[o].Partner = o, i
		}
		t.Level = level
	}
	if len(open) > 0 {
		return unmatched(&toks[open[len(open)-1]])
	}
	for i := range toks {
		if toks[i].Type == token.If {
			if e := elseOf(toks, i); e >= 0 {
				toks[i].Partner, toks[e].Partner = e, i
			}
		}
	}
	return nil
}

// elseOf finds the index of the 'else' token belonging to the 'if' at
// index i, or -1.
func elseOf(toks []token.Token, i int) int {
	cond := i + 1
	if cond >= len(toks) || toks[cond].Type != token.OpenBracket {
		return -1
	}
	block := toks[cond].Partner + 1
	if block >= len(toks) || toks[block].Type != token.OpenCurlyBracket {
		return -1
	}
	e := toks[block].Partner + 1
	if e < len(toks) && toks[e].Type == token.Else {
		return e
	}
	return -1
}

var closing = map[token.Type]token.Type{
	token.OpenCurlyBracket: token.CloseCurlyBracket,
	token.OpenBracket:      token.CloseBracket,
}

func unmatched(t *token.Token) error {
	tracer().Errorf("unmatched bracket %q at %d:%d", t.Value, t.Line, t.Column)
	return &sai.ParseError{
		Line:   t.Line,
		Column: t.Column,
		Lexeme: t.Value,
		Kind:   sai.ErrUnmatchedBracket,
	}
}
