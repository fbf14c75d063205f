package cli

import (
	"fmt"
	"io"

	prtxt "github.com/jedib0t/go-pretty/v6/text"
	"github.com/npillmayer/sai"
	"github.com/npillmayer/sai/grammar"
	"github.com/npillmayer/sai/program"
	"github.com/npillmayer/sai/sai/ui/termui"
	"github.com/npillmayer/sai/sframe"
	"github.com/npillmayer/sai/token"
)

// Formatter displays the objects of the language: token streams, compiled
// programs, symbol tables, output and program listings.
type Formatter struct {
	termui.DefaultFormatter
	Precision int // decimal places of displayed values, -1 for exact
}

// listing is a program buffer, one source line per entry.
type listing []string

// Format formats an item.
func (f Formatter) Format(item interface{}, w io.Writer) (bool, error) {
	tracer().Debugf("cli.Format called for item %T", item)
	switch t := item.(type) {
	case []token.Token:
		item = tokensAsTable(t)
	case *sframe.SymbolTable:
		item = symbolsAsTable(t, f.Precision)
	case *sai.Output:
		item = outputAsTable(t, f.Precision)
	case listing:
		for i, line := range t {
			if _, err := fmt.Fprintf(w, "%s %s\n", prtxt.FgHiBlack.Sprintf("%3d", i+1), line); err != nil {
				return false, err
			}
		}
		return true, nil
	case *grammar.Program:
		return f.formatProgram(t, w)
	}
	return f.DefaultFormatter.Format(item, w)
}

func (f Formatter) formatProgram(prog *grammar.Program, w io.Writer) (bool, error) {
	if prog.Globals.Len() > 0 {
		if ok, err := f.Format(prog.Globals, w); !ok {
			return ok, err
		}
		if err := writeSequence(w, "global initializers", prog.Nodes); err != nil {
			return false, err
		}
	}
	for _, name := range prog.Subroutines.Names() {
		sub := prog.Subroutines.Get(name)
		if sub.Symbols.Len() > 0 {
			if ok, err := f.Format(sub.Symbols, w); !ok {
				return ok, err
			}
		}
		if err := writeSequence(w, sub.String(), sub.Body); err != nil {
			return false, err
		}
	}
	return true, nil
}

func writeSequence(w io.Writer, title string, seq *program.Sequence) error {
	_, err := fmt.Fprintf(w, "%s\n%s\n", prtxt.Bold.Sprint(title), seq.Dump())
	return err
}

// --- Tables for various types ----------------------------------------------

func tokensAsTable(toks []token.Token) interface{} {
	tw := termui.NewTable(fmt.Sprintf("%d tokens", len(toks)),
		"#", "type", "value", "position", "level", "partner")
	for i, t := range toks {
		partner := "–"
		if t.HasPartner() {
			partner = fmt.Sprintf("%d", t.Partner)
		}
		tw.AppendRow([]interface{}{
			i, t.Type, t.Value, fmt.Sprintf("%d:%d", t.Line, t.Column), t.Level, partner,
		})
	}
	return tw
}

func symbolsAsTable(st *sframe.SymbolTable, prec int) interface{} {
	tw := termui.NewTable(fmt.Sprintf("Symbols of %s", st.Name), "name", "kind", "value")
	for _, sym := range st.Symbols() {
		v := sai.FormatLiteral(sai.FromFloat(sym.Value).Literal(), prec)
		tw.AppendRow([]interface{}{sym.Name, sym.Kind, v})
	}
	return tw
}

func outputAsTable(out *sai.Output, prec int) interface{} {
	tw := termui.NewTable("Output", "#", "value")
	for i, line := range out.Lines() {
		tw.AppendRow([]interface{}{i + 1, sai.FormatLiteral(line, prec)})
	}
	return tw
}
