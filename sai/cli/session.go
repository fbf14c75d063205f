package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	prtxt "github.com/jedib0t/go-pretty/v6/text"
	"github.com/npillmayer/sai"
	"github.com/npillmayer/sai/evaluator"
	"github.com/npillmayer/sai/sai/ui/termui"
)

// session holds the state of an interactive session: the program buffer
// and the values printed by all runs. Program lines reach the session as
// interpreter input, everything else as one of its commands.
type session struct {
	buffer listing
	intp   *evaluator.Interpreter
	format Formatter
	shown  int // number of printed values already displayed
}

var _ termui.REPLCommandInterpreter = (*session)(nil)

func newSession(prec int) *session {
	return &session{
		intp:   evaluator.NewInterpreter(),
		format: Formatter{Precision: prec},
	}
}

// newREPL creates a terminal REPL for a session.
func newREPL(s *session) *termui.BaseREPL {
	repl := termui.NewBaseREPL("sai", "0.1 experimental", s, s.commands()...)
	repl.Helper = func(w io.Writer) {
		io.WriteString(w, "\nEvery other line is appended to the program buffer.\n\n")
	}
	return repl
}

// InterpretCommand appends a program line to the buffer.
func (s *session) InterpretCommand(line string, stdout, stderr io.Writer) {
	s.buffer = append(s.buffer, line)
}

func (s *session) commands() []termui.Command {
	return []termui.Command{
		{Name: "run", Help: "compile and run the program buffer", Run: s.run},
		{Name: "list", Help: "list the program buffer", Run: s.list},
		{Name: "reset", Help: "clear the program buffer", Run: s.reset},
		{Name: "load", Args: []string{"file"}, Help: "append a file to the program buffer",
			Run: s.load, Complete: sourceFiles},
		{Name: "output", Help: "list all values printed so far", Run: s.output},
		{Name: "clear", Help: "clear the printed values", Run: s.clear},
		{Name: "symbols", Help: "list the global symbols of the most recent run", Run: s.symbols},
	}
}

// run compiles and runs the program buffer and displays the values printed
// by the run.
func (s *session) run(args []string, stdout, stderr io.Writer) {
	err := s.intp.Start(strings.Join(s.buffer, "\n"))
	lines := s.intp.Output().Lines()
	for _, l := range lines[s.shown:] {
		fmt.Fprintf(stdout, "▶ %s\n", sai.FormatLiteral(l, s.format.Precision))
	}
	s.shown = len(lines)
	switch {
	case err == nil:
	case errors.Is(err, sai.ErrStop):
		fmt.Fprintln(stderr, prtxt.FgYellow.Sprint("> program stopped"))
	default:
		fmt.Fprintln(stderr, prtxt.FgRed.Sprintf("> error: %v", err))
	}
}

func (s *session) list(args []string, stdout, stderr io.Writer) {
	s.display(s.buffer, stdout)
}

func (s *session) reset(args []string, stdout, stderr io.Writer) {
	s.buffer = s.buffer[:0]
}

func (s *session) load(args []string, stdout, stderr io.Writer) {
	src, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(stderr, "> %v\n", err)
		return
	}
	lines := strings.Split(strings.TrimRight(string(src), "\n"), "\n")
	s.buffer = append(s.buffer, lines...)
	fmt.Fprintf(stderr, "> %d lines loaded\n", len(lines))
}

func (s *session) output(args []string, stdout, stderr io.Writer) {
	s.display(s.intp.Output(), stdout)
}

func (s *session) clear(args []string, stdout, stderr io.Writer) {
	s.intp.Output().Clear()
	s.shown = 0
}

func (s *session) symbols(args []string, stdout, stderr io.Writer) {
	if globals := s.intp.Globals(); globals != nil {
		s.display(globals, stdout)
		return
	}
	fmt.Fprintln(stderr, "> no program has been run")
}

func (s *session) display(item interface{}, w io.Writer) {
	if _, err := s.format.Format(item, w); err != nil {
		tracer().Errorf("cannot display %T: %v", item, err)
	}
}

// sourceFiles proposes program files of the working directory.
func sourceFiles(line string) []string {
	files, err := filepath.Glob("*.sai")
	if err != nil {
		return nil
	}
	return files
}
