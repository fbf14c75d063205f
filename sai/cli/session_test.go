package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// feed dispatches input lines through the session's REPL.
func feed(s *session, lines ...string) (string, string) {
	var stdout, stderr bytes.Buffer
	repl := newREPL(s)
	for _, l := range lines {
		repl.Dispatch(l, &stdout, &stderr)
	}
	return stdout.String(), stderr.String()
}

func TestSessionRun(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sai.cli")
	defer teardown()
	//
	s := newSession(-1)
	out, errout := feed(s,
		"var x = 3;",
		"function void main() {",
		"  print(x * 2);",
		"}",
		"run",
	)
	if errout != "" {
		t.Fatalf("unexpected error output: %q", errout)
	}
	if out != "▶ 6\n" {
		t.Errorf("expected run to print 6, got %q", out)
	}
	if len(s.buffer) != 4 {
		t.Errorf("expected 4 lines in program buffer, have %d", len(s.buffer))
	}
	// a second run displays only the values of that run
	out, _ = feed(s, "run")
	if out != "▶ 6\n" {
		t.Errorf("expected second run to print 6 once, got %q", out)
	}
	if n := s.intp.Output().Len(); n != 2 {
		t.Errorf("expected 2 values in output, have %d", n)
	}
	feed(s, "clear", "reset")
	if s.intp.Output().Len() != 0 || s.shown != 0 || len(s.buffer) != 0 {
		t.Errorf("expected clear and reset to empty the session")
	}
}

func TestSessionPrecision(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sai.cli")
	defer teardown()
	//
	s := newSession(2)
	out, _ := feed(s, "function void main() { print(1/3); }", "run")
	if out != "▶ 0.33\n" {
		t.Errorf("expected rounded value, got %q", out)
	}
	if lines := s.intp.Output().Lines(); !strings.HasPrefix(lines[0], "0.3333") {
		t.Errorf("expected output to keep exact value, have %q", lines[0])
	}
}

func TestSessionErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sai.cli")
	defer teardown()
	//
	s := newSession(-1)
	_, errout := feed(s, "function void main() { print(y); }", "run")
	if !strings.Contains(errout, "not declared") {
		t.Errorf("expected undeclared symbol error, got %q", errout)
	}
	s = newSession(-1)
	out, errout := feed(s, "function void main() { print(1); stop(); print(2); }", "run")
	if out != "▶ 1\n" || !strings.Contains(errout, "program stopped") {
		t.Errorf("expected run to stop after first print, got %q / %q", out, errout)
	}
	_, errout = feed(newSession(-1), "symbols")
	if errout == "" {
		t.Errorf("expected symbols to complain before first run")
	}
}

func TestSessionLoad(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sai.cli")
	defer teardown()
	//
	file := filepath.Join(t.TempDir(), "prog.sai")
	src := "var a = 1;\nfunction void main() {\n  a++;\n  print(a);\n}\n"
	if err := os.WriteFile(file, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
	s := newSession(-1)
	out, errout := feed(s, "load "+file, "run", "symbols")
	if errout != "> 5 lines loaded\n" {
		t.Fatalf("unexpected error output: %q", errout)
	}
	if len(s.buffer) != 5 {
		t.Errorf("expected 5 lines loaded, have %d", len(s.buffer))
	}
	if !strings.HasPrefix(out, "▶ 2\n") {
		t.Errorf("expected loaded program to print 2, got %q", out)
	}
	if !strings.Contains(out, "Symbols of #global") {
		t.Errorf("expected symbols table in output, got %q", out)
	}
	_, errout = feed(s, "load")
	if !strings.Contains(errout, "usage: load <file>") {
		t.Errorf("expected usage message, got %q", errout)
	}
	if len(s.buffer) != 5 {
		t.Errorf("expected malformed command not to reach the buffer, have %d lines", len(s.buffer))
	}
}

func TestSessionCommandsAreRegistered(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "sai.cli")
	defer teardown()
	//
	repl := newREPL(newSession(-1))
	for _, name := range []string{"help", "bye", "run", "list", "reset", "load", "output", "clear", "symbols"} {
		if repl.Command(name) == nil {
			t.Errorf("expected command %q", name)
		}
	}
	var stdout, stderr bytes.Buffer
	repl.Dispatch("help", &stdout, &stderr)
	if !strings.Contains(stderr.String(), "load <file>") || !strings.Contains(stderr.String(), "program buffer") {
		t.Errorf("expected help to list session commands, got %q", stderr.String())
	}
	if !repl.Dispatch("bye", &stdout, &stderr) {
		t.Errorf("expected bye to end the REPL")
	}
}
