package termui

// Utilities for interactive command line interfaces.

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/emirpasic/gods/maps/linkedhashmap"
	prtxt "github.com/jedib0t/go-pretty/v6/text"
	"github.com/npillmayer/sai"
	"golang.org/x/text/width"
)

var welcomeMessage = "Welcome to %s [V%s]\n"
var promptTemplate = "%s> " // filled in with the tool name via fmt.Sprintf
var stdprompt = prtxt.FgGreen.Sprint(promptTemplate)

// Command is an interactive command of a REPL. A command line starts with
// the command's name, followed by exactly one word per argument.
type Command struct {
	Name string
	Args []string // argument names, used for help output
	Help string   // one line of help text
	Run  func(args []string, stdout, stderr io.Writer)
	// Complete proposes arguments for a partial line. It is optional.
	Complete func(line string) []string
}

// Usage returns the command line synopsis of a command.
func (c *Command) Usage() string {
	u := c.Name
	for _, a := range c.Args {
		u += " <" + a + ">"
	}
	return u
}

// REPLCommandInterpreter receives every input line which is not a command
// of the REPL.
type REPLCommandInterpreter interface {
	InterpretCommand(line string, stdout, stderr io.Writer)
}

// BaseREPL is a read-eval-print loop with a set of commands. Lines not
// starting with a command are handed to the interpreter.
type BaseREPL struct {
	Interpreter REPLCommandInterpreter
	Helper      func(io.Writer) // additional help text, optional
	commands    *linkedhashmap.Map
	toolname    string
	version     string
}

// NewBaseREPL creates a REPL for an interpreter tool and a given version.
// Commands 'help' and 'bye' are always available.
func NewBaseREPL(toolname, version string, intp REPLCommandInterpreter, commands ...Command) *BaseREPL {
	repl := &BaseREPL{
		Interpreter: intp,
		commands:    linkedhashmap.New(),
		toolname:    toolname,
		version:     version,
	}
	repl.Add(Command{Name: "help", Help: "print this message", Run: repl.help})
	repl.Add(Command{Name: "bye", Help: "quit " + toolname})
	for _, c := range commands {
		repl.Add(c)
	}
	return repl
}

// Add registers a command, replacing a command of the same name.
func (repl *BaseREPL) Add(c Command) {
	repl.commands.Put(c.Name, &c)
}

// Command returns the command registered for name, or nil.
func (repl *BaseREPL) Command(name string) *Command {
	if c, ok := repl.commands.Get(name); ok {
		return c.(*Command)
	}
	return nil
}

// Dispatch executes an input line: either a command or, for any other
// line, the interpreter. It returns true if the REPL should terminate.
func (repl *BaseREPL) Dispatch(line string, stdout, stderr io.Writer) bool {
	line = NormalizeInput(line)
	words := strings.Fields(line)
	if len(words) == 0 {
		return false
	}
	c := repl.Command(words[0])
	switch {
	case c == nil:
		trace().Debugf("call interpreter on: '%s'", line)
		if repl.Interpreter != nil {
			repl.Interpreter.InterpretCommand(line, stdout, stderr)
		}
	case c.Name == "bye":
		io.WriteString(stderr, "> goodbye!\n")
		return true
	case len(words)-1 != len(c.Args):
		fmt.Fprintf(stderr, "> usage: %s\n", c.Usage())
	default:
		trace().P("cmd", c.Name).Debugf("executing command")
		c.Run(words[1:], stdout, stderr)
	}
	return false
}

func (repl *BaseREPL) help(args []string, stdout, stderr io.Writer) {
	fmt.Fprintf(stderr, welcomeMessage, repl.toolname, repl.version)
	io.WriteString(stderr, "\nThe following commands are available:\n\n")
	it := repl.commands.Iterator()
	for it.Next() {
		c := it.Value().(*Command)
		fmt.Fprintf(stderr, "  %-18s : %s\n", c.Usage(), c.Help)
	}
	if repl.Helper != nil {
		repl.Helper(stderr)
	}
}

// completer creates the completion tree for all commands.
func (repl *BaseREPL) completer() *readline.PrefixCompleter {
	var items []readline.PrefixCompleterInterface
	it := repl.commands.Iterator()
	for it.Next() {
		c := it.Value().(*Command)
		if c.Complete != nil {
			items = append(items, readline.PcItem(c.Name, readline.PcItemDynamic(c.Complete)))
		} else {
			items = append(items, readline.PcItem(c.Name))
		}
	}
	return readline.NewPrefixCompleter(items...)
}

// Prompt reads lines from the terminal and dispatches them, until 'bye'
// or end of input.
func (repl *BaseREPL) Prompt(exitOnBye bool) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:              fmt.Sprintf(stdprompt, repl.toolname),
		HistoryFile:         filepath.Join(os.TempDir(), repl.toolname+"-repl-history.tmp"),
		AutoComplete:        repl.completer(),
		InterruptPrompt:     "^C",
		EOFPrompt:           "bye",
		HistorySearchFold:   true,
		FuncFilterInputRune: filterReplInput,
	})
	if err != nil {
		trace().Errorf("cannot open terminal: %v", err)
		sai.Exit(2)
	}
	defer rl.Close()
	fmt.Fprintf(rl.Stderr(), welcomeMessage, repl.toolname, repl.version)
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}
		if repl.Dispatch(line, rl.Stdout(), rl.Stderr()) {
			break
		}
	}
	if exitOnBye {
		sai.Exit(0)
	}
}

// NormalizeInput trims an input line and folds full-width and half-width
// variants of characters to their canonical width, such that e.g. a
// full-width '（' is read as '('.
func NormalizeInput(line string) string {
	return strings.TrimSpace(width.Fold.String(strings.Trim(line, "\x00")))
}

// Input filter for REPL. Blocks ctrl-z.
func filterReplInput(r rune) (rune, bool) {
	if r == readline.CharCtrlZ {
		return r, false
	}
	return r, true
}
