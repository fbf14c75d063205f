// Package cli implements the sai command line interface.
//
// License
//
// Governed by a 3-Clause BSD license. License file may be found in the root
// folder of this module.
//
// Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
//
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/npillmayer/sai"
	"github.com/npillmayer/sai/evaluator"
	"github.com/npillmayer/sai/grammar"
	"github.com/npillmayer/schuko/tracing"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sai",
	Short: "An interpreter for the SAI scripting language",
	Long: `Welcome to SAI V0.1 (experimental)

SAI interprets programs consisting of global variables and functions,
starting with function 'main'.

SAI is able to run in interactive mode or execute one or more programs in
batch-mode. If run in interactive mode, it will prompt for program lines in
a terminal REPL and run them on request.

`,
	Args: cobra.NoArgs,
	Run:  runSaiREPL,
}

var runCmd = &cobra.Command{
	Use:   "run FILE...",
	Short: "Run programs in batch-mode",
	Args:  cobra.MinimumNArgs(1),
	Run:   runFiles,
}

var tokensCmd = &cobra.Command{
	Use:   "tokens FILE",
	Short: "Print the token stream of a program",
	Args:  cobra.ExactArgs(1),
	Run:   printTokens,
}

var dumpCmd = &cobra.Command{
	Use:   "dump FILE",
	Short: "Print the compiled node sequences and symbol tables of a program",
	Args:  cobra.ExactArgs(1),
	Run:   dumpProgram,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called exactly once by sai.main().
func Execute() {
	rootCmd.AddCommand(runCmd, tokensCmd, dumpCmd)
	if rootCmd.Execute() != nil {
		sai.Exit(2)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	// persistent flags which will be global for the application
	rootCmd.PersistentFlags().String("logfile", "stderr", "URL of log output location")
	rootCmd.PersistentFlags().Int("maxdepth", sai.DefaultMaxCallDepth, "Maximum depth of function calls, 0 for unlimited")
	rootCmd.PersistentFlags().Int("precision", sai.DefaultPrecision, "Decimal places of printed values, -1 for exact")
}

// --- Batch mode ------------------------------------------------------------

// runFiles runs every file as a program of its own. A program executing
// 'stop' halts the application with exit code 1, any other error with
// exit code 2.
func runFiles(cmd *cobra.Command, args []string) {
	prec := sai.ConfigInt(sai.KeyPrecision, sai.DefaultPrecision)
	for _, filename := range args {
		tracing.Infof("running %s", filename)
		src, err := os.ReadFile(filename)
		if err != nil {
			fail(err)
		}
		intp := evaluator.NewInterpreter(evaluator.WithSink(sai.WriterSink{W: os.Stdout, Precision: prec}))
		if err = intp.Start(string(src)); err != nil {
			if errors.Is(err, sai.ErrStop) {
				sai.Exit(1)
			}
			fail(fmt.Errorf("%s: %w", filename, err))
		}
	}
}

func printTokens(cmd *cobra.Command, args []string) {
	src, err := os.ReadFile(args[0])
	if err != nil {
		fail(err)
	}
	toks, err := grammar.Tokenize(string(src))
	if err != nil {
		fail(err)
	}
	show(os.Stdout, toks)
}

func dumpProgram(cmd *cobra.Command, args []string) {
	src, err := os.ReadFile(args[0])
	if err != nil {
		fail(err)
	}
	prog, err := grammar.Parse(string(src))
	if err != nil {
		fail(err)
	}
	show(os.Stdout, prog)
}

func show(w io.Writer, item interface{}) {
	if _, err := (Formatter{Precision: sai.ConfigInt(sai.KeyPrecision, sai.DefaultPrecision)}).Format(item, w); err != nil {
		tracer().Errorf("cannot display %T: %v", item, err)
	}
}

func fail(err error) {
	tracer().Errorf(err.Error())
	fmt.Fprintf(os.Stderr, "sai: %v\n", err)
	sai.Exit(2)
}

// --- Interactive mode ------------------------------------------------------

func runSaiREPL(cmd *cobra.Command, args []string) {
	tracing.Infof("sai interpreter called")
	s := newSession(sai.ConfigInt(sai.KeyPrecision, sai.DefaultPrecision))
	newREPL(s).Prompt(true)
}
