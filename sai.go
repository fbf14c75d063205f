// Package sai is a small scripting language with a recursive-descent
// front end and a tree-walking execution engine.
//
// Source text is tokenized by package grammar, lowered into flat node
// sequences (package program) with symbol and subroutine tables (package
// sframe), and executed by package vm. Package evaluator ties these steps
// together.
//
// License
//
// Governed by a 3-Clause BSD license. License file may be found in the root
// folder of this module.
//
// Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
//
package sai

import (
	"io"
	"os"

	"github.com/knadh/koanf"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'sai'.
func tracer() tracing.Trace {
	return tracing.Select("sai")
}

// Configuration holds global configuration values. We use koanf.
var Configuration *koanf.Koanf

// Tracefile is the file we write our log output, if not nil.
var Tracefile io.WriteCloser

// Configuration keys used by the engine and the command line front end.
const (
	KeyMaxCallDepth = "vm.maxdepth"
	KeyPrecision    = "output.precision"
	KeyLogfile      = "logfile"
)

// Defaults for configuration values not set by the user.
const (
	DefaultMaxCallDepth = 10000
	DefaultPrecision    = -1
)

// ConfigInt returns an integer configuration value, or dflt if either no
// configuration is loaded or the key is not set.
func ConfigInt(key string, dflt int) int {
	if Configuration == nil || !Configuration.Exists(key) {
		return dflt
	}
	return Configuration.Int(key)
}

// Exit exits the application. It gracefully shuts down all resources.
func Exit(errcode int) {
	if Tracefile != nil {
		Tracefile.Close()
	}
	os.Exit(errcode)
}
