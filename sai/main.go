// Command sai runs programs of the SAI scripting language, in batch mode
// or in an interactive REPL.
//
// License
//
// Governed by a 3-Clause BSD license. License file may be found in the root
// folder of this module.
//
// Copyright © 2021 Norbert Pillmayer <norbert@pillmayer.com>
//
package main

import (
	"github.com/npillmayer/sai/sai/cli"
)

func main() {
	cli.Execute()
}
