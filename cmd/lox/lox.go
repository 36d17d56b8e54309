// Copyright 2023 The Lox Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The lox command interprets a Lox file.
// With no arguments, it starts a read-eval-print loop (REPL) when
// standard input is a terminal, and otherwise runs standard input as
// a script.
//
// Exit codes follow the BSD sysexits convention: 64 for bad usage,
// 65 for programs that fail to scan, parse, or resolve, 70 for
// runtime errors, and 74 for I/O failures.
package main // import "go.loxlang.net/cmd/lox"

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/alecthomas/repr"
	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"
	"golang.org/x/term"

	"go.loxlang.net/lox"
	"go.loxlang.net/repl"
	"go.loxlang.net/syntax"
)

func main() {
	log.SetPrefix("lox: ")
	log.SetFlags(0)

	app := &cli.App{
		Name:            "lox",
		Usage:           "an interpreter for the Lox programming language",
		UsageText:       "lox [script]",
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "c",
				Usage: "execute program `prog`",
			},
			&cli.BoolFlag{
				Name:  "ast",
				Usage: "dump the parse tree instead of executing",
			},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	if c.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "Usage: lox [script]")
		os.Exit(64)
	}

	var (
		path string
		src  interface{}
	)
	switch {
	case c.String("c") != "":
		path, src = "<cmdline>", c.String("c")

	case c.NArg() == 1:
		path = c.Args().First()
		data, err := os.ReadFile(path)
		if err != nil {
			tracerr.PrintSourceColor(tracerr.Wrap(err))
			os.Exit(74)
		}
		src = data

	case !term.IsTerminal(int(os.Stdin.Fd())):
		// piped input: run stdin as a script
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			tracerr.PrintSourceColor(tracerr.Wrap(err))
			os.Exit(74)
		}
		path, src = "<stdin>", data

	default:
		fmt.Println("Welcome to Lox (go.loxlang.net)")
		repl.REPL(lox.NewInterpreter())
		return nil
	}

	if c.Bool("ast") {
		f, err := syntax.Parse(path, src)
		if err != nil {
			repl.PrintError(err)
			os.Exit(65)
		}
		repr.Println(f.Stmts)
		return nil
	}

	os.Exit(runProgram(path, src))
	return nil
}

// runProgram executes one program and returns the process exit code:
// 65 if it failed to scan, parse, or resolve, 70 if it failed at run
// time, and 0 on success.
func runProgram(path string, src interface{}) int {
	err := lox.ExecFile(lox.NewInterpreter(), path, src)
	switch err.(type) {
	case nil:
		return 0
	case *lox.EvalError:
		repl.PrintError(err)
		return 70
	default:
		repl.PrintError(err)
		return 65
	}
}
