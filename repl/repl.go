// Copyright 2023 The Lox Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package repl provides a read/eval/print loop for Lox.
//
// It supports readline-style command editing. Each line is scanned,
// parsed, resolved, and executed as a complete program against a
// shared interpreter, so globals persist from line to line. Errors
// are printed and the loop continues; the error state does not carry
// over to the next line.
package repl // import "go.loxlang.net/repl"

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"go.loxlang.net/lox"
	"go.loxlang.net/resolve"
	"go.loxlang.net/syntax"
)

// REPL executes a read, eval, print loop until end of input (Ctrl-D).
func REPL(interp *lox.Interpreter) {
	rl, err := readline.New("> ")
	if err != nil {
		PrintError(err)
		return
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		switch err {
		case nil:
		case readline.ErrInterrupt:
			continue
		case io.EOF:
			fmt.Println()
			return
		default:
			PrintError(err)
			return
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := lox.ExecFile(interp, "<stdin>", line); err != nil {
			PrintError(err)
		}
	}
}

// PrintError prints err to stderr in the form the lox command uses:
// every diagnostic of a scan/parse or resolve failure on its own line,
// and a runtime error as its message followed by the offending line.
func PrintError(err error) {
	switch err := err.(type) {
	case syntax.ErrorList:
		for _, e := range err {
			fmt.Fprintln(os.Stderr, e.Error())
		}
	case resolve.ErrorList:
		for _, e := range err {
			fmt.Fprintln(os.Stderr, e.Error())
		}
	case *lox.EvalError:
		fmt.Fprintf(os.Stderr, "%s\n[line %d]\n", err.Msg, err.Line)
	default:
		fmt.Fprintln(os.Stderr, err)
	}
}
