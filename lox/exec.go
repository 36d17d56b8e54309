// Copyright 2023 The Lox Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lox

import (
	"go.loxlang.net/resolve"
	"go.loxlang.net/syntax"
)

// ExecFile parses, resolves, and executes a Lox program.
//
// The path and src parameters are as for syntax.Parse. Errors found
// before evaluation suppress it: the returned error is a
// syntax.ErrorList or resolve.ErrorList holding every diagnostic from
// the failing phase. A runtime failure is returned as an *EvalError.
func ExecFile(interp *Interpreter, path string, src interface{}) error {
	f, err := syntax.Parse(path, src)
	if err != nil {
		return err
	}
	if err := resolve.File(f); err != nil {
		return err
	}
	return interp.Interpret(f.Stmts)
}
