// Copyright 2023 The Lox Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lox

import "time"

// Universe defines the set of global bindings predeclared in every
// Lox program.
var Universe = map[string]Value{
	"clock": NewBuiltin("clock", 0, clock),
}

// clock returns the wall-clock time in seconds.
func clock(interp *Interpreter, args []Value) (Value, error) {
	return Number(float64(time.Now().UnixNano()) / 1e9), nil
}
