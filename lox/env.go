// Copyright 2023 The Lox Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lox

import (
	"fmt"
	"log"

	"go.loxlang.net/syntax"
)

// An Environment is one frame of name→value bindings plus a link to
// the lexically enclosing frame. Frames form a chain toward the global
// environment, whose parent is nil. A frame may be retained by any
// number of closures and lives as long as its last retainer.
type Environment struct {
	parent *Environment
	values map[string]Value
}

// NewEnvironment returns an empty environment enclosed by parent,
// which may be nil for the global environment.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{parent: parent, values: make(map[string]Value)}
}

// Define creates or overwrites the binding for name in this frame.
func (env *Environment) Define(name string, v Value) {
	env.values[name] = v
}

// Get reads the binding for name, searching outward through enclosing
// frames. It is used only for references the resolver left unbound.
func (env *Environment) Get(name syntax.Token) (Value, error) {
	for e := env; e != nil; e = e.parent {
		if v, ok := e.values[name.Lexeme]; ok {
			return v, nil
		}
	}
	return nil, &EvalError{
		Msg:  fmt.Sprintf("Undefined variable '%s'.", name.Lexeme),
		Line: name.Line,
	}
}

// Assign mutates the nearest enclosing binding for name. Assigning a
// name with no binding anywhere is an error.
func (env *Environment) Assign(name syntax.Token, v Value) error {
	for e := env; e != nil; e = e.parent {
		if _, ok := e.values[name.Lexeme]; ok {
			e.values[name.Lexeme] = v
			return nil
		}
	}
	return &EvalError{
		Msg:  fmt.Sprintf("Undefined variable '%s'.", name.Lexeme),
		Line: name.Line,
	}
}

// GetAt reads name from the frame exactly depth hops out. The resolver
// guarantees the binding exists there; a miss is an interpreter bug,
// not a user error.
func (env *Environment) GetAt(depth int, name string) Value {
	e := env.ancestor(depth)
	v, ok := e.values[name]
	if !ok {
		log.Fatalf("lox: no binding for %q at depth %d", name, depth)
	}
	return v
}

// AssignAt writes name in the frame exactly depth hops out.
func (env *Environment) AssignAt(depth int, name string, v Value) {
	env.ancestor(depth).values[name] = v
}

func (env *Environment) ancestor(depth int) *Environment {
	e := env
	for i := 0; i < depth; i++ {
		e = e.parent
	}
	return e
}
