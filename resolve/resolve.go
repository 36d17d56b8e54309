// Copyright 2023 The Lox Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resolve performs Lox's static name-resolution pass.
//
// The resolver walks the syntax tree once, tracking the stack of
// lexical scopes, and computes for every variable reference the number
// of environment hops between the reference and its declaration. The
// result is written into the tree itself, as the Binding field of
// Ident, AssignExpr, ThisExpr, and SuperExpr nodes; references that
// resolve to no enclosing scope are left unbound and fall through to
// the global environment at run time.
//
// The same pass diagnoses scope misuse: reading a local in its own
// initializer, duplicate declarations, 'return' outside a function,
// returning a value from an initializer, and 'this' or 'super' where
// they have no meaning.
package resolve // import "go.loxlang.net/resolve"

import (
	"fmt"

	"go.loxlang.net/syntax"
)

// An Error describes a failure to resolve a name.
type Error struct {
	Tok syntax.Token
	Msg string
}

func (e Error) Error() string {
	where := " at end"
	if e.Tok.Kind != syntax.EOF {
		where = fmt.Sprintf(" at '%s'", e.Tok.Lexeme)
	}
	return fmt.Sprintf("[line %d] Error%s: %s", e.Tok.Line, where, e.Msg)
}

// An ErrorList is a non-empty list of errors.
type ErrorList []Error // len > 0

func (e ErrorList) Error() string { return e[0].Error() }

type funcKind uint8

const (
	noFunc funcKind = iota
	inFunction
	inMethod
	inInitializer
)

type classKind uint8

const (
	noClass classKind = iota
	inClass
	inSubclass
)

// File resolves the variable references of a parsed program, mutating
// the Binding slots of its tree. If resolution reports errors the
// program must not be executed; File returns them as an ErrorList.
//
// Resolving the same tree again recomputes identical bindings.
func File(f *syntax.File) error {
	r := &resolver{}
	r.stmts(f.Stmts)
	if len(r.errors) > 0 {
		return r.errors
	}
	return nil
}

type resolver struct {
	// scopes is the stack of nested local scopes, innermost last.
	// The global scope is not represented. A name maps to false
	// between its declaration and the end of its initializer.
	scopes []map[string]bool

	fn     funcKind
	cls    classKind
	errors ErrorList
}

func (r *resolver) stmts(stmts []syntax.Stmt) {
	for _, s := range stmts {
		r.stmt(s)
	}
}

func (r *resolver) stmt(s syntax.Stmt) {
	switch s := s.(type) {
	case *syntax.ExprStmt:
		r.expr(s.X)

	case *syntax.PrintStmt:
		r.expr(s.X)

	case *syntax.AssertStmt:
		r.expr(s.X)

	case *syntax.VarStmt:
		r.declare(s.Name)
		if s.Init != nil {
			r.expr(s.Init)
		}
		r.define(s.Name.Lexeme)

	case *syntax.BlockStmt:
		r.beginScope()
		r.stmts(s.Stmts)
		r.endScope()

	case *syntax.IfStmt:
		r.expr(s.Cond)
		r.stmt(s.Then)
		if s.Else != nil {
			r.stmt(s.Else)
		}

	case *syntax.WhileStmt:
		r.expr(s.Cond)
		r.stmt(s.Body)

	case *syntax.FunStmt:
		r.declare(s.Name)
		r.define(s.Name.Lexeme)
		r.function(s, inFunction)

	case *syntax.ReturnStmt:
		if r.fn == noFunc {
			r.errorf(s.Keyword, "Can't return from top-level code.")
		}
		if s.Result != nil {
			if r.fn == inInitializer {
				r.errorf(s.Keyword, "Can't return a value from an initializer.")
			}
			r.expr(s.Result)
		}

	case *syntax.ClassStmt:
		r.class(s)

	default:
		panic(fmt.Sprintf("resolve: unexpected statement %T", s))
	}
}

func (r *resolver) class(s *syntax.ClassStmt) {
	enclosing := r.cls
	r.cls = inClass
	defer func() { r.cls = enclosing }()

	r.declare(s.Name)
	r.define(s.Name.Lexeme)

	if s.Superclass != nil {
		if s.Superclass.Name.Lexeme == s.Name.Lexeme {
			r.errorf(s.Superclass.Name, "A class can't inherit from itself.")
		}
		r.cls = inSubclass
		r.expr(s.Superclass)

		r.beginScope()
		r.top()["super"] = true
	}

	r.beginScope()
	r.top()["this"] = true

	for _, m := range s.Methods {
		kind := inMethod
		if m.Name.Lexeme == "init" {
			kind = inInitializer
		}
		r.function(m, kind)
	}

	r.endScope()
	if s.Superclass != nil {
		r.endScope()
	}
}

func (r *resolver) function(fn *syntax.FunStmt, kind funcKind) {
	enclosing := r.fn
	r.fn = kind
	defer func() { r.fn = enclosing }()

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param.Lexeme)
	}
	r.stmts(fn.Body)
	r.endScope()
}

func (r *resolver) expr(e syntax.Expr) {
	switch e := e.(type) {
	case *syntax.Literal:
		// nothing to do

	case *syntax.ParenExpr:
		r.expr(e.X)

	case *syntax.UnaryExpr:
		r.expr(e.X)

	case *syntax.BinaryExpr:
		r.expr(e.X)
		r.expr(e.Y)

	case *syntax.LogicalExpr:
		r.expr(e.X)
		r.expr(e.Y)

	case *syntax.Ident:
		if len(r.scopes) > 0 {
			if defined, declared := r.top()[e.Name.Lexeme]; declared && !defined {
				r.errorf(e.Name, "Can't read local variable in its own initializer.")
			}
		}
		e.Binding = r.local(e.Name.Lexeme)

	case *syntax.AssignExpr:
		r.expr(e.Value)
		e.Binding = r.local(e.Name.Lexeme)

	case *syntax.CallExpr:
		r.expr(e.Fn)
		for _, arg := range e.Args {
			r.expr(arg)
		}

	case *syntax.DotExpr:
		r.expr(e.X)

	case *syntax.SetExpr:
		r.expr(e.X)
		r.expr(e.Value)

	case *syntax.ThisExpr:
		if r.cls == noClass {
			r.errorf(e.Keyword, "Can't use 'this' outside of a class.")
			return
		}
		e.Binding = r.local("this")

	case *syntax.SuperExpr:
		switch r.cls {
		case noClass:
			r.errorf(e.Keyword, "Can't use 'super' outside of a class.")
			return
		case inClass:
			r.errorf(e.Keyword, "Can't use 'super' in a class with no superclass.")
			return
		}
		e.Binding = r.local("super")

	default:
		panic(fmt.Sprintf("resolve: unexpected expression %T", e))
	}
}

func (r *resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *resolver) top() map[string]bool { return r.scopes[len(r.scopes)-1] }

// declare records name in the innermost scope, marked not-yet-defined.
// Declarations at global scope are not tracked and may repeat.
func (r *resolver) declare(name syntax.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.top()
	if _, ok := scope[name.Lexeme]; ok {
		r.errorf(name, "Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = false
}

func (r *resolver) define(name string) {
	if len(r.scopes) == 0 {
		return
	}
	r.top()[name] = true
}

// local returns the binding for name: the hop count to the innermost
// enclosing scope that declares it, or nil if no scope does.
func (r *resolver) local(name string) *syntax.Binding {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			return &syntax.Binding{Depth: len(r.scopes) - 1 - i}
		}
	}
	return nil
}

func (r *resolver) errorf(tok syntax.Token, format string, args ...interface{}) {
	r.errors = append(r.errors, Error{Tok: tok, Msg: fmt.Sprintf(format, args...)})
}
