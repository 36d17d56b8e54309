// Copyright 2023 The Lox Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lox

import (
	"fmt"
	"log"
	"os"

	"go.loxlang.net/syntax"
)

// An Interpreter holds the state of a Lox execution: the global
// environment and the environment currently in effect. A single
// Interpreter may execute any number of programs in sequence; globals
// persist between them, which is what a REPL wants.
type Interpreter struct {
	// Print is the client-supplied implementation of the Lox
	// 'print' statement. If nil, fmt.Fprintln(os.Stdout, msg) is
	// used instead.
	Print func(interp *Interpreter, msg string)

	globals *Environment
	env     *Environment
}

// NewInterpreter returns an interpreter whose global environment holds
// the predeclared bindings of Universe.
func NewInterpreter() *Interpreter {
	globals := NewEnvironment(nil)
	for name, v := range Universe {
		globals.Define(name, v)
	}
	return &Interpreter{globals: globals, env: globals}
}

// Globals returns the interpreter's global environment.
func (interp *Interpreter) Globals() *Environment { return interp.globals }

// An EvalError is a Lox runtime error and the line it occurred on.
type EvalError struct {
	Msg  string
	Line int
}

func (e *EvalError) Error() string { return e.Msg }

func (interp *Interpreter) errorf(tok syntax.Token, format string, args ...interface{}) *EvalError {
	return &EvalError{Msg: fmt.Sprintf(format, args...), Line: tok.Line}
}

// returned carries the operand of a return statement up through
// statement execution to the nearest function-call boundary, where it
// is consumed. It travels the error path so that every intermediate
// block still restores its environment on the way out.
type returned struct {
	value Value
}

func (returned) Error() string { return "return" }

// Interpret executes a resolved program. The first runtime error
// aborts execution and is returned as an *EvalError.
func (interp *Interpreter) Interpret(stmts []syntax.Stmt) error {
	for _, s := range stmts {
		if err := interp.exec(s); err != nil {
			if ret, ok := err.(returned); ok {
				// unreachable under a correct resolver
				log.Fatalf("lox: return escaped to top level with %s", ret.value)
			}
			return err
		}
	}
	return nil
}

func (interp *Interpreter) exec(s syntax.Stmt) error {
	switch s := s.(type) {
	case *syntax.ExprStmt:
		_, err := interp.eval(s.X)
		return err

	case *syntax.PrintStmt:
		v, err := interp.eval(s.X)
		if err != nil {
			return err
		}
		interp.print(v.String())
		return nil

	case *syntax.AssertStmt:
		v, err := interp.eval(s.X)
		if err != nil {
			return err
		}
		if !v.Truth() {
			return interp.errorf(s.Keyword, "%s is not truthy", v.String())
		}
		return nil

	case *syntax.VarStmt:
		v := Value(Nil)
		if s.Init != nil {
			var err error
			v, err = interp.eval(s.Init)
			if err != nil {
				return err
			}
		}
		interp.env.Define(s.Name.Lexeme, v)
		return nil

	case *syntax.BlockStmt:
		return interp.execBlock(s.Stmts, NewEnvironment(interp.env))

	case *syntax.IfStmt:
		cond, err := interp.eval(s.Cond)
		if err != nil {
			return err
		}
		if cond.Truth() {
			return interp.exec(s.Then)
		}
		if s.Else != nil {
			return interp.exec(s.Else)
		}
		return nil

	case *syntax.WhileStmt:
		for {
			cond, err := interp.eval(s.Cond)
			if err != nil {
				return err
			}
			if !cond.Truth() {
				return nil
			}
			if err := interp.exec(s.Body); err != nil {
				return err
			}
		}

	case *syntax.FunStmt:
		fn := &Function{decl: s, closure: interp.env}
		interp.env.Define(s.Name.Lexeme, fn)
		return nil

	case *syntax.ReturnStmt:
		v := Value(Nil)
		if s.Result != nil {
			var err error
			v, err = interp.eval(s.Result)
			if err != nil {
				return err
			}
		}
		return returned{value: v}

	case *syntax.ClassStmt:
		return interp.execClass(s)
	}

	log.Fatalf("lox: exec: unexpected statement %T", s)
	panic("unreachable")
}

// execBlock runs stmts with env in effect, restoring the previous
// environment on every exit path, including return unwinds and
// runtime errors.
func (interp *Interpreter) execBlock(stmts []syntax.Stmt, env *Environment) error {
	prev := interp.env
	defer func() { interp.env = prev }()
	interp.env = env

	for _, s := range stmts {
		if err := interp.exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (interp *Interpreter) execClass(s *syntax.ClassStmt) error {
	var super *Class
	if s.Superclass != nil {
		v, err := interp.eval(s.Superclass)
		if err != nil {
			return err
		}
		sc, ok := v.(*Class)
		if !ok {
			return interp.errorf(s.Superclass.Name, "Superclass must be a class.")
		}
		super = sc
	}

	interp.env.Define(s.Name.Lexeme, Nil)

	// Methods close over an extra frame holding 'super' when the
	// class inherits, so that super dispatch can find the parent
	// class at a fixed depth.
	closure := interp.env
	if super != nil {
		closure = NewEnvironment(closure)
		closure.Define("super", super)
	}

	methods := make(map[string]*Function, len(s.Methods))
	for _, m := range s.Methods {
		methods[m.Name.Lexeme] = &Function{
			decl:    m,
			closure: closure,
			isInit:  m.Name.Lexeme == "init",
		}
	}

	cls := &Class{Name: s.Name.Lexeme, Super: super, methods: methods}
	return interp.env.Assign(s.Name, cls)
}

func (interp *Interpreter) eval(e syntax.Expr) (Value, error) {
	switch e := e.(type) {
	case *syntax.Literal:
		switch v := e.Value.(type) {
		case nil:
			return Nil, nil
		case bool:
			return Bool(v), nil
		case float64:
			return Number(v), nil
		case string:
			return String(v), nil
		}

	case *syntax.ParenExpr:
		return interp.eval(e.X)

	case *syntax.UnaryExpr:
		return interp.evalUnary(e)

	case *syntax.BinaryExpr:
		return interp.evalBinary(e)

	case *syntax.LogicalExpr:
		x, err := interp.eval(e.X)
		if err != nil {
			return nil, err
		}
		if e.Op.Kind == syntax.OR {
			if x.Truth() {
				return x, nil
			}
		} else if !x.Truth() {
			return x, nil
		}
		return interp.eval(e.Y)

	case *syntax.Ident:
		return interp.lookup(e.Name, e.Binding)

	case *syntax.AssignExpr:
		v, err := interp.eval(e.Value)
		if err != nil {
			return nil, err
		}
		if e.Binding != nil {
			interp.env.AssignAt(e.Binding.Depth, e.Name.Lexeme, v)
		} else if err := interp.globals.Assign(e.Name, v); err != nil {
			return nil, err
		}
		return v, nil

	case *syntax.CallExpr:
		return interp.evalCall(e)

	case *syntax.DotExpr:
		x, err := interp.eval(e.X)
		if err != nil {
			return nil, err
		}
		inst, ok := x.(*Instance)
		if !ok {
			return nil, interp.errorf(e.Name, "Only instances have properties.")
		}
		return inst.Get(e.Name)

	case *syntax.SetExpr:
		x, err := interp.eval(e.X)
		if err != nil {
			return nil, err
		}
		inst, ok := x.(*Instance)
		if !ok {
			return nil, interp.errorf(e.Name, "Only instances have fields.")
		}
		v, err := interp.eval(e.Value)
		if err != nil {
			return nil, err
		}
		inst.Set(e.Name, v)
		return v, nil

	case *syntax.ThisExpr:
		return interp.lookup(e.Keyword, e.Binding)

	case *syntax.SuperExpr:
		return interp.evalSuper(e)
	}

	log.Fatalf("lox: eval: unexpected expression %T", e)
	panic("unreachable")
}

// lookup reads a variable reference, using the resolver's binding when
// one was recorded and the global environment otherwise.
func (interp *Interpreter) lookup(name syntax.Token, b *syntax.Binding) (Value, error) {
	if b != nil {
		return interp.env.GetAt(b.Depth, name.Lexeme), nil
	}
	return interp.globals.Get(name)
}

func (interp *Interpreter) evalUnary(e *syntax.UnaryExpr) (Value, error) {
	x, err := interp.eval(e.X)
	if err != nil {
		return nil, err
	}
	switch e.Op.Kind {
	case syntax.BANG:
		return Bool(!x.Truth()), nil
	case syntax.MINUS:
		n, ok := x.(Number)
		if !ok {
			return nil, interp.errorf(e.Op, "Operand must be a number.")
		}
		return -n, nil
	}
	log.Fatalf("lox: eval: unexpected unary operator %s", e.Op.Kind)
	panic("unreachable")
}

func (interp *Interpreter) evalBinary(e *syntax.BinaryExpr) (Value, error) {
	x, err := interp.eval(e.X)
	if err != nil {
		return nil, err
	}
	y, err := interp.eval(e.Y)
	if err != nil {
		return nil, err
	}

	switch e.Op.Kind {
	case syntax.EQUAL_EQUAL:
		return Bool(Equal(x, y)), nil
	case syntax.BANG_EQUAL:
		return Bool(!Equal(x, y)), nil

	case syntax.PLUS:
		switch x := x.(type) {
		case Number:
			if y, ok := y.(Number); ok {
				return x + y, nil
			}
		case String:
			if y, ok := y.(String); ok {
				return x + y, nil
			}
		}
		return nil, interp.errorf(e.Op, "Operands must be two numbers or two strings.")
	}

	// The remaining operators work on numbers only.
	nx, ok := x.(Number)
	if !ok {
		return nil, interp.errorf(e.Op, "Operands must be numbers.")
	}
	ny, ok := y.(Number)
	if !ok {
		return nil, interp.errorf(e.Op, "Operands must be numbers.")
	}

	switch e.Op.Kind {
	case syntax.MINUS:
		return nx - ny, nil
	case syntax.STAR:
		return nx * ny, nil
	case syntax.SLASH:
		// division by zero follows IEEE 754
		return nx / ny, nil
	case syntax.GREATER:
		return Bool(nx > ny), nil
	case syntax.GREATER_EQUAL:
		return Bool(nx >= ny), nil
	case syntax.LESS:
		return Bool(nx < ny), nil
	case syntax.LESS_EQUAL:
		return Bool(nx <= ny), nil
	}
	log.Fatalf("lox: eval: unexpected binary operator %s", e.Op.Kind)
	panic("unreachable")
}

func (interp *Interpreter) evalCall(e *syntax.CallExpr) (Value, error) {
	callee, err := interp.eval(e.Fn)
	if err != nil {
		return nil, err
	}

	args := make([]Value, 0, len(e.Args))
	for _, arg := range e.Args {
		v, err := interp.eval(arg)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	fn, ok := callee.(Callable)
	if !ok {
		return nil, interp.errorf(e.Paren, "Can only call functions and classes.")
	}
	if len(args) != fn.Arity() {
		return nil, interp.errorf(e.Paren, "Expected %d arguments but got %d.", fn.Arity(), len(args))
	}
	return fn.Call(interp, args)
}

// evalSuper dispatches super.method: the surrounding 'super' frame
// holds the superclass, and 'this' lives one frame closer to the call.
func (interp *Interpreter) evalSuper(e *syntax.SuperExpr) (Value, error) {
	depth := e.Binding.Depth
	super := interp.env.GetAt(depth, "super").(*Class)
	this := interp.env.GetAt(depth-1, "this").(*Instance)

	m := super.Method(e.Method.Lexeme)
	if m == nil {
		return nil, interp.errorf(e.Method, "Undefined property '%s'.", e.Method.Lexeme)
	}
	return m.Bind(this), nil
}

func (interp *Interpreter) print(msg string) {
	if interp.Print != nil {
		interp.Print(interp, msg)
		return
	}
	fmt.Fprintln(os.Stdout, msg)
}
