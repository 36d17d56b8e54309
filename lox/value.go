// Copyright 2023 The Lox Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lox provides the Lox runtime: values, environments, and a
// tree-walking interpreter over the go.loxlang.net/syntax tree.
package lox // import "go.loxlang.net/lox"

import (
	"fmt"
	"strconv"

	"go.loxlang.net/syntax"
)

// Value is a value in the Lox interpreter.
type Value interface {
	// String returns the value as the 'print' statement shows it.
	String() string
	// Type returns a short string describing the value's type.
	Type() string
	// Truth returns the truth value: only nil and false are falsy.
	Truth() bool
}

// A Callable is a value that may be invoked with a fixed number of
// arguments: a function, a class, or a builtin.
type Callable interface {
	Value
	Arity() int
	Call(interp *Interpreter, args []Value) (Value, error)
}

// NilType is the type of Nil. Its only legal value is Nil.
type NilType byte

// Nil is the Lox nil value.
const Nil = NilType(0)

func (NilType) String() string { return "nil" }
func (NilType) Type() string   { return "nil" }
func (NilType) Truth() bool    { return false }

// Bool is the type of Lox booleans.
type Bool bool

const (
	False Bool = false
	True  Bool = true
)

func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}
func (b Bool) Type() string { return "bool" }
func (b Bool) Truth() bool  { return bool(b) }

// Number is the type of Lox numbers: IEEE 754 double precision.
type Number float64

// String formats the number the way 'print' shows it: integral values
// have no fractional part.
func (n Number) String() string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}
func (n Number) Type() string { return "number" }
func (n Number) Truth() bool  { return true }

// String is the type of Lox strings.
type String string

func (s String) String() string { return string(s) }
func (s String) Type() string   { return "string" }
func (s String) Truth() bool    { return true }

// A Function is a user-defined Lox function or method: a declaration
// paired with the environment captured at its definition.
type Function struct {
	decl    *syntax.FunStmt
	closure *Environment
	isInit  bool // the function is a class initializer
}

// Name returns the name of the function as declared.
func (fn *Function) Name() string   { return fn.decl.Name.Lexeme }
func (fn *Function) String() string { return "<fn " + fn.Name() + ">" }
func (fn *Function) Type() string   { return "function" }
func (fn *Function) Truth() bool    { return true }
func (fn *Function) Arity() int     { return len(fn.decl.Params) }

// Call executes the function body in a fresh environment parented to
// the captured closure, with the parameters bound to args. A return
// statement unwinds here; an initializer always yields 'this'.
func (fn *Function) Call(interp *Interpreter, args []Value) (Value, error) {
	env := NewEnvironment(fn.closure)
	for i, param := range fn.decl.Params {
		env.Define(param.Lexeme, args[i])
	}

	if err := interp.execBlock(fn.decl.Body, env); err != nil {
		ret, ok := err.(returned)
		if !ok {
			return nil, err
		}
		if fn.isInit {
			return fn.closure.GetAt(0, "this"), nil
		}
		return ret.value, nil
	}
	if fn.isInit {
		return fn.closure.GetAt(0, "this"), nil
	}
	return Nil, nil
}

// Bind returns a copy of the function whose closure is extended with a
// frame defining 'this' as inst. The rest of the closure chain is
// shared with the receiver.
func (fn *Function) Bind(inst *Instance) *Function {
	env := NewEnvironment(fn.closure)
	env.Define("this", inst)
	return &Function{decl: fn.decl, closure: env, isInit: fn.isInit}
}

// A Class is a Lox class. Calling it constructs an instance.
type Class struct {
	Name    string
	Super   *Class
	methods map[string]*Function
}

func (c *Class) String() string { return c.Name }
func (c *Class) Type() string   { return "class" }
func (c *Class) Truth() bool    { return true }

// Method looks up a method by name, walking the superclass chain.
// It returns nil if no class in the chain defines the method.
func (c *Class) Method(name string) *Function {
	for ; c != nil; c = c.Super {
		if m, ok := c.methods[name]; ok {
			return m
		}
	}
	return nil
}

// Arity returns the arity of the class's initializer, or zero if the
// class has none.
func (c *Class) Arity() int {
	if init := c.Method("init"); init != nil {
		return init.Arity()
	}
	return 0
}

// Call constructs a new instance of the class, running the 'init'
// method, if any, bound to the new instance.
func (c *Class) Call(interp *Interpreter, args []Value) (Value, error) {
	inst := &Instance{class: c, fields: make(map[string]Value)}
	if init := c.Method("init"); init != nil {
		if _, err := init.Bind(inst).Call(interp, args); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

// An Instance is an instance of a Lox class: a class pointer plus a
// mutable set of fields.
type Instance struct {
	class  *Class
	fields map[string]Value
}

func (inst *Instance) String() string { return inst.class.Name + " instance" }
func (inst *Instance) Type() string   { return "instance" }
func (inst *Instance) Truth() bool    { return true }

// Class returns the class of the instance.
func (inst *Instance) Class() *Class { return inst.class }

// Get reads a property: a field if the instance has one by that name,
// otherwise a method of its class bound to the instance.
func (inst *Instance) Get(name syntax.Token) (Value, error) {
	if v, ok := inst.fields[name.Lexeme]; ok {
		return v, nil
	}
	if m := inst.class.Method(name.Lexeme); m != nil {
		return m.Bind(inst), nil
	}
	return nil, &EvalError{
		Msg:  fmt.Sprintf("Undefined property '%s'.", name.Lexeme),
		Line: name.Line,
	}
}

// Set writes a field, creating it if absent.
func (inst *Instance) Set(name syntax.Token, v Value) {
	inst.fields[name.Lexeme] = v
}

// A Builtin is a function implemented in Go, such as clock.
type Builtin struct {
	name  string
	arity int
	fn    func(interp *Interpreter, args []Value) (Value, error)
}

// NewBuiltin returns a builtin function with the given name and arity.
func NewBuiltin(name string, arity int, fn func(interp *Interpreter, args []Value) (Value, error)) *Builtin {
	return &Builtin{name: name, arity: arity, fn: fn}
}

// Name returns the name of the builtin.
func (b *Builtin) Name() string   { return b.name }
func (b *Builtin) String() string { return "<native fn>" }
func (b *Builtin) Type() string   { return "builtin" }
func (b *Builtin) Truth() bool    { return true }
func (b *Builtin) Arity() int     { return b.arity }

func (b *Builtin) Call(interp *Interpreter, args []Value) (Value, error) {
	return b.fn(interp, args)
}

// Equal reports whether two Lox values are equal. Nil equals only nil,
// values of different types are never equal, and numbers, strings, and
// booleans compare structurally. Functions, classes, and instances
// compare by identity.
func Equal(x, y Value) bool {
	switch x := x.(type) {
	case NilType:
		_, ok := y.(NilType)
		return ok
	case Bool:
		y, ok := y.(Bool)
		return ok && x == y
	case Number:
		y, ok := y.(Number)
		return ok && x == y
	case String:
		y, ok := y.(String)
		return ok && x == y
	default:
		return x == y
	}
}
