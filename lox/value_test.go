// Copyright 2023 The Lox Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lox_test

import (
	"testing"

	"go.loxlang.net/lox"
)

func TestStringify(t *testing.T) {
	for _, test := range []struct {
		v    lox.Value
		want string
	}{
		{lox.Nil, "nil"},
		{lox.True, "true"},
		{lox.False, "false"},
		{lox.Number(7), "7"},
		{lox.Number(2.5), "2.5"},
		{lox.Number(-0.125), "-0.125"},
		{lox.Number(1e6), "1000000"},
		{lox.String(""), ""},
		{lox.String("plain, no quotes"), "plain, no quotes"},
		{lox.Universe["clock"], "<native fn>"},
	} {
		if got := test.v.String(); got != test.want {
			t.Errorf("String(%#v) = %q, want %q", test.v, got, test.want)
		}
	}
}

func TestTruth(t *testing.T) {
	falsy := []lox.Value{lox.Nil, lox.False}
	truthy := []lox.Value{
		lox.True,
		lox.Number(0),
		lox.Number(1),
		lox.String(""),
		lox.String("x"),
		lox.Universe["clock"],
	}
	for _, v := range falsy {
		if v.Truth() {
			t.Errorf("%s is truthy, want falsy", v)
		}
	}
	for _, v := range truthy {
		if !v.Truth() {
			t.Errorf("%s is falsy, want truthy", v)
		}
	}
}

func TestEqual(t *testing.T) {
	clock := lox.Universe["clock"]
	for _, test := range []struct {
		x, y lox.Value
		want bool
	}{
		{lox.Nil, lox.Nil, true},
		{lox.Nil, lox.False, false},
		{lox.Nil, lox.Number(0), false},
		{lox.True, lox.True, true},
		{lox.True, lox.False, false},
		{lox.Number(1), lox.Number(1), true},
		{lox.Number(1), lox.Number(2), false},
		{lox.Number(1), lox.String("1"), false},
		{lox.String("a"), lox.String("a"), true},
		{lox.String("a"), lox.String("b"), false},
		{lox.String(""), lox.False, false},
		{clock, clock, true},
		{clock, lox.Nil, false},
	} {
		if got := lox.Equal(test.x, test.y); got != test.want {
			t.Errorf("Equal(%s, %s) = %v, want %v", test.x, test.y, got, test.want)
		}
		// equality is symmetric
		if got := lox.Equal(test.y, test.x); got != test.want {
			t.Errorf("Equal(%s, %s) = %v, want %v", test.y, test.x, got, test.want)
		}
	}
}

func TestClockReturnsNumber(t *testing.T) {
	clock := lox.Universe["clock"].(lox.Callable)
	if clock.Arity() != 0 {
		t.Errorf("clock arity = %d, want 0", clock.Arity())
	}
	v, err := clock.Call(lox.NewInterpreter(), nil)
	if err != nil {
		t.Fatal(err)
	}
	n, ok := v.(lox.Number)
	if !ok {
		t.Fatalf("clock returned %T, want Number", v)
	}
	if n <= 0 {
		t.Errorf("clock() = %v, want a positive timestamp", n)
	}
}
