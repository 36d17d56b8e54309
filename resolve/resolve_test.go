// Copyright 2023 The Lox Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolve_test

import (
	"testing"

	"go.loxlang.net/internal/chunkedfile"
	"go.loxlang.net/resolve"
	"go.loxlang.net/syntax"
)

func TestResolveErrors(t *testing.T) {
	filename := "testdata/resolve.lox"
	for _, chunk := range chunkedfile.Read(filename, t) {
		f, err := syntax.Parse(filename, chunk.Source)
		if err != nil {
			t.Error(err)
			continue
		}
		if err := resolve.File(f); err != nil {
			for _, e := range err.(resolve.ErrorList) {
				chunk.GotError(e.Tok.Line, e.Msg)
			}
		}
		chunk.Done()
	}
}

const depthSrc = `var g = 1;
{
  var a = 2;
  {
    var b = 3;
    fun f(p) {
      print p;
      print b;
      print a;
      print g;
    }
  }
}
`

// parseDepths resolves depthSrc and returns the binding of each print
// operand in f's body, encoded as its depth, or -1 for global.
func parseDepths(t *testing.T) []int {
	t.Helper()
	f, err := syntax.Parse("depths.lox", depthSrc)
	if err != nil {
		t.Fatal(err)
	}
	if err := resolve.File(f); err != nil {
		t.Fatal(err)
	}

	outer := f.Stmts[1].(*syntax.BlockStmt)
	inner := outer.Stmts[1].(*syntax.BlockStmt)
	fn := inner.Stmts[1].(*syntax.FunStmt)

	var depths []int
	for _, s := range fn.Body {
		id := s.(*syntax.PrintStmt).X.(*syntax.Ident)
		if id.Binding == nil {
			depths = append(depths, -1)
		} else {
			depths = append(depths, id.Binding.Depth)
		}
	}
	return depths
}

func TestBindingDepths(t *testing.T) {
	got := parseDepths(t)
	want := []int{0, 1, 2, -1} // p, b, a, g(global)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("reference %d resolved to depth %d, want %d", i, got[i], want[i])
		}
	}
}

// Resolving the same tree twice computes identical bindings.
func TestResolveIdempotent(t *testing.T) {
	f, err := syntax.Parse("depths.lox", depthSrc)
	if err != nil {
		t.Fatal(err)
	}
	if err := resolve.File(f); err != nil {
		t.Fatal(err)
	}

	outer := f.Stmts[1].(*syntax.BlockStmt)
	inner := outer.Stmts[1].(*syntax.BlockStmt)
	fn := inner.Stmts[1].(*syntax.FunStmt)

	first := make([]*syntax.Binding, len(fn.Body))
	for i, s := range fn.Body {
		first[i] = s.(*syntax.PrintStmt).X.(*syntax.Ident).Binding
	}

	if err := resolve.File(f); err != nil {
		t.Fatal(err)
	}
	for i, s := range fn.Body {
		b := s.(*syntax.PrintStmt).X.(*syntax.Ident).Binding
		switch {
		case first[i] == nil && b == nil:
		case first[i] == nil || b == nil:
			t.Errorf("reference %d: binding became %v", i, b)
		case first[i].Depth != b.Depth:
			t.Errorf("reference %d: depth %d became %d", i, first[i].Depth, b.Depth)
		}
	}
}

// Shadowing binds the innermost declaration.
func TestShadowing(t *testing.T) {
	const src = `var x = 1;
{
  var x = 2;
  print x;
}
print x;
`
	f, err := syntax.Parse("shadow.lox", src)
	if err != nil {
		t.Fatal(err)
	}
	if err := resolve.File(f); err != nil {
		t.Fatal(err)
	}

	block := f.Stmts[1].(*syntax.BlockStmt)
	innerRef := block.Stmts[1].(*syntax.PrintStmt).X.(*syntax.Ident)
	if innerRef.Binding == nil || innerRef.Binding.Depth != 0 {
		t.Errorf("inner x binding = %+v, want depth 0", innerRef.Binding)
	}
	outerRef := f.Stmts[2].(*syntax.PrintStmt).X.(*syntax.Ident)
	if outerRef.Binding != nil {
		t.Errorf("outer x binding = %+v, want global", outerRef.Binding)
	}
}
