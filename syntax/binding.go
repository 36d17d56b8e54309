// Copyright 2023 The Lox Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

// This file defines resolver data types referenced by the syntax tree.

// A Binding records where a variable reference finds its storage at run
// time: the frame Depth environment hops out from the frame in effect
// at the reference. The resolver computes a Binding for every local
// reference; a reference whose Binding is nil reads and writes the
// global environment.
type Binding struct {
	Depth int
}
