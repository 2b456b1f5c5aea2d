// Copyright (c) 2026, The Corebind Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package binding implements a reactive data-binding expression engine
// for retained-mode UI toolkits. A binding path such as Foo.Bar[2].Baz
// is represented as an ordered chain of [Node]s owned by one
// [Expression]; the expression pushes a root source into the first
// node, each node resolves its value and feeds it to the next, and the
// leaf value, after conversion and formatting, is pushed to the single
// subscribed observer. Writes flow the opposite direction through
// [Expression.SetValue].
//
// Building node chains from a textual path grammar is the job of an
// external front end; this package only defines the runtime node graph
// and its evaluation semantics.
package binding
