// Copyright (c) 2026, The Corebind Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package binding

import (
	"github.com/corebind/corebind/base/reflectx"
	"github.com/corebind/corebind/events"
)

// MethodNode calls a named method of its source with an argument list
// fixed at construction time. It is read-only: methods cannot be
// written through.
type MethodNode struct {
	NodeBase
	name string
	acc  reflectx.Accessor
}

// NewMethodNode returns a node calling the named method with the given
// arguments, using the given resolution strategy, or
// [reflectx.DefaultResolver] if none.
func NewMethodNode(name string, args []any, resolver ...reflectx.Resolver) *MethodNode {
	res := reflectx.DefaultResolver
	if len(resolver) > 0 {
		res = resolver[0]
	}
	mn := &MethodNode{name: name, acc: res.Method(name, args)}
	mn.init(mn)
	return mn
}

func (mn *MethodNode) OnSourceChanged(source any) {
	if n, ok := source.(events.Notifier); ok {
		n.AddListener(mn)
	}
	mn.compute(source)
}

func (mn *MethodNode) Unsubscribe(source any) {
	if n, ok := source.(events.Notifier); ok {
		n.RemoveListener(mn)
	}
}

// Changed implements [events.Listener]: any change on the source may
// change the method's result, so every notification recomputes.
func (mn *MethodNode) Changed(name string) {
	if src, ok := mn.Source(); ok && src != nil {
		mn.compute(src)
	}
}

func (mn *MethodNode) compute(source any) {
	v, err := mn.acc.Get(source)
	if err != nil {
		mn.Error(err)
		return
	}
	mn.SetValue(v)
}

func (mn *MethodNode) String() string { return "." + mn.name + "()" }
