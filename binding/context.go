// Copyright (c) 2026, The Corebind Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package binding

import (
	"fmt"
	"reflect"

	"github.com/corebind/corebind/events"
)

// DataContexter is implemented by target objects that carry an ambient
// data context. Objects that also implement [events.Notifier] should
// notify with the member name "DataContext" when it changes.
type DataContexter interface {

	// DataContext returns the object's current ambient data context.
	DataContext() any
}

// NameScope is a registry of named elements, scoped to the context the
// binding was declared in.
type NameScope interface {

	// FindName looks up an element by name.
	FindName(name string) (any, bool)
}

// Parented is implemented by target objects that expose their visual or
// logical ancestry to bindings.
type Parented interface {

	// BindingParent returns the object's parent in the binding
	// ancestry, or nil at the root.
	BindingParent() any
}

// DataContextNode is the usual root node of a chain: it resolves to the
// ambient data context of the binding's target object, unless an
// explicit source override was supplied.
type DataContextNode struct {
	NodeBase
}

// NewDataContextNode returns a data-context root node.
func NewDataContextNode() *DataContextNode {
	dn := &DataContextNode{}
	dn.init(dn)
	return dn
}

// SelectSource implements [SourceSelector]: an explicit source override
// wins; otherwise the node reads from the target, falling back on the
// anchor when the binding has no target.
func (dn *DataContextNode) SelectSource(explicit, target, anchor any) any {
	if explicit != Unset {
		return explicit
	}
	if target != nil {
		return target
	}
	return anchor
}

func (dn *DataContextNode) OnSourceChanged(source any) {
	if n, ok := source.(events.Notifier); ok {
		n.AddListener(dn)
	}
	dn.compute(source)
}

func (dn *DataContextNode) Unsubscribe(source any) {
	if n, ok := source.(events.Notifier); ok {
		n.RemoveListener(dn)
	}
}

// Changed implements [events.Listener].
func (dn *DataContextNode) Changed(name string) {
	if name != "" && name != "DataContext" {
		return
	}
	if src, ok := dn.Source(); ok && src != nil {
		dn.compute(src)
	}
}

func (dn *DataContextNode) compute(source any) {
	dc, ok := source.(DataContexter)
	if !ok {
		dn.Error(fmt.Errorf("binding: cannot find a data context on %T", source))
		return
	}
	dn.SetValue(dc.DataContext())
}

// NamedElementNode resolves an element by name in a [NameScope] given
// at construction. It fails if no scope is available.
type NamedElementNode struct {
	NodeBase
	scope NameScope
	name  string
}

// NewNamedElementNode returns a node resolving the given name in the
// given scope; the scope may be nil, which resolves to an error.
func NewNamedElementNode(scope NameScope, name string) *NamedElementNode {
	en := &NamedElementNode{scope: scope, name: name}
	en.init(en)
	return en
}

// SelectSource implements [SourceSelector]: resolution goes through the
// name scope, so the node keeps whatever non-nil source it is given.
func (en *NamedElementNode) SelectSource(explicit, target, anchor any) any {
	if explicit != Unset {
		return explicit
	}
	if target != nil {
		return target
	}
	return anchor
}

func (en *NamedElementNode) OnSourceChanged(source any) {
	if n, ok := en.scope.(events.Notifier); ok {
		n.AddListener(en)
	}
	en.compute()
}

func (en *NamedElementNode) Unsubscribe(source any) {
	if n, ok := en.scope.(events.Notifier); ok {
		n.RemoveListener(en)
	}
}

// Changed implements [events.Listener]: the scope notifies with the
// registered name when an element is added or replaced.
func (en *NamedElementNode) Changed(name string) {
	if name != "" && name != en.name {
		return
	}
	if _, ok := en.Source(); ok {
		en.compute()
	}
}

func (en *NamedElementNode) compute() {
	if en.scope == nil {
		en.Error(fmt.Errorf("binding: no name scope available to resolve element %q", en.name))
		return
	}
	el, ok := en.scope.FindName(en.name)
	if !ok {
		en.Error(fmt.Errorf("binding: element %q not found in name scope", en.name))
		return
	}
	en.SetValue(el)
}

func (en *NamedElementNode) String() string { return "#" + en.name }

// AncestorNode resolves relative to the ancestry of the binding's
// target rather than its data context: it walks [Parented] links
// upward looking for the level-th ancestor of the given type. A nil
// type matches any ancestor; a nil type with level 0 resolves to the
// target itself.
type AncestorNode struct {
	NodeBase
	typ   reflect.Type
	level int
}

// NewAncestorNode returns an ancestor-resolving node.
func NewAncestorNode(typ reflect.Type, level int) *AncestorNode {
	an := &AncestorNode{typ: typ, level: level}
	an.init(an)
	return an
}

// NewSelfNode returns a node resolving to the binding's target itself.
func NewSelfNode() *AncestorNode {
	return NewAncestorNode(nil, 0)
}

// SelectSource implements [SourceSelector]: the walk starts at the
// target, falling back on the anchor.
func (an *AncestorNode) SelectSource(explicit, target, anchor any) any {
	if explicit != Unset {
		return explicit
	}
	if target != nil {
		return target
	}
	return anchor
}

func (an *AncestorNode) OnSourceChanged(source any) {
	if an.typ == nil && an.level == 0 {
		an.SetValue(source)
		return
	}
	count := 0
	cur := source
	for cur != nil {
		p, ok := cur.(Parented)
		if !ok {
			break
		}
		cur = p.BindingParent()
		if cur == nil || !an.matches(cur) {
			continue
		}
		if count == an.level {
			an.SetValue(cur)
			return
		}
		count++
	}
	an.Error(fmt.Errorf("binding: cannot find ancestor %v at level %d of %T", an.typ, an.level, source))
}

func (an *AncestorNode) matches(v any) bool {
	if an.typ == nil {
		return true
	}
	t := reflect.TypeOf(v)
	if an.typ.Kind() == reflect.Interface {
		return t.Implements(an.typ)
	}
	return t == an.typ
}

func (an *AncestorNode) String() string {
	if an.typ == nil && an.level == 0 {
		return "$self"
	}
	return fmt.Sprintf("$parent[%v;%d]", an.typ, an.level)
}
