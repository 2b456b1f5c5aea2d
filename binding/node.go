// Copyright (c) 2026, The Corebind Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package binding

import (
	"fmt"
	"reflect"

	"github.com/corebind/corebind/base/errors"
	"github.com/corebind/corebind/base/reflectx"
	"github.com/corebind/corebind/base/weakref"
)

// Node is one link in a binding path. The core functionality of a node
// is defined on [NodeBase], which all node types embed; this interface
// only contains the hooks that node types override. A node belongs to
// at most one [Expression] at a time and never outlives it.
type Node interface {

	// AsNodeBase returns the [NodeBase] of this node.
	AsNodeBase() *NodeBase

	// OnSourceChanged subscribes to change notifications on the new
	// source, if it supports them, and synchronously computes and sets
	// the initial value. The source is never nil. Panics raised here
	// are captured by [NodeBase.SetSource] and become node errors.
	OnSourceChanged(source any)

	// Unsubscribe detaches any change-notification subscription from
	// the old source. The source is never nil.
	Unsubscribe(source any)

	// String returns the path form of this node, such as ".Name",
	// "[2]", or "!"; chain descriptions in errors are built from it.
	String() string
}

// Settable is implemented by nodes that support writing a value back
// through the chain to their source.
type Settable interface {
	Node

	// WriteToSource attempts to write the given value to this node's
	// source, reporting success. nodes is the full chain, so that
	// pass-through nodes can forward the write to an earlier node.
	WriteToSource(value any, nodes []Node) bool
}

// SourceSelector is implemented by source-selecting nodes. When the
// first node of a chain is a SourceSelector, the expression asks it to
// choose the effective root source instead of using the supplied root
// directly.
type SourceSelector interface {
	Node

	// SelectSource chooses the node's source given the explicit source
	// override ([Unset] if none), the binding's target object, and an
	// anchor fallback.
	SelectSource(explicit, target, anchor any) any
}

// NodeBase implements the common state and update rules of all nodes.
// Its source and cached value are held through non-owning references,
// so a node never anchors a stale object graph.
type NodeBase struct {
	this     Node
	owner    *Expression
	index    int
	source   weakref.Ref
	value    weakref.Ref
	hasValue bool
}

// AsNodeBase returns this [NodeBase].
func (nb *NodeBase) AsNodeBase() *NodeBase { return nb }

// OnSourceChanged is a no-op by default; node types override it.
func (nb *NodeBase) OnSourceChanged(source any) {}

// Unsubscribe is a no-op by default; node types with subscriptions
// override it.
func (nb *NodeBase) Unsubscribe(source any) {}

func (nb *NodeBase) String() string { return "" }

// init records the concrete node for hook dispatch.
func (nb *NodeBase) init(this Node) {
	nb.this = this
}

// attach assigns the owning expression and chain position, exactly once.
// Attaching a node that already belongs to a different expression is a
// usage error.
func (nb *NodeBase) attach(owner *Expression, index int) error {
	if nb.owner != nil && nb.owner != owner {
		return errors.New("binding: node already belongs to another expression")
	}
	nb.owner = owner
	nb.index = index
	return nil
}

// Index returns this node's position in the owning chain.
func (nb *NodeBase) Index() int { return nb.index }

// Source returns the node's current source and whether it is still alive.
func (nb *NodeBase) Source() (any, bool) {
	return nb.source.Value()
}

// Value returns the node's cached value and whether it is still alive.
func (nb *NodeBase) Value() (any, bool) {
	return nb.value.Value()
}

// SetSource gives the node a new upstream value to read from. [Unset]
// is treated as nil. The previous non-nil source is unsubscribed first.
// A nil new source clears the cached value without notifying the owner:
// an upstream link legitimately becoming absent must not cascade
// spurious errors down the chain. A changed non-nil source invokes the
// node's subscribe/compute hook, converting any panic into a per-node
// error instead of propagating it.
func (nb *NodeBase) SetSource(source any) {
	if source == Unset || reflectx.IsNil(source) {
		source = nil
	}
	old, _ := nb.source.Value()
	if source != nil && sameValue(old, source) {
		return
	}
	if old != nil {
		nb.this.Unsubscribe(old)
	}
	nb.source = weakref.Make(source)
	if source == nil {
		nb.value = weakref.Ref{}
		nb.hasValue = true
		return
	}
	func() {
		defer func() {
			if r := recover(); r != nil {
				nb.Error(recoveredError(r))
			}
		}()
		nb.this.OnSourceChanged(source)
	}()
}

// SetValue updates the cached value and notifies the owner of the
// change. To prevent redundant recomputation storms when resubscription
// re-delivers an identical value, the owner is only notified if this is
// the first value ever set, the value is a [Notification], the previous
// cached value could no longer be recovered, or the new value differs
// from the old by equality.
func (nb *NodeBase) SetValue(value any) {
	if reflectx.IsNil(value) {
		value = nil // typed nils read through reflection flow as plain nil
	}
	old, alive := nb.value.Value()
	first := !nb.hasValue
	nb.value = weakref.Make(value)
	nb.hasValue = true
	if _, isNotification := value.(*Notification); !first && !isNotification && alive && reflect.DeepEqual(old, value) {
		return
	}
	if nb.owner != nil {
		nb.owner.nodeValueChanged(nb.index, value)
	}
}

// Error reports a per-node error to the owning expression. Errors are
// never thrown across node boundaries.
func (nb *NodeBase) Error(err error) {
	if nb.owner != nil {
		nb.owner.nodeError(nb.index, err)
	}
}

// Reset unsubscribes from the current source and clears all state,
// releasing every non-owning reference promptly. The owning expression
// calls it on every node when its observer detaches.
func (nb *NodeBase) Reset() {
	if old, ok := nb.source.Value(); ok && old != nil {
		nb.this.Unsubscribe(old)
	}
	nb.source = weakref.Ref{}
	nb.value = weakref.Ref{}
	nb.hasValue = false
}

// recoveredError converts a recovered panic value to an error.
func recoveredError(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("%v", r)
}

// sameValue reports whether two interface values are the same, without
// panicking on uncomparable dynamic types: pointer-shaped kinds compare
// by identity, uncomparable kinds are never the same.
func sameValue(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	av, bv := reflect.ValueOf(a), reflect.ValueOf(b)
	if av.Type() != bv.Type() {
		return false
	}
	switch av.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return av.Pointer() == bv.Pointer()
	case reflect.Slice:
		return av.Pointer() == bv.Pointer() && av.Len() == bv.Len()
	}
	if !av.Comparable() {
		return false
	}
	return a == b
}
