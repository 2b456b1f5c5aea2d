// Copyright (c) 2026, The Corebind Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package binding

import (
	"github.com/corebind/corebind/base/reflectx"
	"github.com/corebind/corebind/events"
)

// DataValidator is implemented by source objects that can validate
// their member values. A leaf [PropertyNode] with validation enabled
// surfaces validation failures as [ValidationError] notifications,
// alongside the value that failed.
type DataValidator interface {

	// ValidateMember validates the current value of the named member,
	// returning a non-nil error if it is invalid.
	ValidateMember(name string) error
}

// PropertyNode reads, and optionally writes, a named member of its
// source: a struct field, a getter/setter method pair, or a map key,
// resolved through a [reflectx.Resolver] fixed at construction time.
type PropertyNode struct {
	NodeBase
	name     string
	acc      reflectx.Accessor
	validate bool
}

// NewPropertyNode returns a node reading the named member, using the
// given resolution strategy, or [reflectx.DefaultResolver] if none.
func NewPropertyNode(name string, resolver ...reflectx.Resolver) *PropertyNode {
	res := reflectx.DefaultResolver
	if len(resolver) > 0 {
		res = resolver[0]
	}
	pn := &PropertyNode{name: name, acc: res.Member(name)}
	pn.init(pn)
	return pn
}

// Name returns the member name this node reads.
func (pn *PropertyNode) Name() string { return pn.name }

// EnableValidation turns on data-validation mode. The owning expression
// enables it on the leaf node only.
func (pn *PropertyNode) EnableValidation() {
	pn.validate = true
}

func (pn *PropertyNode) OnSourceChanged(source any) {
	if n, ok := source.(events.Notifier); ok {
		n.AddListener(pn)
	}
	pn.compute(source)
}

func (pn *PropertyNode) Unsubscribe(source any) {
	if n, ok := source.(events.Notifier); ok {
		n.RemoveListener(pn)
	}
}

// Changed implements [events.Listener]: the member this node reads, or
// anything, changed on the source.
func (pn *PropertyNode) Changed(name string) {
	if name != "" && name != pn.name {
		return
	}
	if src, ok := pn.Source(); ok && src != nil {
		pn.compute(src)
	}
}

func (pn *PropertyNode) compute(source any) {
	v, err := pn.acc.Get(source)
	if err != nil {
		pn.Error(err)
		return
	}
	if pn.validate {
		if dv, ok := source.(DataValidator); ok {
			if verr := dv.ValidateMember(pn.name); verr != nil {
				pn.SetValue(NotifyValidationError(verr, v))
				return
			}
		}
	}
	pn.SetValue(v)
}

// WriteToSource implements [Settable] when the underlying accessor is
// settable.
func (pn *PropertyNode) WriteToSource(value any, nodes []Node) bool {
	src, ok := pn.Source()
	if !ok || src == nil || !pn.acc.Settable() {
		return false
	}
	return pn.acc.Set(src, value) == nil
}

func (pn *PropertyNode) String() string { return "." + pn.name }
