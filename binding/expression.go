// Copyright (c) 2026, The Corebind Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package binding

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/corebind/corebind/base/errors"
	"github.com/corebind/corebind/base/weakref"
)

// Expression owns an ordered chain of [Node]s forming one binding
// path. It wires node-to-node source propagation, applies conversion,
// formatting, and fallback policy to the leaf value, exposes a
// single-subscriber observable value stream, and provides the reverse
// write path. All of its methods must be called from the one logical
// thread that owns the source graph; propagation is synchronous and
// depth-first in chain order.
type Expression struct {
	nodes               []Node
	root                weakref.Ref
	target              weakref.Ref
	anchor              any
	converter           Converter
	converterParameter  any
	fallbackValue       any
	targetNullValue     any
	stringFormat        string
	targetType          reflect.Type
	targetTypeConverter TargetTypeConverter
	mode                Mode
	priority            Priority
	validate            bool
	observer            func(value any)
}

// New returns an expression over the given root source and node chain,
// assigning each node its position. The chain is owned exclusively:
// giving a node that already belongs to another expression panics.
// An empty chain is
// valid and publishes the root source directly.
func New(root any, nodes ...Node) *Expression {
	ex := &Expression{
		nodes:           nodes,
		root:            weakref.Make(root),
		fallbackValue:   Unset,
		targetNullValue: Unset,
	}
	for i, n := range nodes {
		n.AsNodeBase().init(n)
		errors.Must(n.AsNodeBase().attach(ex, i))
	}
	return ex
}

// SetConverter sets the converter applied to the leaf value before
// publishing, and in reverse before write-back.
func (ex *Expression) SetConverter(c Converter) *Expression {
	ex.converter = c
	return ex
}

// SetConverterParameter sets the opaque parameter passed to the converter.
func (ex *Expression) SetConverterParameter(p any) *Expression {
	ex.converterParameter = p
	return ex
}

// SetFallbackValue sets the value published when the pipeline cannot
// produce one.
func (ex *Expression) SetFallbackValue(v any) *Expression {
	ex.fallbackValue = v
	return ex
}

// SetTargetNullValue sets the value substituted when the resolved value
// is nil.
func (ex *Expression) SetTargetNullValue(v any) *Expression {
	ex.targetNullValue = v
	return ex
}

// SetStringFormat sets the composite format applied to published
// values when the target type is string-shaped. A blank format means
// none; a format lacking a placeholder f is wrapped as "{0:f}".
func (ex *Expression) SetStringFormat(f string) *Expression {
	ex.stringFormat = normalizeFormat(f)
	return ex
}

// SetTargetType sets the type published values are coerced to.
func (ex *Expression) SetTargetType(t reflect.Type) *Expression {
	ex.targetType = t
	return ex
}

// SetTargetTypeConverter overrides [DefaultTargetTypeConverter].
func (ex *Expression) SetTargetTypeConverter(c TargetTypeConverter) *Expression {
	ex.targetTypeConverter = c
	return ex
}

// SetTarget sets the binding's target object, held non-owning. It is
// only consulted by a source-selecting first node.
func (ex *Expression) SetTarget(target any) *Expression {
	ex.target = weakref.Make(target)
	return ex
}

// SetAnchor sets the fallback object a source-selecting first node
// uses when the binding has no target.
func (ex *Expression) SetAnchor(anchor any) *Expression {
	ex.anchor = anchor
	return ex
}

// SetMode sets the declared binding mode, carried for the external
// property system.
func (ex *Expression) SetMode(m Mode) *Expression {
	ex.mode = m
	return ex
}

// Mode returns the declared binding mode.
func (ex *Expression) Mode() Mode { return ex.mode }

// SetPriority sets the declared binding priority, carried for the
// external property system.
func (ex *Expression) SetPriority(p Priority) *Expression {
	ex.priority = p
	return ex
}

// Priority returns the declared binding priority.
func (ex *Expression) Priority() Priority { return ex.priority }

// SetEnableValidation enables data-validation mode. When the pipeline
// starts, the leaf node, if it supports member access, is told to
// surface validation errors as [ValidationError] notifications.
func (ex *Expression) SetEnableValidation(on bool) *Expression {
	ex.validate = on
	return ex
}

// IsActive reports whether an observer is attached.
func (ex *Expression) IsActive() bool { return ex.observer != nil }

// Path returns the textual reconstruction of the full binding path.
func (ex *Expression) Path() string {
	return ex.chainDescription(len(ex.nodes) - 1)
}

// chainDescription concatenates each node's string form up to and
// including the given index.
func (ex *Expression) chainDescription(upTo int) string {
	var sb strings.Builder
	for i := 0; i <= upTo && i < len(ex.nodes); i++ {
		sb.WriteString(ex.nodes[i].String())
	}
	return strings.TrimPrefix(sb.String(), ".")
}

// Subscribe attaches the observer and starts the pipeline: the root
// source is pushed into the first node and values propagate to the
// leaf, producing the initial publish. Exactly one observer may be
// attached at a time; subscribing while active is a usage error.
func (ex *Expression) Subscribe(observer func(value any)) error {
	if observer == nil {
		return errors.Log(errors.New("binding: observer must be non-nil"))
	}
	if ex.observer != nil {
		return errors.Log(errors.New("binding: expression already has an observer"))
	}
	ex.observer = observer
	if len(ex.nodes) == 0 {
		root, _ := ex.root.Value()
		ex.publish(root)
		return nil
	}
	if ex.validate {
		if pn, ok := ex.nodes[len(ex.nodes)-1].(*PropertyNode); ok {
			pn.EnableValidation()
		}
	}
	src, _ := ex.root.Value()
	if ss, ok := ex.nodes[0].(SourceSelector); ok {
		explicit := any(Unset)
		if src != nil {
			explicit = src
		}
		target, _ := ex.target.Value()
		src = ss.SelectSource(explicit, target, ex.anchor)
	}
	ex.nodes[0].AsNodeBase().SetSource(src)
	return nil
}

// Unsubscribe detaches the observer and stops the pipeline, resetting
// every node and releasing all subscriptions. It is idempotent, and is
// the only cancellation mechanism.
func (ex *Expression) Unsubscribe() {
	if ex.observer == nil {
		return
	}
	ex.observer = nil
	for _, n := range ex.nodes {
		n.AsNodeBase().Reset()
	}
}

// nodeValueChanged handles a node producing a new value: the leaf
// triggers a full publish; an intermediate nil value is always an
// error for the next hop, even though the node itself had no internal
// fault; anything else becomes the source of the next node.
func (ex *Expression) nodeValueChanged(index int, value any) {
	if index == len(ex.nodes)-1 {
		ex.publish(value)
		return
	}
	if value == nil {
		ex.nodeError(index, errors.New("value is nil"))
		return
	}
	ex.nodes[index+1].AsNodeBase().SetSource(value)
}

// nodeError handles a per-node error: every downstream node's source is
// forced to nil individually (clearing a source does not itself
// re-notify, so this cannot be left to cascade), and an error
// notification carrying the configured fallback value is published,
// wrapped with the textual chain up to the failed node.
func (ex *Expression) nodeError(index int, err error) {
	for i := index + 1; i < len(ex.nodes); i++ {
		ex.nodes[i].AsNodeBase().SetSource(nil)
	}
	cerr := &ChainError{Expression: ex.Path(), Point: ex.chainDescription(index), Err: err}
	n := NotifyError(cerr)
	if ex.fallbackValue != Unset {
		n.Value, n.HasValue = ex.fallbackValue, true
	}
	if ex.observer != nil {
		ex.observer(n)
	}
}

// publish runs the conversion/formatting/fallback policy over the raw
// leaf value and pushes the result to the observer.
func (ex *Expression) publish(raw any) {
	if ex.observer == nil {
		return
	}
	value, notif := Unwrap(raw)
	if value == DoNothing {
		return
	}
	if ex.converter != nil {
		converted := ex.converter.Convert(value, ex.targetType, ex.converterParameter)
		if n, ok := converted.(*Notification); ok {
			notif = Compose(notif, n)
			value = n.ValueOrUnset()
		} else {
			value = converted
		}
		if value == DoNothing {
			return
		}
	}
	targetNullSubstitution := false
	if value == nil && ex.targetNullValue != Unset {
		value = ex.targetNullValue
		targetNullSubstitution = true
	}
	if value != Unset {
		if ex.stringFormat != "" && !targetNullSubstitution && stringShaped(ex.targetType) {
			value = formatValue(ex.stringFormat, value)
		} else if ex.targetType != nil {
			value = ex.toTargetType(value, &notif)
		}
	}
	if value == Unset && ex.fallbackValue != Unset {
		value = ex.fallbackValue
		if ex.targetType != nil {
			value = ex.toTargetType(value, &notif)
		}
	}
	if notif != nil && notif.Kind != NoError {
		out := *notif
		out.Value = value
		out.HasValue = value != Unset
		ex.observer(&out)
		return
	}
	ex.observer(value)
}

// toTargetType coerces the value to the target type, merging any
// conversion failure into the running notification and yielding Unset
// so that fallback substitution can apply.
func (ex *Expression) toTargetType(value any, notif **Notification) any {
	ttc := ex.targetTypeConverter
	if ttc == nil {
		ttc = DefaultTargetTypeConverter
	}
	out, err := ttc.ConvertTo(value, ex.targetType)
	if err != nil {
		*notif = Compose(*notif, NotifyError(err))
		return Unset
	}
	return out
}

// SetValue writes a new value back through the chain to its source,
// reporting success. The converter's back-conversion applies first; a
// [DoNothing] result reports success without writing. Any panic raised
// while writing becomes a write failure rather than propagating.
func (ex *Expression) SetValue(value any) bool {
	if ex.converter != nil {
		value = ex.converter.ConvertBack(value, ex.targetType, ex.converterParameter)
	}
	if value == DoNothing {
		return true
	}
	v, notif := Unwrap(value)
	if notif != nil && notif.Kind != NoError {
		return false
	}
	if len(ex.nodes) == 0 {
		return false
	}
	leaf, ok := ex.nodes[len(ex.nodes)-1].(Settable)
	if !ok {
		return false
	}
	wrote := false
	func() {
		defer func() {
			if r := recover(); r != nil {
				wrote = false
			}
		}()
		wrote = leaf.WriteToSource(v, ex.nodes)
	}()
	return wrote
}

// ChainError describes a failure at one link of a binding path.
type ChainError struct {

	// Expression is the full textual path of the binding.
	Expression string

	// Point is the path up to and including the failed link.
	Point string

	// Err is the underlying node error.
	Err error
}

func (e *ChainError) Error() string {
	return fmt.Sprintf("binding %q: error at %q: %v", e.Expression, e.Point, e.Err)
}

func (e *ChainError) Unwrap() error { return e.Err }

// stringShaped reports whether the target type can accept a formatted
// string: no target type, string, or the empty interface.
func stringShaped(t reflect.Type) bool {
	return t == nil || t.Kind() == reflect.String || (t.Kind() == reflect.Interface && t.NumMethod() == 0)
}
