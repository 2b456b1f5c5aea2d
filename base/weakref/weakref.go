// Copyright (c) 2026, The Corebind Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package weakref provides non-owning references to arbitrary values,
// with an explicit liveness check. Binding nodes hold their source and
// cached value through a [Ref] so that a binding never becomes the
// reason an otherwise-unreachable object graph stays alive.
package weakref

import (
	"reflect"
	"unsafe"
	"weak"
)

// Ref is a possibly-weak reference to a value. Pointer-kinded values are
// held through a weak pointer and may be collected while the Ref exists;
// all other kinds (scalars, strings, nil) cannot anchor an object graph
// and are stored directly. The zero Ref is a live reference to nil.
type Ref struct {
	ptr weak.Pointer[byte]
	typ reflect.Type // pointer type of the weak referent; nil for direct values
	val any
}

// Make returns a [Ref] referring to the given value.
func Make(v any) Ref {
	if v == nil {
		return Ref{}
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() { // typed nil normalizes to plain nil
			return Ref{}
		}
		p := (*byte)(rv.UnsafePointer())
		return Ref{ptr: weak.Make(p), typ: rv.Type()}
	}
	return Ref{val: v}
}

// Value returns the referent and whether it is still alive.
// A weakly-held referent that has been collected returns (nil, false);
// a reference that was made to nil returns (nil, true).
func (r Ref) Value() (any, bool) {
	if r.typ == nil {
		return r.val, true
	}
	p := r.ptr.Value()
	if p == nil {
		return nil, false
	}
	return reflect.NewAt(r.typ.Elem(), unsafe.Pointer(p)).Interface(), true
}

// IsNil reports whether the referent is nil or no longer alive.
func (r Ref) IsNil() bool {
	v, ok := r.Value()
	return !ok || v == nil
}
