// Copyright (c) 2026, The Corebind Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package binding

// Unset is the distinguished marker meaning "no value available".
// It is a definite value, distinct from a present nil.
var Unset = &unsetValue{}

type unsetValue struct{}

func (u *unsetValue) String() string { return "(unset)" }

// DoNothing is the distinguished marker meaning "leave the target
// exactly as it is"; publishing it is suppressed entirely.
var DoNothing = &doNothing{}

type doNothing struct{}

func (d *doNothing) String() string { return "(do-nothing)" }

// ErrorKind describes the kind of error carried by a [Notification].
type ErrorKind int32

const (
	// NoError means the notification carries no error.
	NoError ErrorKind = iota

	// BindingError is an ordinary error resolving or converting
	// a link of the binding chain.
	BindingError

	// ValidationError is a data-validation failure reported by the
	// leaf node, kept distinct so consumers can report it differently.
	ValidationError
)

func (k ErrorKind) String() string {
	switch k {
	case NoError:
		return "NoError"
	case BindingError:
		return "BindingError"
	case ValidationError:
		return "ValidationError"
	}
	return "ErrorKind(?)"
}

// Notification carries a value and/or an error through the binding
// pipeline without losing either.
type Notification struct {

	// Value is the carried value; only meaningful if HasValue is set.
	Value any

	// HasValue distinguishes "carries a nil value" from "carries no value".
	HasValue bool

	// Kind is the kind of error carried, or [NoError].
	Kind ErrorKind

	// Err is the carried error; nil exactly when Kind is [NoError].
	Err error
}

// NotifyValue returns a notification carrying only a value.
func NotifyValue(v any) *Notification {
	return &Notification{Value: v, HasValue: true}
}

// NotifyError returns a notification carrying only an error.
func NotifyError(err error) *Notification {
	return &Notification{Kind: BindingError, Err: err}
}

// NotifyValidationError returns a validation-error notification that
// also carries the value that failed validation.
func NotifyValidationError(err error, v any) *Notification {
	return &Notification{Value: v, HasValue: true, Kind: ValidationError, Err: err}
}

// ValueOrUnset returns the carried value, or [Unset] for an error-only
// notification.
func (n *Notification) ValueOrUnset() any {
	if n.HasValue {
		return n.Value
	}
	return Unset
}

// Compose merges an update into an existing notification: the first
// error is kept, the value always tracks the most recent update.
// Either argument may be nil.
func Compose(a, b *Notification) *Notification {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	out := &Notification{Kind: a.Kind, Err: a.Err}
	if out.Kind == NoError {
		out.Kind, out.Err = b.Kind, b.Err
	}
	if b.HasValue {
		out.Value, out.HasValue = b.Value, true
	} else {
		out.Value, out.HasValue = a.Value, a.HasValue
	}
	return out
}

// Unwrap splits a possibly-wrapped value into the plain value and the
// notification, if any. An error-only notification unwraps to [Unset].
func Unwrap(v any) (any, *Notification) {
	if n, ok := v.(*Notification); ok {
		return n.ValueOrUnset(), n
	}
	return v, nil
}
