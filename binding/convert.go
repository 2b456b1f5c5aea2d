// Copyright (c) 2026, The Corebind Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package binding

import (
	"reflect"

	"github.com/corebind/corebind/base/reflectx"
)

// Converter converts values moving between source and target. Either
// direction may return a plain value, [DoNothing] to suppress the
// update, or a [*Notification] carrying an error instead of throwing.
type Converter interface {

	// Convert converts a source value on its way to the target.
	Convert(value any, targetType reflect.Type, parameter any) any

	// ConvertBack converts a target value on its way back to the
	// source, for write-back.
	ConvertBack(value any, targetType reflect.Type, parameter any) any
}

// TargetTypeConverter coerces a publish-ready value to the binding's
// target type. It is applied by the expression itself, after any
// [Converter], and is mutually exclusive with string formatting for a
// given publish.
type TargetTypeConverter interface {

	// ConvertTo converts the value to the given type.
	ConvertTo(value any, targetType reflect.Type) (any, error)
}

// DefaultConverter coerces values with [reflectx.SetRobust], returning
// an error notification on failure. A binding that declares no
// converter applies none; target-type coercion is handled separately by
// [DefaultTargetTypeConverter].
var DefaultConverter Converter = defaultConverter{}

type defaultConverter struct{}

func (defaultConverter) Convert(value any, targetType reflect.Type, parameter any) any {
	v, err := coerce(value, targetType)
	if err != nil {
		return NotifyError(err)
	}
	return v
}

func (defaultConverter) ConvertBack(value any, targetType reflect.Type, parameter any) any {
	v, err := coerce(value, targetType)
	if err != nil {
		return NotifyError(err)
	}
	return v
}

// DefaultTargetTypeConverter coerces with [reflectx.SetRobust].
var DefaultTargetTypeConverter TargetTypeConverter = defaultTargetTypeConverter{}

type defaultTargetTypeConverter struct{}

func (defaultTargetTypeConverter) ConvertTo(value any, targetType reflect.Type) (any, error) {
	return coerce(value, targetType)
}

// coerce converts value to the given type via [reflectx.SetRobust].
// A nil type, a nil value, and the sentinels pass through untouched.
func coerce(value any, targetType reflect.Type) (any, error) {
	if targetType == nil || value == nil || value == Unset || value == DoNothing {
		return value, nil
	}
	if reflect.TypeOf(value) == targetType {
		return value, nil
	}
	out := reflect.New(targetType)
	if err := reflectx.SetRobust(out.Interface(), value); err != nil {
		return nil, err
	}
	return out.Elem().Interface(), nil
}
