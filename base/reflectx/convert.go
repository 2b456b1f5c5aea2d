// Copyright (c) 2026, The Corebind Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reflectx

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/jinzhu/copier"
)

// IsNil checks whether the given interface value is nil. The interface
// itself could be nil, or the value pointed to by the interface could
// be nil; this checks both, safely.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// The To* functions are robust and general conversions of anything to
// the given type. They violate most of the type safety of Go, which is
// appropriate for the world of user-declared bindings, where a string
// property routinely feeds a numeric one. nil values return an error.

// ToBool robustly converts the given value to a bool.
func ToBool(v any) (bool, error) {
	if IsNil(v) {
		return false, fmt.Errorf("reflectx.ToBool: cannot convert nil to bool")
	}
	rv := NonPointerValue(reflect.ValueOf(v))
	vk := rv.Kind()
	switch {
	case vk == reflect.Bool:
		return rv.Bool(), nil
	case vk >= reflect.Int && vk <= reflect.Int64:
		return rv.Int() != 0, nil
	case vk >= reflect.Uint && vk <= reflect.Uintptr:
		return rv.Uint() != 0, nil
	case vk >= reflect.Float32 && vk <= reflect.Float64:
		return rv.Float() != 0, nil
	case vk == reflect.String:
		r, err := strconv.ParseBool(rv.String())
		if err != nil {
			return false, fmt.Errorf("reflectx.ToBool: cannot convert string %q to bool", rv.String())
		}
		return r, nil
	}
	return false, fmt.Errorf("reflectx.ToBool: cannot convert type %T to bool", v)
}

// ToInt robustly converts the given value to an int64.
func ToInt(v any) (int64, error) {
	if IsNil(v) {
		return 0, fmt.Errorf("reflectx.ToInt: cannot convert nil to int")
	}
	rv := NonPointerValue(reflect.ValueOf(v))
	vk := rv.Kind()
	switch {
	case vk >= reflect.Int && vk <= reflect.Int64:
		return rv.Int(), nil
	case vk >= reflect.Uint && vk <= reflect.Uintptr:
		return int64(rv.Uint()), nil
	case vk == reflect.Bool:
		if rv.Bool() {
			return 1, nil
		}
		return 0, nil
	case vk >= reflect.Float32 && vk <= reflect.Float64:
		return int64(rv.Float()), nil
	case vk == reflect.String:
		r, err := strconv.ParseInt(rv.String(), 0, 64)
		if err != nil {
			return 0, fmt.Errorf("reflectx.ToInt: cannot convert string %q to int", rv.String())
		}
		return r, nil
	}
	return 0, fmt.Errorf("reflectx.ToInt: cannot convert type %T to int", v)
}

// ToFloat robustly converts the given value to a float64.
func ToFloat(v any) (float64, error) {
	if IsNil(v) {
		return 0, fmt.Errorf("reflectx.ToFloat: cannot convert nil to float")
	}
	rv := NonPointerValue(reflect.ValueOf(v))
	vk := rv.Kind()
	switch {
	case vk >= reflect.Float32 && vk <= reflect.Float64:
		return rv.Float(), nil
	case vk >= reflect.Int && vk <= reflect.Int64:
		return float64(rv.Int()), nil
	case vk >= reflect.Uint && vk <= reflect.Uintptr:
		return float64(rv.Uint()), nil
	case vk == reflect.Bool:
		if rv.Bool() {
			return 1, nil
		}
		return 0, nil
	case vk == reflect.String:
		r, err := strconv.ParseFloat(rv.String(), 64)
		if err != nil {
			return 0, fmt.Errorf("reflectx.ToFloat: cannot convert string %q to float", rv.String())
		}
		return r, nil
	}
	return 0, fmt.Errorf("reflectx.ToFloat: cannot convert type %T to float", v)
}

// ToString robustly converts anything to a string. Because [fmt.Stringer]
// is so ubiquitous, and it falls back on fmt.Sprintf("%v") in the worst
// case, it always produces something, so there is no error return.
func ToString(v any) string {
	if IsNil(v) {
		return "nil"
	}
	if st, ok := v.(fmt.Stringer); ok {
		return st.String()
	}
	rv := NonPointerValue(reflect.ValueOf(v))
	vk := rv.Kind()
	switch {
	case vk == reflect.String:
		return rv.String()
	case vk >= reflect.Int && vk <= reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case vk >= reflect.Uint && vk <= reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case vk == reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case vk >= reflect.Float32 && vk <= reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'G', -1, 64)
	case vk == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8:
		return string(rv.Bytes())
	}
	return fmt.Sprintf("%v", v)
}

// SetRobust robustly sets the to value from the from value.
// The to value must be a non-nil pointer to the destination.
// It converts between basic kinds (bool, numbers, string) as needed,
// assigns directly when possible, and falls back on the copier package
// for struct-shaped values.
func SetRobust(to, from any) error {
	if IsNil(to) {
		return fmt.Errorf("reflectx.SetRobust: destination is nil")
	}
	rv := reflect.ValueOf(to)
	np := NonPointerValue(rv)
	if !np.IsValid() {
		return fmt.Errorf("reflectx.SetRobust: destination %v is invalid", to)
	}
	typ := np.Type()
	vp := OnePointerValue(np)
	if !vp.Elem().CanSet() {
		return fmt.Errorf("reflectx.SetRobust: destination %v cannot be set; it must be a variable or field, not a const or tmp or other value that cannot be set", to)
	}
	vk := np.Kind()
	switch {
	case vk >= reflect.Int && vk <= reflect.Int64, vk >= reflect.Uint && vk <= reflect.Uintptr:
		fm, err := ToInt(from)
		if err == nil {
			vp.Elem().Set(reflect.ValueOf(fm).Convert(typ))
			return nil
		}
	case vk == reflect.Bool:
		fm, err := ToBool(from)
		if err == nil {
			vp.Elem().Set(reflect.ValueOf(fm).Convert(typ))
			return nil
		}
	case vk >= reflect.Float32 && vk <= reflect.Float64:
		fm, err := ToFloat(from)
		if err == nil {
			vp.Elem().Set(reflect.ValueOf(fm).Convert(typ))
			return nil
		}
	case vk == reflect.String:
		vp.Elem().Set(reflect.ValueOf(ToString(from)).Convert(typ))
		return nil
	}
	if from == nil {
		vp.Elem().SetZero()
		return nil
	}
	fv := reflect.ValueOf(from)
	if fv.Type().AssignableTo(typ) {
		vp.Elem().Set(fv)
		return nil
	}
	if fv.Type().ConvertibleTo(typ) && vk != reflect.Interface {
		vp.Elem().Set(fv.Convert(typ))
		return nil
	}
	if vk == reflect.Struct && NonPointerValue(fv).Kind() == reflect.Struct {
		if err := copier.Copy(vp.Interface(), from); err == nil {
			return nil
		}
	}
	return fmt.Errorf("reflectx.SetRobust: cannot set destination of type %v from value %v of type %T", typ, from, from)
}
