// Copyright (c) 2026, The Corebind Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reflectx

import (
	"fmt"
	"reflect"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// Accessor reads and optionally writes one member of a source object.
// Accessors are resolved once, when a binding node is constructed, and
// cache per-type lookup results across the changing sources pushed
// through them.
type Accessor interface {

	// Get reads the member from the given source object.
	Get(source any) (any, error)

	// Set writes the member on the given source object.
	Set(source, value any) error

	// Settable reports whether this accessor supports [Accessor.Set]
	// in principle; a settable accessor can still fail on a particular
	// source at runtime.
	Settable() bool
}

// Resolver is a pluggable member-resolution strategy, abstracting over
// the concrete object model's member-access mechanism. The default is
// [DefaultResolver]; object models that are not plain Go values (script
// objects, remote proxies) provide their own.
type Resolver interface {

	// Member returns an accessor for the named member: a struct field,
	// a getter/setter method pair, or a map key, depending on the
	// source objects encountered.
	Member(name string) Accessor

	// Index returns an accessor for the given index or key of a
	// slice, array, or map source.
	Index(key any) Accessor

	// Method returns a read-only accessor calling the named method
	// with the given arguments, fixed at resolution time.
	Method(name string, args []any) Accessor
}

// DefaultResolver resolves members with the reflect package.
var DefaultResolver Resolver = reflectResolver{}

type reflectResolver struct{}

func (reflectResolver) Member(name string) Accessor {
	return &memberAccessor{name: name, cache: map[reflect.Type]*memberInfo{}}
}

func (reflectResolver) Index(key any) Accessor {
	return &indexAccessor{key: key}
}

func (reflectResolver) Method(name string, args []any) Accessor {
	return &methodAccessor{name: name, args: args}
}

// memberInfo is the resolved shape of a member on one concrete type.
type memberInfo struct {
	field  []int // struct field index path; nil if not a field
	getter int   // method index of getter; -1 if none
	setter int   // method index of "Set"+name setter; -1 if none
}

type memberAccessor struct {
	name  string
	cache map[reflect.Type]*memberInfo
}

func (ma *memberAccessor) Settable() bool { return true }

func (ma *memberAccessor) resolve(rv reflect.Value) (*memberInfo, error) {
	typ := rv.Type()
	if mi, ok := ma.cache[typ]; ok {
		if mi == nil {
			return nil, ma.unresolved(rv)
		}
		return mi, nil
	}
	mi := &memberInfo{getter: -1, setter: -1}
	uv := UnderlyingValue(rv)
	if uv.IsValid() && uv.Kind() == reflect.Struct {
		if sf, ok := uv.Type().FieldByName(ma.name); ok && sf.IsExported() {
			mi.field = sf.Index
		}
	}
	if m, ok := typ.MethodByName(ma.name); ok && m.Type.NumIn() == 1 {
		mi.getter = m.Index
	}
	if m, ok := typ.MethodByName("Set" + ma.name); ok && m.Type.NumIn() == 2 {
		mi.setter = m.Index
	}
	if mi.field == nil && mi.getter < 0 && mi.setter < 0 {
		ma.cache[typ] = nil
		return nil, ma.unresolved(rv)
	}
	ma.cache[typ] = mi
	return mi, nil
}

// unresolved builds a member-not-found error, with a closest-name
// suggestion when one of the type's members is similar enough.
func (ma *memberAccessor) unresolved(rv reflect.Value) error {
	err := fmt.Errorf("could not find member %q on %v", ma.name, rv.Type())
	best, score := "", 0.0
	consider := func(name string) {
		if s := strutil.Similarity(ma.name, name, metrics.NewJaroWinkler()); s > score {
			best, score = name, s
		}
	}
	if uv := UnderlyingValue(rv); uv.IsValid() && uv.Kind() == reflect.Struct {
		for i := range uv.NumField() {
			consider(uv.Type().Field(i).Name)
		}
	}
	for i := range rv.NumMethod() {
		consider(rv.Type().Method(i).Name)
	}
	if score >= 0.8 {
		return fmt.Errorf("%w (did you mean %q?)", err, best)
	}
	return err
}

func (ma *memberAccessor) Get(source any) (any, error) {
	if IsNil(source) {
		return nil, fmt.Errorf("cannot read member %q of nil", ma.name)
	}
	rv := reflect.ValueOf(source)
	if uv := UnderlyingValue(rv); uv.IsValid() && uv.Kind() == reflect.Map {
		return mapGet(uv, ma.name)
	}
	mi, err := ma.resolve(rv)
	if err != nil {
		return nil, err
	}
	if mi.field != nil {
		uv := UnderlyingValue(rv)
		fv, err := uv.FieldByIndexErr(mi.field)
		if err != nil { // nil embedded pointer along the path
			return nil, err
		}
		return fv.Interface(), nil
	}
	if mi.getter >= 0 {
		return callMethod(rv, rv.Type().Method(mi.getter), nil)
	}
	return nil, fmt.Errorf("member %q on %v is write-only", ma.name, rv.Type())
}

func (ma *memberAccessor) Set(source, value any) error {
	if IsNil(source) {
		return fmt.Errorf("cannot write member %q of nil", ma.name)
	}
	rv := reflect.ValueOf(source)
	if uv := UnderlyingValue(rv); uv.IsValid() && uv.Kind() == reflect.Map {
		return mapSet(uv, ma.name, value)
	}
	mi, err := ma.resolve(rv)
	if err != nil {
		return err
	}
	if mi.setter >= 0 {
		m := rv.Type().Method(mi.setter)
		arg := reflect.New(m.Type.In(1))
		if err := SetRobust(arg.Interface(), value); err != nil {
			return err
		}
		_, err := callMethod(rv, m, []reflect.Value{arg.Elem()})
		return err
	}
	if mi.field != nil {
		uv := UnderlyingValue(rv)
		fv, err := uv.FieldByIndexErr(mi.field)
		if err != nil {
			return err
		}
		if !fv.CanSet() {
			return fmt.Errorf("member %q on %v is not settable; the source must be a pointer", ma.name, rv.Type())
		}
		return SetRobust(fv.Addr().Interface(), value)
	}
	return fmt.Errorf("member %q on %v is read-only", ma.name, rv.Type())
}

type indexAccessor struct {
	key any
}

func (ia *indexAccessor) Settable() bool { return true }

func (ia *indexAccessor) Get(source any) (any, error) {
	uv := UnderlyingValue(reflect.ValueOf(source))
	if !uv.IsValid() {
		return nil, fmt.Errorf("cannot index nil with [%v]", ia.key)
	}
	switch uv.Kind() {
	case reflect.Slice, reflect.Array, reflect.String:
		i, err := ToInt(ia.key)
		if err != nil {
			return nil, err
		}
		if i < 0 || int(i) >= uv.Len() {
			return nil, fmt.Errorf("index %d out of range for length %d", i, uv.Len())
		}
		return uv.Index(int(i)).Interface(), nil
	case reflect.Map:
		return mapGet(uv, ia.key)
	}
	return nil, fmt.Errorf("cannot index type %v with [%v]", uv.Type(), ia.key)
}

func (ia *indexAccessor) Set(source, value any) error {
	uv := UnderlyingValue(reflect.ValueOf(source))
	if !uv.IsValid() {
		return fmt.Errorf("cannot index nil with [%v]", ia.key)
	}
	switch uv.Kind() {
	case reflect.Slice:
		i, err := ToInt(ia.key)
		if err != nil {
			return err
		}
		if i < 0 || int(i) >= uv.Len() {
			return fmt.Errorf("index %d out of range for length %d", i, uv.Len())
		}
		return SetRobust(uv.Index(int(i)).Addr().Interface(), value)
	case reflect.Map:
		return mapSet(uv, ia.key, value)
	}
	return fmt.Errorf("cannot write index [%v] of type %v", ia.key, uv.Type())
}

type methodAccessor struct {
	name string
	args []any
}

func (mc *methodAccessor) Settable() bool { return false }

func (mc *methodAccessor) Set(source, value any) error {
	return fmt.Errorf("cannot write through method %q", mc.name)
}

func (mc *methodAccessor) Get(source any) (any, error) {
	if IsNil(source) {
		return nil, fmt.Errorf("cannot call method %q of nil", mc.name)
	}
	rv := reflect.ValueOf(source)
	m, ok := rv.Type().MethodByName(mc.name)
	if !ok {
		return nil, fmt.Errorf("could not find method %q on %v", mc.name, rv.Type())
	}
	if m.Type.NumIn() != len(mc.args)+1 {
		return nil, fmt.Errorf("method %q on %v takes %d arguments; have %d", mc.name, rv.Type(), m.Type.NumIn()-1, len(mc.args))
	}
	in := make([]reflect.Value, len(mc.args))
	for i, a := range mc.args {
		av := reflect.New(m.Type.In(i + 1))
		if err := SetRobust(av.Interface(), a); err != nil {
			return nil, err
		}
		in[i] = av.Elem()
	}
	return callMethod(rv, m, in)
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// callMethod calls the given method on recv, handling the
// value, (value, error), and error-only return shapes.
func callMethod(recv reflect.Value, m reflect.Method, in []reflect.Value) (any, error) {
	out := m.Func.Call(append([]reflect.Value{recv}, in...))
	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		if m.Type.Out(0) == errorType {
			err, _ := out[0].Interface().(error)
			return nil, err
		}
		return out[0].Interface(), nil
	case 2:
		err, _ := out[1].Interface().(error)
		if err != nil {
			return nil, err
		}
		return out[0].Interface(), nil
	}
	return nil, fmt.Errorf("method %q has unsupported return arity %d", m.Name, len(out))
}

func mapGet(mv reflect.Value, key any) (any, error) {
	kv := reflect.New(mv.Type().Key())
	if err := SetRobust(kv.Interface(), key); err != nil {
		return nil, err
	}
	ev := mv.MapIndex(kv.Elem())
	if !ev.IsValid() {
		return nil, fmt.Errorf("key %v not found in map of type %v", key, mv.Type())
	}
	return ev.Interface(), nil
}

func mapSet(mv reflect.Value, key, value any) error {
	kv := reflect.New(mv.Type().Key())
	if err := SetRobust(kv.Interface(), key); err != nil {
		return err
	}
	ev := reflect.New(mv.Type().Elem())
	if err := SetRobust(ev.Interface(), value); err != nil {
		return err
	}
	mv.SetMapIndex(kv.Elem(), ev.Elem())
	return nil
}
