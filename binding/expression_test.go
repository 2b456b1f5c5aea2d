// Copyright (c) 2026, The Corebind Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package binding_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corebind/corebind/binding"
)

func TestInitialPublishSingleNode(t *testing.T) {
	p := &person{Name: "Go"}
	rec := &recorder{}
	ex := binding.New(p, binding.NewPropertyNode("Name"))
	require.NoError(t, ex.Subscribe(rec.observe))
	assert.Equal(t, []any{"Go"}, rec.values)
}

func TestInitialPublishChain(t *testing.T) {
	c := &company{Boss: &person{Addr: &address{Street: "Main St"}}}
	rec := &recorder{}
	ex := binding.New(c,
		binding.NewPropertyNode("Boss"),
		binding.NewPropertyNode("Addr"),
		binding.NewPropertyNode("Street"),
	)
	require.NoError(t, ex.Subscribe(rec.observe))
	// exactly one initial publish once all nodes resolve
	assert.Equal(t, []any{"Main St"}, rec.values)
	assert.Equal(t, "Boss.Addr.Street", ex.Path())
}

func TestZeroNodes(t *testing.T) {
	rec := &recorder{}
	ex := binding.New("root")
	require.NoError(t, ex.Subscribe(rec.observe))
	assert.Equal(t, []any{"root"}, rec.values)
}

func TestDoubleSubscribe(t *testing.T) {
	p := &person{Name: "Go"}
	ex := binding.New(p, binding.NewPropertyNode("Name"))
	require.NoError(t, ex.Subscribe(func(v any) {}))
	assert.True(t, ex.IsActive())
	assert.Error(t, ex.Subscribe(func(v any) {}))
	assert.Error(t, ex.Subscribe(nil))
}

func TestSharedNodePanics(t *testing.T) {
	n := binding.NewPropertyNode("Name")
	binding.New(&person{}, n)
	assert.Panics(t, func() {
		binding.New(&person{}, n)
	})
}

func TestUnsubscribeResets(t *testing.T) {
	p := &person{Name: "Go"}
	rec := &recorder{}
	name := binding.NewPropertyNode("Name")
	ex := binding.New(p, name)
	require.NoError(t, ex.Subscribe(rec.observe))
	require.Len(t, rec.values, 1)

	ex.Unsubscribe()
	assert.False(t, ex.IsActive())
	src, _ := name.AsNodeBase().Source()
	assert.Nil(t, src)

	// the subscription is gone: notifying publishes nothing
	p.SetName("Else")
	assert.Len(t, rec.values, 1)

	// idempotent
	ex.Unsubscribe()

	// an expression can restart after stopping
	require.NoError(t, ex.Subscribe(rec.observe))
	assert.Equal(t, "Else", rec.last())
}

func TestLiveUpdate(t *testing.T) {
	p := &person{Name: "Go"}
	rec := &recorder{}
	ex := binding.New(p, binding.NewPropertyNode("Name"))
	require.NoError(t, ex.Subscribe(rec.observe))
	p.SetName("Gopher")
	assert.Equal(t, []any{"Go", "Gopher"}, rec.values)
}

func TestIntermediateLinkReplaced(t *testing.T) {
	c := &company{Boss: &person{Addr: &address{Street: "Main St"}}}
	rec := &recorder{}
	ex := binding.New(c,
		binding.NewPropertyNode("Boss"),
		binding.NewPropertyNode("Addr"),
		binding.NewPropertyNode("Street"),
	)
	require.NoError(t, ex.Subscribe(rec.observe))
	c.Boss.SetAddr(&address{Street: "Side St"})
	assert.Equal(t, []any{"Main St", "Side St"}, rec.values)
}

func TestIntermediateNilError(t *testing.T) {
	c := &company{Boss: &person{Addr: &address{Street: "Main St"}}}
	rec := &recorder{}
	street := binding.NewPropertyNode("Street")
	ex := binding.New(c,
		binding.NewPropertyNode("Boss"),
		binding.NewPropertyNode("Addr"),
		street,
	)
	require.NoError(t, ex.Subscribe(rec.observe))

	c.Boss.SetAddr(nil)
	require.Len(t, rec.values, 2)
	n, ok := rec.last().(*binding.Notification)
	require.True(t, ok)
	assert.Equal(t, binding.BindingError, n.Kind)

	var cerr *binding.ChainError
	require.True(t, errors.As(n.Err, &cerr))
	assert.Equal(t, "Boss.Addr", cerr.Point)
	assert.Equal(t, "Boss.Addr.Street", cerr.Expression)

	// the leaf's state is cleared, never a silent stale value
	src, _ := street.AsNodeBase().Source()
	assert.Nil(t, src)
	v, _ := street.AsNodeBase().Value()
	assert.Nil(t, v)

	// the chain recovers when the link comes back
	c.Boss.SetAddr(&address{Street: "New St"})
	assert.Equal(t, "New St", rec.last())
}

func TestErrorCarriesFallback(t *testing.T) {
	c := &company{Boss: nil}
	rec := &recorder{}
	ex := binding.New(c,
		binding.NewPropertyNode("Boss"),
		binding.NewPropertyNode("Name"),
	).SetFallbackValue("n/a")
	require.NoError(t, ex.Subscribe(rec.observe))

	require.Len(t, rec.values, 1)
	n, ok := rec.last().(*binding.Notification)
	require.True(t, ok)
	assert.Equal(t, binding.BindingError, n.Kind)
	assert.True(t, n.HasValue)
	assert.Equal(t, "n/a", n.Value)
}

func TestDedupIdempotence(t *testing.T) {
	p := &person{Name: "Go"}
	rec := &recorder{}
	ex := binding.New(p, binding.NewPropertyNode("Name"))
	require.NoError(t, ex.Subscribe(rec.observe))

	// re-delivering an identical value does not republish
	p.Notify("Name")
	assert.Len(t, rec.values, 1)

	p.SetName("Gopher")
	assert.Len(t, rec.values, 2)
}

func TestNotificationAlwaysRepublishes(t *testing.T) {
	p := &person{Name: "", memberErrors: map[string]error{"Name": errors.New("required")}}
	rec := &recorder{}
	ex := binding.New(p, binding.NewPropertyNode("Name")).SetEnableValidation(true)
	require.NoError(t, ex.Subscribe(rec.observe))
	require.Len(t, rec.values, 1)

	// a notification-wrapped value re-triggers even when unchanged
	p.Notify("Name")
	assert.Len(t, rec.values, 2)
}

func TestValidation(t *testing.T) {
	p := &person{Name: "", memberErrors: map[string]error{"Name": errors.New("name is required")}}
	rec := &recorder{}
	ex := binding.New(p, binding.NewPropertyNode("Name")).SetEnableValidation(true)
	require.NoError(t, ex.Subscribe(rec.observe))

	n, ok := rec.last().(*binding.Notification)
	require.True(t, ok)
	assert.Equal(t, binding.ValidationError, n.Kind)
	assert.True(t, n.HasValue)
	assert.Equal(t, "", n.Value)
	assert.ErrorContains(t, n.Err, "name is required")

	// validation recovers once the member is valid
	delete(p.memberErrors, "Name")
	p.SetName("Go")
	assert.Equal(t, "Go", rec.last())
}

func TestRoundTrip(t *testing.T) {
	p := &person{Name: "Go"}
	rec := &recorder{}
	ex := binding.New(p, binding.NewPropertyNode("Name"))
	require.NoError(t, ex.Subscribe(rec.observe))

	assert.True(t, ex.SetValue("Gopher"))
	assert.Equal(t, "Gopher", p.Name)
	// the write triggered the next natural read, unchanged
	assert.Equal(t, "Gopher", rec.last())
}

func TestWriteUnsupported(t *testing.T) {
	p := &person{Age: 1}
	ex := binding.New(p, binding.NewMethodNode("ValidateMember", []any{"Age"}))
	require.NoError(t, ex.Subscribe(func(v any) {}))
	assert.False(t, ex.SetValue(2))

	// zero-node chains have nothing to write to
	exEmpty := binding.New("root")
	require.NoError(t, exEmpty.Subscribe(func(v any) {}))
	assert.False(t, exEmpty.SetValue(1))
}

type doubler struct{}

func (doubler) Convert(v any, _ reflect.Type, _ any) any {
	i, _ := v.(int)
	return i * 2
}

func (doubler) ConvertBack(v any, _ reflect.Type, _ any) any {
	i, _ := v.(int)
	return i / 2
}

func TestConverter(t *testing.T) {
	p := &person{Age: 21}
	rec := &recorder{}
	ex := binding.New(p, binding.NewPropertyNode("Age")).SetConverter(doubler{})
	require.NoError(t, ex.Subscribe(rec.observe))
	assert.Equal(t, []any{42}, rec.values)

	assert.True(t, ex.SetValue(42))
	assert.Equal(t, 21, p.Age)
}

type doNothingConverter struct{}

func (doNothingConverter) Convert(v any, _ reflect.Type, _ any) any {
	return binding.DoNothing
}

func (doNothingConverter) ConvertBack(v any, _ reflect.Type, _ any) any {
	return binding.DoNothing
}

func TestConverterDoNothing(t *testing.T) {
	p := &person{Age: 21}
	rec := &recorder{}
	ex := binding.New(p, binding.NewPropertyNode("Age")).SetConverter(doNothingConverter{})
	require.NoError(t, ex.Subscribe(rec.observe))
	assert.Empty(t, rec.values)

	// a do-nothing back-conversion reports success without writing
	assert.True(t, ex.SetValue(99))
	assert.Equal(t, 21, p.Age)
}

type unsetConverter struct{}

func (unsetConverter) Convert(v any, _ reflect.Type, _ any) any {
	return binding.Unset
}

func (unsetConverter) ConvertBack(v any, _ reflect.Type, _ any) any {
	return v
}

func TestFallbackPrecedence(t *testing.T) {
	p := &person{Age: 21}
	rec := &recorder{}
	ex := binding.New(p, binding.NewPropertyNode("Age")).
		SetConverter(unsetConverter{}).
		SetFallbackValue("N/A")
	require.NoError(t, ex.Subscribe(rec.observe))
	assert.Equal(t, []any{"N/A"}, rec.values)
}

func TestUnsetWithoutFallback(t *testing.T) {
	p := &person{Age: 21}
	rec := &recorder{}
	ex := binding.New(p, binding.NewPropertyNode("Age")).SetConverter(unsetConverter{})
	require.NoError(t, ex.Subscribe(rec.observe))
	assert.Equal(t, []any{binding.Unset}, rec.values)
}

func TestStringFormat(t *testing.T) {
	p := &person{Score: 3.14159}
	rec := &recorder{}
	ex := binding.New(p, binding.NewPropertyNode("Score")).SetStringFormat("{0:F2}")
	require.NoError(t, ex.Subscribe(rec.observe))
	assert.Equal(t, []any{"3.14"}, rec.values)
}

func TestStringFormatBare(t *testing.T) {
	p := &person{Score: 3.14159}
	rec := &recorder{}
	ex := binding.New(p, binding.NewPropertyNode("Score")).SetStringFormat("F2")
	require.NoError(t, ex.Subscribe(rec.observe))
	assert.Equal(t, []any{"3.14"}, rec.values)
}

func TestTargetNullSkipsFormat(t *testing.T) {
	p := &person{} // Addr is nil
	rec := &recorder{}
	ex := binding.New(p, binding.NewPropertyNode("Addr")).
		SetStringFormat("{0:F2}").
		SetTargetNullValue(7)
	require.NoError(t, ex.Subscribe(rec.observe))
	// the substituted value is published unformatted
	assert.Equal(t, []any{7}, rec.values)
}

func TestStringFormatNilValue(t *testing.T) {
	p := &person{} // Addr is nil, no null substitution configured
	rec := &recorder{}
	ex := binding.New(p, binding.NewPropertyNode("Addr")).SetStringFormat("{0:F2}")
	require.NoError(t, ex.Subscribe(rec.observe))
	assert.Equal(t, []any{""}, rec.values)
}

func TestStringFormatSkippedForNonStringTarget(t *testing.T) {
	p := &person{Score: 3.5}
	rec := &recorder{}
	ex := binding.New(p, binding.NewPropertyNode("Score")).
		SetStringFormat("{0:F2}").
		SetTargetType(reflect.TypeOf(0.0))
	require.NoError(t, ex.Subscribe(rec.observe))
	assert.Equal(t, []any{3.5}, rec.values)
}

func TestTargetType(t *testing.T) {
	p := &person{Name: "42"}
	rec := &recorder{}
	ex := binding.New(p, binding.NewPropertyNode("Name")).
		SetTargetType(reflect.TypeOf(0))
	require.NoError(t, ex.Subscribe(rec.observe))
	assert.Equal(t, []any{42}, rec.values)
}

func TestTargetTypeFailure(t *testing.T) {
	p := &person{Name: "not a number"}
	rec := &recorder{}
	ex := binding.New(p, binding.NewPropertyNode("Name")).
		SetTargetType(reflect.TypeOf(0)).
		SetFallbackValue(-1)
	require.NoError(t, ex.Subscribe(rec.observe))

	n, ok := rec.last().(*binding.Notification)
	require.True(t, ok)
	assert.Equal(t, binding.BindingError, n.Kind)
	assert.True(t, n.HasValue)
	assert.Equal(t, -1, n.Value)
}

func TestModePriorityCarried(t *testing.T) {
	ex := binding.New(nil).SetMode(binding.ModeTwoWay).SetPriority(binding.PriorityStyle)
	assert.Equal(t, binding.ModeTwoWay, ex.Mode())
	assert.Equal(t, binding.PriorityStyle, ex.Priority())
	assert.Equal(t, "TwoWay", ex.Mode().String())
	assert.Equal(t, "Style", ex.Priority().String())
}
