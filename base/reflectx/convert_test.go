// Copyright (c) 2026, The Corebind Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reflectx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsNil(t *testing.T) {
	assert.True(t, IsNil(nil))
	var p *int
	assert.True(t, IsNil(p))
	var m map[string]int
	assert.True(t, IsNil(m))
	assert.False(t, IsNil(0))
	assert.False(t, IsNil(""))
	i := 3
	assert.False(t, IsNil(&i))
}

func TestToBool(t *testing.T) {
	b, err := ToBool(true)
	assert.NoError(t, err)
	assert.True(t, b)

	b, err = ToBool(1)
	assert.NoError(t, err)
	assert.True(t, b)

	b, err = ToBool(0.0)
	assert.NoError(t, err)
	assert.False(t, b)

	b, err = ToBool("true")
	assert.NoError(t, err)
	assert.True(t, b)

	_, err = ToBool("yes")
	assert.Error(t, err)

	_, err = ToBool(nil)
	assert.Error(t, err)

	_, err = ToBool(struct{}{})
	assert.Error(t, err)
}

func TestToInt(t *testing.T) {
	i, err := ToInt("0x10")
	assert.NoError(t, err)
	assert.Equal(t, int64(16), i)

	i, err = ToInt(3.7)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), i)

	i, err = ToInt(true)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), i)

	_, err = ToInt("three")
	assert.Error(t, err)
}

func TestToFloat(t *testing.T) {
	f, err := ToFloat("3.14")
	assert.NoError(t, err)
	assert.Equal(t, 3.14, f)

	f, err = ToFloat(float32(2))
	assert.NoError(t, err)
	assert.Equal(t, 2.0, f)

	_, err = ToFloat([]int{1})
	assert.Error(t, err)
}

func TestToString(t *testing.T) {
	assert.Equal(t, "42", ToString(42))
	assert.Equal(t, "true", ToString(true))
	assert.Equal(t, "hi", ToString("hi"))
	assert.Equal(t, "nil", ToString(nil))
	assert.Equal(t, "bytes", ToString([]byte("bytes")))
}

type inner struct {
	A int
	B string
}

type outer struct {
	A int
	B string
}

func TestSetRobust(t *testing.T) {
	var i int
	require.NoError(t, SetRobust(&i, "42"))
	assert.Equal(t, 42, i)

	var s string
	require.NoError(t, SetRobust(&s, 3.5))
	assert.Equal(t, "3.5", s)

	var b bool
	require.NoError(t, SetRobust(&b, "true"))
	assert.True(t, b)

	var f float32
	require.NoError(t, SetRobust(&f, 1))
	assert.Equal(t, float32(1), f)

	assert.Error(t, SetRobust(&i, "not a number"))
	assert.Error(t, SetRobust(nil, 1))
}

func TestSetRobustStruct(t *testing.T) {
	src := inner{A: 1, B: "x"}
	var dst outer
	require.NoError(t, SetRobust(&dst, src))
	assert.Equal(t, outer{A: 1, B: "x"}, dst)
}

func TestSetRobustZero(t *testing.T) {
	dst := inner{A: 1, B: "x"}
	require.NoError(t, SetRobust(&dst, nil))
	assert.Equal(t, inner{}, dst)
}
