// Copyright (c) 2026, The Corebind Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLog(t *testing.T) {
	err := New("test error")
	assert.Equal(t, err, Log(err))
	assert.NoError(t, Log(nil))
}

func TestLog1(t *testing.T) {
	assert.Equal(t, 3, Log1(3, New("test error")))
	assert.Equal(t, "x", Log1("x", nil))
}

func TestMust(t *testing.T) {
	assert.NotPanics(t, func() { Must(nil) })
	assert.Panics(t, func() { Must(New("test error")) })
	assert.Equal(t, 5, Must1(5, nil))
}

func TestIgnore1(t *testing.T) {
	assert.Equal(t, 1, Ignore1(1, New("ignored")))
}

func TestIsJoin(t *testing.T) {
	a := New("a")
	b := New("b")
	j := Join(a, b)
	assert.True(t, Is(j, a))
	assert.True(t, Is(j, b))
	assert.False(t, Is(j, New("c")))
	w := fmt.Errorf("wrap: %w", a)
	assert.Equal(t, a, Unwrap(w))
}

func TestCallerInfo(t *testing.T) {
	assert.Contains(t, CallerInfo(), "errors_test.go")
}
