// Copyright (c) 2026, The Corebind Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package binding

import (
	"fmt"
	"strconv"

	"github.com/corebind/corebind/base/reflectx"
)

// NotNode is a transparent unary node computing the boolean negation
// of its source, treating the source value itself, not a member of it,
// as the operand. Writing through it negates the incoming value and
// forwards the write to the previous node in the chain.
type NotNode struct {
	NodeBase
}

// NewNotNode returns a logical-not node.
func NewNotNode() *NotNode {
	nn := &NotNode{}
	nn.init(nn)
	return nn
}

func (nn *NotNode) OnSourceChanged(source any) {
	b, err := notOperand(source)
	if err != nil {
		nn.Error(err)
		return
	}
	nn.SetValue(!b)
}

// WriteToSource implements [Settable]: the incoming value is negated
// and the write is forwarded to the previous node.
func (nn *NotNode) WriteToSource(value any, nodes []Node) bool {
	b, err := notOperand(value)
	if err != nil {
		return false
	}
	i := nn.Index()
	if i == 0 {
		return false
	}
	prev, ok := nodes[i-1].(Settable)
	if !ok {
		return false
	}
	return prev.WriteToSource(!b, nodes)
}

func (nn *NotNode) String() string { return "!" }

// notOperand coerces a value to bool under the negation policy:
// bool passes through, string uses a strict boolean parse rather than
// general conversion, and anything else falls back on general
// conversion, with failure reported as "cannot convert" rather than
// propagated.
func notOperand(v any) (bool, error) {
	switch v := v.(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, fmt.Errorf("binding: cannot convert %q to bool", v)
		}
		return b, nil
	}
	b, err := reflectx.ToBool(v)
	if err != nil {
		return false, fmt.Errorf("binding: cannot convert %v to bool", v)
	}
	return b, nil
}
