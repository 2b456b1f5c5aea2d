// Copyright (c) 2026, The Corebind Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package binding

import (
	"fmt"

	"github.com/corebind/corebind/base/reflectx"
	"github.com/corebind/corebind/events"
)

// IndexerNode reads, and optionally writes, one element of a slice,
// array, or map source. The index or key is fixed at construction.
type IndexerNode struct {
	NodeBase
	key any
	acc reflectx.Accessor
}

// NewIndexerNode returns a node reading the given index or key, using
// the given resolution strategy, or [reflectx.DefaultResolver] if none.
func NewIndexerNode(key any, resolver ...reflectx.Resolver) *IndexerNode {
	res := reflectx.DefaultResolver
	if len(resolver) > 0 {
		res = resolver[0]
	}
	in := &IndexerNode{key: key, acc: res.Index(key)}
	in.init(in)
	return in
}

func (in *IndexerNode) OnSourceChanged(source any) {
	if n, ok := source.(events.Notifier); ok {
		n.AddListener(in)
	}
	in.compute(source)
}

func (in *IndexerNode) Unsubscribe(source any) {
	if n, ok := source.(events.Notifier); ok {
		n.RemoveListener(in)
	}
}

// Changed implements [events.Listener]. Collections notify with the
// changed element's index or key as the member name; an empty name
// means the contents changed wholesale.
func (in *IndexerNode) Changed(name string) {
	if name != "" && name != reflectx.ToString(in.key) {
		return
	}
	if src, ok := in.Source(); ok && src != nil {
		in.compute(src)
	}
}

func (in *IndexerNode) compute(source any) {
	v, err := in.acc.Get(source)
	if err != nil {
		in.Error(err)
		return
	}
	in.SetValue(v)
}

// WriteToSource implements [Settable] for slice and map sources.
func (in *IndexerNode) WriteToSource(value any, nodes []Node) bool {
	src, ok := in.Source()
	if !ok || src == nil {
		return false
	}
	return in.acc.Set(src, value) == nil
}

func (in *IndexerNode) String() string { return fmt.Sprintf("[%v]", in.key) }
