// Copyright (c) 2026, The Corebind Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package events defines the change-notification contract between
// binding sources and the binding engine. A source object that wants
// live updates implements [Notifier], typically by embedding
// [Notifiers]; sources that do not are read once and never update.
package events

// Listener receives change notifications from a source object.
type Listener interface {

	// Changed is called with the name of the member that changed.
	// An empty name means anything may have changed.
	Changed(name string)
}

// Notifier is implemented by source objects that publish change
// notifications. The engine subscribes one [Listener] per binding
// node reading from the object.
type Notifier interface {

	// AddListener registers the given listener to receive change
	// notifications from this object.
	AddListener(l Listener)

	// RemoveListener removes a previously registered listener.
	// It does nothing if the listener is not registered.
	RemoveListener(l Listener)
}

// Notifiers is an embeddable implementation of [Notifier].
// Objects embedding it call [Notifiers.Notify] after mutating a member.
type Notifiers struct {
	listeners []Listener
}

// AddListener registers the given listener.
func (ns *Notifiers) AddListener(l Listener) {
	ns.listeners = append(ns.listeners, l)
}

// RemoveListener removes the given listener, by identity.
func (ns *Notifiers) RemoveListener(l Listener) {
	for i, el := range ns.listeners {
		if el == l {
			ns.listeners = append(ns.listeners[:i], ns.listeners[i+1:]...)
			return
		}
	}
}

// Notify calls every registered listener with the given member name.
// Listeners are called in reverse order, so the last listener added
// is the first called. Listeners registered or removed during the
// call do not affect the current fan-out.
func (ns *Notifiers) Notify(name string) {
	n := len(ns.listeners)
	if n == 0 {
		return
	}
	ls := make([]Listener, n)
	copy(ls, ns.listeners)
	for i := n - 1; i >= 0; i-- {
		ls[i].Changed(name)
	}
}
