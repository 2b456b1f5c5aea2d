// Copyright (c) 2026, The Corebind Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package binding

// Mode is the direction of a binding declaration. The expression core
// only carries it; the external property system decides when to start
// the pipeline and when to call [Expression.SetValue].
type Mode int32

const (
	// ModeDefault defers to the target property's preferred mode.
	ModeDefault Mode = iota

	// ModeOneTime reads the source once when the pipeline starts.
	ModeOneTime

	// ModeOneWay pushes source changes to the target.
	ModeOneWay

	// ModeTwoWay pushes source changes to the target and target
	// changes back to the source.
	ModeTwoWay

	// ModeOneWayToSource only pushes target changes back to the source.
	ModeOneWayToSource
)

func (m Mode) String() string {
	switch m {
	case ModeDefault:
		return "Default"
	case ModeOneTime:
		return "OneTime"
	case ModeOneWay:
		return "OneWay"
	case ModeTwoWay:
		return "TwoWay"
	case ModeOneWayToSource:
		return "OneWayToSource"
	}
	return "Mode(?)"
}

// Priority ranks a binding declaration against other value sources for
// the same target property. Like [Mode], the core only carries it.
type Priority int32

const (
	// PriorityLocalValue is a value set directly on the target.
	PriorityLocalValue Priority = iota

	// PriorityStyleTrigger is a value from an active style trigger.
	PriorityStyleTrigger

	// PriorityTemplatedParent is a value from a control template.
	PriorityTemplatedParent

	// PriorityStyle is a value from a style setter.
	PriorityStyle
)

func (p Priority) String() string {
	switch p {
	case PriorityLocalValue:
		return "LocalValue"
	case PriorityStyleTrigger:
		return "StyleTrigger"
	case PriorityTemplatedParent:
		return "TemplatedParent"
	case PriorityStyle:
		return "Style"
	}
	return "Priority(?)"
}
