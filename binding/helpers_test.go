// Copyright (c) 2026, The Corebind Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package binding_test

import (
	"github.com/corebind/corebind/events"
)

type address struct {
	events.Notifiers
	Street string
}

func (a *address) SetStreet(s string) {
	a.Street = s
	a.Notify("Street")
}

type person struct {
	events.Notifiers
	Name         string
	Age          int
	Score        float64
	Flag         bool
	Addr         *address
	memberErrors map[string]error
}

func (p *person) SetName(n string) {
	p.Name = n
	p.Notify("Name")
}

func (p *person) SetAge(a int) {
	p.Age = a
	p.Notify("Age")
}

func (p *person) SetFlag(f bool) {
	p.Flag = f
	p.Notify("Flag")
}

func (p *person) SetAddr(a *address) {
	p.Addr = a
	p.Notify("Addr")
}

func (p *person) ValidateMember(name string) error {
	return p.memberErrors[name]
}

type company struct {
	events.Notifiers
	Boss *person
}

func (c *company) SetBoss(b *person) {
	c.Boss = b
	c.Notify("Boss")
}

// recorder is a single observer collecting everything published to it.
type recorder struct {
	values []any
}

func (r *recorder) observe(v any) {
	r.values = append(r.values, v)
}

func (r *recorder) last() any {
	if len(r.values) == 0 {
		return nil
	}
	return r.values[len(r.values)-1]
}
