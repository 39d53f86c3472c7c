// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ops

import (
	"fmt"

	"numpyviz.dev/npviz/value"
)

// Kernel computes an operation from its materialized positional and
// keyword arguments. It reports failure by panicking with a value.Error.
type Kernel func(args []value.Value, kwargs []value.Kwarg) value.Value

// Def describes one operation.
type Def struct {
	Op     Op
	Kernel Kernel
	Family Family // NoFamily if no renderer can draw it.
	// Varargs is set if a fluent call such as x.reshape(2, 3) gathers
	// its positional arguments after the receiver into one tuple.
	Varargs bool
}

// Name returns the canonical name of the operation.
func (d *Def) Name() string {
	return d.Op.String()
}

// Registry maps operations to their definitions. A Registry is never
// modified once built, so it may be shared.
type Registry struct {
	defs [numOps]*Def
}

// NewRegistry validates the definitions and returns a registry holding
// them. Every definition must name a real operation and carry a kernel,
// and no operation may be defined twice.
func NewRegistry(defs []Def) (*Registry, error) {
	r := &Registry{}
	for i := range defs {
		d := defs[i]
		switch {
		case d.Op <= Array || d.Op >= numOps:
			return nil, fmt.Errorf("ops: definition %d: %s is not an operation", i, d.Op)
		case d.Kernel == nil:
			return nil, fmt.Errorf("ops: %s has no kernel", d.Op)
		case r.defs[d.Op] != nil:
			return nil, fmt.Errorf("ops: %s defined twice", d.Op)
		}
		r.defs[d.Op] = &d
	}
	return r, nil
}

var standard *Registry

func init() {
	r, err := NewRegistry(standardDefs())
	if err != nil {
		panic(err)
	}
	for _, op := range All() {
		if r.defs[op] == nil {
			panic(fmt.Sprintf("ops: %s has no definition", op))
		}
	}
	standard = r
}

// Standard returns the registry covering the whole vocabulary.
func Standard() *Registry {
	return standard
}

// Lookup returns the operation with the name, if the registry defines it.
func (r *Registry) Lookup(name string) (Op, bool) {
	op, ok := Parse(name)
	if !ok || r.defs[op] == nil {
		return Invalid, false
	}
	return op, true
}

// Def returns the definition of the operation. It is an error to ask for
// an operation the registry does not define.
func (r *Registry) Def(op Op) (*Def, error) {
	if op <= Array || op >= numOps || r.defs[op] == nil {
		return nil, fmt.Errorf("unsupported operation: %s", op)
	}
	return r.defs[op], nil
}

// With returns a copy of the registry in which the operation is computed
// by the kernel.
func (r *Registry) With(op Op, kernel Kernel) *Registry {
	c := *r
	d := Def{Op: op, Kernel: kernel}
	if old := r.defs[op]; old != nil {
		d = *old
		d.Kernel = kernel
	}
	c.defs[op] = &d
	return &c
}

// Without returns a copy of the registry that does not define the operation.
func (r *Registry) Without(op Op) *Registry {
	c := *r
	c.defs[op] = nil
	return &c
}
