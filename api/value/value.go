// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package value implements values: expressions forced to a declared shape and
// materialized into a bit pattern.
package value

import (
	"math/big"

	"github.com/gx-org/apint/build/expr"
	"github.com/gx-org/apint/build/fmterr"
	"github.com/gx-org/apint/build/shape"
	"github.com/gx-org/apint/interp/pattern"
	"golang.org/x/exp/constraints"
)

type (
	// Option configures the construction of a value.
	Option func(*options)

	options struct {
		adaptor expr.Adaptor
	}

	// Value is a bit pattern of a declared shape.
	// A value only stores its pattern and not the expression it was built from.
	Value struct {
		val pattern.Pattern
	}
)

var _ expr.Node = (*Value)(nil)

// WithAdaptor sets the adaptor converting the source expression to the shape of the value.
func WithAdaptor(a expr.Adaptor) Option {
	return func(opts *options) {
		opts.adaptor = a
	}
}

// WithPolicies sets the policies of the adaptor converting the source expression
// to the shape of the value.
func WithPolicies(ext expr.ExtendPolicy, trunc expr.TruncatePolicy, sign expr.SignPolicy) Option {
	return WithAdaptor(expr.Adaptor{Extend: ext, Truncate: trunc, Sign: sign})
}

func newOptions(opts []Option) *options {
	o := &options{adaptor: expr.DefaultAdaptor}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// New adapts src to a shape, computes it, and returns its value.
// By default, src is sign-extended, truncated, or its sign reinterpreted.
func New(s shape.Shape, src expr.Expr, opts ...Option) (*Value, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, fmterr.Errorf(fmterr.InvalidShape, "value", "nil source expression")
	}
	adapted, err := newOptions(opts).adaptor.Adapt(s, src)
	if err != nil {
		return nil, fmterr.PrefixWith("%s value from %s: ", s, expr.String(src))(err)
	}
	val, err := expr.Eval(adapted)
	if err != nil {
		return nil, err
	}
	return &Value{val: val}, nil
}

// FromNative returns a value of a given shape from a Go integer.
func FromNative[T constraints.Integer](s shape.Shape, v T, opts ...Option) (*Value, error) {
	return New(s, expr.Lift(v), opts...)
}

// FromPattern returns a value holding a bit pattern.
func FromPattern(p pattern.Pattern) (*Value, error) {
	if err := p.Shape().Validate(); err != nil {
		return nil, err
	}
	return &Value{val: p}, nil
}

// FromRaw returns a value given its bits.
func FromRaw(s shape.Shape, bits *big.Int) (*Value, error) {
	p, err := pattern.FromRaw(s, bits)
	if err != nil {
		return nil, err
	}
	return &Value{val: p}, nil
}

// As converts an expression to a Go integer.
// By default, src is sign-extended, truncated, or its sign reinterpreted
// to fit the shape of the Go type.
func As[T constraints.Integer](src expr.Expr, opts ...Option) (T, error) {
	return expr.ToNative[T](newOptions(opts).adaptor, src)
}

// Shape of the value.
func (v *Value) Shape() shape.Shape {
	return v.val.Shape()
}

// Compute returns the pattern of the value.
func (v *Value) Compute() pattern.Pattern {
	return v.val
}

// Pattern returns the pattern of the value.
func (v *Value) Pattern() pattern.Pattern {
	return v.val
}

// Int returns the integer represented by the value.
func (v *Value) Int() *big.Int {
	return v.val.Int()
}

// Label of the value.
func (v *Value) Label() string {
	return v.val.String()
}

// Operands returns nil: a value is a leaf.
func (v *Value) Operands() []expr.Expr {
	return nil
}

// Apply returns the pattern of the value.
func (v *Value) Apply([]pattern.Pattern) pattern.Pattern {
	return v.val
}

// String representation of the value.
func (v *Value) String() string {
	return v.val.String()
}
