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

package expr

import (
	"math/big"

	"github.com/gx-org/apint/build/shape"
	"github.com/gx-org/apint/interp/pattern"
)

// Constant is a leaf holding a bit pattern.
type Constant struct {
	val pattern.Pattern
}

var _ Node = (*Constant)(nil)

// NewConstant returns a constant expression given its bit pattern.
func NewConstant(val pattern.Pattern) *Constant {
	return &Constant{val: val}
}

// Const returns a constant of a given shape representing v.
// An error is returned if the shape cannot represent v.
func Const(s shape.Shape, v int64) (*Constant, error) {
	val, err := pattern.FromInt(s, big.NewInt(v))
	if err != nil {
		return nil, err
	}
	return NewConstant(val), nil
}

// Shape of the constant.
func (c *Constant) Shape() shape.Shape {
	return c.val.Shape()
}

// Compute returns the pattern of the constant.
func (c *Constant) Compute() pattern.Pattern {
	return c.val
}

// Label of the constant.
func (c *Constant) Label() string {
	return c.val.String()
}

// Operands returns nil: a constant is a leaf.
func (c *Constant) Operands() []Expr {
	return nil
}

// Apply returns the pattern of the constant.
func (c *Constant) Apply([]pattern.Pattern) pattern.Pattern {
	return c.val
}

// String representation of the constant.
func (c *Constant) String() string {
	return c.val.String()
}
