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
	"fmt"

	"github.com/gx-org/apint/build/fmterr"
	"github.com/gx-org/apint/build/shape"
	"github.com/gx-org/apint/interp/pattern"
)

// ReinterpretExpr interprets the bits of its operand with the opposite signedness.
type ReinterpretExpr struct {
	node
}

var _ Node = (*ReinterpretExpr)(nil)

// Reinterpret returns the bits of x interpreted with the given signedness.
// The signedness has to be different from the signedness of x.
func Reinterpret(signed bool, x Expr) (*ReinterpretExpr, error) {
	const op = "reinterpret"
	if err := checkShape(op, x); err != nil {
		return nil, err
	}
	src := x.Shape()
	if src.Signed == signed {
		return nil, fmterr.Errorf(fmterr.UselessReinterpret, op, "%s is already %s", String(x), signName(signed))
	}
	return &ReinterpretExpr{node: node{
		shp:      src.WithSign(signed),
		operands: []Expr{x},
	}}, nil
}

func signName(signed bool) string {
	if signed {
		return "signed"
	}
	return "unsigned"
}

// Compute the expression.
func (x *ReinterpretExpr) Compute() pattern.Pattern {
	return compute(x)
}

// Label of the node.
func (x *ReinterpretExpr) Label() string {
	return "as_" + signName(x.shp.Signed)
}

// Apply the operator to the pattern of the operand.
func (x *ReinterpretExpr) Apply(operands []pattern.Pattern) pattern.Pattern {
	return pattern.Reinterpret(x.shp, operands[0])
}

// String representation of the expression.
func (x *ReinterpretExpr) String() string {
	return nodeString(x)
}

// ExtendExpr widens its operand. The signedness of the operand is preserved.
type ExtendExpr struct {
	node
	// Sign is true if the high bits are filled with the sign bit of the operand,
	// false if they are filled with zeros.
	Sign bool
}

var _ Node = (*ExtendExpr)(nil)

func extend(op string, sign bool, width uint32, x Expr) (*ExtendExpr, error) {
	if err := checkShape(op, x); err != nil {
		return nil, err
	}
	src := x.Shape()
	if width <= src.Width {
		return nil, fmterr.Errorf(fmterr.ExtensionWidth, op, "cannot extend %s to %d bits", String(x), width)
	}
	return &ExtendExpr{
		node: node{
			shp:      shape.Of(width, src.Signed),
			operands: []Expr{x},
		},
		Sign: sign,
	}, nil
}

// ZeroExtend pads x with zeros up to a width greater than the width of x.
func ZeroExtend(width uint32, x Expr) (*ExtendExpr, error) {
	return extend("zext", false, width, x)
}

// SignExtend pads x with its sign bit up to a width greater than the width of x.
// Unsigned expressions are padded with zeros.
func SignExtend(width uint32, x Expr) (*ExtendExpr, error) {
	return extend("sext", true, width, x)
}

// Compute the expression.
func (x *ExtendExpr) Compute() pattern.Pattern {
	return compute(x)
}

// Label of the node.
func (x *ExtendExpr) Label() string {
	op := "zext"
	if x.Sign {
		op = "sext"
	}
	return fmt.Sprintf("%s[%d]", op, x.shp.Width)
}

// Apply the operator to the pattern of the operand.
func (x *ExtendExpr) Apply(operands []pattern.Pattern) pattern.Pattern {
	if x.Sign {
		return pattern.Convert(x.shp, operands[0])
	}
	return pattern.Reinterpret(x.shp, operands[0])
}

// String representation of the expression.
func (x *ExtendExpr) String() string {
	return nodeString(x)
}
