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
	"go/token"

	"github.com/gx-org/apint/build/fmterr"
	"github.com/gx-org/apint/build/shape"
	"github.com/gx-org/apint/interp/pattern"
)

// BitwiseExpr applies a bitwise operator to two operands of the same width.
// The result is unsigned.
type BitwiseExpr struct {
	node
	// Op is one of token.AND, token.OR, or token.XOR.
	Op token.Token
}

var _ Node = (*BitwiseExpr)(nil)

var bitwiseLabels = map[token.Token]string{
	token.AND: "and",
	token.OR:  "or",
	token.XOR: "xor",
}

func bitwise(op token.Token, x, y Expr) (*BitwiseExpr, error) {
	label := bitwiseLabels[op]
	if label == "" {
		return nil, fmterr.Internalf("%s is not a bitwise operator", op)
	}
	if err := checkShape(label, x); err != nil {
		return nil, err
	}
	if err := checkShape(label, y); err != nil {
		return nil, err
	}
	xWidth, yWidth := x.Shape().Width, y.Shape().Width
	if xWidth != yWidth {
		return nil, fmterr.Errorf(fmterr.WidthMismatch, label, "%s has %d bits but %s has %d bits", String(x), xWidth, String(y), yWidth)
	}
	return &BitwiseExpr{
		node: node{
			shp:      shape.Unsigned(xWidth),
			operands: []Expr{x, y},
		},
		Op: op,
	}, nil
}

// And returns the bitwise and of x and y.
func And(x, y Expr) (*BitwiseExpr, error) {
	return bitwise(token.AND, x, y)
}

// Or returns the bitwise or of x and y.
func Or(x, y Expr) (*BitwiseExpr, error) {
	return bitwise(token.OR, x, y)
}

// Xor returns the bitwise xor of x and y.
func Xor(x, y Expr) (*BitwiseExpr, error) {
	return bitwise(token.XOR, x, y)
}

// Compute the expression.
func (x *BitwiseExpr) Compute() pattern.Pattern {
	return compute(x)
}

// Label of the node.
func (x *BitwiseExpr) Label() string {
	return bitwiseLabels[x.Op]
}

// Apply the operator to the patterns of the operands.
func (x *BitwiseExpr) Apply(operands []pattern.Pattern) pattern.Pattern {
	switch x.Op {
	case token.AND:
		return pattern.And(x.shp, operands[0], operands[1])
	case token.OR:
		return pattern.Or(x.shp, operands[0], operands[1])
	default:
		return pattern.Xor(x.shp, operands[0], operands[1])
	}
}

// String representation of the expression.
func (x *BitwiseExpr) String() string {
	return nodeString(x)
}

// NotExpr complements all the bits of its operand.
// The result is unsigned.
type NotExpr struct {
	node
}

var _ Node = (*NotExpr)(nil)

// Not returns the bitwise complement of x.
func Not(x Expr) (*NotExpr, error) {
	if err := checkShape("not", x); err != nil {
		return nil, err
	}
	return &NotExpr{node: node{
		shp:      shape.Unsigned(x.Shape().Width),
		operands: []Expr{x},
	}}, nil
}

// Compute the expression.
func (x *NotExpr) Compute() pattern.Pattern {
	return compute(x)
}

// Label of the node.
func (x *NotExpr) Label() string {
	return "not"
}

// Apply the operator to the pattern of the operand.
func (x *NotExpr) Apply(operands []pattern.Pattern) pattern.Pattern {
	return pattern.Not(x.shp, operands[0])
}

// String representation of the expression.
func (x *NotExpr) String() string {
	return nodeString(x)
}
