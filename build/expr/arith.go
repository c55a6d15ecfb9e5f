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
	"math"

	"github.com/gx-org/apint/build/fmterr"
	"github.com/gx-org/apint/build/shape"
	"github.com/gx-org/apint/interp/pattern"
)

var arithLabels = map[token.Token]string{
	token.ADD: "add",
	token.SUB: "sub",
	token.MUL: "mul",
	token.QUO: "div",
	token.REM: "mod",
}

// ArithExpr adds, subtracts, or multiplies two operands.
// The shape of the result is large enough to hold the exact result,
// except for the product of two 1-bit operands and of a 1-bit operand with an
// operand of the same signedness (see shape.Prop).
type ArithExpr struct {
	node
	// Op is one of token.ADD, token.SUB, or token.MUL.
	Op token.Token
}

var _ Node = (*ArithExpr)(nil)

func checkBinary(op string, x, y Expr) error {
	if err := checkShape(op, x); err != nil {
		return err
	}
	return checkShape(op, y)
}

func arith(op token.Token, x, y Expr) (*ArithExpr, error) {
	label := arithLabels[op]
	if err := checkBinary(label, x, y); err != nil {
		return nil, err
	}
	prop := shape.Arith(x.Shape(), y.Shape())
	var shp shape.Shape
	switch op {
	case token.ADD, token.SUB:
		if max(x.Shape().Width, y.Shape().Width) == math.MaxUint32 {
			return nil, fmterr.Errorf(fmterr.WidthOverflow, label, "%s %s %s exceeds %d bits", String(x), op, String(y), uint32(math.MaxUint32))
		}
		shp = prop.Sum()
	case token.MUL:
		if uint64(x.Shape().Width)+uint64(y.Shape().Width) > math.MaxUint32 {
			return nil, fmterr.Errorf(fmterr.WidthOverflow, label, "%s %s %s exceeds %d bits", String(x), op, String(y), uint32(math.MaxUint32))
		}
		shp = prop.Prod()
	default:
		return nil, fmterr.Internalf("%s is not an arithmetic operator", op)
	}
	return &ArithExpr{
		node: node{
			shp:      shp,
			operands: []Expr{x, y},
		},
		Op: op,
	}, nil
}

// Add returns x+y.
func Add(x, y Expr) (*ArithExpr, error) {
	return arith(token.ADD, x, y)
}

// Sub returns x-y.
func Sub(x, y Expr) (*ArithExpr, error) {
	return arith(token.SUB, x, y)
}

// Mul returns x*y.
func Mul(x, y Expr) (*ArithExpr, error) {
	return arith(token.MUL, x, y)
}

// Compute the expression.
func (x *ArithExpr) Compute() pattern.Pattern {
	return compute(x)
}

// Label of the node.
func (x *ArithExpr) Label() string {
	return arithLabels[x.Op]
}

// Apply the operator to the patterns of the operands.
func (x *ArithExpr) Apply(operands []pattern.Pattern) pattern.Pattern {
	switch x.Op {
	case token.ADD:
		return pattern.Add(x.shp, operands[0], operands[1])
	case token.SUB:
		return pattern.Sub(x.shp, operands[0], operands[1])
	default:
		return pattern.Mul(x.shp, operands[0], operands[1])
	}
}

// String representation of the expression.
func (x *ArithExpr) String() string {
	return nodeString(x)
}

// QuoExpr divides two operands or computes the remainder of their division.
// Both operands are first converted to a common shape (see shape.DivOperands)
// and the division truncates toward zero.
//
// The result of a division by zero is undefined: computing the expression
// panics with an error for the rule fmterr.DivisionByZero. Use Eval to get
// the error instead.
type QuoExpr struct {
	node
	// Op is either token.QUO or token.REM.
	Op token.Token
	// X and Y are the dividend and the divisor before conversion.
	X, Y Expr
}

var _ Node = (*QuoExpr)(nil)

func quo(op token.Token, x, y Expr) (*QuoExpr, error) {
	label := arithLabels[op]
	if err := checkBinary(label, x, y); err != nil {
		return nil, err
	}
	xShape, yShape := x.Shape(), y.Shape()
	common := shape.DivOperands(xShape, yShape)
	if common.Width < max(xShape.Width, yShape.Width) {
		return nil, fmterr.Errorf(fmterr.WidthOverflow, label, "%s %s %s exceeds %d bits", String(x), op, String(y), uint32(math.MaxUint32))
	}
	xAdapted, err := OversetAdaptor.Adapt(common, x)
	if err != nil {
		return nil, fmterr.PrefixWith("%s: dividend: ", label)(err)
	}
	yAdapted, err := OversetAdaptor.Adapt(common, y)
	if err != nil {
		return nil, fmterr.PrefixWith("%s: divisor: ", label)(err)
	}
	prop := shape.Arith(xShape, yShape)
	shp := prop.Div()
	if op == token.REM {
		shp = prop.Mod()
	}
	return &QuoExpr{
		node: node{
			shp:      shp,
			operands: []Expr{xAdapted, yAdapted},
		},
		Op: op,
		X:  x,
		Y:  y,
	}, nil
}

// Div returns x/y truncated toward zero.
func Div(x, y Expr) (*QuoExpr, error) {
	return quo(token.QUO, x, y)
}

// Mod returns the remainder of x/y. The remainder has the sign of x.
func Mod(x, y Expr) (*QuoExpr, error) {
	return quo(token.REM, x, y)
}

// Compute the expression.
func (x *QuoExpr) Compute() pattern.Pattern {
	return compute(x)
}

// Label of the node.
func (x *QuoExpr) Label() string {
	return arithLabels[x.Op]
}

// Apply the operator to the patterns of the converted operands.
func (x *QuoExpr) Apply(operands []pattern.Pattern) pattern.Pattern {
	if operands[1].IsZero() {
		panic(fmterr.Errorf(fmterr.DivisionByZero, x.Label(), "%s %s %s", operands[0], x.Op, operands[1]))
	}
	if x.Op == token.QUO {
		return pattern.Quo(x.shp, operands[0], operands[1])
	}
	return pattern.Rem(x.shp, operands[0], operands[1])
}

// String representation of the expression.
func (x *QuoExpr) String() string {
	return arithLabels[x.Op] + "(" + String(x.X) + ", " + String(x.Y) + ")"
}
