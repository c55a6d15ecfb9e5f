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

	"github.com/gx-org/apint/interp/pattern"
)

// ShiftExpr shifts its first operand by the number of bits given by its second operand.
// The result has the shape of the shifted operand. The amount is read as an unsigned
// integer. Signed operands are shifted right arithmetically.
// Shifting by the width of the operand or more leaves only the fill bits.
type ShiftExpr struct {
	node
	// Op is either token.SHL or token.SHR.
	Op token.Token
}

var _ Node = (*ShiftExpr)(nil)

func shift(op token.Token, x, amount Expr) (*ShiftExpr, error) {
	label := "shl"
	if op == token.SHR {
		label = "shr"
	}
	if err := checkBinary(label, x, amount); err != nil {
		return nil, err
	}
	return &ShiftExpr{
		node: node{
			shp:      x.Shape(),
			operands: []Expr{x, amount},
		},
		Op: op,
	}, nil
}

// Shl returns x shifted to the left by amount bits.
func Shl(x, amount Expr) (*ShiftExpr, error) {
	return shift(token.SHL, x, amount)
}

// Shr returns x shifted to the right by amount bits.
func Shr(x, amount Expr) (*ShiftExpr, error) {
	return shift(token.SHR, x, amount)
}

// Compute the expression.
func (x *ShiftExpr) Compute() pattern.Pattern {
	return compute(x)
}

// Label of the node.
func (x *ShiftExpr) Label() string {
	if x.Op == token.SHL {
		return "shl"
	}
	return "shr"
}

// Apply the operator to the patterns of the operands.
func (x *ShiftExpr) Apply(operands []pattern.Pattern) pattern.Pattern {
	raw := operands[1].Raw()
	n := uint64(math.MaxUint64)
	if raw.IsUint64() {
		n = raw.Uint64()
	}
	if x.Op == token.SHL {
		return pattern.Lsh(operands[0], n)
	}
	return pattern.Rsh(operands[0], n)
}

// String representation of the expression.
func (x *ShiftExpr) String() string {
	return nodeString(x)
}
