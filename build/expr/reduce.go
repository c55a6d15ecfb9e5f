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

	"github.com/gx-org/apint/base/intmath"
	"github.com/gx-org/apint/build/fmterr"
	"github.com/gx-org/apint/build/shape"
	"github.com/gx-org/apint/interp/pattern"
)

// ReduceKind is the operator used to reduce all the bits of a vector into one bit.
type ReduceKind int

// Reduction operators.
const (
	ReduceOr ReduceKind = iota
	ReduceAnd
	ReduceNor
	ReduceNand
	ReduceXor
	ReduceXnor
)

var reduceLabels = [...]string{
	ReduceOr:   "reduce_or",
	ReduceAnd:  "reduce_and",
	ReduceNor:  "reduce_nor",
	ReduceNand: "reduce_nand",
	ReduceXor:  "reduce_xor",
	ReduceXnor: "reduce_xnor",
}

// String returns the name of the reduction.
func (k ReduceKind) String() string {
	if k < 0 || int(k) >= len(reduceLabels) {
		return "reduce_invalid"
	}
	return reduceLabels[k]
}

// ReduceExpr reduces all the bits of its operand into a 1-bit unsigned result.
type ReduceExpr struct {
	node
	Kind ReduceKind
}

var _ Node = (*ReduceExpr)(nil)

// Reduce returns the reduction of the bits of x.
func Reduce(kind ReduceKind, x Expr) (*ReduceExpr, error) {
	op := kind.String()
	if kind < ReduceOr || kind > ReduceXnor {
		return nil, fmterr.Internalf("invalid reduction kind %d", int(kind))
	}
	if err := checkShape(op, x); err != nil {
		return nil, err
	}
	return &ReduceExpr{
		node: node{
			shp:      shape.Unsigned(1),
			operands: []Expr{x},
		},
		Kind: kind,
	}, nil
}

// OrReduce returns 1 if at least one bit of x is set.
func OrReduce(x Expr) (*ReduceExpr, error) { return Reduce(ReduceOr, x) }

// AndReduce returns 1 if all the bits of x are set.
func AndReduce(x Expr) (*ReduceExpr, error) { return Reduce(ReduceAnd, x) }

// NorReduce returns 1 if no bit of x is set.
func NorReduce(x Expr) (*ReduceExpr, error) { return Reduce(ReduceNor, x) }

// NandReduce returns 1 if at least one bit of x is not set.
func NandReduce(x Expr) (*ReduceExpr, error) { return Reduce(ReduceNand, x) }

// XorReduce returns the parity of x.
func XorReduce(x Expr) (*ReduceExpr, error) { return Reduce(ReduceXor, x) }

// XnorReduce returns the complement of the parity of x.
func XnorReduce(x Expr) (*ReduceExpr, error) { return Reduce(ReduceXnor, x) }

// Compute the expression.
func (x *ReduceExpr) Compute() pattern.Pattern {
	return compute(x)
}

// Label of the node.
func (x *ReduceExpr) Label() string {
	return x.Kind.String()
}

// Apply the operator to the pattern of the operand.
func (x *ReduceExpr) Apply(operands []pattern.Pattern) pattern.Pattern {
	src := operands[0]
	switch x.Kind {
	case ReduceOr:
		return pattern.Bool(!src.IsZero())
	case ReduceAnd:
		return pattern.Bool(src.IsOnes())
	case ReduceNor:
		return pattern.Bool(src.IsZero())
	case ReduceNand:
		return pattern.Bool(!src.IsOnes())
	case ReduceXor:
		return pattern.Bool(xorFold(src.Raw(), src.Shape().Width) == 1)
	default:
		return pattern.Bool(xorFold(src.Raw(), src.Shape().Width) == 0)
	}
}

// String representation of the expression.
func (x *ReduceExpr) String() string {
	return nodeString(x)
}

func lowBits(in *big.Int, width uint32) *big.Int {
	mask := new(big.Int).Lsh(big.NewInt(1), uint(width))
	mask.Sub(mask, big.NewInt(1))
	return mask.And(mask, in)
}

// xorFold computes the parity of the width least significant bits of in.
// The vector is split around the largest power of two p not greater than width:
// if width is a power of two, both halves are xored together and the result
// is folded again. Otherwise, the width-p/2 high bits and the p/2 low bits are
// folded independently.
func xorFold(in *big.Int, width uint32) uint {
	if width == 1 {
		return in.Bit(0)
	}
	pow, err := intmath.FloorPow2(width)
	if err != nil {
		panic(fmterr.Internal(err))
	}
	half := pow / 2
	low := lowBits(in, half)
	high := lowBits(new(big.Int).Rsh(in, uint(half)), width-half)
	if pow == width {
		return xorFold(low.Xor(low, high), half)
	}
	return xorFold(high, width-half) ^ xorFold(low, half)
}
