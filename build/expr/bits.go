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
	"math"

	"github.com/gx-org/apint/build/fmterr"
	"github.com/gx-org/apint/build/shape"
	"github.com/gx-org/apint/interp/pattern"
)

// SliceExpr extracts a range of bits from its operand.
// The result is always unsigned.
type SliceExpr struct {
	node
	High, Low uint32
}

var _ Node = (*SliceExpr)(nil)

func newSlice(high, low uint32, x Expr) *SliceExpr {
	return &SliceExpr{
		node: node{
			shp:      shape.Unsigned(high - low + 1),
			operands: []Expr{x},
		},
		High: high,
		Low:  low,
	}
}

// Slice returns the bits of x from low up to and including high.
func Slice(high, low uint32, x Expr) (*SliceExpr, error) {
	const op = "slice"
	if err := checkShape(op, x); err != nil {
		return nil, err
	}
	if high < low {
		return nil, fmterr.Errorf(fmterr.SliceBounds, op, "high bit %d smaller than low bit %d", high, low)
	}
	if width := x.Shape().Width; high >= width {
		return nil, fmterr.Errorf(fmterr.SliceBounds, op, "high bit %d outside of %s (%d bits)", high, String(x), width)
	}
	return newSlice(high, low, x), nil
}

// GetBit returns the bit of x at a given index as a 1-bit unsigned expression.
func GetBit(index uint32, x Expr) (*SliceExpr, error) {
	const op = "getbit"
	if err := checkShape(op, x); err != nil {
		return nil, err
	}
	if width := x.Shape().Width; index >= width {
		return nil, fmterr.Errorf(fmterr.BitIndex, op, "bit %d of %s (%d bits)", index, String(x), width)
	}
	return newSlice(index, index, x), nil
}

// Compute the expression.
func (x *SliceExpr) Compute() pattern.Pattern {
	return compute(x)
}

// Label of the node.
func (x *SliceExpr) Label() string {
	if x.High == x.Low {
		return fmt.Sprintf("bit[%d]", x.Low)
	}
	return fmt.Sprintf("slice[%d:%d]", x.High, x.Low)
}

// Apply the operator to the pattern of the operand.
func (x *SliceExpr) Apply(operands []pattern.Pattern) pattern.Pattern {
	return pattern.Extract(x.High, x.Low, operands[0])
}

// String representation of the expression.
func (x *SliceExpr) String() string {
	return nodeString(x)
}

// ConcatExpr concatenates the bits of its operands, the first operand
// being the most significant.
type ConcatExpr struct {
	node
}

var _ Node = (*ConcatExpr)(nil)

// Concat returns the concatenation of xs, most significant operand first.
// The width of the result is the sum of the widths of the operands,
// its signedness is the signedness of the first operand.
func Concat(xs ...Expr) (*ConcatExpr, error) {
	const op = "concat"
	if len(xs) == 0 {
		return nil, fmterr.Errorf(fmterr.EmptyConcatenation, op, "at least one operand is required")
	}
	var errs fmterr.Errors
	var width uint64
	for i, x := range xs {
		if !errs.Append(checkShape(op, x)) {
			continue
		}
		width += uint64(x.Shape().Width)
		if width > math.MaxUint32 {
			errs.Appendf(fmterr.WidthOverflow, op, "operand %d: width of the concatenation exceeds %d bits", i, uint32(math.MaxUint32))
			break
		}
	}
	if err := errs.ToError(); err != nil {
		return nil, err
	}
	return &ConcatExpr{node: node{
		shp:      shape.Of(uint32(width), xs[0].Shape().Signed),
		operands: append([]Expr(nil), xs...),
	}}, nil
}

// Compute the expression.
func (x *ConcatExpr) Compute() pattern.Pattern {
	return compute(x)
}

// Label of the node.
func (x *ConcatExpr) Label() string {
	return "concat"
}

// joinAll folds the operands from left to right: the first pattern is shifted above
// the concatenation of the remaining patterns. The last pattern is taken as is.
func joinAll(vals []pattern.Pattern) pattern.Pattern {
	head := vals[0]
	headShape := shape.Unsigned(head.Shape().Width)
	if len(vals) == 1 {
		return pattern.Reinterpret(headShape, head)
	}
	rest := joinAll(vals[1:])
	return pattern.Join(shape.Unsigned(headShape.Width+rest.Shape().Width), head, rest)
}

// Apply the operator to the patterns of the operands.
func (x *ConcatExpr) Apply(operands []pattern.Pattern) pattern.Pattern {
	return pattern.Reinterpret(x.shp, joinAll(operands))
}

// String representation of the expression.
func (x *ConcatExpr) String() string {
	return nodeString(x)
}
