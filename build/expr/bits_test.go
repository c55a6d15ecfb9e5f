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

package expr_test

import (
	"math/bits"
	"testing"

	"github.com/gx-org/apint/build/expr"
	"github.com/gx-org/apint/build/fmterr"
	"github.com/gx-org/apint/build/shape"
	"github.com/gx-org/apint/interp/pattern"
)

func TestSliceConcatInverse(t *testing.T) {
	for _, s := range shapesUpTo(6) {
		for _, v := range values(s, 1) {
			x := cst(t, s, v)
			want := x.Compute().Raw()
			for k := uint32(1); k < s.Width; k++ {
				high, err := expr.Slice(s.Width-1, k, x)
				if err != nil {
					t.Fatal(err)
				}
				low, err := expr.Slice(k-1, 0, x)
				if err != nil {
					t.Fatal(err)
				}
				cat, err := expr.Concat(high, low)
				if err != nil {
					t.Fatal(err)
				}
				got := cat.Compute()
				if got.Shape() != shape.Unsigned(s.Width) {
					t.Errorf("%s: got shape %s but want u%d", cat, got.Shape(), s.Width)
				}
				if got.Raw().Cmp(want) != 0 {
					t.Errorf("%s = %s but want %s", cat, got.Hex(), x.Compute().Hex())
				}
			}
		}
	}
}

func TestConcat(t *testing.T) {
	cat, err := expr.Concat(cst(t, shape.Unsigned(16), 0xDEAD), cst(t, shape.Unsigned(16), 0xBEEF))
	if err != nil {
		t.Fatal(err)
	}
	if got := cat.Compute().Hex(); got != "u32:0xdeadbeef" {
		t.Errorf("got %s but want u32:0xdeadbeef", got)
	}
	cat, err = expr.Concat(cst(t, shape.Signed(2), -1), cst(t, shape.Unsigned(1), 0), cst(t, shape.Unsigned(3), 5))
	if err != nil {
		t.Fatal(err)
	}
	if got := cat.Compute().Binary(); got != "110101" {
		t.Errorf("got %s but want 110101", got)
	}
	if got := cat.Compute().String(); got != "s6:-11" {
		t.Errorf("got %s but want s6:-11", got)
	}
}

func TestConcatErrors(t *testing.T) {
	if _, err := expr.Concat(); !fmterr.Is(err, fmterr.EmptyConcatenation) {
		t.Errorf("got error %v but want an empty concatenation error", err)
	}
	_, err := expr.Concat(nil, cst(t, shape.Unsigned(2), 1), nil)
	if err == nil {
		t.Fatal("expected an error")
	}
	var errs fmterr.Errors
	errs.Append(err)
	if got := len(errs.Errors()); got != 2 {
		t.Errorf("got %d errors but want 2: %v", got, err)
	}
}

func TestSlice(t *testing.T) {
	x := cst(t, shape.Signed(8), -91) // 0b10100101
	tests := []struct {
		high, low uint32
		want      string
	}{
		{high: 7, low: 0, want: "u8:165"},
		{high: 7, low: 4, want: "u4:10"},
		{high: 5, low: 2, want: "u4:9"},
		{high: 0, low: 0, want: "u1:1"},
		{high: 1, low: 1, want: "u1:0"},
	}
	for _, test := range tests {
		e, err := expr.Slice(test.high, test.low, x)
		if err != nil {
			t.Fatal(err)
		}
		if got := e.Compute().String(); got != test.want {
			t.Errorf("%s = %s but want %s", e, got, test.want)
		}
	}
}

func TestSliceErrors(t *testing.T) {
	x := cst(t, shape.Unsigned(4), 3)
	if _, err := expr.Slice(4, 0, x); !fmterr.Is(err, fmterr.SliceBounds) {
		t.Errorf("got error %v but want a slice bounds error", err)
	}
	if _, err := expr.Slice(1, 2, x); !fmterr.Is(err, fmterr.SliceBounds) {
		t.Errorf("got error %v but want a slice bounds error", err)
	}
	if _, err := expr.GetBit(4, x); !fmterr.Is(err, fmterr.BitIndex) {
		t.Errorf("got error %v but want a bit index error", err)
	}
}

func TestGetBit(t *testing.T) {
	x := cst(t, shape.Unsigned(4), 0b0110)
	for i, want := range []uint64{0, 1, 1, 0} {
		bit, err := expr.GetBit(uint32(i), x)
		if err != nil {
			t.Fatal(err)
		}
		if bit.Shape() != shape.Unsigned(1) {
			t.Errorf("%s has shape %s", bit, bit.Shape())
		}
		if got := bit.Compute().Uint64(); got != want {
			t.Errorf("%s = %d but want %d", bit, got, want)
		}
	}
}

func TestReduceParity(t *testing.T) {
	for w := uint32(1); w <= 5; w++ {
		s := shape.Unsigned(w)
		for v := uint64(0); v < 1<<w; v++ {
			x := cst(t, s, int64(v))
			parity := uint64(bits.OnesCount64(v) % 2)
			xor, err := expr.XorReduce(x)
			if err != nil {
				t.Fatal(err)
			}
			if got := xor.Compute().Uint64(); got != parity {
				t.Errorf("xor_reduce(%s) = %d but want %d", x, got, parity)
			}
			xnor, err := expr.XnorReduce(x)
			if err != nil {
				t.Fatal(err)
			}
			if got := xnor.Compute().Uint64(); got != 1-parity {
				t.Errorf("xnor_reduce(%s) = %d but want %d", x, got, 1-parity)
			}
		}
	}
}

func TestReduce(t *testing.T) {
	tests := []struct {
		kind expr.ReduceKind
		v    int64
		want uint64
	}{
		{kind: expr.ReduceOr, v: 0, want: 0},
		{kind: expr.ReduceOr, v: 4, want: 1},
		{kind: expr.ReduceAnd, v: -1, want: 1},
		{kind: expr.ReduceAnd, v: 7, want: 0},
		{kind: expr.ReduceNor, v: 0, want: 1},
		{kind: expr.ReduceNor, v: 2, want: 0},
		{kind: expr.ReduceNand, v: -1, want: 0},
		{kind: expr.ReduceNand, v: -8, want: 1},
		{kind: expr.ReduceXor, v: -8, want: 1},
		{kind: expr.ReduceXnor, v: 3, want: 1},
	}
	for _, test := range tests {
		x := cst(t, shape.Signed(4), test.v)
		e, err := expr.Reduce(test.kind, x)
		if err != nil {
			t.Fatal(err)
		}
		if got := e.Compute().Uint64(); got != test.want {
			t.Errorf("%s = %d but want %d", e, got, test.want)
		}
	}
	if _, err := expr.Reduce(expr.ReduceKind(42), cst(t, shape.Signed(4), 0)); err == nil {
		t.Errorf("expected an error for an invalid reduction")
	}
}

func TestXorReduceWide(t *testing.T) {
	for _, w := range []uint32{7, 31, 64, 65, 100} {
		ones, err := expr.Not(cst(t, shape.Unsigned(w), 0))
		if err != nil {
			t.Fatal(err)
		}
		x, err := expr.Concat(ones, cst(t, shape.Unsigned(1), 0))
		if err != nil {
			t.Fatal(err)
		}
		xor, err := expr.XorReduce(x)
		if err != nil {
			t.Fatal(err)
		}
		want := uint64(w % 2)
		if got := xor.Compute().Uint64(); got != want {
			t.Errorf("xor_reduce of %d ones = %d but want %d", w, got, want)
		}
	}
}

func TestBitwise(t *testing.T) {
	x := cst(t, shape.Signed(4), -6) // 0b1010
	y := cst(t, shape.Unsigned(4), 0b0110)
	tests := []struct {
		build func(x, y expr.Expr) (*expr.BitwiseExpr, error)
		want  string
	}{
		{build: expr.And, want: "0010"},
		{build: expr.Or, want: "1110"},
		{build: expr.Xor, want: "1100"},
	}
	for _, test := range tests {
		e, err := test.build(x, y)
		if err != nil {
			t.Fatal(err)
		}
		if e.Shape() != shape.Unsigned(4) {
			t.Errorf("%s has shape %s", e, e.Shape())
		}
		if got := e.Compute().Binary(); got != test.want {
			t.Errorf("%s = %s but want %s", e, got, test.want)
		}
	}
	not, err := expr.Not(x)
	if err != nil {
		t.Fatal(err)
	}
	if not.Shape() != shape.Unsigned(4) {
		t.Errorf("%s has shape %s", not, not.Shape())
	}
	if got := not.Compute().Binary(); got != "0101" {
		t.Errorf("not(%s) = %s but want 0101", x, got)
	}
	if _, err := expr.And(x, cst(t, shape.Unsigned(5), 0)); !fmterr.Is(err, fmterr.WidthMismatch) {
		t.Errorf("got error %v but want a width mismatch error", err)
	}
}

func TestShift(t *testing.T) {
	one := cst(t, shape.Unsigned(1), 1)
	tests := []struct {
		x      *expr.Constant
		amount expr.Expr
		left   bool
		want   string
	}{
		{x: cst(t, shape.Unsigned(4), 0b1100), amount: one, want: "u4:6"},
		{x: cst(t, shape.Signed(4), -4), amount: one, want: "s4:-2"},
		{x: cst(t, shape.Signed(4), -4), amount: one, left: true, want: "s4:-8"},
		{x: cst(t, shape.Unsigned(4), 0b0111), amount: one, left: true, want: "u4:14"},
		{x: cst(t, shape.Signed(4), -3), amount: cst(t, shape.Unsigned(8), 200), want: "s4:-1"},
		{x: cst(t, shape.Signed(4), 5), amount: cst(t, shape.Unsigned(8), 4), want: "s4:0"},
		{x: cst(t, shape.Unsigned(4), 15), amount: cst(t, shape.Unsigned(3), 4), left: true, want: "u4:0"},
		{x: cst(t, shape.Unsigned(4), 8), amount: cst(t, shape.Signed(3), -1), want: "u4:0"},
	}
	for _, test := range tests {
		build := expr.Shr
		if test.left {
			build = expr.Shl
		}
		e, err := build(test.x, test.amount)
		if err != nil {
			t.Fatal(err)
		}
		if got := e.Compute().String(); got != test.want {
			t.Errorf("%s = %s but want %s", e, got, test.want)
		}
	}
}

// zeroWidth is an expression with an invalid shape.
type zeroWidth struct{}

func (zeroWidth) Shape() shape.Shape { return shape.Shape{} }

func (zeroWidth) Compute() pattern.Pattern { return pattern.Pattern{} }

func TestUnaryInvalidOperand(t *testing.T) {
	builders := map[string]func(expr.Expr) (expr.Expr, error){
		"not": func(x expr.Expr) (expr.Expr, error) {
			e, err := expr.Not(x)
			return e, err
		},
	}
	for name, reduce := range map[string]func(expr.Expr) (*expr.ReduceExpr, error){
		"reduce_or":   expr.OrReduce,
		"reduce_and":  expr.AndReduce,
		"reduce_nor":  expr.NorReduce,
		"reduce_nand": expr.NandReduce,
		"reduce_xor":  expr.XorReduce,
		"reduce_xnor": expr.XnorReduce,
	} {
		builders[name] = func(x expr.Expr) (expr.Expr, error) {
			e, err := reduce(x)
			return e, err
		}
	}
	operands := map[string]expr.Expr{
		"nil":        nil,
		"zero width": zeroWidth{},
	}
	for name, build := range builders {
		for desc, x := range operands {
			if _, err := build(x); !fmterr.Is(err, fmterr.InvalidShape) {
				t.Errorf("%s of a %s operand: got error %v but want an invalid shape error", name, desc, err)
			}
		}
	}
}
