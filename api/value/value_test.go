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

package value_test

import (
	"math/big"
	"testing"

	"github.com/gx-org/apint/api/value"
	"github.com/gx-org/apint/build/expr"
	"github.com/gx-org/apint/build/fmterr"
	"github.com/gx-org/apint/build/shape"
	"github.com/gx-org/apint/interp/pattern"
)

func newValue[T int | int64 | uint32](t *testing.T, s shape.Shape, v T, opts ...value.Option) *value.Value {
	t.Helper()
	val, err := value.FromNative(s, v, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return val
}

func TestSumMaterialized(t *testing.T) {
	u8 := shape.Unsigned(8)
	sum, err := expr.Add(newValue(t, u8, 254), newValue(t, u8, 3))
	if err != nil {
		t.Fatal(err)
	}
	if got := sum.Compute().String(); got != "u9:257" {
		t.Errorf("got %s but want u9:257", got)
	}
	val, err := value.New(u8, sum)
	if err != nil {
		t.Fatal(err)
	}
	if got := val.String(); got != "u8:1" {
		t.Errorf("got %s but want u8:1", got)
	}
	if _, err := value.New(u8, sum, value.WithAdaptor(expr.ExactAdaptor)); !fmterr.Is(err, fmterr.ForbiddenTruncation) {
		t.Errorf("got error %v but want a forbidden truncation error", err)
	}
}

func TestCompareValues(t *testing.T) {
	x := newValue(t, shape.Unsigned(7), 14)
	y := newValue(t, shape.Signed(7), -7)
	gt, err := expr.Greater(x, y)
	if err != nil {
		t.Fatal(err)
	}
	if !gt {
		t.Errorf("%s > %s is false", x, y)
	}
	for _, cmp := range []func(x, y expr.Expr) (bool, error){expr.Equal, expr.LessEqual} {
		got, err := cmp(x, y)
		if err != nil {
			t.Fatal(err)
		}
		if got {
			t.Errorf("unexpected comparison result between %s and %s", x, y)
		}
	}
	ge, err := expr.GreaterEqual(x, y)
	if err != nil {
		t.Fatal(err)
	}
	if !ge {
		t.Errorf("%s >= %s is false", x, y)
	}
}

func TestConcatValues(t *testing.T) {
	u16 := shape.Unsigned(16)
	cat, err := expr.Concat(newValue(t, u16, 0xDEAD), newValue(t, u16, 0xBEEF))
	if err != nil {
		t.Fatal(err)
	}
	val, err := value.New(shape.Unsigned(32), cat, value.WithAdaptor(expr.ExactAdaptor))
	if err != nil {
		t.Fatal(err)
	}
	got, err := value.As[uint32](val)
	if err != nil {
		t.Fatal(err)
	}
	if got != 0xDEADBEEF {
		t.Errorf("got %#x but want 0xdeadbeef", got)
	}
	u8 := shape.Unsigned(8)
	cat, err = expr.Concat(newValue(t, u8, 0xDE), newValue(t, u8, 0xAD), newValue(t, u8, 0xBE), newValue(t, u8, 0xEF))
	if err != nil {
		t.Fatal(err)
	}
	if got, err := value.As[uint32](cat); err != nil || got != 0xDEADBEEF {
		t.Errorf("got %#x, %v but want 0xdeadbeef", got, err)
	}
}

func TestShiftValues(t *testing.T) {
	one := newValue(t, shape.Unsigned(1), 1)
	tests := []struct {
		s    shape.Shape
		want int64
	}{
		{s: shape.Unsigned(4), want: 0b0110},
		{s: shape.Signed(4), want: -2},
	}
	for _, test := range tests {
		x, err := value.FromRaw(test.s, big.NewInt(0b1100))
		if err != nil {
			t.Fatal(err)
		}
		shr, err := expr.Shr(x, one)
		if err != nil {
			t.Fatal(err)
		}
		val, err := value.New(test.s, shr, value.WithAdaptor(expr.ExactAdaptor))
		if err != nil {
			t.Fatal(err)
		}
		if got := val.Int().Int64(); got != test.want {
			t.Errorf("%s = %d but want %d", shr, got, test.want)
		}
	}
}

func TestExactBitwise(t *testing.T) {
	u4 := shape.Unsigned(4)
	left, right := newValue(t, u4, 0b0110), newValue(t, u4, 0b1100)
	tests := []struct {
		build func(x, y expr.Expr) (*expr.BitwiseExpr, error)
		want  uint32
	}{
		{build: expr.And, want: 0b0100},
		{build: expr.Or, want: 0b1110},
		{build: expr.Xor, want: 0b1010},
	}
	for _, test := range tests {
		e, err := test.build(left, right)
		if err != nil {
			t.Fatal(err)
		}
		val, err := value.New(u4, e, value.WithAdaptor(expr.ExactAdaptor))
		if err != nil {
			t.Fatal(err)
		}
		got, err := value.As[uint32](val)
		if err != nil {
			t.Fatal(err)
		}
		if got != test.want {
			t.Errorf("%s = %#b but want %#b", e, got, test.want)
		}
	}
}

func TestAsExtension(t *testing.T) {
	usOne, err := value.FromPattern(pattern.Ones(shape.Unsigned(1)))
	if err != nil {
		t.Fatal(err)
	}
	sMinusOne, err := value.FromPattern(pattern.Ones(shape.Signed(1)))
	if err != nil {
		t.Fatal(err)
	}
	zext := value.WithPolicies(expr.ZeroExtension{}, expr.Truncation{}, expr.ReinterpretSign{})
	sext := value.WithPolicies(expr.SignExtension{}, expr.Truncation{}, expr.ReinterpretSign{})
	tests := []struct {
		name string
		src  expr.Expr
		opt  value.Option
		want int
	}{
		{name: "unsigned zero extension", src: usOne, opt: zext, want: 1},
		{name: "signed zero extension", src: sMinusOne, opt: zext, want: 1},
		{name: "unsigned sign extension", src: usOne, opt: sext, want: 1},
		{name: "signed sign extension", src: sMinusOne, opt: sext, want: -1},
	}
	for _, test := range tests {
		got, err := value.As[int](test.src, test.opt)
		if err != nil {
			t.Fatalf("%s: %v", test.name, err)
		}
		if got != test.want {
			t.Errorf("%s: got %d but want %d", test.name, got, test.want)
		}
	}
}

func TestValueErrors(t *testing.T) {
	if _, err := value.New(shape.Unsigned(0), expr.Lift(1)); !fmterr.Is(err, fmterr.InvalidShape) {
		t.Errorf("got error %v but want an invalid shape error", err)
	}
	if _, err := value.New(shape.Unsigned(4), nil); !fmterr.Is(err, fmterr.InvalidShape) {
		t.Errorf("got error %v but want an invalid shape error", err)
	}
	if _, err := value.FromRaw(shape.Unsigned(4), big.NewInt(16)); !fmterr.Is(err, fmterr.ValueRange) {
		t.Errorf("got error %v but want a value range error", err)
	}
	forbidSign := value.WithPolicies(expr.SignExtension{}, expr.Truncation{}, expr.Forbid{})
	if _, err := value.FromNative(shape.Signed(32), uint32(3), forbidSign); !fmterr.Is(err, fmterr.ForbiddenSign) {
		t.Errorf("got error %v but want a forbidden sign error", err)
	}
	div, err := expr.Div(expr.Lift(1), expr.Lift(0))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := value.New(shape.Signed(8), div); !fmterr.Is(err, fmterr.DivisionByZero) {
		t.Errorf("got error %v but want a division by zero error", err)
	}
}

func TestValueIsALeaf(t *testing.T) {
	val := newValue(t, shape.Signed(5), -3)
	if got := expr.Dump(val); got != "s5:-3 s5\n" {
		t.Errorf("got dump %q", got)
	}
	if len(val.Operands()) != 0 {
		t.Errorf("a value should not have operands")
	}
	if !val.Pattern().Equal(val.Compute()) {
		t.Errorf("pattern and computed value differ")
	}
}
