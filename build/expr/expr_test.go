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
	"math"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gx-org/apint/build/expr"
	"github.com/gx-org/apint/build/fmterr"
	"github.com/gx-org/apint/build/shape"
)

func buildTree(t *testing.T) expr.Expr {
	t.Helper()
	sum, err := expr.Add(cst(t, shape.Unsigned(8), 254), cst(t, shape.Unsigned(2), 3))
	if err != nil {
		t.Fatal(err)
	}
	ext, err := expr.SignExtend(10, cst(t, shape.Signed(4), -2))
	if err != nil {
		t.Fatal(err)
	}
	prod, err := expr.Mul(sum, ext)
	if err != nil {
		t.Fatal(err)
	}
	return prod
}

func TestString(t *testing.T) {
	tree := buildTree(t)
	const want = "mul(add(u8:254, u2:3), sext[10](s4:-2))"
	if got := expr.String(tree); got != want {
		t.Errorf("got %s but want %s", got, want)
	}
	if got := tree.Compute().String(); got != "s19:-514" {
		t.Errorf("got %s but want s19:-514", got)
	}
}

func TestDump(t *testing.T) {
	got := expr.Dump(buildTree(t))
	want := `mul s19
	add u9
		u8:254 u8
		u2:3 u2
	sext[10] s10
		s4:-2 s4
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected dump (-want +got):\n%s", diff)
	}
}

func TestFingerprint(t *testing.T) {
	a, b := buildTree(t), buildTree(t)
	if a == b {
		t.Fatal("trees should be distinct")
	}
	if expr.Fingerprint(a) != expr.Fingerprint(b) {
		t.Errorf("identical trees have different fingerprints")
	}
	other, err := expr.Sub(cst(t, shape.Unsigned(8), 254), cst(t, shape.Unsigned(2), 3))
	if err != nil {
		t.Fatal(err)
	}
	sum, err := expr.Add(cst(t, shape.Unsigned(8), 254), cst(t, shape.Unsigned(2), 3))
	if err != nil {
		t.Fatal(err)
	}
	if expr.Fingerprint(other) == expr.Fingerprint(sum) {
		t.Errorf("add and sub have the same fingerprint")
	}
	if expr.Fingerprint(cst(t, shape.Unsigned(4), 3)) == expr.Fingerprint(cst(t, shape.Signed(4), 3)) {
		t.Errorf("constants of different shapes have the same fingerprint")
	}
}

func TestConcurrentCompute(t *testing.T) {
	tree := buildTree(t)
	want := tree.Compute()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := tree.Compute(); !got.Equal(want) {
				t.Errorf("got %s but want %s", got, want)
			}
		}()
	}
	wg.Wait()
}

func TestExtendReinterpret(t *testing.T) {
	x := cst(t, shape.Signed(4), -6)
	zext, err := expr.ZeroExtend(6, x)
	if err != nil {
		t.Fatal(err)
	}
	if got := zext.Compute().String(); got != "s6:10" {
		t.Errorf("%s = %s but want s6:10", zext, got)
	}
	sext, err := expr.SignExtend(6, x)
	if err != nil {
		t.Fatal(err)
	}
	if got := sext.Compute().String(); got != "s6:-6" {
		t.Errorf("%s = %s but want s6:-6", sext, got)
	}
	sextU, err := expr.SignExtend(6, cst(t, shape.Unsigned(4), 10))
	if err != nil {
		t.Fatal(err)
	}
	if got := sextU.Compute().String(); got != "u6:10" {
		t.Errorf("%s = %s but want u6:10", sextU, got)
	}
	if _, err := expr.ZeroExtend(4, x); !fmterr.Is(err, fmterr.ExtensionWidth) {
		t.Errorf("got error %v but want an extension width error", err)
	}
	as, err := expr.Reinterpret(false, x)
	if err != nil {
		t.Fatal(err)
	}
	if got := as.Compute().String(); got != "u4:10" {
		t.Errorf("%s = %s but want u4:10", as, got)
	}
	if _, err := expr.Reinterpret(true, x); !fmterr.Is(err, fmterr.UselessReinterpret) {
		t.Errorf("got error %v but want a useless reinterpret error", err)
	}
}

func TestNative(t *testing.T) {
	if got := expr.NativeShape[int8](); got != shape.Signed(8) {
		t.Errorf("int8 has shape %s", got)
	}
	if got := expr.NativeShape[uint64](); got != shape.Unsigned(64) {
		t.Errorf("uint64 has shape %s", got)
	}
	if got := expr.Lift[int16](-300).Compute().String(); got != "s16:-300" {
		t.Errorf("got %s but want s16:-300", got)
	}
	if got := expr.Lift[uint64](math.MaxUint64).Compute().Hex(); got != "u64:0xffffffffffffffff" {
		t.Errorf("got %s but want u64:0xffffffffffffffff", got)
	}
	v, err := expr.ToNative[uint8](expr.DefaultAdaptor, buildTree(t))
	if err != nil {
		t.Fatal(err)
	}
	// -514 = 0x...fdfe
	if v != 0xfe {
		t.Errorf("got %#x but want 0xfe", v)
	}
	i, err := expr.ToNative[int64](expr.DefaultAdaptor, cst(t, shape.Signed(3), -4))
	if err != nil {
		t.Fatal(err)
	}
	if i != -4 {
		t.Errorf("got %d but want -4", i)
	}
	if _, err := expr.ToNative[int8](expr.ExactAdaptor, cst(t, shape.Signed(3), -4)); !fmterr.Is(err, fmterr.ForbiddenExtension) {
		t.Errorf("got error %v but want a forbidden extension error", err)
	}
}
