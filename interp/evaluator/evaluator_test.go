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

package evaluator_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gx-org/apint/build/expr"
	"github.com/gx-org/apint/build/fmterr"
	"github.com/gx-org/apint/build/shape"
	"github.com/gx-org/apint/interp/evaluator"
	"go.uber.org/multierr"
)

func cst(t *testing.T, s shape.Shape, v int64) *expr.Constant {
	t.Helper()
	c, err := expr.Const(s, v)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func sum(t *testing.T, x, y expr.Expr) expr.Expr {
	t.Helper()
	e, err := expr.Add(x, y)
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func TestCompute(t *testing.T) {
	ev := evaluator.New()
	a := sum(t, cst(t, shape.Unsigned(8), 254), cst(t, shape.Unsigned(8), 3))
	// Same structure, different instances.
	b := sum(t, cst(t, shape.Unsigned(8), 254), cst(t, shape.Unsigned(8), 3))
	prod, err := expr.Mul(a, b)
	if err != nil {
		t.Fatal(err)
	}
	got, err := ev.Compute(prod)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(prod.Compute()) {
		t.Errorf("got %s but want %s", got, prod.Compute())
	}
	want := evaluator.Stats{Hits: 1, Misses: 2, Entries: 2}
	if diff := cmp.Diff(want, ev.Stats()); diff != "" {
		t.Errorf("unexpected stats (-want +got):\n%s", diff)
	}
	if _, err := ev.Compute(prod); err != nil {
		t.Fatal(err)
	}
	// Only the root is looked up.
	want = evaluator.Stats{Hits: 2, Misses: 2, Entries: 2}
	if diff := cmp.Diff(want, ev.Stats()); diff != "" {
		t.Errorf("unexpected stats (-want +got):\n%s", diff)
	}
	ev.Reset()
	if diff := cmp.Diff(evaluator.Stats{}, ev.Stats()); diff != "" {
		t.Errorf("unexpected stats after reset (-want +got):\n%s", diff)
	}
}

func TestCachedRootSkipsOperands(t *testing.T) {
	var chain expr.Expr = cst(t, shape.Unsigned(4), 1)
	for i := range int64(5) {
		chain = sum(t, chain, cst(t, shape.Unsigned(4), i))
	}
	ev := evaluator.New()
	if _, err := ev.Compute(chain); err != nil {
		t.Fatal(err)
	}
	want := evaluator.Stats{Hits: 0, Misses: 5, Entries: 5}
	if diff := cmp.Diff(want, ev.Stats()); diff != "" {
		t.Errorf("unexpected stats (-want +got):\n%s", diff)
	}
	got, err := ev.Compute(chain)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(chain.Compute()) {
		t.Errorf("got %s but want %s", got, chain.Compute())
	}
	want = evaluator.Stats{Hits: 1, Misses: 5, Entries: 5}
	if diff := cmp.Diff(want, ev.Stats()); diff != "" {
		t.Errorf("unexpected stats (-want +got):\n%s", diff)
	}
}

func TestDifferentLeaves(t *testing.T) {
	ev := evaluator.New()
	a := sum(t, cst(t, shape.Unsigned(8), 1), cst(t, shape.Unsigned(8), 2))
	b := sum(t, cst(t, shape.Unsigned(8), 1), cst(t, shape.Unsigned(8), 3))
	for _, e := range []expr.Expr{a, b} {
		got, err := ev.Compute(e)
		if err != nil {
			t.Fatal(err)
		}
		if !got.Equal(e.Compute()) {
			t.Errorf("%s: got %s but want %s", expr.String(e), got, e.Compute())
		}
	}
	if got := ev.Stats().Hits; got != 0 {
		t.Errorf("got %d cache hits but want 0", got)
	}
}

func TestComputeDivisionByZero(t *testing.T) {
	div, err := expr.Div(cst(t, shape.Signed(4), 3), cst(t, shape.Signed(4), 0))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := evaluator.New().Compute(div); !fmterr.Is(err, fmterr.DivisionByZero) {
		t.Errorf("got error %v but want a division by zero error", err)
	}
}

func TestComputeAll(t *testing.T) {
	var exprs []expr.Expr
	for i := range int64(100) {
		exprs = append(exprs, sum(t, cst(t, shape.Signed(8), i), cst(t, shape.Signed(8), -i)))
	}
	div, err := expr.Mod(cst(t, shape.Signed(4), 3), cst(t, shape.Unsigned(4), 0))
	if err != nil {
		t.Fatal(err)
	}
	exprs = append(exprs, div, div)
	ev := evaluator.New(evaluator.WithWorkers(4))
	got, err := ev.ComputeAll(exprs)
	if len(got) != len(exprs) {
		t.Fatalf("got %d patterns but want %d", len(got), len(exprs))
	}
	for i, p := range got[:100] {
		if !p.IsZero() || p.Shape() != shape.Signed(9) {
			t.Errorf("expression %d: got %s but want s9:0", i, p)
		}
	}
	errs := multierr.Errors(err)
	if len(errs) != 2 {
		t.Fatalf("got %d errors but want 2: %v", len(errs), err)
	}
	for _, err := range errs {
		if !fmterr.Is(err, fmterr.DivisionByZero) {
			t.Errorf("got error %v but want a division by zero error", err)
		}
	}
}

func TestComputeAllEmpty(t *testing.T) {
	got, err := evaluator.New().ComputeAll(nil)
	if err != nil || len(got) != 0 {
		t.Errorf("got %v, %v but want no pattern and no error", got, err)
	}
}
