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
	"github.com/gx-org/apint/build/fmterr"
	"github.com/gx-org/apint/build/shape"
)

// Compare returns -1, 0, or +1 depending on whether x is less than, equal to,
// or greater than y. Both operands are first converted to their tight overset
// with the OversetAdaptor, so that the comparison is exact.
func Compare(x, y Expr) (int, error) {
	if err := checkBinary("compare", x, y); err != nil {
		return 0, err
	}
	common := shape.TightOverset(x.Shape(), y.Shape())
	xAdapted, err := OversetAdaptor.Adapt(common, x)
	if err != nil {
		return 0, fmterr.PrefixWith("compare: left operand: ")(err)
	}
	yAdapted, err := OversetAdaptor.Adapt(common, y)
	if err != nil {
		return 0, fmterr.PrefixWith("compare: right operand: ")(err)
	}
	return xAdapted.Compute().Cmp(yAdapted.Compute()), nil
}

func compareWith(x, y Expr, f func(int) bool) (bool, error) {
	cmp, err := Compare(x, y)
	if err != nil {
		return false, err
	}
	return f(cmp), nil
}

// Equal returns x == y.
func Equal(x, y Expr) (bool, error) {
	return compareWith(x, y, func(c int) bool { return c == 0 })
}

// NotEqual returns x != y.
func NotEqual(x, y Expr) (bool, error) {
	return compareWith(x, y, func(c int) bool { return c != 0 })
}

// Less returns x < y.
func Less(x, y Expr) (bool, error) {
	return compareWith(x, y, func(c int) bool { return c < 0 })
}

// LessEqual returns x <= y.
func LessEqual(x, y Expr) (bool, error) {
	return compareWith(x, y, func(c int) bool { return c <= 0 })
}

// Greater returns x > y.
func Greater(x, y Expr) (bool, error) {
	return compareWith(x, y, func(c int) bool { return c > 0 })
}

// GreaterEqual returns x >= y.
func GreaterEqual(x, y Expr) (bool, error) {
	return compareWith(x, y, func(c int) bool { return c >= 0 })
}
