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
	"unsafe"

	"github.com/gx-org/apint/build/shape"
	"github.com/gx-org/apint/interp/pattern"
	"golang.org/x/exp/constraints"
)

// NativeShape returns the shape of a Go integer type.
func NativeShape[T constraints.Integer]() shape.Shape {
	var zero T
	return shape.Of(uint32(unsafe.Sizeof(zero))*8, ^zero < zero)
}

// Lift returns a constant for a Go integer.
// The constant has the shape of the Go type.
func Lift[T constraints.Integer](v T) *Constant {
	s := NativeShape[T]()
	var val *big.Int
	if s.Signed {
		val = big.NewInt(int64(v))
	} else {
		val = new(big.Int).SetUint64(uint64(v))
	}
	return NewConstant(pattern.Wrap(s, val))
}

// ToNative converts an expression to the shape of a Go integer type using an
// adaptor and returns its value.
func ToNative[T constraints.Integer](a Adaptor, x Expr) (T, error) {
	s := NativeShape[T]()
	adapted, err := a.Adapt(s, x)
	if err != nil {
		return 0, err
	}
	val, err := Eval(adapted)
	if err != nil {
		return 0, err
	}
	if s.Signed {
		return T(val.Int64()), nil
	}
	return T(val.Uint64()), nil
}
