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

package pattern

import (
	"math/big"

	"github.com/gx-org/apint/build/shape"
)

// Operators on patterns. Results are computed exactly and then wrapped
// into the shape given by the caller.

// Add returns x+y wrapped in s.
func Add(s shape.Shape, x, y Pattern) Pattern {
	return Wrap(s, new(big.Int).Add(x.value(), y.value()))
}

// Sub returns x-y wrapped in s.
func Sub(s shape.Shape, x, y Pattern) Pattern {
	return Wrap(s, new(big.Int).Sub(x.value(), y.value()))
}

// Mul returns x*y wrapped in s.
func Mul(s shape.Shape, x, y Pattern) Pattern {
	return Wrap(s, new(big.Int).Mul(x.value(), y.value()))
}

// Quo returns x/y truncated toward zero and wrapped in s.
// Quo panics if y is zero.
func Quo(s shape.Shape, x, y Pattern) Pattern {
	return Wrap(s, new(big.Int).Quo(x.value(), y.value()))
}

// Rem returns the remainder of x/y truncated toward zero, wrapped in s.
// The remainder has the sign of x. Rem panics if y is zero.
func Rem(s shape.Shape, x, y Pattern) Pattern {
	return Wrap(s, new(big.Int).Rem(x.value(), y.value()))
}

// And returns the bitwise and of x and y wrapped in s.
func And(s shape.Shape, x, y Pattern) Pattern {
	return Wrap(s, new(big.Int).And(x.Raw(), y.Raw()))
}

// Or returns the bitwise or of x and y wrapped in s.
func Or(s shape.Shape, x, y Pattern) Pattern {
	return Wrap(s, new(big.Int).Or(x.Raw(), y.Raw()))
}

// Xor returns the bitwise xor of x and y wrapped in s.
func Xor(s shape.Shape, x, y Pattern) Pattern {
	return Wrap(s, new(big.Int).Xor(x.Raw(), y.Raw()))
}

// Not returns the bitwise complement of x wrapped in s.
func Not(s shape.Shape, x Pattern) Pattern {
	return Wrap(s, new(big.Int).Xor(x.Raw(), mask(x.shp.Width)))
}

// Lsh shifts x to the left by n bits. The result has the shape of x.
func Lsh(x Pattern, n uint64) Pattern {
	if n >= uint64(x.shp.Width) {
		return Zero(x.shp)
	}
	return Wrap(x.shp, new(big.Int).Lsh(x.Raw(), uint(n)))
}

// Rsh shifts x to the right by n bits. The result has the shape of x.
// Signed patterns are shifted arithmetically, unsigned patterns logically.
func Rsh(x Pattern, n uint64) Pattern {
	if n >= uint64(x.shp.Width) {
		if x.shp.Signed && x.value().Sign() < 0 {
			return Ones(x.shp)
		}
		return Zero(x.shp)
	}
	return Wrap(x.shp, new(big.Int).Rsh(x.value(), uint(n)))
}

// Convert returns the pattern representing the value of x in s.
// The value is wrapped if s cannot represent it.
func Convert(s shape.Shape, x Pattern) Pattern {
	return Wrap(s, x.value())
}

// Reinterpret returns the bits of x interpreted with the shape s.
// The bits are truncated or zero-padded to the width of s.
func Reinterpret(s shape.Shape, x Pattern) Pattern {
	return Wrap(s, x.Raw())
}

// Extract returns the bits of x from low up to and including high, as an unsigned pattern.
func Extract(high, low uint32, x Pattern) Pattern {
	s := shape.Unsigned(high - low + 1)
	return Wrap(s, new(big.Int).Rsh(x.Raw(), uint(low)))
}

// Join returns the bits of hi followed by the bits of lo, wrapped in s.
func Join(s shape.Shape, hi, lo Pattern) Pattern {
	bits := new(big.Int).Lsh(hi.Raw(), uint(lo.shp.Width))
	return Wrap(s, bits.Or(bits, lo.Raw()))
}
