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

// Package pattern implements two's-complement bit patterns of a given shape.
package pattern

import (
	"fmt"
	"math/big"

	"github.com/gx-org/apint/build/fmterr"
	"github.com/gx-org/apint/build/shape"
)

// Pattern is a two's-complement integer of a given shape.
// A pattern is immutable.
type Pattern struct {
	shp shape.Shape
	// val is the integer represented by the pattern.
	// It is always within the range of shp.
	val *big.Int
}

func modulus(width uint32) *big.Int {
	return new(big.Int).Lsh(big.NewInt(1), uint(width))
}

func mask(width uint32) *big.Int {
	m := modulus(width)
	return m.Sub(m, big.NewInt(1))
}

// Wrap reduces v modulo 2^width and interprets the result with the signedness of the shape.
func Wrap(s shape.Shape, v *big.Int) Pattern {
	val := new(big.Int).And(v, mask(s.Width))
	if s.Signed && val.Bit(int(s.Width-1)) == 1 {
		val.Sub(val, modulus(s.Width))
	}
	return Pattern{shp: s, val: val}
}

// FromInt returns the pattern representing v.
// An error is returned if v is not in the range of the shape.
func FromInt(s shape.Shape, v *big.Int) (Pattern, error) {
	if err := s.Validate(); err != nil {
		return Pattern{}, err
	}
	if !s.Contains(v) {
		return Pattern{}, fmterr.Errorf(fmterr.ValueRange, "pattern", "%s cannot be represented by %s", v, s)
	}
	return Pattern{shp: s, val: new(big.Int).Set(v)}, nil
}

// FromInt64 returns the pattern representing v.
func FromInt64(s shape.Shape, v int64) (Pattern, error) {
	return FromInt(s, big.NewInt(v))
}

// FromRaw returns the pattern of a shape given its bits.
// An error is returned if bits is negative or does not fit in the width of the shape.
func FromRaw(s shape.Shape, bits *big.Int) (Pattern, error) {
	if err := s.Validate(); err != nil {
		return Pattern{}, err
	}
	if bits.Sign() < 0 || bits.BitLen() > int(s.Width) {
		return Pattern{}, fmterr.Errorf(fmterr.ValueRange, "pattern", "bits %#x do not fit in %d bits", bits, s.Width)
	}
	return Wrap(s, bits), nil
}

// FromUint64 returns the pattern of a shape given its bits.
func FromUint64(s shape.Shape, bits uint64) (Pattern, error) {
	return FromRaw(s, new(big.Int).SetUint64(bits))
}

// Zero returns the pattern with all bits set to zero.
func Zero(s shape.Shape) Pattern {
	return Pattern{shp: s, val: new(big.Int)}
}

// Ones returns the pattern with all bits set to one.
func Ones(s shape.Shape) Pattern {
	return Wrap(s, mask(s.Width))
}

// Bool returns the 1-bit unsigned pattern of a boolean.
func Bool(b bool) Pattern {
	if b {
		return Pattern{shp: shape.Unsigned(1), val: big.NewInt(1)}
	}
	return Zero(shape.Unsigned(1))
}

func (p Pattern) value() *big.Int {
	if p.val == nil {
		return new(big.Int)
	}
	return p.val
}

// Shape of the pattern.
func (p Pattern) Shape() shape.Shape {
	return p.shp
}

// Int returns the integer represented by the pattern.
func (p Pattern) Int() *big.Int {
	return new(big.Int).Set(p.value())
}

// Raw returns the bits of the pattern as a non-negative integer.
func (p Pattern) Raw() *big.Int {
	raw := new(big.Int).Set(p.value())
	if raw.Sign() < 0 {
		raw.Add(raw, modulus(p.shp.Width))
	}
	return raw
}

// Bit returns the bit at index i, 0 being the least significant bit.
func (p Pattern) Bit(i uint32) uint {
	if i >= p.shp.Width {
		return 0
	}
	return p.Raw().Bit(int(i))
}

// SignBit returns the most significant bit of the pattern.
func (p Pattern) SignBit() uint {
	return p.Bit(p.shp.Width - 1)
}

// IsZero returns true if all the bits of the pattern are zero.
func (p Pattern) IsZero() bool {
	return p.value().Sign() == 0
}

// IsOnes returns true if all the bits of the pattern are one.
func (p Pattern) IsOnes() bool {
	return p.Raw().Cmp(mask(p.shp.Width)) == 0
}

// Int64 returns the integer represented by the pattern truncated to 64 bits.
func (p Pattern) Int64() int64 {
	return p.value().Int64()
}

// Uint64 returns the 64 least significant bits of the pattern.
func (p Pattern) Uint64() uint64 {
	return new(big.Int).And(p.Raw(), mask(64)).Uint64()
}

// Cmp compares the integers represented by two patterns, regardless of their shapes.
func (p Pattern) Cmp(q Pattern) int {
	return p.value().Cmp(q.value())
}

// Equal returns true if both patterns have the same shape and the same bits.
func (p Pattern) Equal(q Pattern) bool {
	return p.shp == q.shp && p.Cmp(q) == 0
}

// String returns the shape and the integer represented by the pattern, for example s8:-7.
func (p Pattern) String() string {
	return fmt.Sprintf("%s:%s", p.shp, p.value())
}

// Hex returns the shape and the bits of the pattern in hexadecimal, for example u8:0xfe.
func (p Pattern) Hex() string {
	return fmt.Sprintf("%s:%#x", p.shp, p.Raw())
}

// Binary returns the bits of the pattern, most significant bit first, padded to the width.
func (p Pattern) Binary() string {
	return fmt.Sprintf("%0*b", int(p.shp.Width), p.Raw())
}
