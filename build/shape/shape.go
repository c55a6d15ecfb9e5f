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

// Package shape defines the width and signedness of fixed-width integers
// and the rules computing the shape of arithmetic results.
package shape

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/gx-org/apint/build/fmterr"
)

// Shape is the width and the signedness of a two's-complement integer.
type Shape struct {
	Width  uint32
	Signed bool
}

// Unsigned returns the shape of an unsigned integer of a given width.
func Unsigned(width uint32) Shape {
	return Shape{Width: width}
}

// Signed returns the shape of a signed integer of a given width.
func Signed(width uint32) Shape {
	return Shape{Width: width, Signed: true}
}

// Of returns a shape given a width and a signedness.
func Of(width uint32, signed bool) Shape {
	return Shape{Width: width, Signed: signed}
}

// Validate returns an error if the shape cannot represent any integer.
func (s Shape) Validate() error {
	if s.Width == 0 {
		return fmterr.Errorf(fmterr.InvalidShape, "shape", "width of %s has to be positive", s)
	}
	return nil
}

// WithSign returns the shape with the same width and the given signedness.
func (s Shape) WithSign(signed bool) Shape {
	return Shape{Width: s.Width, Signed: signed}
}

// Min returns the smallest integer the shape can represent.
func (s Shape) Min() *big.Int {
	if !s.Signed {
		return new(big.Int)
	}
	return new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), uint(s.Width-1)))
}

// Max returns the largest integer the shape can represent.
func (s Shape) Max() *big.Int {
	width := s.Width
	if s.Signed {
		width--
	}
	max := new(big.Int).Lsh(big.NewInt(1), uint(width))
	return max.Sub(max, big.NewInt(1))
}

// Contains returns true if the shape can represent v.
func (s Shape) Contains(v *big.Int) bool {
	return v.Cmp(s.Min()) >= 0 && v.Cmp(s.Max()) <= 0
}

// String returns a compact representation of the shape, for example u8 or s12.
func (s Shape) String() string {
	prefix := "u"
	if s.Signed {
		prefix = "s"
	}
	return prefix + strconv.FormatUint(uint64(s.Width), 10)
}

// Parse a shape from its compact representation.
func Parse(s string) (Shape, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return Shape{}, fmterr.Errorf(fmterr.InvalidShape, "shape", "cannot parse shape %q", s)
	}
	var signed bool
	switch s[0] {
	case 'u', 'U':
	case 's', 'S':
		signed = true
	default:
		return Shape{}, fmterr.Errorf(fmterr.InvalidShape, "shape", "cannot parse shape %q: prefix has to be u or s", s)
	}
	width, err := strconv.ParseUint(s[1:], 10, 32)
	if err != nil {
		return Shape{}, fmterr.Errorf(fmterr.InvalidShape, "shape", "cannot parse width of %q: %v", s, err)
	}
	shp := Of(uint32(width), signed)
	if err := shp.Validate(); err != nil {
		return Shape{}, err
	}
	return shp, nil
}

// GoString returns the Go syntax of the shape.
func (s Shape) GoString() string {
	return fmt.Sprintf("shape.Of(%d, %t)", s.Width, s.Signed)
}
