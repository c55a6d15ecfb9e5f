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

package shape

// Prop computes the shapes of the results of arithmetic operators
// from the shapes of their operands.
// The results only depend on the shapes, never on values.
type Prop struct {
	x, y Shape
}

// Arith returns the arithmetic properties of two operand shapes.
func Arith(x, y Shape) Prop {
	return Prop{x: x, y: y}
}

func (p Prop) max() uint32 {
	return max(p.x.Width, p.y.Width)
}

func (p Prop) min() uint32 {
	return min(p.x.Width, p.y.Width)
}

func (p Prop) oneSigned() bool {
	return p.x.Signed || p.y.Signed
}

func (p Prop) sameSign() bool {
	return p.x.Signed == p.y.Signed
}

// SumWidth is the width of the sum or difference of the operands.
func (p Prop) SumWidth() uint32 {
	return p.max() + 1
}

// SumSigned is the signedness of the sum or difference of the operands.
func (p Prop) SumSigned() bool {
	return p.oneSigned()
}

// Sum returns the shape of the sum or difference of the operands.
func (p Prop) Sum() Shape {
	return Of(p.SumWidth(), p.SumSigned())
}

// ProdWidth is the width of the product of the operands.
func (p Prop) ProdWidth() uint32 {
	oneIsOne := p.x.Width == 1 || p.y.Width == 1
	bothAreOne := p.x.Width == 1 && p.y.Width == 1
	switch {
	case !oneIsOne:
		return p.x.Width + p.y.Width
	case bothAreOne || p.sameSign():
		return p.max()
	default:
		return p.max() + 1
	}
}

// ProdSigned is the signedness of the product of the operands.
// The product of two 1-bit operands of the same signedness is unsigned.
func (p Prop) ProdSigned() bool {
	bothAreOne := p.x.Width == 1 && p.y.Width == 1
	return p.oneSigned() && !(bothAreOne && p.sameSign())
}

// Prod returns the shape of the product of the operands.
func (p Prop) Prod() Shape {
	return Of(p.ProdWidth(), p.ProdSigned())
}

// DivWidth is the width of the quotient of the operands.
// One bit is added when the divisor is signed (dividing by -1 negates the dividend).
func (p Prop) DivWidth() uint32 {
	if p.y.Signed {
		return p.x.Width + 1
	}
	return p.x.Width
}

// DivSigned is the signedness of the quotient of the operands.
func (p Prop) DivSigned() bool {
	return p.oneSigned()
}

// Div returns the shape of the quotient of the operands.
func (p Prop) Div() Shape {
	return Of(p.DivWidth(), p.DivSigned())
}

// ModWidth is the width of the remainder of the operands.
func (p Prop) ModWidth() uint32 {
	if p.x.Signed {
		return p.min() + 1
	}
	return p.min()
}

// ModSigned is the signedness of the remainder of the operands.
// The remainder takes the sign of the dividend.
func (p Prop) ModSigned() bool {
	return p.x.Signed
}

// Mod returns the shape of the remainder of the operands.
func (p Prop) Mod() Shape {
	return Of(p.ModWidth(), p.ModSigned())
}

// TightOverset returns the smallest shape representing all the values of x and y.
func TightOverset(x, y Shape) Shape {
	width := max(x.Width, y.Width)
	if x.Signed != y.Signed {
		width++
	}
	return Of(width, x.Signed || y.Signed)
}

// DivOperands returns the shape both operands of a division or a modulo are
// converted to before the native operator is applied.
// It is the tight overset of both shapes with a guard bit when both operands are
// signed and the overset is as wide as the dividend: the quotient of the minimum
// value by -1 has to be representable.
func DivOperands(x, y Shape) Shape {
	overset := TightOverset(x, y)
	if x.Signed && y.Signed && overset.Width == x.Width {
		overset.Width++
	}
	return overset
}
