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
)

type (
	// ZeroExtension pads expressions with zeros.
	ZeroExtension struct{}

	// SignExtension pads expressions with their sign bit.
	// Unsigned expressions are padded with zeros.
	SignExtension struct{}

	// Truncation keeps the low bits of expressions.
	Truncation struct{}

	// ReinterpretSign keeps the bits of expressions but changes their signedness.
	ReinterpretSign struct{}

	// Forbid rejects every conversion.
	Forbid struct{}
)

var (
	_ ExtendPolicy   = ZeroExtension{}
	_ ExtendPolicy   = SignExtension{}
	_ TruncatePolicy = Truncation{}
	_ SignPolicy     = ReinterpretSign{}
	_ ExtendPolicy   = Forbid{}
	_ TruncatePolicy = Forbid{}
	_ SignPolicy     = Forbid{}
)

var (
	// DefaultAdaptor sign-extends, truncates, and reinterprets the sign.
	DefaultAdaptor = Adaptor{
		Extend:   SignExtension{},
		Truncate: Truncation{},
		Sign:     ReinterpretSign{},
	}

	// OversetAdaptor converts an expression to a shape able to represent
	// all its values. It is used to convert operands to their tight overset
	// before comparisons and divisions.
	OversetAdaptor = Adaptor{
		Extend:   SignExtension{},
		Truncate: Forbid{},
		Sign:     ReinterpretSign{},
	}

	// ExactAdaptor only accepts expressions that already have the target shape.
	ExactAdaptor = Adaptor{
		Extend:   Forbid{},
		Truncate: Forbid{},
		Sign:     Forbid{},
	}
)

// Extend pads x with zeros.
func (ZeroExtension) Extend(width uint32, x Expr) (Expr, error) {
	return ZeroExtend(width, x)
}

// Extend pads x with its sign bit.
func (SignExtension) Extend(width uint32, x Expr) (Expr, error) {
	return SignExtend(width, x)
}

// Truncate keeps the width low bits of x.
// Like any slice, the result is unsigned: the sign policy of the adaptor
// restores the signedness if required.
func (Truncation) Truncate(width uint32, x Expr) (Expr, error) {
	const op = "truncate"
	if err := checkShape(op, x); err != nil {
		return nil, err
	}
	if width == 0 || width >= x.Shape().Width {
		return nil, fmterr.Errorf(fmterr.TruncationWidth, op, "cannot truncate %s to %d bits", String(x), width)
	}
	return Slice(width-1, 0, x)
}

// SetSigned reinterprets the bits of x.
func (ReinterpretSign) SetSigned(signed bool, x Expr) (Expr, error) {
	return Reinterpret(signed, x)
}

// Extend rejects the extension.
func (Forbid) Extend(width uint32, x Expr) (Expr, error) {
	const op = "extend"
	if err := checkShape(op, x); err != nil {
		return nil, err
	}
	if width <= x.Shape().Width {
		return nil, fmterr.Errorf(fmterr.ExtensionWidth, op, "cannot extend %s to %d bits", String(x), width)
	}
	return nil, fmterr.Errorf(fmterr.ForbiddenExtension, op, "cannot extend %s to %d bits", String(x), width)
}

// Truncate rejects the truncation.
func (Forbid) Truncate(width uint32, x Expr) (Expr, error) {
	const op = "truncate"
	if err := checkShape(op, x); err != nil {
		return nil, err
	}
	if width == 0 || width >= x.Shape().Width {
		return nil, fmterr.Errorf(fmterr.TruncationWidth, op, "cannot truncate %s to %d bits", String(x), width)
	}
	return nil, fmterr.Errorf(fmterr.ForbiddenTruncation, op, "cannot truncate %s to %d bits", String(x), width)
}

// SetSigned rejects the sign change.
func (Forbid) SetSigned(signed bool, x Expr) (Expr, error) {
	const op = "set_sign"
	if err := checkShape(op, x); err != nil {
		return nil, err
	}
	if x.Shape().Signed == signed {
		return nil, fmterr.Errorf(fmterr.UselessReinterpret, op, "%s is already %s", String(x), signName(signed))
	}
	return nil, fmterr.Errorf(fmterr.ForbiddenSign, op, "cannot convert %s to %s", String(x), signName(signed))
}
