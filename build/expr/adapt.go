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

type (
	// ExtendPolicy widens an expression.
	ExtendPolicy interface {
		// Extend returns x with a width closer to, or equal to, width.
		// width is always greater than the width of x.
		Extend(width uint32, x Expr) (Expr, error)
	}

	// TruncatePolicy narrows an expression.
	TruncatePolicy interface {
		// Truncate returns x with a width closer to, or equal to, width.
		// width is always smaller than the width of x.
		Truncate(width uint32, x Expr) (Expr, error)
	}

	// SignPolicy changes the signedness of an expression.
	SignPolicy interface {
		// SetSigned returns x with the given signedness.
		// signed is always different from the signedness of x.
		SetSigned(signed bool, x Expr) (Expr, error)
	}
)

// Adaptor converts expressions to a target shape.
// The width is adapted first, using the extension or the truncation policy,
// and then the signedness, using the sign policy.
type Adaptor struct {
	Extend   ExtendPolicy
	Truncate TruncatePolicy
	Sign     SignPolicy
}

// distance between a shape and a target. Distances are ordered lexicographically.
type distance struct {
	width uint32
	sign  bool
}

func distanceTo(target, s shape.Shape) distance {
	d := distance{sign: target.Signed != s.Signed}
	if target.Width > s.Width {
		d.width = target.Width - s.Width
	} else {
		d.width = s.Width - target.Width
	}
	return d
}

func (d distance) less(o distance) bool {
	if d.width != o.width {
		return d.width < o.width
	}
	return !d.sign && o.sign
}

// Adapt returns x converted to the target shape.
// x is returned unchanged if it already has the target shape.
// An error is returned if one of the policies rejects a conversion
// or does not bring x closer to the target.
func (a Adaptor) Adapt(target shape.Shape, x Expr) (Expr, error) {
	const op = "adapt"
	if err := target.Validate(); err != nil {
		return nil, fmterr.PrefixWith("%s: target: ", op)(err)
	}
	if err := checkShape(op, x); err != nil {
		return nil, err
	}
	for {
		src := x.Shape()
		if src == target {
			return x, nil
		}
		next, err := a.step(target, x)
		if err != nil {
			return nil, err
		}
		if next == nil {
			return nil, fmterr.Errorf(fmterr.PolicyProgress, op, "policy returned no expression when adapting %s to %s", String(x), target)
		}
		if !distanceTo(target, next.Shape()).less(distanceTo(target, src)) {
			return nil, fmterr.Errorf(fmterr.PolicyProgress, op, "policy converted %s to %s: no progress toward %s", src, next.Shape(), target)
		}
		x = next
	}
}

func (a Adaptor) step(target shape.Shape, x Expr) (Expr, error) {
	src := x.Shape()
	switch {
	case target.Width > src.Width:
		if a.Extend == nil {
			return Forbid{}.Extend(target.Width, x)
		}
		return a.Extend.Extend(target.Width, x)
	case target.Width < src.Width:
		if a.Truncate == nil {
			return Forbid{}.Truncate(target.Width, x)
		}
		return a.Truncate.Truncate(target.Width, x)
	default:
		if a.Sign == nil {
			return Forbid{}.SetSigned(target.Signed, x)
		}
		return a.Sign.SetSigned(target.Signed, x)
	}
}
