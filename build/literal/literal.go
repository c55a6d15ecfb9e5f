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

// Package literal parses integer literals into constant expressions.
//
// Untyped literals (42, 0b1011, 0o17, 017, 0xdead) are unsigned. Their width is the
// smallest width able to hold any literal with the same number of digits: a
// binary literal of N digits is N bits wide, an octal literal 3N bits, and a
// hexadecimal literal 4N bits. Decimal literals of N digits use the width of 10^N-1.
//
// Typed literals start with a shape (s7:-7, u8:0xfe). Decimal literals are values
// which have to be in the range of the shape. Prefixed literals are raw bit
// patterns which have to fit in the width of the shape.
package literal

import (
	"go/scanner"
	"go/token"
	"math/big"
	"strings"

	"github.com/gx-org/apint/build/expr"
	"github.com/gx-org/apint/build/fmterr"
	"github.com/gx-org/apint/build/shape"
	"github.com/gx-org/apint/interp/pattern"
	"github.com/pkg/errors"
)

type number struct {
	// digits of the literal without prefix and separators.
	digits string
	// bitsPerDigit is 0 for decimal literals.
	bitsPerDigit uint32
	val          *big.Int
}

// scan checks that the text is a single Go integer literal.
func scan(text string) error {
	fset := token.NewFileSet()
	file := fset.AddFile("", fset.Base(), len(text))
	var errs fmterr.Errors
	var s scanner.Scanner
	s.Init(file, []byte(text), func(pos token.Position, msg string) {
		errs.Append(errors.Errorf("%q: column %d: %s", text, pos.Column, msg))
	}, 0)
	_, tok, lit := s.Scan()
	if tok != token.INT {
		errs.Append(errors.Errorf("%q is not an integer literal", text))
	}
	if _, next, _ := s.Scan(); next != token.EOF && next != token.SEMICOLON {
		errs.Append(errors.Errorf("unexpected characters after %q in %q", lit, text))
	}
	return errs.ToError()
}

func parseNumber(text string) (*number, error) {
	if err := scan(text); err != nil {
		return nil, err
	}
	val, ok := new(big.Int).SetString(text, 0)
	if !ok {
		return nil, errors.Errorf("cannot parse int number literal %q", text)
	}
	n := &number{val: val}
	lower := strings.ToLower(strings.ReplaceAll(text, "_", ""))
	switch {
	case strings.HasPrefix(lower, "0b"):
		n.digits, n.bitsPerDigit = lower[2:], 1
	case strings.HasPrefix(lower, "0o"):
		n.digits, n.bitsPerDigit = lower[2:], 3
	case strings.HasPrefix(lower, "0x"):
		n.digits, n.bitsPerDigit = lower[2:], 4
	case len(lower) > 1 && lower[0] == '0':
		n.digits, n.bitsPerDigit = lower[1:], 3
	default:
		n.digits = lower
	}
	return n, nil
}

func (n *number) width() uint32 {
	if n.bitsPerDigit > 0 {
		return uint32(len(n.digits)) * n.bitsPerDigit
	}
	ten := big.NewInt(10)
	maxVal := new(big.Int).Exp(ten, big.NewInt(int64(len(n.digits))), nil)
	maxVal.Sub(maxVal, big.NewInt(1))
	return uint32(max(maxVal.BitLen(), 1))
}

// Parse returns an unsigned constant for an untyped literal.
func Parse(text string) (*expr.Constant, error) {
	n, err := parseNumber(text)
	if err != nil {
		return nil, err
	}
	val, err := pattern.FromRaw(shape.Unsigned(n.width()), n.val)
	if err != nil {
		return nil, err
	}
	return expr.NewConstant(val), nil
}

// ParseTyped returns a constant for a typed literal <u|s><width>:<literal>.
func ParseTyped(text string) (*expr.Constant, error) {
	shapeText, lit, found := strings.Cut(text, ":")
	if !found {
		return nil, errors.Errorf("literal %q has no shape", text)
	}
	s, err := shape.Parse(shapeText)
	if err != nil {
		return nil, err
	}
	neg := strings.HasPrefix(lit, "-")
	n, err := parseNumber(strings.TrimPrefix(lit, "-"))
	if err != nil {
		return nil, err
	}
	if n.bitsPerDigit > 0 {
		if neg {
			return nil, errors.Errorf("bit pattern %q cannot be negative", lit)
		}
		val, err := pattern.FromRaw(s, n.val)
		if err != nil {
			return nil, err
		}
		return expr.NewConstant(val), nil
	}
	if neg {
		n.val.Neg(n.val)
	}
	val, err := pattern.FromInt(s, n.val)
	if err != nil {
		return nil, err
	}
	return expr.NewConstant(val), nil
}

// ParseAny parses a typed literal if text starts with a shape, an untyped literal otherwise.
func ParseAny(text string) (*expr.Constant, error) {
	if strings.Contains(text, ":") {
		return ParseTyped(text)
	}
	return Parse(text)
}
