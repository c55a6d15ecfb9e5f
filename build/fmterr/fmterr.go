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

// Package fmterr provides the errors reported while assembling expressions
// and helpers to accumulate them.
package fmterr

import "fmt"

// Rule identifies a shape rule checked when an expression is assembled.
type Rule string

// Shape rules.
const (
	InvalidShape        Rule = "invalid shape"
	SliceBounds         Rule = "slice bounds"
	BitIndex            Rule = "bit index outside source width"
	ExtensionWidth      Rule = "extension target width not greater than source width"
	TruncationWidth     Rule = "truncate target width not smaller than source width"
	UselessReinterpret  Rule = "reinterpret to the signedness of the source"
	WidthMismatch       Rule = "operand width mismatch"
	ForbiddenExtension  Rule = "forbidden width extension"
	ForbiddenTruncation Rule = "forbidden truncation"
	ForbiddenSign       Rule = "forbidden sign conversion"
	PolicyProgress      Rule = "adaptation policy does not move toward the target shape"
	EmptyConcatenation  Rule = "concatenation without operand"
	WidthOverflow       Rule = "width overflow"
	ValueRange          Rule = "value outside of the shape range"
	DivisionByZero      Rule = "division by zero"
)

// PrefixWith returns a function to prefix errors with a formatted string.
func PrefixWith(s string, o ...any) func(err error) error {
	return func(err error) error {
		return fmt.Errorf("%s%w", fmt.Sprintf(s, o...), err)
	}
}
