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

package fmterr

import (
	"fmt"

	"github.com/pkg/errors"
)

// ShapeError is an error raised when an expression violates a shape rule.
type ShapeError struct {
	// Rule violated by the expression.
	Rule Rule
	// Op is the operator being assembled.
	Op string
	err error
}

// Errorf returns a formatted error for the violation of a rule by an operator.
func Errorf(rule Rule, op string, format string, a ...any) error {
	return &ShapeError{
		Rule: rule,
		Op:   op,
		err:  errors.Errorf(format, a...),
	}
}

// Error returns a string description of the error.
func (err *ShapeError) Error() string {
	return fmt.Sprintf("%s: %s: %s", err.Op, err.Rule, err.err.Error())
}

// Unwrap the error.
func (err *ShapeError) Unwrap() error {
	return err.err
}

// Format writes the error into the state of the formatter.
func (err *ShapeError) Format(s fmt.State, verb rune) {
	format(err, s, verb)
}

// RuleOf returns the rule violated by an error.
// It returns false if the error (or any error it wraps) is not a shape error.
func RuleOf(err error) (Rule, bool) {
	var shapeErr *ShapeError
	if !errors.As(err, &shapeErr) {
		return "", false
	}
	return shapeErr.Rule, true
}

// Is returns true if err, or any error it wraps, violates the given rule.
func Is(err error, rule Rule) bool {
	got, ok := RuleOf(err)
	return ok && got == rule
}

// Internal marks an error as internal, potentially adding additional information.
func Internal(err error) error {
	return fmt.Errorf("apint internal error. This is a bug in apint. Please report it. Error:\n%+v", err)
}

// Internalf returns a formatted internal error.
func Internalf(format string, a ...any) error {
	return Internal(errors.Errorf(format, a...))
}
