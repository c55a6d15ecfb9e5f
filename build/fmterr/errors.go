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
	"strings"

	"go.uber.org/multierr"
)

// Errors accumulates errors.
// The zero value is ready to use.
type Errors struct {
	err error
}

// Append an error to the list of errors.
// Nil errors are ignored. The returned value is true if err was nil.
func (errs *Errors) Append(err error) bool {
	if err == nil {
		return true
	}
	errs.err = multierr.Append(errs.err, err)
	return false
}

// Appendf appends a shape error.
func (errs *Errors) Appendf(rule Rule, op string, format string, a ...any) bool {
	return errs.Append(Errorf(rule, op, format, a...))
}

// Empty returns true if no error has been declared.
func (errs *Errors) Empty() bool {
	return errs == nil || errs.err == nil
}

// Errors returns the list of all collected errors.
func (errs *Errors) Errors() []error {
	if errs.Empty() {
		return nil
	}
	return multierr.Errors(errs.err)
}

// ToError returns the errors as an error interface or nil if there is no error.
func (errs *Errors) ToError() error {
	if errs.Empty() {
		return nil
	}
	return errs.err
}

// String returns the errors, one per line.
func (errs *Errors) String() string {
	var ss []string
	for _, err := range errs.Errors() {
		ss = append(ss, err.Error())
	}
	return strings.Join(ss, "\n")
}

// Format writes the errors into the state of the formatter.
func (errs *Errors) Format(s fmt.State, verb rune) {
	for i, err := range errs.Errors() {
		if i > 0 {
			fmt.Fprint(s, "\n")
		}
		format(err, s, verb)
	}
}
