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

// Package vectors loads and runs declarative test vectors.
//
// A suite is a YAML document listing vectors. Each vector applies an operator
// to literal operands, optionally materializes the result into a value of a
// given shape, and checks the pattern or the error:
//
//	name: sums
//	vectors:
//	  - name: wrap into 8 bits
//	    op: add
//	    args: [u8:254, u8:3]
//	    as: u8
//	    want: u8:1
package vectors

import (
	"embed"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/gx-org/apint/api/value"
	"github.com/gx-org/apint/build/expr"
	"github.com/gx-org/apint/build/fmterr"
	"github.com/gx-org/apint/build/literal"
	"github.com/gx-org/apint/build/shape"
	"github.com/gx-org/apint/interp/evaluator"
	"github.com/gx-org/apint/interp/ops"
	"github.com/gx-org/apint/interp/pattern"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// FS is the filesystem containing the suites shipped with the module.
//
//go:embed testdata
var FS embed.FS

type (
	// Suite is a list of vectors.
	Suite struct {
		Name        string   `yaml:"name"`
		Description string   `yaml:"description"`
		Vectors     []Vector `yaml:"vectors"`
	}

	// Vector is a single check.
	Vector struct {
		Name string `yaml:"name"`
		// Op is the operator applied to the arguments (see package ops).
		// If empty, the vector has a single argument.
		Op string `yaml:"op"`
		// Args are literals (see package literal).
		Args []string `yaml:"args"`
		// As is the shape of the value the result is converted to.
		// If empty, the result is not converted.
		As string `yaml:"as"`
		// Policy is the adaptor used to convert the result to As (see ops.Adaptor).
		Policy string `yaml:"policy"`
		// Want is the expected pattern, for example u8:1.
		Want string `yaml:"want"`
		// WantShape is the expected shape of the result, for example s9.
		WantShape string `yaml:"want_shape"`
		// WantError is the rule violated by the vector, or a substring of the error.
		WantError string `yaml:"want_error"`
	}

	// Result of running a vector.
	Result struct {
		Vector *Vector
		// Got is the pattern computed for the vector, if any.
		Got pattern.Pattern
		// Err is the error returned when building or computing the vector.
		Err error
		// Failure describes why the vector did not pass.
		// Nil if the vector passed.
		Failure error
	}
)

// Load a suite from a reader.
func Load(r io.Reader) (*Suite, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	suite := &Suite{}
	if err := dec.Decode(suite); err != nil {
		return nil, errors.Wrap(err, "cannot decode test vectors")
	}
	var errs fmterr.Errors
	for i := range suite.Vectors {
		errs.Append(suite.Vectors[i].validate())
	}
	if err := errs.ToError(); err != nil {
		return nil, err
	}
	return suite, nil
}

// LoadFile loads a suite from a file.
func LoadFile(path string) (*Suite, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	suite, err := Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return suite, nil
}

// LoadFS loads a suite from a file in a filesystem.
func LoadFS(fsys fs.FS, path string) (*Suite, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	suite, err := Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return suite, nil
}

func (v *Vector) validate() error {
	if v.Name == "" {
		return errors.Errorf("vector without a name")
	}
	if len(v.Args) == 0 {
		return errors.Errorf("vector %q: no argument", v.Name)
	}
	if v.Op == "" && len(v.Args) != 1 {
		return errors.Errorf("vector %q: %d arguments without an operator", v.Name, len(v.Args))
	}
	if v.Want == "" && v.WantShape == "" && v.WantError == "" {
		return errors.Errorf("vector %q: nothing to check", v.Name)
	}
	if v.WantError != "" && (v.Want != "" || v.WantShape != "") {
		return errors.Errorf("vector %q: cannot expect both an error and a result", v.Name)
	}
	return nil
}

func (v *Vector) build() (expr.Expr, error) {
	args := make([]expr.Expr, len(v.Args))
	for i, arg := range v.Args {
		c, err := literal.ParseAny(arg)
		if err != nil {
			return nil, errors.Wrapf(err, "argument %d", i)
		}
		args[i] = c
	}
	if v.Op == "" {
		return args[0], nil
	}
	return ops.Apply(v.Op, args...)
}

func (v *Vector) compute(ev *evaluator.Evaluator) (pattern.Pattern, error) {
	e, err := v.build()
	if err != nil {
		return pattern.Pattern{}, err
	}
	if v.As == "" {
		return ev.Compute(e)
	}
	s, err := shape.Parse(v.As)
	if err != nil {
		return pattern.Pattern{}, err
	}
	a, err := ops.Adaptor(v.Policy)
	if err != nil {
		return pattern.Pattern{}, err
	}
	val, err := value.New(s, e, value.WithAdaptor(a))
	if err != nil {
		return pattern.Pattern{}, err
	}
	return val.Pattern(), nil
}

func (v *Vector) check(got pattern.Pattern, err error) error {
	if v.WantError != "" {
		if err == nil {
			return errors.Errorf("got %s but want error %q", got, v.WantError)
		}
		if rule, ok := fmterr.RuleOf(err); ok && string(rule) == v.WantError {
			return nil
		}
		if !strings.Contains(err.Error(), v.WantError) {
			return errors.Errorf("got error %q but want error %q", err, v.WantError)
		}
		return nil
	}
	if err != nil {
		return errors.Errorf("unexpected error: %v", err)
	}
	if v.WantShape != "" && got.Shape().String() != v.WantShape {
		return errors.Errorf("got shape %s but want %s", got.Shape(), v.WantShape)
	}
	if v.Want != "" && got.String() != v.Want && got.Hex() != v.Want {
		return errors.Errorf("got %s (%s) but want %s", got, got.Hex(), v.Want)
	}
	return nil
}

// Run all the vectors of the suite.
// The error aggregates the failures of all the vectors.
func (s *Suite) Run(ev *evaluator.Evaluator) ([]Result, error) {
	if ev == nil {
		ev = evaluator.New()
	}
	results := make([]Result, len(s.Vectors))
	var errs error
	for i := range s.Vectors {
		v := &s.Vectors[i]
		got, err := v.compute(ev)
		res := Result{Vector: v, Got: got, Err: err}
		if res.Failure = v.check(got, err); res.Failure != nil {
			errs = multierr.Append(errs, errors.Wrapf(res.Failure, "%s: %s", s.Name, v.Name))
		}
		results[i] = res
	}
	return results, errs
}
