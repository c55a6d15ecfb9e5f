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

// Package apflag provides flag types for apint tools.
package apflag

import (
	"flag"
	"strings"

	"github.com/gx-org/apint/build/expr"
	"github.com/gx-org/apint/build/shape"
	"github.com/gx-org/apint/interp/ops"
)

type stringList struct {
	list *[]string
}

func (sl *stringList) String() string {
	if sl.list == nil {
		return ""
	}
	return strings.Join(*sl.list, ",")
}

func (sl *stringList) Set(values string) error {
	for _, value := range strings.Split(values, ",") {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		*sl.list = append(*sl.list, value)
	}
	return nil
}

// StringListVar defines a flag in a flag set to pass a list of strings.
// The flag can be repeated and each value can be a comma separated list.
func StringListVar(fs *flag.FlagSet, name, doc string) *[]string {
	var list []string
	fs.Var(&stringList{&list}, name, doc)
	return &list
}

// ShapeValue is a flag value holding a shape, for example u8 or s12.
type ShapeValue struct {
	Shape shape.Shape
	// IsSet is true if the flag has been set.
	IsSet bool
}

// String returns the shape or an empty string if the flag has not been set.
func (v *ShapeValue) String() string {
	if v == nil || !v.IsSet {
		return ""
	}
	return v.Shape.String()
}

// Set parses the shape.
func (v *ShapeValue) Set(s string) error {
	shp, err := shape.Parse(s)
	if err != nil {
		return err
	}
	v.Shape, v.IsSet = shp, true
	return nil
}

// ShapeVar defines a shape flag in a flag set.
func ShapeVar(fs *flag.FlagSet, name, doc string) *ShapeValue {
	v := &ShapeValue{}
	fs.Var(v, name, doc)
	return v
}

// AdaptorValue is a flag value holding an adaptor (see ops.Adaptor).
type AdaptorValue struct {
	Adaptor expr.Adaptor
	name    string
}

// String returns the name of the adaptor.
func (v *AdaptorValue) String() string {
	if v == nil || v.name == "" {
		return "default"
	}
	return v.name
}

// Set parses the adaptor.
func (v *AdaptorValue) Set(s string) error {
	a, err := ops.Adaptor(s)
	if err != nil {
		return err
	}
	v.Adaptor, v.name = a, s
	return nil
}

// AdaptorVar defines an adaptor flag in a flag set.
// The default adaptor is expr.DefaultAdaptor.
func AdaptorVar(fs *flag.FlagSet, name, doc string) *AdaptorValue {
	v := &AdaptorValue{Adaptor: expr.DefaultAdaptor}
	fs.Var(v, name, doc)
	return v
}
