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

// Package expr builds trees of fixed-width integer expressions.
//
// The shape (width and signedness) of every node is computed from the shapes of
// its operands when the node is assembled. Shape rules are checked at that time:
// a tree that has been built successfully can always be computed.
// Trees are immutable and can be shared and computed concurrently.
package expr

import (
	"fmt"
	"strings"

	"github.com/gx-org/apint/build/fmterr"
	"github.com/gx-org/apint/build/shape"
	"github.com/gx-org/apint/interp/pattern"
)

type (
	// Expr is an expression with a static shape.
	Expr interface {
		// Shape of the expression.
		// The shape never depends on the values of the leaves of the expression.
		Shape() shape.Shape
		// Compute the bit pattern of the expression.
		// The pattern returned has the shape of the expression.
		Compute() pattern.Pattern
	}

	// Node is an expression computed from operands.
	Node interface {
		Expr
		// Label describes the operator of the node, including its parameters,
		// but not its operands.
		Label() string
		// Operands of the node. Leaves have no operands.
		Operands() []Expr
		// Apply the operator to the patterns of the operands.
		Apply(operands []pattern.Pattern) pattern.Pattern
	}
)

type node struct {
	shp      shape.Shape
	operands []Expr
}

// Shape of the expression.
func (n *node) Shape() shape.Shape {
	return n.shp
}

// Operands of the node.
func (n *node) Operands() []Expr {
	return append([]Expr(nil), n.operands...)
}

func compute(n Node) pattern.Pattern {
	operands := n.Operands()
	vals := make([]pattern.Pattern, len(operands))
	for i, operand := range operands {
		vals[i] = operand.Compute()
	}
	return n.Apply(vals)
}

func nodeString(n Node) string {
	operands := n.Operands()
	if len(operands) == 0 {
		return n.Label()
	}
	ss := make([]string, len(operands))
	for i, operand := range operands {
		ss[i] = String(operand)
	}
	return n.Label() + "(" + strings.Join(ss, ", ") + ")"
}

// String returns a single line representation of an expression.
func String(x Expr) string {
	if x == nil {
		return "nil"
	}
	if strg, ok := x.(fmt.Stringer); ok {
		return strg.String()
	}
	return fmt.Sprintf("%T[%s]", x, x.Shape())
}

// Eval computes an expression and returns runtime faults, such as a division
// by zero, as errors.
func Eval(x Expr) (p pattern.Pattern, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		rErr, ok := r.(error)
		if !ok || !fmterr.Is(rErr, fmterr.DivisionByZero) {
			panic(r)
		}
		err = rErr
	}()
	return x.Compute(), nil
}

func checkShape(op string, x Expr) error {
	if x == nil {
		return fmterr.Errorf(fmterr.InvalidShape, op, "nil operand")
	}
	if err := x.Shape().Validate(); err != nil {
		return fmterr.PrefixWith("%s: ", op)(err)
	}
	return nil
}
