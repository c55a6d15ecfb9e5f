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

// Package ops builds expressions from operator names.
//
// An operator is written name[:p1[:p2]] where the optional parameters are
// static properties of the operator, for example slice:7:0 or zext:16.
// Comparisons are computed when the operator is applied and return a 1-bit
// unsigned constant.
package ops

import (
	"sort"
	"strconv"
	"strings"

	"github.com/gx-org/apint/build/expr"
	"github.com/gx-org/apint/interp/pattern"
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
)

// variadic is the arity of operators accepting any number of operands.
const variadic = -1

type operator struct {
	arity  int
	params []string
	build  func(params []uint32, args []expr.Expr) (expr.Expr, error)
}

// toExpr converts a node to an expression, returning a nil expression on error.
func toExpr[T expr.Expr](x T, err error) (expr.Expr, error) {
	if err != nil {
		return nil, err
	}
	return x, nil
}

func binary[T expr.Expr](f func(x, y expr.Expr) (T, error)) operator {
	return operator{
		arity: 2,
		build: func(_ []uint32, args []expr.Expr) (expr.Expr, error) {
			return toExpr(f(args[0], args[1]))
		},
	}
}

func unary[T expr.Expr](f func(x expr.Expr) (T, error)) operator {
	return operator{
		arity: 1,
		build: func(_ []uint32, args []expr.Expr) (expr.Expr, error) {
			return toExpr(f(args[0]))
		},
	}
}

func comparison(f func(x, y expr.Expr) (bool, error)) operator {
	return operator{
		arity: 2,
		build: func(_ []uint32, args []expr.Expr) (expr.Expr, error) {
			b, err := f(args[0], args[1])
			if err != nil {
				return nil, err
			}
			return expr.NewConstant(pattern.Bool(b)), nil
		},
	}
}

func reduction(kind expr.ReduceKind) operator {
	return operator{
		arity: 1,
		build: func(_ []uint32, args []expr.Expr) (expr.Expr, error) {
			return toExpr(expr.Reduce(kind, args[0]))
		},
	}
}

var operators = map[string]operator{
	"add": binary(expr.Add),
	"sub": binary(expr.Sub),
	"mul": binary(expr.Mul),
	"div": binary(expr.Div),
	"mod": binary(expr.Mod),
	"and": binary(expr.And),
	"or":  binary(expr.Or),
	"xor": binary(expr.Xor),
	"shl": binary(expr.Shl),
	"shr": binary(expr.Shr),
	"not": unary(expr.Not),
	"eq":  comparison(expr.Equal),
	"ne":  comparison(expr.NotEqual),
	"lt":  comparison(expr.Less),
	"le":  comparison(expr.LessEqual),
	"gt":  comparison(expr.Greater),
	"ge":  comparison(expr.GreaterEqual),
	"zext": {
		arity:  1,
		params: []string{"width"},
		build: func(params []uint32, args []expr.Expr) (expr.Expr, error) {
			return toExpr(expr.ZeroExtend(params[0], args[0]))
		},
	},
	"sext": {
		arity:  1,
		params: []string{"width"},
		build: func(params []uint32, args []expr.Expr) (expr.Expr, error) {
			return toExpr(expr.SignExtend(params[0], args[0]))
		},
	},
	"slice": {
		arity:  1,
		params: []string{"high", "low"},
		build: func(params []uint32, args []expr.Expr) (expr.Expr, error) {
			return toExpr(expr.Slice(params[0], params[1], args[0]))
		},
	},
	"getbit": {
		arity:  1,
		params: []string{"index"},
		build: func(params []uint32, args []expr.Expr) (expr.Expr, error) {
			return toExpr(expr.GetBit(params[0], args[0]))
		},
	},
	"as_signed": {
		arity: 1,
		build: func(_ []uint32, args []expr.Expr) (expr.Expr, error) {
			return toExpr(expr.Reinterpret(true, args[0]))
		},
	},
	"as_unsigned": {
		arity: 1,
		build: func(_ []uint32, args []expr.Expr) (expr.Expr, error) {
			return toExpr(expr.Reinterpret(false, args[0]))
		},
	},
	"concat": {
		arity: variadic,
		build: func(_ []uint32, args []expr.Expr) (expr.Expr, error) {
			return toExpr(expr.Concat(args...))
		},
	},
	expr.ReduceOr.String():   reduction(expr.ReduceOr),
	expr.ReduceAnd.String():  reduction(expr.ReduceAnd),
	expr.ReduceNor.String():  reduction(expr.ReduceNor),
	expr.ReduceNand.String(): reduction(expr.ReduceNand),
	expr.ReduceXor.String():  reduction(expr.ReduceXor),
	expr.ReduceXnor.String(): reduction(expr.ReduceXnor),
}

// Names returns the sorted list of operator names.
func Names() []string {
	names := maps.Keys(operators)
	sort.Strings(names)
	return names
}

// Usage returns how to write an operator, for example slice:<high>:<low>.
func Usage(name string) (string, error) {
	op, ok := operators[name]
	if !ok {
		return "", errors.Errorf("unknown operator %q", name)
	}
	var b strings.Builder
	b.WriteString(name)
	for _, param := range op.params {
		b.WriteString(":<" + param + ">")
	}
	return b.String(), nil
}

// Apply builds the expression of an operator given its operands.
func Apply(op string, args ...expr.Expr) (expr.Expr, error) {
	name, paramsText, _ := strings.Cut(op, ":")
	opr, ok := operators[name]
	if !ok {
		return nil, errors.Errorf("unknown operator %q", name)
	}
	var fields []string
	if paramsText != "" {
		fields = strings.Split(paramsText, ":")
	}
	if len(fields) != len(opr.params) {
		usage, _ := Usage(name)
		return nil, errors.Errorf("operator %q: got %d parameter(s) but want %d: %s", op, len(fields), len(opr.params), usage)
	}
	params := make([]uint32, len(fields))
	for i, field := range fields {
		val, err := strconv.ParseUint(field, 10, 32)
		if err != nil {
			return nil, errors.Errorf("operator %q: cannot parse parameter %s: %v", op, opr.params[i], err)
		}
		params[i] = uint32(val)
	}
	if opr.arity != variadic && len(args) != opr.arity {
		return nil, errors.Errorf("operator %q: got %d operand(s) but want %d", op, len(args), opr.arity)
	}
	for i, arg := range args {
		if arg == nil {
			return nil, errors.Errorf("operator %q: operand %d is nil", op, i)
		}
	}
	return opr.build(params, args)
}
