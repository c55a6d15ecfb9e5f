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

// Utility apeval evaluates fixed-width integer expressions from the command line.
//
// Apply an operator to literal operands:
//
//	apeval -op add -arg u8:254 -arg u8:3 -as u8
//
// Run test vector suites:
//
//	apeval -vectors suite.yaml,other.yaml
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gx-org/apint/api/value"
	apfmt "github.com/gx-org/apint/base/fmt"
	"github.com/gx-org/apint/build/expr"
	"github.com/gx-org/apint/build/literal"
	"github.com/gx-org/apint/interp/evaluator"
	"github.com/gx-org/apint/interp/ops"
	"github.com/gx-org/apint/interp/pattern"
	"github.com/gx-org/apint/tests/vectors"
	"github.com/gx-org/apint/tools/apflag"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

type config struct {
	op      *string
	args    *[]string
	as      *apflag.ShapeValue
	policy  *apflag.AdaptorValue
	vectors *[]string
	dump    *bool
	verbose *bool
	list    *bool
}

func newConfig(fs *flag.FlagSet) *config {
	return &config{
		op:      fs.String("op", "", "operator applied to the arguments (see -list)"),
		args:    apflag.StringListVar(fs, "arg", "literal arguments, for example u8:254 or 0b1011"),
		as:      apflag.ShapeVar(fs, "as", "shape the result is converted to, for example u8"),
		policy:  apflag.AdaptorVar(fs, "policy", "adaptor used by -as: default, overset, exact, or extend,truncate,sign policies"),
		vectors: apflag.StringListVar(fs, "vectors", "YAML test vector files to run"),
		dump:    fs.Bool("dump", false, "print the numbered lines of the expression tree"),
		verbose: fs.Bool("v", false, "verbose logging"),
		list:    fs.Bool("list", false, "list the operators and exit"),
	}
}

func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

func listOperators(w io.Writer) error {
	for _, name := range ops.Names() {
		usage, err := ops.Usage(name)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, usage); err != nil {
			return err
		}
	}
	return nil
}

func buildExpr(cfg *config) (expr.Expr, error) {
	if len(*cfg.args) == 0 {
		return nil, errors.Errorf("no argument: please use -arg to specify the operands")
	}
	args := make([]expr.Expr, len(*cfg.args))
	for i, arg := range *cfg.args {
		c, err := literal.ParseAny(arg)
		if err != nil {
			return nil, errors.Wrapf(err, "argument %d", i)
		}
		args[i] = c
	}
	if *cfg.op == "" {
		if len(args) != 1 {
			return nil, errors.Errorf("%d arguments without operator: please use -op to specify an operator", len(args))
		}
		return args[0], nil
	}
	return ops.Apply(*cfg.op, args...)
}

func evaluate(w io.Writer, cfg *config) error {
	e, err := buildExpr(cfg)
	if err != nil {
		return err
	}
	slog.Debug("expression built", "expr", expr.String(e), "shape", e.Shape())
	if *cfg.dump {
		if _, err := fmt.Fprint(w, apfmt.Number(expr.Dump(e))); err != nil {
			return err
		}
	}
	var p pattern.Pattern
	if cfg.as.IsSet {
		val, err := value.New(cfg.as.Shape, e, value.WithAdaptor(cfg.policy.Adaptor))
		if err != nil {
			return err
		}
		p = val.Pattern()
	} else {
		if p, err = evaluator.New().Compute(e); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintf(w, "%s %s 0b%s\n", p, p.Hex(), p.Binary())
	return err
}

func runVectors(w io.Writer, paths []string) error {
	ev := evaluator.New()
	var errs error
	for _, path := range paths {
		suite, err := vectors.LoadFile(path)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		results, err := suite.Run(ev)
		errs = multierr.Append(errs, err)
		passed := 0
		for _, res := range results {
			if res.Failure == nil {
				passed++
				slog.Debug("vector passed", "suite", suite.Name, "vector", res.Vector.Name, "got", res.Got)
				continue
			}
			slog.Error("vector failed", "suite", suite.Name, "vector", res.Vector.Name, "error", res.Failure)
		}
		if _, err := fmt.Fprintf(w, "%s: %d/%d passed\n", suite.Name, passed, len(results)); err != nil {
			return err
		}
	}
	stats := ev.Stats()
	slog.Debug("evaluator cache", "hits", stats.Hits, "misses", stats.Misses, "entries", stats.Entries)
	return errs
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("apeval", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfg := newConfig(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	setupLogging(stderr, *cfg.verbose)
	switch {
	case *cfg.list:
		return listOperators(stdout)
	case len(*cfg.vectors) > 0:
		return runVectors(stdout, *cfg.vectors)
	default:
		return evaluate(stdout, cfg)
	}
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if err == flag.ErrHelp {
			os.Exit(2)
		}
		for _, err := range multierr.Errors(err) {
			fmt.Fprintln(os.Stderr, strings.TrimSpace(err.Error()))
		}
		os.Exit(1)
	}
}
