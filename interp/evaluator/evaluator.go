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

// Package evaluator computes expression trees and caches the patterns of their nodes.
//
// Nodes are identified by their structural fingerprint, label and shape, so
// subtrees shared between expressions, or repeated in the same expression,
// are only computed once. A node found in the cache is not walked further.
package evaluator

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gx-org/apint/build/expr"
	"github.com/gx-org/apint/build/fmterr"
	"github.com/gx-org/apint/interp/pattern"
	"go.uber.org/multierr"
)

// defaultNumWorkers is the number of simultaneous workers used by ComputeAll.
const defaultNumWorkers = 16

type (
	// Option configures an evaluator.
	Option func(*Evaluator)

	// Evaluator computes expressions. It is safe for concurrent use.
	Evaluator struct {
		numWorkers   int
		cache        cache
		hits, misses atomic.Uint64
	}

	// Stats about the cache of an evaluator.
	Stats struct {
		// Hits is the number of nodes found in the cache.
		// The operands of a node found in the cache are not counted.
		Hits uint64
		// Misses is the number of nodes that had to be computed.
		Misses uint64
		// Entries is the number of patterns stored in the cache.
		Entries int
	}
)

// WithWorkers sets the number of workers used by ComputeAll.
func WithWorkers(n int) Option {
	return func(ev *Evaluator) {
		ev.numWorkers = max(n, 1)
	}
}

// New returns a new evaluator with an empty cache.
func New(opts ...Option) *Evaluator {
	ev := &Evaluator{numWorkers: defaultNumWorkers}
	for _, opt := range opts {
		opt(ev)
	}
	return ev
}

// Compute an expression.
// A division by zero is returned as an error.
func (ev *Evaluator) Compute(e expr.Expr) (p pattern.Pattern, err error) {
	if e == nil {
		return pattern.Pattern{}, fmterr.Errorf(fmterr.InvalidShape, "compute", "nil expression")
	}
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
	return ev.eval(fingerprint(e)), nil
}

// tree is an expression with the cache keys of all its nodes.
type tree struct {
	node     expr.Node
	key      key
	leaf     pattern.Pattern
	operands []*tree
}

// fingerprint computes the keys of all the nodes of an expression
// without computing any pattern other than the leaves.
func fingerprint(e expr.Expr) *tree {
	n, ok := e.(expr.Node)
	if !ok || len(n.Operands()) == 0 {
		// Leaves are identified by their pattern.
		p := e.Compute()
		label := p.String()
		return &tree{
			leaf: p,
			key: key{
				fingerprint: expr.NodeFingerprint(label, p.Shape(), nil),
				label:       label,
				shape:       p.Shape(),
			},
		}
	}
	operands := n.Operands()
	t := &tree{node: n, operands: make([]*tree, len(operands))}
	fps := make([]uint64, len(operands))
	for i, operand := range operands {
		t.operands[i] = fingerprint(operand)
		fps[i] = t.operands[i].key.fingerprint
	}
	t.key = key{
		fingerprint: expr.NodeFingerprint(n.Label(), n.Shape(), fps),
		label:       n.Label(),
		shape:       n.Shape(),
	}
	return t
}

// eval returns the pattern of a node. Operands of a node found in the
// cache are not visited.
func (ev *Evaluator) eval(t *tree) pattern.Pattern {
	if t.node == nil {
		return t.leaf
	}
	if p, ok := ev.cache.load(t.key); ok {
		ev.hits.Add(1)
		return p
	}
	ev.misses.Add(1)
	vals := make([]pattern.Pattern, len(t.operands))
	for i, operand := range t.operands {
		vals[i] = ev.eval(operand)
	}
	p := t.node.Apply(vals)
	ev.cache.store(t.key, p)
	return p
}

type asyncErrors struct {
	locker sync.Mutex
	errs   error
}

func (ae *asyncErrors) add(err error) {
	ae.locker.Lock()
	defer ae.locker.Unlock()

	ae.errs = multierr.Append(ae.errs, err)
}

type task struct {
	index int
	e     expr.Expr
}

// ComputeAll computes independent expressions in parallel.
// The patterns are returned in the order of the expressions.
// The pattern of an expression failing to compute is the zero pattern and
// all the errors are returned.
func (ev *Evaluator) ComputeAll(exprs []expr.Expr) ([]pattern.Pattern, error) {
	out := make([]pattern.Pattern, len(exprs))
	var (
		wg   sync.WaitGroup
		errs asyncErrors
	)
	toWorker := make(chan task)
	for range min(ev.numWorkers, max(len(exprs), 1)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range toWorker {
				p, err := ev.Compute(t.e)
				if err != nil {
					errs.add(fmt.Errorf("expression %d: %w", t.index, err))
					continue
				}
				out[t.index] = p
			}
		}()
	}
	for i, e := range exprs {
		toWorker <- task{index: i, e: e}
	}
	close(toWorker)
	wg.Wait()
	return out, errs.errs
}

// Stats returns statistics about the cache.
func (ev *Evaluator) Stats() Stats {
	return Stats{
		Hits:    ev.hits.Load(),
		Misses:  ev.misses.Load(),
		Entries: ev.cache.size(),
	}
}

// Reset empties the cache and the statistics.
func (ev *Evaluator) Reset() {
	ev.cache.clear()
	ev.hits.Store(0)
	ev.misses.Store(0)
}
