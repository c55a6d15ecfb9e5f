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

package evaluator

import (
	"sync"

	"github.com/gx-org/apint/build/shape"
	"github.com/gx-org/apint/interp/pattern"
)

// key identifies a computed node: its structural fingerprint, its label and its shape.
// Two different trees only share a key if their 64-bit fingerprints collide
// while their root labels and shapes are equal. The cache then returns the
// pattern of the first tree computed.
type key struct {
	fingerprint uint64
	label       string
	shape       shape.Shape
}

// cache maps keys to patterns. It is safe for concurrent use.
type cache struct {
	m sync.Map
}

func (c *cache) load(k key) (pattern.Pattern, bool) {
	v, ok := c.m.Load(k)
	if !ok {
		return pattern.Pattern{}, false
	}
	return v.(pattern.Pattern), true
}

func (c *cache) store(k key, p pattern.Pattern) {
	c.m.Store(k, p)
}

// size returns the number of entries in the cache. This takes O(n) time.
func (c *cache) size() (n int) {
	c.m.Range(func(any, any) bool {
		n++
		return true
	})
	return
}

func (c *cache) clear() {
	c.m.Clear()
}
