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

package expr

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/gx-org/apint/build/shape"
)

// NodeFingerprint returns the fingerprint of a node given its label, its shape,
// and the fingerprints of its operands.
func NodeFingerprint(label string, s shape.Shape, operands []uint64) uint64 {
	d := xxhash.New()
	var buf [8]byte
	d.WriteString(label)
	binary.LittleEndian.PutUint32(buf[:4], s.Width)
	buf[4] = 0
	if s.Signed {
		buf[4] = 1
	}
	d.Write(buf[:5])
	for _, op := range operands {
		binary.LittleEndian.PutUint64(buf[:], op)
		d.Write(buf[:])
	}
	return d.Sum64()
}

// Fingerprint returns a hash of an expression tree.
// Two trees computing the same operators on the same constants
// have the same fingerprint.
func Fingerprint(x Expr) uint64 {
	n, ok := x.(Node)
	if !ok {
		return NodeFingerprint(String(x), x.Shape(), nil)
	}
	operands := n.Operands()
	fps := make([]uint64, len(operands))
	for i, operand := range operands {
		fps[i] = Fingerprint(operand)
	}
	return NodeFingerprint(n.Label(), n.Shape(), fps)
}
