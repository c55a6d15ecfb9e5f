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

// Package intmath provides integer helpers used to split bit vectors.
package intmath

import "github.com/pkg/errors"

// Log2 returns the floor of the base 2 logarithm of n.
func Log2(n uint32) (uint32, error) {
	if n == 0 {
		return 0, errors.Errorf("cannot compute log2(0)")
	}
	var log uint32
	for n > 1 {
		n >>= 1
		log++
	}
	return log, nil
}

// FloorPow2 returns the largest power of two smaller or equal to n.
func FloorPow2(n uint32) (uint32, error) {
	log, err := Log2(n)
	if err != nil {
		return 0, err
	}
	return uint32(1) << log, nil
}
