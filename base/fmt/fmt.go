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

// Package fmt provides utility methods for building multi-line string representations.
package fmt

import (
	"fmt"
	"strconv"
	"strings"
)

// Number adds a line number to all lines in a string.
// Numbers are padded with zeros to the same number of digits.
func Number(x string) string {
	lines := strings.SplitAfter(x, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	numDigits := len(strconv.Itoa(len(lines)))
	var s strings.Builder
	for i, line := range lines {
		fmt.Fprintf(&s, "%0*d %s", numDigits, i+1, line)
	}
	return s.String()
}

// Indent all lines of a string by a tabulation.
func Indent(x string) string {
	var y strings.Builder
	for line := range strings.Lines(x) {
		y.WriteString("\t")
		y.WriteString(line)
	}
	return y.String()
}
