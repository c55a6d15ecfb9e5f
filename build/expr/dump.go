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
	"fmt"
	"strings"

	apfmt "github.com/gx-org/apint/base/fmt"
)

// Dump returns a multi-line representation of an expression tree.
// Each line shows a node followed by its shape.
// Operands are indented below their node.
func Dump(x Expr) string {
	n, ok := x.(Node)
	if !ok {
		return fmt.Sprintf("%s %s\n", String(x), x.Shape())
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", n.Label(), n.Shape())
	for _, operand := range n.Operands() {
		b.WriteString(apfmt.Indent(Dump(operand)))
	}
	return b.String()
}
