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

package ops

import (
	"sort"
	"strings"

	"github.com/gx-org/apint/build/expr"
	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
)

var (
	adaptors = map[string]expr.Adaptor{
		"default": expr.DefaultAdaptor,
		"overset": expr.OversetAdaptor,
		"exact":   expr.ExactAdaptor,
	}

	extendPolicies = map[string]expr.ExtendPolicy{
		"zext":   expr.ZeroExtension{},
		"sext":   expr.SignExtension{},
		"forbid": expr.Forbid{},
	}

	truncatePolicies = map[string]expr.TruncatePolicy{
		"trunc":  expr.Truncation{},
		"forbid": expr.Forbid{},
	}

	signPolicies = map[string]expr.SignPolicy{
		"reinterpret": expr.ReinterpretSign{},
		"forbid":      expr.Forbid{},
	}
)

// AdaptorNames returns the sorted names of the predefined adaptors.
func AdaptorNames() []string {
	names := maps.Keys(adaptors)
	sort.Strings(names)
	return names
}

// Adaptor returns an adaptor given its name.
// The name is either a predefined adaptor (default, overset, or exact) or
// three policies separated by commas: the extension policy (zext, sext, or forbid),
// the truncation policy (trunc or forbid), and the sign policy (reinterpret or forbid).
// An empty name returns the default adaptor.
func Adaptor(name string) (expr.Adaptor, error) {
	if name == "" {
		return expr.DefaultAdaptor, nil
	}
	if a, ok := adaptors[name]; ok {
		return a, nil
	}
	fields := strings.Split(name, ",")
	if len(fields) != 3 {
		return expr.Adaptor{}, errors.Errorf("unknown adaptor %q: want one of %v or extend,truncate,sign policies", name, AdaptorNames())
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	ext, ok := extendPolicies[fields[0]]
	if !ok {
		return expr.Adaptor{}, errors.Errorf("adaptor %q: unknown extension policy %q", name, fields[0])
	}
	trunc, ok := truncatePolicies[fields[1]]
	if !ok {
		return expr.Adaptor{}, errors.Errorf("adaptor %q: unknown truncation policy %q", name, fields[1])
	}
	sign, ok := signPolicies[fields[2]]
	if !ok {
		return expr.Adaptor{}, errors.Errorf("adaptor %q: unknown sign policy %q", name, fields[2])
	}
	return expr.Adaptor{Extend: ext, Truncate: trunc, Sign: sign}, nil
}
