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

package fmterr

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// stackTrace returns the frames of the innermost error carrying a stack trace,
// without the frames of this package.
func stackTrace(err error) []errors.Frame {
	var withSt interface {
		StackTrace() errors.StackTrace
	}
	if !errors.As(err, &withSt) {
		return nil
	}
	var frames []errors.Frame
	for _, frame := range withSt.StackTrace() {
		if strings.Contains(fmt.Sprintf("%+s", frame), "/build/fmterr.") {
			continue
		}
		frames = append(frames, frame)
	}
	return frames
}

func format(err error, s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if !s.Flag('+') {
			io.WriteString(s, err.Error())
			return
		}
		io.WriteString(s, err.Error())
		frames := stackTrace(err)
		if len(frames) == 0 {
			return
		}
		io.WriteString(s, "\nassembled at:")
		for _, frame := range frames {
			fmt.Fprintf(s, "\n%+v", frame)
		}
	case 's':
		io.WriteString(s, err.Error())
	case 'q':
		fmt.Fprintf(s, "%q", err.Error())
	}
}
