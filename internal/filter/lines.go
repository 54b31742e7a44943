// Copyright 2025 Emiliano Spinella (eminwux)
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
//
// SPDX-License-Identifier: Apache-2.0

package filter

import "strconv"

const (
	newline = '\n'

	// numberWidth is the right-aligned field width of a line number prefix.
	numberWidth = 6
)

// LineFilter tracks line starts and blank runs on a byte stream.
// Policy:
//   - A byte following '\n' (or the first byte of a stream) starts a line.
//     Every line start advances Line; when Number is set the byte is
//     preceded by Line formatted as "%6d\t".
//   - When SqueezeBlank is set, a '\n' that would begin the second or later
//     empty line of a run is swallowed and leaves the state untouched.
//
// Line is the number given to the next line start. It carries across
// streams; Reset only clears the per-stream state.
type LineFilter struct {
	Number       bool
	SqueezeBlank bool
	Line         int

	// --- internal state ---
	last     byte // previous byte emitted; '\n' at stream start
	blankRun int  // consecutive '\n' seen right after a '\n'
}

var _ LineStream = (*LineFilter)(nil)

// NewLineFilter creates a LineFilter positioned at the start of a stream.
func NewLineFilter(number, squeezeBlank bool, firstLine int) *LineFilter {
	return &LineFilter{
		Number:       number,
		SqueezeBlank: squeezeBlank,
		Line:         firstLine,
		last:         newline,
	}
}

// Reset marks the start of a new stream: the next byte begins a line.
func (f *LineFilter) Reset() {
	f.last = newline
	f.blankRun = 0
}

// SetNextLine sets the number given to the next line start.
func (f *LineFilter) SetNextLine(line int) { f.Line = line }

func (f *LineFilter) NextLine() int { return f.Line }

// Process inspects buf[:n]. It returns:
//   - a run of bytes that need no editing as (nil, k, k): write buf[:k],
//   - a numbered line start as (prefix+byte, len, 1),
//   - a squeezed byte as (nil, 0, 1).
//
// State for a byte is only committed once it is part of what is returned,
// so a byte that ends a plain run is evaluated again on the next call.
func (f *LineFilter) Process(buf []byte, n int) ([]byte, int, int, error) {
	if n == 0 {
		return nil, 0, 0, nil
	}

	for i := range n {
		b := buf[i]

		run := 0
		if f.last == newline && b == newline {
			run = f.blankRun + 1
		}
		squeezed := f.SqueezeBlank && run > 1
		lineStart := !squeezed && f.last == newline
		prefixed := lineStart && f.Number

		// Flush the plain run before a byte that needs handling.
		if (squeezed || prefixed) && i > 0 {
			return nil, i, i, nil
		}

		f.blankRun = run
		if squeezed {
			return nil, 0, 1, nil
		}

		var out []byte
		if prefixed {
			out = f.prefix(b)
		}
		if lineStart {
			f.Line++
		}
		f.last = b

		if prefixed {
			return out, len(out), 1, nil
		}
	}

	return nil, n, n, nil
}

func (f *LineFilter) prefix(b byte) []byte {
	num := strconv.Itoa(f.Line)
	out := make([]byte, 0, numberWidth+len(num)+2)
	for pad := numberWidth - len(num); pad > 0; pad-- {
		out = append(out, ' ')
	}
	out = append(out, num...)
	out = append(out, '\t', b)
	return out
}
