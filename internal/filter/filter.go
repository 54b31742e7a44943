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

// Package filter holds the byte filters a printer runs its input through.
// A filter sees one stream at a time, in order, and may remember what it
// saw last (line starts, blank runs) between calls.
package filter

// Filter looks at buf[:n] and tells the writer loop what to do with it:
//   - (nil, 0, k): drop k input bytes,
//   - (nil, k, k): write buf[:k] as is,
//   - (out, len(out), k): write out in place of k input bytes.
//
// ncons is never 0 while n > 0; the caller keeps calling until the whole
// buffer is consumed.
type Filter interface {
	Process(buf []byte, n int) (out []byte, nwrite int, ncons int, err error)
}

// LineStream is a Filter that numbers lines over a sequence of inputs.
// Reset starts a new input without touching the counter.
type LineStream interface {
	Filter
	Reset()
	SetNextLine(line int)
	NextLine() int
}
