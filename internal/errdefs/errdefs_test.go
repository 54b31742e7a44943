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

package errdefs

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestExitCode(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: ExitOK},
		{name: "unknown", err: errors.New("boom"), want: ExitFailure},
		{name: "invalid option", err: fmt.Errorf("%w -- '--bogus'", ErrInvalidOption), want: ExitInvalidOption},
		{name: "file open", err: fmt.Errorf("%w: missing: %w", ErrFileOpen, errors.New("nope")), want: ExitFileOpen},
		{name: "read", err: fmt.Errorf("%w: stdin", ErrRead), want: ExitRead},
		{name: "write", err: fmt.Errorf("%w: broken pipe", ErrWrite), want: ExitWrite},
		{name: "config", err: fmt.Errorf("%w: bad yaml", ErrConfig), want: ExitConfig},
		{name: "interrupted", err: fmt.Errorf("%w: %w", ErrInterrupted, context.Canceled), want: ExitInterrupted},
		{
			name: "read wins over open",
			err:  errors.Join(fmt.Errorf("%w: a", ErrFileOpen), fmt.Errorf("%w: b", ErrRead)),
			want: ExitRead,
		},
		{
			name: "write wins over everything",
			err: errors.Join(
				fmt.Errorf("%w: a", ErrFileOpen),
				fmt.Errorf("%w: b", ErrRead),
				fmt.Errorf("%w: c", ErrWrite),
			),
			want: ExitWrite,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExitCode(tc.err); got != tc.want {
				t.Fatalf("ExitCode(%v) = %d; want %d", tc.err, got, tc.want)
			}
		})
	}
}
