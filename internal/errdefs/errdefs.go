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
)

var (
	ErrInvalidOption  = errors.New("invalid option")
	ErrFileOpen       = errors.New("could not open file")
	ErrRead           = errors.New("read error")
	ErrWrite          = errors.New("write error")
	ErrConfig         = errors.New("config error")
	ErrInterrupted    = errors.New("interrupted")
	ErrLoggerNotFound = errors.New("logger not found in context")
	ErrPrinterNotSet  = errors.New("printer not set")
)

const (
	ExitOK            = 0
	ExitFailure       = 1
	ExitInvalidOption = 2
	ExitFileOpen      = 3
	ExitRead          = 4
	ExitWrite         = 5
	ExitConfig        = 6
	ExitInterrupted   = 130
)

// exitCodes is ordered by precedence: when a joined error carries several
// kinds, the first match wins.
//
//nolint:gochecknoglobals // lookup table
var exitCodes = []struct {
	err  error
	code int
}{
	{ErrWrite, ExitWrite},
	{ErrInterrupted, ExitInterrupted},
	{context.Canceled, ExitInterrupted},
	{ErrRead, ExitRead},
	{ErrFileOpen, ExitFileOpen},
	{ErrInvalidOption, ExitInvalidOption},
	{ErrConfig, ExitConfig},
}

// ExitCode maps an error returned by the rcat command to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	for _, e := range exitCodes {
		if errors.Is(err, e.err) {
			return e.code
		}
	}
	return ExitFailure
}
