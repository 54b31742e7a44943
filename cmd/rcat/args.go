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

package rcat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/eminwux/rcat/internal/errdefs"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// helpArgs replaces the arguments once help is requested.
//
//nolint:gochecknoglobals // constant slice
var helpArgs = []string{"--help"}

// ScanArgs walks args in order, the way the flag parser will, and stops at
// the first help request or unknown option, whichever comes first. Help
// returns helpArgs; an unknown option returns an error wrapping
// errdefs.ErrInvalidOption that names the token. Otherwise args is returned
// unchanged. "-?" is accepted as a help alias, which pflag cannot declare.
func ScanArgs(fs *pflag.FlagSet, args []string) ([]string, error) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}
		// "-" and plain words are operands
		if len(arg) < 2 || arg[0] != '-' {
			continue
		}

		if strings.HasPrefix(arg, "--") {
			name, _, hasValue := strings.Cut(arg[2:], "=")
			switch {
			case name == "help":
				return helpArgs, nil
			case name == "version":
				continue
			}
			f := fs.Lookup(name)
			if f == nil {
				return nil, invalidOption(arg)
			}
			if needsValue(f) && !hasValue {
				i++
			}
			continue
		}

		shorts := arg[1:]
		for j := range len(shorts) {
			c := shorts[j : j+1]
			if c == "h" || c == "?" {
				return helpArgs, nil
			}
			f := fs.ShorthandLookup(c)
			if f == nil {
				return nil, invalidOption(arg)
			}
			if needsValue(f) {
				// the rest of the cluster, or the next argument, is the value
				if j == len(shorts)-1 {
					i++
				}
				break
			}
		}
	}
	return args, nil
}

func needsValue(f *pflag.Flag) bool {
	return f.NoOptDefVal == ""
}

func invalidOption(arg string) error {
	return fmt.Errorf("%w -- '%s'", errdefs.ErrInvalidOption, arg)
}

// Execute runs rootCmd with args and returns the process exit status.
// Per-file problems are reported on stderr while the run goes on, so only
// errors raised before any input is read are printed here.
func Execute(ctx context.Context, rootCmd *cobra.Command, args []string) int {
	scanned, err := ScanArgs(rootCmd.Flags(), args)
	if err == nil {
		rootCmd.SetArgs(scanned)
		rootCmd.SetContext(ctx)
		err = rootCmd.Execute()
	}

	reportError(rootCmd.ErrOrStderr(), err)
	return errdefs.ExitCode(err)
}

func reportError(w io.Writer, err error) {
	switch {
	case err == nil:
	case errors.Is(err, errdefs.ErrInvalidOption):
		fmt.Fprintf(w, "rcat: %v\n", err)
		fmt.Fprintln(w, "Try 'rcat --help' for more information.")
	case errors.Is(err, errdefs.ErrConfig), errors.Is(err, errdefs.ErrLoggerNotFound):
		fmt.Fprintf(w, "rcat: %v\n", err)
	}
}
