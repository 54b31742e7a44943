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

package main

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/eminwux/rcat/cmd/rcat"
	"github.com/eminwux/rcat/internal/errdefs"
	"github.com/eminwux/rcat/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func testContext() context.Context {
	ctx := context.WithValue(context.Background(), logging.CtxLogger, logging.NewNoopLogger())
	return context.WithValue(ctx, logging.CtxLevelVar, new(slog.LevelVar))
}

func TestRunWithFactory_FactoryError(t *testing.T) {
	factory := func() (*cobra.Command, error) {
		return nil, errors.New("boom")
	}

	if code := runWithFactory(testContext(), factory, nil); code != errdefs.ExitFailure {
		t.Fatalf("expected exit %d; got %d", errdefs.ExitFailure, code)
	}
}

func TestRunWithFactory_ExitCodes(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{name: "help", args: []string{"--help"}, want: errdefs.ExitOK},
		{name: "invalid option", args: []string{"--bogus"}, want: errdefs.ExitInvalidOption},
		{name: "missing file", args: []string{"/nonexistent/rcat/input"}, want: errdefs.ExitFileOpen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Cleanup(viper.Reset)
			t.Setenv("HOME", t.TempDir())

			factory := func() (*cobra.Command, error) {
				root, err := rcat.NewRcatRootCmd()
				if err != nil {
					return nil, err
				}
				root.SetOut(&bytes.Buffer{})
				root.SetErr(&bytes.Buffer{})
				return root, nil
			}

			if code := runWithFactory(testContext(), factory, tt.args); code != tt.want {
				t.Fatalf("expected exit %d; got %d", tt.want, code)
			}
		})
	}
}
