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
	"context"
	"log/slog"
	"os"

	"github.com/eminwux/rcat/cmd/rcat"
	"github.com/eminwux/rcat/internal/logging"
	"github.com/spf13/cobra"
)

type rootFactory func() (*cobra.Command, error)

func runWithFactory(ctx context.Context, factory rootFactory, args []string) int {
	root, err := factory()
	if err != nil {
		return 1
	}

	return rcat.Execute(ctx, root, args)
}

func main() {
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.LevelWarn)
	logger := logging.NewLogger(os.Stderr, levelVar)

	ctx := context.WithValue(context.Background(), logging.CtxLogger, logger)
	ctx = context.WithValue(ctx, logging.CtxLevelVar, levelVar)

	os.Exit(runWithFactory(ctx, rcat.NewRcatRootCmd, os.Args[1:]))
}
