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

package logging

import (
	"io"
	"log/slog"
)

func ParseLevel(lvl string) slog.Level {
	switch lvl {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		// stderr is shared with user-facing messages, keep it quiet
		return slog.LevelWarn
	}
}

// NewLogger returns a logger writing reformatted records to w at the level
// held by levelVar, so the level can be changed after flags are parsed.
func NewLogger(w io.Writer, levelVar *slog.LevelVar) *slog.Logger {
	handler := &ReformatHandler{
		Inner:  slog.NewTextHandler(w, &slog.HandlerOptions{Level: levelVar}),
		Writer: w,
	}
	return slog.New(handler)
}

func NewNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
