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

// Package version holds the rcat release identification.
package version

import "fmt"

const Name = "rcat"

// Version is overridden at build time with
// -ldflags "-X github.com/eminwux/rcat/internal/version.Version=...".
//
//nolint:gochecknoglobals // set by the linker
var Version = "0.1.0"

func String() string {
	return fmt.Sprintf("%s %s", Name, Version)
}
