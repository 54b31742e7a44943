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

package config

import "github.com/spf13/viper"

const Prefix = "RCAT"

type Var struct {
	Key        string // e.g. "RCAT_NUMBER"
	ViperKey   string // optional, e.g. "rcat.number"
	Default    string // optional
	HasDefault bool
}

func DefineKV(envName, viperKey string, defaultVal ...string) Var {
	v := Var{Key: Prefix + "_" + envName, ViperKey: viperKey}
	if len(defaultVal) > 0 {
		v.Default = defaultVal[0]
		v.HasDefault = true
	}
	return v
}

func (v *Var) EnvVar() string { return v.Key }

// BindEnv is safe if ViperKey is empty: does nothing.
func (v *Var) BindEnv() error {
	if v.ViperKey == "" {
		return nil
	}
	return viper.BindEnv(v.ViperKey, v.Key)
}

// ApplyDefault registers the declared default with viper, if any.
func (v *Var) ApplyDefault() {
	if v.HasDefault && v.ViperKey != "" {
		viper.SetDefault(v.ViperKey, v.Default)
	}
}

// ---- Declare statically (Viper key optional per var) ----.
var (
	//nolint:revive,gochecknoglobals,staticcheck // ignore linter warning about this variable
	RCAT_CONFIG_FILE = DefineKV("CONFIG_FILE", "rcat.configFile")
	//nolint:revive,gochecknoglobals,staticcheck // ignore linter warning about this variable
	RCAT_LOG_LEVEL = DefineKV("LOG_LEVEL", "rcat.logLevel", "warn")
	//nolint:revive,gochecknoglobals,staticcheck // ignore linter warning about this variable
	RCAT_NUMBER = DefineKV("NUMBER", "rcat.number", "false")
	//nolint:revive,gochecknoglobals,staticcheck // ignore linter warning about this variable
	RCAT_SQUEEZE_BLANK = DefineKV("SQUEEZE_BLANK", "rcat.squeezeBlank", "false")
	//nolint:revive,gochecknoglobals,staticcheck // ignore linter warning about this variable
	RCAT_DELAY = DefineKV("DELAY", "rcat.delay", "false")
	//nolint:revive,gochecknoglobals,staticcheck // ignore linter warning about this variable
	RCAT_VERBOSE = DefineKV("VERBOSE", "rcat.verbose", "false")
	//nolint:revive,gochecknoglobals,staticcheck // ignore linter warning about this variable
	RCAT_DECOMPRESS = DefineKV("DECOMPRESS", "rcat.decompress", "false")
	//nolint:revive,gochecknoglobals,staticcheck // ignore linter warning about this variable
	RCAT_DELAY_MILLIS = DefineKV("DELAY_MILLIS", "rcat.delayMillis", "8")
	//nolint:revive,gochecknoglobals,staticcheck // ignore linter warning about this variable
	RCAT_CHUNK_SIZE = DefineKV("CHUNK_SIZE", "rcat.chunkSize", "1024")
)

// All lists every setting, in the order they are bound.
func All() []*Var {
	return []*Var{
		&RCAT_CONFIG_FILE,
		&RCAT_LOG_LEVEL,
		&RCAT_NUMBER,
		&RCAT_SQUEEZE_BLANK,
		&RCAT_DELAY,
		&RCAT_VERBOSE,
		&RCAT_DECOMPRESS,
		&RCAT_DELAY_MILLIS,
		&RCAT_CHUNK_SIZE,
	}
}
