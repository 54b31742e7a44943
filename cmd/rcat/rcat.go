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
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/eminwux/rcat/cmd/config"
	"github.com/eminwux/rcat/internal/concat"
	"github.com/eminwux/rcat/internal/errdefs"
	"github.com/eminwux/rcat/internal/logging"
	"github.com/eminwux/rcat/internal/printer"
	"github.com/eminwux/rcat/internal/source"
	"github.com/eminwux/rcat/internal/version"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

func NewRcatRootCmd() (*cobra.Command, error) {
	// rootCmd represents the base command when called without any subcommands.
	rootCmd := &cobra.Command{
		Use:   "rcat [OPTION]... [FILE]...",
		Short: "Concatenate file(s) to standard output",
		Long: fmt.Sprintf(`Concatenate file(s) to standard output.

With no FILE, or when FILE is -, read standard input.
-? is accepted as an alias of -h, --help.

Options can also be set in %s or with RCAT_*
environment variables (for example RCAT_NUMBER=true).

With --log-level info, rcat notes when it waits on terminal input.`, config.DefaultConfigFile()),
		Example: `  rcat -n ./file   Adds line numbers to all output lines.
  rcat             Copy stdin to stdout.`,
		DisableFlagsInUseLine: true,
		Version:       version.Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := LoadConfig(); err != nil {
				return err
			}

			// Set log level dynamically if present
			levelVar, ok := cmd.Context().Value(logging.CtxLevelVar).(*slog.LevelVar)
			if ok && levelVar != nil {
				levelVar.Set(logging.ParseLevel(viper.GetString(config.RCAT_LOG_LEVEL.ViperKey)))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, ok := cmd.Context().Value(logging.CtxLogger).(*slog.Logger)
			if !ok || logger == nil {
				return errdefs.ErrLoggerNotFound
			}

			return runConcat(cmd.Context(), cmd, logger, args)
		},
	}

	rootCmd.SetVersionTemplate(version.String() + "\n")
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", errdefs.ErrInvalidOption, err)
	})

	if err := setupRootCmd(rootCmd); err != nil {
		return nil, err
	}
	return rootCmd, nil
}

func setupRootCmd(rootCmd *cobra.Command) error {
	flags := rootCmd.Flags()

	flags.BoolP("number", "n", false, "number all output lines")
	flags.BoolP("squeeze-blank", "s", false, "suppress repeated empty output lines")
	flags.BoolP("delay", "d", false, "add a short delay between chars")
	flags.BoolP("verbose", "v", false, "display verbose output")
	flags.BoolP("decompress", "z", false, "decompress *.gz and *.zst files")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	flags.String("config", "", "config file (default is "+config.DefaultConfigFile()+")")

	return bindFlags(flags, map[string]string{
		"number":        config.RCAT_NUMBER.ViperKey,
		"squeeze-blank": config.RCAT_SQUEEZE_BLANK.ViperKey,
		"delay":         config.RCAT_DELAY.ViperKey,
		"verbose":       config.RCAT_VERBOSE.ViperKey,
		"decompress":    config.RCAT_DECOMPRESS.ViperKey,
		"log-level":     config.RCAT_LOG_LEVEL.ViperKey,
		"config":        config.RCAT_CONFIG_FILE.ViperKey,
	})
}

func bindFlags(flags *pflag.FlagSet, keys map[string]string) error {
	for name, key := range keys {
		if err := viper.BindPFlag(key, flags.Lookup(name)); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}
	return nil
}

// LoadConfig loads config.yaml from the --config path, RCAT_CONFIG_FILE or
// HOME/.rcat. Only a missing default file is tolerated.
func LoadConfig() error {
	for _, v := range config.All() {
		if err := v.BindEnv(); err != nil {
			return fmt.Errorf("%w: %w", errdefs.ErrConfig, err)
		}
		v.ApplyDefault()
	}

	viper.SetConfigType("yaml")
	if configFile := viper.GetString(config.RCAT_CONFIG_FILE.ViperKey); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath(config.DefaultConfigDir())
	}

	if err := viper.ReadInConfig(); err != nil {
		// File not found is OK when no file was asked for
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("%w: %w", errdefs.ErrConfig, err)
		}
	}

	return nil
}

func runConcat(ctx context.Context, cmd *cobra.Command, logger *slog.Logger, args []string) error {
	flags := printer.Flags{
		Number:       viper.GetBool(config.RCAT_NUMBER.ViperKey),
		SqueezeBlank: viper.GetBool(config.RCAT_SQUEEZE_BLANK.ViperKey),
		Delay:        viper.GetBool(config.RCAT_DELAY.ViperKey),
		Verbose:      viper.GetBool(config.RCAT_VERBOSE.ViperKey),
	}

	delayMillis := viper.GetInt(config.RCAT_DELAY_MILLIS.ViperKey)
	if delayMillis < 0 {
		return fmt.Errorf("%w: %s must not be negative, got %d",
			errdefs.ErrConfig, config.RCAT_DELAY_MILLIS.ViperKey, delayMillis)
	}
	chunkSize := viper.GetInt(config.RCAT_CHUNK_SIZE.ViperKey)
	if chunkSize < 1 {
		return fmt.Errorf("%w: %s must be positive, got %d",
			errdefs.ErrConfig, config.RCAT_CHUNK_SIZE.ViperKey, chunkSize)
	}

	logger.DebugContext(
		ctx, "parameters received in rcat",
		"configFile", viper.GetString(config.RCAT_CONFIG_FILE.ViperKey),
		"logLevel", viper.GetString(config.RCAT_LOG_LEVEL.ViperKey),
		"number", flags.Number,
		"squeezeBlank", flags.SqueezeBlank,
		"delay", flags.Delay,
		"verbose", flags.Verbose,
		"delayMillis", delayMillis,
		"chunkSize", chunkSize,
		"decompress", viper.GetBool(config.RCAT_DECOMPRESS.ViperKey),
		"files", args,
	)

	if readsStdin(args) && isTerminal(cmd.InOrStdin()) {
		logger.InfoContext(ctx, "reading from terminal, end input with Ctrl-D")
	}

	p := printer.New(
		cmd.OutOrStdout(),
		flags,
		printer.WithDelay(time.Duration(delayMillis)*time.Millisecond),
		printer.WithLogger(logger),
	)
	c := concat.New(p, concat.Options{
		Stdin:      cmd.InOrStdin(),
		Stderr:     cmd.ErrOrStderr(),
		ChunkSize:  chunkSize,
		Decompress: viper.GetBool(config.RCAT_DECOMPRESS.ViperKey),
		Logger:     logger,
	})

	return c.Run(ctx, args)
}

// isTerminal reports whether r is a file attached to a terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func readsStdin(args []string) bool {
	return len(args) == 0 || slices.Contains(args, source.Stdin)
}
