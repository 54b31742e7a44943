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

// Package source resolves rcat operands into readable inputs.
package source

import (
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/DataDog/zstd"
	"github.com/eminwux/rcat/internal/errdefs"
)

// Stdin is the operand naming standard input.
const Stdin = "-"

type Options struct {
	// Decompress reads *.gz and *.zst operands through a decompressor.
	Decompress bool
}

// Source is one input of a run. Standard input is never closed by Close.
type Source struct {
	name    string
	r       io.Reader
	closers []io.Closer
}

// Display is the name used in diagnostics.
func (s *Source) Display() string {
	if s.name == Stdin {
		return "stdin"
	}
	return s.name
}

func (s *Source) IsStdin() bool { return s.name == Stdin }

func (s *Source) Read(p []byte) (int, error) { return s.r.Read(p) }

// Close releases decompressors first, then the file.
func (s *Source) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}

// Open resolves name: Stdin yields stdin, anything else is opened as a file.
// Failures wrap errdefs.ErrFileOpen.
func Open(name string, stdin io.Reader, opts Options) (*Source, error) {
	if name == Stdin {
		return &Source{name: name, r: stdin}, nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errdefs.ErrFileOpen, name, err)
	}
	adviseSequential(f)

	src := &Source{name: name, r: f, closers: []io.Closer{f}}
	if !opts.Decompress {
		return src, nil
	}

	switch {
	case strings.HasSuffix(name, ".gz"):
		zr, gzErr := gzip.NewReader(f)
		if gzErr != nil {
			_ = src.Close()
			return nil, fmt.Errorf("%w: %w", errdefs.ErrRead, &fs.PathError{Op: "read", Path: name, Err: gzErr})
		}
		src.r = zr
		src.closers = append(src.closers, zr)
	case strings.HasSuffix(name, ".zst"):
		zr := zstd.NewReader(f)
		src.r = zr
		src.closers = append(src.closers, zr)
	}
	return src, nil
}

// Reason renders an open error the way rcat reports it to the user.
func Reason(err error) string {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "No such file or directory"
	case errors.Is(err, fs.ErrPermission):
		return "Permission denied"
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err.Error()
	}
	return err.Error()
}
