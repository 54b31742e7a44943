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

// Package concat copies an ordered list of inputs through a printer.
package concat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/eminwux/rcat/internal/errdefs"
	"github.com/eminwux/rcat/internal/logging"
	"github.com/eminwux/rcat/internal/source"
)

const DefaultChunkSize = 1024

// ChunkPrinter is the part of printer.Printer the read loop drives.
type ChunkPrinter interface {
	StartSource()
	PrintChunk(chunk []byte, line int) (int, error)
	Flush() error
}

type Options struct {
	Stdin      io.Reader
	Stderr     io.Writer
	ChunkSize  int
	Decompress bool
	Logger     *slog.Logger
}

type Concatenator struct {
	printer ChunkPrinter
	stdin   io.Reader
	stderr  io.Writer
	chunk   int
	srcOpts source.Options
	logger  *slog.Logger
}

func New(p ChunkPrinter, opts Options) *Concatenator {
	c := &Concatenator{
		printer: p,
		stdin:   opts.Stdin,
		stderr:  opts.Stderr,
		chunk:   opts.ChunkSize,
		srcOpts: source.Options{Decompress: opts.Decompress},
		logger:  opts.Logger,
	}
	if c.chunk <= 0 {
		c.chunk = DefaultChunkSize
	}
	if c.stderr == nil {
		c.stderr = io.Discard
	}
	if c.logger == nil {
		c.logger = logging.NewNoopLogger()
	}
	return c
}

// Run copies every named input, in order, to the printer. With no names it
// reads standard input. Open and read failures are reported on stderr and
// the run moves on to the next input; an output failure or cancellation
// stops the run. The returned error joins everything that went wrong.
func (c *Concatenator) Run(ctx context.Context, names []string) error {
	if c.printer == nil {
		return errdefs.ErrPrinterNotSet
	}
	if len(names) == 0 {
		names = []string{source.Stdin}
	}

	buf := make([]byte, c.chunk)
	line := 1
	var errs []error

	for _, name := range names {
		if ctx.Err() != nil {
			errs = append(errs, fmt.Errorf("%w: %w", errdefs.ErrInterrupted, ctx.Err()))
			break
		}

		next, err := c.copySource(ctx, name, buf, line)
		line = next
		if err == nil {
			continue
		}
		errs = append(errs, err)
		if errors.Is(err, errdefs.ErrWrite) || errors.Is(err, errdefs.ErrInterrupted) {
			break
		}
	}

	c.logger.DebugContext(ctx, "run finished", "sources", len(names), "lines", line-1, "errors", len(errs))
	return errors.Join(errs...)
}

func (c *Concatenator) copySource(ctx context.Context, name string, buf []byte, line int) (int, error) {
	src, err := source.Open(name, c.stdin, c.srcOpts)
	if err != nil {
		c.report(name, err)
		return line, err
	}
	defer func() {
		if cerr := src.Close(); cerr != nil {
			c.logger.WarnContext(ctx, "failed to close input", "source", src.Display(), "error", cerr)
		}
	}()

	c.logger.DebugContext(ctx, "reading input", "source", src.Display(), "line", line)
	c.printer.StartSource()

	total := 0
	for {
		if ctx.Err() != nil {
			interrupted := fmt.Errorf("%w: %w", errdefs.ErrInterrupted, ctx.Err())
			return line, errors.Join(interrupted, c.flush())
		}

		n, rerr := src.Read(buf)
		if n > 0 {
			var werr error
			line, werr = c.printer.PrintChunk(buf[:n], line)
			if werr != nil {
				if !errors.Is(werr, errdefs.ErrWrite) {
					werr = fmt.Errorf("%w: %w", errdefs.ErrWrite, werr)
				}
				fmt.Fprintf(c.stderr, "rcat: %v\n", werr)
				return line, werr
			}
			total += n
		}

		if errors.Is(rerr, io.EOF) {
			break
		}
		if rerr != nil {
			// keep what was read so far, then give up on this input
			if ferr := c.flush(); ferr != nil {
				return line, ferr
			}
			err := fmt.Errorf("%w: %s: %w", errdefs.ErrRead, src.Display(), rerr)
			c.reportRead(src, rerr)
			return line, err
		}
	}

	c.logger.DebugContext(ctx, "input done", "source", src.Display(), "bytes", total, "nextLine", line)
	return line, c.flush()
}

func (c *Concatenator) flush() error {
	if err := c.printer.Flush(); err != nil {
		fmt.Fprintf(c.stderr, "rcat: %v\n", err)
		return err
	}
	return nil
}

func (c *Concatenator) report(name string, err error) {
	// keep stdout and stderr in order for the reader
	_ = c.printer.Flush()
	switch {
	case errors.Is(err, errdefs.ErrFileOpen):
		fmt.Fprintf(c.stderr, "rcat: %s: %s\n", name, source.Reason(err))
		return
	case errors.Is(err, errdefs.ErrRead):
		// a decompressor rejected the header
		fmt.Fprintf(c.stderr, "rcat: %s: read error: %s\n", name, source.Reason(err))
		return
	}
	fmt.Fprintf(c.stderr, "rcat: %s: %v\n", name, err)
}

func (c *Concatenator) reportRead(src *source.Source, err error) {
	if src.IsStdin() {
		fmt.Fprintf(c.stderr, "rcat: stdin read error: %s\n", source.Reason(err))
		return
	}
	fmt.Fprintf(c.stderr, "rcat: %s: read error: %s\n", src.Display(), source.Reason(err))
}
