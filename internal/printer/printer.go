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

// Package printer writes input chunks to an output stream, applying line
// numbering, blank-line squeezing, per-byte pacing and timing diagnostics.
//
// In the default mode output is batched through a bufio.Writer and only
// reaches the destination on Flush (or when the buffer fills). In delay mode
// every input byte, together with its line-number prefix, is written
// straight to the destination and followed by a pause, so pacing is visible.
package printer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/eminwux/rcat/internal/errdefs"
	"github.com/eminwux/rcat/internal/filter"
	"github.com/eminwux/rcat/internal/logging"
)

const DefaultDelay = 8 * time.Millisecond

// Flags is the set of output transformations active for a whole run.
type Flags struct {
	Number       bool
	SqueezeBlank bool
	Delay        bool
	Verbose      bool
}

type Printer struct {
	flags  Flags
	delay  time.Duration
	logger *slog.Logger

	dst   io.Writer     // p.buf in the default mode, the raw writer in delay mode
	buf   *bufio.Writer // nil in delay mode
	lines filter.LineStream

	now   func() time.Time
	sleep func(time.Duration)
}

type Option func(*Printer)

func WithDelay(d time.Duration) Option {
	return func(p *Printer) {
		if d >= 0 {
			p.delay = d
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Printer) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithClock replaces time.Now for elapsed-time reports.
func WithClock(now func() time.Time) Option {
	return func(p *Printer) { p.now = now }
}

// WithSleep replaces time.Sleep for delay mode.
func WithSleep(sleep func(time.Duration)) Option {
	return func(p *Printer) { p.sleep = sleep }
}

func New(w io.Writer, flags Flags, opts ...Option) *Printer {
	p := &Printer{
		flags:  flags,
		delay:  DefaultDelay,
		logger: logging.NewNoopLogger(),
		lines:  filter.NewLineFilter(flags.Number, flags.SqueezeBlank, 1),
		now:    time.Now,
		sleep:  time.Sleep,
	}
	for _, opt := range opts {
		opt(p)
	}

	if flags.Delay {
		p.dst = w
	} else {
		p.buf = bufio.NewWriter(w)
		p.dst = p.buf
	}
	return p
}

// StartSource marks the beginning of a new input: its first byte starts a
// line and no blank run is carried over from the previous input.
func (p *Printer) StartSource() {
	p.lines.Reset()
}

// PrintChunk writes chunk and returns the line counter advanced by the
// number of line starts emitted. line is the number of the next line start.
// The only errors are output failures, wrapped in errdefs.ErrWrite.
func (p *Printer) PrintChunk(chunk []byte, line int) (int, error) {
	start := p.now()
	p.lines.SetNextLine(line)

	step := len(chunk)
	if p.flags.Delay {
		step = 1
	}

	for off := 0; off < len(chunk); off += step {
		n := min(step, len(chunk)-off)
		emitted, err := p.writeFiltered(chunk[off:off+n], n)
		if err != nil {
			return p.lines.NextLine(), fmt.Errorf("%w: %w", errdefs.ErrWrite, err)
		}
		if p.flags.Delay && emitted > 0 {
			p.sleep(p.delay)
		}
	}

	if p.flags.Verbose && len(chunk) > 0 {
		elapsed := p.now().Sub(start)
		if _, err := fmt.Fprintf(p.dst, "rcat: Read %d bytes in %dms\n", len(chunk), elapsed.Milliseconds()); err != nil {
			return p.lines.NextLine(), fmt.Errorf("%w: %w", errdefs.ErrWrite, err)
		}
	}

	p.logger.Debug("chunk printed", "bytes", len(chunk), "firstLine", line, "nextLine", p.lines.NextLine())
	return p.lines.NextLine(), nil
}

// Flush pushes batched output to the destination. It is a no-op in delay mode.
func (p *Printer) Flush() error {
	if p.buf == nil {
		return nil
	}
	if err := p.buf.Flush(); err != nil {
		return fmt.Errorf("%w: %w", errdefs.ErrWrite, err)
	}
	return nil
}

// writeFiltered drives the line filter over buf[:n] until it is fully
// consumed and returns how many bytes were written.
func (p *Printer) writeFiltered(buf []byte, n int) (int, error) {
	emitted := 0
	consumed := 0
	for consumed < n {
		out, nwrite, ncons, err := p.lines.Process(buf[consumed:], n-consumed)
		if err != nil {
			return emitted, err
		}
		if ncons == 0 {
			return emitted, errors.New("filter consumed no input")
		}

		// Consumed but nothing to write (squeezed).
		if nwrite == 0 {
			consumed += ncons
			continue
		}

		var toWrite []byte
		if out != nil {
			if nwrite > len(out) {
				return emitted, fmt.Errorf("filter nwrite exceeds out length: %d > %d", nwrite, len(out))
			}
			toWrite = out[:nwrite]
		} else {
			if consumed+nwrite > n {
				return emitted, fmt.Errorf("filter nwrite exceeds available input: %d > %d", nwrite, n-consumed)
			}
			toWrite = buf[consumed : consumed+nwrite]
		}

		if err := writeAll(p.dst, toWrite); err != nil {
			return emitted, err
		}
		emitted += nwrite
		consumed += ncons
	}
	return emitted, nil
}

// writeAll handles short writes.
func writeAll(w io.Writer, b []byte) error {
	total := 0
	for total < len(b) {
		m, err := w.Write(b[total:])
		if err != nil {
			return err
		}
		if m == 0 {
			return io.ErrShortWrite
		}
		total += m
	}
	return nil
}
