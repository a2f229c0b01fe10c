// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package feeder

import (
	"context"
	"log/slog"

	"github.com/mdhender/incr"
	"github.com/spf13/afero"
)

// DefaultChunkSize is the number of runes fed between partial-result
// checks when the caller does not pick one.
const DefaultChunkSize = 4096

// Sink receives partial results as they stream out of the parser. Each
// call carries the delta since the previous call, not the running
// total.
type Sink[R any] interface {
	Partial(ctx context.Context, value R)
}

// Outcome is the final committed value together with the input that
// the parser left unconsumed.
type Outcome[R any] struct {
	Value    R
	Leftover []rune
}

// Service feeds input files into a parser chunk by chunk, draining
// partial results between chunks. The parser itself is a pure value;
// the service owns all of the I/O around it.
type Service[R any] struct {
	fs        afero.Fs
	chunkSize int
	logger    *slog.Logger
}

// NewService creates a Service reading from the OS filesystem. A
// non-positive chunkSize selects DefaultChunkSize; a nil logger
// disables logging.
func NewService[R any](chunkSize int, logger *slog.Logger) *Service[R] {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Service[R]{
		fs:        afero.NewOsFs(),
		chunkSize: chunkSize,
		logger:    logger,
	}
}

// SetFS sets the filesystem for testing.
func (s *Service[R]) SetFS(fs afero.Fs) {
	s.fs = fs
}

// Run reads path, feeds it through p one chunk at a time, and
// finalizes at end of input. After every chunk any pending partial
// result is handed to sink (which may be nil) and folded into the
// running total. On success the committed value and the unconsumed
// leftover are returned; a parser that survives to end of input
// without a committed result is a parse failure.
func (s *Service[R]) Run(ctx context.Context, m incr.Monoid[R], p incr.Parser[rune, R], path string, sink Sink[R]) (*Outcome[R], error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, &ErrReadFile{Op: "read", Path: path, Err: err}
	}
	runes := []rune(string(data))

	total := m.Empty()
	for start := 0; start < len(runes); start += s.chunkSize {
		if err := ctx.Err(); err != nil {
			return nil, &ErrCanceled{Path: path, Err: err}
		}
		end := min(start+s.chunkSize, len(runes))
		p = incr.FeedAll(runes[start:end], p)
		s.debug("feeder: fed chunk", "path", path, "from", start, "to", end)

		if prefix, rest, ok := incr.ResultPrefix(m, p); ok {
			if sink != nil {
				sink.Partial(ctx, prefix)
			}
			total = m.Append(total, prefix)
			p = rest
		}
	}

	p = incr.FeedEOF(p)
	rs := incr.Results(p)
	if len(rs) == 0 {
		return nil, &ErrParseFailed{Path: path}
	}
	s.debug("feeder: committed", "path", path, "leftover", len(rs[0].Tail))

	return &Outcome[R]{
		Value:    m.Append(total, rs[0].Value),
		Leftover: rs[0].Tail,
	}, nil
}

func (s *Service[R]) debug(msg string, args ...any) {
	if s.logger == nil {
		return
	}
	s.logger.Debug(msg, args...)
}
