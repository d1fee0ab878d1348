package entropy

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
)

// ErrInputClosed reports that the input ended before collection finished.
var ErrInputClosed = errors.New("input closed before collection finished")

// Source yields one raw input line per call. It returns io.EOF when no
// more input will arrive.
type Source interface {
	Next(ctx context.Context) (string, error)
}

// LineSource reads newline-terminated tokens from a reader.
type LineSource struct {
	sc *bufio.Scanner
}

// NewLineSource wraps r.
func NewLineSource(r io.Reader) *LineSource {
	return &LineSource{sc: bufio.NewScanner(r)}
}

// Next blocks until a line is available.
func (s *LineSource) Next(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !s.sc.Scan() {
		if err := s.sc.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", io.EOF
	}
	return s.sc.Text(), nil
}

// Prompter renders collection progress. The collector owns no text.
type Prompter interface {
	// Begin is called once before the first prompt.
	Begin(total int, allowTestModes bool)
	// Prompt asks for flip number flip (1-based).
	Prompt(flip int)
	// Rejected reports a token that was not accepted.
	Rejected(token string, allowTestModes bool)
	// Accepted reports an event that ended collection early.
	Accepted(ev Event)
}

// Collect drives c with tokens from src until it leaves StateCollecting.
//
// Unrecognized tokens are reported through p and asked again without
// consuming a flip. Abort discards every collected bit and returns
// ErrAborted. End of input returns ErrInputClosed.
func Collect(ctx context.Context, src Source, c *Collector, p Prompter) ([]byte, error) {
	p.Begin(c.Strength().Bits(), c.opts.AllowTestModes)
	for c.State() == StateCollecting {
		p.Prompt(c.Collected() + 1)
		line, err := src.Next(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("after %d of %d bits: %w", c.Collected(), c.Strength().Bits(), ErrInputClosed)
			}
			return nil, err
		}

		ev := ParseToken(line)
		if err := c.Apply(ev); err != nil {
			if errors.Is(err, ErrRejected) {
				p.Rejected(line, c.opts.AllowTestModes)
				continue
			}
			return nil, err
		}
		if ev != EventHeads && ev != EventTails {
			p.Accepted(ev)
		}
	}
	return c.Bits()
}
