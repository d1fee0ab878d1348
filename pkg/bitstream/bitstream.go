// Package bitstream converts between unpacked bit sequences (one 0/1 value
// per byte) and byte-aligned buffers. Bit order is most-significant first
// in both directions.
package bitstream

import (
	"fmt"

	"github.com/odvcencio/cointoss/pkg/invariant"
)

// PackedLen returns ceil(n/8), the buffer length Pack produces for n bits.
func PackedLen(n int) int {
	return (n + 7) / 8
}

// Pack accumulates bits into bytes, most-significant bit first. A trailing
// partial byte keeps its bits in the high-order positions and is
// zero-padded below them.
//
// Every element of bits must be 0 or 1; anything else is reported as an
// invariant violation.
func Pack(bits []byte) ([]byte, error) {
	out := make([]byte, 0, PackedLen(len(bits)))
	var cur byte
	n := 0
	for i, b := range bits {
		if b > 1 {
			return nil, fmt.Errorf("pack bit %d: %w", i, &invariant.Violation{Name: "bit value", Got: int(b), Want: 1})
		}
		cur = cur<<1 | b
		n++
		if n == 8 {
			out = append(out, cur)
			cur, n = 0, 0
		}
	}
	if n > 0 {
		out = append(out, cur<<(8-n))
	}
	if err := invariant.Check("packed buffer length", len(out), PackedLen(len(bits))); err != nil {
		return nil, err
	}
	return out, nil
}

// Expand returns the first n bits of buf, most-significant bit of each byte
// first. It fails if buf holds fewer than n bits.
func Expand(buf []byte, n int) ([]byte, error) {
	if n < 0 || n > len(buf)*8 {
		return nil, &invariant.Violation{Name: "expand bit count", Got: n, Want: len(buf) * 8}
	}
	out := make([]byte, n)
	for i := range out {
		out[i] = (buf[i/8] >> (7 - uint(i%8))) & 1
	}
	return out, nil
}

// Uint reads bits as an unsigned big-endian integer. At most 63 bits fit.
func Uint(bits []byte) (uint64, error) {
	if len(bits) > 63 {
		return 0, &invariant.Violation{Name: "integer width", Got: len(bits), Want: 63}
	}
	var v uint64
	for i, b := range bits {
		if b > 1 {
			return 0, fmt.Errorf("read bit %d: %w", i, &invariant.Violation{Name: "bit value", Got: int(b), Want: 1})
		}
		v = v<<1 | uint64(b)
	}
	return v, nil
}

// AppendUint appends the low width bits of v to dst, most-significant first.
func AppendUint(dst []byte, v uint64, width int) []byte {
	for i := width - 1; i >= 0; i-- {
		dst = append(dst, byte(v>>uint(i))&1)
	}
	return dst
}
