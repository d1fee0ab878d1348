// Package checksum derives the BIP39 checksum bits for packed entropy and
// appends them to the raw entropy bits.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/odvcencio/cointoss/pkg/bitstream"
	"github.com/odvcencio/cointoss/pkg/invariant"
)

// Size returns the checksum width in bits for ent bits of entropy.
func Size(ent int) int {
	return ent / 32
}

// Digest computes the raw SHA-256 hash of the packed entropy.
func Digest(packed []byte) [sha256.Size]byte {
	return sha256.Sum256(packed)
}

// DigestHex is Digest rendered as lowercase hex.
func DigestHex(packed []byte) string {
	sum := Digest(packed)
	return hex.EncodeToString(sum[:])
}

// Bits returns the first Size(ent) bits of SHA-256(packed), reading the
// digest byte by byte, most-significant bit first.
func Bits(packed []byte, ent int) ([]byte, error) {
	if err := invariant.Check("packed buffer length", len(packed), bitstream.PackedLen(ent)); err != nil {
		return nil, err
	}
	size := Size(ent)
	sum := Digest(packed)
	bits, err := bitstream.Expand(sum[:], size)
	if err != nil {
		return nil, fmt.Errorf("checksum bits: %w", err)
	}
	if err := invariant.Check("checksum length", len(bits), size); err != nil {
		return nil, err
	}
	return bits, nil
}

// Append returns raw followed by the checksum of packed. packed must be
// the packing of raw; the result is a fresh slice of len(raw)+Size(len(raw)).
func Append(raw, packed []byte) ([]byte, error) {
	ent := len(raw)
	cs, err := Bits(packed, ent)
	if err != nil {
		return nil, err
	}

	final := make([]byte, 0, ent+len(cs))
	final = append(final, raw...)
	final = append(final, cs...)
	if err := invariant.Check("final bit length", len(final), ent+Size(ent)); err != nil {
		return nil, err
	}
	return final, nil
}
