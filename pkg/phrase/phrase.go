// Package phrase runs the deterministic half of mnemonic generation: raw
// entropy bits in, words out. Each stage consumes the previous stage's
// output once and produces a fresh value.
package phrase

import (
	"errors"
	"fmt"

	"github.com/odvcencio/cointoss/pkg/bitstream"
	"github.com/odvcencio/cointoss/pkg/checksum"
	"github.com/odvcencio/cointoss/pkg/entropy"
	"github.com/odvcencio/cointoss/pkg/invariant"
	"github.com/odvcencio/cointoss/pkg/mnemonic"
)

// ErrChecksumMismatch is returned by Verify when the phrase's trailing
// bits do not match the hash of its entropy.
var ErrChecksumMismatch = errors.New("checksum mismatch")

// Trace holds every intermediate value of one Generate run.
type Trace struct {
	Strength     entropy.Strength
	Packed       []byte
	ChecksumBits []byte
	Final        []byte
	Mnemonic     mnemonic.Mnemonic
}

// Generate packs raw, appends its checksum and encodes the result.
//
// raw must hold exactly s.Bits() values of 0 or 1. Every length and range
// check failure is an *invariant.Violation and no words are returned.
func Generate(raw []byte, s entropy.Strength) (*Trace, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("generate: %d: %w", int(s), entropy.ErrUnsupportedStrength)
	}
	if err := invariant.Check("raw bit length", len(raw), s.Bits()); err != nil {
		return nil, err
	}

	packed, err := bitstream.Pack(raw)
	if err != nil {
		return nil, fmt.Errorf("pack entropy: %w", err)
	}
	if err := invariant.Check("packed buffer length", len(packed), s.Bits()/8); err != nil {
		return nil, err
	}

	final, err := checksum.Append(raw, packed)
	if err != nil {
		return nil, fmt.Errorf("append checksum: %w", err)
	}
	if err := invariant.Check("final bit length", len(final), s.Bits()+s.ChecksumBits()); err != nil {
		return nil, err
	}

	words, err := mnemonic.Encode(final)
	if err != nil {
		return nil, fmt.Errorf("encode mnemonic: %w", err)
	}
	if err := invariant.Check("word count", len(words), s.WordCount()); err != nil {
		return nil, err
	}

	cs := make([]byte, s.ChecksumBits())
	copy(cs, final[s.Bits():])
	return &Trace{
		Strength:     s,
		Packed:       packed,
		ChecksumBits: cs,
		Final:        final,
		Mnemonic:     words,
	}, nil
}

// Verify checks that words form a phrase whose checksum matches its
// entropy. It returns the recovered strength.
func Verify(words []string) (entropy.Strength, error) {
	final, err := mnemonic.Decode(words)
	if err != nil {
		return 0, err
	}
	s, err := entropy.FromWordCount(len(words))
	if err != nil {
		return 0, err
	}

	raw := final[:s.Bits()]
	packed, err := bitstream.Pack(raw)
	if err != nil {
		return 0, fmt.Errorf("pack entropy: %w", err)
	}
	want, err := checksum.Bits(packed, s.Bits())
	if err != nil {
		return 0, err
	}
	got := final[s.Bits():]
	for i := range want {
		if got[i] != want[i] {
			return s, fmt.Errorf("%d-word phrase: %w", len(words), ErrChecksumMismatch)
		}
	}
	return s, nil
}
