package entropy

import (
	"errors"
	"fmt"
)

// Strength is the entropy size in bits (ENT).
type Strength int

const (
	Strength128 Strength = 128
	Strength160 Strength = 160
	Strength192 Strength = 192
	Strength224 Strength = 224
	Strength256 Strength = 256
)

// ErrUnsupportedStrength indicates a strength or word count outside the
// five BIP39 sizes.
var ErrUnsupportedStrength = errors.New("unsupported entropy strength")

// Strengths lists every supported strength in ascending order.
func Strengths() []Strength {
	return []Strength{Strength128, Strength160, Strength192, Strength224, Strength256}
}

// Valid reports whether s is one of the supported strengths.
func (s Strength) Valid() bool {
	switch s {
	case Strength128, Strength160, Strength192, Strength224, Strength256:
		return true
	}
	return false
}

// Bits returns ENT.
func (s Strength) Bits() int { return int(s) }

// ChecksumBits returns ENT/32.
func (s Strength) ChecksumBits() int { return int(s) / 32 }

// WordCount returns (ENT + ENT/32) / 11.
func (s Strength) WordCount() int { return (int(s) + int(s)/32) / 11 }

func (s Strength) String() string {
	return fmt.Sprintf("%d bits", int(s))
}

// FromWordCount maps 12, 15, 18, 21 or 24 words to a strength.
func FromWordCount(words int) (Strength, error) {
	for _, s := range Strengths() {
		if s.WordCount() == words {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%d words: %w", words, ErrUnsupportedStrength)
}
