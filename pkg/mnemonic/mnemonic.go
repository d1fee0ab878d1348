// Package mnemonic maps checksummed bit sequences to BIP39 English words
// and back.
package mnemonic

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/odvcencio/cointoss/pkg/bitstream"
	"github.com/odvcencio/cointoss/pkg/invariant"
)

const (
	// WordlistSize is the number of entries in the wordlist.
	WordlistSize = 2048
	// IndexBits is the width of one word index.
	IndexBits = 11
	// MaxIndex is the largest valid word index.
	MaxIndex = WordlistSize - 1
)

var (
	// ErrUnknownWord is returned by Decode for a word not in the wordlist.
	ErrUnknownWord = errors.New("word not in wordlist")
	// ErrWordCount is returned by Decode for a phrase that is not 12, 15,
	// 18, 21 or 24 words long.
	ErrWordCount = errors.New("word count must be 12, 15, 18, 21 or 24")
)

// indexOf is built once from wordlist and never written afterwards.
var indexOf = func() map[string]int {
	m := make(map[string]int, WordlistSize)
	for i, w := range wordlist[:] {
		m[w] = i
	}
	return m
}()

// Mnemonic is an ordered sequence of wordlist words.
type Mnemonic []string

// String renders the phrase as a single space-separated line.
func (m Mnemonic) String() string {
	return strings.Join(m, " ")
}

// ValidWordCount reports whether n is a supported phrase length.
func ValidWordCount(n int) bool {
	switch n {
	case 12, 15, 18, 21, 24:
		return true
	}
	return false
}

// Word returns the word at index i.
func Word(i int) (string, error) {
	if err := invariant.CheckRange("word index", i, 0, MaxIndex); err != nil {
		return "", err
	}
	return wordlist[i], nil
}

// Index returns the position of word in the wordlist.
func Index(word string) (int, bool) {
	i, ok := indexOf[word]
	return i, ok
}

// Words returns a copy of the wordlist in index order.
func Words() []string {
	out := make([]string, WordlistSize)
	copy(out, wordlist[:])
	return out
}

// Fingerprint is the hex SHA-256 of the wordlist rendered one word per
// line, each terminated by '\n'. It matches the digest of the published
// english.txt.
func Fingerprint() string {
	h := sha256.New()
	for _, w := range wordlist[:] {
		h.Write([]byte(w))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Encode splits final into consecutive 11-bit groups, reads each as a
// big-endian index and resolves it against the wordlist.
//
// final must be entropy followed by its checksum, 132, 165, 198, 231 or 264
// bits long. Any other length is an upstream defect and reported as an
// invariant violation.
func Encode(final []byte) (Mnemonic, error) {
	if err := invariant.Check("final bit length mod 11", len(final)%IndexBits, 0); err != nil {
		return nil, err
	}
	count := len(final) / IndexBits
	if !ValidWordCount(count) {
		return nil, &invariant.Violation{Name: "word count", Got: count, Want: wordCountFor(len(final))}
	}

	out := make(Mnemonic, 0, count)
	for off := 0; off < len(final); off += IndexBits {
		v, err := bitstream.Uint(final[off : off+IndexBits])
		if err != nil {
			return nil, fmt.Errorf("encode group at bit %d: %w", off, err)
		}
		w, err := Word(int(v))
		if err != nil {
			return nil, fmt.Errorf("encode group at bit %d: %w", off, err)
		}
		out = append(out, w)
	}
	if err := invariant.Check("word count", len(out), count); err != nil {
		return nil, err
	}
	return out, nil
}

// Decode converts words back into the entropy-plus-checksum bit sequence.
// Words are matched exactly; callers normalize case beforehand.
func Decode(words []string) ([]byte, error) {
	if !ValidWordCount(len(words)) {
		return nil, fmt.Errorf("decode %d words: %w", len(words), ErrWordCount)
	}
	bits := make([]byte, 0, len(words)*IndexBits)
	for i, w := range words {
		idx, ok := Index(w)
		if !ok {
			return nil, fmt.Errorf("decode word %d %q: %w", i+1, w, ErrUnknownWord)
		}
		bits = bitstream.AppendUint(bits, uint64(idx), IndexBits)
	}
	return bits, nil
}

// wordCountFor returns the nearest supported word count below bits/11, used
// only to fill the expected side of a violation.
func wordCountFor(bits int) int {
	n := bits / IndexBits
	best := 12
	for _, c := range []int{12, 15, 18, 21, 24} {
		if c <= n {
			best = c
		}
	}
	return best
}
