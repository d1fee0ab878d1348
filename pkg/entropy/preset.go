package entropy

import "strings"

// presetPattern is eleven repetitions of 11111110000 followed by 1111111:
// 128 bits whose words are easy to recognize by eye.
var presetPattern = strings.Repeat("11111110000", 11) + "1111111"

// FixedPreset returns a fresh copy of the built-in 128-bit regression
// pattern.
func FixedPreset() []byte {
	out := make([]byte, len(presetPattern))
	for i := 0; i < len(presetPattern); i++ {
		out[i] = presetPattern[i] - '0'
	}
	return out
}
