// Package invariant reports internal length and range mismatches in the
// mnemonic pipeline.
//
// A Violation always means the pipeline itself is defective. Callers must
// stop and emit nothing; there is no recovery path.
package invariant

import (
	"errors"
	"fmt"
)

// Violation names the broken invariant with the observed and expected values.
type Violation struct {
	Name string
	Got  int
	Want int
}

func (v *Violation) Error() string {
	if v == nil {
		return "<nil>"
	}
	return fmt.Sprintf("invariant violated: %s: got %d, want %d", v.Name, v.Got, v.Want)
}

// Check returns a *Violation when got != want.
func Check(name string, got, want int) error {
	if got == want {
		return nil
	}
	return &Violation{Name: name, Got: got, Want: want}
}

// CheckRange returns a *Violation when v lies outside [lo, hi]. Want carries
// the bound that was crossed.
func CheckRange(name string, v, lo, hi int) error {
	switch {
	case v < lo:
		return &Violation{Name: name, Got: v, Want: lo}
	case v > hi:
		return &Violation{Name: name, Got: v, Want: hi}
	}
	return nil
}

// Is reports whether err is (or wraps) a *Violation.
func Is(err error) bool {
	var v *Violation
	return errors.As(err, &v)
}
