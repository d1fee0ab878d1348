// Package entropy collects the raw entropy bits for a mnemonic.
//
// Collection is a small state machine driven by input events. The machine
// never reads input itself: Collect pulls tokens from a Source and feeds
// them to a Collector, so scripted sources drive it the same way a
// terminal does.
package entropy

import (
	"errors"
	"fmt"

	"github.com/odvcencio/cointoss/pkg/invariant"
)

// State is the collector's lifecycle position.
type State int

const (
	StateCollecting State = iota
	StateComplete
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateCollecting:
		return "collecting"
	case StateComplete:
		return "complete"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

var (
	// ErrAborted reports a user-requested abort. It is a normal outcome, not
	// a failure, and no bits are returned with it.
	ErrAborted = errors.New("entropy collection aborted")
	// ErrRejected reports an event that was not accepted. The collector is
	// unchanged and the caller should ask again.
	ErrRejected = errors.New("input rejected")
	// ErrTerminal reports an event applied after collection finished.
	ErrTerminal = errors.New("collector already finished")
	// ErrIncomplete reports a request for bits before collection finished.
	ErrIncomplete = errors.New("entropy collection incomplete")
	// ErrNoRand reports randomized completion without a generator.
	ErrNoRand = errors.New("no random generator configured")
)

// Options configures a Collector.
type Options struct {
	// Rand fills the remaining bits on EventRandomFill.
	Rand Rand
	// AllowTestModes enables EventDeterministicFill and EventFixedPreset.
	AllowTestModes bool
	// Preset overrides the bit pattern used by EventFixedPreset. Nil means
	// the built-in 128-bit preset.
	Preset []byte
}

// Collector accumulates exactly Strength.Bits() raw bits.
type Collector struct {
	strength Strength
	bits     []byte
	state    State
	opts     Options
}

// NewCollector starts a collector in StateCollecting.
func NewCollector(s Strength, opts Options) (*Collector, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("new collector: %d: %w", int(s), ErrUnsupportedStrength)
	}
	return &Collector{
		strength: s,
		bits:     make([]byte, 0, s.Bits()),
		state:    StateCollecting,
		opts:     opts,
	}, nil
}

// State returns the current state.
func (c *Collector) State() State { return c.state }

// Strength returns the target strength.
func (c *Collector) Strength() Strength { return c.strength }

// Collected returns how many bits have been accepted so far.
func (c *Collector) Collected() int { return len(c.bits) }

// Remaining returns how many bits are still needed.
func (c *Collector) Remaining() int { return c.strength.Bits() - len(c.bits) }

// Apply feeds one event to the machine.
//
// ErrRejected leaves the collector untouched. An invariant violation (a
// preset of the wrong length) also leaves it untouched and must be treated
// as fatal by the caller.
func (c *Collector) Apply(ev Event) error {
	if c.state != StateCollecting {
		return fmt.Errorf("apply %s in state %s: %w", ev, c.state, ErrTerminal)
	}
	if ev.TestOnly() && !c.opts.AllowTestModes {
		return fmt.Errorf("%s is disabled: %w", ev, ErrRejected)
	}

	switch ev {
	case EventHeads:
		c.push(1)
	case EventTails:
		c.push(0)
	case EventRandomFill:
		if c.opts.Rand == nil {
			return ErrNoRand
		}
		for c.Remaining() > 0 {
			c.bits = append(c.bits, byte(c.opts.Rand.IntN(2)))
		}
		c.state = StateComplete
	case EventDeterministicFill:
		for c.Remaining() > 0 {
			c.bits = append(c.bits, 1)
		}
		c.state = StateComplete
	case EventFixedPreset:
		preset := c.opts.Preset
		if preset == nil {
			preset = FixedPreset()
		}
		if err := invariant.Check("preset length", len(preset), c.strength.Bits()); err != nil {
			return err
		}
		c.bits = append(c.bits[:0], preset...)
		c.state = StateComplete
	case EventAbort:
		c.bits = nil
		c.state = StateAborted
	default:
		return fmt.Errorf("%s: %w", ev, ErrRejected)
	}
	return nil
}

func (c *Collector) push(b byte) {
	c.bits = append(c.bits, b)
	if c.Remaining() == 0 {
		c.state = StateComplete
	}
}

// Bits returns a copy of the collected bits once complete.
func (c *Collector) Bits() ([]byte, error) {
	switch c.state {
	case StateAborted:
		return nil, ErrAborted
	case StateCollecting:
		return nil, fmt.Errorf("%d of %d bits: %w", len(c.bits), c.strength.Bits(), ErrIncomplete)
	}
	if err := invariant.Check("raw bit length", len(c.bits), c.strength.Bits()); err != nil {
		return nil, err
	}
	out := make([]byte, len(c.bits))
	copy(out, c.bits)
	return out, nil
}
