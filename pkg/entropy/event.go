package entropy

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/width"
)

// Event is one input to the collector state machine.
type Event int

const (
	EventInvalid Event = iota
	EventHeads
	EventTails
	EventRandomFill
	EventAbort
	// EventDeterministicFill and EventFixedPreset exist for fixtures and
	// regression runs. The collector rejects them unless test modes are on.
	EventDeterministicFill
	EventFixedPreset
)

func (e Event) String() string {
	switch e {
	case EventHeads:
		return "heads"
	case EventTails:
		return "tails"
	case EventRandomFill:
		return "random-fill"
	case EventAbort:
		return "abort"
	case EventDeterministicFill:
		return "deterministic-fill"
	case EventFixedPreset:
		return "fixed-preset"
	default:
		return "invalid"
	}
}

// TestOnly reports whether e is gated behind test modes.
func (e Event) TestOnly() bool {
	return e == EventDeterministicFill || e == EventFixedPreset
}

// Tokens accepted on input, keyed by their normalized form.
const (
	TokenHeads     = "h"
	TokenTails     = "t"
	TokenQuitFill  = "qf"
	TokenQuitQuit  = "qq"
	TokenFill      = "fill"
	TokenPreload   = "preload"
	tokenHeadsLong = "heads"
	tokenTailsLong = "tails"
)

var tokenEvents = map[string]Event{
	TokenHeads:     EventHeads,
	tokenHeadsLong: EventHeads,
	TokenTails:     EventTails,
	tokenTailsLong: EventTails,
	TokenQuitFill:  EventRandomFill,
	TokenQuitQuit:  EventAbort,
	TokenFill:      EventDeterministicFill,
	TokenPreload:   EventFixedPreset,
}

// NormalizeToken trims the line, folds full-width forms to ASCII and
// case-folds it.
func NormalizeToken(line string) string {
	s := strings.TrimSpace(line)
	s = width.Fold.String(s)
	return cases.Fold().String(s)
}

// ParseToken maps one input line to an Event. Unknown input maps to
// EventInvalid and never to a bit.
func ParseToken(line string) Event {
	if ev, ok := tokenEvents[NormalizeToken(line)]; ok {
		return ev
	}
	return EventInvalid
}
