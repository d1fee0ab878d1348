package entropy

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/odvcencio/cointoss/pkg/invariant"
)

// scriptSource replays a fixed list of lines, then io.EOF.
type scriptSource struct {
	lines []string
	pos   int
}

func script(lines ...string) *scriptSource { return &scriptSource{lines: lines} }

func (s *scriptSource) Next(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s.pos >= len(s.lines) {
		return "", io.EOF
	}
	line := s.lines[s.pos]
	s.pos++
	return line, nil
}

type recordingPrompter struct {
	prompts  []int
	rejected []string
	accepted []Event
	begun    int
}

func (p *recordingPrompter) Begin(total int, _ bool) { p.begun = total }

func (p *recordingPrompter) Prompt(flip int) { p.prompts = append(p.prompts, flip) }

func (p *recordingPrompter) Rejected(token string, _ bool) { p.rejected = append(p.rejected, token) }

func (p *recordingPrompter) Accepted(ev Event) { p.accepted = append(p.accepted, ev) }

func newTestCollector(t *testing.T, s Strength, opts Options) *Collector {
	t.Helper()
	c, err := NewCollector(s, opts)
	if err != nil {
		t.Fatalf("NewCollector: %v", err)
	}
	return c
}

func mustApply(t *testing.T, c *Collector, evs ...Event) {
	t.Helper()
	for _, ev := range evs {
		if err := c.Apply(ev); err != nil {
			t.Fatalf("Apply(%s): %v", ev, err)
		}
	}
}

func bitString(bits []byte) string {
	out := make([]byte, len(bits))
	for i, b := range bits {
		out[i] = '0' + b
	}
	return string(out)
}

func repeat(token string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = token
	}
	return out
}

func TestNewCollectorRejectsUnsupportedStrength(t *testing.T) {
	if _, err := NewCollector(Strength(100), Options{}); !errors.Is(err, ErrUnsupportedStrength) {
		t.Fatalf("NewCollector(100) err = %v, want ErrUnsupportedStrength", err)
	}
}

func TestSingleFlipsReachComplete(t *testing.T) {
	c := newTestCollector(t, Strength128, Options{})
	for i := 0; i < 127; i++ {
		ev := EventTails
		if i%2 == 0 {
			ev = EventHeads
		}
		if err := c.Apply(ev); err != nil {
			t.Fatalf("Apply #%d: %v", i, err)
		}
		if c.State() != StateCollecting {
			t.Fatalf("state after %d bits = %s, want collecting", i+1, c.State())
		}
	}
	if err := c.Apply(EventTails); err != nil {
		t.Fatalf("last Apply: %v", err)
	}
	if c.State() != StateComplete {
		t.Fatalf("state = %s, want complete", c.State())
	}
	bits, err := c.Bits()
	if err != nil {
		t.Fatalf("Bits: %v", err)
	}
	if len(bits) != 128 || bits[0] != 1 || bits[1] != 0 || bits[127] != 0 {
		t.Fatalf("unexpected bits: len=%d head=%v tail=%d", len(bits), bits[:2], bits[127])
	}
	if err := c.Apply(EventHeads); !errors.Is(err, ErrTerminal) {
		t.Fatalf("Apply after complete err = %v, want ErrTerminal", err)
	}
}

func TestInvalidEventIsSelfLoop(t *testing.T) {
	c := newTestCollector(t, Strength128, Options{})
	mustApply(t, c, EventHeads)
	if err := c.Apply(EventInvalid); !errors.Is(err, ErrRejected) {
		t.Fatalf("Apply(invalid) err = %v, want ErrRejected", err)
	}
	if c.State() != StateCollecting || c.Collected() != 1 {
		t.Fatalf("state=%s collected=%d, want collecting/1", c.State(), c.Collected())
	}
}

func TestRandomFillWithPinnedSeed(t *testing.T) {
	c := newTestCollector(t, Strength160, Options{Rand: NewRand(SeedFromInt(42))})
	mustApply(t, c, EventHeads, EventHeads, EventRandomFill)
	bits, err := c.Bits()
	if err != nil {
		t.Fatalf("Bits: %v", err)
	}
	const want = "11" +
		"11010011100001001100101000101101000011010011000110101100101110111010000000" +
		"110111001111101101010011000011000110001110101010011010001101011110010000100111100011"
	if got := bitString(bits); got != want {
		t.Fatalf("completion bits\n got %s\nwant %s", got, want)
	}
}

func TestRandomFillUsesFullSeed(t *testing.T) {
	fill := func(seed Seed) string {
		c := newTestCollector(t, Strength256, Options{Rand: NewRand(seed)})
		mustApply(t, c, EventRandomFill)
		bits, err := c.Bits()
		if err != nil {
			t.Fatalf("Bits: %v", err)
		}
		return bitString(bits)
	}

	// Integer seeds congruent modulo 2^31-1 must not collapse onto one stream.
	for _, n := range []int64{12345, 987654321} {
		if fill(SeedFromInt(n)) == fill(SeedFromInt(n+2147483647)) {
			t.Fatalf("seeds %d and %d produced the same 256-bit fill", n, n+2147483647)
		}
	}

	var lo, hi Seed
	hi[31] = 1
	if fill(lo) == fill(hi) {
		t.Fatal("seeds differing only in the last byte produced the same fill")
	}
}

func TestRandomFillWithoutRand(t *testing.T) {
	c := newTestCollector(t, Strength128, Options{})
	if err := c.Apply(EventRandomFill); !errors.Is(err, ErrNoRand) {
		t.Fatalf("Apply(random fill) err = %v, want ErrNoRand", err)
	}
}

// countingRand records how often it is consulted.
type countingRand struct{ calls int }

func (r *countingRand) IntN(int) int { r.calls++; return 0 }

func TestDeterministicFillSetsRemainingToOne(t *testing.T) {
	rng := &countingRand{}
	c := newTestCollector(t, Strength128, Options{AllowTestModes: true, Rand: rng})
	mustApply(t, c, EventTails)
	if err := c.Apply(EventDeterministicFill); err != nil {
		t.Fatalf("Apply(fill): %v", err)
	}
	bits, err := c.Bits()
	if err != nil {
		t.Fatalf("Bits: %v", err)
	}
	if bits[0] != 0 {
		t.Fatal("fill overwrote collected bit")
	}
	for i := 1; i < len(bits); i++ {
		if bits[i] != 1 {
			t.Fatalf("bit %d = %d, want 1", i, bits[i])
		}
	}
	if rng.calls != 0 {
		t.Fatalf("deterministic fill consulted generator %d times", rng.calls)
	}
}

func TestTestOnlyEventsRejectedByDefault(t *testing.T) {
	c := newTestCollector(t, Strength128, Options{})
	for _, ev := range []Event{EventDeterministicFill, EventFixedPreset} {
		if err := c.Apply(ev); !errors.Is(err, ErrRejected) {
			t.Fatalf("Apply(%s) err = %v, want ErrRejected", ev, err)
		}
	}
	if c.State() != StateCollecting {
		t.Fatalf("state = %s, want collecting", c.State())
	}
}

func TestFixedPresetReplacesManualBits(t *testing.T) {
	c := newTestCollector(t, Strength128, Options{AllowTestModes: true})
	mustApply(t, c, EventTails)
	if err := c.Apply(EventFixedPreset); err != nil {
		t.Fatalf("Apply(preset): %v", err)
	}
	bits, err := c.Bits()
	if err != nil {
		t.Fatalf("Bits: %v", err)
	}
	if !bytes.Equal(bits, FixedPreset()) {
		t.Fatal("preset bits differ from FixedPreset")
	}
}

func TestFixedPresetLengthMismatchIsViolation(t *testing.T) {
	for _, s := range []Strength{Strength160, Strength256} {
		c := newTestCollector(t, s, Options{AllowTestModes: true})
		err := c.Apply(EventFixedPreset)
		var v *invariant.Violation
		if !errors.As(err, &v) {
			t.Fatalf("%s: Apply(preset) err = %v, want *invariant.Violation", s, err)
		}
		if v.Got != 128 || v.Want != s.Bits() {
			t.Fatalf("%s: violation = %+v", s, v)
		}
		if c.State() != StateCollecting || c.Collected() != 0 {
			t.Fatalf("%s: preset mismatch changed collector state", s)
		}
	}

	c := newTestCollector(t, Strength128, Options{AllowTestModes: true, Preset: make([]byte, 127)})
	if err := c.Apply(EventFixedPreset); !invariant.Is(err) {
		t.Fatalf("short preset err = %v, want invariant violation", err)
	}
}

func TestAbortDiscardsBits(t *testing.T) {
	for _, before := range []int{0, 1, 64, 127} {
		c := newTestCollector(t, Strength128, Options{})
		for i := 0; i < before; i++ {
			mustApply(t, c, EventHeads)
		}
		if err := c.Apply(EventAbort); err != nil {
			t.Fatalf("Apply(abort): %v", err)
		}
		if c.State() != StateAborted {
			t.Fatalf("state = %s, want aborted", c.State())
		}
		bits, err := c.Bits()
		if !errors.Is(err, ErrAborted) || bits != nil {
			t.Fatalf("Bits after abort at %d = %v, %v; want nil, ErrAborted", before, bits, err)
		}
	}
}

func TestBitsBeforeCompleteIsIncomplete(t *testing.T) {
	c := newTestCollector(t, Strength128, Options{})
	mustApply(t, c, EventHeads)
	if _, err := c.Bits(); !errors.Is(err, ErrIncomplete) {
		t.Fatalf("Bits err = %v, want ErrIncomplete", err)
	}
}

func TestCollectScriptedFlips(t *testing.T) {
	lines := append([]string{"x", "H"}, repeat("t", 127)...)
	c := newTestCollector(t, Strength128, Options{})
	p := &recordingPrompter{}

	bits, err := Collect(context.Background(), script(lines...), c, p)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(bits) != 128 || bits[0] != 1 || bits[1] != 0 {
		t.Fatalf("unexpected bits len=%d prefix=%v", len(bits), bits[:2])
	}
	if p.begun != 128 {
		t.Fatalf("Begin total = %d, want 128", p.begun)
	}
	if len(p.rejected) != 1 || p.rejected[0] != "x" {
		t.Fatalf("rejected = %v, want [x]", p.rejected)
	}
	// The rejected token re-prompts flip 1.
	if p.prompts[0] != 1 || p.prompts[1] != 1 || p.prompts[2] != 2 {
		t.Fatalf("prompts start %v, want [1 1 2 ...]", p.prompts[:3])
	}
	if len(p.prompts) != 129 {
		t.Fatalf("prompt count = %d, want 129", len(p.prompts))
	}
}

func TestCollectAbortReturnsErrAborted(t *testing.T) {
	c := newTestCollector(t, Strength256, Options{})
	bits, err := Collect(context.Background(), script("h", "t", "h", "qq"), c, &recordingPrompter{})
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("Collect err = %v, want ErrAborted", err)
	}
	if bits != nil {
		t.Fatalf("Collect returned bits after abort: %v", bits)
	}
}

func TestCollectRandomFillNotifiesPrompter(t *testing.T) {
	c := newTestCollector(t, Strength128, Options{Rand: NewRand(SeedFromInt(7))})
	p := &recordingPrompter{}
	bits, err := Collect(context.Background(), script("h", "qf"), c, p)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(bits) != 128 {
		t.Fatalf("len(bits) = %d, want 128", len(bits))
	}
	if len(p.accepted) != 1 || p.accepted[0] != EventRandomFill {
		t.Fatalf("accepted = %v, want [random-fill]", p.accepted)
	}
}

func TestCollectPresetMismatchIsFatal(t *testing.T) {
	c := newTestCollector(t, Strength192, Options{AllowTestModes: true})
	_, err := Collect(context.Background(), script("preload", "h"), c, &recordingPrompter{})
	if !invariant.Is(err) {
		t.Fatalf("Collect err = %v, want invariant violation", err)
	}
}

func TestCollectInputClosed(t *testing.T) {
	c := newTestCollector(t, Strength128, Options{})
	_, err := Collect(context.Background(), script("h", "t"), c, &recordingPrompter{})
	if !errors.Is(err, ErrInputClosed) {
		t.Fatalf("Collect err = %v, want ErrInputClosed", err)
	}
}

func TestCollectCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := newTestCollector(t, Strength128, Options{})
	_, err := Collect(ctx, script("h"), c, &recordingPrompter{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Collect err = %v, want context.Canceled", err)
	}
}

func TestLineSourceReadsLines(t *testing.T) {
	src := NewLineSource(strings.NewReader("h\n  T \r\nqq"))
	ctx := context.Background()
	var got []string
	for {
		line, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		got = append(got, line)
	}
	if len(got) != 3 {
		t.Fatalf("lines = %q, want 3", got)
	}
	if ParseToken(got[1]) != EventTails {
		t.Fatalf("ParseToken(%q) = %s, want tails", got[1], ParseToken(got[1]))
	}
}
