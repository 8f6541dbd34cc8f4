package sequencer

import (
	"sync"
	"time"

	"go-fingerpick/clock"
)

// ScrubInterval is the period of the repeating scrub tick.
const ScrubInterval = 100 * time.Millisecond

// swingScrubStep is the base pending-swing delta applied per scrub tick.
const swingScrubStep = 0.01

// tempoMultiplier accelerates a held tempo scrub: the first ticks move by 1,
// then 2, then 5 BPM per tick. The counter is 1-based, so the 10th tick is
// the first ×2 tick and the 30th the first ×5.
func tempoMultiplier(ticks int) float64 {
	switch {
	case ticks >= 30:
		return 5
	case ticks >= 10:
		return 2
	default:
		return 1
	}
}

// swingMultiplier mirrors tempoMultiplier with a gentler top gear, since the
// whole swing range is only [0,1].
func swingMultiplier(ticks int) float64 {
	switch {
	case ticks >= 30:
		return 4
	case ticks >= 10:
		return 2
	default:
		return 1
	}
}

// scrubAxis is one held-control adjustment state machine. Tempo and swing
// each own a structurally identical instance, parameterized by multiplier
// table, apply target and an optional commit hook run when the scrub stops.
type scrubAxis struct {
	multiplier func(int) float64
	apply      func(delta float64)
	onStop     func()

	mu        sync.Mutex
	rep       *clock.Repeater
	direction float64
	ticks     int
}

func newScrubAxis(multiplier func(int) float64, apply func(float64), onStop func()) *scrubAxis {
	return &scrubAxis{multiplier: multiplier, apply: apply, onStop: onStop}
}

// start begins scrubbing in the given direction. A scrub already running on
// this axis is stopped first; one active scrub per axis.
func (a *scrubAxis) start(direction float64) {
	a.stop()

	a.mu.Lock()
	a.direction = direction
	a.ticks = 0
	a.rep = clock.Every(ScrubInterval, a.tick)
	a.mu.Unlock()
}

// stop cancels the repeating tick and runs the commit hook. No-op when the
// axis is idle.
func (a *scrubAxis) stop() {
	a.mu.Lock()
	rep := a.rep
	a.rep = nil
	a.mu.Unlock()

	if rep == nil {
		return
	}
	rep.Stop()
	if a.onStop != nil {
		a.onStop()
	}
}

// tick advances the elapsed counter and applies one accelerated delta. The
// counter increments before the multiplier lookup.
func (a *scrubAxis) tick() {
	a.mu.Lock()
	a.ticks++
	delta := a.direction * a.multiplier(a.ticks)
	a.mu.Unlock()

	a.apply(delta)
}

// active reports the running direction, or 0 when idle.
func (a *scrubAxis) active() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.rep == nil {
		return 0
	}
	return int(a.direction)
}
