package sequencer

import (
	"testing"
	"time"

	"go-fingerpick/clock"
)

func TestScrubMultiplierTables(t *testing.T) {
	cases := []struct {
		ticks       int
		tempo, swng float64
	}{
		{1, 1, 1},
		{9, 1, 1},
		{10, 2, 2},
		{29, 2, 2},
		{30, 5, 4},
		{31, 5, 4},
		{100, 5, 4},
	}
	for _, c := range cases {
		if got := tempoMultiplier(c.ticks); got != c.tempo {
			t.Errorf("tempoMultiplier(%d) = %v, want %v", c.ticks, got, c.tempo)
		}
		if got := swingMultiplier(c.ticks); got != c.swng {
			t.Errorf("swingMultiplier(%d) = %v, want %v", c.ticks, got, c.swng)
		}
	}
}

func TestScrubAxisAppliesAcceleratingDeltas(t *testing.T) {
	var got []float64
	a := newScrubAxis(tempoMultiplier, func(d float64) { got = append(got, d) }, nil)
	a.direction = -1

	for i := 0; i < 31; i++ {
		a.tick()
	}

	if got[0] != -1 || got[8] != -1 {
		t.Errorf("early ticks = %v/%v, want -1", got[0], got[8])
	}
	if got[9] != -2 {
		t.Errorf("10th tick = %v, want -2", got[9])
	}
	if got[28] != -2 {
		t.Errorf("29th tick = %v, want -2", got[28])
	}
	if got[29] != -5 || got[30] != -5 {
		t.Errorf("30th/31st ticks = %v/%v, want -5", got[29], got[30])
	}
}

func TestScrubStopRunsCommitHook(t *testing.T) {
	committed := 0
	a := newScrubAxis(swingMultiplier, func(float64) {}, func() { committed++ })

	// Idle stop must not commit.
	a.stop()
	if committed != 0 {
		t.Fatalf("idle stop committed %d times", committed)
	}

	a.rep = clock.Every(time.Hour, a.tick)
	a.stop()
	if committed != 1 {
		t.Errorf("stop committed %d times, want 1", committed)
	}

	// Stop is idempotent.
	a.stop()
	if committed != 1 {
		t.Errorf("second stop committed again (%d)", committed)
	}
}

func TestScrubStartResetsElapsed(t *testing.T) {
	a := newScrubAxis(tempoMultiplier, func(float64) {}, nil)
	a.ticks = 25

	a.start(1)
	defer a.stop()

	a.mu.Lock()
	ticks, dir := a.ticks, a.direction
	a.mu.Unlock()

	if ticks != 0 {
		t.Errorf("ticks = %d after start, want reset to 0", ticks)
	}
	if dir != 1 {
		t.Errorf("direction = %v, want 1", dir)
	}
	if a.active() != 1 {
		t.Errorf("active() = %d, want 1", a.active())
	}
}
