package sequencer

import (
	"math"
	"testing"
)

func TestStepPositionsNoSwing(t *testing.T) {
	pos := StepPositions(0)
	for i, p := range pos {
		if want := float64(i) * 0.25; p != want {
			t.Errorf("step %d at %v, want %v", i, p, want)
		}
	}
}

func TestStepPositionsSwing(t *testing.T) {
	const swing = 0.6
	pos := StepPositions(swing)
	for i, p := range pos {
		want := float64(i) * 0.25
		if i%2 == 1 {
			want += swing * 0.083
		}
		if math.Abs(p-want) > 1e-12 {
			t.Errorf("step %d at %v, want %v", i, p, want)
		}
	}
}

func TestStepPositionsStayInLoop(t *testing.T) {
	pos := StepPositions(1)
	for i := 1; i < StepCount; i++ {
		if pos[i] <= pos[i-1] {
			t.Errorf("positions not strictly increasing at %d: %v", i, pos)
		}
	}
	if pos[StepCount-1] >= LoopBeats {
		t.Errorf("last step %v spills past the loop of %v beats", pos[StepCount-1], LoopBeats)
	}
}
