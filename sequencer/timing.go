package sequencer

// StepCount is the number of subdivisions in one loop.
const StepCount = 8

// LoopBeats is the total loop length in beats: 8 steps of a quarter beat.
const LoopBeats = 2.0

const (
	stepBeats  = 0.25
	swingBeats = 0.083 // max delay added to offbeat steps
)

// StepPositions returns the beat offset of each step within the loop. Even
// steps sit on the quarter-beat grid; odd steps are delayed in proportion to
// the swing amount, which produces the shuffle feel.
func StepPositions(swing float64) [StepCount]float64 {
	var pos [StepCount]float64
	for i := range pos {
		pos[i] = float64(i) * stepBeats
		if i%2 == 1 {
			pos[i] += swing * swingBeats
		}
	}
	return pos
}
