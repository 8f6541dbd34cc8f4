// Package clock is the timing substrate for the sequencer: a looping step
// scheduler and a fixed-period repeater for held-control scrubbing.
package clock

import (
	"sync"
	"time"
)

// Scheduler fires a callback at each position of a looping measure. Positions
// are beat offsets within a loop of loopBeats total length; the firing rate
// follows the current tempo. Tempo changes take effect on the next tick.
type Scheduler struct {
	mu      sync.Mutex
	tempo   float64 // quarter-note BPM
	cancel  chan struct{}
	running bool
}

func NewScheduler(tempo float64) *Scheduler {
	return &Scheduler{tempo: tempo}
}

// SetTempo updates the firing rate. Safe to call at any time; the interval
// to the tick after the current one is computed with the new tempo.
func (s *Scheduler) SetTempo(bpm float64) {
	s.mu.Lock()
	s.tempo = bpm
	s.mu.Unlock()
}

// Start begins firing from position 0 immediately. Any previous run is
// cancelled first, so Start doubles as a restart-from-the-top.
func (s *Scheduler) Start(positions []float64, loopBeats float64, fire func()) {
	s.Stop()

	pos := append([]float64(nil), positions...)
	cancel := make(chan struct{})

	s.mu.Lock()
	s.cancel = cancel
	s.running = true
	s.mu.Unlock()

	go s.run(cancel, pos, loopBeats, fire)
}

// Stop cancels future ticks. Idempotent. A tick already in flight may still
// complete; callers guard against that on their side.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.running {
		close(s.cancel)
		s.running = false
	}
	s.mu.Unlock()
}

func (s *Scheduler) run(cancel chan struct{}, pos []float64, loopBeats float64, fire func()) {
	timer := time.NewTimer(0)
	defer timer.Stop()

	// Anchor step times to an absolute schedule rather than sleeping
	// per-interval, so timer jitter doesn't accumulate as drift.
	next := time.Now()

	for i := 0; ; i = (i + 1) % len(pos) {
		select {
		case <-cancel:
			return
		case <-timer.C:
		}

		fire()

		delta := loopBeats + pos[0] - pos[i]
		if i+1 < len(pos) {
			delta = pos[i+1] - pos[i]
		}
		next = next.Add(time.Duration(delta * s.secondsPerBeat() * float64(time.Second)))
		timer.Reset(time.Until(next))
	}
}

func (s *Scheduler) secondsPerBeat() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return 60.0 / s.tempo
}

// Repeater calls a function at a fixed period until stopped.
type Repeater struct {
	stop chan struct{}
	once sync.Once
}

// Every starts a new repeater ticking at the given period.
func Every(period time.Duration, fn func()) *Repeater {
	r := &Repeater{stop: make(chan struct{})}
	go func() {
		ticker := time.NewTicker(period)
		defer ticker.Stop()
		for {
			select {
			case <-r.stop:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()
	return r
}

// Stop cancels the repeater. Idempotent.
func (r *Repeater) Stop() {
	r.once.Do(func() { close(r.stop) })
}
