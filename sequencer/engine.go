// Package sequencer holds the playback core: the looping 8-step state
// machine, the chord voicing table, the fingerpicking pattern generator and
// the swing timing grid.
package sequencer

import (
	"sync"

	"go-fingerpick/audio"
	"go-fingerpick/clock"
	"go-fingerpick/debug"
)

// Tempo bounds in quarter-note BPM. Writes outside the range clamp silently.
const (
	MinTempo = 60.0
	MaxTempo = 180.0
)

// Channel all notes are played on.
const Channel uint8 = 0

// Three-tier velocity scheme: downbeat accent, secondary accent on the
// loop midpoint, everything else regular.
const (
	velAccent    uint8 = 120 // step 0
	velSecondary uint8 = 100 // step 4
	velRegular   uint8 = 80
)

// stepScheduler is the timing substrate the engine drives. Satisfied by
// clock.Scheduler; tests substitute a recording fake.
type stepScheduler interface {
	Start(positions []float64, loopBeats float64, fire func())
	SetTempo(bpm float64)
	Stop()
}

// Engine owns all mutable playback state and serializes every mutation
// behind one mutex: user commands, step ticks and scrub ticks all go through
// it, so a command landing between a pending-state read and the step advance
// can't be lost or double-applied.
type Engine struct {
	backend audio.Backend
	sched   stepScheduler

	mu             sync.Mutex
	step           int
	chord          Chord
	pattern        Pattern
	pendingChord   *Chord
	pendingPattern *Pattern
	plan           StepPlan
	tempo          float64
	swing          float64 // applied to the running loop
	pendingSwing   float64 // live edit value, authoritative on commit
	sounding       map[uint8]bool
	playing        bool
	startErr       error

	tempoScrub *scrubAxis
	swingScrub *scrubAxis

	// UpdateChan signals the UI that published state changed. Non-blocking
	// sends; a slow UI can never stall the trigger path.
	UpdateChan chan struct{}
}

// NewEngine creates a stopped engine on chord I, Travis pattern.
func NewEngine(backend audio.Backend, tempo, swing float64) *Engine {
	e := &Engine{
		backend:      backend,
		tempo:        clamp(tempo, MinTempo, MaxTempo),
		swing:        clamp(swing, 0, 1),
		pendingSwing: clamp(swing, 0, 1),
		sounding:     make(map[uint8]bool),
		UpdateChan:   make(chan struct{}, 1),
	}
	e.plan = Generate(e.pattern, VoicingFor(e.chord))
	e.sched = clock.NewScheduler(e.tempo)
	e.tempoScrub = newScrubAxis(tempoMultiplier, func(d float64) { e.AdjustTempo(d) }, nil)
	e.swingScrub = newScrubAxis(swingMultiplier, func(d float64) { e.AdjustSwing(d * swingScrubStep) }, e.CommitSwing)
	return e
}

// StartAudio brings up the backend. A failure is latched: the engine keeps
// accepting control operations but Start becomes a no-op until resolved.
func (e *Engine) StartAudio() error {
	err := e.backend.Start()
	e.mu.Lock()
	e.startErr = err
	e.mu.Unlock()
	if err != nil {
		debug.Log("engine", "audio start failed: %v", err)
	}
	return err
}

// Start begins playback from step 0.
func (e *Engine) Start() {
	e.mu.Lock()
	if e.playing || e.startErr != nil {
		e.mu.Unlock()
		return
	}
	e.playing = true
	e.step = 0
	e.sounding = make(map[uint8]bool)
	pos := StepPositions(e.swing)
	e.mu.Unlock()

	e.sched.Start(pos[:], LoopBeats, e.handleStep)
	e.notify()
}

// Stop halts playback and silences every sounding note. Idempotent, and safe
// to call while a step tick is in flight: the scheduler is cancelled first,
// and a late tick sees playing == false and does nothing.
func (e *Engine) Stop() {
	e.sched.Stop()

	e.mu.Lock()
	e.playing = false
	e.silenceLocked()
	e.step = 0
	e.mu.Unlock()
	e.notify()
}

// TogglePlayback flips between Playing and Stopped.
func (e *Engine) TogglePlayback() {
	e.mu.Lock()
	playing := e.playing
	e.mu.Unlock()
	if playing {
		e.Stop()
	} else {
		e.Start()
	}
}

// Close tears the session down: scrubs cancelled, playback stopped, backend
// released.
func (e *Engine) Close() {
	e.tempoScrub.stop()
	e.swingScrub.stop()
	e.Stop()
	e.backend.Close()
}

// handleStep runs once per scheduler tick: applies latched changes on the
// downbeat, triggers this step's notes and advances the cycle.
func (e *Engine) handleStep() {
	e.mu.Lock()
	if !e.playing {
		e.mu.Unlock()
		return
	}

	if e.step == 0 {
		e.applyPendingLocked()
	}

	vel := velRegular
	switch e.step {
	case 0:
		vel = velAccent
	case 4:
		vel = velSecondary
	}

	for _, pitch := range e.plan[e.step] {
		e.backend.Play(pitch, vel, Channel)
		e.sounding[pitch] = true
	}

	e.step = (e.step + 1) % StepCount
	e.mu.Unlock()
	e.notify()
}

// applyPendingLocked consumes the chord/pattern latches at a loop boundary.
// Only an actual chord change silences the sounding set; a pattern-only
// change lets the old notes ring.
func (e *Engine) applyPendingLocked() {
	if e.pendingChord == nil && e.pendingPattern == nil {
		return
	}
	if pc := e.pendingChord; pc != nil {
		if *pc != e.chord {
			e.silenceLocked()
			e.chord = *pc
		}
		e.pendingChord = nil
	}
	if pp := e.pendingPattern; pp != nil {
		e.pattern = *pp
		e.pendingPattern = nil
	}
	e.plan = Generate(e.pattern, VoicingFor(e.chord))
}

// silenceLocked stops every sounding note exactly once.
func (e *Engine) silenceLocked() {
	for pitch := range e.sounding {
		e.backend.StopNote(pitch, Channel)
	}
	e.sounding = make(map[uint8]bool)
}

// SelectChord switches chords. While playing the change latches until the
// next downbeat so no pitch jumps mid-measure; while stopped it applies
// immediately.
func (e *Engine) SelectChord(c Chord) {
	if c < 0 || c >= NumChords {
		return
	}
	e.mu.Lock()
	if e.playing {
		if c == e.displayedChordLocked() {
			e.mu.Unlock()
			return
		}
		e.pendingChord = &c
	} else {
		if c == e.chord {
			e.mu.Unlock()
			return
		}
		e.chord = c
		e.plan = Generate(e.pattern, VoicingFor(e.chord))
		e.step = 0
	}
	e.mu.Unlock()
	e.notify()
}

// SelectPattern switches picking patterns with the same latch-at-downbeat
// behavior as SelectChord.
func (e *Engine) SelectPattern(p Pattern) {
	if p < 0 || p >= NumPatterns {
		return
	}
	e.mu.Lock()
	if e.playing {
		if p == e.displayedPatternLocked() {
			e.mu.Unlock()
			return
		}
		e.pendingPattern = &p
	} else {
		if p == e.pattern {
			e.mu.Unlock()
			return
		}
		e.pattern = p
		e.plan = Generate(e.pattern, VoicingFor(e.chord))
		e.step = 0
	}
	e.mu.Unlock()
	e.notify()
}

func (e *Engine) displayedChordLocked() Chord {
	if e.pendingChord != nil {
		return *e.pendingChord
	}
	return e.chord
}

func (e *Engine) displayedPatternLocked() Pattern {
	if e.pendingPattern != nil {
		return *e.pendingPattern
	}
	return e.pattern
}

// SetTempo clamps and applies a tempo. Unlike chord and pattern changes,
// tempo reaches the scheduler immediately and takes hold on the next tick.
func (e *Engine) SetTempo(bpm float64) {
	e.mu.Lock()
	bpm = clamp(bpm, MinTempo, MaxTempo)
	changed := bpm != e.tempo
	e.tempo = bpm
	e.mu.Unlock()

	if changed {
		e.sched.SetTempo(bpm)
		e.notify()
	}
}

// AdjustTempo nudges the tempo by a delta, clamped to the valid range.
func (e *Engine) AdjustTempo(delta float64) {
	e.mu.Lock()
	bpm := clamp(e.tempo+delta, MinTempo, MaxTempo)
	changed := bpm != e.tempo
	e.tempo = bpm
	e.mu.Unlock()

	if changed {
		e.sched.SetTempo(bpm)
		e.notify()
	}
}

// AdjustSwing nudges only the live-edit swing value. The running loop keeps
// its grid until CommitSwing, so edits can't desynchronize it mid-flight.
func (e *Engine) AdjustSwing(delta float64) {
	e.mu.Lock()
	next := clamp(e.pendingSwing+delta, 0, 1)
	if next == e.pendingSwing {
		e.mu.Unlock()
		return
	}
	e.pendingSwing = next
	e.mu.Unlock()
	e.notify()
}

// CommitSwing makes the live-edit swing authoritative. While playing the
// loop restarts from position 0 on a freshly computed grid; repositioning a
// loop mid-flight would glitch.
func (e *Engine) CommitSwing() {
	e.mu.Lock()
	if e.pendingSwing == e.swing {
		e.mu.Unlock()
		return
	}
	e.swing = e.pendingSwing
	restart := e.playing
	if restart {
		e.step = 0
	}
	pos := StepPositions(e.swing)
	e.mu.Unlock()

	if restart {
		e.sched.Start(pos[:], LoopBeats, e.handleStep)
	}
	e.notify()
}

// StartTempoScrub begins accelerating continuous tempo adjustment in the
// given direction (+1 or -1). Any scrub already running on this axis is
// stopped first.
func (e *Engine) StartTempoScrub(direction int) {
	e.tempoScrub.start(float64(direction))
	e.notify()
}

// StopTempoScrub cancels a running tempo scrub.
func (e *Engine) StopTempoScrub() {
	e.tempoScrub.stop()
	e.notify()
}

// StartSwingScrub begins accelerating continuous swing adjustment. The
// edits land on the pending value; releasing the scrub commits them.
func (e *Engine) StartSwingScrub(direction int) {
	e.swingScrub.start(float64(direction))
	e.notify()
}

// StopSwingScrub cancels a running swing scrub and commits the result.
func (e *Engine) StopSwingScrub() {
	e.swingScrub.stop()
	e.notify()
}

// Snapshot is the read-only state surface published to the presentation
// layer. The UI observes snapshots and calls operations; it never touches
// engine state directly.
type Snapshot struct {
	Playing bool
	Step    int

	Chord       Chord // sounding now
	NextChord   Chord // shown on the UI: pending if latched, else Chord
	Pattern     Pattern
	NextPattern Pattern

	Tempo        float64
	Swing        float64 // applied
	PendingSwing float64 // live edit

	TempoScrub int // -1, 0, +1
	SwingScrub int
}

// Snapshot returns a consistent copy of the published state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	snap := Snapshot{
		Playing:      e.playing,
		Step:         e.step,
		Chord:        e.chord,
		NextChord:    e.displayedChordLocked(),
		Pattern:      e.pattern,
		NextPattern:  e.displayedPatternLocked(),
		Tempo:        e.tempo,
		Swing:        e.swing,
		PendingSwing: e.pendingSwing,
	}
	e.mu.Unlock()
	snap.TempoScrub = e.tempoScrub.active()
	snap.SwingScrub = e.swingScrub.active()
	return snap
}

func (e *Engine) notify() {
	select {
	case e.UpdateChan <- struct{}{}:
	default:
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
