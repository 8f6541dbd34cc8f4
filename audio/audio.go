// Package audio defines the playback backend the sequencer drives, with two
// implementations: a MIDI output port and a built-in wav sampler.
package audio

import "errors"

// Backend plays and silences individual notes. Play and StopNote are
// fire-and-forget: they never block and never report per-note failures,
// because the sequencer's timing matters more than delivery of one note.
type Backend interface {
	// Start brings the backend up. Errors wrap ErrEngineStart.
	Start() error
	// Close releases the backend. Safe after a failed Start.
	Close()

	Play(pitch, velocity, channel uint8)
	StopNote(pitch, channel uint8)
}

// ErrResourceLoad marks a missing or unreadable instrument resource. The
// backend stays usable (silent) when this is returned.
var ErrResourceLoad = errors.New("audio: instrument resource load failed")

// ErrEngineStart marks a backend that failed to initialize. Playback
// commands become no-ops until it is resolved.
var ErrEngineStart = errors.New("audio: engine start failed")
