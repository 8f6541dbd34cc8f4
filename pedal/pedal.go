// Package pedal connects a MIDI foot controller to the engine. Ports are
// polled so a pedalboard can be plugged in at any time; absence of a device
// is never an error.
package pedal

import (
	"context"
	"strings"
	"sync"
	"time"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver

	"go-fingerpick/debug"
	"go-fingerpick/sequencer"
)

// Note/controller map: one octave of chord switches, four pattern switches,
// and the sustain pedal as the play/stop footswitch.
const (
	chordBaseNote   uint8 = 60 // 60-67 select chords I..I'
	patternBaseNote uint8 = 68 // 68-71 select patterns
	sustainCC       uint8 = 64
)

// Ports matching any of these are never auto-connected (virtual/system ports).
var excludedPortPatterns = []string{"midi through", "through port", "dummy"}

// Listener polls MIDI input ports and routes foot-controller events to the
// engine.
type Listener struct {
	engine   *sequencer.Engine
	portName string // preferred port; empty takes any real input port
	pollRate time.Duration

	mu        sync.Mutex
	connected string
	stopFn    func()
}

func NewListener(engine *sequencer.Engine, portName string) *Listener {
	return &Listener{
		engine:   engine,
		portName: portName,
		pollRate: time.Second,
	}
}

// Run blocks, scanning for a controller until the context is cancelled.
func (l *Listener) Run(ctx context.Context) {
	ticker := time.NewTicker(l.pollRate)
	defer ticker.Stop()

	l.scan()

	for {
		select {
		case <-ctx.Done():
			l.disconnect()
			return
		case <-ticker.C:
			l.scan()
		}
	}
}

func (l *Listener) scan() {
	// Port enumeration can hang on some systems; guard it with a timeout.
	ch := make(chan []drivers.In, 1)
	go func() { ch <- midi.GetInPorts() }()

	var inPorts []drivers.In
	select {
	case inPorts = <-ch:
	case <-time.After(3 * time.Second):
		debug.Log("pedal", "port scan timed out, skipping")
		return
	}

	l.mu.Lock()
	connected := l.connected
	l.mu.Unlock()

	if connected != "" {
		for _, p := range inPorts {
			if p.String() == connected {
				return // still plugged in
			}
		}
		debug.Log("pedal", "%q disconnected", connected)
		l.disconnect()
	}

	port := l.pickPort(inPorts)
	if port == nil {
		return
	}

	stop, err := midi.ListenTo(port, func(msg midi.Message, timestampms int32) {
		l.handle(msg)
	})
	if err != nil {
		debug.Log("pedal", "listen on %q failed: %v", port.String(), err)
		return
	}

	l.mu.Lock()
	l.connected = port.String()
	l.stopFn = stop
	l.mu.Unlock()
	debug.Log("pedal", "connected to %q", port.String())
}

func (l *Listener) pickPort(inPorts []drivers.In) drivers.In {
	for _, p := range inPorts {
		name := p.String()
		if l.portName != "" {
			if name == l.portName {
				return p
			}
			continue
		}
		if !excludedPort(name) {
			return p
		}
	}
	return nil
}

func (l *Listener) disconnect() {
	l.mu.Lock()
	stop := l.stopFn
	l.stopFn = nil
	l.connected = ""
	l.mu.Unlock()
	if stop != nil {
		stop()
	}
}

// Connected reports the active port name, empty when no controller is up.
func (l *Listener) Connected() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.connected
}

func (l *Listener) handle(msg midi.Message) {
	var channel, key, velocity uint8
	if msg.GetNoteOn(&channel, &key, &velocity) && velocity > 0 {
		switch {
		case key >= chordBaseNote && key < chordBaseNote+sequencer.NumChords:
			l.engine.SelectChord(sequencer.Chord(key - chordBaseNote))
		case key >= patternBaseNote && key < patternBaseNote+sequencer.NumPatterns:
			l.engine.SelectPattern(sequencer.Pattern(key - patternBaseNote))
		}
		return
	}

	var cc, value uint8
	if msg.GetControlChange(&channel, &cc, &value) && cc == sustainCC && value >= 64 {
		l.engine.TogglePlayback()
	}
}

func excludedPort(name string) bool {
	name = strings.ToLower(name)
	for _, pat := range excludedPortPatterns {
		if strings.Contains(name, pat) {
			return true
		}
	}
	return false
}
