package audio

import (
	"fmt"
	"sync"

	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver

	"go-fingerpick/debug"
)

// MIDIOut sends notes to a MIDI output port. The port is opened lazily by
// name; an empty name picks the first available port.
type MIDIOut struct {
	portName string

	mu   sync.Mutex
	send func(midi.Message) error
}

func NewMIDIOut(portName string) *MIDIOut {
	return &MIDIOut{portName: portName}
}

// Start opens the port eagerly so a missing device is reported once at
// startup instead of silently per note.
func (m *MIDIOut) Start() error {
	if m.sender() == nil {
		return fmt.Errorf("%w: no MIDI output port matching %q", ErrEngineStart, m.portName)
	}
	return nil
}

func (m *MIDIOut) Close() {
	m.mu.Lock()
	m.send = nil
	m.mu.Unlock()
	midi.CloseDriver()
}

func (m *MIDIOut) Play(pitch, velocity, channel uint8) {
	if send := m.sender(); send != nil {
		if err := send(midi.NoteOn(channel, pitch, velocity)); err != nil {
			debug.Log("midiout", "note on %d failed: %v", pitch, err)
		}
	}
}

func (m *MIDIOut) StopNote(pitch, channel uint8) {
	if send := m.sender(); send != nil {
		if err := send(midi.NoteOff(channel, pitch)); err != nil {
			debug.Log("midiout", "note off %d failed: %v", pitch, err)
		}
	}
}

// sender returns the cached send func, opening the port on first use.
func (m *MIDIOut) sender() func(midi.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.send != nil {
		return m.send
	}

	for _, port := range midi.GetOutPorts() {
		if m.portName != "" && port.String() != m.portName {
			continue
		}
		send, err := midi.SendTo(port)
		if err != nil {
			debug.Log("midiout", "open %q failed: %v", port.String(), err)
			continue
		}
		debug.Log("midiout", "opened %q", port.String())
		m.send = send
		return m.send
	}
	return nil
}
