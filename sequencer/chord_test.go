package sequencer

import "testing"

func TestVoicingTable(t *testing.T) {
	want := map[Chord]Voicing{
		ChordI:   {48, 52, 55, 60},
		ChordII:  {50, 53, 57, 62},
		ChordIII: {52, 55, 59, 64},
		ChordIV:  {53, 57, 60, 65},
		ChordV:   {55, 59, 62, 67},
		ChordVI:  {57, 60, 64, 69},
		ChordVII: {59, 62, 65, 71},
		ChordI8:  {60, 64, 67, 72},
	}

	for c, v := range want {
		if got := VoicingFor(c); got != v {
			t.Errorf("VoicingFor(%s) = %+v, want %+v", c, got, v)
		}
		// Table lookups are stable across repeated calls.
		if got := VoicingFor(c); got != v {
			t.Errorf("VoicingFor(%s) unstable on second call: %+v", c, got)
		}
	}
}

func TestVoicingShape(t *testing.T) {
	for c := Chord(0); c < NumChords; c++ {
		v := VoicingFor(c)
		if v.Root < 48 || v.Octave > 79 {
			t.Errorf("%s voicing %+v out of range 48-79", c, v)
		}
		if !(v.Root < v.Third && v.Third < v.Fifth && v.Fifth < v.Octave) {
			t.Errorf("%s voicing %+v not in ascending order", c, v)
		}
		if v.Octave != v.Root+12 {
			t.Errorf("%s octave %d is not root %d + 12", c, v.Octave, v.Root)
		}
	}
}

func TestVoicingForOutOfRange(t *testing.T) {
	if got := VoicingFor(Chord(-1)); got != voicings[ChordI] {
		t.Errorf("negative chord = %+v, want tonic", got)
	}
	if got := VoicingFor(Chord(99)); got != voicings[ChordI] {
		t.Errorf("overflow chord = %+v, want tonic", got)
	}
}
