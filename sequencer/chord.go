package sequencer

// Chord is a diatonic chord slot in the key of C, plus the tonic an octave up.
type Chord int

const (
	ChordI Chord = iota
	ChordII
	ChordIII
	ChordIV
	ChordV
	ChordVI
	ChordVII
	ChordI8

	NumChords = 8
)

var chordNames = [NumChords]string{"I", "ii", "iii", "IV", "V", "vi", "vii°", "I'"}

func (c Chord) String() string {
	if c < 0 || c >= NumChords {
		return "?"
	}
	return chordNames[c]
}

// Voicing is the four concrete MIDI pitches a chord is played with.
type Voicing struct {
	Root   uint8
	Third  uint8
	Fifth  uint8
	Octave uint8
}

// voicings holds close-position voicings rooted between C3 (48) and C5 (72).
// These values define musical correctness and are locked by tests.
var voicings = [NumChords]Voicing{
	ChordI:   {48, 52, 55, 60}, // C  E  G  C
	ChordII:  {50, 53, 57, 62}, // D  F  A  D
	ChordIII: {52, 55, 59, 64}, // E  G  B  E
	ChordIV:  {53, 57, 60, 65}, // F  A  C  F
	ChordV:   {55, 59, 62, 67}, // G  B  D  G
	ChordVI:  {57, 60, 64, 69}, // A  C  E  A
	ChordVII: {59, 62, 65, 71}, // B  D  F  B
	ChordI8:  {60, 64, 67, 72}, // C  E  G  C
}

// VoicingFor returns the fixed voicing for a chord. Total; out-of-range
// chords fold to the tonic.
func VoicingFor(c Chord) Voicing {
	if c < 0 || c >= NumChords {
		c = ChordI
	}
	return voicings[c]
}
