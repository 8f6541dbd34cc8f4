package sequencer

import (
	"reflect"
	"testing"
)

func TestGenerateShape(t *testing.T) {
	for p := Pattern(0); p < NumPatterns; p++ {
		for c := Chord(0); c < NumChords; c++ {
			plan := Generate(p, VoicingFor(c))
			if len(plan) != StepCount {
				t.Fatalf("%s/%s: plan length %d, want %d", p, c, len(plan), StepCount)
			}
			for i, notes := range plan {
				if len(notes) > 2 {
					t.Errorf("%s/%s step %d: %d notes, want at most 2", p, c, i, len(notes))
				}
			}
		}
	}
}

func TestGenerateTravis(t *testing.T) {
	v := VoicingFor(ChordV) // G: 55 59 62 67
	plan := Generate(PatternTravis, v)

	if want, got := (NoteSet{v.Root, v.Octave}), plan[0]; !reflect.DeepEqual(want, got) {
		t.Errorf("travis step 0 = %v, want pinched %v", got, want)
	}
	if len(plan[1]) != 0 {
		t.Errorf("travis step 1 = %v, want rest", plan[1])
	}
	if len(plan[7]) != 0 {
		t.Errorf("travis step 7 = %v, want rest", plan[7])
	}
}

func TestGenerateArpeggio(t *testing.T) {
	v := VoicingFor(ChordI)
	plan := Generate(PatternArpeggio, v)

	climb := []uint8{v.Root, v.Third, v.Fifth, v.Octave}
	for i := 0; i < StepCount; i++ {
		want := NoteSet{climb[i%4]}
		if !reflect.DeepEqual(want, plan[i]) {
			t.Errorf("arpeggio step %d = %v, want %v", i, plan[i], want)
		}
	}
}

func TestGeneratePitchesComeFromVoicing(t *testing.T) {
	for p := Pattern(0); p < NumPatterns; p++ {
		for c := Chord(0); c < NumChords; c++ {
			v := VoicingFor(c)
			allowed := map[uint8]bool{v.Root: true, v.Third: true, v.Fifth: true, v.Octave: true}
			for i, notes := range Generate(p, v) {
				for _, pitch := range notes {
					if !allowed[pitch] {
						t.Errorf("%s/%s step %d: pitch %d not in voicing %+v", p, c, i, pitch, v)
					}
				}
			}
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	v := VoicingFor(ChordIV)
	a := Generate(PatternRolling, v)
	b := Generate(PatternRolling, v)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("repeated Generate differs:\n%v\n%v", a, b)
	}
}
