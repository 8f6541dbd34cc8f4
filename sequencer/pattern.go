package sequencer

// Pattern is a fingerpicking style applied to the current voicing.
type Pattern int

const (
	PatternTravis Pattern = iota
	PatternAlternate
	PatternRolling
	PatternArpeggio

	NumPatterns = 4
)

var patternNames = [NumPatterns]string{"Travis", "Alternate", "Rolling", "Arpeggio"}

func (p Pattern) String() string {
	if p < 0 || p >= NumPatterns {
		return "?"
	}
	return patternNames[p]
}

// NoteSet is the 0-2 pitches sounded together at one step.
type NoteSet []uint8

// StepPlan is the per-step note assignment for one loop. Index i plays at
// sequencer step i.
type StepPlan [StepCount]NoteSet

// degree selects a voice out of a Voicing when a pattern is rendered.
type degree int

const (
	degRoot degree = iota
	degThird
	degFifth
	degOctave
)

// patternSlots fixes, per pattern, which chord degrees sound at each of the
// 8 steps. An empty slot is a rest.
var patternSlots = [NumPatterns][StepCount][]degree{
	// Pinched root+octave on the downbeat, rests on 1 and 7.
	PatternTravis: {
		{degRoot, degOctave}, {}, {degThird}, {degFifth},
		{degRoot}, {degThird}, {degFifth}, {},
	},
	// Boom-chick: bass alternates root and fifth, third fills between.
	PatternAlternate: {
		{degRoot}, {degThird}, {degOctave}, {degThird},
		{degFifth}, {degThird}, {degOctave}, {degThird},
	},
	// Continuous down-up roll.
	PatternRolling: {
		{degRoot}, {degThird}, {degFifth}, {degOctave},
		{degFifth}, {degThird}, {degFifth}, {degThird},
	},
	// Straight climb, twice per loop.
	PatternArpeggio: {
		{degRoot}, {degThird}, {degFifth}, {degOctave},
		{degRoot}, {degThird}, {degFifth}, {degOctave},
	},
}

// Generate renders a pattern against a voicing. Pure and total: unknown
// patterns fold to Travis.
func Generate(p Pattern, v Voicing) StepPlan {
	if p < 0 || p >= NumPatterns {
		p = PatternTravis
	}
	var plan StepPlan
	for i, slot := range patternSlots[p] {
		notes := make(NoteSet, 0, len(slot))
		for _, d := range slot {
			notes = append(notes, v.pitch(d))
		}
		plan[i] = notes
	}
	return plan
}

func (v Voicing) pitch(d degree) uint8 {
	switch d {
	case degThird:
		return v.Third
	case degFifth:
		return v.Fifth
	case degOctave:
		return v.Octave
	default:
		return v.Root
	}
}
