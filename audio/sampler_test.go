package audio

import (
	"errors"
	"math"
	"testing"
)

func TestRateFor(t *testing.T) {
	cases := []struct {
		pitch uint8
		want  float64
	}{
		{60, 1.0}, // recorded pitch
		{72, 2.0}, // octave up
		{48, 0.5}, // octave down
	}
	for _, c := range cases {
		if got := rateFor(c.pitch); math.Abs(got-c.want) > 1e-12 {
			t.Errorf("rateFor(%d) = %v, want %v", c.pitch, got, c.want)
		}
	}
	// A fifth up is the equal-tempered ratio, not exactly 1.5.
	if got := rateFor(67); math.Abs(got-1.4983) > 0.001 {
		t.Errorf("rateFor(67) = %v, want ~1.4983", got)
	}
}

func TestSamplerMixesAndReleases(t *testing.T) {
	s := &Sampler{}
	s.buf = make([]float64, sampleRate)
	for i := range s.buf {
		s.buf[i] = 0.5
	}

	out := make([]float32, 2*bufferSize)

	s.Play(60, 127, 0)
	s.process(out)
	if out[0] == 0 || out[1] == 0 {
		t.Fatal("playing voice produced silence")
	}
	if out[0] != out[1] {
		t.Errorf("stereo channels differ: %v vs %v", out[0], out[1])
	}

	s.StopNote(60, 0)

	// The release fade finishes within releaseFrames frames.
	for i := 0; i <= releaseFrames/bufferSize; i++ {
		s.process(out)
	}
	s.process(out)
	for i, v := range out {
		if v != 0 {
			t.Fatalf("frame %d still sounding (%v) after release", i, v)
		}
	}
}

func TestSamplerVelocityScalesGain(t *testing.T) {
	s := &Sampler{}
	s.buf = make([]float64, sampleRate)
	for i := range s.buf {
		s.buf[i] = 0.5
	}
	out := make([]float32, 2*bufferSize)

	s.Play(60, 127, 0)
	s.process(out)
	loud := out[0]

	s = &Sampler{buf: s.buf}
	s.Play(60, 64, 0)
	s.process(out)
	quiet := out[0]

	if quiet >= loud {
		t.Errorf("velocity 64 (%v) not quieter than 127 (%v)", quiet, loud)
	}
}

func TestSamplerSilentWithoutInstrument(t *testing.T) {
	s := &Sampler{}
	s.Play(60, 127, 0) // no resource loaded: stays silent, never panics
	s.StopNote(60, 0)

	out := make([]float32, 2*bufferSize)
	s.process(out)
	for _, v := range out {
		if v != 0 {
			t.Fatal("sampler without an instrument produced output")
		}
	}
}

func TestSamplerMissingResource(t *testing.T) {
	s, err := NewSampler("does-not-exist.wav")
	if !errors.Is(err, ErrResourceLoad) {
		t.Fatalf("err = %v, want ErrResourceLoad", err)
	}
	if s == nil {
		t.Fatal("sampler must stay usable after a load failure")
	}
}

func TestSamplerVoiceStealing(t *testing.T) {
	s := &Sampler{}
	s.buf = make([]float64, sampleRate)

	for i := 0; i < maxVoices+2; i++ {
		s.Play(60, 100, 0)
	}

	active := 0
	for _, v := range s.voices {
		if v.active {
			active++
		}
	}
	if active != maxVoices {
		t.Errorf("active voices = %d, want pool size %d", active, maxVoices)
	}
}
