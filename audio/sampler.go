package audio

import (
	"fmt"
	"io"
	"math"
	"os"
	"sync"

	"github.com/gordonklaus/portaudio"
	wav "github.com/youpy/go-wav"

	"go-fingerpick/debug"
)

const (
	sampleRate = 44100
	bufferSize = 256
	maxVoices  = 12

	// rootPitch is the MIDI pitch the instrument wav is assumed to be
	// recorded at; other pitches are resampled relative to it.
	rootPitch = 60

	// releaseFrames is the fade-out length applied when a note is stopped,
	// long enough to avoid a click but short enough to feel immediate.
	releaseFrames = 1024
)

// voice is one playing instance of the instrument sample.
type voice struct {
	pos    float64 // fractional frame position in buf
	rate   float64 // playback rate (1.0 = recorded pitch)
	gain   float64
	fade   float64 // 1.0 while held, ramps to 0 after release
	pitch  uint8
	active bool
}

// Sampler plays a single sampled instrument voice through portaudio,
// pitch-shifting the loaded wav by playback rate. A Sampler whose resource
// failed to load stays usable and renders silence.
type Sampler struct {
	stream *portaudio.Stream

	mu     sync.Mutex
	buf    []float64 // mono frames
	voices [maxVoices]voice
}

// NewSampler loads the instrument resource. On load failure the returned
// Sampler is still valid (silent) and the error wraps ErrResourceLoad.
func NewSampler(path string) (*Sampler, error) {
	s := &Sampler{}
	if err := s.loadInstrument(path); err != nil {
		return s, err
	}
	return s, nil
}

func (s *Sampler) loadInstrument(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrResourceLoad, err)
	}
	defer f.Close()

	r := wav.NewReader(f)
	var buf []float64
	for {
		samples, err := r.ReadSamples()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrResourceLoad, err)
		}
		for _, sample := range samples {
			buf = append(buf, r.FloatValue(sample, 0))
		}
	}
	if len(buf) == 0 {
		return fmt.Errorf("%w: %s holds no samples", ErrResourceLoad, path)
	}

	s.mu.Lock()
	s.buf = buf
	s.mu.Unlock()
	debug.Log("sampler", "loaded %s (%d frames)", path, len(buf))
	return nil
}

func (s *Sampler) Start() error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("%w: %v", ErrEngineStart, err)
	}
	stream, err := portaudio.OpenDefaultStream(0, 2, sampleRate, bufferSize, s.process)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("%w: %v", ErrEngineStart, err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("%w: %v", ErrEngineStart, err)
	}
	s.stream = stream
	return nil
}

func (s *Sampler) Close() {
	if s.stream != nil {
		s.stream.Stop()
		s.stream.Close()
		s.stream = nil
		portaudio.Terminate()
	}
}

// Play claims a free voice for the pitch. When the pool is exhausted the
// oldest voice is stolen, which keeps a dense pattern from going silent.
func (s *Sampler) Play(pitch, velocity, channel uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.buf) == 0 {
		return // resource never loaded, stay silent
	}

	v := voice{
		rate:   rateFor(pitch),
		gain:   float64(velocity) / 127.0,
		fade:   1.0,
		pitch:  pitch,
		active: true,
	}

	for i := range s.voices {
		if !s.voices[i].active {
			s.voices[i] = v
			return
		}
	}

	oldest := 0
	for i := range s.voices {
		if s.voices[i].pos > s.voices[oldest].pos {
			oldest = i
		}
	}
	debug.LogEvery(8, "sampler", "voice pool exhausted, stealing")
	s.voices[oldest] = v
}

// StopNote releases every voice playing the pitch; the fade finishes in the
// stream callback.
func (s *Sampler) StopNote(pitch, channel uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.voices {
		if s.voices[i].active && s.voices[i].pitch == pitch && s.voices[i].fade >= 1.0 {
			s.voices[i].fade = 1.0 - 1.0/releaseFrames
		}
	}
}

// process is the portaudio stream callback: mixes all active voices into a
// stereo-interleaved buffer with linear-interpolated resampling.
func (s *Sampler) process(out []float32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range out {
		out[i] = 0
	}

	frames := len(out) / 2
	for vi := range s.voices {
		v := &s.voices[vi]
		if !v.active {
			continue
		}
		for f := 0; f < frames; f++ {
			idx := int(v.pos)
			if idx+1 >= len(s.buf) || v.fade <= 0 {
				v.active = false
				break
			}
			frac := v.pos - float64(idx)
			sample := s.buf[idx]*(1-frac) + s.buf[idx+1]*frac
			sample *= v.gain * v.fade

			out[2*f] += float32(sample)
			out[2*f+1] += float32(sample)

			v.pos += v.rate
			if v.fade < 1.0 {
				v.fade -= 1.0 / releaseFrames
			}
		}
	}
}

// rateFor converts a MIDI pitch into a playback rate relative to the pitch
// the sample was recorded at (equal temperament).
func rateFor(pitch uint8) float64 {
	return math.Pow(2, float64(int(pitch)-rootPitch)/12.0)
}
