package sound

import (
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
)

const resampleQuality = 4

// Handle identifies a loaded sound.
type Handle int

// Player is the audio playback subsystem.
type Player interface {
	Load(resource string) (Handle, error)
	Play(h Handle) error
	Release(h Handle) error
}

// Speaker plays sounds through the system audio device.
type Speaker struct {
	buffers     map[Handle]*beep.Buffer
	mu          sync.Mutex
	next        Handle
	sampleRate  beep.SampleRate
	initialized bool
}

var _ Player = (*Speaker)(nil)

// NewSpeaker returns a Speaker. The audio device is initialised on the first
// successful Load.
func NewSpeaker() *Speaker {
	return &Speaker{
		buffers: make(map[Handle]*beep.Buffer),
	}
}

func (s *Speaker) Load(resource string) (Handle, error) {
	buf, err := decode(resource)
	if err != nil {
		return 0, &AudioError{Op: "load", Resource: resource, Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		bufferSize := 10
		sr := buf.Format().SampleRate

		err = speaker.Init(sr, sr.N(time.Second/time.Duration(bufferSize)))
		if err != nil {
			return 0, &AudioError{Op: "load", Resource: resource, Err: err}
		}

		s.sampleRate = sr
		s.initialized = true
	}

	s.next++
	s.buffers[s.next] = buf

	return s.next, nil
}

// Play starts the sound from the beginning without waiting for it to end.
func (s *Speaker) Play(h Handle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	buf, ok := s.buffers[h]
	if !ok {
		return &AudioError{Op: "play", Err: errUnknownHandle}
	}

	var stream beep.Streamer = buf.Streamer(0, buf.Len())

	if sr := buf.Format().SampleRate; sr != s.sampleRate {
		stream = beep.Resample(resampleQuality, sr, s.sampleRate, stream)
	}

	speaker.Play(stream)

	return nil
}

// Release forgets the sound. The audio device is closed once no sounds remain
// loaded.
func (s *Speaker) Release(h Handle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.buffers[h]; !ok {
		return &AudioError{Op: "release", Err: errUnknownHandle}
	}

	delete(s.buffers, h)

	if len(s.buffers) == 0 && s.initialized {
		speaker.Clear()
		speaker.Close()

		s.initialized = false
	}

	return nil
}

// Silent is a Player that never makes a sound.
type Silent struct{}

var _ Player = Silent{}

func (Silent) Load(string) (Handle, error) { return 0, nil }

func (Silent) Play(Handle) error { return nil }

func (Silent) Release(Handle) error { return nil }

// NewPlayer returns the player for the configured cue sound.
func NewPlayer(sound string) Player {
	if sound == "" || sound == Off {
		return Silent{}
	}

	return NewSpeaker()
}
