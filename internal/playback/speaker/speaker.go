// Package speaker plays clips on the default audio device.
package speaker

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/jwulff/audiolabel/internal/playback"
)

const resampleQuality = 4

// Sink is a playback.Sink backed by the system speaker. The speaker is
// opened once, lazily, at the output rate; clips at other rates are
// resampled.
type Sink struct {
	rate beep.SampleRate

	once    sync.Once
	initErr error

	mu   sync.Mutex
	ctrl *beep.Ctrl
}

var _ playback.Sink = (*Sink)(nil)

// New returns a sink that opens the speaker at outputRate on first use.
func New(outputRate int) *Sink {
	return &Sink{rate: beep.SampleRate(outputRate)}
}

func (s *Sink) open() error {
	s.once.Do(func() {
		s.initErr = speaker.Init(s.rate, s.rate.N(100*time.Millisecond))
	})
	return s.initErr
}

// Play implements playback.Sink.
func (s *Sink) Play(samples []float64, sampleRate int, done func()) error {
	if err := s.open(); err != nil {
		return fmt.Errorf("open speaker: %w", err)
	}

	var st beep.Streamer = playback.NewStreamer(samples)
	if beep.SampleRate(sampleRate) != s.rate {
		st = beep.Resample(resampleQuality, beep.SampleRate(sampleRate), s.rate, st)
	}
	// The callback runs with the speaker locked; hand off before calling out.
	ctrl := &beep.Ctrl{Streamer: beep.Seq(st, beep.Callback(func() { go done() }))}

	speaker.Clear()
	s.mu.Lock()
	s.ctrl = ctrl
	s.mu.Unlock()
	speaker.Play(ctrl)
	return nil
}

// SetPaused implements playback.Sink.
func (s *Sink) SetPaused(paused bool) {
	s.mu.Lock()
	ctrl := s.ctrl
	s.mu.Unlock()
	if ctrl == nil {
		return
	}
	speaker.Lock()
	ctrl.Paused = paused
	speaker.Unlock()
}

// Stop implements playback.Sink.
func (s *Sink) Stop() {
	s.mu.Lock()
	active := s.ctrl != nil
	s.ctrl = nil
	s.mu.Unlock()
	if active {
		speaker.Clear()
	}
}
