// Package playback previews audio through a single output port so that
// whole-file and selection playback share one state machine.
package playback

import (
	"errors"
	"fmt"
	"sync"

	"github.com/jwulff/audiolabel/internal/audio"
)

// ErrEmptyRange is returned when asked to play zero samples.
var ErrEmptyRange = errors.New("nothing to play")

// State is the transport state of the controller.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return "stopped"
	}
}

// Sink is an audio output. Play must not block for the length of the clip
// and must not call done synchronously. Stop returns once output has ceased.
type Sink interface {
	Play(samples []float64, sampleRate int, done func()) error
	SetPaused(paused bool)
	Stop()
}

// Range identifies what is currently loaded into the sink, in samples.
type Range struct {
	Start int
	End   int
}

// Controller drives a Sink. It is safe for concurrent use; the sink's
// completion callback arrives on another goroutine.
type Controller struct {
	sink Sink

	mu    sync.Mutex
	state State
	rng   Range
	gen   uint64
}

// NewController returns a stopped controller over sink.
func NewController(sink Sink) *Controller {
	return &Controller{sink: sink}
}

// State returns the current transport state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Current returns the range being played or paused. Only meaningful when
// State is not Stopped.
func (c *Controller) Current() Range {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rng
}

// PlayAll plays the whole buffer from the beginning.
func (c *Controller) PlayAll(buf *audio.Buffer) error {
	if buf == nil {
		return ErrEmptyRange
	}
	return c.PlayRange(buf, 0, buf.Len())
}

// PlayRange plays samples[start:end] of buf, replacing anything already
// playing. The samples are copied before playback starts.
func (c *Controller) PlayRange(buf *audio.Buffer, start, end int) error {
	if buf == nil {
		return ErrEmptyRange
	}
	samples, err := buf.Slice(start, end)
	if err != nil {
		return fmt.Errorf("play range: %w", err)
	}
	if len(samples) == 0 {
		return ErrEmptyRange
	}

	c.Stop()

	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.state = Playing
	c.rng = Range{Start: start, End: end}
	c.mu.Unlock()

	if err := c.sink.Play(samples, buf.SampleRate(), func() { c.finished(gen) }); err != nil {
		c.mu.Lock()
		if c.gen == gen {
			c.state = Stopped
		}
		c.mu.Unlock()
		return err
	}
	return nil
}

// Toggle pauses a playing clip or resumes a paused one. It does nothing
// when stopped. Returns the new state.
func (c *Controller) Toggle() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case Playing:
		c.sink.SetPaused(true)
		c.state = Paused
	case Paused:
		c.sink.SetPaused(false)
		c.state = Playing
	}
	return c.state
}

// Stop halts playback and returns once the sink has stopped.
func (c *Controller) Stop() {
	c.mu.Lock()
	if c.state == Stopped {
		c.mu.Unlock()
		return
	}
	c.gen++
	c.state = Stopped
	c.mu.Unlock()

	c.sink.Stop()
}

func (c *Controller) finished(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen == c.gen {
		c.state = Stopped
	}
}
