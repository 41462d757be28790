// Package audio owns decoded sample data for the file being annotated.
package audio

import (
	"errors"
	"fmt"
	"time"
)

const (
	// DefaultSampleRate is the rate files are resampled to unless configured
	// otherwise. Fractions written to disk do not depend on it.
	DefaultSampleRate = 22050

	// DefaultOutputRate is the rate the speaker is opened at.
	DefaultOutputRate = 44100
)

// ErrDecode is returned when a file cannot be read as audio.
var ErrDecode = errors.New("decode audio")

// Buffer holds mono samples and their sample rate. A Buffer is never
// mutated after construction; a new file gets a new Buffer.
type Buffer struct {
	path       string
	samples    []float64
	sampleRate int
}

// NewBuffer wraps samples decoded from path. sampleRate must be positive.
func NewBuffer(path string, samples []float64, sampleRate int) (*Buffer, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %s: invalid sample rate %d", ErrDecode, path, sampleRate)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: %s: no samples", ErrDecode, path)
	}
	return &Buffer{path: path, samples: samples, sampleRate: sampleRate}, nil
}

// Path returns the file the buffer was decoded from.
func (b *Buffer) Path() string { return b.path }

// Len returns the number of samples.
func (b *Buffer) Len() int { return len(b.samples) }

// SampleRate returns samples per second.
func (b *Buffer) SampleRate() int { return b.sampleRate }

// Seconds returns len(samples)/sample_rate.
func (b *Buffer) Seconds() float64 {
	return float64(len(b.samples)) / float64(b.sampleRate)
}

// Duration returns Seconds as a time.Duration.
func (b *Buffer) Duration() time.Duration {
	return time.Duration(b.Seconds() * float64(time.Second))
}

// IndexSeconds converts a sample index to seconds from the start.
func (b *Buffer) IndexSeconds(i int) float64 {
	return float64(i) / float64(b.sampleRate)
}

// Samples returns the underlying samples. Callers must not modify them.
func (b *Buffer) Samples() []float64 { return b.samples }

// Slice returns a copy of samples[start:end].
// Requires 0 <= start <= end <= Len().
func (b *Buffer) Slice(start, end int) ([]float64, error) {
	if start < 0 || end < start || end > len(b.samples) {
		return nil, fmt.Errorf("slice [%d:%d] out of range for %d samples", start, end, len(b.samples))
	}
	out := make([]float64, end-start)
	copy(out, b.samples[start:end])
	return out, nil
}
