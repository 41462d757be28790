package playback

import "github.com/gopxl/beep"

// Streamer plays mono samples on both channels.
type Streamer struct {
	samples []float64
	pos     int
}

var _ beep.Streamer = (*Streamer)(nil)

// NewStreamer returns a streamer over samples.
func NewStreamer(samples []float64) *Streamer {
	return &Streamer{samples: samples}
}

// Stream implements beep.Streamer.
func (s *Streamer) Stream(buf [][2]float64) (int, bool) {
	if s.pos >= len(s.samples) {
		return 0, false
	}
	n := copy2(buf, s.samples[s.pos:])
	s.pos += n
	return n, true
}

// Err implements beep.Streamer.
func (s *Streamer) Err() error { return nil }

func copy2(dst [][2]float64, src []float64) int {
	n := min(len(dst), len(src))
	for i := 0; i < n; i++ {
		dst[i][0] = src[i]
		dst[i][1] = src[i]
	}
	return n
}
