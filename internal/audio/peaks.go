package audio

// Peak is the sample envelope of one waveform column.
type Peak struct {
	Min float64
	Max float64
}

// Peaks splits the buffer into n buckets and returns each bucket's min/max.
// Returns nil when n <= 0.
func (b *Buffer) Peaks(n int) []Peak {
	if n <= 0 {
		return nil
	}
	total := len(b.samples)
	if n > total {
		n = total
	}

	peaks := make([]Peak, n)
	for i := range peaks {
		lo := i * total / n
		hi := (i + 1) * total / n
		p := Peak{Min: b.samples[lo], Max: b.samples[lo]}
		for _, v := range b.samples[lo+1 : hi] {
			if v < p.Min {
				p.Min = v
			}
			if v > p.Max {
				p.Max = v
			}
		}
		peaks[i] = p
	}
	return peaks
}

// BucketOf returns the peak bucket that sample index i falls in when the
// buffer is split into n buckets.
func (b *Buffer) BucketOf(i, n int) int {
	total := len(b.samples)
	if n > total {
		n = total
	}
	if n <= 0 {
		return 0
	}
	bucket := i * n / total
	if bucket >= n {
		bucket = n - 1
	}
	return bucket
}
