package audio

import "testing"

func TestPeaks(t *testing.T) {
	b, _ := NewBuffer("x.wav", []float64{0.1, -0.5, 0.9, 0.2, -0.3, 0.0}, 6)

	peaks := b.Peaks(3)
	want := []Peak{{-0.5, 0.1}, {0.2, 0.9}, {-0.3, 0.0}}
	if len(peaks) != len(want) {
		t.Fatalf("len = %d, want %d", len(peaks), len(want))
	}
	for i := range want {
		if peaks[i] != want[i] {
			t.Errorf("peaks[%d] = %+v, want %+v", i, peaks[i], want[i])
		}
	}
}

func TestPeaksMoreBucketsThanSamples(t *testing.T) {
	b, _ := NewBuffer("x.wav", []float64{0.5, -0.5}, 2)
	if got := len(b.Peaks(10)); got != 2 {
		t.Errorf("len(Peaks(10)) = %d, want 2", got)
	}
	if b.Peaks(0) != nil {
		t.Error("Peaks(0) should be nil")
	}
}

func TestBucketOf(t *testing.T) {
	b, _ := NewBuffer("x.wav", make([]float64, 100), 100)
	tests := []struct{ i, n, want int }{
		{0, 10, 0},
		{9, 10, 0},
		{10, 10, 1},
		{99, 10, 9},
		{100, 10, 9},
	}
	for _, tt := range tests {
		if got := b.BucketOf(tt.i, tt.n); got != tt.want {
			t.Errorf("BucketOf(%d, %d) = %d, want %d", tt.i, tt.n, got, tt.want)
		}
	}
}
