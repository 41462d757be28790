package audio

import (
	"context"
	"encoding/binary"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/wav"
)

// Decoder turns an audio file into a Buffer.
type Decoder interface {
	Decode(ctx context.Context, path string) (*Buffer, error)
}

// Decoder kinds accepted by NewDecoder.
const (
	DecoderNative = "native"
	DecoderFFmpeg = "ffmpeg"
)

// resampleQuality is passed to beep.Resample (1 is linear, 6 is slow).
const resampleQuality = 4

// NewDecoder returns the decoder for kind. sampleRate of 0 keeps the file's
// native rate where the decoder supports it.
func NewDecoder(kind string, sampleRate int) (Decoder, error) {
	switch kind {
	case "", DecoderNative:
		return NativeDecoder{SampleRate: sampleRate}, nil
	case DecoderFFmpeg:
		return FFmpegDecoder{SampleRate: sampleRate}, nil
	default:
		return nil, fmt.Errorf("unknown decoder %q", kind)
	}
}

// Decode reads path with the native decoder at DefaultSampleRate.
func Decode(path string) (*Buffer, error) {
	return NativeDecoder{SampleRate: DefaultSampleRate}.Decode(context.Background(), path)
}

// NativeDecoder decodes WAV and MP3 in-process.
type NativeDecoder struct {
	SampleRate int // 0 keeps the native rate
}

// Decode implements Decoder.
func (d NativeDecoder) Decode(ctx context.Context, path string) (*Buffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	default:
		f.Close()
		return nil, fmt.Errorf("%w: %s: unsupported format", ErrDecode, path)
	}
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}
	defer streamer.Close()

	rate := int(format.SampleRate)
	var s beep.Streamer = streamer
	if d.SampleRate > 0 && d.SampleRate != rate {
		s = beep.Resample(resampleQuality, format.SampleRate, beep.SampleRate(d.SampleRate), streamer)
		rate = d.SampleRate
	}

	samples, err := mixdown(s, streamer.Len())
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecode, path, err)
	}
	return NewBuffer(path, samples, rate)
}

// mixdown drains s and averages both channels into one.
func mixdown(s beep.Streamer, sizeHint int) ([]float64, error) {
	if sizeHint < 0 {
		sizeHint = 0
	}
	out := make([]float64, 0, sizeHint)
	frames := make([][2]float64, 4096)
	for {
		n, ok := s.Stream(frames)
		for _, f := range frames[:n] {
			out = append(out, (f[0]+f[1])/2)
		}
		if !ok {
			break
		}
	}
	return out, s.Err()
}

// FFmpegDecoder shells out to ffmpeg for anything ffmpeg can read.
type FFmpegDecoder struct {
	SampleRate int // 0 means DefaultSampleRate
}

// Decode implements Decoder.
func (d FFmpegDecoder) Decode(ctx context.Context, path string) (*Buffer, error) {
	rate := d.SampleRate
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-i", path,
		"-f", "s16le",
		"-acodec", "pcm_s16le",
		"-ar", strconv.Itoa(rate),
		"-ac", "1",
		"-loglevel", "error",
		"pipe:1",
	)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("%w: ffmpeg %s: %w", ErrDecode, path, err)
	}

	return NewBuffer(path, pcm16ToFloat(out), rate)
}

// pcm16ToFloat converts little-endian int16 PCM to samples in [-1, 1).
func pcm16ToFloat(raw []byte) []float64 {
	// Drop a trailing odd byte.
	if len(raw)%2 != 0 {
		raw = raw[:len(raw)-1]
	}
	samples := make([]float64, len(raw)/2)
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(raw[i*2 : i*2+2]))
		samples[i] = float64(v) / 32768
	}
	return samples
}
