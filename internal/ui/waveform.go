// Package ui holds lipgloss styles and renderers shared by the TUI.
package ui

import (
	"math"
	"strings"

	"github.com/jwulff/audiolabel/internal/audio"
)

// Glyphs used by RenderWaveform.
const (
	waveFull   = "█"
	waveCenter = "─"
	waveBlank  = " "
	markStart  = "▲"
	markEnd    = "△"
)

// RenderWaveform draws peaks as a symmetric envelope of height rows, one
// column per peak. Columns in [selLo, selHi] use the selected style, and a
// marker row underneath points at the two selection edges.
func RenderWaveform(peaks []audio.Peak, selLo, selHi, height int) string {
	if len(peaks) == 0 {
		return ""
	}
	if height < 2 {
		height = 2
	}
	half := float64(height) / 2

	rows := make([]strings.Builder, height)
	for col, p := range peaks {
		// Row r covers amplitudes from (half-r-1)/half to (half-r)/half above
		// the center, mirrored below it.
		top := clampUnit(p.Max)
		bottom := clampUnit(-p.Min)
		style := WaveStyle
		if col >= selLo && col <= selHi {
			style = WaveSelectedStyle
		}
		for r := 0; r < height; r++ {
			var filled bool
			if float64(r) < half {
				filled = top*half >= half-float64(r)-0.5
			} else {
				filled = bottom*half >= float64(r)-half+0.5
			}
			glyph := waveBlank
			switch {
			case filled:
				glyph = waveFull
			case r == height/2:
				glyph = waveCenter
			}
			rows[r].WriteString(style.Render(glyph))
		}
	}

	lines := make([]string, 0, height+1)
	for i := range rows {
		lines = append(lines, rows[i].String())
	}
	lines = append(lines, renderMarkers(len(peaks), selLo, selHi))
	return strings.Join(lines, "\n")
}

func renderMarkers(width, selLo, selHi int) string {
	var b strings.Builder
	for col := 0; col < width; col++ {
		switch col {
		case selLo:
			b.WriteString(MarkerStyle.Render(markStart))
		case selHi:
			b.WriteString(MarkerStyle.Render(markEnd))
		default:
			b.WriteString(waveBlank)
		}
	}
	return b.String()
}

func clampUnit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
