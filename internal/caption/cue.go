// Package caption holds the timed-text model every caption source is normalized
// into, and the codecs that read and write it.
package caption

import (
	"strings"
)

const (
	DefaultDuration = 2.0 // Seconds, for sources that don't carry an end time.
	MinDuration     = 0.5 // Seconds, lower bound for spans built from start/end markers.
)

// Cue is one timed subtitle unit, times are in seconds from the start of the video.
type Cue struct {
	Text     string
	Start    float64
	Duration float64
}

func (c Cue) End() float64 {
	return c.Start + c.Duration
}

// Sequence is one full caption track, in the order the source emitted it.
// It is never re-sorted.
type Sequence []Cue

// Normalize collapses every whitespace run into a single space and trims the ends.
func Normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Format selects the serialization of a Sequence.
type Format int

const (
	Text Format = iota
	SRT
	VTT
)

// ParseFormat maps the user facing format names, "txt" and "text" both mean Text.
func ParseFormat(value string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "txt", "text":
		return Text, true
	case "srt":
		return SRT, true
	case "vtt":
		return VTT, true
	default:
		return Text, false
	}
}

func (f Format) Ext() string {
	switch f {
	case SRT:
		return "srt"
	case VTT:
		return "vtt"
	default:
		return "txt"
	}
}

func (f Format) String() string {
	return f.Ext()
}

func (f Format) ContentType() string {
	if f == VTT {
		return "text/vtt; charset=utf-8"
	}

	return "text/plain; charset=utf-8"
}
