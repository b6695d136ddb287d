package caption

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	timingLine = regexp.MustCompile(`^\s*(\d{2,}:\d{2}:\d{2}\.\d{3})\s+-->\s+(\d{2,}:\d{2}:\d{2}\.\d{3})`)
	inlineTag  = regexp.MustCompile(`<[^>]*>`)

	structuralKeywords = []string{"WEBVTT", "NOTE", "STYLE", "REGION"}
)

type scanState int

const (
	idle      scanState = iota // Before the first timing line, text is header metadata.
	buffering                  // Inside a cue region, text lines belong to it.
	skipping                   // Inside a region whose timing could not be parsed, text is dropped.
)

// vttScanner turns a stream of VTT lines into cues.
// A region is only turned into a cue when it is flushed, which happens on the
// next timing line and once more at the end of the input.
type vttScanner struct {
	state scanState
	start float64
	end   float64
	lines []string
	cues  Sequence

	skipped int // Regions dropped for malformed timing.
}

func (s *vttScanner) line(line string) {
	if m := timingLine.FindStringSubmatch(line); m != nil {
		s.flush()

		start, startErr := ParseVTTTimestamp(m[1])
		end, endErr := ParseVTTTimestamp(m[2])
		if err := errors.Join(startErr, endErr); err != nil {
			s.state = skipping
			s.skipped++
			return
		}

		s.state = buffering
		s.start, s.end = start, end
		return
	}

	trimmed := strings.TrimSpace(line)
	if trimmed == "" || s.state != buffering || isStructural(trimmed) {
		return
	}

	s.lines = append(s.lines, trimmed)
}

func (s *vttScanner) flush() {
	if s.state != buffering {
		s.state = idle
		return
	}

	text := strings.Join(s.lines, " ")
	text = Normalize(html.UnescapeString(inlineTag.ReplaceAllString(text, "")))
	if text != "" {
		s.cues = append(s.cues, Cue{
			Text:     text,
			Start:    s.start,
			Duration: math.Max(MinDuration, s.end-s.start),
		})
	}

	s.lines = s.lines[:0]
	s.state = idle
}

func isStructural(line string) bool {
	for _, kw := range structuralKeywords {
		if strings.HasPrefix(line, kw) {
			return true
		}
	}

	return false
}

// ParseVTT reads WebVTT cue text into a Sequence.
// Cues that end up without any text are dropped, so are cues whose timing line
// has out of range fields. Only failing to read r is an error.
func ParseVTT(r io.Reader) (Sequence, error) {
	var s vttScanner

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		s.line(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading vtt: %w", err)
	}

	s.flush()

	if s.skipped > 0 {
		log.Printf("[WARN]: skipped %d vtt cues with malformed timing", s.skipped)
	}

	return s.cues, nil
}
