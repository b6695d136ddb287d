package caption

import (
	"strconv"
	"strings"
)

// Render serializes the cues in the given format. Cues are expected to be
// normalized already.
func Render(format Format, cues Sequence) string {
	switch format {
	case SRT:
		return RenderSRT(cues)
	case VTT:
		return RenderVTT(cues)
	default:
		return RenderText(cues)
	}
}

// RenderText joins all cue texts with a space.
func RenderText(cues Sequence) string {
	b := strings.Builder{}
	for i, c := range cues {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(c.Text)
	}

	return strings.TrimSpace(b.String())
}

// RenderSRT numbers the cues from 1, blocks are separated by a blank line.
func RenderSRT(cues Sequence) string {
	b := strings.Builder{}
	for i, c := range cues {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteByte('\n')
		writeBlock(&b, SRTTimestamp(c.Start), SRTTimestamp(c.End()), c.Text)
	}

	return b.String()
}

// RenderVTT writes the WEBVTT header followed by the cue blocks.
func RenderVTT(cues Sequence) string {
	b := strings.Builder{}
	b.WriteString("WEBVTT\n\n")
	for i, c := range cues {
		if i > 0 {
			b.WriteByte('\n')
		}
		writeBlock(&b, VTTTimestamp(c.Start), VTTTimestamp(c.End()), c.Text)
	}

	return b.String()
}

func writeBlock(b *strings.Builder, start, end, text string) {
	b.WriteString(start)
	b.WriteString(" --> ")
	b.WriteString(end)
	b.WriteByte('\n')
	b.WriteString(text)
	b.WriteByte('\n')
}
