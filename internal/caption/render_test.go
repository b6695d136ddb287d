package caption

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var sample = Sequence{
	{Text: "Hello world", Start: 1, Duration: 2},
	{Text: "Bye", Start: 3, Duration: 1.5},
}

func TestRenderSRTSingle(t *testing.T) {
	got := Render(SRT, Sequence{{Text: "Hi", Start: 0, Duration: 2}})
	assert.Equal(t, "1\n00:00:00,000 --> 00:00:02,000\nHi\n", got)
}

func TestRender(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{format: Text, want: "Hello world Bye"},
		{
			format: SRT,
			want:   "1\n00:00:01,000 --> 00:00:03,000\nHello world\n\n2\n00:00:03,000 --> 00:00:04,500\nBye\n",
		},
		{
			format: VTT,
			want:   "WEBVTT\n\n00:00:01.000 --> 00:00:03.000\nHello world\n\n00:00:03.000 --> 00:00:04.500\nBye\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			got := Render(tt.format, sample)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Render(tt.format, sample), "render must be deterministic")
		})
	}
}

func TestRenderEmpty(t *testing.T) {
	assert.Equal(t, "", Render(Text, nil))
	assert.Equal(t, "", Render(SRT, nil))
	assert.Equal(t, "WEBVTT\n\n", Render(VTT, nil))
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		raw  string
		want Format
		ok   bool
	}{
		{raw: "txt", want: Text, ok: true},
		{raw: "text", want: Text, ok: true},
		{raw: "SRT", want: SRT, ok: true},
		{raw: " vtt ", want: VTT, ok: true},
		{raw: "ttml", want: Text, ok: false},
		{raw: "", want: Text, ok: false},
	}
	for _, tt := range tests {
		got, ok := ParseFormat(tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
		assert.Equal(t, tt.ok, ok, tt.raw)
	}

	assert.Equal(t, "text/vtt; charset=utf-8", VTT.ContentType())
	assert.Equal(t, "text/plain; charset=utf-8", SRT.ContentType())
	assert.Equal(t, "txt", Text.Ext())
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "a b c", Normalize("  a\t\tb \n c  "))
	assert.Equal(t, "", Normalize(" \n\t "))
}
