package caption

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamps(t *testing.T) {
	tests := []struct {
		name string
		sec  float64
		srt  string
		vtt  string
	}{
		{name: "zero", sec: 0, srt: "00:00:00,000", vtt: "00:00:00.000"},
		{name: "fraction", sec: 1.5, srt: "00:00:01,500", vtt: "00:00:01.500"},
		{name: "all fields", sec: 3723.456, srt: "01:02:03,456", vtt: "01:02:03.456"},
		{name: "one millisecond", sec: 1.001, srt: "00:00:01,001", vtt: "00:00:01.001"},
		{name: "rounds down", sec: 2.9999, srt: "00:00:02,999", vtt: "00:00:02.999"},
		{name: "negative clamps", sec: -4, srt: "00:00:00,000", vtt: "00:00:00.000"},
		{name: "past 99 hours", sec: 360000, srt: "100:00:00,000", vtt: "100:00:00.000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.srt, SRTTimestamp(tt.sec))
			assert.Equal(t, tt.vtt, VTTTimestamp(tt.sec))
		})
	}
}

func TestVTTTimestampRoundTrip(t *testing.T) {
	for _, ms := range []int{0, 1, 7, 999, 1000, 1001, 59999, 60000, 3599999, 3600000, 3723456, 86399999} {
		sec := float64(ms) / 1000
		got, err := ParseVTTTimestamp(VTTTimestamp(sec))
		require.NoError(t, err)
		assert.InDelta(t, sec, got, 1e-9, "ms=%d", ms)
	}
}

func TestParseTimestamp(t *testing.T) {
	got, err := ParseTimestamp("00:01:02,250")
	require.NoError(t, err)
	assert.InDelta(t, 62.25, got, 1e-9)

	got, err = ParseTimestamp("00:01:02.250")
	require.NoError(t, err)
	assert.InDelta(t, 62.25, got, 1e-9)

	_, err = ParseVTTTimestamp("00:01:02,250")
	assert.ErrorIs(t, err, ErrBadTimestamp)

	for _, bad := range []string{"", "1:02.250", "00:60:00.000", "00:00:61.000", "aa:bb:cc.ddd"} {
		_, err := ParseTimestamp(bad)
		assert.ErrorIs(t, err, ErrBadTimestamp, bad)
	}
}
