package search

import (
	"testing"

	"github.com/laytan/ytsubtitles/internal/caption"
	"github.com/stretchr/testify/assert"
)

var cues = caption.Sequence{
	{Text: "Hello and welcome back", Start: 0, Duration: 2},
	{Text: "today we are running", Start: 2, Duration: 2},
	{Text: "some tests. Thanks", Start: 4, Duration: 2},
	{Text: "for watching!", Start: 6, Duration: 2},
	{Text: "   ", Start: 8, Duration: 2},
	{Text: "We ran, we run, we are runners", Start: 10, Duration: 2},
}

func indexes(matches []Match) []int {
	res := make([]int, len(matches))
	for i, m := range matches {
		res[i] = m.Index
	}
	return res
}

func TestCues(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []int
	}{
		{name: "single cue", query: "welcome back", want: []int{0}},
		{name: "stemmed forms", query: "runs", want: []int{1, 5}},
		{name: "spans cues", query: "thanks for watching", want: []int{3}},
		{name: "spans three cues", query: "running some tests thanks", want: []int{2}},
		{name: "no match", query: "goodbye", want: []int{}},
		{name: "empty query", query: " ?! ", want: []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, indexes(Cues(cues, tt.query)))
		})
	}
}

func TestCuesReturnsCue(t *testing.T) {
	res := Cues(cues, "welcome")
	if assert.Len(t, res, 1) {
		assert.Equal(t, cues[0], res[0].Cue)
	}
}

func TestCuesMaxResults(t *testing.T) {
	old := MaxResults
	MaxResults = 1
	defer func() { MaxResults = old }()

	assert.Len(t, Cues(cues, "we"), 1)
}
