// Package search finds phrases inside a caption sequence.
package search

import (
	"strings"

	"github.com/laytan/ytsubtitles/internal/caption"
	"github.com/laytan/ytsubtitles/internal/stem"
)

// MaxResults caps the number of matches returned for one query.
var MaxResults = 100

type Match struct {
	Index int // Position of the cue in the sequence.
	Cue   caption.Cue
}

// Cues searches for the query inside the cues.
//
// The query and the cue texts are stemmed using the stem package, so different
// "styles" of the same word will match.
//
// Matches may span cues, if the match is on the boundary of cues (so part is in
// cue 1 and the other part in cue 2), the cue the match ends in is returned.
// A cue is returned once, no matter how often it matches.
func Cues(cues caption.Sequence, query string) []Match {
	needle := stem.StemLine(query)
	if needle == "" {
		return nil
	}

	// The stemmed text of all cues, space separated, with the cue each byte belongs to.
	var haystack strings.Builder
	owners := make([]int, 0, len(cues)*16)
	for i, c := range cues {
		stemmed := stem.StemLine(c.Text)
		if stemmed == "" {
			continue
		}

		if haystack.Len() > 0 {
			haystack.WriteByte(' ')
			owners = append(owners, i)
		}
		haystack.WriteString(stemmed)
		for j := 0; j < len(stemmed); j++ {
			owners = append(owners, i)
		}
	}

	text := haystack.String()
	var res []Match
	for offset := 0; offset < len(text) && len(res) < MaxResults; {
		at := strings.Index(text[offset:], needle)
		if at < 0 {
			break
		}

		end := offset + at + len(needle) - 1
		owner := owners[end]
		if len(res) == 0 || res[len(res)-1].Index != owner {
			res = append(res, Match{Index: owner, Cue: cues[owner]})
		}

		offset += at + 1
	}

	return res
}
