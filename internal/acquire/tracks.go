package acquire

import (
	"context"
	"fmt"
	"log"

	"github.com/laytan/ytsubtitles/internal/caption"
	"github.com/laytan/ytsubtitles/internal/tube"
)

// TrackClient lists and fetches timedtext tracks, *tube.Client implements it.
type TrackClient interface {
	ListTracks(ctx context.Context, videoID string) ([]tube.Track, error)
	FetchTrack(ctx context.Context, videoID string, track tube.Track) (caption.Sequence, error)
}

// Tracks acquires by listing the tracks of the video and fetching them in preference order.
type Tracks struct {
	Client TrackClient
}

func (t Tracks) Acquire(ctx context.Context, videoID string, lang string) (caption.Sequence, error) {
	tracks, err := t.Client.ListTracks(ctx, videoID)
	if err != nil {
		return nil, err
	}

	if len(tracks) == 0 {
		return nil, fmt.Errorf("no tracks listed for %q: %w", videoID, ErrNoCaptions)
	}

	for _, track := range Order(tracks, lang) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		cues, err := t.Client.FetchTrack(ctx, videoID, track)
		if err != nil {
			log.Printf("[WARN]: skipping track: %v", err)
			continue
		}

		if len(cues) > 0 {
			log.Printf("[INFO]: using track %s of %q, %d cues", track, videoID, len(cues))
			return cues, nil
		}
	}

	return nil, fmt.Errorf("none of the %d tracks of %q were usable: %w", len(tracks), videoID, ErrNoCaptions)
}

// Order returns the tracks in the order they should be tried:
//
//  1. tracks in the preferred language, manual or auto generated
//  2. the remaining manual tracks
//  3. the remaining auto generated tracks
//
// With the Auto preference there is no language to match, so it is all manual
// tracks followed by all auto generated tracks. Discovery order is kept within a
// group and every track appears once.
func Order(tracks []tube.Track, lang string) []tube.Track {
	ordered := make([]tube.Track, 0, len(tracks))
	placed := make([]bool, len(tracks))
	place := func(match func(tube.Track) bool) {
		for i, t := range tracks {
			if !placed[i] && match(t) {
				placed[i] = true
				ordered = append(ordered, t)
			}
		}
	}

	if lang != Auto && lang != "" {
		place(func(t tube.Track) bool { return t.Lang == lang })
	}
	place(func(t tube.Track) bool { return !t.ASR() })
	place(tube.Track.ASR)

	return ordered
}
