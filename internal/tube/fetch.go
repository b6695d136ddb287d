package tube

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/laytan/ytsubtitles/internal/caption"
)

// FetchTrack retrieves the track in VTT form and parses it.
//
// A track that can't be used (non 2xx, empty or oversized body, no cues after parsing)
// returns an error wrapping ErrTrackUnusable, transport failures wrap ErrTransport.
func (c *Client) FetchTrack(ctx context.Context, videoID string, track Track) (caption.Sequence, error) {
	query := url.Values{
		"v":    {videoID},
		"lang": {track.Lang},
		"fmt":  {"vtt"},
	}
	if track.Name != "" {
		query.Set("name", track.Name)
	}
	if track.ASR() {
		query.Set("kind", KindASR)
	}

	body, status, err := c.get(ctx, EndpointTimedText, query)
	if errors.Is(err, ErrTooLarge) {
		return nil, fmt.Errorf("fetching track %s of %q: %w: %w", track, videoID, ErrTrackUnusable, err)
	}
	if err != nil {
		return nil, fmt.Errorf("fetching track %s of %q: %w", track, videoID, err)
	}

	if !isSuccess(status) {
		return nil, fmt.Errorf(
			"track %s of %q got code %d: %w: %w",
			track,
			videoID,
			status,
			ErrNotOk,
			ErrTrackUnusable,
		)
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return nil, fmt.Errorf("track %s of %q is empty: %w", track, videoID, ErrTrackUnusable)
	}

	cues, err := caption.ParseVTT(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing track %s of %q: %w: %w", track, videoID, ErrTrackUnusable, err)
	}

	if len(cues) == 0 {
		return nil, fmt.Errorf("track %s of %q has no cues: %w", track, videoID, ErrTrackUnusable)
	}

	return cues, nil
}
