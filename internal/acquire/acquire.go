// Package acquire decides where the cues of a video come from.
//
// Sources are tried one after the other, the first one that produces cues wins.
// Nothing is fetched concurrently: every attempt decides whether the next one is needed,
// and the upstream is quick to rate limit.
package acquire

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/laytan/ytsubtitles/internal/caption"
	"github.com/laytan/ytsubtitles/internal/tube"
)

// Auto is the language preference that means no preference.
const Auto = "auto"

var ErrNoCaptions = errors.New("no captions available")

// Source is one way of getting the cues of a video.
// A source that has nothing returns an error, never an empty sequence with a nil error.
type Source interface {
	Acquire(ctx context.Context, videoID string, lang string) (caption.Sequence, error)
}

// Chain tries its sources in order.
type Chain struct {
	Sources []Source
}

// New returns the default chain, the transcript library first and the timedtext
// track list after that.
func New(client *tube.Client, transcripts *tube.Transcripts) *Chain {
	return &Chain{
		Sources: []Source{
			Library{Transcripts: transcripts},
			Tracks{Client: client},
		},
	}
}

// Acquire returns the cues of the first source that has any.
//
// Failing sources are skipped. When all of them fail, a transport failure of
// one of them is returned (so callers can tell YouTube was unreachable),
// otherwise ErrNoCaptions.
func (c *Chain) Acquire(ctx context.Context, videoID string, lang string) (caption.Sequence, error) {
	if lang == "" {
		lang = Auto
	}

	var transportErr error
	for i, src := range c.Sources {
		cues, err := src.Acquire(ctx, videoID, lang)
		if err == nil && len(cues) > 0 {
			return cues, nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		if err != nil {
			log.Printf("[WARN]: source %d (%T) for %q failed: %v", i, src, videoID, err)
			if errors.Is(err, tube.ErrTransport) {
				transportErr = err
			}
		}
	}

	if transportErr != nil {
		return nil, transportErr
	}

	log.Printf("[INFO]: every source exhausted for %q in %q", videoID, lang)
	return nil, fmt.Errorf("video %q: %w", videoID, ErrNoCaptions)
}

type TranscriptFetcher interface {
	Fetch(ctx context.Context, videoID string, pref string) (caption.Sequence, error)
}

// Library acquires through the transcript library.
type Library struct {
	Transcripts TranscriptFetcher
}

func (l Library) Acquire(ctx context.Context, videoID string, lang string) (caption.Sequence, error) {
	if lang == Auto {
		lang = ""
	}

	return l.Transcripts.Fetch(ctx, videoID, lang)
}
