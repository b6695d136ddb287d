package tube

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"

	"github.com/kkdai/youtube/v2"
	"github.com/laytan/ytsubtitles/internal/caption"
	"golang.org/x/time/rate"
)

var ErrNoTranscript = errors.New("no transcript available")

// DefaultFallbackLangs are tried, in order, after the preferred language.
var DefaultFallbackLangs = []string{"id", "en"}

// TranscriptClient is the part of the transcript library we use, *youtube.Client implements it.
type TranscriptClient interface {
	GetTranscriptCtx(ctx context.Context, video *youtube.Video, lang string) (youtube.VideoTranscript, error)
}

// Transcripts retrieves cues through the transcript library instead of the timedtext endpoints.
type Transcripts struct {
	Lib       TranscriptClient
	Fallbacks []string      // DefaultFallbackLangs when nil.
	Limiter   *rate.Limiter // Paces every library call, nil means unlimited.
}

func NewTranscripts(httpClient *http.Client, limiter *rate.Limiter, fallbacks []string) *Transcripts {
	return &Transcripts{
		Lib:       &youtube.Client{HTTPClient: httpClient},
		Fallbacks: fallbacks,
		Limiter:   limiter,
	}
}

// Candidates returns the languages Fetch tries for the preference, in order.
// An empty preference means no preference. The last candidate is always "",
// which asks the library for whatever it has.
func (t *Transcripts) Candidates(pref string) []string {
	fallbacks := t.Fallbacks
	if fallbacks == nil {
		fallbacks = DefaultFallbackLangs
	}

	langs := make([]string, 0, len(fallbacks)+2)
	seen := make(map[string]bool, len(fallbacks)+2)
	add := func(lang string) {
		if seen[lang] {
			return
		}
		seen[lang] = true
		langs = append(langs, lang)
	}

	if pref != "" {
		add(pref)
	}
	for _, lang := range fallbacks {
		if lang != "" {
			add(lang)
		}
	}
	add("")

	return langs
}

// Fetch tries every candidate language in order and returns the first non empty transcript.
// Errors of a single attempt, whatever their cause, only move on to the next candidate.
func (t *Transcripts) Fetch(ctx context.Context, videoID string, pref string) (caption.Sequence, error) {
	video := &youtube.Video{ID: videoID}
	candidates := t.Candidates(pref)
	for _, lang := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if err := wait(ctx, t.Limiter); err != nil {
			return nil, err
		}

		segments, err := t.Lib.GetTranscriptCtx(ctx, video, lang)
		if err != nil {
			log.Printf("[WARN]: transcript of %q in %q: %v", videoID, lang, err)
			continue
		}

		if cues := fromSegments(segments); len(cues) > 0 {
			return cues, nil
		}
	}

	return nil, fmt.Errorf("transcript of %q, tried %q: %w", videoID, candidates, ErrNoTranscript)
}

func fromSegments(segments youtube.VideoTranscript) caption.Sequence {
	cues := make(caption.Sequence, 0, len(segments))
	for _, s := range segments {
		text := caption.Normalize(s.Text)
		if text == "" {
			continue
		}

		duration := float64(s.Duration) / 1000
		if duration <= 0 {
			duration = caption.DefaultDuration
		}

		cues = append(cues, caption.Cue{
			Text:     text,
			Start:    math.Max(0, float64(s.StartMs)/1000),
			Duration: duration,
		})
	}

	return cues
}
