package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/laytan/ytsubtitles/internal/acquire"
	"github.com/laytan/ytsubtitles/internal/caption"
	"github.com/laytan/ytsubtitles/internal/search"
	"github.com/laytan/ytsubtitles/internal/store"
	"github.com/laytan/ytsubtitles/internal/tube"
)

type TrackData struct {
	Lang string `json:"lang"`
	Name string `json:"name"`
	Kind string `json:"kind"`
	VSS  string `json:"vss"`
}

type ListData struct {
	VideoID string      `json:"videoId"`
	Count   int         `json:"count"`
	Tracks  []TrackData `json:"tracks"`
}

type MatchData struct {
	Index int     `json:"index"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

type SearchData struct {
	VideoID string      `json:"videoId"`
	Query   string      `json:"query"`
	Count   int         `json:"count"`
	Matches []MatchData `json:"matches"`
}

func (s *Server) subtitles(c *fiber.Ctx) error {
	videoID, err := videoID(c)
	if err != nil {
		return err
	}

	lang := c.Query("lang", acquire.Auto)
	format, ok := caption.ParseFormat(c.Query("format", "txt"))
	if !ok {
		format = caption.Text
	}

	cues, err := s.acquire(c.UserContext(), videoID, lang)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, format.ContentType())
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", videoID+"."+format.Ext()))
	return c.Status(http.StatusOK).SendString(caption.Render(format, cues))
}

func (s *Server) list(c *fiber.Ctx) error {
	videoID, err := videoID(c)
	if err != nil {
		return err
	}

	tracks, err := s.Tracks.ListTracks(c.UserContext(), videoID)
	if err != nil {
		if errors.Is(err, tube.ErrTransport) {
			log.Printf("[WARN]: listing tracks of %q: %v", videoID, err)
			return fiber.NewError(http.StatusBadGateway, "timedtext list fetch failed")
		}
		return fmt.Errorf("listing tracks of %q: %w", videoID, err)
	}

	data := ListData{
		VideoID: videoID,
		Count:   len(tracks),
		Tracks:  make([]TrackData, 0, len(tracks)),
	}
	for _, t := range tracks {
		data.Tracks = append(data.Tracks, TrackData{Lang: t.Lang, Name: t.Name, Kind: t.Kind, VSS: t.VSS})
	}

	return c.JSON(data)
}

func (s *Server) search(c *fiber.Ctx) error {
	videoID, err := videoID(c)
	if err != nil {
		return err
	}

	query := strings.TrimSpace(c.Query("q"))
	if len(query) < MinQueryLen {
		return fiber.NewError(
			http.StatusUnprocessableEntity,
			"Please type at least 3 characters",
		)
	}
	// fiber reuses the request buffer, the query outlives the handler in the response.
	query = strings.Clone(query)

	cues, err := s.acquire(c.UserContext(), videoID, c.Query("lang", acquire.Auto))
	if err != nil {
		return err
	}

	log.Printf("[INFO]: searching for %q in %q", query, videoID)
	matches := search.Cues(cues, query)

	data := SearchData{
		VideoID: videoID,
		Query:   query,
		Count:   len(matches),
		Matches: make([]MatchData, 0, len(matches)),
	}
	for _, m := range matches {
		data.Matches = append(data.Matches, MatchData{
			Index: m.Index,
			Start: m.Cue.Start,
			End:   m.Cue.End(),
			Text:  m.Cue.Text,
		})
	}

	return c.JSON(data)
}

// acquire runs the chain and maps its failures onto HTTP errors.
func (s *Server) acquire(ctx context.Context, videoID string, lang string) (caption.Sequence, error) {
	cues, err := s.Captions.Acquire(ctx, videoID, lang)
	switch {
	case err == nil:
		return cues, nil
	case errors.Is(err, acquire.ErrNoCaptions):
		s.recordFailure(ctx, videoID, lang, store.FailureTypeNoCaptions, err)
		return nil, fiber.NewError(http.StatusNotFound, "Subtitle not found (manual/auto)")
	case errors.Is(err, tube.ErrTransport):
		s.recordFailure(ctx, videoID, lang, store.FailureTypeUpstream, err)
		return nil, fiber.NewError(http.StatusBadGateway, "timedtext list fetch failed")
	default:
		return nil, fmt.Errorf("acquiring captions for %q: %w", videoID, err)
	}
}

func (s *Server) recordFailure(ctx context.Context, videoID string, lang string, typ store.FailureType, cause error) {
	if s.Failures == nil {
		return
	}

	if err := s.Failures.CreateFailure(ctx, store.CreateFailureParams{
		VideoID: videoID,
		Lang:    lang,
		Type:    typ,
		Reason:  cause.Error(),
	}); err != nil {
		log.Printf("[ERROR]: recording %s failure for %q: %v", typ, videoID, err)
	}
}

func videoID(c *fiber.Ctx) (string, error) {
	raw := c.Query("url")
	if raw == "" {
		return "", fiber.NewError(http.StatusBadRequest, "Missing url")
	}

	id, err := tube.ExtractVideoID(raw)
	if err != nil {
		return "", fiber.NewError(http.StatusBadRequest, "Invalid YouTube URL")
	}

	// The id is a substring of fiber's reused request buffer.
	return strings.Clone(id), nil
}
