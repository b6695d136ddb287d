package tube

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/url"

	"golang.org/x/net/html"
)

const (
	AttrLang = "lang_code"
	AttrName = "name"
	AttrKind = "kind"
	AttrVSS  = "vss_id"

	KindASR = "asr"
)

var trackAttrs = []string{AttrLang, AttrName, AttrKind, AttrVSS}

// Track is one caption track as advertised by the track list.
type Track struct {
	Lang string
	Name string
	Kind string // KindASR for auto generated tracks, empty for manual ones.
	VSS  string

	// Missing holds the attributes that were not on the element, their fields are empty.
	Missing []string
}

// ASR reports whether the track is auto generated (speech recognition).
func (t Track) ASR() bool {
	return t.Kind == KindASR
}

func (t Track) String() string {
	kind := "manual"
	if t.ASR() {
		kind = KindASR
	}

	return fmt.Sprintf("%s/%s(%q)", t.Lang, kind, t.Name)
}

// ListTracks retrieves the caption tracks of the video.
//
// A non 2xx response means the video has no listable tracks, that is not an error.
// Failing to reach YouTube at all is, and wraps ErrTransport.
func (c *Client) ListTracks(ctx context.Context, videoID string) ([]Track, error) {
	body, status, err := c.get(ctx, EndpointTimedText, url.Values{
		"v":    {videoID},
		"type": {"list"},
		"hl":   {"en"},
	})
	if err != nil {
		return nil, fmt.Errorf("listing tracks of %q: %w", videoID, err)
	}

	if !isSuccess(status) {
		log.Printf("[WARN]: track list of %q responded with status %d", videoID, status)
		return nil, nil
	}

	tracks, err := ParseTrackList(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing track list of %q: %w", videoID, err)
	}

	return tracks, nil
}

// ParseTrackList reads every <track> element of a track list response in one pass.
func ParseTrackList(r io.Reader) ([]Track, error) {
	var tracks []Track
	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				return tracks, nil
			}

			return tracks, fmt.Errorf("tokenizing track list: %w", z.Err())
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			if string(name) != "track" {
				continue
			}

			attrs := make(map[string]string, len(trackAttrs))
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = z.TagAttr()
				attrs[string(key)] = string(val)
			}

			tracks = append(tracks, trackFromAttrs(attrs))
		}
	}
}

func trackFromAttrs(attrs map[string]string) Track {
	t := Track{
		Lang: attrs[AttrLang],
		Name: attrs[AttrName],
		Kind: attrs[AttrKind],
		VSS:  attrs[AttrVSS],
	}

	for _, attr := range trackAttrs {
		if _, ok := attrs[attr]; !ok {
			t.Missing = append(t.Missing, attr)
		}
	}

	return t
}
