package tube

import (
	"errors"
	"regexp"
)

var ErrInvalidURL = errors.New("invalid YouTube URL")

var videoIDPattern = regexp.MustCompile(`(?:v=|youtu\.be/|shorts/)([A-Za-z0-9_-]{11})`)

// ExtractVideoID searches raw for the first watch, short link or shorts id.
// It doesn't parse raw as a URL, surrounding text, query strings or extra path
// segments are fine.
func ExtractVideoID(raw string) (string, error) {
	m := videoIDPattern.FindStringSubmatch(raw)
	if m == nil {
		return "", ErrInvalidURL
	}

	return m[1], nil
}
