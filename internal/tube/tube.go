// Package tube talks to YouTube: it finds the caption tracks of a video and
// retrieves their cues, either from the timedtext endpoints directly or
// through the transcript library.
package tube

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL    = "https://www.youtube.com"
	EndpointTimedText = "/api/timedtext"

	userAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	maxBodySize = 4 * 1024 * 1024
)

var (
	ErrNotOk         = errors.New("unexpected non 200 status code")
	ErrTransport     = errors.New("upstream request failed")
	ErrTrackUnusable = errors.New("caption track unusable")
	ErrTooLarge      = errors.New("response body too large")
)

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Limiter    *rate.Limiter // Paces every upstream call, nil means unlimited.
}

// New returns a client for baseURL (DefaultBaseURL when empty).
func New(baseURL string, timeout time.Duration, limiter *rate.Limiter) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
		Limiter:    limiter,
	}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient == nil {
		return http.DefaultClient
	}

	return c.HTTPClient
}

// get requests the path and returns the body and status code.
// Only failing to complete the request is an error, any status code is returned as is.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, int, error) {
	if err := wait(ctx, c.Limiter); err != nil {
		return nil, 0, err
	}

	target := c.BaseURL + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("creating request for %q: %w", target, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	res, err := c.httpClient().Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("requesting %q: %w: %w", target, ErrTransport, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodySize+1))
	if err != nil {
		return nil, 0, fmt.Errorf("reading response body of %q: %w: %w", target, ErrTransport, err)
	}

	if len(body) > maxBodySize {
		return nil, res.StatusCode, fmt.Errorf("body of %q exceeds %d bytes: %w", target, maxBodySize, ErrTooLarge)
	}

	return body, res.StatusCode, nil
}

func wait(ctx context.Context, limiter *rate.Limiter) error {
	if limiter == nil {
		return nil
	}

	if err := limiter.Wait(ctx); err != nil {
		return fmt.Errorf("waiting for upstream pacer: %w: %w", ErrTransport, err)
	}

	return nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
