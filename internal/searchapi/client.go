// Package searchapi is the HTTP client for the remote song-search API.
//
// The API answers GET {base}/api/search?query=<text> with either
// {"status": true, "songs": [...]} or {"status": false, "message": "..."}.
// A status:false body is a normal answer, not an error; only requests that
// never produce a decodable body are reported as errors.
package searchapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"musicstream/internal/domain"
)

// ErrBadResponse marks a response body that could not be decoded
var ErrBadResponse = errors.New("searchapi: malformed response")

const maxBodySize = 4 << 20

// Response is the decoded search answer
type Response struct {
	Status  bool
	Message string
	Songs   []domain.Song
}

// Client queries the song-search API.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New creates a client for baseURL with the given request timeout
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// SearchURL builds the request URL for query
func (c *Client) SearchURL(query string) string {
	return strings.TrimRight(c.BaseURL, "/") + "/api/search?query=" + url.QueryEscape(query)
}

// Search issues one search request. The returned error is non-nil only for
// transport and decoding failures.
func (c *Client) Search(ctx context.Context, query string) (*Response, error) {
	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.SearchURL(query), nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read search response: %w", err)
	}

	var wire wireResponse
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("%w: status %d: %v", ErrBadResponse, resp.StatusCode, err)
	}

	out := &Response{
		Status:  bool(wire.Status),
		Message: wire.Message,
	}
	if out.Status {
		out.Songs = make([]domain.Song, 0, len(wire.Songs))
		for _, s := range wire.Songs {
			out.Songs = append(out.Songs, s.toDomain())
		}
	}
	return out, nil
}
