package upstream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// MaxBodyBytes caps how much of an upstream response is read.
const MaxBodyBytes = 32 << 20

var ErrNoEndpoint = errors.New("no upstream endpoint configured for search type")

// Client fetches raw search payloads from HTTP endpoints or local files.
type Client struct {
	HTTP            *http.Client
	DirectSearchURL string
	RouteSearchURL  string
}

// NewClient creates a client with the given request timeout. A zero timeout means none.
func NewClient(timeout time.Duration, directSearchURL, routeSearchURL string) *Client {
	return &Client{
		HTTP:            &http.Client{Timeout: timeout},
		DirectSearchURL: directSearchURL,
		RouteSearchURL:  routeSearchURL,
	}
}

// Fetch reads a payload from an http(s) URL or a local file path.
func (c *Client) Fetch(ctx context.Context, urlOrPath string) ([]byte, error) {
	if urlOrPath == "" {
		return nil, ErrEmptyPayload
	}

	if !strings.HasPrefix(urlOrPath, "http://") && !strings.HasPrefix(urlOrPath, "https://") {
		return os.ReadFile(urlOrPath)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlOrPath, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", urlOrPath, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", urlOrPath, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, urlOrPath)
	}

	return io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes))
}

// Search queries the endpoint configured for kind and splits the response into records.
func (c *Client) Search(ctx context.Context, kind SearchType, params url.Values) (Response, error) {
	base := c.DirectSearchURL
	if kind == SearchRoute {
		base = c.RouteSearchURL
	}
	if base == "" {
		return Response{}, fmt.Errorf("%w: %s", ErrNoEndpoint, kind)
	}

	target := base
	if len(params) > 0 {
		u, err := url.Parse(base)
		if err != nil {
			return Response{}, fmt.Errorf("parse %s endpoint: %w", kind, err)
		}
		q := u.Query()
		for k, vs := range params {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
		target = u.String()
	}

	body, err := c.Fetch(ctx, target)
	if err != nil {
		return Response{}, err
	}
	return DecodeResponse(body, kind)
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}
