package rickmorty

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	appErrors "rmselect/internal/errors"
)

const (
	// DefaultBaseURL is the public character API.
	DefaultBaseURL   = "https://rickandmortyapi.com/api"
	defaultUserAgent = "rmselect/0.1"
	defaultTimeout   = 10 * time.Second
	maxErrorBody     = 512
)

// Ensure Client implements Source at compile time.
var _ Source = (*Client)(nil)

// Client talks to the character API over HTTP.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		if ua = strings.TrimSpace(ua); ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient builds a Client for baseURL. An empty baseURL uses DefaultBaseURL.
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	raw := strings.TrimSpace(baseURL)
	if raw == "" {
		raw = DefaultBaseURL
	}
	base, err := url.Parse(strings.TrimRight(raw, "/"))
	if err != nil {
		return nil, appErrors.New(appErrors.CodeConfigurationError, fmt.Sprintf("invalid API base URL %q", raw), err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, appErrors.New(appErrors.CodeConfigurationError, fmt.Sprintf("API base URL %q must be http or https", raw), nil)
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: defaultTimeout},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the API root the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// FetchPage retrieves one page of characters filtered by name. The API
// answers 404 when nothing matches; that is reported as an empty page.
func (c *Client) FetchPage(ctx context.Context, name string, page int) (Page, error) {
	if c == nil {
		return Page{}, fmt.Errorf("client is nil")
	}
	if page < 1 {
		page = 1
	}
	endpoint := c.characterURL(name, page)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Page{}, appErrors.New(appErrors.CodeFetchFailed, "build character request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return Page{}, appErrors.New(appErrors.CodeFetchFailed, "character API unreachable", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		_, _ = io.Copy(io.Discard, resp.Body)
		return Page{}, nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return Page{}, appErrors.New(appErrors.CodeRateLimited, "character API rate limit reached", nil)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		msg := fmt.Sprintf("character API returned %s", resp.Status)
		return Page{}, appErrors.New(appErrors.CodeFetchFailed, msg, apiError(body))
	}

	var payload Page
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Page{}, appErrors.New(appErrors.CodeDecodeFailed, "decode character page", err)
	}
	return payload, nil
}

func (c *Client) characterURL(name string, page int) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/character/"
	values := url.Values{}
	if name = strings.TrimSpace(name); name != "" {
		values.Set("name", name)
	}
	values.Set("page", strconv.Itoa(page))
	u.RawQuery = values.Encode()
	return u.String()
}

// apiError extracts the {"error": "..."} body the API sends with failures.
func apiError(body []byte) error {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		return fmt.Errorf("%s", payload.Error)
	}
	if text := strings.TrimSpace(string(body)); text != "" {
		return fmt.Errorf("%s", text)
	}
	return nil
}
