// Package directory fetches raw person records from the remote directory source.
// This package centralizes the single HTTP round trip the dashboard performs at
// session start; everything downstream works on the in-memory record set.
package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultLimit is the page size requested from the directory source.
const DefaultLimit = 20

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; HRDashboard/1.0)"

// Address is the postal address portion of a person record.
type Address struct {
	Street string `json:"address"`
	City   string `json:"city"`
	State  string `json:"state"`
}

// Person is a raw directory record, before enrichment.
type Person struct {
	ID        int     `json:"id"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone"`
	Image     string  `json:"image"`
	Address   Address `json:"address"`
	Age       int     `json:"age"`
}

type usersPage struct {
	Users []Person `json:"users"`
}

// Error represents an error during a directory fetch.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("directory error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("directory error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the fetch behavior.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Limit     int
}

// DefaultOptions returns sensible defaults for fetching.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
		Limit:     DefaultLimit,
	}
}

// Client fetches person records from a directory endpoint.
type Client struct {
	baseURL    string
	opts       *Options
	httpClient *http.Client
}

// New creates a directory client for the given base URL.
func New(baseURL string, opts *Options) (*Client, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &Error{
			URL:     baseURL,
			Message: "invalid base URL",
			Cause:   err,
		}
	}
	return &Client{
		baseURL:    baseURL,
		opts:       opts,
		httpClient: &http.Client{Timeout: opts.Timeout},
	}, nil
}

// Users retrieves one page of person records from the directory source.
// The payload is shape-checked against the users schema before decoding, so
// a well-formed JSON body with the wrong structure fails the same way a
// malformed one does.
func (c *Client) Users(ctx context.Context) ([]Person, error) {
	reqURL := fmt.Sprintf("%s/users?limit=%d", c.baseURL, c.opts.Limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &Error{
			URL:     reqURL,
			Message: "failed to create request",
			Cause:   err,
		}
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{
			URL:     reqURL,
			Message: "HTTP request failed",
			Cause:   err,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{
			URL:     reqURL,
			Message: "failed to read response body",
			Cause:   err,
		}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &Error{
			URL:     reqURL,
			Message: fmt.Sprintf("HTTP status %d", resp.StatusCode),
		}
	}

	if err := validateUsersPayload(body); err != nil {
		return nil, &Error{
			URL:     reqURL,
			Message: "unexpected payload shape",
			Cause:   err,
		}
	}

	var page usersPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, &Error{
			URL:     reqURL,
			Message: "failed to decode response",
			Cause:   err,
		}
	}

	return page.Users, nil
}
