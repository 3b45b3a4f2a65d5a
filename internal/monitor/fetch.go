package monitor

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Fetcher retrieves the raw stats report.
type Fetcher interface {
	Fetch(ctx context.Context) (string, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context) (string, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context) (string, error) {
	return f(ctx)
}

// PollError describes a failed poll. StatusCode is 0 for transport failures.
type PollError struct {
	StatusCode int
	Message    string
	Cause      error
}

func (e *PollError) Error() string {
	if e.Cause != nil && e.StatusCode == 0 {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying transport error, if any.
func (e *PollError) Unwrap() error {
	return e.Cause
}

// NewStatusError builds the "HTTP 500: Internal Server Error" form.
func NewStatusError(code int) *PollError {
	return &PollError{
		StatusCode: code,
		Message:    fmt.Sprintf("HTTP %d: %s", code, http.StatusText(code)),
	}
}

// asPollError normalizes any fetch error into a PollError.
func asPollError(err error) *PollError {
	if err == nil {
		return nil
	}
	if pe, ok := err.(*PollError); ok {
		return pe
	}
	return &PollError{Message: "fetch failed", Cause: err}
}

// HTTPFetcher GETs the stats report from endpoint+path.
type HTTPFetcher struct {
	URL    string
	Client *http.Client
}

// NewHTTPFetcher builds a fetcher for endpoint and path.
// A zero timeout leaves requests unbounded apart from ctx.
func NewHTTPFetcher(endpoint, path string, timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		URL:    StatsURL(endpoint, path),
		Client: &http.Client{Timeout: timeout},
	}
}

// StatsURL joins endpoint and path without doubling the slash.
func StatsURL(endpoint, path string) string {
	endpoint = strings.TrimRight(endpoint, "/")
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return endpoint + path
}

// Fetch performs one GET and returns the body on a 2xx response.
func (f *HTTPFetcher) Fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return "", &PollError{Message: "invalid stats URL", Cause: err}
	}
	req.Header.Set("Accept", "text/plain")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", &PollError{Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", NewStatusError(resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &PollError{Message: "reading response failed", Cause: err}
	}
	return string(body), nil
}
