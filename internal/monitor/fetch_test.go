package monitor

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcher_Success(t *testing.T) {
	var gotPath, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAccept = r.Header.Get("Accept")
		_, _ = w.Write([]byte("uptime\t10\n"))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(srv.URL+"/", "/stats", 0)
	body, err := f.Fetch(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "uptime\t10\n", body)
	assert.Equal(t, "/stats", gotPath)
	assert.Equal(t, "text/plain", gotAccept)
}

func TestHTTPFetcher_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewHTTPFetcher(srv.URL, "/stats", 0).Fetch(context.Background())

	var pe *PollError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, http.StatusInternalServerError, pe.StatusCode)
	assert.Equal(t, "HTTP 500: Internal Server Error", pe.Error())
}

func TestHTTPFetcher_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewHTTPFetcher(url, "/stats", 0).Fetch(context.Background())

	var pe *PollError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 0, pe.StatusCode)
	assert.NotNil(t, pe.Unwrap())
	assert.Contains(t, pe.Error(), "request failed")
}

func TestHTTPFetcher_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	_, err := NewHTTPFetcher(srv.URL, "/stats", 50*time.Millisecond).Fetch(context.Background())
	assert.Error(t, err)
}

func TestStatsURL(t *testing.T) {
	tests := []struct {
		endpoint, path, want string
	}{
		{"http://localhost:8081", "/stats", "http://localhost:8081/stats"},
		{"http://localhost:8081/", "/stats", "http://localhost:8081/stats"},
		{"http://localhost:8081", "stats", "http://localhost:8081/stats"},
		{"http://host/base", "", "http://host/base"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StatsURL(tt.endpoint, tt.path))
	}
}

func TestAsPollError(t *testing.T) {
	assert.Nil(t, asPollError(nil))

	pe := NewStatusError(404)
	assert.Same(t, pe, asPollError(pe))

	wrapped := asPollError(errors.New("dial tcp: refused"))
	assert.Equal(t, "fetch failed: dial tcp: refused", wrapped.Error())
}
