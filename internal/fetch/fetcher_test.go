package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = "<html><body>OK</body></html>"

func TestFetch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html")
		_, _ = fmt.Fprint(w, page)
	}))
	defer server.Close()

	f := NewFetcher(Config{UserAgent: "test-agent", CacheTTL: -1}, nil)
	result, err := f.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, page, result.HTML)
	assert.False(t, result.Cached)
}

func TestFetch_Status(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := NewFetcher(Config{CacheTTL: -1}, nil)
	_, err := f.Fetch(context.Background(), server.URL)
	assert.True(t, errors.Is(err, ErrStatus))
}

func TestFetch_TooLarge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, strings.Repeat("a", 64))
	}))
	defer server.Close()

	f := NewFetcher(Config{MaxBytes: 32, CacheTTL: -1}, nil)
	_, err := f.Fetch(context.Background(), server.URL)
	assert.True(t, errors.Is(err, ErrTooLarge))
}

func TestFetch_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer server.Close()

	f := NewFetcher(Config{Timeout: 50 * time.Millisecond, CacheTTL: -1}, nil)
	_, err := f.Fetch(context.Background(), server.URL)
	assert.Error(t, err)
}

func TestFetch_Cancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, page)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := NewFetcher(Config{CacheTTL: -1}, nil)
	_, err := f.Fetch(ctx, server.URL)
	assert.Error(t, err)
}

func TestFetch_Cache(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = fmt.Fprint(w, page)
	}))
	defer server.Close()

	f := NewFetcher(Config{CacheTTL: time.Minute}, nil)
	first, err := f.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	second, err := f.Fetch(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, first.HTML, second.HTML)
	assert.True(t, second.Cached)
	assert.Equal(t, int32(1), hits.Load())
	assert.Equal(t, 1, f.pages.Len())

	f.pages.Clear()
	assert.Equal(t, 0, f.pages.Len())
}

func TestFetch_Robots(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, "User-agent: *\nDisallow: /private\n")
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, page)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	f := NewFetcher(Config{RespectRobots: true, CacheTTL: -1}, nil)

	_, err := f.Fetch(context.Background(), server.URL+"/private/page.html")
	assert.True(t, errors.Is(err, ErrDisallowed))

	result, err := f.Fetch(context.Background(), server.URL+"/public/page.html")
	require.NoError(t, err)
	assert.Equal(t, page, result.HTML)
}

func TestRobotsChecker_MissingFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	checker := NewRobotsChecker("test-agent", time.Second)
	allowed, delay, err := checker.CanFetch(context.Background(), server.URL+"/anything")
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Zero(t, delay)
}

func TestRobotsChecker_CrawlDelay(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = fmt.Fprint(w, "User-agent: test-agent\nCrawl-delay: 2\nDisallow:\n")
	}))
	defer server.Close()

	checker := NewRobotsChecker("test-agent", time.Second)
	for i := 0; i < 2; i++ {
		allowed, delay, err := checker.CanFetch(context.Background(), server.URL+"/a")
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, 2*time.Second, delay)
	}
	assert.Equal(t, int32(1), hits.Load())

	checker.Clear()
	_, _, err := checker.CanFetch(context.Background(), server.URL+"/a")
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}
