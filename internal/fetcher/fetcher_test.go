package fetcher_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonesrussell/storescope/internal/domain"
	"github.com/jonesrussell/storescope/internal/fetcher"
	"github.com/jonesrussell/storescope/internal/logger"
)

func newTestFetcher(timeout time.Duration) *fetcher.Fetcher {
	return fetcher.New(fetcher.Config{
		Timeout:        timeout,
		MaxRetries:     3,
		BackoffInitial: time.Millisecond,
		RatePerHost:    1000,
		UserAgent:      "storescope-test/1.0",
	}, logger.NewNoOp())
}

func TestFetch_Success(t *testing.T) {
	const page = "<html><body>storefront</body></html>"
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(page))
	}))
	defer server.Close()

	f := newTestFetcher(5 * time.Second)
	body, err := f.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if string(body) != page {
		t.Errorf("body = %q, want %q", body, page)
	}
	if gotUA != "storescope-test/1.0" {
		t.Errorf("User-Agent = %q, want configured agent", gotUA)
	}
}

func TestFetch_InvalidURL(t *testing.T) {
	f := newTestFetcher(time.Second)

	for _, raw := range []string{"not a url", "ftp://example.com", "/relative/only"} {
		_, err := f.Fetch(context.Background(), raw)
		if !errors.Is(err, domain.ErrInvalidURL) {
			t.Errorf("Fetch(%q) error = %v, want ErrInvalidURL", raw, err)
		}
	}
}

func TestFetch_RetriesTransientServerError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	f := newTestFetcher(5 * time.Second)
	body, err := f.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch() error = %v, want success on third attempt", err)
	}
	if string(body) != "ok" {
		t.Errorf("body = %q, want %q", body, "ok")
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("attempts = %d, want 3", got)
	}
}

func TestFetch_Retries429(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	f := newTestFetcher(5 * time.Second)
	if _, err := f.Fetch(context.Background(), server.URL); err != nil {
		t.Fatalf("Fetch() error = %v, want retry after 429", err)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("attempts = %d, want 2", got)
	}
}

func TestFetch_NoRetryOnClientError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	f := newTestFetcher(5 * time.Second)
	_, err := f.Fetch(context.Background(), server.URL)

	var httpErr *fetcher.HTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode != http.StatusNotFound {
		t.Fatalf("Fetch() error = %v, want HTTPError 404", err)
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("attempts = %d, want 1 (4xx is not retried)", got)
	}
}

func TestFetch_ExhaustsRetries(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	f := newTestFetcher(5 * time.Second)
	_, err := f.Fetch(context.Background(), server.URL)

	var httpErr *fetcher.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("Fetch() error = %v, want HTTPError after retries", err)
	}
	// Initial attempt plus MaxRetries.
	if got := calls.Load(); got != 4 {
		t.Errorf("attempts = %d, want 4", got)
	}
}

func TestFetch_TimeoutClassified(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	f := fetcher.New(fetcher.Config{
		Timeout:        20 * time.Millisecond,
		MaxRetries:     1,
		BackoffInitial: time.Millisecond,
		RatePerHost:    1000,
		UserAgent:      "storescope-test/1.0",
	}, logger.NewNoOp())

	_, err := f.Fetch(context.Background(), server.URL)
	if !errors.Is(err, fetcher.ErrTimeout) {
		t.Fatalf("Fetch() error = %v, want ErrTimeout", err)
	}
}

func TestFetch_ConnectionError(t *testing.T) {
	// Port reserved by a closed listener; nothing is listening.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := server.URL
	server.Close()

	f := newTestFetcher(time.Second)
	_, err := f.Fetch(context.Background(), addr)
	if !errors.Is(err, fetcher.ErrConnection) {
		t.Fatalf("Fetch() error = %v, want ErrConnection", err)
	}
}

func TestFetch_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := newTestFetcher(time.Second)
	_, err := f.Fetch(ctx, "https://example.com")
	if err == nil || !errors.Is(err, context.Canceled) {
		t.Fatalf("Fetch() error = %v, want context.Canceled", err)
	}
}
