package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"

	"github.com/solvik/vollur/internal/platform/logging"
)

func TestClient_FetchDocument(t *testing.T) {
	t.Parallel()

	var gotUA, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		_, _ = w.Write([]byte(`<html><body><h1>Leikur</h1></body></html>`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), "test-agent/1.0", 0, logging.NewNop())
	doc, err := c.FetchDocument(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := doc.Find("h1").Text(); got != "Leikur" {
		t.Fatalf("document not parsed: %q", got)
	}
	if gotUA != "test-agent/1.0" {
		t.Fatalf("user agent not sent: %q", gotUA)
	}
	if !strings.Contains(gotAccept, "text/html") {
		t.Fatalf("browser accept header not sent: %q", gotAccept)
	}
}

func TestClient_FetchDocument_BadStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), "test-agent/1.0", 0, logging.NewNop())
	if _, err := c.FetchDocument(context.Background(), srv.URL); !errors.Is(err, ErrBadStatus) {
		t.Fatalf("expected ErrBadStatus, got %v", err)
	}
}

func TestClient_FetchDocument_EmptyURL(t *testing.T) {
	t.Parallel()

	c := NewClient(nil, "test-agent/1.0", 0, logging.NewNop())
	if _, err := c.FetchDocument(context.Background(), "  "); !errors.Is(err, ErrEmptyURL) {
		t.Fatalf("expected ErrEmptyURL, got %v", err)
	}
}
