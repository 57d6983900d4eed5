package robots

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"jobmatch-engine/internal/httpx"
)

func testClient() *httpx.Client {
	return httpx.New(httpx.Options{
		UserAgent:   "jobmatch-bot/1.0",
		Timeout:     2 * time.Second,
		MaxAttempts: 1,
		Logger:      zerolog.Nop(),
	})
}

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestGate_DisallowedPathDenied(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/robots.txt", r.URL.Path)
		_, _ = w.Write([]byte("User-agent: *\nDisallow: /private"))
	}))
	defer srv.Close()

	gate := NewGate(testClient(), "jobmatch-bot", false, zerolog.Nop())

	require.False(t, gate.IsAllowed(context.Background(), mustParse(t, srv.URL+"/private/jobs")))
	require.True(t, gate.IsAllowed(context.Background(), mustParse(t, srv.URL+"/careers")))
}

func TestGate_MissingRobotsAllows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	gate := NewGate(testClient(), "jobmatch-bot", false, zerolog.Nop())

	require.True(t, gate.IsAllowed(context.Background(), mustParse(t, srv.URL+"/careers")))
}

func TestGate_UnreachableHostDenies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	gate := NewGate(testClient(), "jobmatch-bot", false, zerolog.Nop())

	require.False(t, gate.IsAllowed(context.Background(), mustParse(t, srv.URL+"/careers")))
}

func TestGate_OverrideSkipsFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("robots.txt should not be fetched when override is on")
	}))
	defer srv.Close()

	gate := NewGate(testClient(), "jobmatch-bot", true, zerolog.Nop())

	require.True(t, gate.IsAllowed(context.Background(), mustParse(t, srv.URL+"/careers")))
}
