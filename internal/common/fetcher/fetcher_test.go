package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{
		UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) TestAgent/1.0",
		Accept:         "text/html,application/xhtml+xml",
		AcceptLanguage: "en-US,en;q=0.5",
		Timeout:        5 * time.Second,
	}
}

func TestFetch_SendsBrowserHeaders(t *testing.T) {
	var gotUA, gotAccept, gotLang string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		gotLang = r.Header.Get("Accept-Language")
		w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer server.Close()

	f := NewFetcher(testConfig())
	body, err := f.Fetch(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, []byte("<html><body>ok</body></html>"), body)
	assert.Equal(t, "Mozilla/5.0 (Windows NT 10.0; Win64; x64) TestAgent/1.0", gotUA)
	assert.Equal(t, "text/html,application/xhtml+xml", gotAccept)
	assert.Equal(t, "en-US,en;q=0.5", gotLang)
}

func TestFetch_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	f := NewFetcher(testConfig())
	body, err := f.Fetch(context.Background(), server.URL)
	require.Error(t, err)
	assert.Nil(t, body)
	assert.Contains(t, err.Error(), "status: 500")
}

func TestFetch_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	f := NewFetcher(testConfig())
	_, err := f.Fetch(context.Background(), url)
	assert.Error(t, err)
}

func TestFetch_Revisit(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte("page"))
	}))
	defer server.Close()

	// the same category URL is fetched on every scheduled run
	f := NewFetcher(testConfig())
	for i := 0; i < 2; i++ {
		body, err := f.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, []byte("page"), body)
	}
	assert.Equal(t, 2, hits)
}
