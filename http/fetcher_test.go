package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/epaper"
	epaperhttp "github.com/fwojciec/epaper/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/simplifiedchinese"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns HTML body and final URL from server", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html><body>Hello World</body></html>"))
		}))
		defer server.Close()

		fetcher := epaperhttp.NewFetcher()
		defer fetcher.Close()

		html, finalURL, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "<html><body>Hello World</body></html>", html)
		assert.Equal(t, server.URL, finalURL)
	})

	t.Run("reports final URL after HTTP redirect", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/paper/index.html", http.StatusFound)
		})
		mux.HandleFunc("/paper/index.html", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>paper</html>"))
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		fetcher := epaperhttp.NewFetcher()
		defer fetcher.Close()

		html, finalURL, err := fetcher.Fetch(context.Background(), server.URL+"/")
		require.NoError(t, err)
		assert.Equal(t, "<html>paper</html>", html)
		assert.Equal(t, server.URL+"/paper/index.html", finalURL)
	})

	t.Run("decodes GBK pages to UTF-8", func(t *testing.T) {
		t.Parallel()

		encoded, err := simplifiedchinese.GBK.NewEncoder().String("<html><body>第01版：要闻</body></html>")
		require.NoError(t, err)

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=gbk")
			_, _ = w.Write([]byte(encoded))
		}))
		defer server.Close()

		fetcher := epaperhttp.NewFetcher()
		defer fetcher.Close()

		html, _, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Contains(t, html, "第01版：要闻")
	})

	t.Run("sends user agent header", func(t *testing.T) {
		t.Parallel()

		var got string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Get("User-Agent")
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		fetcher := epaperhttp.NewFetcher(epaperhttp.WithUserAgent("epaper-test"))
		defer fetcher.Close()

		_, _, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "epaper-test", got)
	})

	t.Run("respects custom timeout option", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		// Use a very short timeout that will expire before server responds
		fetcher := epaperhttp.NewFetcher(epaperhttp.WithTimeout(10 * time.Millisecond))
		defer fetcher.Close()

		_, _, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Equal(t, epaper.EFETCH, epaper.ErrorCode(err))
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := epaperhttp.NewFetcher()
		defer fetcher.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel() // Cancel immediately

		_, _, err := fetcher.Fetch(ctx, server.URL)
		require.Error(t, err)
	})

	t.Run("returns error for non-existent host", func(t *testing.T) {
		t.Parallel()

		fetcher := epaperhttp.NewFetcher(epaperhttp.WithTimeout(100 * time.Millisecond))
		defer fetcher.Close()

		_, _, err := fetcher.Fetch(context.Background(), "http://non-existent-host.invalid/page")
		require.Error(t, err)
		assert.Equal(t, epaper.EFETCH, epaper.ErrorCode(err))
	})

	t.Run("returns error for non-200 status codes", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte("404 Not Found"))
		}))
		defer server.Close()

		fetcher := epaperhttp.NewFetcher()
		defer fetcher.Close()

		_, _, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Equal(t, epaper.EFETCH, epaper.ErrorCode(err))
		assert.Contains(t, err.Error(), "404")

		var status *epaper.StatusError
		require.ErrorAs(t, err, &status)
		assert.Equal(t, http.StatusNotFound, status.StatusCode)
		assert.Equal(t, server.URL, status.URL)
	})

	t.Run("rejects unsupported URL schemes", func(t *testing.T) {
		t.Parallel()

		fetcher := epaperhttp.NewFetcher()
		defer fetcher.Close()

		for _, url := range []string{"javascript:void(0)", "mailto:desk@x.com", "ftp://x.com/a.pdf"} {
			_, _, err := fetcher.Fetch(context.Background(), url)
			assert.Equal(t, epaper.EINVALID, epaper.ErrorCode(err), url)
		}
	})
}

// Compile-time verification that Fetcher implements epaper.Fetcher
var _ epaper.Fetcher = (*epaperhttp.Fetcher)(nil)
