package main_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	main "github.com/fwojciec/epaper/cmd/epaper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newspaperSite serves an index that refreshes to the current issue page,
// which links two PDF sections.
func newspaperSite(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><head><meta http-equiv="refresh" content="0; url=/html/node_1.htm"></head></html>`))
	})
	mux.HandleFunc("/html/node_1.htm", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><body>
<a href="../pdf/A01.pdf">第01版：要闻</a>
<a href="../pdf/A02.pdf">第02版：评论</a>
</body></html>`))
	})
	mux.HandleFunc("/pdf/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4 " + r.URL.Path))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, dbPath string, args ...string) (string, string, error) {
	t.Helper()

	m := main.NewMain()
	m.DBPath = dbPath

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	err := m.Run(context.Background(), args, stdout, stderr)
	return stdout.String(), stderr.String(), err
}

func TestMain_Run_AnalyzeFollowsRefresh(t *testing.T) {
	t.Parallel()

	srv := newspaperSite(t)

	stdout, _, err := run(t, filepath.Join(t.TempDir(), "unused.db"), "analyze", srv.URL+"/", "--rate", "100")

	require.NoError(t, err)
	assert.Equal(t,
		"第01版：要闻\t"+srv.URL+"/pdf/A01.pdf\n"+
			"第02版：评论\t"+srv.URL+"/pdf/A02.pdf\n",
		stdout)
}

func TestMain_Run_AddSyncDownload(t *testing.T) {
	t.Parallel()

	srv := newspaperSite(t)
	dbPath := filepath.Join(t.TempDir(), "test.db")
	dir := t.TempDir()

	_, _, err := run(t, dbPath, "add", "demo", srv.URL+"/")
	require.NoError(t, err)

	stdout, _, err := run(t, dbPath, "sync", "demo", "--rate", "100")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Stored 2 editions")

	stdout, _, err = run(t, dbPath, "sync", "demo", "--rate", "100")
	require.NoError(t, err)
	assert.Contains(t, stdout, "unchanged")

	stdout, _, err = run(t, dbPath, "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "demo")
	assert.Contains(t, stdout, "synced")

	_, _, err = run(t, dbPath, "download", "demo", "--dir", dir)
	require.NoError(t, err)

	matches, err := filepath.Glob(filepath.Join(dir, "*", "demo", "*.pdf"))
	require.NoError(t, err)
	require.Len(t, matches, 2)
	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "%PDF-1.4")

	stdout, _, err = run(t, dbPath, "download", "demo", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Nothing to download")

	_, _, err = run(t, dbPath, "delete", "demo", "--force")
	require.NoError(t, err)

	stdout, _, err = run(t, dbPath, "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No newspapers")
}
