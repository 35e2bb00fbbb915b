package http

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/epaper"
)

// DefaultDownloadTimeout bounds a single document download.
const DefaultDownloadTimeout = 2 * time.Minute

// Ensure Downloader implements epaper.Downloader at compile time.
var _ epaper.Downloader = (*Downloader)(nil)

// Downloader saves edition documents to disk.
//
// The document is written to destPath+".part" and renamed into place once
// complete, so an interrupted download never leaves a truncated file at
// destPath.
type Downloader struct {
	client    *http.Client
	userAgent string
}

// NewDownloader creates a new Downloader.
// WithTimeout defaults to DefaultDownloadTimeout for downloads.
func NewDownloader(opts ...Option) *Downloader {
	o := buildOptions(append([]Option{WithTimeout(DefaultDownloadTimeout)}, opts...))
	return &Downloader{
		client:    o.client,
		userAgent: o.userAgent,
	}
}

// Download writes the document at url to destPath, creating parent
// directories as needed.
func (d *Downloader) Download(ctx context.Context, url string, destPath string) error {
	resp, err := get(ctx, d.client, d.userAgent, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return epaper.Wrapf(err, epaper.EINTERNAL, "create directory for %s", destPath)
	}

	tmp := destPath + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return epaper.Wrapf(err, epaper.EINTERNAL, "create %s", tmp)
	}

	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(tmp)
		return epaper.Wrapf(err, epaper.EFETCH, "download %s", url)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return epaper.Wrapf(err, epaper.EINTERNAL, "write %s", tmp)
	}

	if err := os.Rename(tmp, destPath); err != nil {
		os.Remove(tmp)
		return epaper.Wrapf(err, epaper.EINTERNAL, "rename %s", tmp)
	}
	return nil
}
