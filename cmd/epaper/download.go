package main

import (
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/fwojciec/epaper"
	"github.com/fwojciec/epaper/fs"
	"golang.org/x/sync/errgroup"
)

// Run executes the download command.
func (c *DownloadCmd) Run(deps *Dependencies) error {
	newspaper, err := findNewspaper(deps, c.Name)
	if err != nil {
		return err
	}

	editions, err := deps.Editions.FindEditions(deps.Ctx, newspaper.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", epaper.ErrorMessage(err))
		return err
	}
	if len(editions) == 0 {
		fmt.Fprintf(deps.Stderr, "error: no editions stored for %q. Run 'epaper sync %s' first.\n", newspaper.Name, newspaper.Name)
		return epaper.Errorf(epaper.ENOTFOUND, "no editions stored for %q", newspaper.Name)
	}

	date := deps.Now()
	selected := c.selectEditions(editions)
	if len(selected) == 0 {
		fmt.Fprintln(deps.Stdout, "Nothing to download.")
		return nil
	}

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	var (
		failed atomic.Int32
		mu     sync.Mutex // guards output
	)
	g, ctx := errgroup.WithContext(deps.Ctx)
	g.SetLimit(concurrency)
	for _, e := range selected {
		g.Go(func() error {
			path := fs.EditionPath(c.Dir, date, newspaper.Name, e.Title)
			if err := deps.Downloader.Download(ctx, e.URL, path); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				failed.Add(1)
				mu.Lock()
				fmt.Fprintf(deps.Stderr, "failed %s: %s\n", e.Title, epaper.ErrorMessage(err))
				mu.Unlock()
				return nil
			}
			if err := deps.Editions.MarkDownloaded(ctx, e.ID, path); err != nil {
				return err
			}
			e.LocalPath = path
			e.DownloadedAt = date
			mu.Lock()
			fmt.Fprintf(deps.Stdout, "saved %s\n", path)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", epaper.ErrorMessage(err))
		return err
	}

	manifest, err := fs.WriteManifest(c.Dir, newspaper, date, editions)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: writing manifest: %v\n", err)
		return err
	}
	fmt.Fprintf(deps.Stdout, "Wrote %s\n", manifest)

	if n := failed.Load(); n > 0 {
		return epaper.Errorf(epaper.EFETCH, "%d of %d downloads failed", n, len(selected))
	}
	return nil
}

// selectEditions filters editions by the requested titles and skips ones
// already on disk unless Again is set.
func (c *DownloadCmd) selectEditions(editions []*epaper.Edition) []*epaper.Edition {
	var selected []*epaper.Edition
	for _, e := range editions {
		if len(c.Title) > 0 && !slices.Contains(c.Title, e.Title) {
			continue
		}
		if e.IsDownloaded() && !c.Again {
			continue
		}
		selected = append(selected, e)
	}
	return selected
}
