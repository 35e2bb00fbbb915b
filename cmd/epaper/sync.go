package main

import (
	"fmt"

	"github.com/fwojciec/epaper"
)

// Run executes the sync command.
func (c *SyncCmd) Run(deps *Dependencies) error {
	newspaper, err := findNewspaper(deps, c.Name)
	if err != nil {
		return err
	}

	editions, err := deps.Analyzer.Analyze(deps.Ctx, newspaper.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", epaper.ErrorMessage(err))
		return err
	}

	// An empty result usually means the site is down or changed layout, so
	// the stored list is kept.
	if editions.Len() == 0 {
		fmt.Fprintf(deps.Stderr, "warning: no editions found at %s, keeping stored editions\n", newspaper.URL)
		return nil
	}

	changed, err := deps.Editions.ReplaceEditions(deps.Ctx, newspaper.ID, editions)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", epaper.ErrorMessage(err))
		return err
	}

	if changed {
		fmt.Fprintf(deps.Stdout, "Stored %d editions for %q\n", editions.Len(), newspaper.Name)
	} else {
		fmt.Fprintf(deps.Stdout, "Editions for %q unchanged (%d)\n", newspaper.Name, editions.Len())
	}
	return nil
}
