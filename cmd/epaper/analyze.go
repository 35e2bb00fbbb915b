package main

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/fwojciec/epaper"
	"github.com/fwojciec/epaper/analyze"
)

// Run executes the analyze command.
func (c *AnalyzeCmd) Run(deps *Dependencies) error {
	result, err := deps.Runner.Run(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", epaper.ErrorMessage(err))
		return err
	}

	if c.Explain {
		writeExplain(deps.Stderr, result)
	}

	if c.JSON {
		data, err := json.MarshalIndent(result.Editions, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(deps.Stdout, string(data))
		return nil
	}

	if result.Editions.Len() == 0 {
		return c.writePage(deps, result.Page)
	}

	for _, e := range result.Editions.Editions() {
		fmt.Fprintf(deps.Stdout, "%s\t%s\n", e.Title, e.URL)
	}
	return nil
}

// writePage prints the resolved page as markdown when it has no editions.
func (c *AnalyzeCmd) writePage(deps *Dependencies, page *epaper.Page) error {
	fmt.Fprintf(deps.Stderr, "No editions found at %s. Page content follows.\n", page.BaseURL())

	md, err := deps.Converter.ConvertPage(page)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", epaper.ErrorMessage(err))
		return err
	}
	fmt.Fprintln(deps.Stdout, md)
	return nil
}

func writeExplain(w io.Writer, result *analyze.Result) {
	for _, hop := range result.Page.Hops() {
		fmt.Fprintf(w, "redirect (%s): %s -> %s\n", hop.Mechanism, hop.Source, hop.Target)
	}
	for _, name := range slices.Sorted(maps.Keys(result.Counts)) {
		fmt.Fprintf(w, "%-16s %d\n", name, result.Counts[name])
	}
	if result.Strategy == "" {
		fmt.Fprintln(w, "winner: none")
	} else {
		fmt.Fprintf(w, "winner: %s\n", result.Strategy)
	}
	if result.Partial {
		fmt.Fprintln(w, "interrupted: some strategies did not finish")
	}
}
