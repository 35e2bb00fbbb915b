package main

import (
	"fmt"

	"github.com/fwojciec/epaper"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	newspapers, err := deps.Newspapers.FindNewspapers(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", epaper.ErrorMessage(err))
		return err
	}

	if len(newspapers) == 0 {
		fmt.Fprintln(deps.Stdout, "No newspapers found. Use 'epaper add' to register one.")
		return nil
	}

	for _, n := range newspapers {
		analyzed := "never synced"
		if !n.AnalyzedAt.IsZero() {
			analyzed = "synced " + n.AnalyzedAt.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  (%s)\n", n.ID, n.Name, n.URL, analyzed)
	}

	return nil
}
