package main

import (
	"fmt"

	"github.com/fwojciec/epaper"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return epaper.Errorf(epaper.EINVALID, "use --force to confirm deletion")
	}

	newspaper, err := findNewspaper(deps, c.Name)
	if err != nil {
		return err
	}

	if err := deps.Newspapers.DeleteNewspaper(deps.Ctx, newspaper.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", epaper.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted newspaper %q\n", newspaper.Name)
	return nil
}

// findNewspaper looks up a newspaper by name, reporting a missing one with a
// hint on stderr.
func findNewspaper(deps *Dependencies, name string) (*epaper.Newspaper, error) {
	newspaper, err := deps.Newspapers.FindNewspaperByName(deps.Ctx, name)
	if epaper.ErrorCode(err) == epaper.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: newspaper %q not found. Use 'epaper list' to see registered newspapers.\n", name)
		return nil, err
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", epaper.ErrorMessage(err))
		return nil, err
	}
	return newspaper, nil
}
