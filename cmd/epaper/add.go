package main

import (
	"fmt"
	"net/url"

	"github.com/fwojciec/epaper"
)

// Run executes the add command.
func (c *AddCmd) Run(deps *Dependencies) error {
	u, err := url.Parse(c.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		fmt.Fprintf(deps.Stderr, "error: %q is not an http(s) URL\n", c.URL)
		return epaper.Errorf(epaper.EINVALID, "invalid URL %q", c.URL)
	}

	newspaper := &epaper.Newspaper{
		Name: c.Name,
		URL:  c.URL,
	}
	if err := deps.Newspapers.CreateNewspaper(deps.Ctx, newspaper); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", epaper.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Added newspaper %q. Run 'epaper sync %s' to find its editions.\n", newspaper.Name, newspaper.Name)
	return nil
}
