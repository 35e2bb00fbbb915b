package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/epaper"
	"github.com/fwojciec/epaper/yaml"
)

// Run executes the import command. Newspapers whose name is already
// registered are skipped.
func (c *ImportCmd) Run(deps *Dependencies) error {
	newspapers := yaml.DefaultCatalog()
	if c.File != "" {
		f, err := os.Open(c.File)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}
		defer f.Close()

		newspapers, err = yaml.ReadCatalog(f)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", epaper.ErrorMessage(err))
			return err
		}
	}

	added := 0
	for _, n := range newspapers {
		err := deps.Newspapers.CreateNewspaper(deps.Ctx, n)
		if epaper.ErrorCode(err) == epaper.EINVALID {
			fmt.Fprintf(deps.Stderr, "skipped %s: %s\n", n.Name, epaper.ErrorMessage(err))
			continue
		}
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", epaper.ErrorMessage(err))
			return err
		}
		added++
	}

	fmt.Fprintf(deps.Stdout, "Imported %d of %d newspapers\n", added, len(newspapers))
	return nil
}

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	newspapers, err := deps.Newspapers.FindNewspapers(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", epaper.ErrorMessage(err))
		return err
	}
	return yaml.WriteCatalog(deps.Stdout, newspapers)
}
