// Package yaml reads and writes newspaper catalogs, plain lists of
// newspaper names and index URLs used to seed or back up the store.
package yaml

import (
	_ "embed"
	"io"

	"github.com/fwojciec/epaper"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// catalog is the file schema.
type catalog struct {
	Newspapers []entry `yaml:"newspapers"`
}

type entry struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// DefaultCatalog returns the built-in list of newspapers.
func DefaultCatalog() []*epaper.Newspaper {
	newspapers, err := unmarshal(defaultCatalog)
	if err != nil {
		panic("yaml: invalid built-in catalog: " + err.Error())
	}
	return newspapers
}

// ReadCatalog decodes a catalog. Every entry must have a name and a URL.
func ReadCatalog(r io.Reader) ([]*epaper.Newspaper, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return unmarshal(data)
}

// WriteCatalog encodes newspapers as a catalog.
func WriteCatalog(w io.Writer, newspapers []*epaper.Newspaper) error {
	var c catalog
	for _, n := range newspapers {
		c.Newspapers = append(c.Newspapers, entry{Name: n.Name, URL: n.URL})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}

func unmarshal(data []byte) ([]*epaper.Newspaper, error) {
	var c catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, epaper.Wrapf(err, epaper.EINVALID, "parse catalog")
	}

	newspapers := make([]*epaper.Newspaper, 0, len(c.Newspapers))
	for i, e := range c.Newspapers {
		n := &epaper.Newspaper{Name: e.Name, URL: e.URL}
		if err := n.Validate(); err != nil {
			return nil, epaper.Errorf(epaper.EINVALID, "catalog entry %d: %s", i+1, epaper.ErrorMessage(err))
		}
		newspapers = append(newspapers, n)
	}
	return newspapers, nil
}
