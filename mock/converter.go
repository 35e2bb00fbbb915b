package mock

import "github.com/fwojciec/epaper"

var _ epaper.Converter = (*Converter)(nil)

// Converter is a mock implementation of epaper.Converter.
type Converter struct {
	ConvertPageFn func(page *epaper.Page) (string, error)
}

func (c *Converter) ConvertPage(page *epaper.Page) (string, error) {
	return c.ConvertPageFn(page)
}
