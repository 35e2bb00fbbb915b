package mock

import (
	"context"

	"github.com/fwojciec/epaper"
)

var (
	_ epaper.NewspaperService = (*NewspaperService)(nil)
	_ epaper.EditionService   = (*EditionService)(nil)
)

// NewspaperService is a mock implementation of epaper.NewspaperService.
type NewspaperService struct {
	CreateNewspaperFn     func(ctx context.Context, newspaper *epaper.Newspaper) error
	FindNewspaperByNameFn func(ctx context.Context, name string) (*epaper.Newspaper, error)
	FindNewspapersFn      func(ctx context.Context) ([]*epaper.Newspaper, error)
	DeleteNewspaperFn     func(ctx context.Context, id string) error
}

func (s *NewspaperService) CreateNewspaper(ctx context.Context, newspaper *epaper.Newspaper) error {
	return s.CreateNewspaperFn(ctx, newspaper)
}

func (s *NewspaperService) FindNewspaperByName(ctx context.Context, name string) (*epaper.Newspaper, error) {
	return s.FindNewspaperByNameFn(ctx, name)
}

func (s *NewspaperService) FindNewspapers(ctx context.Context) ([]*epaper.Newspaper, error) {
	return s.FindNewspapersFn(ctx)
}

func (s *NewspaperService) DeleteNewspaper(ctx context.Context, id string) error {
	return s.DeleteNewspaperFn(ctx, id)
}

// EditionService is a mock implementation of epaper.EditionService.
type EditionService struct {
	ReplaceEditionsFn func(ctx context.Context, newspaperID string, editions *epaper.EditionMapping) (bool, error)
	FindEditionsFn    func(ctx context.Context, newspaperID string) ([]*epaper.Edition, error)
	MarkDownloadedFn  func(ctx context.Context, editionID string, localPath string) error
}

func (s *EditionService) ReplaceEditions(ctx context.Context, newspaperID string, editions *epaper.EditionMapping) (bool, error) {
	return s.ReplaceEditionsFn(ctx, newspaperID, editions)
}

func (s *EditionService) FindEditions(ctx context.Context, newspaperID string) ([]*epaper.Edition, error) {
	return s.FindEditionsFn(ctx, newspaperID)
}

func (s *EditionService) MarkDownloaded(ctx context.Context, editionID string, localPath string) error {
	return s.MarkDownloadedFn(ctx, editionID, localPath)
}
