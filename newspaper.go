package epaper

import (
	"context"
	"time"
)

// Newspaper is a registered newspaper and the index page it is read from.
type Newspaper struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	URL          string    `json:"url"`
	EditionsHash string    `json:"editionsHash"`
	AnalyzedAt   time.Time `json:"analyzedAt"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Validate returns an error if the newspaper contains invalid fields.
func (n *Newspaper) Validate() error {
	if n.Name == "" {
		return Errorf(EINVALID, "newspaper name required")
	}
	if n.URL == "" {
		return Errorf(EINVALID, "newspaper URL required")
	}
	return nil
}

// NewspaperService represents a service for managing newspapers.
type NewspaperService interface {
	// CreateNewspaper creates a new newspaper.
	// Returns EINVALID if a newspaper with the same name exists.
	CreateNewspaper(ctx context.Context, newspaper *Newspaper) error

	// FindNewspaperByName retrieves a newspaper by name.
	// Returns ENOTFOUND if the newspaper does not exist.
	FindNewspaperByName(ctx context.Context, name string) (*Newspaper, error)

	// FindNewspapers retrieves all newspapers ordered by name.
	FindNewspapers(ctx context.Context) ([]*Newspaper, error)

	// DeleteNewspaper permanently removes a newspaper and its editions.
	// Returns ENOTFOUND if the newspaper does not exist.
	DeleteNewspaper(ctx context.Context, id string) error
}

// EditionService represents the durable edition list of each newspaper.
type EditionService interface {
	// ReplaceEditions stores the mapping as the newspaper's current editions.
	// When the mapping is identical to the stored one the existing rows,
	// including their download state, are kept and changed is false.
	// Returns ENOTFOUND if the newspaper does not exist.
	ReplaceEditions(ctx context.Context, newspaperID string, editions *EditionMapping) (changed bool, err error)

	// FindEditions returns the newspaper's editions ordered by position.
	FindEditions(ctx context.Context, newspaperID string) ([]*Edition, error)

	// MarkDownloaded records that the edition was saved to localPath.
	// Returns ENOTFOUND if the edition does not exist.
	MarkDownloaded(ctx context.Context, editionID string, localPath string) error
}
