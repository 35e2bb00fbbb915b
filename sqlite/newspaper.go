package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/epaper"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ epaper.NewspaperService = (*NewspaperService)(nil)

// NewspaperService implements epaper.NewspaperService using SQLite.
type NewspaperService struct {
	db *DB
}

// NewNewspaperService creates a new NewspaperService.
func NewNewspaperService(db *DB) *NewspaperService {
	return &NewspaperService{db: db}
}

const newspaperColumns = "id, name, url, editions_hash, analyzed_at, created_at"

// CreateNewspaper creates a new newspaper.
func (s *NewspaperService) CreateNewspaper(ctx context.Context, newspaper *epaper.Newspaper) error {
	if err := newspaper.Validate(); err != nil {
		return err
	}

	newspaper.ID = uuid.New().String()
	newspaper.CreatedAt = time.Now().UTC().Truncate(time.Second)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO newspapers (id, name, url, editions_hash, analyzed_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, newspaper.ID, newspaper.Name, newspaper.URL, newspaper.EditionsHash,
		formatOptionalRFC3339(newspaper.AnalyzedAt), newspaper.CreatedAt.Format(time.RFC3339))
	if err != nil && strings.Contains(err.Error(), "UNIQUE") {
		return epaper.Errorf(epaper.EINVALID, "newspaper %q already exists", newspaper.Name)
	}

	return err
}

// FindNewspaperByName retrieves a newspaper by name.
func (s *NewspaperService) FindNewspaperByName(ctx context.Context, name string) (*epaper.Newspaper, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+newspaperColumns+" FROM newspapers WHERE name = ?", name)

	newspaper, err := scanNewspaper(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, epaper.Errorf(epaper.ENOTFOUND, "newspaper %q not found", name)
	}
	if err != nil {
		return nil, err
	}
	return newspaper, nil
}

// FindNewspapers retrieves all newspapers ordered by name.
func (s *NewspaperService) FindNewspapers(ctx context.Context) ([]*epaper.Newspaper, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT "+newspaperColumns+" FROM newspapers ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var newspapers []*epaper.Newspaper
	for rows.Next() {
		newspaper, err := scanNewspaper(rows)
		if err != nil {
			return nil, err
		}
		newspapers = append(newspapers, newspaper)
	}

	return newspapers, rows.Err()
}

// DeleteNewspaper permanently removes a newspaper. Its editions are
// removed by the foreign key cascade.
func (s *NewspaperService) DeleteNewspaper(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM newspapers WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return epaper.Errorf(epaper.ENOTFOUND, "newspaper not found")
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanNewspaper(row scanner) (*epaper.Newspaper, error) {
	var newspaper epaper.Newspaper
	var analyzedAt, createdAt string

	if err := row.Scan(&newspaper.ID, &newspaper.Name, &newspaper.URL, &newspaper.EditionsHash,
		&analyzedAt, &createdAt); err != nil {
		return nil, err
	}

	var err error
	if newspaper.AnalyzedAt, err = parseOptionalRFC3339(analyzedAt, "analyzed_at"); err != nil {
		return nil, err
	}
	if newspaper.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}

	return &newspaper, nil
}
