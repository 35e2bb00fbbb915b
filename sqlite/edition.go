package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fwojciec/epaper"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ epaper.EditionService = (*EditionService)(nil)

// EditionService implements epaper.EditionService using SQLite.
type EditionService struct {
	db *DB
}

// NewEditionService creates a new EditionService.
func NewEditionService(db *DB) *EditionService {
	return &EditionService{db: db}
}

// ReplaceEditions stores editions as the newspaper's edition list.
//
// The mapping hash is compared with the one stored on the newspaper. When
// they match only analyzed_at is updated and the stored rows, including
// download state, are kept.
func (s *EditionService) ReplaceEditions(ctx context.Context, newspaperID string, editions *epaper.EditionMapping) (bool, error) {
	hash := hashEditions(editions)
	now := time.Now().UTC().Format(time.RFC3339)

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var stored string
	err = tx.QueryRowContext(ctx, "SELECT editions_hash FROM newspapers WHERE id = ?", newspaperID).Scan(&stored)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, epaper.Errorf(epaper.ENOTFOUND, "newspaper not found")
		}
		return false, err
	}

	changed := stored != hash
	if changed {
		if _, err := tx.ExecContext(ctx, "DELETE FROM editions WHERE newspaper_id = ?", newspaperID); err != nil {
			return false, err
		}
		for _, e := range editions.Editions() {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO editions (id, newspaper_id, title, url, position)
				VALUES (?, ?, ?, ?, ?)
			`, uuid.New().String(), newspaperID, e.Title, e.URL, e.Position); err != nil {
				return false, err
			}
		}
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE newspapers SET editions_hash = ?, analyzed_at = ? WHERE id = ?
	`, hash, now, newspaperID); err != nil {
		return false, err
	}

	return changed, tx.Commit()
}

// FindEditions returns the newspaper's editions ordered by position.
func (s *EditionService) FindEditions(ctx context.Context, newspaperID string) ([]*epaper.Edition, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, newspaper_id, title, url, position, local_path, downloaded_at
		FROM editions
		WHERE newspaper_id = ?
		ORDER BY position
	`, newspaperID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var editions []*epaper.Edition
	for rows.Next() {
		var e epaper.Edition
		var downloadedAt string
		if err := rows.Scan(&e.ID, &e.NewspaperID, &e.Title, &e.URL, &e.Position, &e.LocalPath, &downloadedAt); err != nil {
			return nil, err
		}
		if e.DownloadedAt, err = parseOptionalRFC3339(downloadedAt, "downloaded_at"); err != nil {
			return nil, err
		}
		editions = append(editions, &e)
	}

	return editions, rows.Err()
}

// MarkDownloaded records that the edition was saved to localPath.
func (s *EditionService) MarkDownloaded(ctx context.Context, editionID string, localPath string) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE editions SET local_path = ?, downloaded_at = ? WHERE id = ?
	`, localPath, time.Now().UTC().Format(time.RFC3339), editionID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return epaper.Errorf(epaper.ENOTFOUND, "edition not found")
	}

	return nil
}
