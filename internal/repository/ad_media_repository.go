package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"classifieds/internal/interfaces"
	"classifieds/internal/models"
)

type adMediaRepository struct {
	db *sql.DB
}

func NewAdMediaRepository(db *sql.DB) interfaces.AdMediaRepository {
	return &adMediaRepository{db: db}
}

// mediaQueryer is satisfied by both *sql.DB and *sql.Tx.
type mediaQueryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (r *adMediaRepository) ListByAd(ctx context.Context, adID string) ([]models.AdMedia, error) {
	return listMedia(ctx, r.db, adID)
}

// Gallery reads the version and the rows from one snapshot.
func (r *adMediaRepository) Gallery(ctx context.Context, adID string) ([]models.AdMedia, int64, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var version int64
	if err := tx.QueryRowContext(ctx, `SELECT media_version FROM ads WHERE id = $1`, adID).Scan(&version); err != nil {
		if err == sql.ErrNoRows {
			return nil, 0, err
		}
		return nil, 0, fmt.Errorf("failed to read media version: %w", err)
	}

	media, err := listMedia(ctx, tx, adID)
	if err != nil {
		return nil, 0, err
	}
	if err := tx.Commit(); err != nil {
		return nil, 0, fmt.Errorf("failed to commit gallery read: %w", err)
	}
	return media, version, nil
}

func listMedia(ctx context.Context, q mediaQueryer, adID string) ([]models.AdMedia, error) {
	query := `
		SELECT id, ad_id, url, storage_key, alt_text, type, content_type, size,
			position, is_main, created_at
		FROM ad_media
		WHERE ad_id = $1
		ORDER BY position, created_at
	`

	rows, err := q.QueryContext(ctx, query, adID)
	if err != nil {
		log.Printf("Error listing ad media: %v", err)
		return nil, fmt.Errorf("failed to list ad media: %w", err)
	}
	defer rows.Close()

	media := []models.AdMedia{}
	for rows.Next() {
		var m models.AdMedia
		if err := rows.Scan(
			&m.ID,
			&m.AdID,
			&m.URL,
			&m.StorageKey,
			&m.AltText,
			&m.Type,
			&m.ContentType,
			&m.Size,
			&m.Position,
			&m.IsMain,
			&m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan ad media: %w", err)
		}
		media = append(media, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ad media: %w", err)
	}
	return media, nil
}

func (r *adMediaRepository) ReplaceForAd(ctx context.Context, adID string, version int64, media []models.AdMedia) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	mainURL := ""
	for _, m := range media {
		if m.IsMain {
			mainURL = m.URL
			break
		}
	}

	// The row lock taken here serializes concurrent writers; the loser sees
	// the bumped version and matches nothing.
	result, err := tx.ExecContext(
		ctx,
		`UPDATE ads
		SET main_image_url = $1, media_version = media_version + 1, updated_at = NOW() AT TIME ZONE 'UTC'
		WHERE id = $2 AND media_version = $3`,
		mainURL,
		adID,
		version,
	)
	if err != nil {
		log.Printf("Error updating ad main image: %v", err)
		return fmt.Errorf("failed to update ad main image: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update ad main image: %w", err)
	}
	if rowsAffected == 0 {
		var exists bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM ads WHERE id = $1)`, adID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check ad: %w", err)
		}
		if exists {
			return interfaces.ErrStaleMedia
		}
		return sql.ErrNoRows
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM ad_media WHERE ad_id = $1`, adID); err != nil {
		log.Printf("Error clearing ad media: %v", err)
		return fmt.Errorf("failed to clear ad media: %w", err)
	}

	insert := `
		INSERT INTO ad_media (
			id, ad_id, url, storage_key, alt_text, type, content_type, size, position, is_main
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	for _, m := range media {
		if _, err := tx.ExecContext(
			ctx,
			insert,
			m.ID,
			adID,
			m.URL,
			m.StorageKey,
			m.AltText,
			m.Type,
			m.ContentType,
			m.Size,
			m.Position,
			m.IsMain,
		); err != nil {
			log.Printf("Error inserting ad media %s: %v", m.ID, err)
			return fmt.Errorf("failed to insert ad media: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit ad media: %w", err)
	}
	return nil
}
