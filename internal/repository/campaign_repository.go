package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"classifieds/internal/interfaces"
	"classifieds/internal/models"
)

type campaignRepository struct {
	db *sql.DB
}

func NewCampaignRepository(db *sql.DB) interfaces.CampaignRepository {
	return &campaignRepository{db: db}
}

const campaignSelect = `
	SELECT
		c.id, c.campaign_name, c.client_id, cl.name,
		(SELECT COUNT(*) FROM ads WHERE campaign_id = c.id),
		c.created_at, c.updated_at
	FROM campaigns c
	JOIN clients cl ON cl.id = c.client_id
`

func scanCampaign(row interface{ Scan(dest ...interface{}) error }) (*models.Campaign, error) {
	var campaign models.Campaign
	err := row.Scan(
		&campaign.ID,
		&campaign.CampaignName,
		&campaign.ClientID,
		&campaign.ClientName,
		&campaign.AdCount,
		&campaign.CreatedAt,
		&campaign.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &campaign, nil
}

func (r *campaignRepository) Create(ctx context.Context, campaign *models.Campaign) error {
	query := `
		INSERT INTO campaigns (campaign_name, client_id)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query, campaign.CampaignName, campaign.ClientID).
		Scan(&campaign.ID, &campaign.CreatedAt, &campaign.UpdatedAt)
	if err != nil {
		log.Printf("Error creating campaign: %v", err)
		return fmt.Errorf("failed to create campaign: %w", err)
	}
	return nil
}

func (r *campaignRepository) GetByID(ctx context.Context, id string) (*models.Campaign, error) {
	campaign, err := scanCampaign(r.db.QueryRowContext(ctx, campaignSelect+" WHERE c.id = $1", id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		log.Printf("Error getting campaign: %v", err)
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}
	return campaign, nil
}

func (r *campaignRepository) List(ctx context.Context, filter interfaces.CampaignFilter) ([]*models.Campaign, error) {
	var conditions []string
	var args []interface{}
	argPos := 1

	if filter.ClientID != "" {
		conditions = append(conditions, fmt.Sprintf("c.client_id = $%d", argPos))
		args = append(args, filter.ClientID)
		argPos++
	}

	query := campaignSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY c.created_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argPos)
		args = append(args, filter.Limit)
		argPos++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argPos)
		args = append(args, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Printf("Error listing campaigns: %v", err)
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	defer rows.Close()

	var campaigns []*models.Campaign
	for rows.Next() {
		campaign, err := scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan campaign: %w", err)
		}
		campaigns = append(campaigns, campaign)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating campaigns: %w", err)
	}

	return campaigns, nil
}

func (r *campaignRepository) Update(ctx context.Context, id string, campaign *models.Campaign) error {
	query := `
		UPDATE campaigns
		SET campaign_name = $1, client_id = $2, updated_at = NOW() AT TIME ZONE 'UTC'
		WHERE id = $3
		RETURNING updated_at
	`

	err := r.db.QueryRowContext(ctx, query, campaign.CampaignName, campaign.ClientID, id).Scan(&campaign.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return sql.ErrNoRows
		}
		log.Printf("Error updating campaign: %v", err)
		return fmt.Errorf("failed to update campaign: %w", err)
	}
	campaign.ID = id
	return nil
}

func (r *campaignRepository) Delete(ctx context.Context, id string) error {
	var adCount int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM ads WHERE campaign_id = $1`, id).Scan(&adCount); err != nil {
		log.Printf("Error checking campaign references: %v", err)
		return fmt.Errorf("failed to delete campaign: %w", err)
	}
	if adCount > 0 {
		return &interfaces.DeletionBlockedError{
			Resource:   "campaign",
			References: map[string]int64{"ads": adCount},
		}
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM campaigns WHERE id = $1`, id)
	if err != nil {
		log.Printf("Error deleting campaign: %v", err)
		return fmt.Errorf("failed to delete campaign: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete campaign: %w", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
