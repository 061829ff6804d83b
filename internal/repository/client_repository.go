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

type clientRepository struct {
	db *sql.DB
}

func NewClientRepository(db *sql.DB) interfaces.ClientRepository {
	return &clientRepository{db: db}
}

func (r *clientRepository) Create(ctx context.Context, client *models.Client) error {
	query := `
		INSERT INTO clients (name, title, email, mobile)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		client.Name,
		client.Title,
		client.Email,
		client.Mobile,
	).Scan(
		&client.ID,
		&client.CreatedAt,
		&client.UpdatedAt,
	)
	if err != nil {
		log.Printf("Error creating client: %v", err)
		return fmt.Errorf("failed to create client: %w", err)
	}

	return nil
}

func (r *clientRepository) GetByID(ctx context.Context, id string) (*models.Client, error) {
	query := `
		SELECT c.id, c.name, c.title, c.email, c.mobile,
			(SELECT COUNT(*) FROM campaigns WHERE client_id = c.id),
			c.created_at, c.updated_at
		FROM clients c
		WHERE c.id = $1
	`

	var client models.Client
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&client.ID,
		&client.Name,
		&client.Title,
		&client.Email,
		&client.Mobile,
		&client.CampaignCount,
		&client.CreatedAt,
		&client.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		log.Printf("Error getting client: %v", err)
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	return &client, nil
}

func (r *clientRepository) ExistsByEmail(ctx context.Context, email string, excludeID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM clients WHERE LOWER(email) = LOWER($1) AND id::text <> $2)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, email, excludeID).Scan(&exists); err != nil {
		log.Printf("Error checking client email: %v", err)
		return false, fmt.Errorf("failed to check client email: %w", err)
	}
	return exists, nil
}

func (r *clientRepository) List(ctx context.Context) ([]models.Client, error) {
	query := `
		SELECT c.id, c.name, c.title, c.email, c.mobile,
			(SELECT COUNT(*) FROM campaigns WHERE client_id = c.id),
			c.created_at, c.updated_at
		FROM clients c
		ORDER BY c.name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		log.Printf("Error listing clients: %v", err)
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	var clients []models.Client
	for rows.Next() {
		var c models.Client
		if err := rows.Scan(
			&c.ID,
			&c.Name,
			&c.Title,
			&c.Email,
			&c.Mobile,
			&c.CampaignCount,
			&c.CreatedAt,
			&c.UpdatedAt,
		); err != nil {
			log.Printf("Error scanning client: %v", err)
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, c)
	}

	if err = rows.Err(); err != nil {
		log.Printf("Error iterating clients: %v", err)
		return nil, fmt.Errorf("error iterating clients: %w", err)
	}

	return clients, nil
}

func (r *clientRepository) Update(ctx context.Context, id string, req *models.UpdateClientRequest) error {
	setValues := []string{}
	args := []interface{}{}
	argID := 1

	add := func(column string, value string) {
		setValues = append(setValues, fmt.Sprintf("%s = $%d", column, argID))
		args = append(args, value)
		argID++
	}
	if req.Name != nil {
		add("name", *req.Name)
	}
	if req.Title != nil {
		add("title", *req.Title)
	}
	if req.Email != nil {
		add("email", *req.Email)
	}
	if req.Mobile != nil {
		add("mobile", *req.Mobile)
	}

	if len(setValues) == 0 {
		return fmt.Errorf("no fields to update")
	}

	setValues = append(setValues, "updated_at = NOW() AT TIME ZONE 'UTC'")
	args = append(args, id)

	query := fmt.Sprintf(
		"UPDATE clients SET %s WHERE id = $%d",
		strings.Join(setValues, ", "),
		argID,
	)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Printf("Error updating client: %v", err)
		return fmt.Errorf("failed to update client: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *clientRepository) Delete(ctx context.Context, id string) error {
	var campaignCount int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM campaigns WHERE client_id = $1`, id).Scan(&campaignCount); err != nil {
		log.Printf("Error checking client references: %v", err)
		return fmt.Errorf("failed to delete client: %w", err)
	}
	if campaignCount > 0 {
		return &interfaces.DeletionBlockedError{
			Resource: "client",
			References: map[string]int64{
				"campaigns": campaignCount,
			},
		}
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		log.Printf("Error deleting client: %v", err)
		return fmt.Errorf("failed to delete client: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}
