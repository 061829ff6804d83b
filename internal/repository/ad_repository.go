package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/lib/pq"

	"classifieds/internal/interfaces"
	"classifieds/internal/models"
)

type adRepository struct {
	db *sql.DB
}

func NewAdRepository(db *sql.DB) interfaces.AdRepository {
	return &adRepository{db: db}
}

const adColumns = `
	a.id, a.name, a.description, a.phone, a.age, a.main_image_url,
	a.is_happy_hour, a.is_hot, a.is_premium, a.likes_count, a.views_count,
	a.campaign_id, a.area_id,
	ARRAY(SELECT ac.city_id::text FROM ad_cities ac WHERE ac.ad_id = a.id ORDER BY ac.city_id),
	a.created_at, a.updated_at
`

func scanAd(row interface{ Scan(dest ...interface{}) error }) (*models.Ad, error) {
	var (
		ad     models.Ad
		age    sql.NullInt64
		areaID sql.NullString
	)
	err := row.Scan(
		&ad.ID,
		&ad.Name,
		&ad.Description,
		&ad.Phone,
		&age,
		&ad.MainImageURL,
		&ad.IsHappyHour,
		&ad.IsHot,
		&ad.IsPremium,
		&ad.LikesCount,
		&ad.ViewsCount,
		&ad.CampaignID,
		&areaID,
		pq.Array(&ad.CityIDs),
		&ad.CreatedAt,
		&ad.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if age.Valid {
		v := int(age.Int64)
		ad.Age = &v
	}
	if areaID.Valid {
		v := areaID.String
		ad.AreaID = &v
	}
	if ad.CityIDs == nil {
		ad.CityIDs = []string{}
	}
	return &ad, nil
}

func nullableInt(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func nullableString(v *string) interface{} {
	if v == nil || *v == "" {
		return nil
	}
	return *v
}

func (r *adRepository) Create(ctx context.Context, ad *models.Ad) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO ads (
			name, description, phone, age, is_happy_hour, is_hot, is_premium,
			campaign_id, area_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`
	err = tx.QueryRowContext(
		ctx,
		query,
		ad.Name,
		ad.Description,
		ad.Phone,
		nullableInt(ad.Age),
		ad.IsHappyHour,
		ad.IsHot,
		ad.IsPremium,
		ad.CampaignID,
		nullableString(ad.AreaID),
	).Scan(&ad.ID, &ad.CreatedAt, &ad.UpdatedAt)
	if err != nil {
		log.Printf("Error creating ad: %v", err)
		return fmt.Errorf("failed to create ad: %w", err)
	}

	if err := insertAdCities(ctx, tx, ad.ID, ad.CityIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit ad: %w", err)
	}
	if ad.CityIDs == nil {
		ad.CityIDs = []string{}
	}
	return nil
}

func insertAdCities(ctx context.Context, tx *sql.Tx, adID string, cityIDs []string) error {
	for _, cityID := range cityIDs {
		_, err := tx.ExecContext(
			ctx,
			`INSERT INTO ad_cities (ad_id, city_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			adID,
			cityID,
		)
		if err != nil {
			log.Printf("Error linking ad %s to city %s: %v", adID, cityID, err)
			return fmt.Errorf("failed to link ad city: %w", err)
		}
	}
	return nil
}

func (r *adRepository) GetByID(ctx context.Context, id string) (*models.Ad, error) {
	query := "SELECT " + adColumns + " FROM ads a WHERE a.id = $1"

	ad, err := scanAd(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		log.Printf("Error getting ad: %v", err)
		return nil, fmt.Errorf("failed to get ad: %w", err)
	}
	return ad, nil
}

// adConditions builds the WHERE clause shared by List and Count.
func adConditions(filter models.AdFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}
	argPos := 1

	add := func(format string, value interface{}) {
		conditions = append(conditions, fmt.Sprintf(format, argPos))
		args = append(args, value)
		argPos++
	}

	if filter.CampaignID != "" {
		add("a.campaign_id = $%d", filter.CampaignID)
	}
	if filter.AreaID != "" {
		add("a.area_id = $%d", filter.AreaID)
	}
	if filter.CityID != "" {
		add("EXISTS (SELECT 1 FROM ad_cities ac WHERE ac.ad_id = a.id AND ac.city_id = $%d)", filter.CityID)
	}
	if filter.Hot != nil {
		add("a.is_hot = $%d", *filter.Hot)
	}
	if filter.Premium != nil {
		add("a.is_premium = $%d", *filter.Premium)
	}
	if filter.HappyHour != nil {
		add("a.is_happy_hour = $%d", *filter.HappyHour)
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		add("(a.name ILIKE $%[1]d OR a.description ILIKE $%[1]d)", "%"+s+"%")
	}

	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func (r *adRepository) List(ctx context.Context, filter models.AdFilter) ([]*models.Ad, error) {
	where, args := adConditions(filter)
	query := "SELECT " + adColumns + " FROM ads a" + where +
		" ORDER BY a.is_premium DESC, a.created_at DESC"

	argPos := len(args) + 1
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
		log.Printf("Error listing ads: %v", err)
		return nil, fmt.Errorf("failed to list ads: %w", err)
	}
	defer rows.Close()

	ads := []*models.Ad{}
	for rows.Next() {
		ad, err := scanAd(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ad: %w", err)
		}
		ads = append(ads, ad)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ads: %w", err)
	}
	return ads, nil
}

func (r *adRepository) Count(ctx context.Context, filter models.AdFilter) (int, error) {
	where, args := adConditions(filter)

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM ads a"+where, args...).Scan(&total); err != nil {
		log.Printf("Error counting ads: %v", err)
		return 0, fmt.Errorf("failed to count ads: %w", err)
	}
	return total, nil
}

func (r *adRepository) Update(ctx context.Context, ad *models.Ad) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE ads SET
			name = $1, description = $2, phone = $3, age = $4,
			is_happy_hour = $5, is_hot = $6, is_premium = $7,
			campaign_id = $8, area_id = $9,
			updated_at = NOW() AT TIME ZONE 'UTC'
		WHERE id = $10
		RETURNING updated_at
	`
	err = tx.QueryRowContext(
		ctx,
		query,
		ad.Name,
		ad.Description,
		ad.Phone,
		nullableInt(ad.Age),
		ad.IsHappyHour,
		ad.IsHot,
		ad.IsPremium,
		ad.CampaignID,
		nullableString(ad.AreaID),
		ad.ID,
	).Scan(&ad.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return sql.ErrNoRows
		}
		log.Printf("Error updating ad: %v", err)
		return fmt.Errorf("failed to update ad: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM ad_cities WHERE ad_id = $1`, ad.ID); err != nil {
		return fmt.Errorf("failed to clear ad cities: %w", err)
	}
	if err := insertAdCities(ctx, tx, ad.ID, ad.CityIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit ad: %w", err)
	}
	return nil
}

func (r *adRepository) increment(ctx context.Context, id, column string) (int, error) {
	query := fmt.Sprintf(
		"UPDATE ads SET %[1]s = %[1]s + 1 WHERE id = $1 RETURNING %[1]s",
		pq.QuoteIdentifier(column),
	)

	var value int
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return 0, sql.ErrNoRows
		}
		log.Printf("Error incrementing %s: %v", column, err)
		return 0, fmt.Errorf("failed to increment %s: %w", column, err)
	}
	return value, nil
}

func (r *adRepository) IncrementLikes(ctx context.Context, id string) (int, error) {
	return r.increment(ctx, id, "likes_count")
}

func (r *adRepository) IncrementViews(ctx context.Context, id string) (int, error) {
	return r.increment(ctx, id, "views_count")
}

func (r *adRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM ads WHERE id = $1`, id)
	if err != nil {
		log.Printf("Error deleting ad: %v", err)
		return fmt.Errorf("failed to delete ad: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete ad: %w", err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
