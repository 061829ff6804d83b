package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"classifieds/internal/interfaces"
	"classifieds/internal/models"
)

type areaRepository struct {
	db *sql.DB
}

func NewAreaRepository(db *sql.DB) interfaces.AreaRepository {
	return &areaRepository{db: db}
}

func (r *areaRepository) Create(ctx context.Context, area *models.Area) error {
	err := r.db.QueryRowContext(ctx, `INSERT INTO areas (name) VALUES ($1) RETURNING id`, area.Name).Scan(&area.ID)
	if err != nil {
		log.Printf("Error creating area: %v", err)
		return fmt.Errorf("failed to create area: %w", err)
	}
	return nil
}

func (r *areaRepository) GetByID(ctx context.Context, id string) (*models.Area, error) {
	var area models.Area
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM areas WHERE id = $1`, id).Scan(&area.ID, &area.Name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		log.Printf("Error getting area: %v", err)
		return nil, fmt.Errorf("failed to get area: %w", err)
	}

	cities, err := listCities(ctx, r.db, id)
	if err != nil {
		return nil, err
	}
	area.Cities = cities
	return &area, nil
}

func (r *areaRepository) List(ctx context.Context) ([]models.Area, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM areas ORDER BY name`)
	if err != nil {
		log.Printf("Error listing areas: %v", err)
		return nil, fmt.Errorf("failed to list areas: %w", err)
	}
	defer rows.Close()

	areas := []models.Area{}
	for rows.Next() {
		var a models.Area
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, fmt.Errorf("failed to scan area: %w", err)
		}
		areas = append(areas, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating areas: %w", err)
	}
	return areas, nil
}

func (r *areaRepository) Update(ctx context.Context, area *models.Area) error {
	result, err := r.db.ExecContext(ctx, `UPDATE areas SET name = $1 WHERE id = $2`, area.Name, area.ID)
	if err != nil {
		log.Printf("Error updating area: %v", err)
		return fmt.Errorf("failed to update area: %w", err)
	}
	return requireRow(result, "update area")
}

func (r *areaRepository) Delete(ctx context.Context, id string) error {
	var cityCount int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cities WHERE area_id = $1`, id).Scan(&cityCount); err != nil {
		return fmt.Errorf("failed to delete area: %w", err)
	}
	if cityCount > 0 {
		return &interfaces.DeletionBlockedError{
			Resource:   "area",
			References: map[string]int64{"cities": cityCount},
		}
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM areas WHERE id = $1`, id)
	if err != nil {
		log.Printf("Error deleting area: %v", err)
		return fmt.Errorf("failed to delete area: %w", err)
	}
	return requireRow(result, "delete area")
}

type cityRepository struct {
	db *sql.DB
}

func NewCityRepository(db *sql.DB) interfaces.CityRepository {
	return &cityRepository{db: db}
}

func (r *cityRepository) Create(ctx context.Context, city *models.City) error {
	err := r.db.QueryRowContext(
		ctx,
		`INSERT INTO cities (name, area_id) VALUES ($1, $2) RETURNING id`,
		city.Name,
		city.AreaID,
	).Scan(&city.ID)
	if err != nil {
		log.Printf("Error creating city: %v", err)
		return fmt.Errorf("failed to create city: %w", err)
	}
	return nil
}

func (r *cityRepository) GetByID(ctx context.Context, id string) (*models.City, error) {
	var city models.City
	err := r.db.QueryRowContext(ctx, `SELECT id, name, area_id FROM cities WHERE id = $1`, id).
		Scan(&city.ID, &city.Name, &city.AreaID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		log.Printf("Error getting city: %v", err)
		return nil, fmt.Errorf("failed to get city: %w", err)
	}
	return &city, nil
}

// List returns all cities, or only those of areaID when it is set.
func (r *cityRepository) List(ctx context.Context, areaID string) ([]models.City, error) {
	return listCities(ctx, r.db, areaID)
}

func (r *cityRepository) Update(ctx context.Context, city *models.City) error {
	result, err := r.db.ExecContext(
		ctx,
		`UPDATE cities SET name = $1, area_id = $2 WHERE id = $3`,
		city.Name,
		city.AreaID,
		city.ID,
	)
	if err != nil {
		log.Printf("Error updating city: %v", err)
		return fmt.Errorf("failed to update city: %w", err)
	}
	return requireRow(result, "update city")
}

func (r *cityRepository) Delete(ctx context.Context, id string) error {
	var adCount int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM ad_cities WHERE city_id = $1`, id).Scan(&adCount); err != nil {
		return fmt.Errorf("failed to delete city: %w", err)
	}
	if adCount > 0 {
		return &interfaces.DeletionBlockedError{
			Resource:   "city",
			References: map[string]int64{"ads": adCount},
		}
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM cities WHERE id = $1`, id)
	if err != nil {
		log.Printf("Error deleting city: %v", err)
		return fmt.Errorf("failed to delete city: %w", err)
	}
	return requireRow(result, "delete city")
}

func listCities(ctx context.Context, db *sql.DB, areaID string) ([]models.City, error) {
	query := `SELECT id, name, area_id FROM cities`
	var args []interface{}
	if areaID != "" {
		query += ` WHERE area_id = $1`
		args = append(args, areaID)
	}
	query += ` ORDER BY name`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Printf("Error listing cities: %v", err)
		return nil, fmt.Errorf("failed to list cities: %w", err)
	}
	defer rows.Close()

	cities := []models.City{}
	for rows.Next() {
		var c models.City
		if err := rows.Scan(&c.ID, &c.Name, &c.AreaID); err != nil {
			return nil, fmt.Errorf("failed to scan city: %w", err)
		}
		cities = append(cities, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cities: %w", err)
	}
	return cities, nil
}

// requireRow turns a statement that touched nothing into sql.ErrNoRows.
func requireRow(result sql.Result, op string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
