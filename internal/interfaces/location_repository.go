package interfaces

import (
	"context"

	"classifieds/internal/models"
)

type AreaRepository interface {
	Create(ctx context.Context, area *models.Area) error
	GetByID(ctx context.Context, id string) (*models.Area, error)
	List(ctx context.Context) ([]models.Area, error)
	Update(ctx context.Context, area *models.Area) error
	Delete(ctx context.Context, id string) error
}

type CityRepository interface {
	Create(ctx context.Context, city *models.City) error
	GetByID(ctx context.Context, id string) (*models.City, error)
	List(ctx context.Context, areaID string) ([]models.City, error)
	Update(ctx context.Context, city *models.City) error
	Delete(ctx context.Context, id string) error
}
