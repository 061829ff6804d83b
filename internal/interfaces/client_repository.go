package interfaces

import (
	"context"

	"classifieds/internal/models"
)

// ClientRepository defines the interface for client data operations
type ClientRepository interface {
	Create(ctx context.Context, client *models.Client) error
	GetByID(ctx context.Context, id string) (*models.Client, error)
	// ExistsByEmail reports whether another client (not excludeID) uses email.
	ExistsByEmail(ctx context.Context, email string, excludeID string) (bool, error)
	List(ctx context.Context) ([]models.Client, error)
	Update(ctx context.Context, id string, req *models.UpdateClientRequest) error
	Delete(ctx context.Context, id string) error
}
