package interfaces

import (
	"context"
	"errors"

	"classifieds/internal/models"
)

// AdRepository defines the interface for ad data operations
type AdRepository interface {
	Create(ctx context.Context, ad *models.Ad) error
	GetByID(ctx context.Context, id string) (*models.Ad, error)
	List(ctx context.Context, filter models.AdFilter) ([]*models.Ad, error)
	Count(ctx context.Context, filter models.AdFilter) (int, error)
	Update(ctx context.Context, ad *models.Ad) error
	IncrementLikes(ctx context.Context, id string) (int, error)
	IncrementViews(ctx context.Context, id string) (int, error)
	Delete(ctx context.Context, id string) error
}

// ErrStaleMedia is returned by ReplaceForAd when the gallery was written after
// the version the caller read.
var ErrStaleMedia = errors.New("ad media was changed concurrently")

// AdMediaRepository stores the ordered media list of an ad.
type AdMediaRepository interface {
	ListByAd(ctx context.Context, adID string) ([]models.AdMedia, error)
	// Gallery returns the media rows together with the ad's media version.
	Gallery(ctx context.Context, adID string) ([]models.AdMedia, int64, error)
	// ReplaceForAd swaps the ad's media rows and main image in one transaction,
	// provided the media version still equals version.
	ReplaceForAd(ctx context.Context, adID string, version int64, media []models.AdMedia) error
}
