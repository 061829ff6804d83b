// internal/models/ad.go
package models

import "time"

// Ad is a listing that belongs to a campaign.
type Ad struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	Age          *int       `json:"age,omitempty"`
	MainImageURL string     `json:"main_image_url,omitempty"`
	IsHappyHour  bool       `json:"is_happy_hour"`
	IsHot        bool       `json:"is_hot"`
	IsPremium    bool       `json:"is_premium"`
	LikesCount   int        `json:"likes_count"`
	ViewsCount   int        `json:"views_count"`
	CampaignID   string     `json:"campaign_id"`
	AreaID       *string    `json:"area_id,omitempty"`
	CityIDs      []string   `json:"city_ids"`
	Media        []AdMedia  `json:"media,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type CreateAdRequest struct {
	Name        string   `json:"name" validate:"required,min=2,max=255"`
	Description string   `json:"description" validate:"omitempty,max=5000"`
	Phone       string   `json:"phone" validate:"omitempty,max=32"`
	Age         *int     `json:"age,omitempty" validate:"omitempty,gte=18,lte=99"`
	IsHappyHour bool     `json:"is_happy_hour"`
	IsHot       bool     `json:"is_hot"`
	IsPremium   bool     `json:"is_premium"`
	CampaignID  string   `json:"campaign_id" validate:"required,uuid"`
	AreaID      *string  `json:"area_id,omitempty" validate:"omitempty,uuid"`
	CityIDs     []string `json:"city_ids" validate:"omitempty,dive,uuid"`
}

type UpdateAdRequest struct {
	Name        *string   `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Description *string   `json:"description,omitempty" validate:"omitempty,max=5000"`
	Phone       *string   `json:"phone,omitempty" validate:"omitempty,max=32"`
	Age         *int      `json:"age,omitempty" validate:"omitempty,gte=18,lte=99"`
	IsHappyHour *bool     `json:"is_happy_hour,omitempty"`
	IsHot       *bool     `json:"is_hot,omitempty"`
	IsPremium   *bool     `json:"is_premium,omitempty"`
	CampaignID  *string   `json:"campaign_id,omitempty" validate:"omitempty,uuid"`
	AreaID      *string   `json:"area_id,omitempty" validate:"omitempty,uuid"`
	CityIDs     *[]string `json:"city_ids,omitempty" validate:"omitempty,dive,uuid"`
}

// AdFilter narrows ad listings; zero values mean "any".
type AdFilter struct {
	CampaignID  string
	AreaID      string
	CityID      string
	Hot         *bool
	Premium     *bool
	HappyHour   *bool
	Search      string
	Limit       int
	Offset      int
}

// AdMedia is a persisted media list entry of an ad.
type AdMedia struct {
	ID          string    `json:"id"`
	AdID        string    `json:"ad_id"`
	URL         string    `json:"url"`
	StorageKey  string    `json:"-"`
	AltText     string    `json:"alt_text"`
	Type        string    `json:"type"`
	ContentType string    `json:"content_type,omitempty"`
	Size        int64     `json:"size"`
	Position    int       `json:"position"`
	IsMain      bool      `json:"is_main"`
	CreatedAt   time.Time `json:"created_at"`
}

type ReorderMediaRequest struct {
	From     *int   `json:"from,omitempty" validate:"omitempty,gte=0"`
	To       *int   `json:"to,omitempty" validate:"omitempty,gte=0"`
	ActiveID string `json:"active_id,omitempty" validate:"omitempty,uuid"`
	OverID   string `json:"over_id,omitempty" validate:"omitempty,uuid"`
}

type UpdateMediaRequest struct {
	AltText string `json:"alt_text" validate:"max=500"`
}
