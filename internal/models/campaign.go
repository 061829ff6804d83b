// internal/models/campaign.go
package models

import "time"

type Campaign struct {
	ID           string    `json:"id"`
	CampaignName string    `json:"campaign_name"`
	ClientID     string    `json:"client_id"`
	ClientName   string    `json:"client_name,omitempty"`
	AdCount      int       `json:"ad_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type CreateCampaignRequest struct {
	CampaignName string `json:"campaign_name" validate:"required,min=2,max=255"`
	ClientID     string `json:"client_id" validate:"required,uuid"`
}

type UpdateCampaignRequest struct {
	CampaignName *string `json:"campaign_name,omitempty" validate:"omitempty,min=2,max=255"`
	ClientID     *string `json:"client_id,omitempty" validate:"omitempty,uuid"`
}
