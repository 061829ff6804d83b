package models

import "time"

// Client is an advertiser managed from the office area.
type Client struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Title         string    `json:"title,omitempty"`
	Email         string    `json:"email"`
	Mobile        string    `json:"mobile,omitempty"`
	CampaignCount int       `json:"campaign_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type CreateClientRequest struct {
	Name   string `json:"name" validate:"required,min=2,max=255"`
	Title  string `json:"title" validate:"omitempty,max=255"`
	Email  string `json:"email" validate:"required,email"`
	Mobile string `json:"mobile" validate:"omitempty,max=32"`
}

type UpdateClientRequest struct {
	Name   *string `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Title  *string `json:"title,omitempty" validate:"omitempty,max=255"`
	Email  *string `json:"email,omitempty" validate:"omitempty,email"`
	Mobile *string `json:"mobile,omitempty" validate:"omitempty,max=32"`
}
