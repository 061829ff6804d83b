package models

import "time"

type Post struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Published bool      `json:"published"`
	AuthorID  string    `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreatePostRequest struct {
	Title     string `json:"title" validate:"required,max=255"`
	Content   string `json:"content"`
	Published bool   `json:"published"`
	AuthorID  string `json:"author_id" validate:"required,uuid"`
}

type UpdatePostRequest struct {
	Title     *string `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Content   *string `json:"content,omitempty"`
	Published *bool   `json:"published,omitempty"`
}
