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

type postRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) interfaces.PostRepository {
	return &postRepository{db: db}
}

const postColumns = `id, title, content, published, author_id, created_at, updated_at`

func scanPost(row interface{ Scan(dest ...interface{}) error }) (*models.Post, error) {
	var p models.Post
	if err := row.Scan(&p.ID, &p.Title, &p.Content, &p.Published, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (title, content, published, author_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query, post.Title, post.Content, post.Published, post.AuthorID).
		Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		log.Printf("Error creating post: %v", err)
		return fmt.Errorf("failed to create post: %w", err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	p, err := scanPost(r.db.QueryRowContext(ctx, "SELECT "+postColumns+" FROM posts WHERE id = $1", id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return p, nil
}

func (r *postRepository) List(ctx context.Context, filter interfaces.PostFilter) ([]models.Post, error) {
	var conditions []string
	var args []interface{}

	if filter.AuthorID != "" {
		args = append(args, filter.AuthorID)
		conditions = append(conditions, fmt.Sprintf("author_id = $%d", len(args)))
	}
	if filter.Published != nil {
		args = append(args, *filter.Published)
		conditions = append(conditions, fmt.Sprintf("published = $%d", len(args)))
	}

	query := "SELECT " + postColumns + " FROM posts"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Printf("Error listing posts: %v", err)
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	posts := []models.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posts: %w", err)
	}
	return posts, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts
		SET title = $1, content = $2, published = $3, updated_at = NOW() AT TIME ZONE 'UTC'
		WHERE id = $4
		RETURNING updated_at
	`

	err := r.db.QueryRowContext(ctx, query, post.Title, post.Content, post.Published, post.ID).Scan(&post.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return sql.ErrNoRows
		}
		log.Printf("Error updating post: %v", err)
		return fmt.Errorf("failed to update post: %w", err)
	}
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		log.Printf("Error deleting post: %v", err)
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return requireRow(result, "delete post")
}
