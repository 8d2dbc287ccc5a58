package posts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/blogql/internal/common"
	"github.com/dmitrijs2005/blogql/internal/dbx"
	"github.com/dmitrijs2005/blogql/internal/server/models"
)

const postColumns = `id, title, content, published, created_at, author_id`

// PostgresRepository implements Repository over dbx.DBTX (satisfied by
// *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPost(s scanner) (*models.Post, error) {
	p := &models.Post{}
	if err := s.Scan(&p.ID, &p.Title, &p.Content, &p.Published, &p.CreatedAt, &p.AuthorID); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PostgresRepository) queryOne(ctx context.Context, query string, args ...any) (*models.Post, error) {
	p, err := scanPost(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) queryMany(ctx context.Context, query string, args ...any) ([]*models.Post, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	query := `
		INSERT INTO posts (title, content, author_id)
		VALUES ($1, $2, $3)
		RETURNING id, published, created_at
	`
	err := r.db.QueryRowContext(ctx, query, post.Title, post.Content, post.AuthorID).
		Scan(&post.ID, &post.Published, &post.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return post, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`
	return r.queryOne(ctx, query, id)
}

func (r *PostgresRepository) Update(ctx context.Context, id int64, title, content *string) (*models.Post, error) {
	query := `
		UPDATE posts
		SET title = COALESCE($2, title), content = COALESCE($3, content)
		WHERE id = $1
		RETURNING ` + postColumns
	return r.queryOne(ctx, query, id, nullable(title), nullable(content))
}

func (r *PostgresRepository) SetPublished(ctx context.Context, id int64, published bool) (*models.Post, error) {
	query := `
		UPDATE posts
		SET published = $2
		WHERE id = $1
		RETURNING ` + postColumns
	return r.queryOne(ctx, query, id, published)
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) (*models.Post, error) {
	query := `DELETE FROM posts WHERE id = $1 RETURNING ` + postColumns
	return r.queryOne(ctx, query, id)
}

func (r *PostgresRepository) ListPublished(ctx context.Context) ([]*models.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts
		WHERE published = true
		ORDER BY created_at DESC, id DESC
	`
	return r.queryMany(ctx, query)
}

func (r *PostgresRepository) ListByAuthor(ctx context.Context, authorID int64, includeUnpublished bool) ([]*models.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts
		WHERE author_id = $1 AND (published OR $2)
		ORDER BY created_at DESC, id DESC
	`
	return r.queryMany(ctx, query, authorID, includeUnpublished)
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
