// Package posts declares the repository contract for blog posts and its
// PostgreSQL implementation.
package posts

import (
	"context"

	"github.com/dmitrijs2005/blogql/internal/server/models"
)

// Repository defines the persistence operations on posts. Single-row
// operations return common.ErrorNotFound when the post does not exist.
type Repository interface {
	// Create inserts a post and fills in its id, creation time and published flag.
	Create(ctx context.Context, post *models.Post) (*models.Post, error)

	GetByID(ctx context.Context, id int64) (*models.Post, error)

	// Update changes only the non-nil fields and returns the updated row.
	Update(ctx context.Context, id int64, title, content *string) (*models.Post, error)

	SetPublished(ctx context.Context, id int64, published bool) (*models.Post, error)

	// Delete removes the post and returns the row as it was before deletion.
	Delete(ctx context.Context, id int64) (*models.Post, error)

	// ListPublished returns published posts, newest first.
	ListPublished(ctx context.Context) ([]*models.Post, error)

	// ListByAuthor returns the author's posts, newest first; drafts are
	// included only when includeUnpublished is set.
	ListByAuthor(ctx context.Context, authorID int64, includeUnpublished bool) ([]*models.Post, error)
}
