// Package profiles declares and implements persistence for Profile rows.
package profiles

import (
	"context"

	"github.com/dmitrijs2005/blogql/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, profile *models.Profile) (*models.Profile, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Profile, error)
}
