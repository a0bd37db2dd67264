// Package users persists identity records. The repository owns User rows
// exclusively; authored resources hold non-owning references by user ID.
package users

import (
	"context"

	"github.com/inkwell-blog/inkwell/internal/server/models"
)

type Repository interface {
	// Create inserts the user and returns it with ID and CreatedAt filled in.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// GetByID returns common.ErrNotFound when the identity no longer exists.
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}
