// Package stories persists the story aggregate: the story row plus its like
// set.
package stories

import (
	"context"

	"github.com/inkwell-blog/inkwell/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, story *models.Story) (*models.Story, error)
	// GetByID loads the story with author and likes populated. Returns
	// common.ErrNotFound for a missing story.
	GetByID(ctx context.Context, id string) (*models.Story, error)
	// List returns stories newest first. A nil published filter means all
	// stories; otherwise only those with the matching published flag.
	List(ctx context.Context, published *bool) ([]*models.Story, error)
	// ListByAuthor returns the author's stories newest first, regardless of
	// the published flag.
	ListByAuthor(ctx context.Context, authorID string) ([]*models.Story, error)
	Update(ctx context.Context, story *models.Story) error
	Delete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) (int64, error)

	AddLike(ctx context.Context, storyID, userID string) error
	RemoveLike(ctx context.Context, storyID, userID string) error
	Likes(ctx context.Context, storyID string) ([]string, error)
}
