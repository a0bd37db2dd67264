// Package posts persists the post aggregate: the post row plus its like set,
// comment list, and attachment metadata.
package posts

import (
	"context"

	"github.com/inkwell-blog/inkwell/internal/server/models"
)

type Repository interface {
	// Create inserts the post row and returns it with ID and timestamps set.
	// Likes, comments, and files of a fresh post are empty.
	Create(ctx context.Context, post *models.Post) (*models.Post, error)
	// GetByID loads the post with author, likes, comments, and files
	// populated. Returns common.ErrNotFound for a missing post.
	GetByID(ctx context.Context, id string) (*models.Post, error)
	// List returns all posts, newest first, fully populated.
	List(ctx context.Context) ([]*models.Post, error)
	// Update persists the mutable fields (title, content, description, tags,
	// cover image, read time) and bumps updated_at.
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id string) error
	// IncrementViews bumps the view counter and returns the new value.
	IncrementViews(ctx context.Context, id string) (int64, error)

	// AddLike is idempotent per (post, user) pair; the likes column is a set.
	AddLike(ctx context.Context, postID, userID string) error
	RemoveLike(ctx context.Context, postID, userID string) error
	Likes(ctx context.Context, postID string) ([]string, error)

	// AddComment appends a comment; Comments lists them newest first.
	AddComment(ctx context.Context, comment *models.Comment) (*models.Comment, error)
	Comments(ctx context.Context, postID string) ([]models.Comment, error)

	AddFile(ctx context.Context, file *models.Attachment) error
	Files(ctx context.Context, postID string) ([]models.Attachment, error)
}
