package services

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	"github.com/inkwell-blog/inkwell/internal/common"
	"github.com/inkwell-blog/inkwell/internal/dbx"
	"github.com/inkwell-blog/inkwell/internal/server/models"
	"github.com/inkwell-blog/inkwell/internal/server/repositories/repomanager"
)

// CreatePostInput carries fields accepted on post creation. Attachment
// metadata points at blobs already uploaded through the presign flow.
type CreatePostInput struct {
	Title       string
	Content     string
	Description string
	Tags        []string
	CoverImage  string
	Files       []models.Attachment
}

// UpdatePostInput carries partial updates; nil pointers leave the field
// unchanged.
type UpdatePostInput struct {
	Title       *string
	Content     *string
	Description *string
	Tags        []string
	CoverImage  *string
}

// PostService implements post CRUD, the like toggle, and comments. Every
// mutation checks resource ownership before any write is applied.
type PostService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewPostService(db *sql.DB, m repomanager.RepositoryManager) *PostService {
	return &PostService{db: db, repomanager: m}
}

// List returns all posts, newest first.
func (s *PostService) List(ctx context.Context) ([]*models.Post, error) {
	return s.repomanager.Posts(s.db).List(ctx)
}

// Get loads a single post and increments its view counter as a side effect
// of the read. The returned post carries the incremented value.
func (s *PostService) Get(ctx context.Context, id string) (*models.Post, error) {
	repo := s.repomanager.Posts(s.db)

	post, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	views, err := repo.IncrementViews(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error incrementing views: %w", err)
	}
	post.Views = views

	return post, nil
}

// Create validates the input, computes the read time, and creates the post
// together with its attachment rows in one transaction.
func (s *PostService) Create(ctx context.Context, authorID string, in CreatePostInput) (*models.Post, error) {
	if in.Title == "" || in.Content == "" {
		return nil, common.Validation("Title and content are required")
	}

	post := &models.Post{
		Title:       in.Title,
		Content:     in.Content,
		Description: in.Description,
		AuthorID:    authorID,
		CoverImage:  in.CoverImage,
		Tags:        in.Tags,
		ReadTime:    estimateReadTime(in.Content),
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repoTx := s.repomanager.Posts(tx)
		if _, err := repoTx.Create(ctx, post); err != nil {
			return err
		}
		for i := range in.Files {
			file := in.Files[i]
			file.PostID = post.ID
			if err := repoTx.AddFile(ctx, &file); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error creating post: %w", err)
	}

	// reload so the author reference and collections come back populated
	return s.repomanager.Posts(s.db).GetByID(ctx, post.ID)
}

// Update applies the changed fields after the ownership check passes. When
// the content changes the read time is recomputed.
func (s *PostService) Update(ctx context.Context, userID, id string, in UpdatePostInput) (*models.Post, error) {
	repo := s.repomanager.Posts(s.db)

	post, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != userID {
		return nil, common.ErrForbidden
	}

	if in.Title != nil {
		post.Title = *in.Title
	}
	if in.Content != nil {
		post.Content = *in.Content
		post.ReadTime = estimateReadTime(*in.Content)
	}
	if in.Description != nil {
		post.Description = *in.Description
	}
	if in.Tags != nil {
		post.Tags = in.Tags
	}
	if in.CoverImage != nil {
		post.CoverImage = *in.CoverImage
	}

	if err := repo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("error updating post: %w", err)
	}

	return post, nil
}

// Delete removes the post after the ownership check passes.
func (s *PostService) Delete(ctx context.Context, userID, id string) error {
	repo := s.repomanager.Posts(s.db)

	post, err := repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if post.AuthorID != userID {
		return common.ErrForbidden
	}

	if err := repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting post: %w", err)
	}
	return nil
}

// ToggleLike likes the post when the user is not in the like set and unlikes
// it otherwise, returning the resulting set. A repeated like is a no-op at
// the storage level, so a user appears at most once.
func (s *PostService) ToggleLike(ctx context.Context, userID, id string) ([]string, error) {
	repo := s.repomanager.Posts(s.db)

	post, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if slices.Contains(post.Likes, userID) {
		err = repo.RemoveLike(ctx, id, userID)
	} else {
		err = repo.AddLike(ctx, id, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("error toggling like: %w", err)
	}

	return repo.Likes(ctx, id)
}

// AddComment appends a comment and returns the post's comments, newest
// first.
func (s *PostService) AddComment(ctx context.Context, userID, id, text string) ([]models.Comment, error) {
	if text == "" {
		return nil, common.Validation("Comment text is required")
	}

	repo := s.repomanager.Posts(s.db)

	if _, err := repo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	comment := &models.Comment{PostID: id, User: &models.UserRef{ID: userID}, Text: text}
	if _, err := repo.AddComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("error adding comment: %w", err)
	}

	return repo.Comments(ctx, id)
}
