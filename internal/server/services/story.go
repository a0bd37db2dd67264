package services

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	"github.com/inkwell-blog/inkwell/internal/common"
	"github.com/inkwell-blog/inkwell/internal/server/models"
	"github.com/inkwell-blog/inkwell/internal/server/repositories/repomanager"
)

// CreateStoryInput carries fields accepted on story creation. New stories
// are published unless the flag says otherwise.
type CreateStoryInput struct {
	Title       string
	Content     string
	Description string
	Tags        []string
	CoverImage  string
	Published   *bool
}

// UpdateStoryInput carries partial updates; nil pointers leave the field
// unchanged.
type UpdateStoryInput struct {
	Title       *string
	Content     *string
	Description *string
	Tags        []string
	CoverImage  *string
	Published   *bool
}

// StoryService implements story CRUD and the like toggle, with the same
// ownership rule as posts.
type StoryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewStoryService(db *sql.DB, m repomanager.RepositoryManager) *StoryService {
	return &StoryService{db: db, repomanager: m}
}

// List returns stories newest first, optionally filtered by the published
// flag.
func (s *StoryService) List(ctx context.Context, published *bool) ([]*models.Story, error) {
	return s.repomanager.Stories(s.db).List(ctx, published)
}

// UserStories returns the caller's stories, newest first, including
// unpublished ones.
func (s *StoryService) UserStories(ctx context.Context, userID string) ([]*models.Story, error) {
	return s.repomanager.Stories(s.db).ListByAuthor(ctx, userID)
}

// Get loads a single story and increments its view counter as a side effect
// of the read.
func (s *StoryService) Get(ctx context.Context, id string) (*models.Story, error) {
	repo := s.repomanager.Stories(s.db)

	story, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	views, err := repo.IncrementViews(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error incrementing views: %w", err)
	}
	story.Views = views

	return story, nil
}

// Create validates the input, computes the read time, and creates the story.
func (s *StoryService) Create(ctx context.Context, authorID string, in CreateStoryInput) (*models.Story, error) {
	if in.Title == "" || in.Content == "" {
		return nil, common.Validation("Title and content are required")
	}

	published := true
	if in.Published != nil {
		published = *in.Published
	}

	story := &models.Story{
		Title:       in.Title,
		Content:     in.Content,
		Description: in.Description,
		AuthorID:    authorID,
		CoverImage:  in.CoverImage,
		Tags:        in.Tags,
		ReadTime:    estimateReadTime(in.Content),
		Published:   published,
	}

	if _, err := s.repomanager.Stories(s.db).Create(ctx, story); err != nil {
		return nil, fmt.Errorf("error creating story: %w", err)
	}

	// reload so the author reference comes back populated
	return s.repomanager.Stories(s.db).GetByID(ctx, story.ID)
}

// Update applies the changed fields after the ownership check passes.
func (s *StoryService) Update(ctx context.Context, userID, id string, in UpdateStoryInput) (*models.Story, error) {
	repo := s.repomanager.Stories(s.db)

	story, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if story.AuthorID != userID {
		return nil, common.ErrForbidden
	}

	if in.Title != nil {
		story.Title = *in.Title
	}
	if in.Content != nil {
		story.Content = *in.Content
		story.ReadTime = estimateReadTime(*in.Content)
	}
	if in.Description != nil {
		story.Description = *in.Description
	}
	if in.Tags != nil {
		story.Tags = in.Tags
	}
	if in.CoverImage != nil {
		story.CoverImage = *in.CoverImage
	}
	if in.Published != nil {
		story.Published = *in.Published
	}

	if err := repo.Update(ctx, story); err != nil {
		return nil, fmt.Errorf("error updating story: %w", err)
	}

	return story, nil
}

// Delete removes the story after the ownership check passes.
func (s *StoryService) Delete(ctx context.Context, userID, id string) error {
	repo := s.repomanager.Stories(s.db)

	story, err := repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if story.AuthorID != userID {
		return common.ErrForbidden
	}

	if err := repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting story: %w", err)
	}
	return nil
}

// ToggleLike likes or unlikes the story for the user and returns the story
// with the resulting like set.
func (s *StoryService) ToggleLike(ctx context.Context, userID, id string) (*models.Story, error) {
	repo := s.repomanager.Stories(s.db)

	story, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if slices.Contains(story.Likes, userID) {
		err = repo.RemoveLike(ctx, id, userID)
	} else {
		err = repo.AddLike(ctx, id, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("error toggling like: %w", err)
	}

	story.Likes, err = repo.Likes(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error listing likes: %w", err)
	}
	return story, nil
}
