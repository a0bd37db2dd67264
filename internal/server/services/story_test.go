package services

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/inkwell-blog/inkwell/internal/common"
	"github.com/inkwell-blog/inkwell/internal/server/models"
)

type fakeStoriesRepo struct {
	story *models.Story
	views int64
	likes []string

	listPublished *bool
	byAuthor      string
}

func (f *fakeStoriesRepo) Create(ctx context.Context, story *models.Story) (*models.Story, error) {
	story.ID = "s1"
	f.story = story
	return story, nil
}

func (f *fakeStoriesRepo) GetByID(ctx context.Context, id string) (*models.Story, error) {
	if f.story == nil || f.story.ID != id {
		return nil, common.ErrNotFound
	}
	st := *f.story
	st.Likes = slices.Clone(f.likes)
	return &st, nil
}

func (f *fakeStoriesRepo) List(ctx context.Context, published *bool) ([]*models.Story, error) {
	f.listPublished = published
	if f.story == nil {
		return []*models.Story{}, nil
	}
	return []*models.Story{f.story}, nil
}

func (f *fakeStoriesRepo) ListByAuthor(ctx context.Context, authorID string) ([]*models.Story, error) {
	f.byAuthor = authorID
	if f.story == nil {
		return []*models.Story{}, nil
	}
	return []*models.Story{f.story}, nil
}

func (f *fakeStoriesRepo) Update(ctx context.Context, story *models.Story) error {
	f.story = story
	return nil
}

func (f *fakeStoriesRepo) Delete(ctx context.Context, id string) error {
	f.story = nil
	return nil
}

func (f *fakeStoriesRepo) IncrementViews(ctx context.Context, id string) (int64, error) {
	f.views++
	return f.views, nil
}

func (f *fakeStoriesRepo) AddLike(ctx context.Context, storyID, userID string) error {
	if !slices.Contains(f.likes, userID) {
		f.likes = append(f.likes, userID)
	}
	return nil
}

func (f *fakeStoriesRepo) RemoveLike(ctx context.Context, storyID, userID string) error {
	f.likes = slices.DeleteFunc(f.likes, func(id string) bool { return id == userID })
	return nil
}

func (f *fakeStoriesRepo) Likes(ctx context.Context, storyID string) ([]string, error) {
	return slices.Clone(f.likes), nil
}

func seededStory() *fakeStoriesRepo {
	return &fakeStoriesRepo{
		story: &models.Story{
			ID:        "s1",
			Title:     "draft",
			Content:   "body",
			AuthorID:  "owner",
			Published: true,
			ReadTime:  1,
		},
	}
}

func TestStoryCreate_PublishedDefaultsTrue(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := &fakeStoriesRepo{}
	s := NewStoryService(db, &fakeRepoManager{st: repo})

	story, err := s.Create(context.Background(), "owner", CreateStoryInput{Title: "t", Content: "c"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if !story.Published {
		t.Fatal("new story should be published by default")
	}

	unpublished := false
	story, err = s.Create(context.Background(), "owner", CreateStoryInput{Title: "t", Content: "c", Published: &unpublished})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if story.Published {
		t.Fatal("explicit published=false ignored")
	}
}

func TestStoryCreate_Validation(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	s := NewStoryService(db, &fakeRepoManager{st: &fakeStoriesRepo{}})
	_, err := s.Create(context.Background(), "owner", CreateStoryInput{Title: "t"})
	var ve *common.ValidationError
	if !errors.As(err, &ve) || ve.Message != "Title and content are required" {
		t.Fatalf("got %v", err)
	}
}

func TestStoryList_PassesPublishedFilter(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := seededStory()
	s := NewStoryService(db, &fakeRepoManager{st: repo})

	published := true
	if _, err := s.List(context.Background(), &published); err != nil {
		t.Fatalf("List error: %v", err)
	}
	if repo.listPublished == nil || *repo.listPublished != true {
		t.Fatalf("published filter not forwarded: %v", repo.listPublished)
	}

	if _, err := s.UserStories(context.Background(), "owner"); err != nil {
		t.Fatalf("UserStories error: %v", err)
	}
	if repo.byAuthor != "owner" {
		t.Fatalf("author filter not forwarded: %q", repo.byAuthor)
	}
}

func TestStoryGet_IncrementsViews(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := seededStory()
	s := NewStoryService(db, &fakeRepoManager{st: repo})

	story, err := s.Get(context.Background(), "s1")
	if err != nil || story.Views != 1 {
		t.Fatalf("views=%d err=%v", story.Views, err)
	}
}

func TestStoryUpdate_OwnershipAndPublishedFlag(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := seededStory()
	s := NewStoryService(db, &fakeRepoManager{st: repo})

	unpublished := false
	if _, err := s.Update(context.Background(), "intruder", "s1", UpdateStoryInput{Published: &unpublished}); !errors.Is(err, common.ErrForbidden) {
		t.Fatalf("want ErrForbidden, got %v", err)
	}
	if !repo.story.Published {
		t.Fatal("published flag changed by non-owner")
	}

	story, err := s.Update(context.Background(), "owner", "s1", UpdateStoryInput{Published: &unpublished})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if story.Published {
		t.Fatal("published flag not applied")
	}
	if story.Title != "draft" {
		t.Fatalf("title changed on flag-only update: %q", story.Title)
	}
}

func TestStoryDelete_Ownership(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := seededStory()
	s := NewStoryService(db, &fakeRepoManager{st: repo})

	if err := s.Delete(context.Background(), "intruder", "s1"); !errors.Is(err, common.ErrForbidden) {
		t.Fatalf("want ErrForbidden, got %v", err)
	}
	if repo.story == nil {
		t.Fatal("story deleted by non-owner")
	}
	if err := s.Delete(context.Background(), "owner", "s1"); err != nil {
		t.Fatalf("owner delete error: %v", err)
	}
}

func TestStoryToggleLike(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	repo := seededStory()
	s := NewStoryService(db, &fakeRepoManager{st: repo})

	story, err := s.ToggleLike(context.Background(), "u1", "s1")
	if err != nil || !slices.Equal(story.Likes, []string{"u1"}) {
		t.Fatalf("after like: story=%+v err=%v", story, err)
	}
	story, err = s.ToggleLike(context.Background(), "u1", "s1")
	if err != nil || len(story.Likes) != 0 {
		t.Fatalf("after unlike: story=%+v err=%v", story, err)
	}
}
