package stories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/inkwell-blog/inkwell/internal/common"
	"github.com/inkwell-blog/inkwell/internal/dbx"
	"github.com/inkwell-blog/inkwell/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const storyColumns = `s.id, s.title, s.content, s.description, s.author_id, s.cover_image,
	 s.tags, s.read_time, s.views, s.published, s.created_at, s.updated_at, u.username, u.email`

func (r *PostgresRepository) Create(ctx context.Context, story *models.Story) (*models.Story, error) {

	query :=
		`INSERT INTO stories (author_id, title, content, description, cover_image, tags, read_time, published)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		story.AuthorID, story.Title, story.Content, story.Description,
		story.CoverImage, models.JoinTags(story.Tags), story.ReadTime, story.Published).
		Scan(&story.ID, &story.CreatedAt, &story.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	story.Likes = []string{}

	return story, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Story, error) {
	query :=
		`SELECT ` + storyColumns + `
		 FROM stories s
		 JOIN users u ON u.id = s.author_id
		 WHERE s.id = $1
		 `

	story, err := r.scanStory(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}

	likes, err := r.Likes(ctx, story.ID)
	if err != nil {
		return nil, err
	}
	story.Likes = likes

	return story, nil
}

func (r *PostgresRepository) List(ctx context.Context, published *bool) ([]*models.Story, error) {
	query :=
		`SELECT ` + storyColumns + `
		 FROM stories s
		 JOIN users u ON u.id = s.author_id
		 `
	args := []any{}
	if published != nil {
		query += `WHERE s.published = $1
		 `
		args = append(args, *published)
	}
	query += `ORDER BY s.created_at DESC
		 `

	return r.list(ctx, query, args...)
}

func (r *PostgresRepository) ListByAuthor(ctx context.Context, authorID string) ([]*models.Story, error) {
	query :=
		`SELECT ` + storyColumns + `
		 FROM stories s
		 JOIN users u ON u.id = s.author_id
		 WHERE s.author_id = $1
		 ORDER BY s.created_at DESC
		 `

	return r.list(ctx, query, authorID)
}

func (r *PostgresRepository) Update(ctx context.Context, story *models.Story) error {
	query :=
		`UPDATE stories
		 SET title = $1, content = $2, description = $3, cover_image = $4,
		     tags = $5, read_time = $6, published = $7, updated_at = now()
		 WHERE id = $8
		 RETURNING updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		story.Title, story.Content, story.Description, story.CoverImage,
		models.JoinTags(story.Tags), story.ReadTime, story.Published, story.ID).
		Scan(&story.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM stories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) IncrementViews(ctx context.Context, id string) (int64, error) {
	query :=
		`UPDATE stories SET views = views + 1
		 WHERE id = $1
		 RETURNING views
		 `

	var views int64
	err := r.db.QueryRowContext(ctx, query, id).Scan(&views)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrNotFound
		}
		return 0, fmt.Errorf("db error: %w", err)
	}

	return views, nil
}

func (r *PostgresRepository) AddLike(ctx context.Context, storyID, userID string) error {
	query :=
		`INSERT INTO story_likes (story_id, user_id)
		 VALUES ($1, $2)
		 ON CONFLICT DO NOTHING
		 `

	if _, err := r.db.ExecContext(ctx, query, storyID, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) RemoveLike(ctx context.Context, storyID, userID string) error {
	query := `DELETE FROM story_likes WHERE story_id = $1 AND user_id = $2`

	if _, err := r.db.ExecContext(ctx, query, storyID, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Likes(ctx context.Context, storyID string) ([]string, error) {
	query :=
		`SELECT user_id FROM story_likes
		 WHERE story_id = $1
		 ORDER BY created_at
		 `

	rows, err := r.db.QueryContext(ctx, query, storyID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	likes := []string{}
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		likes = append(likes, userID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return likes, nil
}

func (r *PostgresRepository) list(ctx context.Context, query string, args ...any) ([]*models.Story, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	stories := []*models.Story{}
	for rows.Next() {
		story, err := r.scanStory(rows)
		if err != nil {
			return nil, err
		}
		stories = append(stories, story)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	for _, story := range stories {
		likes, err := r.Likes(ctx, story.ID)
		if err != nil {
			return nil, err
		}
		story.Likes = likes
	}

	return stories, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PostgresRepository) scanStory(row rowScanner) (*models.Story, error) {
	story := &models.Story{Author: &models.UserRef{}}
	var tags string

	err := row.Scan(
		&story.ID, &story.Title, &story.Content, &story.Description, &story.AuthorID,
		&story.CoverImage, &tags, &story.ReadTime, &story.Views, &story.Published,
		&story.CreatedAt, &story.UpdatedAt,
		&story.Author.Username, &story.Author.Email)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	story.Author.ID = story.AuthorID
	story.Tags = models.SplitTags(tags)

	return story, nil
}
