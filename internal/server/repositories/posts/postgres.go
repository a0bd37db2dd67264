package posts

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

const postColumns = `p.id, p.title, p.content, p.description, p.author_id, p.cover_image,
	 p.tags, p.read_time, p.views, p.created_at, p.updated_at, u.username, u.email`

func (r *PostgresRepository) Create(ctx context.Context, post *models.Post) (*models.Post, error) {

	query :=
		`INSERT INTO posts (author_id, title, content, description, cover_image, tags, read_time)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		post.AuthorID, post.Title, post.Content, post.Description,
		post.CoverImage, models.JoinTags(post.Tags), post.ReadTime).
		Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	post.Likes = []string{}
	post.Comments = []models.Comment{}
	if post.Files == nil {
		post.Files = []models.Attachment{}
	}

	return post, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	query :=
		`SELECT ` + postColumns + `
		 FROM posts p
		 JOIN users u ON u.id = p.author_id
		 WHERE p.id = $1
		 `

	post, err := r.scanPost(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}

	if err := r.populate(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Post, error) {
	query :=
		`SELECT ` + postColumns + `
		 FROM posts p
		 JOIN users u ON u.id = p.author_id
		 ORDER BY p.created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	posts := []*models.Post{}
	for rows.Next() {
		post, err := r.scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	for _, post := range posts {
		if err := r.populate(ctx, post); err != nil {
			return nil, err
		}
	}

	return posts, nil
}

func (r *PostgresRepository) Update(ctx context.Context, post *models.Post) error {
	query :=
		`UPDATE posts
		 SET title = $1, content = $2, description = $3, cover_image = $4,
		     tags = $5, read_time = $6, updated_at = now()
		 WHERE id = $7
		 RETURNING updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		post.Title, post.Content, post.Description, post.CoverImage,
		models.JoinTags(post.Tags), post.ReadTime, post.ID).
		Scan(&post.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
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
		`UPDATE posts SET views = views + 1
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

func (r *PostgresRepository) AddLike(ctx context.Context, postID, userID string) error {
	query :=
		`INSERT INTO post_likes (post_id, user_id)
		 VALUES ($1, $2)
		 ON CONFLICT DO NOTHING
		 `

	if _, err := r.db.ExecContext(ctx, query, postID, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) RemoveLike(ctx context.Context, postID, userID string) error {
	query := `DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`

	if _, err := r.db.ExecContext(ctx, query, postID, userID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Likes(ctx context.Context, postID string) ([]string, error) {
	query :=
		`SELECT user_id FROM post_likes
		 WHERE post_id = $1
		 ORDER BY created_at
		 `

	rows, err := r.db.QueryContext(ctx, query, postID)
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

func (r *PostgresRepository) AddComment(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	query :=
		`INSERT INTO comments (post_id, user_id, body)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		comment.PostID, comment.User.ID, comment.Text).
		Scan(&comment.ID, &comment.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return comment, nil
}

func (r *PostgresRepository) Comments(ctx context.Context, postID string) ([]models.Comment, error) {
	query :=
		`SELECT c.id, c.user_id, u.username, c.body, c.created_at
		 FROM comments c
		 JOIN users u ON u.id = c.user_id
		 WHERE c.post_id = $1
		 ORDER BY c.created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		c := models.Comment{PostID: postID, User: &models.UserRef{}}
		if err := rows.Scan(&c.ID, &c.User.ID, &c.User.Username, &c.Text, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return comments, nil
}

func (r *PostgresRepository) AddFile(ctx context.Context, file *models.Attachment) error {
	query :=
		`INSERT INTO post_files (post_id, filename, storage_key, file_type, size)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, uploaded_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		file.PostID, file.Filename, file.StorageKey, file.FileType, file.Size).
		Scan(&file.ID, &file.UploadedAt)

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) Files(ctx context.Context, postID string) ([]models.Attachment, error) {
	query :=
		`SELECT id, filename, storage_key, file_type, size, uploaded_at
		 FROM post_files
		 WHERE post_id = $1
		 ORDER BY uploaded_at
		 `

	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	files := []models.Attachment{}
	for rows.Next() {
		f := models.Attachment{PostID: postID}
		if err := rows.Scan(&f.ID, &f.Filename, &f.StorageKey, &f.FileType, &f.Size, &f.UploadedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return files, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PostgresRepository) scanPost(row rowScanner) (*models.Post, error) {
	post := &models.Post{Author: &models.UserRef{}}
	var tags string

	err := row.Scan(
		&post.ID, &post.Title, &post.Content, &post.Description, &post.AuthorID,
		&post.CoverImage, &tags, &post.ReadTime, &post.Views,
		&post.CreatedAt, &post.UpdatedAt,
		&post.Author.Username, &post.Author.Email)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	post.Author.ID = post.AuthorID
	post.Tags = models.SplitTags(tags)

	return post, nil
}

// populate loads the mutable collections for a scanned post.
func (r *PostgresRepository) populate(ctx context.Context, post *models.Post) error {
	likes, err := r.Likes(ctx, post.ID)
	if err != nil {
		return err
	}
	comments, err := r.Comments(ctx, post.ID)
	if err != nil {
		return err
	}
	files, err := r.Files(ctx, post.ID)
	if err != nil {
		return err
	}

	post.Likes = likes
	post.Comments = comments
	post.Files = files
	return nil
}
